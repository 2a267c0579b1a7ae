package application

import (
	"context"

	"scholarfind/internal/common"
)

type Repository interface {
	Create(ctx context.Context, a Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	GetDetail(ctx context.Context, id common.UUID) (*WithDetails, error)
	FindByScholarshipAndApplicant(ctx context.Context, scholarshipID, applicantID common.UUID) (*Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID) ([]WithDetails, error)
	ListByScholarships(ctx context.Context, scholarshipIDs []common.UUID) ([]WithDetails, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
}
