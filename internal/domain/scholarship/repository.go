package scholarship

import (
	"context"

	"scholarfind/internal/common"
)

type Repository interface {
	Create(ctx context.Context, s Scholarship) (*Scholarship, error)
	Update(ctx context.Context, s Scholarship) (*Scholarship, error)
	Delete(ctx context.Context, id common.UUID) error
	GetByID(ctx context.Context, id common.UUID) (*Scholarship, error)
	GetDetail(ctx context.Context, id common.UUID) (*WithOwner, error)
	ListOpen(ctx context.Context, f Filter, limit, offset int) ([]WithOwner, error)
	CountOpen(ctx context.Context, f Filter) (int, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Scholarship, error)
}
