package app

import (
	"context"
	"strings"
	"time"

	"scholarfind/internal/common"
	"scholarfind/internal/domain/application"
	"scholarfind/internal/domain/scholarship"
)

const minPersonalStatementLen = 50

type ApplicationService struct {
	repo         application.Repository
	scholarships scholarship.Repository
}

func NewApplicationService(repo application.Repository, scholarships scholarship.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, scholarships: scholarships}
}

type SubmitInput struct {
	PersonalStatement string
	AdditionalInfo    string
	Documents         []application.Document
}

// Submit creates a pending application for an open scholarship. The
// (scholarship, applicant) pair is unique; the pre-check here gives the
// common case a clean error and the database constraint settles races.
func (s *ApplicationService) Submit(ctx context.Context, applicantID, scholarshipID common.UUID, in SubmitInput) (*application.WithDetails, error) {
	target, err := s.scholarships.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	if !target.Open(time.Now().UTC()) {
		return nil, common.NewError(common.CodeClosed, "scholarship is no longer accepting applications", nil)
	}
	if _, err := s.repo.FindByScholarshipAndApplicant(ctx, scholarshipID, applicantID); err == nil {
		return nil, common.NewError(common.CodeDuplicate, "you have already applied to this scholarship", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	statement := strings.TrimSpace(in.PersonalStatement)
	if len(statement) < minPersonalStatementLen {
		return nil, common.NewValidationError("invalid application", map[string]string{
			"personal_statement": "personal statement must be at least 50 characters",
		})
	}
	created, err := s.repo.Create(ctx, application.Application{
		ScholarshipID:     scholarshipID,
		ApplicantID:       applicantID,
		Status:            application.StatusPending,
		PersonalStatement: statement,
		AdditionalInfo:    strings.TrimSpace(in.AdditionalInfo),
		Documents:         in.Documents,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetDetail(ctx, created.ID)
}

// UpdateStatus sets any of the four statuses; only the owner of the
// referenced scholarship may call it. The status set is flat on purpose:
// approved may go back to pending.
func (s *ApplicationService) UpdateStatus(ctx context.Context, callerID, applicationID common.UUID, status application.Status) (*application.WithDetails, error) {
	current, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	target, err := s.scholarships.GetByID(ctx, current.ScholarshipID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			// Orphaned application: the scholarship is gone, so nobody owns it.
			return nil, common.NewError(common.CodeForbidden, "not authorized to update this application", nil)
		}
		return nil, err
	}
	if target.CreatedBy != callerID {
		return nil, common.NewError(common.CodeForbidden, "not authorized to update this application", nil)
	}
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !application.KnownStatus(normalized) {
		return nil, common.NewValidationError("invalid status", map[string]string{
			"status": "status must be pending, under_review, approved, or rejected",
		})
	}
	if _, err := s.repo.UpdateStatus(ctx, applicationID, normalized); err != nil {
		return nil, err
	}
	return s.repo.GetDetail(ctx, applicationID)
}

// Withdraw deletes the caller's own application, allowed only while the
// scholarship deadline has not passed.
func (s *ApplicationService) Withdraw(ctx context.Context, callerID, applicationID common.UUID) error {
	current, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if current.ApplicantID != callerID {
		return common.NewError(common.CodeForbidden, "not authorized to withdraw this application", nil)
	}
	target, err := s.scholarships.GetByID(ctx, current.ScholarshipID)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return err
	}
	if target != nil && time.Now().UTC().After(target.Deadline) {
		return common.NewError(common.CodeClosed, "cannot withdraw application after deadline", nil)
	}
	return s.repo.Delete(ctx, applicationID)
}

// Get returns the joined record for the applicant or the scholarship owner.
func (s *ApplicationService) Get(ctx context.Context, callerID, applicationID common.UUID) (*application.WithDetails, error) {
	current, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	allowed := current.ApplicantID == callerID
	if !allowed {
		target, err := s.scholarships.GetByID(ctx, current.ScholarshipID)
		if err != nil && !common.Is(err, common.CodeNotFound) {
			return nil, err
		}
		allowed = target != nil && target.CreatedBy == callerID
	}
	if !allowed {
		return nil, common.NewError(common.CodeForbidden, "not authorized to view this application", nil)
	}
	return s.repo.GetDetail(ctx, applicationID)
}

func (s *ApplicationService) ListMine(ctx context.Context, applicantID common.UUID) ([]application.WithDetails, error) {
	items, err := s.repo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []application.WithDetails{}
	}
	return items, nil
}

// ListReceived resolves the caller's scholarship ids first and then filters
// applications by membership in that set.
func (s *ApplicationService) ListReceived(ctx context.Context, ownerID common.UUID) ([]application.WithDetails, error) {
	owned, err := s.scholarships.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return []application.WithDetails{}, nil
	}
	ids := make([]common.UUID, 0, len(owned))
	for _, item := range owned {
		ids = append(ids, item.ID)
	}
	items, err := s.repo.ListByScholarships(ctx, ids)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []application.WithDetails{}
	}
	return items, nil
}
