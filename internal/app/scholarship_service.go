package app

import (
	"context"
	"strings"
	"time"

	"scholarfind/internal/common"
	"scholarfind/internal/domain/scholarship"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ScholarshipService struct {
	repo scholarship.Repository
}

func NewScholarshipService(repo scholarship.Repository) *ScholarshipService {
	return &ScholarshipService{repo: repo}
}

// ScholarshipUpdate carries a partial update; nil pointers leave the field
// untouched. Requirements and Eligibility replace the whole value when set.
type ScholarshipUpdate struct {
	Title          *string
	Description    *string
	Provider       *string
	Amount         *float64
	Category       *scholarship.Category
	Deadline       *time.Time
	ApplicationURL *string
	Requirements   []string
	Eligibility    *scholarship.Eligibility
	IsActive       *bool
}

type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

func (s *ScholarshipService) Create(ctx context.Context, ownerID common.UUID, in scholarship.Scholarship) (*scholarship.Scholarship, error) {
	in.CreatedBy = ownerID
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Provider = strings.TrimSpace(in.Provider)
	if in.Requirements == nil {
		in.Requirements = []string{}
	}
	if err := validateScholarship(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *ScholarshipService) Update(ctx context.Context, callerID, id common.UUID, in ScholarshipUpdate) (*scholarship.Scholarship, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.CreatedBy != callerID {
		return nil, common.NewError(common.CodeForbidden, "not authorized to update this scholarship", nil)
	}

	if in.Title != nil {
		current.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		current.Description = strings.TrimSpace(*in.Description)
	}
	if in.Provider != nil {
		current.Provider = strings.TrimSpace(*in.Provider)
	}
	if in.Amount != nil {
		current.Amount = *in.Amount
	}
	if in.Category != nil {
		current.Category = *in.Category
	}
	if in.Deadline != nil {
		current.Deadline = *in.Deadline
	}
	if in.ApplicationURL != nil {
		current.ApplicationURL = strings.TrimSpace(*in.ApplicationURL)
	}
	if in.Requirements != nil {
		current.Requirements = in.Requirements
	}
	if in.Eligibility != nil {
		current.Eligibility = *in.Eligibility
	}
	if in.IsActive != nil {
		current.IsActive = *in.IsActive
	}
	if err := validateScholarship(*current); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, *current)
}

func (s *ScholarshipService) Delete(ctx context.Context, callerID, id common.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.CreatedBy != callerID {
		return common.NewError(common.CodeForbidden, "not authorized to delete this scholarship", nil)
	}
	// No cascade: applications against the deleted scholarship stay in place.
	return s.repo.Delete(ctx, id)
}

func (s *ScholarshipService) Get(ctx context.Context, id common.UUID) (*scholarship.WithOwner, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *ScholarshipService) List(ctx context.Context, f scholarship.Filter, page, limit int) ([]scholarship.WithOwner, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	items, err := s.repo.ListOpen(ctx, f, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.repo.CountOpen(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	if items == nil {
		items = []scholarship.WithOwner{}
	}
	meta := &Pagination{
		CurrentPage:  page,
		TotalPages:   (total + limit - 1) / limit,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
	return items, meta, nil
}

func (s *ScholarshipService) ListOwned(ctx context.Context, ownerID common.UUID) ([]scholarship.Scholarship, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []scholarship.Scholarship{}
	}
	return items, nil
}

func validateScholarship(s scholarship.Scholarship) error {
	fields := map[string]string{}
	if len(s.Title) < 3 {
		fields["title"] = "title must be at least 3 characters"
	}
	if len(s.Description) < 10 {
		fields["description"] = "description must be at least 10 characters"
	}
	if len(s.Provider) < 2 {
		fields["provider"] = "provider name is required"
	}
	if s.Amount < 0 {
		fields["amount"] = "amount must not be negative"
	}
	if !scholarship.ValidCategory(s.Category) {
		fields["category"] = "invalid category"
	}
	if s.Deadline.IsZero() {
		fields["deadline"] = "invalid deadline date"
	}
	if s.Eligibility.MinGPA != nil && (*s.Eligibility.MinGPA < 0 || *s.Eligibility.MinGPA > 4) {
		fields["eligibility.min_gpa"] = "minimum GPA must be between 0 and 4"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid scholarship", fields)
	}
	return nil
}
