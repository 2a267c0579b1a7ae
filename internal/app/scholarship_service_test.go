package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"scholarfind/internal/common"
	"scholarfind/internal/domain/scholarship"
	"scholarfind/internal/domain/user"
)

type fakeScholarshipRepo struct {
	mu    sync.Mutex
	items map[common.UUID]*scholarship.Scholarship
}

func newFakeScholarshipRepo() *fakeScholarshipRepo {
	return &fakeScholarshipRepo{items: make(map[common.UUID]*scholarship.Scholarship)}
}

func (r *fakeScholarshipRepo) Create(ctx context.Context, s scholarship.Scholarship) (*scholarship.Scholarship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = common.NewUUID()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	stored := s
	r.items[s.ID] = &stored
	return &s, nil
}

func (r *fakeScholarshipRepo) Update(ctx context.Context, s scholarship.Scholarship) (*scholarship.Scholarship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[s.ID]
	if !ok || current.CreatedBy != s.CreatedBy {
		return nil, common.NewError(common.CodeNotFound, "scholarship not found", nil)
	}
	s.UpdatedAt = time.Now().UTC()
	stored := s
	r.items[s.ID] = &stored
	return &s, nil
}

func (r *fakeScholarshipRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.NewError(common.CodeNotFound, "scholarship not found", nil)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeScholarshipRepo) GetByID(ctx context.Context, id common.UUID) (*scholarship.Scholarship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "scholarship not found", nil)
	}
	copy := *current
	return &copy, nil
}

func (r *fakeScholarshipRepo) GetDetail(ctx context.Context, id common.UUID) (*scholarship.WithOwner, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &scholarship.WithOwner{
		Scholarship: *current,
		Owner:       &user.Summary{ID: current.CreatedBy, Name: "Owner"},
	}, nil
}

func (r *fakeScholarshipRepo) matchOpen(f scholarship.Filter) []scholarship.Scholarship {
	now := time.Now().UTC()
	var matched []scholarship.Scholarship
	for _, item := range r.items {
		if !item.Open(now) {
			continue
		}
		if f.Search != "" {
			haystack := strings.ToLower(item.Title + " " + item.Description + " " + item.Provider)
			if !strings.Contains(haystack, strings.ToLower(f.Search)) {
				continue
			}
		}
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.MinAmount != nil && item.Amount < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && item.Amount > *f.MaxAmount {
			continue
		}
		matched = append(matched, *item)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Deadline.Before(matched[j].Deadline) })
	return matched
}

func (r *fakeScholarshipRepo) ListOpen(ctx context.Context, f scholarship.Filter, limit, offset int) ([]scholarship.WithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.matchOpen(f)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	items := make([]scholarship.WithOwner, 0, len(matched))
	for _, item := range matched {
		items = append(items, scholarship.WithOwner{Scholarship: item})
	}
	return items, nil
}

func (r *fakeScholarshipRepo) CountOpen(ctx context.Context, f scholarship.Filter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matchOpen(f)), nil
}

func (r *fakeScholarshipRepo) ListByOwner(ctx context.Context, ownerID common.UUID) ([]scholarship.Scholarship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []scholarship.Scholarship
	for _, item := range r.items {
		if item.CreatedBy == ownerID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func validPosting(deadline time.Time) scholarship.Scholarship {
	return scholarship.Scholarship{
		Title:       "Merit Scholarship",
		Description: "A scholarship for students with strong academic records.",
		Provider:    "Example Foundation",
		Amount:      5000,
		Category:    scholarship.CategoryMeritBased,
		Deadline:    deadline,
		IsActive:    true,
	}
}

func TestScholarshipServiceCreate_SetsOwner(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	ownerID := common.NewUUID()

	created, err := service.Create(context.Background(), ownerID, validPosting(time.Now().Add(30*24*time.Hour)))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.CreatedBy != ownerID {
		t.Fatalf("expected created_by %s, got %s", ownerID, created.CreatedBy)
	}
	if created.ID == "" {
		t.Fatal("expected id to be assigned")
	}
}

func TestScholarshipServiceCreate_Validation(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	deadline := time.Now().Add(30 * 24 * time.Hour)

	cases := []struct {
		name   string
		mutate func(*scholarship.Scholarship)
		field  string
	}{
		{"short title", func(s *scholarship.Scholarship) { s.Title = "ab" }, "title"},
		{"short description", func(s *scholarship.Scholarship) { s.Description = "too short" }, "description"},
		{"missing provider", func(s *scholarship.Scholarship) { s.Provider = "" }, "provider"},
		{"negative amount", func(s *scholarship.Scholarship) { s.Amount = -1 }, "amount"},
		{"unknown category", func(s *scholarship.Scholarship) { s.Category = "Athletics" }, "category"},
		{"zero deadline", func(s *scholarship.Scholarship) { s.Deadline = time.Time{} }, "deadline"},
		{"gpa out of range", func(s *scholarship.Scholarship) {
			gpa := 4.5
			s.Eligibility.MinGPA = &gpa
		}, "eligibility.min_gpa"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			posting := validPosting(deadline)
			tc.mutate(&posting)
			_, err := service.Create(context.Background(), common.NewUUID(), posting)
			if !common.Is(err, common.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var appErr *common.Error
			if !errors.As(err, &appErr) || appErr.Fields[tc.field] == "" {
				t.Fatalf("expected field error for %q, got %v", tc.field, err)
			}
		})
	}
}

func TestScholarshipServiceUpdate_ForbiddenForNonOwner(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	ownerID := common.NewUUID()

	created, err := service.Create(context.Background(), ownerID, validPosting(time.Now().Add(24*time.Hour)))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	title := "New Title"
	_, err = service.Update(context.Background(), common.NewUUID(), created.ID, ScholarshipUpdate{Title: &title})
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestScholarshipServiceUpdate_MergesPartialFields(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	ownerID := common.NewUUID()

	created, err := service.Create(context.Background(), ownerID, validPosting(time.Now().Add(24*time.Hour)))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	amount := 7500.0
	updated, err := service.Update(context.Background(), ownerID, created.ID, ScholarshipUpdate{Amount: &amount})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Amount != 7500 {
		t.Fatalf("expected amount 7500, got %v", updated.Amount)
	}
	if updated.Title != created.Title {
		t.Fatalf("expected title to be unchanged, got %q", updated.Title)
	}
}

func TestScholarshipServiceUpdate_ValidatesMergedState(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	ownerID := common.NewUUID()

	created, err := service.Create(context.Background(), ownerID, validPosting(time.Now().Add(24*time.Hour)))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	title := "x"
	_, err = service.Update(context.Background(), ownerID, created.ID, ScholarshipUpdate{Title: &title})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScholarshipServiceDelete_ForbiddenForNonOwner(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	ownerID := common.NewUUID()

	created, err := service.Create(context.Background(), ownerID, validPosting(time.Now().Add(24*time.Hour)))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if err := service.Delete(context.Background(), common.NewUUID(), created.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if err := service.Delete(context.Background(), ownerID, created.ID); err != nil {
		t.Fatalf("expected owner delete to succeed, got %v", err)
	}
	if _, err := service.Get(context.Background(), created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestScholarshipServiceList_ExcludesClosedAndSortsByDeadline(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	ownerID := common.NewUUID()
	ctx := context.Background()

	later := validPosting(time.Now().Add(60 * 24 * time.Hour))
	later.Title = "Later Deadline"
	sooner := validPosting(time.Now().Add(10 * 24 * time.Hour))
	sooner.Title = "Sooner Deadline"
	inactive := validPosting(time.Now().Add(24 * time.Hour))
	inactive.Title = "Inactive Posting"
	inactive.IsActive = false
	expired := validPosting(time.Now().Add(-24 * time.Hour))
	expired.Title = "Expired Posting"

	for _, posting := range []scholarship.Scholarship{later, sooner, inactive, expired} {
		if _, err := service.Create(ctx, ownerID, posting); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	items, meta, err := service.List(ctx, scholarship.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 open scholarships, got %d", len(items))
	}
	if items[0].Title != "Sooner Deadline" || items[1].Title != "Later Deadline" {
		t.Fatalf("expected ascending deadline order, got %q then %q", items[0].Title, items[1].Title)
	}
	if meta.TotalItems != 2 {
		t.Fatalf("expected total_items 2, got %d", meta.TotalItems)
	}
}

func TestScholarshipServiceList_Filters(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	ownerID := common.NewUUID()
	ctx := context.Background()

	research := validPosting(time.Now().Add(24 * time.Hour))
	research.Title = "Robotics Research Grant"
	research.Category = scholarship.CategoryResearch
	research.Amount = 8000
	sports := validPosting(time.Now().Add(48 * time.Hour))
	sports.Title = "Varsity Athletics Award"
	sports.Category = scholarship.CategorySports
	sports.Amount = 1500

	for _, posting := range []scholarship.Scholarship{research, sports} {
		if _, err := service.Create(ctx, ownerID, posting); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	items, _, err := service.List(ctx, scholarship.Filter{Category: scholarship.CategoryResearch}, 1, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 1 || items[0].Title != "Robotics Research Grant" {
		t.Fatalf("expected only the research grant, got %v", items)
	}

	minAmount := 5000.0
	items, _, err = service.List(ctx, scholarship.Filter{MinAmount: &minAmount}, 1, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 1 || items[0].Amount != 8000 {
		t.Fatalf("expected only the 8000 award, got %v", items)
	}

	items, _, err = service.List(ctx, scholarship.Filter{Search: "robotics"}, 1, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 1 || items[0].Title != "Robotics Research Grant" {
		t.Fatalf("expected search to match the research grant, got %v", items)
	}
}

func TestScholarshipServiceList_PaginationMath(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)
	ownerID := common.NewUUID()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		posting := validPosting(time.Now().Add(time.Duration(i+1) * 24 * time.Hour))
		if _, err := service.Create(ctx, ownerID, posting); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	items, meta, err := service.List(ctx, scholarship.Filter{}, 2, 3)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items on page 2, got %d", len(items))
	}
	if meta.CurrentPage != 2 || meta.TotalPages != 3 || meta.TotalItems != 7 || meta.ItemsPerPage != 3 {
		t.Fatalf("unexpected pagination: %+v", meta)
	}

	// Out-of-range pages still answer with an empty list and correct totals.
	items, meta, err = service.List(ctx, scholarship.Filter{}, 5, 3)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(items))
	}
	if meta.CurrentPage != 5 || meta.TotalItems != 7 {
		t.Fatalf("unexpected pagination: %+v", meta)
	}
}

func TestScholarshipServiceList_NormalizesPageAndLimit(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo)

	_, meta, err := service.List(context.Background(), scholarship.Filter{}, 0, 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if meta.CurrentPage != 1 || meta.ItemsPerPage != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got %+v", meta)
	}

	_, meta, err = service.List(context.Background(), scholarship.Filter{}, 1, 1000)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if meta.ItemsPerPage != 100 {
		t.Fatalf("expected limit capped at 100, got %d", meta.ItemsPerPage)
	}
}
