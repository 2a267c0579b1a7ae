package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"scholarfind/internal/app"
	"scholarfind/internal/common"
	"scholarfind/internal/domain/scholarship"
	"scholarfind/internal/http/middleware"
	"scholarfind/internal/http/response"
)

type ScholarshipHandler struct {
	scholarships *app.ScholarshipService
}

func NewScholarshipHandler(scholarships *app.ScholarshipService) *ScholarshipHandler {
	return &ScholarshipHandler{scholarships: scholarships}
}

type eligibilityPayload struct {
	MinGPA         *float64 `json:"min_gpa"`
	Majors         []string `json:"majors"`
	Universities   []string `json:"universities"`
	GraduationYear *int     `json:"graduation_year"`
	Other          string   `json:"other"`
}

func (p *eligibilityPayload) toDomain() scholarship.Eligibility {
	if p == nil {
		return scholarship.Eligibility{}
	}
	return scholarship.Eligibility{
		MinGPA:         p.MinGPA,
		Majors:         p.Majors,
		Universities:   p.Universities,
		GraduationYear: p.GraduationYear,
		Other:          strings.TrimSpace(p.Other),
	}
}

type createScholarshipRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Provider       string              `json:"provider"`
	Amount         *float64            `json:"amount"`
	Category       string              `json:"category"`
	Deadline       string              `json:"deadline"`
	ApplicationURL string              `json:"application_url"`
	Requirements   []string            `json:"requirements"`
	Eligibility    *eligibilityPayload `json:"eligibility"`
	IsActive       *bool               `json:"is_active"`
}

func (h *ScholarshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req createScholarshipRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	fields := map[string]string{}
	if req.Amount == nil {
		fields["amount"] = "amount must be a number"
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		fields["deadline"] = "invalid deadline date"
	}
	if len(fields) > 0 {
		response.Error(w, common.NewValidationError("invalid scholarship", fields))
		return
	}
	item := scholarship.Scholarship{
		Title:          req.Title,
		Description:    req.Description,
		Provider:       req.Provider,
		Amount:         *req.Amount,
		Category:       scholarship.Category(req.Category),
		Deadline:       deadline,
		ApplicationURL: strings.TrimSpace(req.ApplicationURL),
		Requirements:   req.Requirements,
		Eligibility:    req.Eligibility.toDomain(),
		IsActive:       true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	created, err := h.scholarships.Create(r.Context(), ownerID, item)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]any{
		"message":     "Scholarship created successfully",
		"scholarship": created,
	})
}

type updateScholarshipRequest struct {
	Title          *string             `json:"title"`
	Description    *string             `json:"description"`
	Provider       *string             `json:"provider"`
	Amount         *float64            `json:"amount"`
	Category       *string             `json:"category"`
	Deadline       *string             `json:"deadline"`
	ApplicationURL *string             `json:"application_url"`
	Requirements   []string            `json:"requirements"`
	Eligibility    *eligibilityPayload `json:"eligibility"`
	IsActive       *bool               `json:"is_active"`
}

func (h *ScholarshipHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateScholarshipRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	update := app.ScholarshipUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Provider:       req.Provider,
		Amount:         req.Amount,
		ApplicationURL: req.ApplicationURL,
		Requirements:   req.Requirements,
		IsActive:       req.IsActive,
	}
	if req.Category != nil {
		category := scholarship.Category(*req.Category)
		update.Category = &category
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid scholarship", map[string]string{"deadline": "invalid deadline date"}))
			return
		}
		update.Deadline = &deadline
	}
	if req.Eligibility != nil {
		eligibility := req.Eligibility.toDomain()
		update.Eligibility = &eligibility
	}
	updated, err := h.scholarships.Update(r.Context(), callerID, id, update)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"message":     "Scholarship updated successfully",
		"scholarship": updated,
	})
}

func (h *ScholarshipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.scholarships.Delete(r.Context(), callerID, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Scholarship deleted successfully"})
}

func (h *ScholarshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.scholarships.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ScholarshipHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := scholarship.Filter{
		Search:   strings.TrimSpace(query.Get("search")),
		Category: scholarship.Category(strings.TrimSpace(query.Get("category"))),
	}
	fields := map[string]string{}
	if raw := query.Get("minAmount"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields["minAmount"] = "minAmount must be a number"
		} else {
			filter.MinAmount = &value
		}
	}
	if raw := query.Get("maxAmount"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields["maxAmount"] = "maxAmount must be a number"
		} else {
			filter.MaxAmount = &value
		}
	}
	if len(fields) > 0 {
		response.Error(w, common.NewValidationError("invalid listing filters", fields))
		return
	}
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	items, meta, err := h.scholarships.List(r.Context(), filter, page, limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"scholarships": items,
		"pagination":   meta,
	})
}

func (h *ScholarshipHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.scholarships.ListOwned(r.Context(), ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
