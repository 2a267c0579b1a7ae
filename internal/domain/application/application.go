package application

import (
	"time"

	"scholarfind/internal/common"
	"scholarfind/internal/domain/scholarship"
	"scholarfind/internal/domain/user"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// KnownStatus reports membership in the closed status set. The set is flat:
// the owner may move an application between any two statuses, including back
// to pending from approved.
func KnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

type Document struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Application struct {
	ID                common.UUID `json:"id"`
	ScholarshipID     common.UUID `json:"scholarship_id"`
	ApplicantID       common.UUID `json:"applicant_id"`
	Status            Status      `json:"status"`
	PersonalStatement string      `json:"personal_statement"`
	AdditionalInfo    string      `json:"additional_info,omitempty"`
	Documents         []Document  `json:"documents"`
	SubmittedAt       time.Time   `json:"submitted_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// WithDetails joins an application with summaries of its scholarship and
// applicant. Scholarship may be nil when the posting was deleted after
// submission; such applications are kept (no cascade).
type WithDetails struct {
	Application
	Scholarship *scholarship.Summary `json:"scholarship,omitempty"`
	Applicant   *user.Summary        `json:"applicant,omitempty"`
}
