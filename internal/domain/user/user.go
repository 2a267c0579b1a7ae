package user

import (
	"time"

	"scholarfind/internal/common"
)

type User struct {
	ID             common.UUID `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	Phone          string      `json:"phone,omitempty"`
	University     string      `json:"university,omitempty"`
	Major          string      `json:"major,omitempty"`
	GPA            *float64    `json:"gpa,omitempty"`
	GraduationYear *int        `json:"graduation_year,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Summary is the slice of a user attached to joined reads: the scholarship
// owner on postings, the applicant on received applications.
type Summary struct {
	ID         common.UUID `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	University string      `json:"university,omitempty"`
	Major      string      `json:"major,omitempty"`
	GPA        *float64    `json:"gpa,omitempty"`
}
