package scholarship

import (
	"time"

	"scholarfind/internal/common"
	"scholarfind/internal/domain/user"
)

type Category string

const (
	CategoryAcademic         Category = "Academic"
	CategorySports           Category = "Sports"
	CategoryArts             Category = "Arts"
	CategoryCommunityService Category = "Community Service"
	CategoryNeedBased        Category = "Need-based"
	CategoryMeritBased       Category = "Merit-based"
	CategoryResearch         Category = "Research"
	CategoryOther            Category = "Other"
)

func Categories() []Category {
	return []Category{
		CategoryAcademic, CategorySports, CategoryArts, CategoryCommunityService,
		CategoryNeedBased, CategoryMeritBased, CategoryResearch, CategoryOther,
	}
}

func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

type Eligibility struct {
	MinGPA         *float64 `json:"min_gpa,omitempty"`
	Majors         []string `json:"majors,omitempty"`
	Universities   []string `json:"universities,omitempty"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	Other          string   `json:"other,omitempty"`
}

type Scholarship struct {
	ID             common.UUID `json:"id"`
	CreatedBy      common.UUID `json:"created_by"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Provider       string      `json:"provider"`
	Amount         float64     `json:"amount"`
	Category       Category    `json:"category"`
	Deadline       time.Time   `json:"deadline"`
	ApplicationURL string      `json:"application_url,omitempty"`
	Requirements   []string    `json:"requirements"`
	Eligibility    Eligibility `json:"eligibility"`
	IsActive       bool        `json:"is_active"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// WithOwner is the public read model: a posting plus its owner's summary.
type WithOwner struct {
	Scholarship
	Owner *user.Summary `json:"owner,omitempty"`
}

// Summary is the slice of a scholarship attached to application reads.
type Summary struct {
	ID       common.UUID `json:"id"`
	Title    string      `json:"title"`
	Provider string      `json:"provider"`
	Amount   float64     `json:"amount"`
	Category Category    `json:"category"`
	Deadline time.Time   `json:"deadline"`
}

// Filter narrows the public listing. Zero values mean "no restriction";
// the listing itself is always limited to active, non-expired postings.
type Filter struct {
	Search    string
	Category  Category
	MinAmount *float64
	MaxAmount *float64
}

// Open reports whether the posting still accepts applications at now.
func (s *Scholarship) Open(now time.Time) bool {
	return s.IsActive && !now.After(s.Deadline)
}
