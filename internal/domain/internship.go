package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmploymentMode is the time commitment an internship asks for.
type EmploymentMode string

const (
	ModeFullTime EmploymentMode = "full-time"
	ModePartTime EmploymentMode = "part-time"
)

// WorkType is where the work happens.
type WorkType string

const (
	TypeRemote WorkType = "remote"
	TypeOnsite WorkType = "onsite"
	TypeHybrid WorkType = "hybrid"
)

// InternshipStatus is the publication state of a posting.
type InternshipStatus string

const (
	InternshipDraft     InternshipStatus = "draft"
	InternshipPublished InternshipStatus = "published"
)

// Internship is a posting created by a recruiter on behalf of a company.
type Internship struct {
	ID                  uuid.UUID        `json:"id"`
	Title               string           `json:"title"`
	Slug                string           `json:"slug"`
	Description         string           `json:"description"`
	Location            string           `json:"location"`
	Mode                EmploymentMode   `json:"mode"`
	Type                WorkType         `json:"type"`
	Category            string           `json:"category"`
	StipendAmount       *int64           `json:"stipend_amount"`
	StipendType         string           `json:"stipend_type"`
	RequiredSkills      []string         `json:"required_skills"`
	Perks               []string         `json:"perks"`
	ScreeningQuestions  []string         `json:"screening_questions"`
	Eligibility         string           `json:"eligibility"`
	ApplicantUserType   string           `json:"applicant_user_type"`
	StartDate           *time.Time       `json:"start_date"`
	ApplicationDeadline *time.Time       `json:"application_deadline"`
	IsActive            bool             `json:"is_active"`
	ApplicationsCount   int              `json:"applications_count"`
	Status              InternshipStatus `json:"status"`
	CompanyID           uuid.UUID        `json:"company_id"`
	RecruiterID         uuid.UUID        `json:"recruiter_id"`
	CreatedAt           time.Time        `json:"created_at"`
}

// InternshipFilter is the set of optional search criteria over active postings.
// Zero values mean "not supplied"; Skills are already normalized (trimmed,
// lower-cased, no empties) by the time a filter reaches storage.
type InternshipFilter struct {
	Search     string
	Location   string
	MinStipend *int64
	MaxStipend *int64
	Mode       string
	Type       string
	Category   string
	Skills     []string
	Page       int
	PerPage    int
}
