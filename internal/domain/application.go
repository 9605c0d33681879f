package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus tracks an application through the recruiter pipeline.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusInterview   ApplicationStatus = "Interview"
	StatusHired       ApplicationStatus = "Hired"
	StatusRejected    ApplicationStatus = "Rejected"
)

// InterviewMode is how a scheduled interview is held.
type InterviewMode string

const (
	InterviewOnline  InterviewMode = "online"
	InterviewOffline InterviewMode = "offline"
)

// Application records one applicant applying to one internship.
// The (InternshipID, ApplicantID) pair is unique, enforced by the store.
type Application struct {
	ID           uuid.UUID `json:"id"`
	InternshipID uuid.UUID `json:"internship_id"`
	ApplicantID  uuid.UUID `json:"applicant_id"`
	CoverLetter  string    `json:"cover_letter"`
	ResumeURL    string    `json:"resume_url"`

	// ParsedResume is the structured payload returned by the resume parser.
	// Nil when parsing was skipped or failed.
	ParsedResume json.RawMessage `json:"parsed_resume,omitempty"`

	// Gender is denormalized from the applicant at submission time.
	Gender string `json:"gender"`

	InterviewMode     InterviewMode `json:"interview_mode,omitempty"`
	InterviewLocation string        `json:"interview_location,omitempty"`
	InterviewDate     string        `json:"interview_date,omitempty"`
	InterviewTime     string        `json:"interview_time,omitempty"`

	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// InterviewDetails is the updatable schedule slice of an application.
// Empty fields are left untouched by the store.
type InterviewDetails struct {
	Mode     InterviewMode
	Location string
	Date     string
	Time     string
}

// HasAny reports whether at least one schedule field is set.
func (d InterviewDetails) HasAny() bool {
	return d.Mode != "" || d.Location != "" || d.Date != "" || d.Time != ""
}

// ApplicationDetail joins an application with the contact fields notification
// flows need, so workers don't re-query three tables.
type ApplicationDetail struct {
	Application

	InternshipTitle string `json:"internship_title"`
	ApplicantName   string `json:"applicant_name"`
	ApplicantEmail  string `json:"applicant_email"`
	RecruiterEmail  string `json:"recruiter_email"`
}
