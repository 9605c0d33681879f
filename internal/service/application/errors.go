package application

import "errors"

var (
	ErrMissingFields      = errors.New("internship id and user id are required")
	ErrApplicantNotFound  = errors.New("applicant not found")
	ErrInternshipNotFound = errors.New("internship not found")

	// ErrAlreadyApplied is the idempotent-duplicate outcome for the
	// (internship, applicant) pair. Not retried.
	ErrAlreadyApplied = errors.New("you have already applied to this internship")

	ErrNotFound          = errors.New("application not found")
	ErrNothingToUpdate   = errors.New("at least one schedule field is required")
	ErrLocationRequired  = errors.New("location is required for offline interviews")
	ErrInvalidTransition = errors.New("invalid application status transition")
)
