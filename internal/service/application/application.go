package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kairohq/internexplore_backend/internal/domain"
	"github.com/kairohq/internexplore_backend/internal/storage/postgres"
	"github.com/kairohq/internexplore_backend/pkg/email"
	"github.com/kairohq/internexplore_backend/pkg/resume"
)

// SubjectApplicationCreated is published after an application is durably
// recorded; the payload is the application ID.
const SubjectApplicationCreated = "internexplore.application.created"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type ApplyRequest struct {
	InternshipID uuid.UUID
	ApplicantID  uuid.UUID
	CoverLetter  string
	ResumeURL    string
}

// ApplyResult reports the created application plus whether enrichment
// succeeded. The operation is "created" either way.
type ApplyResult struct {
	Application  *domain.Application `json:"application"`
	ResumeParsed bool                `json:"resume_parsed"`
	Message      string              `json:"message"`
}

type ScheduleInterviewRequest struct {
	Mode     domain.InterviewMode
	Location string
	Date     string
	Time     string
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

// Store is the persistence surface this service needs.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetInternship(ctx context.Context, id uuid.UUID) (*domain.Internship, error)
	HasApplication(ctx context.Context, internshipID, applicantID uuid.UUID) (bool, error)
	CreateApplication(ctx context.Context, app *domain.Application) error
	MergeParsedResume(ctx context.Context, id uuid.UUID, payload json.RawMessage) error
	GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	GetApplicationDetail(ctx context.Context, id uuid.UUID) (*domain.ApplicationDetail, error)
	ScheduleInterview(ctx context.Context, id uuid.UUID, d domain.InterviewDetails) error
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error
	ListApplications(ctx context.Context, internshipID uuid.UUID) ([]domain.Application, error)
}

// Parser is the best-effort resume enrichment collaborator.
// *resume.Client satisfies it.
type Parser interface {
	Parse(ctx context.Context, resumeURL string) (json.RawMessage, error)
}

// Mailer sends notification email. *email.Client satisfies it.
type Mailer interface {
	Send(ctx context.Context, m email.Message) error
}

// Publisher emits domain events. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subj string, data []byte) error
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error)
	ScheduleInterview(ctx context.Context, id uuid.UUID, req ScheduleInterviewRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, to domain.ApplicationStatus) error
	ListByInternship(ctx context.Context, internshipID uuid.UUID) ([]domain.Application, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type applicationService struct {
	store   Store
	parser  Parser    // nil skips enrichment
	mailer  Mailer    // nil skips notification email
	events  Publisher // nil skips event publishing
	appName string
}

func New(store Store, parser Parser, mailer Mailer, events Publisher, appName string) Service {
	return &applicationService{
		store:   store,
		parser:  parser,
		mailer:  mailer,
		events:  events,
		appName: appName,
	}
}

// Apply records the application exactly once, then runs best-effort
// enrichment. Precondition checks run top-to-bottom; the first failure
// short-circuits. The store's unique constraint is the authoritative
// duplicate signal, the HasApplication check only buys a better error path.
func (s *applicationService) Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error) {
	if req.InternshipID == uuid.Nil || req.ApplicantID == uuid.Nil {
		return nil, ErrMissingFields
	}

	applicant, err := s.store.GetUser(ctx, req.ApplicantID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, fmt.Errorf("load applicant: %w", err)
	}

	if _, err := s.store.GetInternship(ctx, req.InternshipID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrInternshipNotFound
		}
		return nil, fmt.Errorf("load internship: %w", err)
	}

	exists, err := s.store.HasApplication(ctx, req.InternshipID, req.ApplicantID)
	if err != nil {
		return nil, fmt.Errorf("check existing application: %w", err)
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	app := &domain.Application{
		ID:           uuid.New(),
		InternshipID: req.InternshipID,
		ApplicantID:  req.ApplicantID,
		CoverLetter:  req.CoverLetter,
		ResumeURL:    req.ResumeURL,
		Gender:       applicant.Gender,
		Status:       domain.StatusApplied,
		CreatedAt:    time.Now(),
	}

	// Insert + counter increment commit together; the parser call stays
	// outside the transaction so a parser outage can't block the write.
	if err := s.store.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	result := &ApplyResult{
		Application:  app,
		ResumeParsed: false,
		Message:      "application submitted; resume parsing unavailable",
	}

	if s.enrich(ctx, app) {
		result.ResumeParsed = true
		result.Message = "application submitted"
	}

	s.publishCreated(app.ID)

	return result, nil
}

// enrich runs the resume parser and merges its payload onto the already
// durable application record. Never fails the caller.
func (s *applicationService) enrich(ctx context.Context, app *domain.Application) bool {
	if s.parser == nil || app.ResumeURL == "" {
		return false
	}

	payload, err := s.parser.Parse(ctx, app.ResumeURL)
	if err != nil {
		if !errors.Is(err, resume.ErrDisabled) {
			slog.Warn("resume parsing failed",
				"application_id", app.ID, "err", err)
		}
		return false
	}

	if err := s.store.MergeParsedResume(ctx, app.ID, payload); err != nil {
		slog.Warn("merging parsed resume failed",
			"application_id", app.ID, "err", err)
		return false
	}

	app.ParsedResume = payload
	return true
}

func (s *applicationService) publishCreated(id uuid.UUID) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(SubjectApplicationCreated, []byte(id.String())); err != nil {
		slog.Warn("publish application.created failed", "application_id", id, "err", err)
	}
}

// ScheduleInterview writes the schedule and forces status to Interview in
// one update, then notifies the applicant by email (best-effort).
func (s *applicationService) ScheduleInterview(ctx context.Context, id uuid.UUID, req ScheduleInterviewRequest) error {
	details := domain.InterviewDetails{
		Mode:     req.Mode,
		Location: req.Location,
		Date:     req.Date,
		Time:     req.Time,
	}
	if !details.HasAny() {
		return ErrNothingToUpdate
	}
	if req.Mode == domain.InterviewOffline && req.Location == "" {
		return ErrLocationRequired
	}

	if err := s.store.ScheduleInterview(ctx, id, details); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("schedule interview: %w", err)
	}

	s.notifyInterview(ctx, id)

	return nil
}

func (s *applicationService) notifyInterview(ctx context.Context, id uuid.UUID) {
	if s.mailer == nil {
		return
	}

	detail, err := s.store.GetApplicationDetail(ctx, id)
	if err != nil {
		slog.Warn("loading application detail for notification failed",
			"application_id", id, "err", err)
		return
	}

	msg := email.BuildInterviewScheduledEmail(email.InterviewEmailData{
		ApplicantName:   detail.ApplicantName,
		ApplicantEmail:  detail.ApplicantEmail,
		InternshipTitle: detail.InternshipTitle,
		Mode:            string(detail.InterviewMode),
		Location:        detail.InterviewLocation,
		Date:            detail.InterviewDate,
		Time:            detail.InterviewTime,
		AppName:         s.appName,
	})
	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.Warn("interview notification email failed",
			"application_id", id, "err", err)
	}
}

// allowedTransitions is the recruiter pipeline:
// Applied -> Shortlisted -> Interview -> Hired/Rejected,
// with Rejected reachable from any non-terminal stage.
var allowedTransitions = map[domain.ApplicationStatus][]domain.ApplicationStatus{
	domain.StatusApplied:     {domain.StatusShortlisted, domain.StatusRejected},
	domain.StatusShortlisted: {domain.StatusInterview, domain.StatusRejected},
	domain.StatusInterview:   {domain.StatusHired, domain.StatusRejected},
}

func (s *applicationService) UpdateStatus(ctx context.Context, id uuid.UUID, to domain.ApplicationStatus) error {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load application: %w", err)
	}

	allowed := false
	for _, next := range allowedTransitions[app.Status] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidTransition
	}

	if err := s.store.UpdateApplicationStatus(ctx, id, to); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

func (s *applicationService) ListByInternship(ctx context.Context, internshipID uuid.UUID) ([]domain.Application, error) {
	apps, err := s.store.ListApplications(ctx, internshipID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}
