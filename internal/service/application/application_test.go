package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/kairohq/internexplore_backend/internal/domain"
	"github.com/kairohq/internexplore_backend/internal/storage/postgres"
	"github.com/kairohq/internexplore_backend/pkg/email"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeAppStore struct {
	users        map[uuid.UUID]*domain.User
	internships  map[uuid.UUID]*domain.Internship
	applications map[uuid.UUID]*domain.Application
	hasExisting  bool

	createErr     error
	createCalls   int
	mergeErr      error
	mergeCalls    int
	scheduled     *domain.InterviewDetails
	scheduleErr   error
	statusUpdates []domain.ApplicationStatus
	detail        *domain.ApplicationDetail
	detailErr     error
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{
		users:        map[uuid.UUID]*domain.User{},
		internships:  map[uuid.UUID]*domain.Internship{},
		applications: map[uuid.UUID]*domain.Application{},
	}
}

func (f *fakeAppStore) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return u, nil
}

func (f *fakeAppStore) GetInternship(ctx context.Context, id uuid.UUID) (*domain.Internship, error) {
	in, ok := f.internships[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return in, nil
}

func (f *fakeAppStore) HasApplication(ctx context.Context, internshipID, applicantID uuid.UUID) (bool, error) {
	return f.hasExisting, nil
}

func (f *fakeAppStore) CreateApplication(ctx context.Context, app *domain.Application) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.applications[app.ID] = app
	return nil
}

func (f *fakeAppStore) MergeParsedResume(ctx context.Context, id uuid.UUID, payload json.RawMessage) error {
	f.mergeCalls++
	return f.mergeErr
}

func (f *fakeAppStore) GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return app, nil
}

func (f *fakeAppStore) GetApplicationDetail(ctx context.Context, id uuid.UUID) (*domain.ApplicationDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if f.detail != nil {
		return f.detail, nil
	}
	return nil, postgres.ErrNotFound
}

func (f *fakeAppStore) ScheduleInterview(ctx context.Context, id uuid.UUID, d domain.InterviewDetails) error {
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.scheduled = &d
	return nil
}

func (f *fakeAppStore) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeAppStore) ListApplications(ctx context.Context, internshipID uuid.UUID) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range f.applications {
		if app.InternshipID == internshipID {
			out = append(out, *app)
		}
	}
	return out, nil
}

type fakeParser struct {
	payload json.RawMessage
	err     error
	calls   int
}

func (f *fakeParser) Parse(ctx context.Context, resumeURL string) (json.RawMessage, error) {
	f.calls++
	return f.payload, f.err
}

type fakeMailer struct {
	sent []email.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, m email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) Publish(subj string, data []byte) error {
	f.subjects = append(f.subjects, subj)
	return nil
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

func seededStore() (*fakeAppStore, uuid.UUID, uuid.UUID) {
	store := newFakeAppStore()
	applicantID := uuid.New()
	internshipID := uuid.New()
	store.users[applicantID] = &domain.User{ID: applicantID, Name: "Asha", Gender: "female"}
	store.internships[internshipID] = &domain.Internship{ID: internshipID, Title: "Backend Intern"}
	return store, internshipID, applicantID
}

func TestApply_MissingIDs(t *testing.T) {
	store, internshipID, _ := seededStore()
	svc := New(store, nil, nil, nil, "Test")

	_, err := svc.Apply(context.Background(), ApplyRequest{InternshipID: internshipID})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if store.createCalls != 0 {
		t.Error("no write expected on validation failure")
	}
}

func TestApply_UnknownApplicantCheckedBeforeInternship(t *testing.T) {
	store := newFakeAppStore()
	// neither the applicant nor the internship exists; the applicant
	// check must win
	svc := New(store, nil, nil, nil, "Test")

	_, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: uuid.New(),
		ApplicantID:  uuid.New(),
	})
	if !errors.Is(err, ErrApplicantNotFound) {
		t.Fatalf("expected ErrApplicantNotFound, got %v", err)
	}
}

func TestApply_UnknownInternship(t *testing.T) {
	store, _, applicantID := seededStore()
	svc := New(store, nil, nil, nil, "Test")

	_, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: uuid.New(),
		ApplicantID:  applicantID,
	})
	if !errors.Is(err, ErrInternshipNotFound) {
		t.Fatalf("expected ErrInternshipNotFound, got %v", err)
	}
}

func TestApply_DuplicatePrecheck(t *testing.T) {
	store, internshipID, applicantID := seededStore()
	store.hasExisting = true
	svc := New(store, nil, nil, nil, "Test")

	_, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: internshipID,
		ApplicantID:  applicantID,
	})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if store.createCalls != 0 {
		t.Error("no write expected once duplicate is detected")
	}
}

func TestApply_ConstraintRaceMapsToAlreadyApplied(t *testing.T) {
	store, internshipID, applicantID := seededStore()
	store.createErr = postgres.ErrDuplicate
	svc := New(store, nil, nil, nil, "Test")

	_, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: internshipID,
		ApplicantID:  applicantID,
	})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied on constraint violation, got %v", err)
	}
	if store.createCalls != 1 {
		t.Errorf("expected exactly one insert attempt, got %d", store.createCalls)
	}
}

func TestApply_DenormalizesGender(t *testing.T) {
	store, internshipID, applicantID := seededStore()
	svc := New(store, nil, nil, nil, "Test")

	res, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: internshipID,
		ApplicantID:  applicantID,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Application.Gender != "female" {
		t.Errorf("expected gender denormalized from applicant, got %q", res.Application.Gender)
	}
	if res.Application.Status != domain.StatusApplied {
		t.Errorf("expected initial status Applied, got %q", res.Application.Status)
	}
}

func TestApply_ParserSuccessEnriches(t *testing.T) {
	store, internshipID, applicantID := seededStore()
	parser := &fakeParser{payload: json.RawMessage(`{"skills":["go"]}`)}
	svc := New(store, parser, nil, nil, "Test")

	res, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: internshipID,
		ApplicantID:  applicantID,
		ResumeURL:    "https://cdn.example.com/resume.pdf",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !res.ResumeParsed {
		t.Error("expected resume to be parsed")
	}
	if store.mergeCalls != 1 {
		t.Errorf("expected one merge call, got %d", store.mergeCalls)
	}
}

func TestApply_ParserFailureStillSucceeds(t *testing.T) {
	store, internshipID, applicantID := seededStore()
	parser := &fakeParser{err: errors.New("parser down")}
	svc := New(store, parser, nil, nil, "Test")

	res, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: internshipID,
		ApplicantID:  applicantID,
		ResumeURL:    "https://cdn.example.com/resume.pdf",
	})
	if err != nil {
		t.Fatalf("Apply must not fail when parsing fails, got %v", err)
	}
	if res.ResumeParsed {
		t.Error("expected ResumeParsed false")
	}
	if store.createCalls != 1 {
		t.Errorf("application must still be recorded, got %d creates", store.createCalls)
	}
}

func TestApply_NoResumeURLSkipsParser(t *testing.T) {
	store, internshipID, applicantID := seededStore()
	parser := &fakeParser{payload: json.RawMessage(`{}`)}
	svc := New(store, parser, nil, nil, "Test")

	_, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: internshipID,
		ApplicantID:  applicantID,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if parser.calls != 0 {
		t.Errorf("parser should not run without a resume URL, got %d calls", parser.calls)
	}
}

func TestApply_PublishesCreatedEvent(t *testing.T) {
	store, internshipID, applicantID := seededStore()
	events := &fakePublisher{}
	svc := New(store, nil, nil, events, "Test")

	_, err := svc.Apply(context.Background(), ApplyRequest{
		InternshipID: internshipID,
		ApplicantID:  applicantID,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(events.subjects) != 1 || events.subjects[0] != SubjectApplicationCreated {
		t.Errorf("expected one created event, got %v", events.subjects)
	}
}

// ---------------------------------------------------------------------------
// ScheduleInterview
// ---------------------------------------------------------------------------

func TestScheduleInterview_RequiresAtLeastOneField(t *testing.T) {
	svc := New(newFakeAppStore(), nil, nil, nil, "Test")

	err := svc.ScheduleInterview(context.Background(), uuid.New(), ScheduleInterviewRequest{})
	if !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
}

func TestScheduleInterview_OfflineNeedsLocation(t *testing.T) {
	svc := New(newFakeAppStore(), nil, nil, nil, "Test")

	err := svc.ScheduleInterview(context.Background(), uuid.New(), ScheduleInterviewRequest{
		Mode: domain.InterviewOffline,
	})
	if !errors.Is(err, ErrLocationRequired) {
		t.Fatalf("expected ErrLocationRequired, got %v", err)
	}
}

func TestScheduleInterview_OnlineWithoutLocation(t *testing.T) {
	store := newFakeAppStore()
	svc := New(store, nil, nil, nil, "Test")

	err := svc.ScheduleInterview(context.Background(), uuid.New(), ScheduleInterviewRequest{
		Mode: domain.InterviewOnline,
		Date: "2026-09-15",
	})
	if err != nil {
		t.Fatalf("ScheduleInterview failed: %v", err)
	}
	if store.scheduled == nil || store.scheduled.Mode != domain.InterviewOnline {
		t.Errorf("expected schedule persisted, got %+v", store.scheduled)
	}
}

func TestScheduleInterview_UnknownApplication(t *testing.T) {
	store := newFakeAppStore()
	store.scheduleErr = postgres.ErrNotFound
	svc := New(store, nil, nil, nil, "Test")

	err := svc.ScheduleInterview(context.Background(), uuid.New(), ScheduleInterviewRequest{
		Date: "2026-09-15",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleInterview_SendsApplicantEmail(t *testing.T) {
	store := newFakeAppStore()
	store.detail = &domain.ApplicationDetail{
		Application: domain.Application{
			InterviewMode: domain.InterviewOnline,
			InterviewDate: "2026-09-15",
		},
		InternshipTitle: "Backend Intern",
		ApplicantName:   "Asha",
		ApplicantEmail:  "asha@example.com",
	}
	mailer := &fakeMailer{}
	svc := New(store, nil, mailer, nil, "Test")

	err := svc.ScheduleInterview(context.Background(), uuid.New(), ScheduleInterviewRequest{
		Mode: domain.InterviewOnline,
		Date: "2026-09-15",
	})
	if err != nil {
		t.Fatalf("ScheduleInterview failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].To[0] != "asha@example.com" {
		t.Errorf("email should go to the applicant, got %v", mailer.sent[0].To)
	}
}

func TestScheduleInterview_EmailFailureIsSwallowed(t *testing.T) {
	store := newFakeAppStore()
	store.detailErr = errors.New("connection refused")
	mailer := &fakeMailer{}
	svc := New(store, nil, mailer, nil, "Test")

	err := svc.ScheduleInterview(context.Background(), uuid.New(), ScheduleInterviewRequest{
		Time: "10:30",
	})
	if err != nil {
		t.Fatalf("notification failure must not fail scheduling, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus
// ---------------------------------------------------------------------------

func TestUpdateStatus_Transitions(t *testing.T) {
	cases := []struct {
		name string
		from domain.ApplicationStatus
		to   domain.ApplicationStatus
		ok   bool
	}{
		{"applied to shortlisted", domain.StatusApplied, domain.StatusShortlisted, true},
		{"applied to rejected", domain.StatusApplied, domain.StatusRejected, true},
		{"applied to hired", domain.StatusApplied, domain.StatusHired, false},
		{"shortlisted to interview", domain.StatusShortlisted, domain.StatusInterview, true},
		{"interview to hired", domain.StatusInterview, domain.StatusHired, true},
		{"hired is terminal", domain.StatusHired, domain.StatusRejected, false},
		{"rejected is terminal", domain.StatusRejected, domain.StatusShortlisted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeAppStore()
			id := uuid.New()
			store.applications[id] = &domain.Application{ID: id, Status: tc.from}
			svc := New(store, nil, nil, nil, "Test")

			err := svc.UpdateStatus(context.Background(), id, tc.to)
			if tc.ok && err != nil {
				t.Fatalf("expected transition allowed, got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestUpdateStatus_UnknownApplication(t *testing.T) {
	svc := New(newFakeAppStore(), nil, nil, nil, "Test")

	err := svc.UpdateStatus(context.Background(), uuid.New(), domain.StatusShortlisted)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
