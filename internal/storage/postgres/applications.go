package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kairohq/internexplore_backend/internal/domain"
)

var applicationColumns = []string{
	"id", "internship_id", "applicant_id",
	"cover_letter", "resume_url", "parsed_resume", "gender",
	"interview_mode", "interview_location", "interview_date", "interview_time",
	"status", "created_at",
}

// HasApplication reports whether the (internship, applicant) pair already
// applied. This is the courtesy check; the unique index is the enforcement.
func (s *Store) HasApplication(ctx context.Context, internshipID, applicantID uuid.UUID) (bool, error) {
	query, args, err := qb.Select("1").
		From("internship_applications").
		Where(sq.Eq{"internship_id": internshipID, "applicant_id": applicantID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check application: %w", err)
	}
	return true, nil
}

// CreateApplication inserts the application and increments the internship's
// applications_count in a single transaction, so the counter moves exactly
// once per recorded application. A unique violation on the pair rolls the
// whole transaction back and surfaces as ErrDuplicate.
func (s *Store) CreateApplication(ctx context.Context, app *domain.Application) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	insert, args, err := qb.Insert("internship_applications").
		Columns(applicationColumns...).
		Values(
			app.ID, app.InternshipID, app.ApplicantID,
			app.CoverLetter, app.ResumeURL, []byte(app.ParsedResume), app.Gender,
			app.InterviewMode, app.InterviewLocation, app.InterviewDate, app.InterviewTime,
			app.Status, app.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert application: %w", err)
	}

	bump, args, err := qb.Update("internships").
		Set("applications_count", sq.Expr("applications_count + 1")).
		Where(sq.Eq{"id": app.InternshipID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build counter update: %w", err)
	}

	if _, err := tx.ExecContext(ctx, bump, args...); err != nil {
		return fmt.Errorf("increment applications_count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit application: %w", err)
	}
	return nil
}

// MergeParsedResume attaches the parser payload to an existing application.
func (s *Store) MergeParsedResume(ctx context.Context, id uuid.UUID, payload json.RawMessage) error {
	query, args, err := qb.Update("internship_applications").
		Set("parsed_resume", []byte(payload)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build merge: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("merge parsed resume: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("merge parsed resume: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ScheduleInterview writes the provided schedule fields and forces status to
// Interview in the same UPDATE, so schedule and status move together.
func (s *Store) ScheduleInterview(ctx context.Context, id uuid.UUID, d domain.InterviewDetails) error {
	q := qb.Update("internship_applications").
		Set("status", domain.StatusInterview)

	if d.Mode != "" {
		q = q.Set("interview_mode", d.Mode)
	}
	if d.Location != "" {
		q = q.Set("interview_location", d.Location)
	}
	if d.Date != "" {
		q = q.Set("interview_date", d.Date)
	}
	if d.Time != "" {
		q = q.Set("interview_time", d.Time)
	}

	query, args, err := q.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build schedule update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("schedule interview: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule interview: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateApplicationStatus moves an application to a new pipeline stage.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	query, args, err := qb.Update("internship_applications").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build status update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetApplication loads one application by ID.
func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	query, args, err := qb.Select(applicationColumns...).
		From("internship_applications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get application: %w", err)
		}
		return nil, ErrNotFound
	}

	app, err := scanApplication(rows)
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	return app, nil
}

// GetApplicationDetail loads an application joined with the contact fields
// notification flows need.
func (s *Store) GetApplicationDetail(ctx context.Context, id uuid.UUID) (*domain.ApplicationDetail, error) {
	cols := make([]string, 0, len(applicationColumns)+4)
	for _, c := range applicationColumns {
		cols = append(cols, "a."+c)
	}
	cols = append(cols, "i.title", "u.name", "u.email", "r.email")

	query, args, err := qb.Select(cols...).
		From("internship_applications a").
		Join("internships i ON i.id = a.internship_id").
		Join("users u ON u.id = a.applicant_id").
		Join("users r ON r.id = i.recruiter_id").
		Where(sq.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build detail query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get application detail: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get application detail: %w", err)
		}
		return nil, ErrNotFound
	}

	var (
		detail domain.ApplicationDetail
		parsed []byte
		mode   sql.NullString
		loc    sql.NullString
		date   sql.NullString
		tm     sql.NullString
	)
	err = rows.Scan(
		&detail.ID, &detail.InternshipID, &detail.ApplicantID,
		&detail.CoverLetter, &detail.ResumeURL, &parsed, &detail.Gender,
		&mode, &loc, &date, &tm,
		&detail.Status, &detail.CreatedAt,
		&detail.InternshipTitle, &detail.ApplicantName, &detail.ApplicantEmail, &detail.RecruiterEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("scan application detail: %w", err)
	}
	detail.ParsedResume = json.RawMessage(parsed)
	detail.InterviewMode = domain.InterviewMode(mode.String)
	detail.InterviewLocation = loc.String
	detail.InterviewDate = date.String
	detail.InterviewTime = tm.String

	return &detail, nil
}

// ListApplications returns all applications for an internship, newest first.
func (s *Store) ListApplications(ctx context.Context, internshipID uuid.UUID) ([]domain.Application, error) {
	query, args, err := qb.Select(applicationColumns...).
		From("internship_applications").
		Where(sq.Eq{"internship_id": internshipID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		result = append(result, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}

func scanApplication(rows *sql.Rows) (*domain.Application, error) {
	var (
		app    domain.Application
		parsed []byte
		mode   sql.NullString
		loc    sql.NullString
		date   sql.NullString
		tm     sql.NullString
	)

	err := rows.Scan(
		&app.ID, &app.InternshipID, &app.ApplicantID,
		&app.CoverLetter, &app.ResumeURL, &parsed, &app.Gender,
		&mode, &loc, &date, &tm,
		&app.Status, &app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.ParsedResume = json.RawMessage(parsed)
	app.InterviewMode = domain.InterviewMode(mode.String)
	app.InterviewLocation = loc.String
	app.InterviewDate = date.String
	app.InterviewTime = tm.String
	return &app, nil
}
