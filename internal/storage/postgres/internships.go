package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kairohq/internexplore_backend/internal/domain"
)

var internshipColumns = []string{
	"id", "title", "slug", "description", "location",
	"mode", "type", "category", "stipend_amount", "stipend_type",
	"required_skills", "perks", "screening_questions",
	"eligibility", "applicant_user_type",
	"start_date", "application_deadline",
	"is_active", "applications_count", "status",
	"company_id", "recruiter_id", "created_at",
}

// buildSearchQuery composes the dynamic filter over active internships.
// Kept separate from execution so filter composition is testable via ToSql.
func buildSearchQuery(f domain.InternshipFilter) sq.SelectBuilder {
	q := qb.Select(internshipColumns...).
		From("internships").
		Where(sq.Eq{"is_active": true})

	if f.Search != "" {
		q = q.Where(sq.ILike{"title": "%" + f.Search + "%"})
	}
	if f.Location != "" {
		q = q.Where(sq.ILike{"location": "%" + f.Location + "%"})
	}
	if f.MinStipend != nil {
		q = q.Where(sq.GtOrEq{"stipend_amount": *f.MinStipend})
	}
	if f.MaxStipend != nil {
		q = q.Where(sq.LtOrEq{"stipend_amount": *f.MaxStipend})
	}
	if f.Mode != "" {
		q = q.Where(sq.Eq{"mode": f.Mode})
	}
	if f.Type != "" {
		q = q.Where(sq.Eq{"type": f.Type})
	}
	if f.Category != "" {
		q = q.Where(sq.Eq{"category": f.Category})
	}
	if len(f.Skills) > 0 {
		// OR semantics: an internship matches if it requires ANY supplied skill.
		q = q.Where(
			"EXISTS (SELECT 1 FROM unnest(required_skills) AS skill WHERE lower(skill) = ANY(?))",
			pq.Array(f.Skills),
		)
	}

	q = q.OrderBy("created_at DESC")

	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q = q.Limit(uint64(f.PerPage)).Offset(uint64((page - 1) * f.PerPage))
	}

	return q
}

// SearchInternships returns active internships matching the filter,
// newest first. An empty result is not an error at this layer.
func (s *Store) SearchInternships(ctx context.Context, f domain.InternshipFilter) ([]domain.Internship, error) {
	query, args, err := buildSearchQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search internships: %w", err)
	}
	defer rows.Close()

	var result []domain.Internship
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan internship: %w", err)
		}
		result = append(result, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// CreateInternship inserts a posting. The caller is responsible for slug
// uniqueness; a race on the slug unique index surfaces as ErrDuplicate.
func (s *Store) CreateInternship(ctx context.Context, in *domain.Internship) error {
	query, args, err := qb.Insert("internships").
		Columns(internshipColumns...).
		Values(
			in.ID, in.Title, in.Slug, in.Description, in.Location,
			in.Mode, in.Type, in.Category, in.StipendAmount, in.StipendType,
			pq.Array(in.RequiredSkills), pq.Array(in.Perks), pq.Array(in.ScreeningQuestions),
			in.Eligibility, in.ApplicantUserType,
			in.StartDate, in.ApplicationDeadline,
			in.IsActive, in.ApplicationsCount, in.Status,
			in.CompanyID, in.RecruiterID, in.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert internship: %w", err)
	}
	return nil
}

// SlugExists reports whether a slug is already taken.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	query, args, err := qb.Select("1").
		From("internships").
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build slug query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check slug: %w", err)
	}
	return true, nil
}

// GetInternship loads one posting by ID.
func (s *Store) GetInternship(ctx context.Context, id uuid.UUID) (*domain.Internship, error) {
	return s.getInternshipWhere(ctx, sq.Eq{"id": id})
}

// GetInternshipBySlug loads one posting by its slug.
func (s *Store) GetInternshipBySlug(ctx context.Context, slug string) (*domain.Internship, error) {
	return s.getInternshipWhere(ctx, sq.Eq{"slug": slug})
}

func (s *Store) getInternshipWhere(ctx context.Context, pred sq.Eq) (*domain.Internship, error) {
	query, args, err := qb.Select(internshipColumns...).
		From("internships").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get internship: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get internship: %w", err)
		}
		return nil, ErrNotFound
	}

	in, err := scanInternship(rows)
	if err != nil {
		return nil, fmt.Errorf("scan internship: %w", err)
	}
	return in, nil
}

// PublishInternship flips a draft to published and activates it.
func (s *Store) PublishInternship(ctx context.Context, id uuid.UUID) error {
	query, args, err := qb.Update("internships").
		Set("status", domain.InternshipPublished).
		Set("is_active", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build publish: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("publish internship: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("publish internship: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInternship(rows *sql.Rows) (*domain.Internship, error) {
	var (
		in       domain.Internship
		stipend  sql.NullInt64
		start    sql.NullTime
		deadline sql.NullTime
	)

	err := rows.Scan(
		&in.ID, &in.Title, &in.Slug, &in.Description, &in.Location,
		&in.Mode, &in.Type, &in.Category, &stipend, &in.StipendType,
		pq.Array(&in.RequiredSkills), pq.Array(&in.Perks), pq.Array(&in.ScreeningQuestions),
		&in.Eligibility, &in.ApplicantUserType,
		&start, &deadline,
		&in.IsActive, &in.ApplicationsCount, &in.Status,
		&in.CompanyID, &in.RecruiterID, &in.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if stipend.Valid {
		v := stipend.Int64
		in.StipendAmount = &v
	}
	if start.Valid {
		t := start.Time
		in.StartDate = &t
	}
	if deadline.Valid {
		t := deadline.Time
		in.ApplicationDeadline = &t
	}
	return &in, nil
}
