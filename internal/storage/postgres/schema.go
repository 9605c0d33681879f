package postgres

import (
	"context"
	"fmt"
)

// Schema owned by this service. The profile-management side shares the users
// table; everything else is ours. The unique index on
// (internship_id, applicant_id) is the source of truth for the
// one-application-per-pair rule.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          UUID PRIMARY KEY,
		email       TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL DEFAULT '',
		role        TEXT NOT NULL DEFAULT 'applicant',
		gender      TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS internships (
		id                   UUID PRIMARY KEY,
		title                TEXT NOT NULL,
		slug                 TEXT NOT NULL UNIQUE,
		description          TEXT NOT NULL DEFAULT '',
		location             TEXT NOT NULL DEFAULT '',
		mode                 TEXT NOT NULL DEFAULT 'full-time',
		type                 TEXT NOT NULL DEFAULT 'onsite',
		category             TEXT NOT NULL DEFAULT '',
		stipend_amount       BIGINT,
		stipend_type         TEXT NOT NULL DEFAULT '',
		required_skills      TEXT[] NOT NULL DEFAULT '{}',
		perks                TEXT[] NOT NULL DEFAULT '{}',
		screening_questions  TEXT[] NOT NULL DEFAULT '{}',
		eligibility          TEXT NOT NULL DEFAULT '',
		applicant_user_type  TEXT NOT NULL DEFAULT '',
		start_date           TIMESTAMPTZ,
		application_deadline TIMESTAMPTZ,
		is_active            BOOLEAN NOT NULL DEFAULT FALSE,
		applications_count   INTEGER NOT NULL DEFAULT 0,
		status               TEXT NOT NULL DEFAULT 'draft',
		company_id           UUID NOT NULL,
		recruiter_id         UUID NOT NULL,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_internships_active_created
		ON internships (is_active, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS internship_applications (
		id                 UUID PRIMARY KEY,
		internship_id      UUID NOT NULL REFERENCES internships (id),
		applicant_id       UUID NOT NULL REFERENCES users (id),
		cover_letter       TEXT NOT NULL DEFAULT '',
		resume_url         TEXT NOT NULL DEFAULT '',
		parsed_resume      JSONB,
		gender             TEXT NOT NULL DEFAULT '',
		interview_mode     TEXT,
		interview_location TEXT,
		interview_date     TEXT,
		interview_time     TEXT,
		status             TEXT NOT NULL DEFAULT 'Applied'
			CHECK (status IN ('Applied', 'Shortlisted', 'Interview', 'Hired', 'Rejected')),
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (internship_id, applicant_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_applications_internship
		ON internship_applications (internship_id, created_at DESC)`,
}

// Migrate applies the schema statements in order. Statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
