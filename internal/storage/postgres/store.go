package postgres

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert hits a unique constraint.
	// For applications this is the authoritative conflict signal for the
	// (internship_id, applicant_id) pair.
	ErrDuplicate = errors.New("duplicate record")
)

// qb builds queries with Postgres-style $n placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store persists internships, applications and user reads in Postgres.
type Store struct {
	db *sql.DB
}

// New wires a sql.DB implementation.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
