package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kairohq/internexplore_backend/internal/domain"
)

// GetUser loads the profile fields application flows read.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := qb.Select("id", "email", "name", "role", "gender", "created_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var u domain.User
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Gender, &u.CreatedAt)
	switch {
	case err == sql.ErrNoRows:
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
