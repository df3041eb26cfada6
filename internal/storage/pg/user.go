package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ritim-dev/ritim/internal/domain"
	internal_errors "github.com/ritim-dev/ritim/internal/errors"
)

const userColumns = "id, handle, email, pass_hash, role, created"

func scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.Id, &user.Handle, &user.Email, &user.PassHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NewNotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *Storage) SaveUser(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO users (id, handle, email, pass_hash, role, created)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, user.Id, user.Handle, user.Email, user.PassHash, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return internal_errors.NewConflict("Handle or email already registered")
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

// UserByHandle is an exact, case-sensitive lookup. Handles are unique.
func (s *Storage) UserByHandle(ctx context.Context, handle domain.Handle) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE handle = $1", handle)
	return scanUser(row)
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}
