package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"

	"github.com/lib/pq"
)

type sqlAdminRepository struct {
	db SQLQuerier
}

// NewSQLAdminRepository creates sqlAdminRepository that implements port.AdminRepository
func NewSQLAdminRepository(db SQLQuerier) port.AdminRepository {
	return &sqlAdminRepository{
		db: db,
	}
}

// Create stores a new admin account
func (s *sqlAdminRepository) Create(ctx context.Context, account domain.AdminAccount) error {
	query := `INSERT INTO admin_accounts (id, username, totp_secret) VALUES ($1, $2, $3)`

	_, err := s.db.ExecContext(ctx, query, account.ID, account.Username, account.OneTimeSecret)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return fmt.Errorf("admin %s: %w", account.Username, domain.ErrConflict)
			}
		}
		return fmt.Errorf("error inserting admin account: %w", err)
	}
	return nil
}

// FindByUsername finds an admin account by its exact username
func (s *sqlAdminRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error) {
	query := `SELECT id, username, totp_secret, created_at FROM admin_accounts WHERE username = $1`

	var account domain.AdminAccount
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.OneTimeSecret,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return &account, nil
}
