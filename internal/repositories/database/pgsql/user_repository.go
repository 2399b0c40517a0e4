package pgsql

import (
	"context"
	"errors"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	"github.com/corelend/command_audit_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository provides read access to application users.
type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserReader {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserReader = (*PgxUserRepository)(nil)

const userSelect = `
	SELECT user_id, username, password_hash, name,
	       created_at, created_by, last_updated_at, last_updated_by, deleted_at
	FROM app_users
`

func (r *PgxUserRepository) scanUser(row pgx.Row, what string) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Username, &m.PasswordHash, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by "+what, err)
	}
	u := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		DeletedAt:    m.DeletedAt,
	}
	u.CreatedAt = m.CreatedAt
	u.CreatedBy = m.CreatedBy
	u.LastUpdatedAt = m.LastUpdatedAt
	u.LastUpdatedBy = m.LastUpdatedBy
	return &u, nil
}

// FindUserByID retrieves an active user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	row := r.querier(ctx).QueryRow(ctx, userSelect+` WHERE user_id = $1 AND deleted_at IS NULL;`, userID)
	return r.scanUser(row, "id")
}

// FindUserByUsername retrieves an active user by username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.querier(ctx).QueryRow(ctx, userSelect+` WHERE username = $1 AND deleted_at IS NULL;`, username)
	return r.scanUser(row, "username")
}
