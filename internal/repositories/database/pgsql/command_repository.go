package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	"github.com/corelend/command_audit_app/internal/models"
	"github.com/corelend/command_audit_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCommandSourceRepository persists command source records.
type PgxCommandSourceRepository struct {
	BaseRepository
}

// newPgxCommandSourceRepository creates a new repository for command source data.
func newPgxCommandSourceRepository(pool *pgxpool.Pool) portsrepo.CommandSourceRepositoryWithTx {
	return &PgxCommandSourceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommandSourceRepositoryWithTx = (*PgxCommandSourceRepository)(nil)

const commandSourceColumns = `command_id, action_name, entity_name, resource_id, subresource_id,
	       maker_id, made_on_date, checker_id, checked_on_date, processing_result, command_as_json`

// SaveCommandSource persists a newly submitted command record. It joins an
// ambient transaction when the context carries one.
func (r *PgxCommandSourceRepository) SaveCommandSource(ctx context.Context, cmd domain.CommandSource) error {
	m := mapping.ToModelCommandSource(cmd)
	query := `
		INSERT INTO command_sources (` + commandSourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.querier(ctx).Exec(ctx, query,
		m.CommandID,
		m.ActionName,
		m.EntityName,
		m.ResourceID,
		m.SubresourceID,
		m.MakerID,
		m.MadeOnDate,
		m.CheckerID,
		m.CheckedOnDate,
		m.ProcessingResult,
		m.CommandAsJSON,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert command source "+m.CommandID, err)
	}
	return nil
}

func scanCommandSource(row pgx.Row) (*domain.CommandSource, error) {
	var m models.CommandSource
	err := row.Scan(
		&m.CommandID,
		&m.ActionName,
		&m.EntityName,
		&m.ResourceID,
		&m.SubresourceID,
		&m.MakerID,
		&m.MadeOnDate,
		&m.CheckerID,
		&m.CheckedOnDate,
		&m.ProcessingResult,
		&m.CommandAsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan command source", err)
	}
	d := mapping.ToDomainCommandSource(m)
	return &d, nil
}

// FindCommandSourceByID retrieves a command record by its ID.
func (r *PgxCommandSourceRepository) FindCommandSourceByID(ctx context.Context, commandID string) (*domain.CommandSource, error) {
	query := `
		SELECT ` + commandSourceColumns + `
		FROM command_sources
		WHERE command_id = $1;
	`
	return scanCommandSource(r.querier(ctx).QueryRow(ctx, query, commandID))
}

// FindCommandSourceByIDForUpdate retrieves a command record with a row-level
// lock so concurrent state transitions on the same command serialize.
func (r *PgxCommandSourceRepository) FindCommandSourceByIDForUpdate(ctx context.Context, tx pgx.Tx, commandID string) (*domain.CommandSource, error) {
	query := `
		SELECT ` + commandSourceColumns + `
		FROM command_sources
		WHERE command_id = $1
		FOR UPDATE;
	`
	return scanCommandSource(tx.QueryRow(ctx, query, commandID))
}

// UpdateCommandResolution records the checker's decision. The checked fields
// are written exactly once: the guard on processing_result makes a lost
// update impossible even without the row lock.
func (r *PgxCommandSourceRepository) UpdateCommandResolution(ctx context.Context, tx pgx.Tx, commandID string, checkerID string, checkedOnDate time.Time, result domain.ProcessingResult, resourceID *string, subresourceID *string) error {
	query := `
		UPDATE command_sources
		SET checker_id = $2, checked_on_date = $3, processing_result = $4,
		    resource_id = $5, subresource_id = $6
		WHERE command_id = $1 AND processing_result = $7;
	`
	tag, err := tx.Exec(ctx, query,
		commandID,
		checkerID,
		checkedOnDate,
		string(result),
		resourceID,
		subresourceID,
		string(domain.AwaitingApproval),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update command source "+commandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}
	return nil
}

// DeleteCommandSource removes a pending command record.
func (r *PgxCommandSourceRepository) DeleteCommandSource(ctx context.Context, tx pgx.Tx, commandID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM command_sources WHERE command_id = $1;`, commandID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete command source "+commandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
