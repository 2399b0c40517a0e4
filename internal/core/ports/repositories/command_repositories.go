package repositories

import (
	"context"
	"time"

	"github.com/corelend/command_audit_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CommandSourceReader defines read operations for command source records.
type CommandSourceReader interface {
	// FindCommandSourceByID retrieves a command record by its unique identifier.
	FindCommandSourceByID(ctx context.Context, commandID string) (*domain.CommandSource, error)

	// FindCommandSourceByIDForUpdate retrieves a command record inside the
	// given transaction, taking a row-level lock so that concurrent state
	// transitions on the same command serialize.
	FindCommandSourceByIDForUpdate(ctx context.Context, tx pgx.Tx, commandID string) (*domain.CommandSource, error)
}

// CommandSourceWriter defines write operations for command source records.
type CommandSourceWriter interface {
	// SaveCommandSource persists a newly submitted command record.
	SaveCommandSource(ctx context.Context, cmd domain.CommandSource) error

	// UpdateCommandResolution records the checker's decision inside the given
	// transaction: checker identity, check time, final processing result and,
	// for approvals, the resolved resource identifiers.
	UpdateCommandResolution(ctx context.Context, tx pgx.Tx, commandID string, checkerID string, checkedOnDate time.Time, result domain.ProcessingResult, resourceID *string, subresourceID *string) error

	// DeleteCommandSource removes a command record inside the given transaction.
	DeleteCommandSource(ctx context.Context, tx pgx.Tx, commandID string) error
}

// CommandSourceRepositoryFacade combines all command source repository interfaces.
type CommandSourceRepositoryFacade interface {
	CommandSourceReader
	CommandSourceWriter
}

// CommandSourceRepositoryWithTx extends the facade with transaction capabilities.
type CommandSourceRepositoryWithTx interface {
	CommandSourceRepositoryFacade
	TransactionManager
}
