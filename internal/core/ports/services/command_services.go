package services

import (
	"context"
	"encoding/json"

	"github.com/corelend/command_audit_app/internal/core/domain"
	"github.com/corelend/command_audit_app/internal/dto"
)

// CommandSourceSvcFacade orchestrates submit/approve/reject/delete of
// commands: the maker-checker workflow state machine.
type CommandSourceSvcFacade interface {
	// SubmitCommand records and, depending on the approval policy for the
	// action/entity pair, either immediately executes the operation or queues
	// it for a checker.
	SubmitCommand(ctx context.Context, req dto.SubmitCommandRequest, makerID string) (*dto.CommandProcessingResult, error)

	// ApproveEntry replays a pending command's stored payload and transitions
	// the record to PROCESSED. Replay and transition are one atomic unit.
	ApproveEntry(ctx context.Context, commandID string, checkerID string) (*dto.CommandProcessingResult, error)

	// RejectEntry transitions a pending command to REJECTED without replay.
	RejectEntry(ctx context.Context, commandID string, checkerID string) (*dto.CommandProcessingResult, error)

	// DeleteEntry removes a pending command and returns its id. Resolved
	// records are immutable historical facts and may not be deleted.
	DeleteEntry(ctx context.Context, commandID string, requestingUserID string) (string, error)
}

// AuditSvcFacade is the query surface over stored command/audit records.
type AuditSvcFacade interface {
	// RetrieveEntriesToBeChecked lists pending maker-checker entries matching
	// the criteria, oldest first.
	RetrieveEntriesToBeChecked(ctx context.Context, criteria domain.AuditSearchCriteria, includeJSON bool, requestingUserID string) ([]dto.AuditEntryResponse, error)

	// RetrieveAuditEntries lists a paginated page of the full audit trail.
	RetrieveAuditEntries(ctx context.Context, criteria domain.AuditSearchCriteria, params dto.ListAuditParams, requestingUserID string) (*dto.ListAuditResponse, error)

	// RetrieveSearchTemplate returns the valid filter values for the audit
	// search UI. Pure read, no side effects.
	RetrieveSearchTemplate(ctx context.Context, requestingUserID string) (*dto.AuditSearchTemplateResponse, error)
}

// AuthSvcFacade authenticates users and issues API tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT for the user.
	Login(ctx context.Context, username string, password string) (*dto.LoginResponse, error)
}

// CommandDispatcher executes the underlying business mutation for a
// decoded command. Implementations are expected to be a static registry
// keyed by (actionName, entityName) so coverage of registered actions can be
// verified up front rather than discovered at replay time.
type CommandDispatcher interface {
	// Validate checks that the action/entity pair is registered and that the
	// payload passes the handler's schema validation.
	Validate(ctx context.Context, actionName string, entityName string, payload json.RawMessage) error

	// Dispatch executes the mutation and reports the resolved resource plus
	// the transaction changes it produced. initiatedBy is the user the
	// mutation is audited against (the maker on direct execution, the maker
	// again on approval replay).
	Dispatch(ctx context.Context, actionName string, entityName string, payload json.RawMessage, initiatedBy string) (*domain.DispatchResult, error)
}

// PayloadCodec produces and consumes the opaque serialized command payload.
// Encode/Decode must round-trip exactly: approval replays the stored bytes
// verbatim.
type PayloadCodec interface {
	Encode(v any) (json.RawMessage, error)
	Decode(data json.RawMessage, v any) error
}
