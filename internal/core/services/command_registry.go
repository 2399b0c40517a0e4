package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
)

// CommandKey identifies the operation a command payload belongs to.
type CommandKey struct {
	ActionName string
	EntityName string
}

func (k CommandKey) String() string {
	return k.ActionName + " " + k.EntityName
}

// CommandHandler executes one registered domain operation. Handle must run
// entirely within the caller's context so that a database transaction carried
// there (see portsrepo.WithTx) covers all of its writes.
type CommandHandler interface {
	// Validate checks the payload against the handler's schema without side effects.
	Validate(ctx context.Context, payload json.RawMessage) error

	// Handle executes the mutation and reports what changed.
	Handle(ctx context.Context, payload json.RawMessage, initiatedBy string) (*domain.DispatchResult, error)
}

// CommandRegistry is a static dispatcher keyed by (actionName, entityName).
// All handlers are registered during startup wiring, before any request is
// served; the map is read-only afterwards.
type CommandRegistry struct {
	handlers map[CommandKey]CommandHandler
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{handlers: make(map[CommandKey]CommandHandler)}
}

var _ portssvc.CommandDispatcher = (*CommandRegistry)(nil)

// Register binds a handler to an action/entity pair. Registering the same
// pair twice is a wiring bug and fails with ErrDuplicate.
func (r *CommandRegistry) Register(actionName string, entityName string, handler CommandHandler) error {
	key := CommandKey{ActionName: actionName, EntityName: entityName}
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("%w: handler already registered for %s", apperrors.ErrDuplicate, key)
	}
	r.handlers[key] = handler
	return nil
}

// MustRegister is Register for startup wiring, panicking on duplicates.
func (r *CommandRegistry) MustRegister(actionName string, entityName string, handler CommandHandler) {
	if err := r.Register(actionName, entityName, handler); err != nil {
		panic(err)
	}
}

// RegisteredKeys returns the registered action/entity pairs in sorted order.
func (r *CommandRegistry) RegisteredKeys() []CommandKey {
	keys := make([]CommandKey, 0, len(r.handlers))
	for key := range r.handlers {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func (r *CommandRegistry) lookup(actionName, entityName string) (CommandHandler, error) {
	handler, ok := r.handlers[CommandKey{ActionName: actionName, EntityName: entityName}]
	if !ok {
		return nil, fmt.Errorf("%w: no handler registered for action %q on entity %q", apperrors.ErrValidation, actionName, entityName)
	}
	return handler, nil
}

// Validate implements portssvc.CommandDispatcher.
func (r *CommandRegistry) Validate(ctx context.Context, actionName string, entityName string, payload json.RawMessage) error {
	handler, err := r.lookup(actionName, entityName)
	if err != nil {
		return err
	}
	return handler.Validate(ctx, payload)
}

// Dispatch implements portssvc.CommandDispatcher.
func (r *CommandRegistry) Dispatch(ctx context.Context, actionName string, entityName string, payload json.RawMessage, initiatedBy string) (*domain.DispatchResult, error) {
	handler, err := r.lookup(actionName, entityName)
	if err != nil {
		return nil, err
	}
	return handler.Handle(ctx, payload, initiatedBy)
}
