package repositories

import (
	"context"

	"github.com/corelend/command_audit_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// PermissionReader answers whether a user holds a named permission.
type PermissionReader interface {
	// HasPermission reports whether the user holds the permission identified
	// by resourceName (e.g. "MAKERCHECKER", "CREATE_LOAN").
	HasPermission(ctx context.Context, userID string, resourceName string) (bool, error)
}

// ApprovalRuleReader answers whether an action/entity pair is configured to
// require a second approver.
type ApprovalRuleReader interface {
	// RequiresApproval reports whether commands for the given action and
	// entity must be queued for a checker instead of executing immediately.
	RequiresApproval(ctx context.Context, actionName string, entityName string) (bool, error)
}
