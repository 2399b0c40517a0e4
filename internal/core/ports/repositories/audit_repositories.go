package repositories

import (
	"context"

	"github.com/corelend/command_audit_app/internal/core/domain"
)

// AuditReader defines the read-side query surface over the audit trail.
// All filtering goes through domain.AuditSearchCriteria so the
// implementation can evaluate it with parameterized queries only.
type AuditReader interface {
	// ListEntriesToBeChecked retrieves all AWAITING_APPROVAL entries matching
	// the criteria, ordered by made_on_date ascending (oldest pending first).
	// CommandAsJSON is attached only when includeJSON is set.
	ListEntriesToBeChecked(ctx context.Context, criteria domain.AuditSearchCriteria, includeJSON bool) ([]domain.AuditEntry, error)

	// ListAuditEntries retrieves a token-paginated page of the full audit
	// trail (any processing result) matching the criteria, newest first.
	ListAuditEntries(ctx context.Context, criteria domain.AuditSearchCriteria, limit int, nextToken *string, includeJSON bool) ([]domain.AuditEntry, *string, error)

	// RetrieveSearchTemplate returns the distinct users, action names and
	// entity names present in the audit trail.
	RetrieveSearchTemplate(ctx context.Context) (*domain.AuditSearchTemplate, error)
}
