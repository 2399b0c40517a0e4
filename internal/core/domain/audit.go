package domain

import (
	"encoding/json"
	"time"
)

// AuditEntry is the read-side projection of a CommandSource, enriched with
// display names resolved from foreign keys (maker/checker usernames, loan
// account number, office name). These denormalized fields are derived by the
// read path and are never part of the write model.
type AuditEntry struct {
	CommandID        string           `json:"id"`
	ActionName       string           `json:"actionName"`
	EntityName       string           `json:"entityName"`
	ResourceID       *string          `json:"resourceId,omitempty"`
	SubresourceID    *string          `json:"subresourceId,omitempty"`
	Maker            string           `json:"maker"` // Display name, not ID
	MakerID          string           `json:"makerId"`
	MadeOnDate       time.Time        `json:"madeOnDate"`
	Checker          *string          `json:"checker,omitempty"`
	CheckedOnDate    *time.Time       `json:"checkedOnDate,omitempty"`
	ProcessingResult ProcessingResult `json:"processingResult"`
	OfficeName       *string          `json:"officeName,omitempty"`
	ClientName       *string          `json:"clientName,omitempty"`
	LoanAccountNo    *string          `json:"loanAccountNo,omitempty"`
	CommandAsJSON    json.RawMessage  `json:"commandAsJson,omitempty"` // Attached only when requested
}

// AuditSearchCriteria is a structured set of optional filters over the audit
// trail. Filters combine conjunctively; a nil field imposes no constraint.
// It replaces any string-concatenated criteria so the persistence layer can
// evaluate it with parameterized queries only.
type AuditSearchCriteria struct {
	ActionName       *string    // Exact match
	EntityName       *string    // Prefix match
	ResourceID       *string    // Exact match
	MakerID          *string    // Exact match
	MadeOnDateFrom   *time.Time // Inclusive lower bound
	MadeOnDateTo     *time.Time // Inclusive upper bound
	ProcessingResult *ProcessingResult
}

// IsZero reports whether no filter is set at all.
func (c AuditSearchCriteria) IsZero() bool {
	return c.ActionName == nil && c.EntityName == nil && c.ResourceID == nil &&
		c.MakerID == nil && c.MadeOnDateFrom == nil && c.MadeOnDateTo == nil &&
		c.ProcessingResult == nil
}

// AppUserSummary is the minimal user shape shown in the audit search template.
type AppUserSummary struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// AuditSearchTemplate lists the filter values that legitimately appear in
// the audit trail, used by callers to populate a search UI.
type AuditSearchTemplate struct {
	AppUsers    []AppUserSummary `json:"appUsers"`
	ActionNames []string         `json:"actionNames"`
	EntityNames []string         `json:"entityNames"`
}
