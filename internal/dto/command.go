package dto

import (
	"encoding/json"
	"time"

	"github.com/corelend/command_audit_app/internal/core/domain"
)

// SubmitCommandRequest is the inbound shape for submitting a command.
// Command carries the operation payload as raw JSON; it is stored verbatim
// so that approval-time replay sees exactly what the maker submitted.
type SubmitCommandRequest struct {
	ActionName string          `json:"actionName" binding:"required"`
	EntityName string          `json:"entityName" binding:"required"`
	Command    json.RawMessage `json:"command" binding:"required"`
}

// CommandProcessingResult is returned from every write operation on the
// command source: submit, approve, reject and delete.
type CommandProcessingResult struct {
	CommandID        string                  `json:"commandId"`
	ProcessingResult domain.ProcessingResult `json:"processingResult"`
	ResourceID       *string                 `json:"resourceId,omitempty"`
	SubresourceID    *string                 `json:"subresourceId,omitempty"`
	Changes          *TransactionChanges     `json:"changes,omitempty"`
}

// TransactionChanges reports which loan transactions an apply created or
// reversed, in the order it did so.
type TransactionChanges struct {
	NewTransactions      []LoanTransactionResponse `json:"newTransactions"`
	ReversedTransactions []LoanTransactionResponse `json:"reversedTransactions"`
}

// ToTransactionChanges converts a domain change ledger to its response shape.
// Returns nil for a nil or empty ledger.
func ToTransactionChanges(d *domain.ChangedTransactionDetail) *TransactionChanges {
	if d == nil || d.IsEmpty() {
		return nil
	}
	return &TransactionChanges{
		NewTransactions:      ToLoanTransactionResponses(d.NewTransactions),
		ReversedTransactions: ToLoanTransactionResponses(d.ReversedTransactions),
	}
}

// AuditEntryResponse is the outbound shape of one audit trail row.
type AuditEntryResponse struct {
	ID               string                  `json:"id"`
	ActionName       string                  `json:"actionName"`
	EntityName       string                  `json:"entityName"`
	ResourceID       *string                 `json:"resourceId,omitempty"`
	SubresourceID    *string                 `json:"subresourceId,omitempty"`
	Maker            string                  `json:"maker"`
	MadeOnDate       time.Time               `json:"madeOnDate"`
	Checker          *string                 `json:"checker,omitempty"`
	CheckedOnDate    *time.Time              `json:"checkedOnDate,omitempty"`
	ProcessingResult domain.ProcessingResult `json:"processingResult"`
	OfficeName       *string                 `json:"officeName,omitempty"`
	ClientName       *string                 `json:"clientName,omitempty"`
	LoanAccountNo    *string                 `json:"loanAccountNo,omitempty"`
	CommandAsJSON    json.RawMessage         `json:"commandAsJson,omitempty"`
}

// ToAuditEntryResponse converts a domain audit entry to its response shape.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:               e.CommandID,
		ActionName:       e.ActionName,
		EntityName:       e.EntityName,
		ResourceID:       e.ResourceID,
		SubresourceID:    e.SubresourceID,
		Maker:            e.Maker,
		MadeOnDate:       e.MadeOnDate,
		Checker:          e.Checker,
		CheckedOnDate:    e.CheckedOnDate,
		ProcessingResult: e.ProcessingResult,
		OfficeName:       e.OfficeName,
		ClientName:       e.ClientName,
		LoanAccountNo:    e.LoanAccountNo,
		CommandAsJSON:    e.CommandAsJSON,
	}
}

// ToAuditEntryResponses converts a slice of domain audit entries.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToAuditEntryResponse(&entries[i])
	}
	return responses
}

// ListAuditParams holds paging parameters for listing the audit trail.
type ListAuditParams struct {
	Limit       int
	NextToken   *string
	IncludeJSON bool
}

// ListAuditResponse is a token-paginated page of audit entries.
type ListAuditResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// AppUserResponse is the minimal user shape in the audit search template.
type AppUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuditSearchTemplateResponse lists the valid filter values for audit search.
type AuditSearchTemplateResponse struct {
	AppUsers    []AppUserResponse `json:"appUsers"`
	ActionNames []string          `json:"actionNames"`
	EntityNames []string          `json:"entityNames"`
}

// ToAuditSearchTemplateResponse converts the domain search template.
func ToAuditSearchTemplateResponse(t *domain.AuditSearchTemplate) *AuditSearchTemplateResponse {
	users := make([]AppUserResponse, len(t.AppUsers))
	for i, u := range t.AppUsers {
		users[i] = AppUserResponse{ID: u.UserID, Username: u.Username}
	}
	return &AuditSearchTemplateResponse{
		AppUsers:    users,
		ActionNames: t.ActionNames,
		EntityNames: t.EntityNames,
	}
}
