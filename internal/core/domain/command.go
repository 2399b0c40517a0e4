package domain

import (
	"encoding/json"
	"time"
)

// ProcessingResult indicates the outcome of a submitted command.
// Transitions are one-directional: a record never re-enters
// AwaitingApproval once it has left that state.
type ProcessingResult string

const (
	AwaitingApproval ProcessingResult = "AWAITING_APPROVAL"
	Processed        ProcessingResult = "PROCESSED"
	Rejected         ProcessingResult = "REJECTED"
)

// CommandSource is the durable record of one attempted mutating operation.
// CommandAsJSON holds the original request payload verbatim; approval
// replays those exact bytes.
type CommandSource struct {
	CommandID        string           `json:"commandID"`
	ActionName       string           `json:"actionName"` // e.g. "CREATE"
	EntityName       string           `json:"entityName"` // e.g. "LOAN"
	ResourceID       *string          `json:"resourceID,omitempty"`    // nil until the command is resolved
	SubresourceID    *string          `json:"subresourceID,omitempty"` // optional sub-entity reference
	MakerID          string           `json:"makerID"`
	MadeOnDate       time.Time        `json:"madeOnDate"`
	CheckerID        *string          `json:"checkerID,omitempty"`     // nil while AWAITING_APPROVAL
	CheckedOnDate    *time.Time       `json:"checkedOnDate,omitempty"` // nil while AWAITING_APPROVAL
	ProcessingResult ProcessingResult `json:"processingResult"`
	CommandAsJSON    json.RawMessage  `json:"commandAsJson,omitempty"`
}

// IsAwaitingApproval reports whether the command can still be approved,
// rejected or deleted.
func (c *CommandSource) IsAwaitingApproval() bool {
	return c.ProcessingResult == AwaitingApproval
}

// DispatchResult is what a registered command handler returns after
// executing the underlying business mutation.
type DispatchResult struct {
	ResourceID    string
	SubresourceID *string
	Changes       *ChangedTransactionDetail
}
