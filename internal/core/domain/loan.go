package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus indicates the lifecycle state of a loan account.
type LoanStatus string

const (
	LoanActive LoanStatus = "ACTIVE"
	LoanClosed LoanStatus = "CLOSED"
)

// Loan is the minimal loan-account shape needed by the command handlers.
// The full lending domain (products, schedules, charges) lives outside this
// service; a loan here is just a target for commands and the parent of the
// transactions reported in a ChangedTransactionDetail.
type Loan struct {
	LoanID          string          `json:"loanID"`
	AccountNo       string          `json:"accountNo"` // Human-facing account number
	ClientName      string          `json:"clientName"`
	OfficeName      string          `json:"officeName"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          LoanStatus      `json:"status"`
	DisbursedOn     time.Time       `json:"disbursedOn"`
	AuditFields
}
