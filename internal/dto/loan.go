package dto

import (
	"time"

	"github.com/corelend/command_audit_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanPayload is the command payload for "CREATE LOAN".
type CreateLoanPayload struct {
	ClientName      string          `json:"clientName" validate:"required"`
	OfficeName      string          `json:"officeName" validate:"required"`
	PrincipalAmount decimal.Decimal `json:"principalAmount" validate:"required"`
	CurrencyCode    string          `json:"currencyCode" validate:"required,len=3"`
	DisbursedOn     time.Time       `json:"disbursedOn" validate:"required"`
}

// AdjustLoanTransactionPayload is the command payload for
// "ADJUST LOANTRANSACTION": reverse an existing repayment and write the
// corrected amount in its place.
type AdjustLoanTransactionPayload struct {
	LoanID         string          `json:"loanId" validate:"required"`
	TransactionID  string          `json:"transactionId" validate:"required"`
	AdjustedAmount decimal.Decimal `json:"adjustedAmount" validate:"required"`
}

// LoanTransactionResponse is the outbound shape of one loan transaction.
type LoanTransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	LoanID          string          `json:"loanID"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Reversed        bool            `json:"reversed"`
}

// ToLoanTransactionResponse converts a domain loan transaction.
func ToLoanTransactionResponse(txn *domain.LoanTransaction) LoanTransactionResponse {
	return LoanTransactionResponse{
		TransactionID:   txn.TransactionID,
		LoanID:          txn.LoanID,
		Type:            string(txn.TransactionType),
		Amount:          txn.Amount,
		TransactionDate: txn.TransactionDate,
		Reversed:        txn.Reversed,
	}
}

// ToLoanTransactionResponses converts a slice of domain loan transactions.
func ToLoanTransactionResponses(txns []domain.LoanTransaction) []LoanTransactionResponse {
	responses := make([]LoanTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToLoanTransactionResponse(&txns[i])
	}
	return responses
}
