package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan mirrors the loans table.
type Loan struct {
	LoanID          string          `db:"loan_id"`
	AccountNo       string          `db:"account_no"`
	ClientName      string          `db:"client_name"`
	OfficeName      string          `db:"office_name"`
	PrincipalAmount decimal.Decimal `db:"principal_amount"`
	CurrencyCode    string          `db:"currency_code"`
	Status          string          `db:"status"`
	DisbursedOn     time.Time       `db:"disbursed_on"`
	AuditFields
}

// LoanTransaction mirrors the loan_transactions table.
type LoanTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	LoanID          string          `db:"loan_id"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	Reversed        bool            `db:"reversed"`
	AuditFields
}
