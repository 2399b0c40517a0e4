package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanTransactionType indicates what kind of loan movement a transaction records.
type LoanTransactionType string

const (
	Disbursement LoanTransactionType = "DISBURSEMENT"
	Repayment    LoanTransactionType = "REPAYMENT"
)

// LoanTransaction represents a single movement against a loan account.
type LoanTransaction struct {
	TransactionID   string              `json:"transactionID"` // Primary Key (e.g., UUID)
	LoanID          string              `json:"loanID"`        // FK -> Loan.loanID (Not Null)
	TransactionType LoanTransactionType `json:"transactionType"`
	Amount          decimal.Decimal     `json:"amount"` // Positive value; precise decimal type
	TransactionDate time.Time           `json:"transactionDate"`
	Reversed        bool                `json:"reversed"` // True once superseded by an adjustment
	AuditFields
}

// ChangedTransactionDetail records which loan transactions were newly
// created and which were reversed by one apply of a command. It is produced
// fresh on every apply, returned synchronously to the caller, and has no
// identity or storage of its own.
//
// Insertion order is significant: later entries may depend on earlier ones
// (e.g. recomputed balances), so consumers must process the slices in order.
type ChangedTransactionDetail struct {
	NewTransactions      []LoanTransaction `json:"newTransactions"`
	ReversedTransactions []LoanTransaction `json:"reversedTransactions"`
}

// AddNew appends a newly created transaction, preserving creation order.
func (d *ChangedTransactionDetail) AddNew(txn LoanTransaction) {
	d.NewTransactions = append(d.NewTransactions, txn)
}

// AddReversed appends a reversed transaction, preserving reversal order.
func (d *ChangedTransactionDetail) AddReversed(txn LoanTransaction) {
	d.ReversedTransactions = append(d.ReversedTransactions, txn)
}

// IsEmpty reports whether the apply produced no transaction changes at all.
func (d *ChangedTransactionDetail) IsEmpty() bool {
	return len(d.NewTransactions) == 0 && len(d.ReversedTransactions) == 0
}
