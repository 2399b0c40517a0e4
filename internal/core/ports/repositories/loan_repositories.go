package repositories

import (
	"context"

	"github.com/corelend/command_audit_app/internal/core/domain"
)

// LoanReader defines read operations for loan data.
//
// Methods join an ambient database transaction when the context carries one
// (see WithTx); command replay depends on this so that the loan mutation and
// the command state transition commit or roll back as one unit.
type LoanReader interface {
	// FindLoanByID retrieves a loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindLoanTransactionByID retrieves a single loan transaction.
	FindLoanTransactionByID(ctx context.Context, transactionID string) (*domain.LoanTransaction, error)
}

// LoanWriter defines write operations for loan data.
type LoanWriter interface {
	// SaveLoan persists a new loan together with its initial transactions.
	SaveLoan(ctx context.Context, loan domain.Loan, transactions []domain.LoanTransaction) error

	// SaveLoanTransaction persists a single new loan transaction.
	SaveLoanTransaction(ctx context.Context, txn domain.LoanTransaction) error

	// MarkLoanTransactionReversed flags an existing transaction as reversed.
	MarkLoanTransactionReversed(ctx context.Context, transactionID string, updatedByUserID string) error
}

// LoanRepositoryFacade combines all loan repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
