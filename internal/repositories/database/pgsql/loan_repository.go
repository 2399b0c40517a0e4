package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	"github.com/corelend/command_audit_app/internal/models"
	"github.com/corelend/command_audit_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLoanRepository persists the minimal loan shapes targeted by commands.
// All methods route through querier so that command replay, which runs
// inside the approval transaction, keeps its writes in that transaction.
type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanTransactionInsert = `
	INSERT INTO loan_transactions (transaction_id, loan_id, transaction_type, amount, transaction_date,
	                               reversed, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// SaveLoan persists a new loan together with its initial transactions.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, transactions []domain.LoanTransaction) error {
	q := r.querier(ctx)

	m := mapping.ToModelLoan(loan)
	_, err := q.Exec(ctx, `
		INSERT INTO loans (loan_id, account_no, client_name, office_name, principal_amount, currency_code,
		                   status, disbursed_on, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.LoanID, m.AccountNo, m.ClientName, m.OfficeName, m.PrincipalAmount, m.CurrencyCode,
		m.Status, m.DisbursedOn, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert loan "+m.LoanID, err)
	}

	batch := &pgx.Batch{}
	for _, txn := range transactions {
		mt := mapping.ToModelLoanTransaction(txn)
		batch.Queue(loanTransactionInsert,
			mt.TransactionID, mt.LoanID, mt.TransactionType, mt.Amount, mt.TransactionDate,
			mt.Reversed, mt.CreatedAt, mt.CreatedBy, mt.LastUpdatedAt, mt.LastUpdatedBy,
		)
	}
	if batch.Len() > 0 {
		var br pgx.BatchResults
		switch conn := q.(type) {
		case pgx.Tx:
			br = conn.SendBatch(ctx, batch)
		default:
			br = r.Pool.SendBatch(ctx, batch)
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert loan transactions for "+m.LoanID, err)
		}
	}
	return nil
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	var m models.Loan
	err := r.querier(ctx).QueryRow(ctx, `
		SELECT loan_id, account_no, client_name, office_name, principal_amount, currency_code,
		       status, disbursed_on, created_at, created_by, last_updated_at, last_updated_by
		FROM loans
		WHERE loan_id = $1;
	`, loanID).Scan(
		&m.LoanID, &m.AccountNo, &m.ClientName, &m.OfficeName, &m.PrincipalAmount, &m.CurrencyCode,
		&m.Status, &m.DisbursedOn, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find loan "+loanID, err)
	}
	d := mapping.ToDomainLoan(m)
	return &d, nil
}

// FindLoanTransactionByID retrieves a single loan transaction.
func (r *PgxLoanRepository) FindLoanTransactionByID(ctx context.Context, transactionID string) (*domain.LoanTransaction, error) {
	var m models.LoanTransaction
	err := r.querier(ctx).QueryRow(ctx, `
		SELECT transaction_id, loan_id, transaction_type, amount, transaction_date,
		       reversed, created_at, created_by, last_updated_at, last_updated_by
		FROM loan_transactions
		WHERE transaction_id = $1;
	`, transactionID).Scan(
		&m.TransactionID, &m.LoanID, &m.TransactionType, &m.Amount, &m.TransactionDate,
		&m.Reversed, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find loan transaction "+transactionID, err)
	}
	d := mapping.ToDomainLoanTransaction(m)
	return &d, nil
}

// SaveLoanTransaction persists a single new loan transaction.
func (r *PgxLoanRepository) SaveLoanTransaction(ctx context.Context, txn domain.LoanTransaction) error {
	m := mapping.ToModelLoanTransaction(txn)
	_, err := r.querier(ctx).Exec(ctx, loanTransactionInsert,
		m.TransactionID, m.LoanID, m.TransactionType, m.Amount, m.TransactionDate,
		m.Reversed, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert loan transaction "+m.TransactionID, err)
	}
	return nil
}

// MarkLoanTransactionReversed flags an existing transaction as reversed.
// The guard on reversed makes a double reversal impossible.
func (r *PgxLoanRepository) MarkLoanTransactionReversed(ctx context.Context, transactionID string, updatedByUserID string) error {
	tag, err := r.querier(ctx).Exec(ctx, `
		UPDATE loan_transactions
		SET reversed = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND reversed = FALSE;
	`, transactionID, time.Now().UTC(), updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reverse loan transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}
	return nil
}
