package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/dto"
	"github.com/corelend/command_audit_app/internal/middleware"
)

// Command actions and entities handled by the loan handlers.
const (
	ActionCreate = "CREATE"
	ActionAdjust = "ADJUST"

	EntityLoan            = "LOAN"
	EntityLoanTransaction = "LOANTRANSACTION"
)

var payloadValidator = validator.New()

// createLoanHandler handles "CREATE LOAN": it creates the loan account and
// its disbursement transaction, reporting the disbursement in the change
// ledger's new-transaction list.
type createLoanHandler struct {
	loanRepo portsrepo.LoanRepositoryFacade
	codec    portssvc.PayloadCodec
}

// NewCreateLoanHandler creates the handler for the CREATE LOAN command.
func NewCreateLoanHandler(loanRepo portsrepo.LoanRepositoryFacade, codec portssvc.PayloadCodec) CommandHandler {
	return &createLoanHandler{loanRepo: loanRepo, codec: codec}
}

func (h *createLoanHandler) Validate(ctx context.Context, payload json.RawMessage) error {
	var req dto.CreateLoanPayload
	if err := h.codec.Decode(payload, &req); err != nil {
		return err
	}
	if err := payloadValidator.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: principal amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

func (h *createLoanHandler) Handle(ctx context.Context, payload json.RawMessage, initiatedBy string) (*domain.DispatchResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := h.Validate(ctx, payload); err != nil {
		return nil, err
	}
	var req dto.CreateLoanPayload
	if err := h.codec.Decode(payload, &req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	loanID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     initiatedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: initiatedBy,
	}

	loan := domain.Loan{
		LoanID:          loanID,
		AccountNo:       loanAccountNo(loanID),
		ClientName:      req.ClientName,
		OfficeName:      req.OfficeName,
		PrincipalAmount: req.PrincipalAmount,
		CurrencyCode:    req.CurrencyCode,
		Status:          domain.LoanActive,
		DisbursedOn:     req.DisbursedOn,
		AuditFields:     audit,
	}

	disbursement := domain.LoanTransaction{
		TransactionID:   uuid.NewString(),
		LoanID:          loanID,
		TransactionType: domain.Disbursement,
		Amount:          req.PrincipalAmount,
		TransactionDate: req.DisbursedOn,
		AuditFields:     audit,
	}

	if err := h.loanRepo.SaveLoan(ctx, loan, []domain.LoanTransaction{disbursement}); err != nil {
		logger.Error("Failed to save loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	changes := &domain.ChangedTransactionDetail{}
	changes.AddNew(disbursement)

	logger.Info("Loan created", slog.String("loan_id", loanID), slog.String("account_no", loan.AccountNo))
	return &domain.DispatchResult{ResourceID: loanID, Changes: changes}, nil
}

// adjustLoanTransactionHandler handles "ADJUST LOANTRANSACTION": it reverses
// an existing repayment and writes the corrected amount as a new transaction.
// The change ledger carries the reversal before the replacement, in the order
// the movements happened.
type adjustLoanTransactionHandler struct {
	loanRepo portsrepo.LoanRepositoryFacade
	codec    portssvc.PayloadCodec
}

// NewAdjustLoanTransactionHandler creates the handler for the
// ADJUST LOANTRANSACTION command.
func NewAdjustLoanTransactionHandler(loanRepo portsrepo.LoanRepositoryFacade, codec portssvc.PayloadCodec) CommandHandler {
	return &adjustLoanTransactionHandler{loanRepo: loanRepo, codec: codec}
}

func (h *adjustLoanTransactionHandler) Validate(ctx context.Context, payload json.RawMessage) error {
	var req dto.AdjustLoanTransactionPayload
	if err := h.codec.Decode(payload, &req); err != nil {
		return err
	}
	if err := payloadValidator.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.AdjustedAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: adjusted amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

func (h *adjustLoanTransactionHandler) Handle(ctx context.Context, payload json.RawMessage, initiatedBy string) (*domain.DispatchResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := h.Validate(ctx, payload); err != nil {
		return nil, err
	}
	var req dto.AdjustLoanTransactionPayload
	if err := h.codec.Decode(payload, &req); err != nil {
		return nil, err
	}

	loan, err := h.loanRepo.FindLoanByID(ctx, req.LoanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, req.LoanID)
		}
		return nil, fmt.Errorf("failed to fetch loan %s: %w", req.LoanID, err)
	}

	original, err := h.loanRepo.FindLoanTransactionByID(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan transaction %s", apperrors.ErrNotFound, req.TransactionID)
		}
		return nil, fmt.Errorf("failed to fetch loan transaction %s: %w", req.TransactionID, err)
	}
	if original.LoanID != loan.LoanID {
		return nil, fmt.Errorf("%w: transaction %s does not belong to loan %s", apperrors.ErrValidation, req.TransactionID, req.LoanID)
	}
	if original.TransactionType != domain.Repayment {
		return nil, fmt.Errorf("%w: only repayments can be adjusted", apperrors.ErrValidation)
	}
	if original.Reversed {
		return nil, fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrInvalidState, req.TransactionID)
	}

	now := time.Now().UTC()
	if err := h.loanRepo.MarkLoanTransactionReversed(ctx, original.TransactionID, initiatedBy); err != nil {
		logger.Error("Failed to reverse loan transaction", slog.String("error", err.Error()), slog.String("transaction_id", original.TransactionID))
		return nil, fmt.Errorf("failed to reverse loan transaction: %w", err)
	}

	replacement := domain.LoanTransaction{
		TransactionID:   uuid.NewString(),
		LoanID:          loan.LoanID,
		TransactionType: domain.Repayment,
		Amount:          req.AdjustedAmount,
		TransactionDate: original.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     initiatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: initiatedBy,
		},
	}
	if err := h.loanRepo.SaveLoanTransaction(ctx, replacement); err != nil {
		logger.Error("Failed to save replacement transaction", slog.String("error", err.Error()), slog.String("loan_id", loan.LoanID))
		return nil, fmt.Errorf("failed to save replacement transaction: %w", err)
	}

	// Reversal first, then the replacement that depends on it.
	reversed := *original
	reversed.Reversed = true
	changes := &domain.ChangedTransactionDetail{}
	changes.AddReversed(reversed)
	changes.AddNew(replacement)

	logger.Info("Loan transaction adjusted",
		slog.String("loan_id", loan.LoanID),
		slog.String("reversed_transaction_id", original.TransactionID),
		slog.String("new_transaction_id", replacement.TransactionID),
	)
	return &domain.DispatchResult{
		ResourceID:    loan.LoanID,
		SubresourceID: &replacement.TransactionID,
		Changes:       changes,
	}, nil
}

// loanAccountNo derives the human-facing account number from the loan id.
func loanAccountNo(loanID string) string {
	return "LN-" + loanID[:8]
}
