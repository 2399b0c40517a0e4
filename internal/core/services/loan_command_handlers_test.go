package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	"github.com/corelend/command_audit_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

var _ portsrepo.LoanRepositoryFacade = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoanTransactionByID(ctx context.Context, transactionID string) (*domain.LoanTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanTransaction), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, transactions []domain.LoanTransaction) error {
	args := m.Called(ctx, loan, transactions)
	return args.Error(0)
}

func (m *MockLoanRepository) SaveLoanTransaction(ctx context.Context, txn domain.LoanTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLoanRepository) MarkLoanTransactionReversed(ctx context.Context, transactionID string, updatedByUserID string) error {
	args := m.Called(ctx, transactionID, updatedByUserID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LoanCommandHandlersTestSuite struct {
	suite.Suite
	mockLoanRepo  *MockLoanRepository
	createHandler services.CommandHandler
	adjustHandler services.CommandHandler
	makerID       string
}

func (suite *LoanCommandHandlersTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	codec := services.NewJSONPayloadCodec()
	suite.createHandler = services.NewCreateLoanHandler(suite.mockLoanRepo, codec)
	suite.adjustHandler = services.NewAdjustLoanTransactionHandler(suite.mockLoanRepo, codec)
	suite.makerID = uuid.NewString()
}

func (suite *LoanCommandHandlersTestSuite) createPayload() json.RawMessage {
	return json.RawMessage(`{
		"clientName": "Jane Doe",
		"officeName": "Head Office",
		"principalAmount": "5000",
		"currencyCode": "USD",
		"disbursedOn": "2026-01-15T00:00:00Z"
	}`)
}

// --- CREATE LOAN ---

func (suite *LoanCommandHandlersTestSuite) TestCreateLoan_Success() {
	ctx := context.Background()

	var savedLoan domain.Loan
	var savedTxns []domain.LoanTransaction
	suite.mockLoanRepo.On("SaveLoan", mock.Anything, mock.AnythingOfType("domain.Loan"), mock.AnythingOfType("[]domain.LoanTransaction")).
		Run(func(args mock.Arguments) {
			savedLoan = args.Get(1).(domain.Loan)
			savedTxns = args.Get(2).([]domain.LoanTransaction)
		}).
		Return(nil).Once()

	result, err := suite.createHandler.Handle(ctx, suite.createPayload(), suite.makerID)

	suite.Require().NoError(err)
	suite.Equal(savedLoan.LoanID, result.ResourceID)
	suite.Nil(result.SubresourceID)

	suite.Equal("Jane Doe", savedLoan.ClientName)
	suite.Equal(domain.LoanActive, savedLoan.Status)
	suite.Equal(suite.makerID, savedLoan.CreatedBy)
	suite.True(decimal.NewFromInt(5000).Equal(savedLoan.PrincipalAmount))

	suite.Require().Len(savedTxns, 1)
	suite.Equal(domain.Disbursement, savedTxns[0].TransactionType)
	suite.True(savedLoan.PrincipalAmount.Equal(savedTxns[0].Amount))

	suite.Require().NotNil(result.Changes)
	suite.Require().Len(result.Changes.NewTransactions, 1)
	suite.Empty(result.Changes.ReversedTransactions)
	suite.Equal(savedTxns[0].TransactionID, result.Changes.NewTransactions[0].TransactionID)
}

func (suite *LoanCommandHandlersTestSuite) TestCreateLoan_ValidateRejectsBadPayloads() {
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing client name", payload: `{"officeName":"HQ","principalAmount":"100","currencyCode":"USD","disbursedOn":"2026-01-15T00:00:00Z"}`},
		{name: "bad currency code", payload: `{"clientName":"A","officeName":"HQ","principalAmount":"100","currencyCode":"USDX","disbursedOn":"2026-01-15T00:00:00Z"}`},
		{name: "non-positive principal", payload: `{"clientName":"A","officeName":"HQ","principalAmount":"-5","currencyCode":"USD","disbursedOn":"2026-01-15T00:00:00Z"}`},
		{name: "not json", payload: `{"clientName":`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.createHandler.Validate(ctx, json.RawMessage(tt.payload))
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything, mock.Anything)
}

// --- ADJUST LOANTRANSACTION ---

func (suite *LoanCommandHandlersTestSuite) adjustFixture() (*domain.Loan, *domain.LoanTransaction, json.RawMessage) {
	loan := &domain.Loan{
		LoanID:       uuid.NewString(),
		AccountNo:    "LN-12345678",
		ClientName:   "Jane Doe",
		OfficeName:   "Head Office",
		CurrencyCode: "USD",
		Status:       domain.LoanActive,
	}
	original := &domain.LoanTransaction{
		TransactionID:   uuid.NewString(),
		LoanID:          loan.LoanID,
		TransactionType: domain.Repayment,
		Amount:          decimal.NewFromInt(120),
		TransactionDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	payload := json.RawMessage(`{"loanId":"` + loan.LoanID + `","transactionId":"` + original.TransactionID + `","adjustedAmount":"100"}`)
	return loan, original, payload
}

func (suite *LoanCommandHandlersTestSuite) TestAdjustLoanTransaction_ReversesAndReplaces() {
	ctx := context.Background()
	loan, original, payload := suite.adjustFixture()

	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("FindLoanTransactionByID", mock.Anything, original.TransactionID).Return(original, nil).Once()
	suite.mockLoanRepo.On("MarkLoanTransactionReversed", mock.Anything, original.TransactionID, suite.makerID).Return(nil).Once()

	var replacement domain.LoanTransaction
	suite.mockLoanRepo.On("SaveLoanTransaction", mock.Anything, mock.AnythingOfType("domain.LoanTransaction")).
		Run(func(args mock.Arguments) { replacement = args.Get(1).(domain.LoanTransaction) }).
		Return(nil).Once()

	result, err := suite.adjustHandler.Handle(ctx, payload, suite.makerID)

	suite.Require().NoError(err)
	suite.Equal(loan.LoanID, result.ResourceID)
	suite.Require().NotNil(result.SubresourceID)
	suite.Equal(replacement.TransactionID, *result.SubresourceID)
	suite.NotEqual(original.TransactionID, replacement.TransactionID)
	suite.True(decimal.NewFromInt(100).Equal(replacement.Amount))
	suite.Equal(original.TransactionDate, replacement.TransactionDate)

	// The ledger reports the reversal and the replacement, in that order of
	// dependency: the reversed original in one list, the new row in the other.
	suite.Require().NotNil(result.Changes)
	suite.Require().Len(result.Changes.ReversedTransactions, 1)
	suite.Equal(original.TransactionID, result.Changes.ReversedTransactions[0].TransactionID)
	suite.True(result.Changes.ReversedTransactions[0].Reversed)
	suite.Require().Len(result.Changes.NewTransactions, 1)
	suite.Equal(replacement.TransactionID, result.Changes.NewTransactions[0].TransactionID)

	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanCommandHandlersTestSuite) TestAdjustLoanTransaction_AlreadyReversed() {
	ctx := context.Background()
	loan, original, payload := suite.adjustFixture()
	original.Reversed = true

	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("FindLoanTransactionByID", mock.Anything, original.TransactionID).Return(original, nil).Once()

	result, err := suite.adjustHandler.Handle(ctx, payload, suite.makerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "MarkLoanTransactionReversed", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanCommandHandlersTestSuite) TestAdjustLoanTransaction_WrongLoan() {
	ctx := context.Background()
	loan, original, payload := suite.adjustFixture()
	original.LoanID = uuid.NewString()

	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("FindLoanTransactionByID", mock.Anything, original.TransactionID).Return(original, nil).Once()

	result, err := suite.adjustHandler.Handle(ctx, payload, suite.makerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanCommandHandlersTestSuite) TestAdjustLoanTransaction_OnlyRepaymentsAdjustable() {
	ctx := context.Background()
	loan, original, payload := suite.adjustFixture()
	original.TransactionType = domain.Disbursement

	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("FindLoanTransactionByID", mock.Anything, original.TransactionID).Return(original, nil).Once()

	result, err := suite.adjustHandler.Handle(ctx, payload, suite.makerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanCommandHandlersTestSuite) TestAdjustLoanTransaction_LoanNotFound() {
	ctx := context.Background()
	loan, _, payload := suite.adjustFixture()

	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, loan.LoanID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.adjustHandler.Handle(ctx, payload, suite.makerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLoanCommandHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(LoanCommandHandlersTestSuite))
}
