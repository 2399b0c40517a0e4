package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/core/services"
	"github.com/corelend/command_audit_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CommandSourceRepository ---
type MockCommandSourceRepo struct {
	mock.Mock
}

var _ portsrepo.CommandSourceRepositoryWithTx = (*MockCommandSourceRepo)(nil)

func (m *MockCommandSourceRepo) FindCommandSourceByID(ctx context.Context, commandID string) (*domain.CommandSource, error) {
	args := m.Called(ctx, commandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommandSource), args.Error(1)
}

func (m *MockCommandSourceRepo) FindCommandSourceByIDForUpdate(ctx context.Context, tx pgx.Tx, commandID string) (*domain.CommandSource, error) {
	args := m.Called(ctx, tx, commandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommandSource), args.Error(1)
}

func (m *MockCommandSourceRepo) SaveCommandSource(ctx context.Context, cmd domain.CommandSource) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *MockCommandSourceRepo) UpdateCommandResolution(ctx context.Context, tx pgx.Tx, commandID string, checkerID string, checkedOnDate time.Time, result domain.ProcessingResult, resourceID *string, subresourceID *string) error {
	args := m.Called(ctx, tx, commandID, checkerID, checkedOnDate, result, resourceID, subresourceID)
	return args.Error(0)
}

func (m *MockCommandSourceRepo) DeleteCommandSource(ctx context.Context, tx pgx.Tx, commandID string) error {
	args := m.Called(ctx, tx, commandID)
	return args.Error(0)
}

func (m *MockCommandSourceRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCommandSourceRepo) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCommandSourceRepo) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PermissionReader ---
type MockPermissionRepo struct {
	mock.Mock
}

var _ portsrepo.PermissionReader = (*MockPermissionRepo)(nil)

func (m *MockPermissionRepo) HasPermission(ctx context.Context, userID string, resourceName string) (bool, error) {
	args := m.Called(ctx, userID, resourceName)
	return args.Bool(0), args.Error(1)
}

// --- Mock ApprovalRuleReader ---
type MockApprovalRuleRepo struct {
	mock.Mock
}

var _ portsrepo.ApprovalRuleReader = (*MockApprovalRuleRepo)(nil)

func (m *MockApprovalRuleRepo) RequiresApproval(ctx context.Context, actionName string, entityName string) (bool, error) {
	args := m.Called(ctx, actionName, entityName)
	return args.Bool(0), args.Error(1)
}

// --- Mock CommandDispatcher ---
type MockDispatcher struct {
	mock.Mock
}

var _ portssvc.CommandDispatcher = (*MockDispatcher)(nil)

func (m *MockDispatcher) Validate(ctx context.Context, actionName string, entityName string, payload json.RawMessage) error {
	args := m.Called(ctx, actionName, entityName, payload)
	return args.Error(0)
}

func (m *MockDispatcher) Dispatch(ctx context.Context, actionName string, entityName string, payload json.RawMessage, initiatedBy string) (*domain.DispatchResult, error) {
	args := m.Called(ctx, actionName, entityName, payload, initiatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchResult), args.Error(1)
}

// --- Test Suite Setup ---
type CommandSourceServiceTestSuite struct {
	suite.Suite
	mockCommandRepo    *MockCommandSourceRepo
	mockPermissionRepo *MockPermissionRepo
	mockRuleRepo       *MockApprovalRuleRepo
	mockDispatcher     *MockDispatcher
	service            portssvc.CommandSourceSvcFacade
	makerID            string
	checkerID          string
	payload            json.RawMessage
}

func (suite *CommandSourceServiceTestSuite) SetupTest() {
	suite.mockCommandRepo = new(MockCommandSourceRepo)
	suite.mockPermissionRepo = new(MockPermissionRepo)
	suite.mockRuleRepo = new(MockApprovalRuleRepo)
	suite.mockDispatcher = new(MockDispatcher)
	suite.service = services.NewCommandSourceService(
		suite.mockCommandRepo,
		suite.mockPermissionRepo,
		suite.mockRuleRepo,
		suite.mockDispatcher,
	)

	suite.makerID = uuid.NewString()
	suite.checkerID = uuid.NewString()
	suite.payload = json.RawMessage(`{"clientName":"Jane Doe","principalAmount":"5000"}`)
}

func (suite *CommandSourceServiceTestSuite) expectMakerPermission(allowed bool) {
	suite.mockPermissionRepo.On("HasPermission", mock.Anything, suite.makerID, "CREATE_LOAN").Return(allowed, nil).Once()
}

func (suite *CommandSourceServiceTestSuite) expectCheckerPermission(userID string, allowed bool) {
	suite.mockPermissionRepo.On("HasPermission", mock.Anything, userID, "MAKERCHECKER").Return(allowed, nil).Once()
}

func (suite *CommandSourceServiceTestSuite) pendingCommand() *domain.CommandSource {
	return &domain.CommandSource{
		CommandID:        uuid.NewString(),
		ActionName:       "CREATE",
		EntityName:       "LOAN",
		MakerID:          suite.makerID,
		MadeOnDate:       time.Now().UTC().Add(-time.Hour),
		ProcessingResult: domain.AwaitingApproval,
		CommandAsJSON:    suite.payload,
	}
}

func (suite *CommandSourceServiceTestSuite) submitRequest() dto.SubmitCommandRequest {
	return dto.SubmitCommandRequest{
		ActionName: "CREATE",
		EntityName: "LOAN",
		Command:    suite.payload,
	}
}

// --- SubmitCommand ---

func (suite *CommandSourceServiceTestSuite) TestSubmitCommand_QueuedWhenApprovalRequired() {
	ctx := context.Background()
	req := suite.submitRequest()

	suite.expectMakerPermission(true)
	suite.mockDispatcher.On("Validate", mock.Anything, "CREATE", "LOAN", suite.payload).Return(nil).Once()
	suite.mockRuleRepo.On("RequiresApproval", mock.Anything, "CREATE", "LOAN").Return(true, nil).Once()

	var saved domain.CommandSource
	suite.mockCommandRepo.On("SaveCommandSource", mock.Anything, mock.AnythingOfType("domain.CommandSource")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.CommandSource) }).
		Return(nil).Once()

	result, err := suite.service.SubmitCommand(ctx, req, suite.makerID)

	suite.Require().NoError(err)
	suite.Equal(domain.AwaitingApproval, result.ProcessingResult)
	suite.Nil(result.ResourceID)
	suite.Nil(result.Changes)

	suite.Equal(domain.AwaitingApproval, saved.ProcessingResult)
	suite.Equal(suite.makerID, saved.MakerID)
	suite.Nil(saved.CheckerID)
	suite.JSONEq(string(suite.payload), string(saved.CommandAsJSON))

	suite.mockDispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCommandRepo.AssertExpectations(suite.T())
}

func (suite *CommandSourceServiceTestSuite) TestSubmitCommand_ExecutesDirectlyWhenNoApprovalRequired() {
	ctx := context.Background()
	req := suite.submitRequest()
	loanID := uuid.NewString()

	suite.expectMakerPermission(true)
	suite.mockDispatcher.On("Validate", mock.Anything, "CREATE", "LOAN", suite.payload).Return(nil).Once()
	suite.mockRuleRepo.On("RequiresApproval", mock.Anything, "CREATE", "LOAN").Return(false, nil).Once()

	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()

	changes := &domain.ChangedTransactionDetail{}
	changes.AddNew(domain.LoanTransaction{TransactionID: uuid.NewString(), LoanID: loanID, TransactionType: domain.Disbursement})
	suite.mockDispatcher.On("Dispatch", mock.Anything, "CREATE", "LOAN", suite.payload, suite.makerID).
		Return(&domain.DispatchResult{ResourceID: loanID, Changes: changes}, nil).Once()

	var saved domain.CommandSource
	suite.mockCommandRepo.On("SaveCommandSource", mock.Anything, mock.AnythingOfType("domain.CommandSource")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.CommandSource) }).
		Return(nil).Once()
	suite.mockCommandRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.SubmitCommand(ctx, req, suite.makerID)

	suite.Require().NoError(err)
	suite.Equal(domain.Processed, result.ProcessingResult)
	suite.Require().NotNil(result.ResourceID)
	suite.Equal(loanID, *result.ResourceID)
	suite.Require().NotNil(result.Changes)
	suite.Len(result.Changes.NewTransactions, 1)

	suite.Equal(domain.Processed, saved.ProcessingResult)
	suite.Require().NotNil(saved.ResourceID)
	suite.Equal(loanID, *saved.ResourceID)

	suite.mockCommandRepo.AssertExpectations(suite.T())
	suite.mockDispatcher.AssertExpectations(suite.T())
}

func (suite *CommandSourceServiceTestSuite) TestSubmitCommand_PermissionDenied() {
	ctx := context.Background()

	suite.expectMakerPermission(false)

	result, err := suite.service.SubmitCommand(ctx, suite.submitRequest(), suite.makerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockDispatcher.AssertNotCalled(suite.T(), "Validate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCommandRepo.AssertNotCalled(suite.T(), "SaveCommandSource", mock.Anything, mock.Anything)
}

func (suite *CommandSourceServiceTestSuite) TestSubmitCommand_InvalidPayloadNotQueued() {
	ctx := context.Background()

	suite.expectMakerPermission(true)
	suite.mockDispatcher.On("Validate", mock.Anything, "CREATE", "LOAN", suite.payload).
		Return(apperrors.ErrValidation).Once()

	result, err := suite.service.SubmitCommand(ctx, suite.submitRequest(), suite.makerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCommandRepo.AssertNotCalled(suite.T(), "SaveCommandSource", mock.Anything, mock.Anything)
}

// --- ApproveEntry ---

func (suite *CommandSourceServiceTestSuite) TestApproveEntry_ReplaysStoredPayload() {
	ctx := context.Background()
	cmd := suite.pendingCommand()
	loanID := uuid.NewString()

	suite.expectCheckerPermission(suite.checkerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, cmd.CommandID).Return(cmd, nil).Once()

	// Replay must carry the stored bytes and be attributed to the maker.
	suite.mockDispatcher.On("Dispatch", mock.Anything, "CREATE", "LOAN", cmd.CommandAsJSON, suite.makerID).
		Return(&domain.DispatchResult{ResourceID: loanID}, nil).Once()

	suite.mockCommandRepo.On("UpdateCommandResolution", mock.Anything, mock.Anything, cmd.CommandID, suite.checkerID, mock.AnythingOfType("time.Time"), domain.Processed, &loanID, (*string)(nil)).
		Return(nil).Once()
	suite.mockCommandRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.ApproveEntry(ctx, cmd.CommandID, suite.checkerID)

	suite.Require().NoError(err)
	suite.Equal(domain.Processed, result.ProcessingResult)
	suite.Require().NotNil(result.ResourceID)
	suite.Equal(loanID, *result.ResourceID)

	suite.mockCommandRepo.AssertExpectations(suite.T())
	suite.mockDispatcher.AssertExpectations(suite.T())
}

func (suite *CommandSourceServiceTestSuite) TestApproveEntry_MakerCannotApproveOwnCommand() {
	ctx := context.Background()
	cmd := suite.pendingCommand()

	suite.expectCheckerPermission(suite.makerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, cmd.CommandID).Return(cmd, nil).Once()

	result, err := suite.service.ApproveEntry(ctx, cmd.CommandID, suite.makerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockDispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCommandRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *CommandSourceServiceTestSuite) TestApproveEntry_AlreadyResolved() {
	ctx := context.Background()
	cmd := suite.pendingCommand()
	cmd.ProcessingResult = domain.Processed

	suite.expectCheckerPermission(suite.checkerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, cmd.CommandID).Return(cmd, nil).Once()

	result, err := suite.service.ApproveEntry(ctx, cmd.CommandID, suite.checkerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockDispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommandSourceServiceTestSuite) TestApproveEntry_NotFound() {
	ctx := context.Background()
	commandID := uuid.NewString()

	suite.expectCheckerPermission(suite.checkerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, commandID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ApproveEntry(ctx, commandID, suite.checkerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CommandSourceServiceTestSuite) TestApproveEntry_ReplayFailureLeavesCommandPending() {
	ctx := context.Background()
	cmd := suite.pendingCommand()

	suite.expectCheckerPermission(suite.checkerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, cmd.CommandID).Return(cmd, nil).Once()

	suite.mockDispatcher.On("Dispatch", mock.Anything, "CREATE", "LOAN", cmd.CommandAsJSON, suite.makerID).
		Return(nil, errors.New("loan product no longer exists")).Once()

	result, err := suite.service.ApproveEntry(ctx, cmd.CommandID, suite.checkerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrReplayFailed)
	suite.ErrorContains(err, cmd.CommandID)

	// The transaction rolls back and the record is never transitioned.
	suite.mockCommandRepo.AssertNotCalled(suite.T(), "UpdateCommandResolution", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCommandRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockCommandRepo.AssertExpectations(suite.T())
}

// --- RejectEntry ---

func (suite *CommandSourceServiceTestSuite) TestRejectEntry_NeverDispatches() {
	ctx := context.Background()
	cmd := suite.pendingCommand()

	suite.expectCheckerPermission(suite.checkerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, cmd.CommandID).Return(cmd, nil).Once()
	suite.mockCommandRepo.On("UpdateCommandResolution", mock.Anything, mock.Anything, cmd.CommandID, suite.checkerID, mock.AnythingOfType("time.Time"), domain.Rejected, (*string)(nil), (*string)(nil)).
		Return(nil).Once()
	suite.mockCommandRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.RejectEntry(ctx, cmd.CommandID, suite.checkerID)

	suite.Require().NoError(err)
	suite.Equal(domain.Rejected, result.ProcessingResult)
	suite.Nil(result.ResourceID)
	suite.Nil(result.Changes)

	suite.mockDispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCommandRepo.AssertExpectations(suite.T())
}

func (suite *CommandSourceServiceTestSuite) TestRejectEntry_AlreadyResolved() {
	ctx := context.Background()
	cmd := suite.pendingCommand()
	cmd.ProcessingResult = domain.Rejected

	suite.expectCheckerPermission(suite.checkerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, cmd.CommandID).Return(cmd, nil).Once()

	result, err := suite.service.RejectEntry(ctx, cmd.CommandID, suite.checkerID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockCommandRepo.AssertNotCalled(suite.T(), "UpdateCommandResolution", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- DeleteEntry ---

func (suite *CommandSourceServiceTestSuite) TestDeleteEntry_PendingCommand() {
	ctx := context.Background()
	cmd := suite.pendingCommand()

	suite.expectCheckerPermission(suite.checkerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, cmd.CommandID).Return(cmd, nil).Once()
	suite.mockCommandRepo.On("DeleteCommandSource", mock.Anything, mock.Anything, cmd.CommandID).Return(nil).Once()
	suite.mockCommandRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	deletedID, err := suite.service.DeleteEntry(ctx, cmd.CommandID, suite.checkerID)

	suite.Require().NoError(err)
	suite.Equal(cmd.CommandID, deletedID)
	suite.mockCommandRepo.AssertExpectations(suite.T())
}

func (suite *CommandSourceServiceTestSuite) TestDeleteEntry_ResolvedCommandIsImmutable() {
	ctx := context.Background()
	cmd := suite.pendingCommand()
	cmd.ProcessingResult = domain.Processed

	suite.expectCheckerPermission(suite.checkerID, true)
	suite.mockCommandRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCommandRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCommandRepo.On("FindCommandSourceByIDForUpdate", mock.Anything, mock.Anything, cmd.CommandID).Return(cmd, nil).Once()

	deletedID, err := suite.service.DeleteEntry(ctx, cmd.CommandID, suite.checkerID)

	suite.Empty(deletedID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockCommandRepo.AssertNotCalled(suite.T(), "DeleteCommandSource", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommandSourceServiceTestSuite) TestDeleteEntry_PermissionDenied() {
	ctx := context.Background()

	suite.expectCheckerPermission(suite.checkerID, false)

	deletedID, err := suite.service.DeleteEntry(ctx, uuid.NewString(), suite.checkerID)

	suite.Empty(deletedID)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCommandRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestCommandSourceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommandSourceServiceTestSuite))
}

// SubmitCommand payload bytes must survive the queue round trip untouched.
func TestSubmitCommand_PayloadStoredVerbatim(t *testing.T) {
	mockCommandRepo := new(MockCommandSourceRepo)
	mockPermissionRepo := new(MockPermissionRepo)
	mockRuleRepo := new(MockApprovalRuleRepo)
	mockDispatcher := new(MockDispatcher)
	service := services.NewCommandSourceService(mockCommandRepo, mockPermissionRepo, mockRuleRepo, mockDispatcher)

	makerID := uuid.NewString()
	payload := json.RawMessage(`{"b":2,"a":1,"nested":{"z":null}}`)

	mockPermissionRepo.On("HasPermission", mock.Anything, makerID, "ADJUST_LOANTRANSACTION").Return(true, nil)
	mockDispatcher.On("Validate", mock.Anything, "ADJUST", "LOANTRANSACTION", payload).Return(nil)
	mockRuleRepo.On("RequiresApproval", mock.Anything, "ADJUST", "LOANTRANSACTION").Return(true, nil)

	var saved domain.CommandSource
	mockCommandRepo.On("SaveCommandSource", mock.Anything, mock.AnythingOfType("domain.CommandSource")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.CommandSource) }).
		Return(nil)

	_, err := service.SubmitCommand(context.Background(), dto.SubmitCommandRequest{
		ActionName: "ADJUST",
		EntityName: "LOANTRANSACTION",
		Command:    payload,
	}, makerID)

	assert.NoError(t, err)
	assert.Equal(t, []byte(payload), []byte(saved.CommandAsJSON))
}
