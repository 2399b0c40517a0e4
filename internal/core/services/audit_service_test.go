package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/core/services"
	"github.com/corelend/command_audit_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuditReader ---
type MockAuditReader struct {
	mock.Mock
}

var _ portsrepo.AuditReader = (*MockAuditReader)(nil)

func (m *MockAuditReader) ListEntriesToBeChecked(ctx context.Context, criteria domain.AuditSearchCriteria, includeJSON bool) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, criteria, includeJSON)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

func (m *MockAuditReader) ListAuditEntries(ctx context.Context, criteria domain.AuditSearchCriteria, limit int, nextToken *string, includeJSON bool) ([]domain.AuditEntry, *string, error) {
	args := m.Called(ctx, criteria, limit, nextToken, includeJSON)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.AuditEntry), returnedNextToken, args.Error(2)
}

func (m *MockAuditReader) RetrieveSearchTemplate(ctx context.Context) (*domain.AuditSearchTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditSearchTemplate), args.Error(1)
}

// --- Test Suite Setup ---
type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo      *MockAuditReader
	mockPermissionRepo *MockPermissionRepo
	service            portssvc.AuditSvcFacade
	userID             string
	makerID            string
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditReader)
	suite.mockPermissionRepo = new(MockPermissionRepo)
	suite.service = services.NewAuditService(suite.mockAuditRepo, suite.mockPermissionRepo)
	suite.userID = uuid.NewString()
	suite.makerID = uuid.NewString()
}

func (suite *AuditServiceTestSuite) allowRead() {
	suite.mockPermissionRepo.On("HasPermission", mock.Anything, suite.userID, "MAKERCHECKER").Return(true, nil).Once()
}

func (suite *AuditServiceTestSuite) pendingEntries() []domain.AuditEntry {
	older := domain.AuditEntry{
		CommandID:        uuid.NewString(),
		ActionName:       "CREATE",
		EntityName:       "LOAN",
		Maker:            "maria",
		MakerID:          suite.makerID,
		MadeOnDate:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		ProcessingResult: domain.AwaitingApproval,
	}
	newer := older
	newer.CommandID = uuid.NewString()
	newer.MadeOnDate = older.MadeOnDate.Add(time.Hour)
	return []domain.AuditEntry{older, newer}
}

func (suite *AuditServiceTestSuite) TestRetrieveEntriesToBeChecked_Success() {
	ctx := context.Background()
	entries := suite.pendingEntries()

	suite.allowRead()
	suite.mockAuditRepo.On("ListEntriesToBeChecked", mock.Anything, domain.AuditSearchCriteria{}, false).Return(entries, nil).Once()

	result, err := suite.service.RetrieveEntriesToBeChecked(ctx, domain.AuditSearchCriteria{}, false, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(entries[0].CommandID, result[0].ID)
	suite.Equal(entries[1].CommandID, result[1].ID)
	suite.True(result[0].MadeOnDate.Before(result[1].MadeOnDate))
	suite.Empty(result[0].CommandAsJSON)
}

func (suite *AuditServiceTestSuite) TestRetrieveEntriesToBeChecked_PassesCriteriaThrough() {
	ctx := context.Background()
	criteria := domain.AuditSearchCriteria{MakerID: &suite.makerID}

	suite.allowRead()
	suite.mockAuditRepo.On("ListEntriesToBeChecked", mock.Anything, criteria, true).Return([]domain.AuditEntry{}, nil).Once()

	result, err := suite.service.RetrieveEntriesToBeChecked(ctx, criteria, true, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(result)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRetrieveEntriesToBeChecked_PermissionDenied() {
	ctx := context.Background()

	suite.mockPermissionRepo.On("HasPermission", mock.Anything, suite.userID, "MAKERCHECKER").Return(false, nil).Once()

	result, err := suite.service.RetrieveEntriesToBeChecked(ctx, domain.AuditSearchCriteria{}, false, suite.userID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "ListEntriesToBeChecked", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestRetrieveAuditEntries_DefaultsPageSize() {
	ctx := context.Background()
	entry := domain.AuditEntry{
		CommandID:        uuid.NewString(),
		ActionName:       "CREATE",
		EntityName:       "LOAN",
		Maker:            "maria",
		MakerID:          suite.makerID,
		MadeOnDate:       time.Now().UTC(),
		ProcessingResult: domain.Processed,
		CommandAsJSON:    json.RawMessage(`{"clientName":"Jane"}`),
	}
	token := "next-page"

	suite.allowRead()
	suite.mockAuditRepo.On("ListAuditEntries", mock.Anything, domain.AuditSearchCriteria{}, 50, (*string)(nil), true).
		Return([]domain.AuditEntry{entry}, token, nil).Once()

	page, err := suite.service.RetrieveAuditEntries(ctx, domain.AuditSearchCriteria{}, dto.ListAuditParams{IncludeJSON: true}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(page.Entries, 1)
	suite.Equal(entry.CommandID, page.Entries[0].ID)
	suite.JSONEq(string(entry.CommandAsJSON), string(page.Entries[0].CommandAsJSON))
	suite.Require().NotNil(page.NextToken)
	suite.Equal(token, *page.NextToken)
}

func (suite *AuditServiceTestSuite) TestRetrieveAuditEntries_ExplicitLimitAndToken() {
	ctx := context.Background()
	token := "opaque-token"

	suite.allowRead()
	suite.mockAuditRepo.On("ListAuditEntries", mock.Anything, domain.AuditSearchCriteria{}, 10, &token, false).
		Return([]domain.AuditEntry{}, nil, nil).Once()

	page, err := suite.service.RetrieveAuditEntries(ctx, domain.AuditSearchCriteria{}, dto.ListAuditParams{Limit: 10, NextToken: &token}, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(page.Entries)
	suite.Nil(page.NextToken)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRetrieveSearchTemplate_Success() {
	ctx := context.Background()
	template := &domain.AuditSearchTemplate{
		AppUsers:    []domain.AppUserSummary{{UserID: suite.makerID, Username: "maria"}},
		ActionNames: []string{"ADJUST", "CREATE"},
		EntityNames: []string{"LOAN", "LOANTRANSACTION"},
	}

	suite.allowRead()
	suite.mockAuditRepo.On("RetrieveSearchTemplate", mock.Anything).Return(template, nil).Once()

	result, err := suite.service.RetrieveSearchTemplate(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result.AppUsers, 1)
	suite.Equal("maria", result.AppUsers[0].Username)
	suite.Equal([]string{"ADJUST", "CREATE"}, result.ActionNames)
	suite.Equal([]string{"LOAN", "LOANTRANSACTION"}, result.EntityNames)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
