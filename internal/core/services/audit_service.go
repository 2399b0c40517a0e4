package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/dto"
	"github.com/corelend/command_audit_app/internal/middleware"
)

const defaultAuditPageSize = 50

// auditService is the read-side query surface over the audit trail.
type auditService struct {
	auditRepo      portsrepo.AuditReader
	permissionRepo portsrepo.PermissionReader
}

// NewAuditService creates a new audit read service.
func NewAuditService(auditRepo portsrepo.AuditReader, permissionRepo portsrepo.PermissionReader) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo, permissionRepo: permissionRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) checkReadPermission(ctx context.Context, userID string) error {
	allowed, err := s.permissionRepo.HasPermission(ctx, userID, MakerCheckerResource)
	if err != nil {
		return fmt.Errorf("failed to check audit read permission for user %s: %w", userID, err)
	}
	if !allowed {
		return fmt.Errorf("%w: user %s lacks permission %s", apperrors.ErrForbidden, userID, MakerCheckerResource)
	}
	return nil
}

// RetrieveEntriesToBeChecked lists pending maker-checker entries, oldest
// first, for first-in-first-approved fairness.
func (s *auditService) RetrieveEntriesToBeChecked(ctx context.Context, criteria domain.AuditSearchCriteria, includeJSON bool, requestingUserID string) ([]dto.AuditEntryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkReadPermission(ctx, requestingUserID); err != nil {
		logger.Warn("Permission denied for pending entries listing", slog.String("user_id", requestingUserID))
		return nil, err
	}

	entries, err := s.auditRepo.ListEntriesToBeChecked(ctx, criteria, includeJSON)
	if err != nil {
		logger.Error("Failed to list pending entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve pending entries: %w", err)
	}

	logger.Debug("Pending entries retrieved", slog.Int("count", len(entries)))
	return dto.ToAuditEntryResponses(entries), nil
}

// RetrieveAuditEntries lists a token-paginated page of the full audit trail.
func (s *auditService) RetrieveAuditEntries(ctx context.Context, criteria domain.AuditSearchCriteria, params dto.ListAuditParams, requestingUserID string) (*dto.ListAuditResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkReadPermission(ctx, requestingUserID); err != nil {
		logger.Warn("Permission denied for audit listing", slog.String("user_id", requestingUserID))
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultAuditPageSize
	}

	entries, nextToken, err := s.auditRepo.ListAuditEntries(ctx, criteria, limit, params.NextToken, params.IncludeJSON)
	if err != nil {
		logger.Error("Failed to list audit entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve audit entries: %w", err)
	}

	logger.Info("Audit entries listed", slog.Int("count", len(entries)))
	return &dto.ListAuditResponse{
		Entries:   dto.ToAuditEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// RetrieveSearchTemplate returns the valid filter values for the audit
// search UI.
func (s *auditService) RetrieveSearchTemplate(ctx context.Context, requestingUserID string) (*dto.AuditSearchTemplateResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkReadPermission(ctx, requestingUserID); err != nil {
		logger.Warn("Permission denied for search template", slog.String("user_id", requestingUserID))
		return nil, err
	}

	template, err := s.auditRepo.RetrieveSearchTemplate(ctx)
	if err != nil {
		logger.Error("Failed to retrieve search template", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve search template: %w", err)
	}

	return dto.ToAuditSearchTemplateResponse(template), nil
}
