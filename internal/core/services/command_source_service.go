package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/dto"
	"github.com/corelend/command_audit_app/internal/middleware"
)

// MakerCheckerResource is the permission consulted for approve/reject/delete.
const MakerCheckerResource = "MAKERCHECKER"

// commandSourceService orchestrates submit/approve/reject/delete of commands.
type commandSourceService struct {
	commandRepo    portsrepo.CommandSourceRepositoryWithTx
	permissionRepo portsrepo.PermissionReader
	approvalRules  portsrepo.ApprovalRuleReader
	dispatcher     portssvc.CommandDispatcher
}

// NewCommandSourceService creates a new command source write service.
func NewCommandSourceService(
	commandRepo portsrepo.CommandSourceRepositoryWithTx,
	permissionRepo portsrepo.PermissionReader,
	approvalRules portsrepo.ApprovalRuleReader,
	dispatcher portssvc.CommandDispatcher,
) portssvc.CommandSourceSvcFacade {
	return &commandSourceService{
		commandRepo:    commandRepo,
		permissionRepo: permissionRepo,
		approvalRules:  approvalRules,
		dispatcher:     dispatcher,
	}
}

var _ portssvc.CommandSourceSvcFacade = (*commandSourceService)(nil)

// checkPermission verifies the user holds the named permission.
func (s *commandSourceService) checkPermission(ctx context.Context, userID string, resourceName string) error {
	allowed, err := s.permissionRepo.HasPermission(ctx, userID, resourceName)
	if err != nil {
		return fmt.Errorf("failed to check permission %s for user %s: %w", resourceName, userID, err)
	}
	if !allowed {
		return fmt.Errorf("%w: user %s lacks permission %s", apperrors.ErrForbidden, userID, resourceName)
	}
	return nil
}

// makerPermission is the permission a maker needs for an action/entity pair,
// e.g. CREATE_LOAN.
func makerPermission(actionName, entityName string) string {
	return actionName + "_" + entityName
}

// SubmitCommand records the command and either executes it immediately or
// queues it for approval, depending on platform policy for the pair.
func (s *commandSourceService) SubmitCommand(ctx context.Context, req dto.SubmitCommandRequest, makerID string) (*dto.CommandProcessingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkPermission(ctx, makerID, makerPermission(req.ActionName, req.EntityName)); err != nil {
		logger.Warn("Permission denied for command submission",
			slog.String("maker_id", makerID),
			slog.String("action", req.ActionName),
			slog.String("entity", req.EntityName),
		)
		return nil, err
	}

	// Schema validation up front: a payload that cannot be applied must not
	// enter the approval queue.
	if err := s.dispatcher.Validate(ctx, req.ActionName, req.EntityName, req.Command); err != nil {
		logger.Warn("Command payload failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	requiresApproval, err := s.approvalRules.RequiresApproval(ctx, req.ActionName, req.EntityName)
	if err != nil {
		logger.Error("Failed to evaluate approval policy", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to evaluate approval policy: %w", err)
	}

	now := time.Now().UTC()
	cmd := domain.CommandSource{
		CommandID:     uuid.NewString(),
		ActionName:    req.ActionName,
		EntityName:    req.EntityName,
		MakerID:       makerID,
		MadeOnDate:    now,
		CommandAsJSON: req.Command, // Stored verbatim; replay uses these exact bytes
	}

	if requiresApproval {
		cmd.ProcessingResult = domain.AwaitingApproval
		if err := s.commandRepo.SaveCommandSource(ctx, cmd); err != nil {
			logger.Error("Failed to save pending command", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save command: %w", err)
		}
		logger.Info("Command queued for approval",
			slog.String("command_id", cmd.CommandID),
			slog.String("action", req.ActionName),
			slog.String("entity", req.EntityName),
		)
		return &dto.CommandProcessingResult{
			CommandID:        cmd.CommandID,
			ProcessingResult: domain.AwaitingApproval,
		}, nil
	}

	// Auto-process path: the dispatch and the command record must commit as
	// one unit, so both run inside one database transaction.
	tx, err := s.commandRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.commandRepo.Rollback(ctx, tx)

	txCtx := portsrepo.WithTx(ctx, tx)
	result, err := s.dispatcher.Dispatch(txCtx, req.ActionName, req.EntityName, req.Command, makerID)
	if err != nil {
		logger.Warn("Command execution failed", slog.String("error", err.Error()))
		return nil, err
	}

	cmd.ProcessingResult = domain.Processed
	cmd.ResourceID = &result.ResourceID
	cmd.SubresourceID = result.SubresourceID
	if err := s.commandRepo.SaveCommandSource(txCtx, cmd); err != nil {
		logger.Error("Failed to save processed command", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save command: %w", err)
	}

	if err := s.commandRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Command processed directly",
		slog.String("command_id", cmd.CommandID),
		slog.String("resource_id", result.ResourceID),
	)
	return &dto.CommandProcessingResult{
		CommandID:        cmd.CommandID,
		ProcessingResult: domain.Processed,
		ResourceID:       &result.ResourceID,
		SubresourceID:    result.SubresourceID,
		Changes:          dto.ToTransactionChanges(result.Changes),
	}, nil
}

// ApproveEntry replays a pending command and transitions it to PROCESSED.
// The row lock taken by FindCommandSourceByIDForUpdate serializes concurrent
// attempts on the same command: exactly one wins, the rest observe the final
// state and fail with ErrInvalidState.
func (s *commandSourceService) ApproveEntry(ctx context.Context, commandID string, checkerID string) (*dto.CommandProcessingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkPermission(ctx, checkerID, MakerCheckerResource); err != nil {
		logger.Warn("Permission denied for approval", slog.String("checker_id", checkerID))
		return nil, err
	}

	tx, err := s.commandRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.commandRepo.Rollback(ctx, tx)

	cmd, err := s.commandRepo.FindCommandSourceByIDForUpdate(ctx, tx, commandID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch command for approval", slog.String("error", err.Error()), slog.String("command_id", commandID))
		}
		return nil, err
	}
	if !cmd.IsAwaitingApproval() {
		return nil, fmt.Errorf("%w: command %s is %s", apperrors.ErrInvalidState, commandID, cmd.ProcessingResult)
	}
	if cmd.MakerID == checkerID {
		return nil, fmt.Errorf("%w: maker cannot approve their own command", apperrors.ErrForbidden)
	}

	// Replay the stored payload inside the same transaction as the state
	// transition. If the replay fails, the deferred rollback leaves the
	// record untouched in AWAITING_APPROVAL with no partial side effects.
	txCtx := portsrepo.WithTx(ctx, tx)
	result, err := s.dispatcher.Dispatch(txCtx, cmd.ActionName, cmd.EntityName, cmd.CommandAsJSON, cmd.MakerID)
	if err != nil {
		logger.Warn("Command replay failed during approval",
			slog.String("command_id", commandID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: command %s: %v", apperrors.ErrReplayFailed, commandID, err)
	}

	now := time.Now().UTC()
	err = s.commandRepo.UpdateCommandResolution(ctx, tx, commandID, checkerID, now, domain.Processed, &result.ResourceID, result.SubresourceID)
	if err != nil {
		logger.Error("Failed to record approval", slog.String("error", err.Error()), slog.String("command_id", commandID))
		return nil, fmt.Errorf("failed to record approval: %w", err)
	}

	if err := s.commandRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Command approved",
		slog.String("command_id", commandID),
		slog.String("checker_id", checkerID),
		slog.String("resource_id", result.ResourceID),
	)
	return &dto.CommandProcessingResult{
		CommandID:        commandID,
		ProcessingResult: domain.Processed,
		ResourceID:       &result.ResourceID,
		SubresourceID:    result.SubresourceID,
		Changes:          dto.ToTransactionChanges(result.Changes),
	}, nil
}

// RejectEntry transitions a pending command to REJECTED. The underlying
// operation is never dispatched.
func (s *commandSourceService) RejectEntry(ctx context.Context, commandID string, checkerID string) (*dto.CommandProcessingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkPermission(ctx, checkerID, MakerCheckerResource); err != nil {
		logger.Warn("Permission denied for rejection", slog.String("checker_id", checkerID))
		return nil, err
	}

	tx, err := s.commandRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.commandRepo.Rollback(ctx, tx)

	cmd, err := s.commandRepo.FindCommandSourceByIDForUpdate(ctx, tx, commandID)
	if err != nil {
		return nil, err
	}
	if !cmd.IsAwaitingApproval() {
		return nil, fmt.Errorf("%w: command %s is %s", apperrors.ErrInvalidState, commandID, cmd.ProcessingResult)
	}

	now := time.Now().UTC()
	err = s.commandRepo.UpdateCommandResolution(ctx, tx, commandID, checkerID, now, domain.Rejected, nil, nil)
	if err != nil {
		logger.Error("Failed to record rejection", slog.String("error", err.Error()), slog.String("command_id", commandID))
		return nil, fmt.Errorf("failed to record rejection: %w", err)
	}

	if err := s.commandRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Command rejected", slog.String("command_id", commandID), slog.String("checker_id", checkerID))
	return &dto.CommandProcessingResult{
		CommandID:        commandID,
		ProcessingResult: domain.Rejected,
	}, nil
}

// DeleteEntry removes a command that is still awaiting approval.
func (s *commandSourceService) DeleteEntry(ctx context.Context, commandID string, requestingUserID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkPermission(ctx, requestingUserID, MakerCheckerResource); err != nil {
		logger.Warn("Permission denied for deletion", slog.String("user_id", requestingUserID))
		return "", err
	}

	tx, err := s.commandRepo.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer s.commandRepo.Rollback(ctx, tx)

	cmd, err := s.commandRepo.FindCommandSourceByIDForUpdate(ctx, tx, commandID)
	if err != nil {
		return "", err
	}
	if !cmd.IsAwaitingApproval() {
		// Processed and rejected records are immutable history.
		return "", fmt.Errorf("%w: cannot delete command %s in state %s", apperrors.ErrInvalidState, commandID, cmd.ProcessingResult)
	}

	if err := s.commandRepo.DeleteCommandSource(ctx, tx, commandID); err != nil {
		logger.Error("Failed to delete command", slog.String("error", err.Error()), slog.String("command_id", commandID))
		return "", fmt.Errorf("failed to delete command: %w", err)
	}

	if err := s.commandRepo.Commit(ctx, tx); err != nil {
		return "", err
	}

	logger.Info("Pending command deleted", slog.String("command_id", commandID), slog.String("user_id", requestingUserID))
	return commandID, nil
}
