package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// makerCheckerHandler handles HTTP requests for the maker-checker queue.
type makerCheckerHandler struct {
	commandService portssvc.CommandSourceSvcFacade
	auditService   portssvc.AuditSvcFacade
}

// newMakerCheckerHandler creates a new makerCheckerHandler.
func newMakerCheckerHandler(cs portssvc.CommandSourceSvcFacade, as portssvc.AuditSvcFacade) *makerCheckerHandler {
	return &makerCheckerHandler{
		commandService: cs,
		auditService:   as,
	}
}

// registerMakerCheckerRoutes sets up routes for the maker-checker queue.
func registerMakerCheckerRoutes(rg *gin.RouterGroup, cs portssvc.CommandSourceSvcFacade, as portssvc.AuditSvcFacade) {
	h := newMakerCheckerHandler(cs, as)

	mc := rg.Group("/makercheckers")
	{
		mc.GET("", h.listPendingEntries)
		mc.GET("/searchtemplate", h.getSearchTemplate)
		mc.POST("/:commandID", h.resolveEntry)
		mc.DELETE("/:commandID", h.deleteEntry)
	}
}

// parseSearchCriteria reads the optional audit filters from query parameters.
// Unset parameters impose no constraint.
func parseSearchCriteria(c *gin.Context) (domain.AuditSearchCriteria, error) {
	var criteria domain.AuditSearchCriteria

	if v := c.Query("actionName"); v != "" {
		criteria.ActionName = &v
	}
	if v := c.Query("entityName"); v != "" {
		criteria.EntityName = &v
	}
	if v := c.Query("resourceId"); v != "" {
		criteria.ResourceID = &v
	}
	if v := c.Query("makerId"); v != "" {
		criteria.MakerID = &v
	}
	if v := c.Query("makerDateTimeFrom"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return criteria, errors.New("makerDateTimeFrom must be RFC3339")
		}
		criteria.MadeOnDateFrom = &t
	}
	if v := c.Query("makerDateTimeTo"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return criteria, errors.New("makerDateTimeTo must be RFC3339")
		}
		criteria.MadeOnDateTo = &t
	}
	if v := c.Query("processingResult"); v != "" {
		pr := domain.ProcessingResult(v)
		switch pr {
		case domain.AwaitingApproval, domain.Processed, domain.Rejected:
			criteria.ProcessingResult = &pr
		default:
			return criteria, errors.New("processingResult must be AWAITING_APPROVAL, PROCESSED or REJECTED")
		}
	}
	return criteria, nil
}

// listPendingEntries godoc
// @Summary List commands awaiting approval
// @Description Lists maker-checker entries awaiting approval, oldest first, optionally filtered
// @Tags makercheckers
// @Produce json
// @Param actionName query string false "Exact action name"
// @Param entityName query string false "Entity name prefix"
// @Param resourceId query string false "Exact resource ID"
// @Param makerId query string false "Exact maker user ID"
// @Param makerDateTimeFrom query string false "RFC3339 inclusive lower bound"
// @Param makerDateTimeTo query string false "RFC3339 inclusive upper bound"
// @Param includeJson query bool false "Attach the stored command payload"
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /makercheckers [get]
func (h *makerCheckerHandler) listPendingEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	criteria, err := parseSearchCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	includeJSON, _ := strconv.ParseBool(c.DefaultQuery("includeJson", "false"))

	entries, err := h.auditService.RetrieveEntriesToBeChecked(c.Request.Context(), criteria, includeJSON, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list pending entries")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// getSearchTemplate godoc
// @Summary Audit search template
// @Description Returns the users, action names and entity names valid as audit filters
// @Tags makercheckers
// @Produce json
// @Success 200 {object} dto.AuditSearchTemplateResponse
// @Failure 403 {object} ErrorResponse
// @Router /makercheckers/searchtemplate [get]
func (h *makerCheckerHandler) getSearchTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	template, err := h.auditService.RetrieveSearchTemplate(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load search template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// resolveEntry godoc
// @Summary Approve or reject a pending command
// @Description Approves (replays) or rejects the pending command named by commandID, selected by the command query parameter
// @Tags makercheckers
// @Produce json
// @Param commandID path string true "Command ID"
// @Param command query string true "approve or reject"
// @Success 200 {object} dto.CommandProcessingResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /makercheckers/{commandID} [post]
func (h *makerCheckerHandler) resolveEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commandID := c.Param("commandID")

	checkerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("command_id", commandID), slog.String("checker_user_id", checkerID))

	var result any
	var err error
	switch c.Query("command") {
	case "approve":
		result, err = h.commandService.ApproveEntry(c.Request.Context(), commandID, checkerID)
	case "reject":
		result, err = h.commandService.RejectEntry(c.Request.Context(), commandID, checkerID)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "command query parameter must be approve or reject"})
		return
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve entry")
		return
	}

	logger.Info("Maker-checker entry resolved")
	c.JSON(http.StatusOK, result)
}

// deleteEntry godoc
// @Summary Delete a pending command
// @Description Deletes a command that is still awaiting approval
// @Tags makercheckers
// @Produce json
// @Param commandID path string true "Command ID"
// @Success 200 {object} map[string]string "Returns the deleted command ID"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /makercheckers/{commandID} [delete]
func (h *makerCheckerHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commandID := c.Param("commandID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	deletedID, err := h.commandService.DeleteEntry(c.Request.Context(), commandID, userID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("command_id", commandID)), err, "Failed to delete entry")
		return
	}

	logger.Info("Maker-checker entry deleted", slog.String("command_id", deletedID))
	c.JSON(http.StatusOK, gin.H{"commandId": deletedID})
}

// respondServiceError maps service errors to HTTP responses. Replay failures
// surface as 422 so callers can distinguish "the command is gone" from "the
// command no longer applies".
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Invalid state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrReplayFailed):
		logger.Warn("Replay failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
