package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/dto"
	"github.com/corelend/command_audit_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commandHandler handles HTTP requests for submitting commands.
type commandHandler struct {
	commandService portssvc.CommandSourceSvcFacade
}

// newCommandHandler creates a new commandHandler.
func newCommandHandler(cs portssvc.CommandSourceSvcFacade) *commandHandler {
	return &commandHandler{commandService: cs}
}

// registerCommandRoutes sets up the command submission route.
func registerCommandRoutes(rg *gin.RouterGroup, cs portssvc.CommandSourceSvcFacade) {
	h := newCommandHandler(cs)
	rg.POST("/commands", h.submitCommand)
}

// submitCommand godoc
// @Summary Submit a command
// @Description Submits a command for execution; depending on the approval rules it executes immediately or is queued for a checker
// @Tags commands
// @Accept json
// @Produce json
// @Param command body dto.SubmitCommandRequest true "Command to submit"
// @Success 200 {object} dto.CommandProcessingResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /commands [post]
func (h *commandHandler) submitCommand(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for submitCommand", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	makerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Maker user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("maker_user_id", makerID), slog.String("action", req.ActionName), slog.String("entity", req.EntityName))

	result, err := h.commandService.SubmitCommand(c.Request.Context(), req, makerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit command")
		return
	}

	logger.Info("Command submitted", slog.String("command_id", result.CommandID), slog.String("processing_result", string(result.ProcessingResult)))
	c.JSON(http.StatusOK, result)
}
