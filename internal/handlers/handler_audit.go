package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/dto"
	"github.com/corelend/command_audit_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler handles HTTP requests over the full audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes sets up the audit trail routes.
func registerAuditRoutes(rg *gin.RouterGroup, as portssvc.AuditSvcFacade) {
	h := newAuditHandler(as)
	rg.GET("/audits", h.listAuditEntries)
}

// listAuditEntries godoc
// @Summary List the audit trail
// @Description Lists resolved and pending commands newest first, token-paginated and optionally filtered
// @Tags audits
// @Produce json
// @Param actionName query string false "Exact action name"
// @Param entityName query string false "Entity name prefix"
// @Param resourceId query string false "Exact resource ID"
// @Param makerId query string false "Exact maker user ID"
// @Param makerDateTimeFrom query string false "RFC3339 inclusive lower bound"
// @Param makerDateTimeTo query string false "RFC3339 inclusive upper bound"
// @Param processingResult query string false "AWAITING_APPROVAL, PROCESSED or REJECTED"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Opaque continuation token"
// @Param includeJson query bool false "Attach the stored command payload"
// @Success 200 {object} dto.ListAuditResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /audits [get]
func (h *auditHandler) listAuditEntries(c *gin.Context) {
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

	params := dto.ListAuditParams{}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		params.Limit = limit
	}
	if v := c.Query("nextToken"); v != "" {
		params.NextToken = &v
	}
	params.IncludeJSON, _ = strconv.ParseBool(c.DefaultQuery("includeJson", "false"))

	page, err := h.auditService.RetrieveAuditEntries(c.Request.Context(), criteria, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list audit entries")
		return
	}

	c.JSON(http.StatusOK, page)
}
