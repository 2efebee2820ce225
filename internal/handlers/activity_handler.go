package handlers

import (
	"net/http"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// ActivityHandler exposes the user's audit trail
type ActivityHandler struct {
	auditService services.AuditServiceInterface
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(auditService services.AuditServiceInterface) *ActivityHandler {
	return &ActivityHandler{auditService: auditService}
}

// ListActivity returns one page of the user's audit entries, newest first
// @Summary Recent activity
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Entries per page (max 100)" default(20)
// @Success 200 {object} SuccessResponse{data=[]models.AuditLog,meta=dto.PageMeta} "Activity page"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /activity [get]
func (h *ActivityHandler) ListActivity(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	page, pageSize := services.NormalizeActivityPage(getIntParam(c, "page", 1), getIntParam(c, "page_size", services.DefaultActivityPageSize))

	logs, total, err := h.auditService.ListActivity(userID, page, pageSize)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: logs,
		Meta: dto.PageMeta{Page: page, PageSize: pageSize, Total: total},
	})
}
