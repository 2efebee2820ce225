package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/projection"
	"cashflow-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// ProjectionHandler serves the six-month balance projection
type ProjectionHandler struct {
	projectionService services.ProjectionServiceInterface
	now               func() time.Time
}

// NewProjectionHandler creates a new projection handler
func NewProjectionHandler(projectionService services.ProjectionServiceInterface) *ProjectionHandler {
	return &ProjectionHandler{
		projectionService: projectionService,
		now:               time.Now,
	}
}

// GetProjection projects every account over the six months after as_of
// @Summary Six-month projection
// @Description Per-account monthly balances from recurring templates, with grand totals in the reporting currency. Accounts whose currency cannot be converted are listed in omitted_accounts.
// @Tags Projections
// @Security BearerAuth
// @Produce json
// @Param as_of query string false "Reference day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ProjectionResponse "Projection"
// @Failure 400 {object} errors.ErrorResponse "PROJECTION_001 - Invalid as_of date"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 422 {object} errors.ErrorResponse "PROJECTION_002 - Stored data cannot be projected"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /projections [get]
func (h *ProjectionHandler) GetProjection(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	asOf, err := h.asOf(c.QueryParam("as_of"))
	if err != nil {
		return SendError(c, errors.ProjectionInvalidAsOf, errors.WithDetails(err.Error()))
	}

	result, err := h.projectionService.Project(c.Request().Context(), userID, asOf)
	if err != nil {
		switch {
		case stderrors.Is(err, projection.ErrInvalidInput):
			return SendError(c, errors.ProjectionInvalidData, errors.WithDetails(err.Error()))
		case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
			return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("request canceled"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewProjectionResponse(asOf, *result))
}

func (h *ProjectionHandler) asOf(value string) (time.Time, error) {
	if value == "" {
		now := h.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return dto.ParseDate(value)
}
