package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

const defaultDemoMonths = 3

// DevHandler handles development-only endpoints. Routes are registered only
// when the server runs with APP_ENV=development.
type DevHandler struct {
	demoData services.DemoDataServiceInterface
	now      func() time.Time
}

// NewDevHandler creates a new development handler
func NewDevHandler(demoData services.DemoDataServiceInterface) *DevHandler {
	return &DevHandler{demoData: demoData, now: time.Now}
}

// SeedDemoData fills the caller's default account with generated recurring
// templates and card-style purchases so projections have something to show.
//
// Method: POST /api/v1/dev/demo-data
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - months: history to generate, 1 to 12 (default: 3)
//
// Success Response: 201 Created
//   - transactions_created: number of rows written
//   - months: history covered
//
// Error Responses:
//   - 400: months out of range
//   - 401: Unauthorized
//   - 404: the user has no account or no categories
//   - 500: Internal server error, with rows written before the failure kept
func (h *DevHandler) SeedDemoData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	months := getIntParam(c, "months", defaultDemoMonths)

	created, err := h.demoData.Seed(userID, months, h.now())
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrInvalidPeriod):
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("months: must be between 1 and 12"))
		case stderrors.Is(err, services.ErrAccountNotFound):
			return SendError(c, errors.AccountNotFound)
		case stderrors.Is(err, services.ErrNoDemoCategories):
			return SendError(c, errors.CategoryNotFound)
		}
		slog.Warn("demo seed stopped early", "user_id", userID, "created", created)
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"transactions_created": created,
		"months":               months,
	})
}
