package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/projection"
	"cashflow-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the reporting views
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
	now              func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}

// Overview summarises one calendar month
// @Summary Monthly overview
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param month query int false "Month (1-12), defaults to the current month"
// @Param year query int false "Year, defaults to the current year"
// @Param account_id query string false "Restrict to one account (UUID)"
// @Success 200 {object} models.DashboardOverview "Overview"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_004 - Invalid period, VALIDATION_003 - Invalid account ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Router /dashboard/overview [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	year, month, accountID, ok := h.periodParams(c)
	if !ok {
		return nil
	}

	overview, err := h.dashboardService.Overview(userID, year, month, accountID)
	if err != nil {
		return mapDashboardErr(c, err)
	}

	return c.JSON(http.StatusOK, overview)
}

// Trends returns income and expense for the trailing months, oldest first
// @Summary Monthly trends
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param months query int false "Number of months (1-24)" default(6)
// @Param account_id query string false "Restrict to one account (UUID)"
// @Success 200 {array} models.TrendPoint "Trend points"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_004 - Invalid period"
// @Router /dashboard/trends [get]
func (h *DashboardHandler) Trends(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := parseOptionalUUID(c.QueryParam("account_id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	months := getIntParam(c, "months", services.DefaultTrendMonths)
	if months < 1 {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("months must be between 1 and 24"))
	}

	points, err := h.dashboardService.Trends(userID, h.now(), months, accountID)
	if err != nil {
		return mapDashboardErr(c, err)
	}

	return c.JSON(http.StatusOK, points)
}

// CategoryBreakdown totals one month per category, largest first
// @Summary Category breakdown
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param type query string false "Transaction type" Enums(income, expense) default(expense)
// @Param account_id query string false "Restrict to one account (UUID)"
// @Success 200 {array} models.CategoryBreakdownItem "Breakdown"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_004 - Invalid period, TRANSACTION_003 - Invalid type"
// @Router /dashboard/category-breakdown [get]
func (h *DashboardHandler) CategoryBreakdown(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	year, month, accountID, ok := h.periodParams(c)
	if !ok {
		return nil
	}

	items, err := h.dashboardService.CategoryBreakdown(userID, year, month, c.QueryParam("type"), accountID)
	if err != nil {
		return mapDashboardErr(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

// TotalCash converts every account balance into the reporting currency
// @Summary Total cash
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.TotalCash "Converted balances"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 503 {object} errors.ErrorResponse "RATE_PROVIDER_UNAVAILABLE - Exchange rates unavailable"
// @Router /dashboard/total-cash [get]
func (h *DashboardHandler) TotalCash(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	total, err := h.dashboardService.TotalCash(c.Request().Context(), userID)
	if err != nil {
		return mapDashboardErr(c, err)
	}

	return c.JSON(http.StatusOK, total)
}

// periodParams reads month, year and account_id. On failure the error
// response has already been written.
func (h *DashboardHandler) periodParams(c echo.Context) (int, time.Month, *uuid.UUID, bool) {
	now := h.now()
	year, month := now.Year(), now.Month()

	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			_ = SendError(c, errors.ValidationOutOfRange, errors.WithDetails("year must be a number"))
			return 0, 0, nil, false
		}
		year = y
	}
	if v := c.QueryParam("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			_ = SendError(c, errors.ValidationOutOfRange, errors.WithDetails("month must be between 1 and 12"))
			return 0, 0, nil, false
		}
		month = time.Month(m)
	}

	accountID, err := parseOptionalUUID(c.QueryParam("account_id"))
	if err != nil {
		_ = SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
		return 0, 0, nil, false
	}

	return year, month, accountID, true
}

func mapDashboardErr(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrInvalidPeriod):
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrInvalidTransactionType):
		return SendError(c, errors.TransactionInvalidType)
	case stderrors.Is(err, projection.ErrRateUnavailable):
		return SendError(c, errors.RateProviderUnavailable)
	}
	return SendSystemError(c, err)
}
