package handlers

import (
	stderrors "errors"
	"net/http"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget endpoints
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// ListBudgets returns the user's budgets
// @Summary List budgets
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Budget "Budgets"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgets, err := h.budgetService.ListBudgets(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, budgets)
}

// CreateBudget creates a budget for one of the user's categories
// @Summary Create a budget
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BudgetRequest true "Budget details"
// @Success 201 {object} models.Budget "Budget created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	budget, err := h.budgetService.CreateBudget(userID, &req)
	if err != nil {
		return mapBudgetErr(c, err)
	}

	return c.JSON(http.StatusCreated, budget)
}

// UpdateBudget replaces a budget
// @Summary Update a budget
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param budgetId path string true "Budget ID (UUID)"
// @Param request body dto.BudgetRequest true "Budget details"
// @Success 200 {object} models.Budget "Updated budget"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Router /budgets/{budgetId} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := parsePathID(c, "budgetId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	var req dto.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, &req)
	if err != nil {
		return mapBudgetErr(c, err)
	}

	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget removes a budget
// @Summary Delete a budget
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param budgetId path string true "Budget ID (UUID)"
// @Success 200 {object} dto.MessageResponse "Budget deleted"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Router /budgets/{budgetId} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := parsePathID(c, "budgetId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		return mapBudgetErr(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Budget deleted successfully"})
}

func mapBudgetErr(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrBudgetNotFound):
		return SendError(c, errors.BudgetNotFound)
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, models.ErrInvalidBudgetPeriod):
		return SendError(c, errors.BudgetInvalidPeriod)
	case stderrors.Is(err, models.ErrInvalidBudgetAmount):
		return SendError(c, errors.BudgetInvalidAmount)
	}
	return SendSystemError(c, err)
}
