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

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories returns the user's categories, optionally of one type
// @Summary List categories
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param type query string false "Filter by type" Enums(income, expense)
// @Success 200 {array} models.Category "Categories"
// @Failure 400 {object} errors.ErrorResponse "CATEGORY_003 - Invalid category type"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categoryService.ListCategories(userID, c.QueryParam("type"))
	if err != nil {
		return mapCategoryErr(c, err)
	}

	return c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a category
// @Summary Create a category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category details"
// @Success 201 {object} models.Category "Category created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	category, err := h.categoryService.CreateCategory(userID, &req)
	if err != nil {
		return mapCategoryErr(c, err)
	}

	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory replaces a category's fields
// @Summary Update a category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param categoryId path string true "Category ID (UUID)"
// @Param request body dto.CategoryRequest true "Category details"
// @Success 200 {object} models.Category "Updated category"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or category ID"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /categories/{categoryId} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := parsePathID(c, "categoryId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, &req)
	if err != nil {
		return mapCategoryErr(c, err)
	}

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes an unused category
// @Summary Delete a category
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param categoryId path string true "Category ID (UUID)"
// @Success 200 {object} dto.MessageResponse "Category deleted"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_002 - Category is in use"
// @Router /categories/{categoryId} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := parsePathID(c, "categoryId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		return mapCategoryErr(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted successfully"})
}

func mapCategoryErr(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, services.ErrCategoryInUse):
		return SendError(c, errors.CategoryInUse)
	case stderrors.Is(err, models.ErrInvalidCategoryType),
		stderrors.Is(err, models.ErrInvalidCategoryColor):
		return SendError(c, errors.CategoryInvalidType, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}
