package handlers

import (
	stderrors "errors"
	"net/http"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxTransactionLimit = 1000

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// ListTransactions returns the user's transactions, newest first
// @Summary List transactions
// @Description Filter by type, category, account and an inclusive date range
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param type query string false "Transaction type" Enums(income, expense)
// @Param category_id query string false "Category ID (UUID)"
// @Param account_id query string false "Account ID (UUID)"
// @Param start_date query string false "First day (YYYY-MM-DD)"
// @Param end_date query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param limit query int false "Maximum number of results"
// @Success 200 {array} dto.TransactionResponse "Transactions"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid filter, VALIDATION_006 - Invalid date"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.TransactionQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(query); err != nil {
		return SendValidationError(c, err)
	}

	filters, err := buildTransactionFilters(userID, query)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}

	limit := getIntParam(c, "limit", 0)
	if limit < 0 || limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}
	filters.Limit = limit

	transactions, err := h.transactionService.ListTransactions(filters)
	if err != nil {
		return mapTransactionErr(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponses(transactions))
}

// CreateTransaction records a transaction
// @Summary Create a transaction
// @Description One-off transactions count toward balances; recurring ones are monthly or twice-monthly templates used by the projection
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.TransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse "Transaction created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body, TRANSACTION_002 - Invalid amount"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found, CATEGORY_001 - Category not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	transaction, err := h.transactionService.CreateTransaction(userID, &req)
	if err != nil {
		return mapTransactionErr(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewTransactionResponse(transaction))
}

// UpdateTransaction replaces a transaction
// @Summary Update a transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param transactionId path string true "Transaction ID (UUID)"
// @Param request body dto.TransactionRequest true "Transaction details"
// @Success 200 {object} dto.TransactionResponse "Updated transaction"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or transaction ID"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /transactions/{transactionId} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := parsePathID(c, "transactionId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, &req)
	if err != nil {
		return mapTransactionErr(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// DeleteTransaction removes a transaction
// @Summary Delete a transaction
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param transactionId path string true "Transaction ID (UUID)"
// @Success 200 {object} dto.MessageResponse "Transaction deleted"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /transactions/{transactionId} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := parsePathID(c, "transactionId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		return mapTransactionErr(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transaction deleted successfully"})
}

// buildTransactionFilters turns the inclusive API range into the
// half-open range storage expects.
func buildTransactionFilters(userID uuid.UUID, query dto.TransactionQuery) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{UserID: userID, Type: query.Type}

	var err error
	if filters.AccountID, err = parseOptionalUUID(query.AccountID); err != nil {
		return filters, err
	}
	if filters.CategoryID, err = parseOptionalUUID(query.CategoryID); err != nil {
		return filters, err
	}
	if filters.StartDate, err = parseOptionalDate(query.StartDate); err != nil {
		return filters, err
	}
	end, err := parseOptionalDate(query.EndDate)
	if err != nil {
		return filters, err
	}
	if end != nil {
		next := end.AddDate(0, 0, 1)
		filters.EndDate = &next
	}

	if filters.StartDate != nil && filters.EndDate != nil && !filters.StartDate.Before(*filters.EndDate) {
		return filters, stderrors.New("start_date must not be after end_date")
	}
	return filters, nil
}

func mapTransactionErr(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrTransactionNotFound):
		return SendError(c, errors.TransactionNotFound)
	case stderrors.Is(err, services.ErrAccountNotFound):
		return SendError(c, errors.AccountNotFound)
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, services.ErrInvalidDate):
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrInvalidAmount):
		return SendError(c, errors.TransactionInvalidAmount)
	case stderrors.Is(err, models.ErrInvalidTransactionType):
		return SendError(c, errors.TransactionInvalidType)
	case stderrors.Is(err, models.ErrInvalidFrequency):
		return SendError(c, errors.TransactionInvalidFrequency)
	}
	return SendSystemError(c, err)
}
