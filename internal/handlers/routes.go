package handlers

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler the server mounts. Dev is optional and
// only mounted when non-nil.
type Handlers struct {
	Health       *HealthCheckHandler
	Auth         *AuthHandler
	Accounts     *AccountHandler
	Categories   *CategoryHandler
	Transactions *TransactionHandler
	Budgets      *BudgetHandler
	Dashboard    *DashboardHandler
	Projections  *ProjectionHandler
	Activity     *ActivityHandler
	Dev          *DevHandler
}

// RegisterRoutes mounts the API on e. requireAuth guards everything except
// health, register and login; authLimit, when given, applies to the two
// credential endpoints only.
func RegisterRoutes(e *echo.Echo, h *Handlers, requireAuth echo.MiddlewareFunc, authLimit ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.HealthCheck)

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register, authLimit...)
	auth.POST("/login", h.Auth.Login, authLimit...)
	auth.GET("/me", h.Auth.Me, requireAuth)

	api := v1.Group("", requireAuth)

	api.GET("/accounts", h.Accounts.ListAccounts)
	api.POST("/accounts", h.Accounts.CreateAccount)
	api.PUT("/accounts/:accountId", h.Accounts.UpdateAccount)
	api.DELETE("/accounts/:accountId", h.Accounts.DeleteAccount)
	api.GET("/accounts/:accountId/balance", h.Accounts.GetBalance)

	api.GET("/categories", h.Categories.ListCategories)
	api.POST("/categories", h.Categories.CreateCategory)
	api.PUT("/categories/:categoryId", h.Categories.UpdateCategory)
	api.DELETE("/categories/:categoryId", h.Categories.DeleteCategory)

	api.GET("/transactions", h.Transactions.ListTransactions)
	api.POST("/transactions", h.Transactions.CreateTransaction)
	api.PUT("/transactions/:transactionId", h.Transactions.UpdateTransaction)
	api.DELETE("/transactions/:transactionId", h.Transactions.DeleteTransaction)

	api.GET("/budgets", h.Budgets.ListBudgets)
	api.POST("/budgets", h.Budgets.CreateBudget)
	api.PUT("/budgets/:budgetId", h.Budgets.UpdateBudget)
	api.DELETE("/budgets/:budgetId", h.Budgets.DeleteBudget)

	api.GET("/dashboard/overview", h.Dashboard.Overview)
	api.GET("/dashboard/trends", h.Dashboard.Trends)
	api.GET("/dashboard/category-breakdown", h.Dashboard.CategoryBreakdown)
	api.GET("/dashboard/total-cash", h.Dashboard.TotalCash)

	api.GET("/projections", h.Projections.GetProjection)

	api.GET("/activity", h.Activity.ListActivity)

	if h.Dev != nil {
		api.POST("/dev/demo-data", h.Dev.SeedDemoData)
	}
}
