// Package app wires repositories and services from configuration. The HTTP
// server and the CLI commands share one container so both surfaces run the
// same ledger and projection logic.
package app

import (
	"log/slog"

	"cashflow-tracker/internal/config"
	"cashflow-tracker/internal/repositories"
	"cashflow-tracker/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Container holds the constructed services.
type Container struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *slog.Logger

	Users repositories.UserRepositoryInterface

	Metrics      services.MetricsRecorderInterface
	AuditLogger  services.AuditLoggerInterface
	Tokens       services.TokenServiceInterface
	Auth         services.AuthServiceInterface
	Accounts     services.AccountServiceInterface
	Categories   services.CategoryServiceInterface
	Transactions services.TransactionServiceInterface
	Budgets      services.BudgetServiceInterface
	Rates        services.RateProviderInterface
	Dashboard    services.DashboardServiceInterface
	Projections  services.ProjectionServiceInterface
	Audit        services.AuditServiceInterface
	DemoData     services.DemoDataServiceInterface
}

// New builds every service over db. Metrics are registered with reg, which
// must not already hold them; pass a fresh registry in tests.
func New(cfg *config.Config, db *gorm.DB, reg prometheus.Registerer, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.Default()
	}

	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	metrics := services.NewPrometheusMetrics(reg)
	auditLogger := services.NewAuditLogger(logger)
	tokens := services.NewTokenService(&cfg.JWT)
	passwords := services.NewPasswordService(&cfg.Security)

	breaker := services.NewCircuitBreaker(services.CircuitBreakerConfigFromRates(&cfg.Rates))
	rates := services.NewExchangeRateProvider(&cfg.Rates, breaker, auditLogger, metrics, logger)

	accounts := services.NewAccountService(accountRepo, auditLogger, metrics, logger)

	return &Container{
		Config: cfg,
		DB:     db,
		Logger: logger,

		Users: userRepo,

		Metrics:      metrics,
		AuditLogger:  auditLogger,
		Tokens:       tokens,
		Auth:         services.NewAuthService(userRepo, auditRepo, passwords, tokens, auditLogger, metrics, logger),
		Accounts:     accounts,
		Categories:   services.NewCategoryService(categoryRepo, auditLogger, metrics, logger),
		Transactions: services.NewTransactionService(transactionRepo, accountRepo, categoryRepo, auditLogger, metrics, logger),
		Budgets:      services.NewBudgetService(budgetRepo, categoryRepo, auditLogger, metrics, logger),
		Rates:        rates,
		Dashboard:    services.NewDashboardService(accounts, transactionRepo, categoryRepo, rates, cfg.Rates.ReportingCurrency, logger),
		Projections: services.NewProjectionService(accountRepo, transactionRepo, auditRepo, rates,
			cfg.Rates.ReportingCurrency, auditLogger, metrics, logger),
		Audit: services.NewAuditService(auditRepo, logger),
		DemoData: services.NewDemoDataService(accountRepo, categoryRepo, transactionRepo,
			services.NewTransactionGenerator(), logger),
	}
}
