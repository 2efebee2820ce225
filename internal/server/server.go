package server

import (
	"context"
	"log/slog"
	"net/http"

	"cashflow-tracker/internal/app"
	"cashflow-tracker/internal/handlers"
	"cashflow-tracker/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = "1M"

// Server is the HTTP API around a service container.
type Server struct {
	echo   *echo.Echo
	http   *http.Server
	logger *slog.Logger
}

// New assembles the echo instance: middleware chain, routes and /metrics
// served from gatherer.
func New(c *app.Container, gatherer prometheus.Gatherer) *Server {
	cfg := c.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(c.Logger))
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	e.Use(echomw.BodyLimit(maxBodySize))

	h := &handlers.Handlers{
		Health:       handlers.NewHealthCheckHandler(c.DB),
		Auth:         handlers.NewAuthHandler(c.Auth),
		Accounts:     handlers.NewAccountHandler(c.Accounts),
		Categories:   handlers.NewCategoryHandler(c.Categories),
		Transactions: handlers.NewTransactionHandler(c.Transactions),
		Budgets:      handlers.NewBudgetHandler(c.Budgets),
		Dashboard:    handlers.NewDashboardHandler(c.Dashboard),
		Projections:  handlers.NewProjectionHandler(c.Projections),
		Activity:     handlers.NewActivityHandler(c.Audit),
	}
	if cfg.IsDevelopment() {
		h.Dev = handlers.NewDevHandler(c.DemoData)
	}

	loginLimiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, 0)
	handlers.RegisterRoutes(e, h, middleware.RequireAuth(c.Tokens), loginLimiter.Middleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return &Server{
		echo: e,
		http: &http.Server{
			Addr:         cfg.Server.Address(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: c.Logger,
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving HTTP until Shutdown is called, then returns
// http.ErrServerClosed.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "address", s.http.Addr)
	return s.echo.StartServer(s.http)
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
