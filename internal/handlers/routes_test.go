package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cashflow-tracker/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func denyAll(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return SendError(c, errors.AuthMissingToken)
	}
}

func routeSet(e *echo.Echo) map[string]bool {
	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRegisterRoutes_Table(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, &Handlers{}, denyAll)

	routes := routeSet(e)
	for _, want := range []string{
		"GET /health",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"GET /api/v1/accounts",
		"POST /api/v1/accounts",
		"PUT /api/v1/accounts/:accountId",
		"DELETE /api/v1/accounts/:accountId",
		"GET /api/v1/accounts/:accountId/balance",
		"GET /api/v1/categories",
		"DELETE /api/v1/categories/:categoryId",
		"GET /api/v1/transactions",
		"PUT /api/v1/transactions/:transactionId",
		"GET /api/v1/budgets",
		"POST /api/v1/budgets",
		"GET /api/v1/dashboard/overview",
		"GET /api/v1/dashboard/trends",
		"GET /api/v1/dashboard/category-breakdown",
		"GET /api/v1/dashboard/total-cash",
		"GET /api/v1/projections",
		"GET /api/v1/activity",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
	assert.False(t, routes["POST /api/v1/dev/demo-data"], "dev routes need a dev handler")
}

func TestRegisterRoutes_DevRoutesWhenEnabled(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, &Handlers{Dev: &DevHandler{}}, denyAll)

	assert.True(t, routeSet(e)["POST /api/v1/dev/demo-data"])
}

func TestRegisterRoutes_ProtectedRoutesRequireAuth(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, &Handlers{}, denyAll)

	for _, target := range []string{"/api/v1/projections", "/api/v1/accounts", "/api/v1/auth/me"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Equal(t, "AUTH_002", decodeErrorCode(rec), target)
	}
}
