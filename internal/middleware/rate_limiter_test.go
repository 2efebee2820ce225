package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func rateLimitedHandler(rl *RateLimiter) echo.HandlerFunc {
	return rl.Middleware()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func doLimitedRequest(e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestRateLimiter_BurstThenRejects(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(NewRateLimiter(2, 4))

	for i := 0; i < 4; i++ {
		rec := doLimitedRequest(e, handler, "192.168.1.2:12345")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i)
	}

	rec := doLimitedRequest(e, handler, "192.168.1.2:12345")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_006")
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	assert.Equal(t, float64(defaultRequestsPerSecond), float64(rl.limit))
	assert.Equal(t, defaultRequestsPerSecond*2, rl.burst)
}

func TestRateLimiter_DifferentIPsAreIndependent(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 2)
	handler := rateLimitedHandler(rl)

	ips := []string{"192.168.1.1:1234", "192.168.1.2:1234", "192.168.1.3:1234"}
	for _, ip := range ips {
		for i := 0; i < 2; i++ {
			rec := doLimitedRequest(e, handler, ip)
			assert.Equal(t, http.StatusOK, rec.Code, "request %d for %s", i, ip)
		}
	}
	assert.Equal(t, len(ips), rl.Visitors())

	rec := doLimitedRequest(e, handler, ips[0])
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiter_ForwardedForIdentifiesClient(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(NewRateLimiter(1, 1))

	first := httptest.NewRequest(http.MethodGet, "/test", nil)
	first.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(first, rec))
	assert.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodGet, "/test", nil)
	second.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec = httptest.NewRecorder()
	_ = handler(e.NewContext(second, rec))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
