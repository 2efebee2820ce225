package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cashflow-tracker/internal/config"
	apierrors "cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	tokenService services.TokenServiceInterface
	e            *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.tokenService = s.createTokenService(24 * time.Hour)
	s.e = echo.New()
}

func (s *AuthMiddlewareSuite) createTokenService(ttl time.Duration) services.TokenServiceInterface {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	return services.NewTokenService(&config.JWTConfig{
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "test-issuer",
		AccessTokenDuration: ttl,
	})
}

func (s *AuthMiddlewareSuite) serve(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(handler(c))
	return rec, c
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var resp apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	user := &models.User{ID: uuid.New(), Email: "test@example.com"}
	token, _, err := s.tokenService.GenerateAccessToken(user)
	s.Require().NoError(err)

	rec, c := s.serve(RequireAuth(s.tokenService), "Bearer "+token)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(user.ID, c.Get("user_id"))
	s.Equal(user.Email, c.Get("user_email"))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingAuthorizationHeader() {
	rec, _ := s.serve(RequireAuth(s.tokenService), "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthMissingToken), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_InvalidTokenFormat() {
	rec, _ := s.serve(RequireAuth(s.tokenService), "InvalidToken")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MalformedJWT() {
	rec, _ := s.serve(RequireAuth(s.tokenService), "Bearer invalid.jwt.token")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ExpiredToken() {
	shortTokenService := s.createTokenService(time.Millisecond)

	token, _, err := shortTokenService.GenerateAccessToken(&models.User{ID: uuid.New(), Email: "test@example.com"})
	s.Require().NoError(err)

	time.Sleep(1100 * time.Millisecond)

	rec, _ := s.serve(RequireAuth(shortTokenService), "Bearer "+token)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthExpiredToken), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_TokenSignedWithDifferentKey() {
	token, _, err := s.createTokenService(time.Hour).GenerateAccessToken(&models.User{ID: uuid.New()})
	s.Require().NoError(err)

	rec, _ := s.serve(RequireAuth(s.tokenService), "Bearer "+token)

	s.Equal(http.StatusUnauthorized, rec.Code)
}
