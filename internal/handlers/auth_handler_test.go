package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/services"
	"cashflow-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

type AuthHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	authService *service_mocks.MockAuthServiceInterface
	handler     *AuthHandler
	e           *echo.Echo
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerSuite) post(path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	return s.e.NewContext(req, rec), rec
}

func (s *AuthHandlerSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func (s *AuthHandlerSuite) TestRegister_Success() {
	token := &dto.TokenResponse{
		AccessToken: "jwt",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        dto.UserResponse{ID: uuid.New(), Email: "ada@example.com", Name: "Ada"},
	}
	s.authService.EXPECT().
		Register(&dto.RegisterRequest{Email: "ada@example.com", Password: "secret123", Name: "Ada"}, "203.0.113.9", gomock.Any()).
		Return(token, nil)

	c, rec := s.post("/api/v1/auth/register", map[string]string{
		"email": "ada@example.com", "password": "secret123", "name": "Ada",
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp dto.TokenResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("jwt", resp.AccessToken)
	s.Equal("ada@example.com", resp.User.Email)
}

func (s *AuthHandlerSuite) TestRegister_ValidationFailure() {
	c, rec := s.post("/api/v1/auth/register", map[string]string{
		"email": "not-an-email", "password": "123", "name": "Ada",
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(errors.ValidationGeneral), resp.Error.Code)
	s.Contains(resp.Error.Details, "email: must be a valid email address")
	s.Contains(resp.Error.Details, "password: must be at least 6 characters long")
}

func (s *AuthHandlerSuite) TestRegister_EmailTaken() {
	s.authService.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, services.ErrUserAlreadyExists)

	c, rec := s.post("/api/v1/auth/register", map[string]string{
		"email": "ada@example.com", "password": "secret123", "name": "Ada",
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(string(errors.AuthEmailTaken), s.errorCode(rec))
}

func (s *AuthHandlerSuite) TestRegister_PasswordPolicy() {
	s.authService.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("failed to hash password: %w", services.ErrPasswordTooShort))

	c, rec := s.post("/api/v1/auth/register", map[string]string{
		"email": "ada@example.com", "password": "secret123", "name": "Ada",
	})

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationGeneral), s.errorCode(rec))
}

func (s *AuthHandlerSuite) TestLogin() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.ErrorCode
	}{
		{name: "invalid credentials", err: services.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: errors.AuthInvalidCredentials},
		{name: "throttled", err: services.ErrTooManyLoginAttempts, wantStatus: http.StatusTooManyRequests, wantCode: errors.AuthTooManyAttempts},
		{name: "storage failure", err: fmt.Errorf("failed to get user: connection reset"), wantStatus: http.StatusInternalServerError, wantCode: errors.SystemInternalError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.authService.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			c, rec := s.post("/api/v1/auth/login", map[string]string{
				"email": "ada@example.com", "password": "wrong",
			})

			s.NoError(s.handler.Login(c))
			s.Equal(tt.wantStatus, rec.Code)
			s.Equal(string(tt.wantCode), s.errorCode(rec))
		})
	}
}

func (s *AuthHandlerSuite) TestLogin_Success() {
	s.authService.EXPECT().Login(gomock.Any(), "203.0.113.9", gomock.Any()).
		Return(&dto.TokenResponse{AccessToken: "jwt", TokenType: "Bearer"}, nil)

	c, rec := s.post("/api/v1/auth/login", map[string]string{
		"email": "ada@example.com", "password": "secret123",
	})

	s.NoError(s.handler.Login(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"access_token":"jwt"`)
}

func (s *AuthHandlerSuite) TestMe() {
	userID := uuid.New()
	s.authService.EXPECT().Me(userID).Return(&models.User{ID: userID, Email: "ada@example.com", Name: "Ada"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", userID)

	s.NoError(s.handler.Me(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.UserResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(userID, resp.ID)
	s.Equal("Ada", resp.Name)
}

func (s *AuthHandlerSuite) TestMe_Unauthenticated() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()

	s.NoError(s.handler.Me(s.e.NewContext(req, rec)))
	s.Equal(http.StatusUnauthorized, rec.Code)
}
