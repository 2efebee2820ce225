package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"cashflow-tracker/internal/dto"
	apierrors "cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/services"
	"cashflow-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AccountHandlerSuite defines the test suite for AccountHandler
type AccountHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockAccountServiceInterface
	handler     *AccountHandler
	echo        *echo.Echo
	testUserID  uuid.UUID
}

func (s *AccountHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockAccountServiceInterface(s.ctrl)
	s.handler = NewAccountHandler(s.mockService)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.testUserID = uuid.New()
}

func (s *AccountHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerSuite))
}

func (s *AccountHandlerSuite) withAccountID(c echo.Context, id string) {
	c.SetParamNames("accountId")
	c.SetParamValues(id)
}

func (s *AccountHandlerSuite) TestListAccounts() {
	accounts := []dto.AccountResponse{
		{ID: uuid.New(), Name: "Main Account", Currency: "CAD", CurrentBalance: decimal.RequireFromString("1250.5")},
	}
	s.mockService.EXPECT().ListAccounts(s.testUserID).Return(accounts, nil)

	c, rec := newAuthedContext(s.echo, http.MethodGet, "/api/v1/accounts", nil, s.testUserID)

	s.NoError(s.handler.ListAccounts(c))
	s.Equal(http.StatusOK, rec.Code)

	var got []dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Equal("Main Account", got[0].Name)
	s.True(got[0].CurrentBalance.Equal(decimal.RequireFromString("1250.5")))
}

func (s *AccountHandlerSuite) TestListAccounts_Unauthenticated() {
	c, rec := newAuthedContext(s.echo, http.MethodGet, "/api/v1/accounts", nil, uuid.Nil)

	s.NoError(s.handler.ListAccounts(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthMissingToken), decodeErrorCode(rec))
}

func (s *AccountHandlerSuite) TestCreateAccount() {
	created := &models.Account{
		ID:             uuid.New(),
		UserID:         s.testUserID,
		Name:           "Travel",
		Currency:       "USD",
		OpeningBalance: decimal.NewFromInt(300),
	}
	s.mockService.EXPECT().
		CreateAccount(s.testUserID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, req *dto.AccountRequest) (*models.Account, error) {
			s.Equal("Travel", req.Name)
			s.Equal("usd", req.Currency)
			s.True(req.OpeningBalance.Equal(decimal.NewFromInt(300)))
			return created, nil
		})

	body := map[string]interface{}{"name": "Travel", "currency": "usd", "opening_balance": "300"}
	c, rec := newAuthedContext(s.echo, http.MethodPost, "/api/v1/accounts", body, s.testUserID)

	s.NoError(s.handler.CreateAccount(c))
	s.Equal(http.StatusCreated, rec.Code)

	var got dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(created.ID, got.ID)
	s.True(got.CurrentBalance.Equal(decimal.NewFromInt(300)))
}

func (s *AccountHandlerSuite) TestCreateAccount_UnsupportedCurrency() {
	body := map[string]interface{}{"name": "Yen", "currency": "JPY"}
	c, rec := newAuthedContext(s.echo, http.MethodPost, "/api/v1/accounts", body, s.testUserID)

	s.NoError(s.handler.CreateAccount(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apierrors.ValidationGeneral), decodeErrorCode(rec))
}

func (s *AccountHandlerSuite) TestUpdateAccount() {
	accountID := uuid.New()
	s.mockService.EXPECT().UpdateAccount(s.testUserID, accountID, gomock.Any()).
		Return(&models.Account{ID: accountID, Name: "Renamed", Currency: "CAD"}, nil)

	body := map[string]interface{}{"name": "Renamed", "currency": "CAD"}
	c, rec := newAuthedContext(s.echo, http.MethodPut, "/api/v1/accounts/"+accountID.String(), body, s.testUserID)
	s.withAccountID(c, accountID.String())

	s.NoError(s.handler.UpdateAccount(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"name":"Renamed"`)
}

func (s *AccountHandlerSuite) TestUpdateAccount_InvalidID() {
	body := map[string]interface{}{"name": "Renamed", "currency": "CAD"}
	c, rec := newAuthedContext(s.echo, http.MethodPut, "/api/v1/accounts/nope", body, s.testUserID)
	s.withAccountID(c, "nope")

	s.NoError(s.handler.UpdateAccount(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apierrors.ValidationInvalidFormat), decodeErrorCode(rec))
}

func (s *AccountHandlerSuite) TestDeleteAccount() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   apierrors.ErrorCode
	}{
		{name: "deleted", wantStatus: http.StatusOK},
		{name: "not found", err: services.ErrAccountNotFound, wantStatus: http.StatusNotFound, wantCode: apierrors.AccountNotFound},
		{name: "has transactions", err: services.ErrAccountHasTransactions, wantStatus: http.StatusConflict, wantCode: apierrors.AccountHasTransactions},
		{name: "storage failure", err: errors.New("database is locked"), wantStatus: http.StatusInternalServerError, wantCode: apierrors.SystemInternalError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			accountID := uuid.New()
			s.mockService.EXPECT().DeleteAccount(s.testUserID, accountID).Return(tt.err)

			c, rec := newAuthedContext(s.echo, http.MethodDelete, "/api/v1/accounts/"+accountID.String(), nil, s.testUserID)
			s.withAccountID(c, accountID.String())

			s.NoError(s.handler.DeleteAccount(c))
			s.Equal(tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				s.Equal(string(tt.wantCode), decodeErrorCode(rec))
			}
		})
	}
}

func (s *AccountHandlerSuite) TestGetBalance() {
	accountID := uuid.New()
	s.mockService.EXPECT().GetBalance(s.testUserID, accountID).Return(&models.AccountBalance{
		AccountID:      accountID,
		Currency:       "CAD",
		OpeningBalance: decimal.NewFromInt(100),
		TotalIncome:    decimal.NewFromInt(50),
		TotalExpense:   decimal.NewFromInt(20),
		CurrentBalance: decimal.NewFromInt(130),
	}, nil)

	c, rec := newAuthedContext(s.echo, http.MethodGet, "/api/v1/accounts/"+accountID.String()+"/balance", nil, s.testUserID)
	s.withAccountID(c, accountID.String())

	s.NoError(s.handler.GetBalance(c))
	s.Equal(http.StatusOK, rec.Code)

	var got models.AccountBalance
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.True(got.CurrentBalance.Equal(decimal.NewFromInt(130)))
}
