package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cashflow-tracker/internal/app"
	"cashflow-tracker/internal/config"
	"cashflow-tracker/internal/database"
	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// ServerSuite drives the assembled router over an in-memory ledger.
type ServerSuite struct {
	suite.Suite
	db      *database.DB
	handler http.Handler
}

func (s *ServerSuite) SetupTest() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "testing", Port: "0"},
		JWT: config.JWTConfig{
			PrivateKey:          privateKey,
			PublicKey:           publicKey,
			Issuer:              "cashflow-test",
			AccessTokenDuration: time.Hour,
		},
		Security: config.SecurityConfig{BCryptCost: bcrypt.MinCost, RateLimitPerSecond: 100, PasswordMinLength: 6},
		Rates:    config.RatesConfig{BaseURL: "http://127.0.0.1:1", ReportingCurrency: "CAD", Timeout: time.Second},
	}

	s.db = database.SetupTestDB(s.T())
	reg := prometheus.NewRegistry()
	container := app.New(cfg, s.db.DB, reg, slog.Default())
	s.handler = New(container, reg).Handler()
}

func (s *ServerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) do(method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Require().NoError(err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) decode(rec *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *ServerSuite) register(email string) string {
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "secret123", "name": "Test User",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var tokens dto.TokenResponse
	s.decode(rec, &tokens)
	s.Require().NotEmpty(tokens.AccessToken)
	return tokens.AccessToken
}

func (s *ServerSuite) categoryID(token, categoryType, name string) string {
	rec := s.do(http.MethodGet, "/api/v1/categories?type="+categoryType, token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var categories []models.Category
	s.decode(rec, &categories)
	for _, c := range categories {
		if c.Name == name {
			return c.ID.String()
		}
	}
	s.FailNow("category not seeded", name)
	return ""
}

func (s *ServerSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "healthy")
	s.NotEmpty(rec.Header().Get("X-Trace-ID"))

	rec = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerSuite) TestProtectedRoutesNeedToken() {
	rec := s.do(http.MethodGet, "/api/v1/projections", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_002")
}

func (s *ServerSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/nothing-here", "", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_007")
}

func (s *ServerSuite) TestRegisterSeedsLedgerAndProjects() {
	token := s.register("flow@example.com")

	rec := s.do(http.MethodGet, "/api/v1/accounts", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var accounts []dto.AccountResponse
	s.decode(rec, &accounts)
	s.Require().Len(accounts, 1)
	s.Equal("CAD", accounts[0].Currency)
	s.True(accounts[0].IsDefault)
	accountID := accounts[0].ID.String()

	salary := s.categoryID(token, models.TransactionTypeIncome, "Salary")
	bills := s.categoryID(token, models.TransactionTypeExpense, "Bills & Utilities")
	food := s.categoryID(token, models.TransactionTypeExpense, "Food & Dining")

	for _, txn := range []map[string]interface{}{
		{"type": "income", "amount": 5000, "category_id": salary, "description": "Salary", "recurring_frequency": "monthly"},
		{"type": "expense", "amount": 1500, "category_id": bills, "description": "Rent", "recurring_frequency": "monthly"},
		{"type": "expense", "amount": 200, "category_id": food, "description": "Groceries", "recurring_frequency": "twice_monthly"},
	} {
		txn["account_id"] = accountID
		txn["date"] = "2026-03-01"
		txn["is_recurring"] = true
		rec := s.do(http.MethodPost, "/api/v1/transactions", token, txn)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/api/v1/projections?as_of=2026-03-10", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var projection dto.ProjectionResponse
	s.decode(rec, &projection)
	s.Equal([]string{"Apr 2026", "May 2026", "Jun 2026", "Jul 2026", "Aug 2026", "Sep 2026"}, projection.Months)
	s.Require().Len(projection.AccountProjections, 1)
	// templates are left out of the starting balance and only project forward
	s.Equal("0", projection.AccountProjections[0].CurrentBalance.String())
	s.Equal("3300", projection.AccountProjections[0].RecurringExcluded.String())
	s.Require().Len(projection.GrandTotals, 6)
	s.Equal("3100", projection.GrandTotals[0].TotalBalance.String())
	s.Equal("18600", projection.GrandTotals[5].TotalBalance.String())
	s.Equal("30000", projection.Summary.TotalProjectedIncome.String())
	s.Equal("11400", projection.Summary.TotalProjectedExpense.String())
	s.Equal("18600", projection.Summary.ProjectedNet.String())
	s.Empty(projection.OmittedAccounts)

	rec = s.do(http.MethodGet, "/api/v1/accounts/"+accountID+"/balance", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var balance models.AccountBalance
	s.decode(rec, &balance)
	s.True(balance.CurrentBalance.Equal(projection.AccountProjections[0].CurrentBalance.Add(projection.AccountProjections[0].RecurringExcluded)),
		"ledger balance %s", balance.CurrentBalance)

	rec = s.do(http.MethodGet, "/api/v1/activity", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"action":"project"`)
}

func (s *ServerSuite) TestDevRoutesHiddenOutsideDevelopment() {
	token := s.register("nodev@example.com")

	rec := s.do(http.MethodPost, "/api/v1/dev/demo-data", token, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}
