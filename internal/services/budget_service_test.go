package services

import (
	"log/slog"
	"testing"

	"cashflow-tracker/internal/dto"
	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/repositories"
	"cashflow-tracker/internal/repositories/repository_mocks"
	"cashflow-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	budgetRepo   *repository_mocks.MockBudgetRepositoryInterface
	categoryRepo *repository_mocks.MockCategoryRepositoryInterface
	auditLogger  *service_mocks.MockAuditLoggerInterface
	metrics      *service_mocks.MockMetricsRecorderInterface
	service      BudgetServiceInterface
	userID       uuid.UUID
	budgetID     uuid.UUID
	categoryID   uuid.UUID
}

func (s *BudgetServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.budgetRepo = repository_mocks.NewMockBudgetRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.auditLogger = service_mocks.NewMockAuditLoggerInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewBudgetService(s.budgetRepo, s.categoryRepo, s.auditLogger, s.metrics, slog.Default())
	s.userID = uuid.New()
	s.budgetID = uuid.New()
	s.categoryID = uuid.New()
}

func (s *BudgetServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBudgetServiceSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceSuite))
}

func (s *BudgetServiceSuite) expectLedgerChange(action string) {
	s.auditLogger.EXPECT().LogResourceChange(gomock.Any(), s.userID, action, models.AuditResourceBudget, s.budgetID)
	s.metrics.EXPECT().IncrementCounter(MetricLedgerChange, map[string]string{"resource": models.AuditResourceBudget, "action": action})
}

func (s *BudgetServiceSuite) request() *dto.BudgetRequest {
	return &dto.BudgetRequest{CategoryID: s.categoryID, Amount: decimal.NewFromInt(400), Period: models.BudgetPeriodMonthly}
}

func (s *BudgetServiceSuite) TestCreateBudget() {
	s.categoryRepo.EXPECT().GetByIDForUser(s.categoryID, s.userID).Return(&models.Category{ID: s.categoryID}, nil)
	s.budgetRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(b *models.Budget) error {
		s.Equal(s.userID, b.UserID)
		s.Equal(s.categoryID, b.CategoryID)
		s.True(b.Amount.Equal(decimal.NewFromInt(400)))
		b.ID = s.budgetID
		return nil
	})
	s.expectLedgerChange(models.AuditActionCreate)

	budget, err := s.service.CreateBudget(s.userID, s.request())
	s.Require().NoError(err)
	s.Equal(s.budgetID, budget.ID)
}

func (s *BudgetServiceSuite) TestCreateBudget_ForeignCategory() {
	s.categoryRepo.EXPECT().GetByIDForUser(s.categoryID, s.userID).Return(nil, repositories.ErrCategoryNotFound)

	_, err := s.service.CreateBudget(s.userID, s.request())
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *BudgetServiceSuite) TestCreateBudget_InvalidPeriod() {
	s.categoryRepo.EXPECT().GetByIDForUser(s.categoryID, s.userID).Return(&models.Category{ID: s.categoryID}, nil)
	s.budgetRepo.EXPECT().Create(gomock.Any()).Return(models.ErrInvalidBudgetPeriod)

	_, err := s.service.CreateBudget(s.userID, s.request())
	s.ErrorIs(err, models.ErrInvalidBudgetPeriod)
}

func (s *BudgetServiceSuite) TestUpdateBudget() {
	existing := &models.Budget{ID: s.budgetID, UserID: s.userID, CategoryID: uuid.New(), Amount: decimal.NewFromInt(50), Period: models.BudgetPeriodMonthly}
	s.budgetRepo.EXPECT().GetByIDForUser(s.budgetID, s.userID).Return(existing, nil)
	s.categoryRepo.EXPECT().GetByIDForUser(s.categoryID, s.userID).Return(&models.Category{ID: s.categoryID}, nil)
	s.budgetRepo.EXPECT().Update(existing).Return(nil)
	s.expectLedgerChange(models.AuditActionUpdate)

	req := s.request()
	req.Period = models.BudgetPeriodYearly
	budget, err := s.service.UpdateBudget(s.userID, s.budgetID, req)
	s.Require().NoError(err)
	s.Equal(s.categoryID, budget.CategoryID)
	s.Equal(models.BudgetPeriodYearly, budget.Period)
}

func (s *BudgetServiceSuite) TestDeleteBudget_NotFound() {
	s.budgetRepo.EXPECT().GetByIDForUser(s.budgetID, s.userID).Return(nil, repositories.ErrBudgetNotFound)

	s.ErrorIs(s.service.DeleteBudget(s.userID, s.budgetID), ErrBudgetNotFound)
}

func (s *BudgetServiceSuite) TestDeleteBudget() {
	s.budgetRepo.EXPECT().GetByIDForUser(s.budgetID, s.userID).Return(&models.Budget{ID: s.budgetID, UserID: s.userID}, nil)
	s.budgetRepo.EXPECT().Delete(s.budgetID).Return(nil)
	s.expectLedgerChange(models.AuditActionDelete)

	s.NoError(s.service.DeleteBudget(s.userID, s.budgetID))
}
