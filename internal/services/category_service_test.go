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
	"github.com/stretchr/testify/suite"
)

type CategoryServiceSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	categoryRepo *repository_mocks.MockCategoryRepositoryInterface
	auditLogger  *service_mocks.MockAuditLoggerInterface
	metrics      *service_mocks.MockMetricsRecorderInterface
	service      CategoryServiceInterface
	userID       uuid.UUID
	categoryID   uuid.UUID
}

func (s *CategoryServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.auditLogger = service_mocks.NewMockAuditLoggerInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.service = NewCategoryService(s.categoryRepo, s.auditLogger, s.metrics, slog.Default())
	s.userID = uuid.New()
	s.categoryID = uuid.New()
}

func (s *CategoryServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceSuite))
}

func (s *CategoryServiceSuite) expectLedgerChange(action string) {
	s.auditLogger.EXPECT().LogResourceChange(gomock.Any(), s.userID, action, models.AuditResourceCategory, s.categoryID)
	s.metrics.EXPECT().IncrementCounter(MetricLedgerChange, map[string]string{"resource": models.AuditResourceCategory, "action": action})
}

func (s *CategoryServiceSuite) TestListCategories_ByType() {
	expected := []models.Category{{ID: s.categoryID, UserID: s.userID, Name: "Salary", Type: models.TransactionTypeIncome}}
	s.categoryRepo.EXPECT().GetByUserID(s.userID, models.TransactionTypeIncome).Return(expected, nil)

	categories, err := s.service.ListCategories(s.userID, models.TransactionTypeIncome)
	s.NoError(err)
	s.Equal(expected, categories)
}

func (s *CategoryServiceSuite) TestListCategories_AllTypes() {
	s.categoryRepo.EXPECT().GetByUserID(s.userID, "").Return([]models.Category{}, nil)

	categories, err := s.service.ListCategories(s.userID, "")
	s.NoError(err)
	s.Empty(categories)
}

func (s *CategoryServiceSuite) TestListCategories_InvalidType() {
	_, err := s.service.ListCategories(s.userID, "transfer")
	s.ErrorIs(err, models.ErrInvalidCategoryType)
}

func (s *CategoryServiceSuite) TestCreateCategory_DefaultsColor() {
	s.categoryRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(c *models.Category) error {
		s.Equal(s.userID, c.UserID)
		s.Equal("Pets", c.Name)
		s.Equal(models.DefaultCategoryColor, c.Color)
		c.ID = s.categoryID
		return nil
	})
	s.expectLedgerChange(models.AuditActionCreate)

	category, err := s.service.CreateCategory(s.userID, &dto.CategoryRequest{Name: " Pets ", Type: models.TransactionTypeExpense})
	s.Require().NoError(err)
	s.Equal(s.categoryID, category.ID)
}

func (s *CategoryServiceSuite) TestUpdateCategory() {
	existing := &models.Category{ID: s.categoryID, UserID: s.userID, Name: "Old", Type: models.TransactionTypeExpense, Color: "#000000"}
	s.categoryRepo.EXPECT().GetByIDForUser(s.categoryID, s.userID).Return(existing, nil)
	s.categoryRepo.EXPECT().Update(existing).Return(nil)
	s.expectLedgerChange(models.AuditActionUpdate)

	category, err := s.service.UpdateCategory(s.userID, s.categoryID, &dto.CategoryRequest{
		Name:  "New",
		Type:  models.TransactionTypeExpense,
		Color: "#FF0000",
		Icon:  "tag",
	})
	s.Require().NoError(err)
	s.Equal("New", category.Name)
	s.Equal("#FF0000", category.Color)
	s.Equal("tag", category.Icon)
}

func (s *CategoryServiceSuite) TestUpdateCategory_NotFound() {
	s.categoryRepo.EXPECT().GetByIDForUser(s.categoryID, s.userID).Return(nil, repositories.ErrCategoryNotFound)

	_, err := s.service.UpdateCategory(s.userID, s.categoryID, &dto.CategoryRequest{Name: "x", Type: models.TransactionTypeExpense})
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryServiceSuite) TestDeleteCategory() {
	s.categoryRepo.EXPECT().GetByIDForUser(s.categoryID, s.userID).Return(&models.Category{ID: s.categoryID, UserID: s.userID}, nil)
	s.categoryRepo.EXPECT().CountUsage(s.categoryID).Return(int64(0), nil)
	s.categoryRepo.EXPECT().Delete(s.categoryID).Return(nil)
	s.expectLedgerChange(models.AuditActionDelete)

	s.NoError(s.service.DeleteCategory(s.userID, s.categoryID))
}

func (s *CategoryServiceSuite) TestDeleteCategory_InUse() {
	s.categoryRepo.EXPECT().GetByIDForUser(s.categoryID, s.userID).Return(&models.Category{ID: s.categoryID, UserID: s.userID}, nil)
	s.categoryRepo.EXPECT().CountUsage(s.categoryID).Return(int64(4), nil)

	s.ErrorIs(s.service.DeleteCategory(s.userID, s.categoryID), ErrCategoryInUse)
}
