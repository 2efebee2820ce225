package repositories

import (
	"testing"
	"time"

	"cashflow-tracker/internal/database"
	"cashflow-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CategoryRepositorySuite struct {
	suite.Suite
	db      *database.DB
	repo    CategoryRepositoryInterface
	budgets BudgetRepositoryInterface
	user    *models.User
}

func TestCategoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}

func (s *CategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
	s.budgets = NewBudgetRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "categories@example.com")
}

func (s *CategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *CategoryRepositorySuite) TestCreate_DefaultsColor() {
	category := &models.Category{UserID: s.user.ID, Name: "Gifts", Type: models.TransactionTypeExpense}

	s.Require().NoError(s.repo.Create(category))
	s.Equal(models.DefaultCategoryColor, category.Color)
}

func (s *CategoryRepositorySuite) TestGetByUserID_FiltersByType() {
	for _, c := range models.DefaultCategories(s.user.ID) {
		category := c
		s.Require().NoError(s.repo.Create(&category))
	}

	all, err := s.repo.GetByUserID(s.user.ID, "")
	s.Require().NoError(err)
	s.Len(all, 10)
	s.Equal("Bills & Utilities", all[0].Name)

	income, err := s.repo.GetByUserID(s.user.ID, models.TransactionTypeIncome)
	s.Require().NoError(err)
	s.Len(income, 3)
	for _, c := range income {
		s.Equal(models.TransactionTypeIncome, c.Type)
	}
}

func (s *CategoryRepositorySuite) TestGetByIDForUser() {
	category := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Rent", models.TransactionTypeExpense)

	found, err := s.repo.GetByIDForUser(category.ID, s.user.ID)
	s.Require().NoError(err)
	s.Equal("Rent", found.Name)

	_, err = s.repo.GetByIDForUser(category.ID, uuid.New())
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryRepositorySuite) TestGetByIDs() {
	rent := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Rent", models.TransactionTypeExpense)
	food := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Food", models.TransactionTypeExpense)
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	theirs := database.CreateTestCategory(s.T(), s.db, other.ID, "Rent", models.TransactionTypeExpense)

	found, err := s.repo.GetByIDs(s.user.ID, []uuid.UUID{rent.ID, food.ID, theirs.ID})
	s.Require().NoError(err)
	s.Len(found, 2)

	found, err = s.repo.GetByIDs(s.user.ID, nil)
	s.NoError(err)
	s.Empty(found)
}

func (s *CategoryRepositorySuite) TestUpdate_ValidatesColor() {
	category := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Rent", models.TransactionTypeExpense)

	category.Color = "#EF4444"
	s.NoError(s.repo.Update(category))

	category.Color = "red"
	s.ErrorIs(s.repo.Update(category), models.ErrInvalidCategoryColor)
}

func (s *CategoryRepositorySuite) TestCountUsageAndDelete() {
	rent := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Rent", models.TransactionTypeExpense)
	account := database.CreateTestAccount(s.T(), s.db, s.user.ID, "CAD", decimal.Zero)

	count, err := s.repo.CountUsage(rent.ID)
	s.Require().NoError(err)
	s.Zero(count)

	database.CreateTestTransaction(s.T(), s.db, account, rent, "1500", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "")
	s.Require().NoError(s.budgets.Create(&models.Budget{UserID: s.user.ID, CategoryID: rent.ID, Amount: decimal.NewFromInt(1600)}))

	count, err = s.repo.CountUsage(rent.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	unused := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Unused", models.TransactionTypeExpense)
	s.NoError(s.repo.Delete(unused.ID))
	s.ErrorIs(s.repo.Delete(unused.ID), ErrCategoryNotFound)
}
