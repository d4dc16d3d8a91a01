package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pesaguru/internal/clock"
	apperrors "pesaguru/internal/errors"
	"pesaguru/internal/models"
	"pesaguru/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db  *gorm.DB
	clk clock.Clock
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, clk clock.Clock) BudgetServicer {
	return &budgetService{db: db, clk: clk}
}

// CreateBudget creates a budget and its category allocations. When the
// caller supplies explicit allocations they are used verbatim; otherwise
// the recommended split table is applied to total income.
func (s *budgetService) CreateBudget(
	userID uint,
	name string,
	totalIncome float64,
	startDate, endDate time.Time,
	currency string,
	allocations map[string]float64,
) (*models.Budget, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Budget name is required")
	}
	if totalIncome <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Total income must be greater than zero")
	}
	if !endDate.After(startDate) {
		return nil, apperrors.ErrInvalidBudgetPeriod
	}
	if currency == "" {
		currency = "KES"
	}

	budget := &models.Budget{
		UserID:      userID,
		Name:        name,
		TotalIncome: totalIncome,
		StartDate:   startDate,
		EndDate:     endDate,
		Currency:    currency,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for _, alloc := range AllocateBudget(totalIncome, allocations) {
			category := models.BudgetCategory{
				BudgetID:  budget.ID,
				Category:  alloc.Category,
				Allocated: alloc.Allocated,
			}
			if err := tx.Create(&category).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			budget.Categories = append(budget.Categories, category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// GetUserBudgets returns a paginated list of budgets for the user.
func (s *budgetService) GetUserBudgets(
	userID uint,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Categories").Order("start_date DESC").
		Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget with its categories if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Categories").
		Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget applies a patch to a budget. With Reallocate set, the default
// split is reapplied to the updated income and existing allocations are
// replaced.
func (s *budgetService) UpdateBudget(userID, budgetID uint, patch BudgetPatch) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Budget name cannot be empty")
		}
		budget.Name = *patch.Name
	}
	if patch.TotalIncome != nil {
		if *patch.TotalIncome <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Total income must be greater than zero")
		}
		budget.TotalIncome = *patch.TotalIncome
	}
	if patch.StartDate != nil {
		budget.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		budget.EndDate = *patch.EndDate
	}
	if !budget.EndDate.After(budget.StartDate) {
		return nil, apperrors.ErrInvalidBudgetPeriod
	}
	if patch.Currency != nil {
		budget.Currency = *patch.Currency
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if patch.Reallocate {
			if err := tx.Where("budget_id = ?", budget.ID).
				Delete(&models.BudgetCategory{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			budget.Categories = budget.Categories[:0]
			for _, alloc := range AllocateBudget(budget.TotalIncome, nil) {
				category := models.BudgetCategory{
					BudgetID:  budget.ID,
					Category:  alloc.Category,
					Allocated: alloc.Allocated,
				}
				if err := tx.Create(&category).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				budget.Categories = append(budget.Categories, category)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// DeleteBudget soft-deletes a budget and its category allocations.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).
			Delete(&models.BudgetCategory{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// RecordExpense appends an expense and evaluates the spend-vs-allocation
// alert for its category. The insert and the spent read-back run in one
// transaction so the alert reflects the just-written total.
func (s *budgetService) RecordExpense(
	userID, budgetID uint,
	category string,
	amount float64,
	date time.Time,
	method models.PaymentMethod,
	description string,
) (*models.Expense, *ExpenseAlert, error) {
	if category == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense category is required")
	}
	if amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense amount must be greater than zero")
	}
	if date.IsZero() {
		date = s.clk.Now()
	}
	if method == "" {
		method = models.PaymentMethodMpesa
	}

	var expense *models.Expense
	var alert *ExpenseAlert
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := tx.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var budgetCategory models.BudgetCategory
		if err := tx.Where("budget_id = ? AND category = ?", budget.ID, category).
			First(&budgetCategory).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		expense = &models.Expense{
			UserID:        userID,
			BudgetID:      budget.ID,
			Category:      category,
			Amount:        amount,
			ExpenseDate:   date,
			PaymentMethod: method,
			Description:   description,
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		spent, err := sumExpensesByCategory(tx, budget.ID, category)
		if err != nil {
			return err
		}
		alert = evaluateExpenseAlert(category, spent, budgetCategory.Allocated)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return expense, alert, nil
}

// GetBudgetExpenses returns a paginated list of a budget's expenses.
func (s *budgetService) GetBudgetExpenses(
	userID, budgetID uint,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.Expense], error) {
	if _, err := s.GetBudgetByID(userID, budgetID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ? AND budget_id = ?", userID, budgetID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("expense_date DESC").Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetSummary calculates spend-vs-allocation per category.
func (s *budgetService) GetBudgetSummary(userID, budgetID uint) (*BudgetSummary, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	summary := &BudgetSummary{
		BudgetID:    budget.ID,
		TotalIncome: budget.TotalIncome,
		Currency:    budget.Currency,
		Categories:  make([]CategorySummary, 0, len(budget.Categories)),
	}

	for _, category := range budget.Categories {
		spent, err := sumExpensesByCategory(s.db, budget.ID, category.Category)
		if err != nil {
			return nil, err
		}

		entry := CategorySummary{
			Category:  category.Category,
			Allocated: category.Allocated,
			Spent:     spent,
			Remaining: category.Allocated - spent,
		}
		if category.Allocated > 0 {
			entry.Percentage = spent / category.Allocated * 100
		}
		if alert := evaluateExpenseAlert(category.Category, spent, category.Allocated); alert != nil {
			entry.AlertLevel = alert.Level
		}

		summary.TotalAllocated += category.Allocated
		summary.TotalSpent += spent
		summary.Categories = append(summary.Categories, entry)
	}

	return summary, nil
}

// sumExpensesByCategory totals a category's expenses within a budget.
func sumExpensesByCategory(tx *gorm.DB, budgetID uint, category string) (float64, error) {
	var spent float64
	err := tx.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("budget_id = ? AND category = ?", budgetID, category).
		Scan(&spent).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spent, nil
}
