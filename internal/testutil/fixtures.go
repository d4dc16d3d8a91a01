package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pesaguru/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:     fmt.Sprintf("user%d@test.com", nextID()),
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGoal creates an in-progress savings goal one year out with
// derived fields already consistent.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint) *models.Goal {
	t.Helper()
	deadline := time.Now().AddDate(1, 0, 0)
	return CreateTestGoalWith(t, db, userID, models.GoalTypeEmergencyFund, 100000, 25000, deadline)
}

// CreateTestGoalWith creates a goal with the given type and amounts.
// Derived fields are stored naively (progress from the ratio, status
// in_progress); services recompute them on every mutation.
func CreateTestGoalWith(t *testing.T, db *gorm.DB, userID uint, goalType models.GoalType, target, current float64, deadline time.Time) *models.Goal {
	t.Helper()

	var progress float64
	if target > 0 {
		progress = current / target * 100
		if progress > 100 {
			progress = 100
		}
	}
	status := models.GoalStatusInProgress
	if progress >= 100 {
		status = models.GoalStatusCompleted
	}

	goal := &models.Goal{
		UserID:             userID,
		Name:               fmt.Sprintf("Test Goal %d", nextID()),
		Type:               goalType,
		TargetAmount:       target,
		CurrentAmount:      current,
		Deadline:           deadline,
		Priority:           models.GoalPriorityMedium,
		Status:             status,
		ProgressPercentage: progress,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestBudget creates a budget with a single explicit allocation.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint) *models.Budget {
	t.Helper()
	return CreateTestBudgetWith(t, db, userID, 100000, map[string]float64{"food": 25000})
}

// CreateTestBudgetWith creates a budget covering the current month with the
// given income and explicit allocations.
func CreateTestBudgetWith(t *testing.T, db *gorm.DB, userID uint, totalIncome float64, allocations map[string]float64) *models.Budget {
	t.Helper()

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	budget := &models.Budget{
		UserID:      userID,
		Name:        fmt.Sprintf("Test Budget %d", nextID()),
		TotalIncome: totalIncome,
		StartDate:   start,
		EndDate:     start.AddDate(0, 1, 0),
		Currency:    "KES",
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}

	for category, allocated := range allocations {
		bc := &models.BudgetCategory{BudgetID: budget.ID, Category: category, Allocated: allocated}
		if err := db.Create(bc).Error; err != nil {
			t.Fatalf("failed to create test budget category: %v", err)
		}
		budget.Categories = append(budget.Categories, *bc)
	}
	return budget
}

// CreateTestExpense creates an expense against a budget category.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, budgetID uint, category string, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		BudgetID:      budgetID,
		Category:      category,
		Amount:        amount,
		ExpenseDate:   date,
		PaymentMethod: models.PaymentMethodMpesa,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
