package services

import (
	"time"

	"pesaguru/internal/models"
	"pesaguru/internal/pagination"
)

// GoalPatch holds the optional fields of a goal update. Nil fields are left
// unchanged; derived fields are always recomputed after the patch applies.
type GoalPatch struct {
	Name         *string
	Type         *models.GoalType
	TargetAmount *float64
	Deadline     *time.Time
	Priority     *models.GoalPriority
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID uint, name string, goalType models.GoalType, targetAmount, currentAmount float64, deadline time.Time, priority models.GoalPriority) (*models.Goal, error)
	GetUserGoals(userID uint, page pagination.PageRequest, status *models.GoalStatus, goalType *models.GoalType) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID uint) (*models.Goal, error)
	UpdateGoal(userID, goalID uint, patch GoalPatch) (*models.Goal, error)
	AddContribution(userID, goalID uint, amount float64) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
	Forecast(userID, goalID uint, monthlyContribution float64) (*GoalForecast, error)
	Wellness(userID uint) (*WellnessBreakdown, error)
}

// CategoryAllocation pairs a category with its allocated amount.
type CategoryAllocation struct {
	Category  string  `json:"category"`
	Allocated float64 `json:"allocated"`
}

// CategorySummary contains spend-vs-allocation data for one budget category.
// Remaining goes negative once the category is overspent.
type CategorySummary struct {
	Category   string  `json:"category"`
	Allocated  float64 `json:"allocated"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	AlertLevel string  `json:"alert_level,omitempty"`
}

// BudgetSummary contains spend-vs-allocation data across a budget's categories.
type BudgetSummary struct {
	BudgetID       uint              `json:"budget_id"`
	TotalIncome    float64           `json:"total_income"`
	TotalAllocated float64           `json:"total_allocated"`
	TotalSpent     float64           `json:"total_spent"`
	Currency       string            `json:"currency"`
	Categories     []CategorySummary `json:"categories"`
}

// BudgetPatch holds the optional fields of a budget update. When Reallocate
// is set the default split is reapplied to the (possibly updated) income.
type BudgetPatch struct {
	Name        *string
	TotalIncome *float64
	StartDate   *time.Time
	EndDate     *time.Time
	Currency    *string
	Reallocate  bool
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, name string, totalIncome float64, startDate, endDate time.Time, currency string, allocations map[string]float64) (*models.Budget, error)
	GetUserBudgets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, patch BudgetPatch) (*models.Budget, error)
	DeleteBudget(userID, budgetID uint) error
	RecordExpense(userID, budgetID uint, category string, amount float64, date time.Time, method models.PaymentMethod, description string) (*models.Expense, *ExpenseAlert, error)
	GetBudgetExpenses(userID, budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetBudgetSummary(userID, budgetID uint) (*BudgetSummary, error)
}

// CategoryTotal ranks a category by its total spend within the window.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// SpendingTrends aggregates a user's expense history over a trailing window
// of whole months.
type SpendingTrends struct {
	// MonthlyTrends maps "YYYY-MM" to per-category spend for that month.
	MonthlyTrends map[string]map[string]float64 `json:"monthly_trends"`
	// CategoryTotals is total spend per category across the window.
	CategoryTotals map[string]float64 `json:"category_totals"`
	// TopCategories holds at most five categories ranked by total descending.
	TopCategories []CategoryTotal `json:"top_categories"`
	// MonthlyChanges maps each month after the first to the percent change
	// per top category versus the previous month.
	MonthlyChanges map[string]map[string]float64 `json:"monthly_changes"`
	// MonthlyTotals is total spend per month.
	MonthlyTotals map[string]float64 `json:"monthly_totals"`
	// AverageSpending is the mean of the monthly totals over the window.
	AverageSpending float64 `json:"average_spending"`
}

// AnalyticsServicer defines the contract for spending-trend analysis.
type AnalyticsServicer interface {
	AnalyzeSpendingTrends(userID uint, monthsBack int) (*SpendingTrends, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
