package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"pesaguru/internal/clock"
	apperrors "pesaguru/internal/errors"
	"pesaguru/internal/models"
)

// topCategoryLimit bounds the ranked category list in trend results.
const topCategoryLimit = 5

// monthKeyFormat renders a month bucket as "YYYY-MM".
const monthKeyFormat = "2006-01"

// analyticsService handles read-only spending analysis.
type analyticsService struct {
	db  *gorm.DB
	clk clock.Clock
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, clk clock.Clock) AnalyticsServicer {
	return &analyticsService{db: db, clk: clk}
}

// AnalyzeSpendingTrends aggregates the user's expenses over a trailing window
// of whole calendar months ending with the current month. Aggregation runs in
// memory so the result is identical across SQL dialects.
func (s *analyticsService) AnalyzeSpendingTrends(userID uint, monthsBack int) (*SpendingTrends, error) {
	if monthsBack < 1 {
		monthsBack = 1
	}
	if monthsBack > maxProjectionMonths {
		monthsBack = maxProjectionMonths
	}

	now := s.clk.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	windowStart := currentMonth.AddDate(0, -(monthsBack - 1), 0)
	windowEnd := currentMonth.AddDate(0, 1, 0)

	var expenses []models.Expense
	if err := s.db.
		Where("user_id = ? AND expense_date >= ? AND expense_date < ?", userID, windowStart, windowEnd).
		Order("expense_date ASC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	trends := &SpendingTrends{
		MonthlyTrends:  make(map[string]map[string]float64, monthsBack),
		CategoryTotals: make(map[string]float64),
		MonthlyChanges: make(map[string]map[string]float64),
		MonthlyTotals:  make(map[string]float64, monthsBack),
	}

	// Every month in the window gets a bucket, spent or not.
	months := make([]string, 0, monthsBack)
	for m := 0; m < monthsBack; m++ {
		key := windowStart.AddDate(0, m, 0).Format(monthKeyFormat)
		months = append(months, key)
		trends.MonthlyTrends[key] = make(map[string]float64)
		trends.MonthlyTotals[key] = 0
	}

	var totalSpend float64
	for _, e := range expenses {
		key := e.ExpenseDate.Format(monthKeyFormat)
		bucket, ok := trends.MonthlyTrends[key]
		if !ok {
			continue
		}
		bucket[e.Category] += e.Amount
		trends.MonthlyTotals[key] += e.Amount
		trends.CategoryTotals[e.Category] += e.Amount
		totalSpend += e.Amount
	}

	trends.AverageSpending = totalSpend / float64(monthsBack)
	trends.TopCategories = rankTopCategories(trends.CategoryTotals)

	// Month-over-month percent change per top category, skipping the first
	// month in the window. A zero previous month maps to 100 when the current
	// month has spend and 0 when it does not.
	for i := 1; i < len(months); i++ {
		changes := make(map[string]float64, len(trends.TopCategories))
		for _, top := range trends.TopCategories {
			previous := trends.MonthlyTrends[months[i-1]][top.Category]
			current := trends.MonthlyTrends[months[i]][top.Category]
			changes[top.Category] = percentChange(previous, current)
		}
		trends.MonthlyChanges[months[i]] = changes
	}

	return trends, nil
}

// rankTopCategories orders categories by total descending, ties broken by
// name for stable output, keeping at most topCategoryLimit entries.
func rankTopCategories(totals map[string]float64) []CategoryTotal {
	ranked := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		ranked = append(ranked, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > topCategoryLimit {
		ranked = ranked[:topCategoryLimit]
	}
	return ranked
}

// percentChange computes month-over-month change with the legacy
// divide-by-zero convention.
func percentChange(previous, current float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
