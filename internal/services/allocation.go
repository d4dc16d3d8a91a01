package services

import "fmt"

// CategorySplit pairs a spending category with its share of total income.
type CategorySplit struct {
	Category string
	Percent  float64
}

// defaultCategorySplits is the recommended allocation applied when a budget
// is created without explicit category amounts. The percentages are carried
// over verbatim from the PesaGuru product tables and sum to 116, not 100;
// budgets do not enforce closure, so the over-allocation stands until the
// product team revisits the table.
var defaultCategorySplits = []CategorySplit{
	{Category: "housing", Percent: 30},
	{Category: "food", Percent: 25},
	{Category: "transport", Percent: 15},
	{Category: "education", Percent: 10},
	{Category: "healthcare", Percent: 5},
	{Category: "entertainment", Percent: 5},
	{Category: "savings", Percent: 10},
	{Category: "debt", Percent: 0},
	{Category: "personal", Percent: 5},
	{Category: "shopping", Percent: 5},
	{Category: "mpesa", Percent: 1},
	{Category: "others", Percent: 4},
}

// DefaultCategorySplits returns a copy of the recommended split table.
func DefaultCategorySplits() []CategorySplit {
	out := make([]CategorySplit, len(defaultCategorySplits))
	copy(out, defaultCategorySplits)
	return out
}

// AllocateBudget converts total income into per-category amounts. An explicit
// category→amount map is used verbatim; otherwise the recommended percentage
// table is applied to the income figure.
func AllocateBudget(totalIncome float64, explicit map[string]float64) []CategoryAllocation {
	if len(explicit) > 0 {
		out := make([]CategoryAllocation, 0, len(explicit))
		for category, amount := range explicit {
			out = append(out, CategoryAllocation{Category: category, Allocated: amount})
		}
		return out
	}

	out := make([]CategoryAllocation, 0, len(defaultCategorySplits))
	for _, split := range defaultCategorySplits {
		out = append(out, CategoryAllocation{
			Category:  split.Category,
			Allocated: totalIncome * split.Percent / 100,
		})
	}
	return out
}

// Expense alert tiers, from spent-vs-allocated ratio.
const (
	AlertLevelInfo    = "info"
	AlertLevelWarning = "warning"
	AlertLevelDanger  = "danger"
)

// ExpenseAlert is raised when spending crosses a threshold of its
// category's allocation.
type ExpenseAlert struct {
	Level      string  `json:"level"`
	Category   string  `json:"category"`
	Spent      float64 `json:"spent"`
	Allocated  float64 `json:"allocated"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

// evaluateExpenseAlert returns the tiered alert for a category's spend level,
// or nil when spending is below every threshold. Thresholds: 100% of the
// allocation is danger, 90% warning, 75% info.
func evaluateExpenseAlert(category string, spent, allocated float64) *ExpenseAlert {
	if allocated <= 0 {
		return nil
	}

	percentage := spent / allocated * 100
	alert := &ExpenseAlert{
		Category:   category,
		Spent:      spent,
		Allocated:  allocated,
		Percentage: percentage,
	}

	switch {
	case percentage >= 100:
		alert.Level = AlertLevelDanger
		alert.Message = formatOverageMessage(category, spent-allocated)
	case percentage >= 90:
		alert.Level = AlertLevelWarning
		alert.Message = "You have used over 90% of your " + category + " budget."
	case percentage >= 75:
		alert.Level = AlertLevelInfo
		alert.Message = "You have used over 75% of your " + category + " budget."
	default:
		return nil
	}
	return alert
}

func formatOverageMessage(category string, overage float64) string {
	return fmt.Sprintf("You have exceeded your %s budget by %.2f.", category, overage)
}
