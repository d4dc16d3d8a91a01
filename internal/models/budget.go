package models

import "time"

// Budget represents a per-period income allocation split across categories
type Budget struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	TotalIncome float64   `gorm:"not null" json:"total_income"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	Currency    string    `gorm:"size:3;not null;default:'KES'" json:"currency"`

	// Relationships
	Categories []BudgetCategory `gorm:"foreignKey:BudgetID" json:"categories,omitempty"`
}

// BudgetCategory is one allocation line within a budget. The sum of a
// budget's allocations is not required to equal its total income.
type BudgetCategory struct {
	Base
	BudgetID  uint    `gorm:"not null;index" json:"budget_id"`
	Category  string  `gorm:"not null" json:"category"`
	Allocated float64 `gorm:"not null" json:"allocated"`
}
