package models

import "time"

// PaymentMethod represents how an expense was paid
type PaymentMethod string

const (
	PaymentMethodMpesa        PaymentMethod = "mpesa"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Expense represents a spending record against a budget category.
// Expenses are append-only; trend analysis aggregates them by month and category.
type Expense struct {
	Base
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	BudgetID      uint          `gorm:"not null;index" json:"budget_id"`
	Category      string        `gorm:"not null" json:"category"`
	Amount        float64       `gorm:"not null" json:"amount"`
	ExpenseDate   time.Time     `gorm:"not null;index" json:"expense_date"`
	PaymentMethod PaymentMethod `gorm:"default:'mpesa'" json:"payment_method"`
	Description   string        `json:"description"`

	// Relationships
	Budget Budget `gorm:"foreignKey:BudgetID" json:"-"`
}
