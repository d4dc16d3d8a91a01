package models

// User represents the user model in the database.
// Credential management lives in a separate identity service; this row
// exists only to own goals, budgets, and expenses.
type User struct {
	Base
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Goals     []Goal    `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	Budgets   []Budget  `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Expenses  []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
