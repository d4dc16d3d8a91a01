package models

import "time"

// GoalType represents the kind of savings target a goal tracks
type GoalType string

const (
	GoalTypeEmergencyFund GoalType = "emergency_fund"
	GoalTypeRetirement    GoalType = "retirement"
	GoalTypeEducation     GoalType = "education"
	GoalTypeDebtRepayment GoalType = "debt_repayment"
	GoalTypeInvestment    GoalType = "investment"
	GoalTypeRealEstate    GoalType = "real_estate"
	GoalTypeOther         GoalType = "other"
)

// ValidGoalType reports whether t is one of the supported goal types.
func ValidGoalType(t GoalType) bool {
	switch t {
	case GoalTypeEmergencyFund, GoalTypeRetirement, GoalTypeEducation,
		GoalTypeDebtRepayment, GoalTypeInvestment, GoalTypeRealEstate, GoalTypeOther:
		return true
	}
	return false
}

// GoalPriority represents the user-assigned priority of a goal
type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "high"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityLow    GoalPriority = "low"
)

// GoalStatus is derived from progress and deadline, never set directly.
type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusOverdue    GoalStatus = "overdue"
)

// Goal represents a user-defined savings or investment target.
// Status, MonthlyContribution, and ProgressPercentage are recomputed by the
// service layer on every create, update, and contribution.
type Goal struct {
	Base
	UserID              uint         `gorm:"not null;index" json:"user_id"`
	Name                string       `gorm:"not null" json:"name"`
	Type                GoalType     `gorm:"not null" json:"goal_type"`
	TargetAmount        float64      `gorm:"not null" json:"target_amount"`
	CurrentAmount       float64      `gorm:"not null;default:0" json:"current_amount"`
	Deadline            time.Time    `gorm:"not null" json:"deadline"`
	Priority            GoalPriority `gorm:"default:'medium'" json:"priority"`
	Status              GoalStatus   `gorm:"not null" json:"status"`
	MonthlyContribution float64      `json:"monthly_contribution"`
	ProgressPercentage  float64      `json:"progress_percentage"`
}
