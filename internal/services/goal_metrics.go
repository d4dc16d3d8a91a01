package services

import (
	"time"

	"pesaguru/internal/models"
)

// GoalMetrics holds the derived fields of a goal: its progress percentage,
// lifecycle status, and the monthly contribution required to reach the
// target by the deadline.
type GoalMetrics struct {
	ProgressPercentage  float64           `json:"progress_percentage"`
	Status              models.GoalStatus `json:"status"`
	MonthlyContribution float64           `json:"monthly_contribution"`
}

// ComputeGoalMetrics derives progress, status, and required monthly
// contribution from a goal's target, current amount, and deadline. It is a
// pure function of its inputs and is invoked on every goal create, update,
// and contribution.
//
// Status precedence: the progress check runs before the deadline check, so a
// goal fully funded after its deadline reports "completed", not "overdue".
func ComputeGoalMetrics(targetAmount, currentAmount float64, deadline, now time.Time) GoalMetrics {
	var progress float64
	if targetAmount > 0 {
		progress = currentAmount / targetAmount * 100
		if progress > 100 {
			progress = 100
		}
	}

	remaining := targetAmount - currentAmount
	if remaining < 0 {
		remaining = 0
	}

	var contribution float64
	deadlinePassed := !deadline.After(now)
	if deadlinePassed {
		contribution = remaining
	} else {
		months := wholeMonthsBetween(now, deadline)
		if months > 0 {
			contribution = remaining / float64(months)
		} else {
			contribution = remaining
		}
	}

	status := models.GoalStatusInProgress
	if progress >= 100 {
		status = models.GoalStatusCompleted
	} else if deadlinePassed {
		status = models.GoalStatusOverdue
	}

	return GoalMetrics{
		ProgressPercentage:  progress,
		Status:              status,
		MonthlyContribution: contribution,
	}
}

// wholeMonthsBetween returns the number of complete calendar months between
// from and to, truncated (a partial trailing month does not count).
// Returns 0 when to is not after from.
func wholeMonthsBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
