package services

import (
	"fmt"
	"math"
	"time"

	"pesaguru/internal/models"
)

// maxProjectionMonths caps the month-by-month projection list.
const maxProjectionMonths = 36

// ForecastStatus classifies a forecast result.
type ForecastStatus string

const (
	ForecastStatusCompleted ForecastStatus = "completed"
	ForecastStatusStalled   ForecastStatus = "stalled"
	ForecastStatusProjected ForecastStatus = "projected"
)

// ProjectionEntry is one month in a goal's projected balance curve.
type ProjectionEntry struct {
	Month              int       `json:"month"`
	Date               time.Time `json:"date"`
	Amount             float64   `json:"amount"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

// GoalForecast projects a goal's balance to completion at a given monthly
// contribution rate.
type GoalForecast struct {
	Status                  ForecastStatus    `json:"status"`
	MonthsToCompletion      int               `json:"months_to_completion"`
	ExpectedCompletionDate  *time.Time        `json:"expected_completion_date,omitempty"`
	WillMeetDeadline        bool              `json:"will_meet_deadline"`
	MonthlyContribution     float64           `json:"monthly_contribution"`
	MonthlyProjection       []ProjectionEntry `json:"monthly_projection"`
	Advice                  string            `json:"advice"`
	RecommendedContribution float64           `json:"recommended_contribution,omitempty"`
}

// ForecastGoal projects month-by-month balances for a goal at the given
// monthly contribution. Pass contribution <= 0 to use the goal's own derived
// monthly contribution. Pure function; no I/O.
func ForecastGoal(goal *models.Goal, contribution float64, now time.Time) GoalForecast {
	if contribution <= 0 {
		contribution = goal.MonthlyContribution
	}

	amountNeeded := goal.TargetAmount - goal.CurrentAmount
	if amountNeeded <= 0 {
		return GoalForecast{
			Status:              ForecastStatusCompleted,
			MonthsToCompletion:  0,
			WillMeetDeadline:    true,
			MonthlyContribution: contribution,
			MonthlyProjection:   []ProjectionEntry{},
			Advice:              "Goal already reached. Consider setting a new target.",
		}
	}

	if contribution <= 0 {
		return GoalForecast{
			Status:              ForecastStatusStalled,
			MonthsToCompletion:  0,
			WillMeetDeadline:    false,
			MonthlyContribution: contribution,
			MonthlyProjection:   []ProjectionEntry{},
			Advice:              "No monthly contribution is set. Start contributing to make progress on this goal.",
		}
	}

	monthsToCompletion := int(math.Ceil(amountNeeded / contribution))
	completionDate := now.AddDate(0, monthsToCompletion, 0)

	projection := make([]ProjectionEntry, 0, monthsToCompletion)
	limit := monthsToCompletion
	if limit > maxProjectionMonths {
		limit = maxProjectionMonths
	}
	for month := 1; month <= limit; month++ {
		amount := goal.CurrentAmount + contribution*float64(month)
		if amount > goal.TargetAmount {
			amount = goal.TargetAmount
		}
		progress := amount / goal.TargetAmount * 100
		projection = append(projection, ProjectionEntry{
			Month:              month,
			Date:               now.AddDate(0, month, 0),
			Amount:             amount,
			ProgressPercentage: progress,
		})
		if amount >= goal.TargetAmount {
			break
		}
	}

	willMeetDeadline := !completionDate.After(goal.Deadline)

	forecast := GoalForecast{
		Status:                 ForecastStatusProjected,
		MonthsToCompletion:     monthsToCompletion,
		ExpectedCompletionDate: &completionDate,
		WillMeetDeadline:       willMeetDeadline,
		MonthlyContribution:    contribution,
		MonthlyProjection:      projection,
	}

	if willMeetDeadline {
		forecast.Advice = fmt.Sprintf(
			"You are on track to reach %s in %d months. Increasing your contribution would get you there sooner.",
			goal.Name, monthsToCompletion)
		return forecast
	}

	monthsToDeadline := wholeMonthsBetween(now, goal.Deadline)
	if monthsToDeadline <= 0 {
		forecast.Advice = "The deadline for this goal has passed. Set a new deadline to get a workable plan."
		return forecast
	}

	required := amountNeeded / float64(monthsToDeadline)
	forecast.RecommendedContribution = required
	forecast.Advice = fmt.Sprintf(
		"At the current rate you will miss the deadline. Contribute %.2f per month to reach %s on time.",
		required, goal.Name)
	return forecast
}
