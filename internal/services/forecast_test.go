package services

import (
	"strings"
	"testing"
	"time"

	"pesaguru/internal/models"
	"pesaguru/internal/testutil"
)

var forecastNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func forecastGoalFixture(target, current float64, deadline time.Time) *models.Goal {
	return &models.Goal{
		Name:          "Land purchase",
		Type:          models.GoalTypeRealEstate,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
	}
}

func TestForecastGoal(t *testing.T) {
	t.Run("twelve_month_projection", func(t *testing.T) {
		goal := forecastGoalFixture(120000, 0, forecastNow.AddDate(2, 0, 0))
		f := ForecastGoal(goal, 10000, forecastNow)

		if f.Status != ForecastStatusProjected {
			t.Fatalf("expected projected, got %s", f.Status)
		}
		if f.MonthsToCompletion != 12 {
			t.Errorf("expected 12 months to completion, got %d", f.MonthsToCompletion)
		}
		if len(f.MonthlyProjection) != 12 {
			t.Fatalf("expected 12 projection entries, got %d", len(f.MonthlyProjection))
		}
		last := f.MonthlyProjection[len(f.MonthlyProjection)-1]
		testutil.AssertFloat(t, "final amount", last.Amount, 120000)
		testutil.AssertFloat(t, "final progress", last.ProgressPercentage, 100)
		if !f.WillMeetDeadline {
			t.Error("expected deadline to be met")
		}
	})

	t.Run("already_reached", func(t *testing.T) {
		goal := forecastGoalFixture(50000, 50000, forecastNow.AddDate(0, 6, 0))
		f := ForecastGoal(goal, 1000, forecastNow)

		if f.Status != ForecastStatusCompleted {
			t.Errorf("expected completed, got %s", f.Status)
		}
		if f.MonthsToCompletion != 0 {
			t.Errorf("expected 0 months, got %d", f.MonthsToCompletion)
		}
		if len(f.MonthlyProjection) != 0 {
			t.Errorf("expected empty projection, got %d entries", len(f.MonthlyProjection))
		}
	})

	t.Run("stalled_without_contribution", func(t *testing.T) {
		goal := forecastGoalFixture(50000, 10000, forecastNow.AddDate(0, 6, 0))
		f := ForecastGoal(goal, 0, forecastNow)

		if f.Status != ForecastStatusStalled {
			t.Errorf("expected stalled, got %s", f.Status)
		}
		if f.ExpectedCompletionDate != nil {
			t.Error("expected no completion date for a stalled goal")
		}
	})

	t.Run("projection_capped_at_36_entries", func(t *testing.T) {
		goal := forecastGoalFixture(1000000, 0, forecastNow.AddDate(10, 0, 0))
		f := ForecastGoal(goal, 10000, forecastNow)

		if f.MonthsToCompletion != 100 {
			t.Errorf("expected 100 months to completion, got %d", f.MonthsToCompletion)
		}
		if len(f.MonthlyProjection) != 36 {
			t.Errorf("expected 36 projection entries, got %d", len(f.MonthlyProjection))
		}
	})

	t.Run("partial_final_month_rounds_up", func(t *testing.T) {
		goal := forecastGoalFixture(25000, 0, forecastNow.AddDate(1, 0, 0))
		f := ForecastGoal(goal, 10000, forecastNow)

		if f.MonthsToCompletion != 3 {
			t.Errorf("expected 3 months, got %d", f.MonthsToCompletion)
		}
		last := f.MonthlyProjection[len(f.MonthlyProjection)-1]
		testutil.AssertFloat(t, "final amount", last.Amount, 25000)
	})

	t.Run("missed_deadline_recommends_contribution", func(t *testing.T) {
		// 60000 needed in 6 whole months requires 10000/month; 2000 will not do.
		goal := forecastGoalFixture(60000, 0, forecastNow.AddDate(0, 6, 0))
		f := ForecastGoal(goal, 2000, forecastNow)

		if f.WillMeetDeadline {
			t.Fatal("expected deadline to be missed")
		}
		testutil.AssertFloat(t, "recommended contribution", f.RecommendedContribution, 10000)
		if !strings.Contains(f.Advice, "10000.00") {
			t.Errorf("expected advice to cite the required contribution, got %q", f.Advice)
		}
	})

	t.Run("passed_deadline_advises_new_deadline", func(t *testing.T) {
		goal := forecastGoalFixture(60000, 0, forecastNow.AddDate(0, -1, 0))
		f := ForecastGoal(goal, 2000, forecastNow)

		if f.WillMeetDeadline {
			t.Fatal("expected deadline to be missed")
		}
		if f.RecommendedContribution != 0 {
			t.Errorf("expected no numeric recommendation, got %v", f.RecommendedContribution)
		}
		if !strings.Contains(f.Advice, "deadline") {
			t.Errorf("expected deadline advisory, got %q", f.Advice)
		}
	})

	t.Run("uses_goal_contribution_when_no_override", func(t *testing.T) {
		goal := forecastGoalFixture(30000, 0, forecastNow.AddDate(1, 0, 0))
		goal.MonthlyContribution = 5000
		f := ForecastGoal(goal, 0, forecastNow)

		if f.MonthsToCompletion != 6 {
			t.Errorf("expected 6 months, got %d", f.MonthsToCompletion)
		}
		testutil.AssertFloat(t, "contribution", f.MonthlyContribution, 5000)
	})
}
