package services

import (
	"testing"
	"time"

	"pesaguru/internal/models"
	"pesaguru/internal/pagination"
	"pesaguru/internal/testutil"
)

var serviceNow = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

func TestCreateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		deadline := serviceNow.AddDate(1, 0, 0)
		goal, err := svc.CreateGoal(user.ID, "Emergency fund", models.GoalTypeEmergencyFund, 120000, 30000, deadline, models.GoalPriorityHigh)
		testutil.AssertNoError(t, err)

		if goal.ID == 0 {
			t.Fatal("expected non-zero goal ID")
		}
		if goal.Status != models.GoalStatusInProgress {
			t.Errorf("expected in_progress, got %s", goal.Status)
		}
		testutil.AssertFloat(t, "progress", goal.ProgressPercentage, 25)
		testutil.AssertFloat(t, "contribution", goal.MonthlyContribution, 7500)
	})

	t.Run("defaults_priority_to_medium", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, "Plot deposit", models.GoalTypeRealEstate, 500000, 0, serviceNow.AddDate(2, 0, 0), "")
		testutil.AssertNoError(t, err)
		if goal.Priority != models.GoalPriorityMedium {
			t.Errorf("expected medium priority, got %s", goal.Priority)
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "", models.GoalTypeOther, 1000, 0, serviceNow.AddDate(1, 0, 0), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_goal_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Bad", "yacht", 1000, 0, serviceNow.AddDate(1, 0, 0), "")
		testutil.AssertAppError(t, err, "INVALID_GOAL_TYPE")
	})

	t.Run("non_positive_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Bad", models.GoalTypeOther, 0, 0, serviceNow.AddDate(1, 0, 0), "")
		testutil.AssertAppError(t, err, "INVALID_TARGET_AMOUNT")
	})

	t.Run("past_deadline_creates_overdue_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, "Late", models.GoalTypeOther, 1000, 100, serviceNow.AddDate(0, -1, 0), "")
		testutil.AssertNoError(t, err)
		if goal.Status != models.GoalStatusOverdue {
			t.Errorf("expected overdue, got %s", goal.Status)
		}
	})
}

func TestGetUserGoals(t *testing.T) {
	t.Run("returns_user_goals_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoal(t, db, user1.ID)
		testutil.CreateTestGoal(t, db, user1.ID)
		testutil.CreateTestGoal(t, db, user2.ID)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserGoals(user1.ID, page, nil, nil)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 goals, got %d", result.TotalItems)
		}
	})

	t.Run("filter_by_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoalWith(t, db, user.ID, models.GoalTypeEducation, 1000, 1000, serviceNow.AddDate(1, 0, 0))
		testutil.CreateTestGoalWith(t, db, user.ID, models.GoalTypeEducation, 1000, 100, serviceNow.AddDate(1, 0, 0))

		completed := models.GoalStatusCompleted
		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserGoals(user.ID, page, &completed, nil)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 completed goal, got %d", result.TotalItems)
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoalWith(t, db, user.ID, models.GoalTypeRetirement, 1000, 0, serviceNow.AddDate(1, 0, 0))
		testutil.CreateTestGoalWith(t, db, user.ID, models.GoalTypeEducation, 1000, 0, serviceNow.AddDate(1, 0, 0))

		retirement := models.GoalTypeRetirement
		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserGoals(user.ID, page, nil, &retirement)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 retirement goal, got %d", result.TotalItems)
		}
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("patch_recomputes_derived_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoalWith(t, db, user.ID, models.GoalTypeEducation, 100000, 50000, serviceNow.AddDate(1, 0, 0))

		newTarget := 50000.0
		updated, err := svc.UpdateGoal(user.ID, goal.ID, GoalPatch{TargetAmount: &newTarget})
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, "progress", updated.ProgressPercentage, 100)
		if updated.Status != models.GoalStatusCompleted {
			t.Errorf("expected completed after target reduction, got %s", updated.Status)
		}
	})

	t.Run("not_found_for_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user1.ID)

		name := "Hijacked"
		_, err := svc.UpdateGoal(user2.ID, goal.ID, GoalPatch{Name: &name})
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		empty := ""
		_, err := svc.UpdateGoal(user.ID, goal.ID, GoalPatch{Name: &empty})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAddContribution(t *testing.T) {
	t.Run("adds_and_recomputes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoalWith(t, db, user.ID, models.GoalTypeEmergencyFund, 100000, 25000, serviceNow.AddDate(1, 0, 0))

		updated, err := svc.AddContribution(user.ID, goal.ID, 25000)
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, "current amount", updated.CurrentAmount, 50000)
		testutil.AssertFloat(t, "progress", updated.ProgressPercentage, 50)
	})

	t.Run("contribution_can_complete_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoalWith(t, db, user.ID, models.GoalTypeEmergencyFund, 100000, 90000, serviceNow.AddDate(1, 0, 0))

		updated, err := svc.AddContribution(user.ID, goal.ID, 20000)
		testutil.AssertNoError(t, err)

		if updated.Status != models.GoalStatusCompleted {
			t.Errorf("expected completed, got %s", updated.Status)
		}
		testutil.AssertFloat(t, "progress capped", updated.ProgressPercentage, 100)
		testutil.AssertFloat(t, "contribution floored", updated.MonthlyContribution, 0)
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		_, err := svc.AddContribution(user.ID, goal.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_CONTRIBUTION")
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("soft_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteGoal(user.ID, goal.ID))

		_, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")

		var count int64
		if err := db.Unscoped().Model(&models.Goal{}).Where("id = ?", goal.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count unscoped goals: %v", err)
		}
		if count != 1 {
			t.Errorf("expected soft-deleted row to remain, found %d", count)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteGoal(user.ID, 9999)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestGoalForecastService(t *testing.T) {
	t.Run("forecast_with_override", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoalWith(t, db, user.ID, models.GoalTypeEducation, 120000, 0, serviceNow.AddDate(2, 0, 0))

		forecast, err := svc.Forecast(user.ID, goal.ID, 10000)
		testutil.AssertNoError(t, err)

		if forecast.MonthsToCompletion != 12 {
			t.Errorf("expected 12 months, got %d", forecast.MonthsToCompletion)
		}
	})

	t.Run("forecast_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Forecast(user.ID, 9999, 0)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestWellnessService(t *testing.T) {
	t.Run("scores_only_own_goals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoalWith(t, db, user1.ID, models.GoalTypeEmergencyFund, 1000, 1000, serviceNow.AddDate(1, 0, 0))
		testutil.CreateTestGoalWith(t, db, user2.ID, models.GoalTypeOther, 1000, 0, serviceNow.AddDate(1, 0, 0))

		breakdown, err := svc.Wellness(user1.ID)
		testutil.AssertNoError(t, err)

		if breakdown.Score != 73 {
			t.Errorf("expected 73, got %d", breakdown.Score)
		}
	})

	t.Run("no_goals_scores_base", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db, testutil.ClockAt(serviceNow))
		user := testutil.CreateTestUser(t, db)

		breakdown, err := svc.Wellness(user.ID)
		testutil.AssertNoError(t, err)

		if breakdown.Score != 50 {
			t.Errorf("expected 50, got %d", breakdown.Score)
		}
	})
}
