package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestGoalFlow_CreateContributeComplete(t *testing.T) {
	app := setupApp(t)
	_, token := app.authedUser(t)

	// Step 1: Create a goal one year out.
	deadline := time.Now().AddDate(1, 0, 0).UTC()
	rec := app.request("POST", "/api/v1/goals",
		fmt.Sprintf(`{"name":"Emergency fund","goal_type":"emergency_fund","target_amount":120000,"current_amount":0,"deadline":%q,"priority":"high"}`,
			deadline.Format(time.RFC3339)), token)
	requireStatus(t, rec, http.StatusCreated)

	result := parseJSON(t, rec)
	goal := result["goal"].(map[string]interface{})
	goalID := goal["id"].(float64)
	if goal["status"].(string) != "in_progress" {
		t.Errorf("expected in_progress, got %s", goal["status"])
	}
	if goal["progress_percentage"].(float64) != 0 {
		t.Errorf("expected 0%% progress, got %.2f", goal["progress_percentage"].(float64))
	}
	if goal["monthly_contribution"].(float64) != 10000 {
		t.Errorf("expected 10000 monthly contribution, got %.2f", goal["monthly_contribution"].(float64))
	}

	// Step 2: Contribute half the target.
	rec = app.request("POST", fmt.Sprintf("/api/v1/goals/%.0f/contributions", goalID),
		`{"amount":60000}`, token)
	requireStatus(t, rec, http.StatusOK)

	result = parseJSON(t, rec)
	goal = result["goal"].(map[string]interface{})
	if goal["progress_percentage"].(float64) != 50 {
		t.Errorf("expected 50%% progress, got %.2f", goal["progress_percentage"].(float64))
	}

	// Step 3: Forecast with an aggressive contribution override.
	rec = app.request("GET", fmt.Sprintf("/api/v1/goals/%.0f/forecast?monthly_contribution=30000", goalID), "", token)
	requireStatus(t, rec, http.StatusOK)

	result = parseJSON(t, rec)
	forecast := result["forecast"].(map[string]interface{})
	if forecast["status"].(string) != "projected" {
		t.Errorf("expected projected forecast, got %s", forecast["status"])
	}
	if forecast["months_to_completion"].(float64) != 2 {
		t.Errorf("expected 2 months to completion, got %.0f", forecast["months_to_completion"].(float64))
	}
	if forecast["will_meet_deadline"].(bool) != true {
		t.Error("expected forecast to meet the deadline")
	}

	// Step 4: Contribute the remainder and verify completion.
	rec = app.request("POST", fmt.Sprintf("/api/v1/goals/%.0f/contributions", goalID),
		`{"amount":60000}`, token)
	requireStatus(t, rec, http.StatusOK)

	result = parseJSON(t, rec)
	goal = result["goal"].(map[string]interface{})
	if goal["status"].(string) != "completed" {
		t.Errorf("expected completed, got %s", goal["status"])
	}
	if goal["progress_percentage"].(float64) != 100 {
		t.Errorf("expected 100%% progress, got %.2f", goal["progress_percentage"].(float64))
	}

	// Step 5: Wellness reflects the completed critical goal.
	rec = app.request("GET", "/api/v1/goals/wellness", "", token)
	requireStatus(t, rec, http.StatusOK)

	result = parseJSON(t, rec)
	wellness := result["wellness"].(map[string]interface{})
	if wellness["score"].(float64) != 73 {
		t.Errorf("expected wellness score 73, got %.0f", wellness["score"].(float64))
	}
}

func TestGoalFlow_ListFiltersAndDelete(t *testing.T) {
	app := setupApp(t)
	_, token := app.authedUser(t)

	deadline := time.Now().AddDate(1, 0, 0).UTC().Format(time.RFC3339)
	payloads := []string{
		fmt.Sprintf(`{"name":"Pension","goal_type":"retirement","target_amount":500000,"deadline":%q}`, deadline),
		fmt.Sprintf(`{"name":"School fees","goal_type":"education","target_amount":80000,"current_amount":80000,"deadline":%q}`, deadline),
	}
	var lastID float64
	for _, body := range payloads {
		rec := app.request("POST", "/api/v1/goals", body, token)
		requireStatus(t, rec, http.StatusCreated)
		goal := parseJSON(t, rec)["goal"].(map[string]interface{})
		lastID = goal["id"].(float64)
	}

	// Filter to completed goals only.
	rec := app.request("GET", "/api/v1/goals?status=completed", "", token)
	requireStatus(t, rec, http.StatusOK)
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 1 {
		t.Errorf("expected 1 completed goal, got %.0f", result["total_items"].(float64))
	}

	// An unknown status is rejected before touching the database.
	rec = app.request("GET", "/api/v1/goals?status=stalled", "", token)
	requireStatus(t, rec, http.StatusBadRequest)

	// Delete one and confirm it is gone.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/goals/%.0f", lastID), "", token)
	requireStatus(t, rec, http.StatusOK)

	rec = app.request("GET", fmt.Sprintf("/api/v1/goals/%.0f", lastID), "", token)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestGoalFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	_, token1 := app.authedUser(t)
	_, token2 := app.authedUser(t)

	deadline := time.Now().AddDate(1, 0, 0).UTC().Format(time.RFC3339)
	rec := app.request("POST", "/api/v1/goals",
		fmt.Sprintf(`{"name":"Private goal","goal_type":"other","target_amount":1000,"deadline":%q}`, deadline), token1)
	requireStatus(t, rec, http.StatusCreated)
	goalID := parseJSON(t, rec)["goal"].(map[string]interface{})["id"].(float64)

	rec = app.request("GET", fmt.Sprintf("/api/v1/goals/%.0f", goalID), "", token2)
	requireStatus(t, rec, http.StatusNotFound)

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/goals/%.0f", goalID), "", token2)
	requireStatus(t, rec, http.StatusNotFound)
}
