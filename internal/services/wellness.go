package services

import "pesaguru/internal/models"

// criticalGoalTypes are the goal types every financially healthy user is
// expected to carry. Having any of them earns points; having none is penalized.
var criticalGoalTypes = []models.GoalType{
	models.GoalTypeEmergencyFund,
	models.GoalTypeDebtRepayment,
	models.GoalTypeRetirement,
}

// WellnessBreakdown itemizes the components of a wellness score.
type WellnessBreakdown struct {
	Base            int     `json:"base"`
	CriticalGoals   int     `json:"critical_goals"`
	Diversity       int     `json:"diversity"`
	OverduePenalty  int     `json:"overdue_penalty"`
	ProgressBonus   int     `json:"progress_bonus"`
	CompletionBonus int     `json:"completion_bonus"`
	AverageProgress float64 `json:"average_progress"`
	Score           int     `json:"score"`
}

// WellnessScore aggregates a user's goal set into a single 0-100 heuristic.
// An empty goal set scores the base 50.
func WellnessScore(goals []models.Goal) WellnessBreakdown {
	breakdown := WellnessBreakdown{Base: 50}
	if len(goals) == 0 {
		breakdown.Score = 50
		return breakdown
	}

	types := make(map[models.GoalType]bool)
	var overdue, completed int
	var progressSum float64
	for _, g := range goals {
		types[g.Type] = true
		progressSum += g.ProgressPercentage
		switch g.Status {
		case models.GoalStatusOverdue:
			overdue++
		case models.GoalStatusCompleted:
			completed++
		}
	}

	// +5 per critical goal type present; -15 when none of them exist.
	criticalPresent := 0
	for _, t := range criticalGoalTypes {
		if types[t] {
			criticalPresent++
		}
	}
	if criticalPresent > 0 {
		breakdown.CriticalGoals = criticalPresent * 5
	} else {
		breakdown.CriticalGoals = -15
	}

	breakdown.Diversity = len(types) * 3
	if breakdown.Diversity > 15 {
		breakdown.Diversity = 15
	}

	breakdown.OverduePenalty = -5 * overdue

	breakdown.AverageProgress = progressSum / float64(len(goals))
	progressBonus := int(breakdown.AverageProgress / 10)
	if progressBonus > 10 {
		progressBonus = 10
	}
	breakdown.ProgressBonus = progressBonus

	breakdown.CompletionBonus = completed * 5
	if breakdown.CompletionBonus > 15 {
		breakdown.CompletionBonus = 15
	}

	score := breakdown.Base + breakdown.CriticalGoals + breakdown.Diversity +
		breakdown.OverduePenalty + breakdown.ProgressBonus + breakdown.CompletionBonus
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	breakdown.Score = score
	return breakdown
}
