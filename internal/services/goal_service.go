package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pesaguru/internal/clock"
	apperrors "pesaguru/internal/errors"
	"pesaguru/internal/models"
	"pesaguru/internal/pagination"
)

// goalService handles goal-related business logic.
type goalService struct {
	db  *gorm.DB
	clk clock.Clock
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, clk clock.Clock) GoalServicer {
	return &goalService{db: db, clk: clk}
}

// CreateGoal creates a goal and computes its derived fields.
func (s *goalService) CreateGoal(
	userID uint,
	name string,
	goalType models.GoalType,
	targetAmount, currentAmount float64,
	deadline time.Time,
	priority models.GoalPriority,
) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal name is required")
	}
	if !models.ValidGoalType(goalType) {
		return nil, apperrors.ErrInvalidGoalType
	}
	if targetAmount <= 0 {
		return nil, apperrors.ErrInvalidTargetAmount
	}
	if currentAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Current amount cannot be negative")
	}
	if deadline.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal deadline is required")
	}
	if priority == "" {
		priority = models.GoalPriorityMedium
	}

	metrics := ComputeGoalMetrics(targetAmount, currentAmount, deadline, s.clk.Now())

	goal := &models.Goal{
		UserID:              userID,
		Name:                name,
		Type:                goalType,
		TargetAmount:        targetAmount,
		CurrentAmount:       currentAmount,
		Deadline:            deadline,
		Priority:            priority,
		Status:              metrics.Status,
		MonthlyContribution: metrics.MonthlyContribution,
		ProgressPercentage:  metrics.ProgressPercentage,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals returns a paginated list of goals for the user with optional filters.
func (s *goalService) GetUserGoals(
	userID uint,
	page pagination.PageRequest,
	status *models.GoalStatus,
	goalType *models.GoalType,
) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}
	if goalType != nil {
		base = base.Where("type = ?", *goalType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Order("deadline ASC").Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies a patch to a goal and recomputes its derived fields.
func (s *goalService) UpdateGoal(userID, goalID uint, patch GoalPatch) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal name cannot be empty")
		}
		goal.Name = *patch.Name
	}
	if patch.Type != nil {
		if !models.ValidGoalType(*patch.Type) {
			return nil, apperrors.ErrInvalidGoalType
		}
		goal.Type = *patch.Type
	}
	if patch.TargetAmount != nil {
		if *patch.TargetAmount <= 0 {
			return nil, apperrors.ErrInvalidTargetAmount
		}
		goal.TargetAmount = *patch.TargetAmount
	}
	if patch.Deadline != nil {
		goal.Deadline = *patch.Deadline
	}
	if patch.Priority != nil {
		goal.Priority = *patch.Priority
	}

	metrics := ComputeGoalMetrics(goal.TargetAmount, goal.CurrentAmount, goal.Deadline, s.clk.Now())
	goal.Status = metrics.Status
	goal.MonthlyContribution = metrics.MonthlyContribution
	goal.ProgressPercentage = metrics.ProgressPercentage

	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// AddContribution adds an amount to the goal's current balance and
// recomputes derived fields in the same transaction.
func (s *goalService) AddContribution(userID, goalID uint, amount float64) (*models.Goal, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidContribution
	}

	var updated *models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		goal.CurrentAmount += amount
		metrics := ComputeGoalMetrics(goal.TargetAmount, goal.CurrentAmount, goal.Deadline, s.clk.Now())
		goal.Status = metrics.Status
		goal.MonthlyContribution = metrics.MonthlyContribution
		goal.ProgressPercentage = metrics.ProgressPercentage

		if err := tx.Save(&goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updated = &goal
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Forecast projects a goal's balance to completion. Pass monthlyContribution
// <= 0 to use the goal's derived contribution.
func (s *goalService) Forecast(userID, goalID uint, monthlyContribution float64) (*GoalForecast, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	forecast := ForecastGoal(goal, monthlyContribution, s.clk.Now())
	return &forecast, nil
}

// Wellness scores the user's whole goal set.
func (s *goalService) Wellness(userID uint) (*WellnessBreakdown, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	breakdown := WellnessScore(goals)
	return &breakdown, nil
}
