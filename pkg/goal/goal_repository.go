package goal

import (
	"context"
	"errors"
	"time"

	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type (
	// GoalRepository covers the two goal timeline tables: per-date goal
	// rows and weekly goal plans. Lookup methods used by resolution
	// return (nil, nil) when no row matches, because a missing row is
	// an ordinary tier miss, not an error.
	GoalRepository interface {
		GetPinnedGoalByDate(ctx context.Context, userID string, date time.Time) (*entities.UserGoal, error)
		GetLatestCascadingGoal(ctx context.Context, userID string, date time.Time, notBefore time.Time) (*entities.UserGoal, error)
		UpsertGoal(ctx context.Context, goal *entities.UserGoal) error
		DeleteGoalsInRange(ctx context.Context, userID string, from time.Time, to time.Time) error

		GetActiveWeeklyGoalPlan(ctx context.Context, userID string, date time.Time) (*entities.WeeklyGoalPlan, error)
		CreateWeeklyGoalPlan(ctx context.Context, plan *entities.WeeklyGoalPlan) error
		GetWeeklyGoalPlansByUser(ctx context.Context, userID string) ([]*entities.WeeklyGoalPlan, error)
		GetWeeklyGoalPlanByID(ctx context.Context, id string, userID string) (*entities.WeeklyGoalPlan, error)
		UpdateWeeklyGoalPlan(ctx context.Context, plan *entities.WeeklyGoalPlan) error
		DeleteWeeklyGoalPlan(ctx context.Context, id string, userID string) error
	}

	goalRepository struct {
		db *gorm.DB
	}
)

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) GetPinnedGoalByDate(ctx context.Context, userID string, date time.Time) (*entities.UserGoal, error) {
	var goal entities.UserGoal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND goal_date = ? AND cascading = ?", userID, date, false).
		Order("updated_at DESC").
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) GetLatestCascadingGoal(ctx context.Context, userID string, date time.Time, notBefore time.Time) (*entities.UserGoal, error) {
	var goal entities.UserGoal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND cascading = ? AND goal_date <= ? AND goal_date > ?",
			userID, true, date, notBefore).
		Order("goal_date DESC").
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) UpsertGoal(ctx context.Context, goal *entities.UserGoal) error {
	var existing entities.UserGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND goal_date = ?", goal.UserID, goal.GoalDate).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(goal).Error
		}
		return err
	}

	existing.Cascading = goal.Cascading
	existing.GoalTargets = goal.GoalTargets
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *goalRepository) DeleteGoalsInRange(ctx context.Context, userID string, from time.Time, to time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND goal_date >= ? AND goal_date < ?", userID, from, to).
		Delete(&entities.UserGoal{}).Error
}

func (r *goalRepository) GetActiveWeeklyGoalPlan(ctx context.Context, userID string, date time.Time) (*entities.WeeklyGoalPlan, error) {
	var plan entities.WeeklyGoalPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
			userID, true, date, date).
		Order("start_date DESC").
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// CreateWeeklyGoalPlan inserts the plan; an active plan deactivates
// every other plan of the user in the same transaction.
func (r *goalRepository) CreateWeeklyGoalPlan(ctx context.Context, plan *entities.WeeklyGoalPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if plan.IsActive {
			if err := deactivateOtherWeeklyGoalPlans(tx, plan.UserID.String(), plan.ID.String()); err != nil {
				return err
			}
		}
		return tx.Create(plan).Error
	})
}

func (r *goalRepository) GetWeeklyGoalPlansByUser(ctx context.Context, userID string) ([]*entities.WeeklyGoalPlan, error) {
	var plans []*entities.WeeklyGoalPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *goalRepository) GetWeeklyGoalPlanByID(ctx context.Context, id string, userID string) (*entities.WeeklyGoalPlan, error) {
	var plan entities.WeeklyGoalPlan
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *goalRepository) UpdateWeeklyGoalPlan(ctx context.Context, plan *entities.WeeklyGoalPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if plan.IsActive {
			if err := deactivateOtherWeeklyGoalPlans(tx, plan.UserID.String(), plan.ID.String()); err != nil {
				return err
			}
		}
		return tx.Save(plan).Error
	})
}

func (r *goalRepository) DeleteWeeklyGoalPlan(ctx context.Context, id string, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.WeeklyGoalPlan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deactivateOtherWeeklyGoalPlans(tx *gorm.DB, userID string, exceptID string) error {
	return tx.Model(&entities.WeeklyGoalPlan{}).
		Where("user_id = ? AND id <> ? AND is_active = ?", userID, exceptID, true).
		Update("is_active", false).Error
}
