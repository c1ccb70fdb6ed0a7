package preset

import (
	"context"
	"errors"

	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type (
	GoalPresetRepository interface {
		CreateGoalPreset(ctx context.Context, preset *entities.GoalPreset) error
		GetGoalPresetByID(ctx context.Context, id string, userID string) (*entities.GoalPreset, error)
		GetGoalPresetsByUser(ctx context.Context, userID string) ([]*entities.GoalPreset, error)
		UpdateGoalPreset(ctx context.Context, preset *entities.GoalPreset) error
		DeleteGoalPreset(ctx context.Context, id string, userID string) error
	}

	goalPresetRepository struct {
		db *gorm.DB
	}
)

func NewGoalPresetRepository(db *gorm.DB) GoalPresetRepository {
	return &goalPresetRepository{db: db}
}

func (r *goalPresetRepository) CreateGoalPreset(ctx context.Context, preset *entities.GoalPreset) error {
	return r.db.WithContext(ctx).Create(preset).Error
}

func (r *goalPresetRepository) GetGoalPresetByID(ctx context.Context, id string, userID string) (*entities.GoalPreset, error) {
	var preset entities.GoalPreset
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&preset).Error; err != nil {
		return nil, err
	}
	return &preset, nil
}

func (r *goalPresetRepository) GetGoalPresetsByUser(ctx context.Context, userID string) ([]*entities.GoalPreset, error) {
	var presets []*entities.GoalPreset
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("preset_name asc").
		Find(&presets).Error; err != nil {
		return nil, err
	}
	return presets, nil
}

func (r *goalPresetRepository) UpdateGoalPreset(ctx context.Context, preset *entities.GoalPreset) error {
	return r.db.WithContext(ctx).Save(preset).Error
}

func (r *goalPresetRepository) DeleteGoalPreset(ctx context.Context, id string, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.GoalPreset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is the store's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
