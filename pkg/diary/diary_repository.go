package diary

import (
	"context"
	"time"

	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type (
	FoodEntryRepository interface {
		CreateFoodEntry(ctx context.Context, entry *entities.FoodEntry) error
		EntryExists(ctx context.Context, userID string, foodID string, mealType string, date time.Time, variantID *string) (bool, error)
		GetFoodEntriesByDate(ctx context.Context, userID string, date time.Time) ([]*entities.FoodEntry, error)
		DeleteFoodEntry(ctx context.Context, id string, userID string) error
		DeleteEntriesByTemplateFrom(ctx context.Context, templateID string, userID string, from time.Time) (int64, error)

		// Transaction runs fn against a repository bound to one
		// database transaction; fn returning an error rolls back.
		Transaction(ctx context.Context, fn func(repo FoodEntryRepository) error) error
	}

	foodEntryRepository struct {
		db *gorm.DB
	}
)

func NewFoodEntryRepository(db *gorm.DB) FoodEntryRepository {
	return &foodEntryRepository{db: db}
}

func (r *foodEntryRepository) CreateFoodEntry(ctx context.Context, entry *entities.FoodEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// EntryExists checks the dedupe key used by plan materialization: one
// generated row per (user, food, meal type, date, variant).
func (r *foodEntryRepository) EntryExists(ctx context.Context, userID string, foodID string, mealType string, date time.Time, variantID *string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.FoodEntry{}).
		Where("user_id = ? AND food_id = ? AND meal_type = ? AND entry_date = ?",
			userID, foodID, mealType, date)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *foodEntryRepository) GetFoodEntriesByDate(ctx context.Context, userID string, date time.Time) ([]*entities.FoodEntry, error) {
	var entries []*entities.FoodEntry
	if err := r.db.WithContext(ctx).
		Preload("Food").
		Where("user_id = ? AND entry_date = ?", userID, date).
		Order("meal_type asc, created_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *foodEntryRepository) DeleteFoodEntry(ctx context.Context, id string, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.FoodEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteEntriesByTemplateFrom removes plan-generated rows for one
// template from a date onward. Manual rows have a null template id and
// never match.
func (r *foodEntryRepository) DeleteEntriesByTemplateFrom(ctx context.Context, templateID string, userID string, from time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("meal_plan_template_id = ? AND user_id = ? AND entry_date >= ?",
			templateID, userID, from).
		Delete(&entities.FoodEntry{})
	return result.RowsAffected, result.Error
}

func (r *foodEntryRepository) Transaction(ctx context.Context, fn func(repo FoodEntryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&foodEntryRepository{db: tx})
	})
}
