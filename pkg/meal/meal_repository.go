package meal

import (
	"context"

	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type (
	MealRepository interface {
		CreateMeal(ctx context.Context, meal *entities.Meal) error
		GetMealByID(ctx context.Context, id string) (*entities.Meal, error)
		GetMealsByUser(ctx context.Context, userID string) ([]*entities.Meal, error)
		UpdateMeal(ctx context.Context, meal *entities.Meal) error
		ReplaceMealFoods(ctx context.Context, mealID string, foods []*entities.MealFood) error
		DeleteMeal(ctx context.Context, id string, userID string) error
		GetFoodByID(ctx context.Context, id string) (*entities.Food, error)
	}

	mealRepository struct {
		db *gorm.DB
	}
)

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) CreateMeal(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealRepository) GetMealByID(ctx context.Context, id string) (*entities.Meal, error) {
	var meal entities.Meal
	if err := r.db.WithContext(ctx).
		Preload("Foods", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("id = ?", id).
		First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) GetMealsByUser(ctx context.Context, userID string) ([]*entities.Meal, error) {
	var meals []*entities.Meal
	if err := r.db.WithContext(ctx).
		Preload("Foods", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("user_id = ? OR is_public = ?", userID, true).
		Order("name asc").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) UpdateMeal(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).
		Omit("Foods").
		Save(meal).Error
}

// ReplaceMealFoods swaps the meal's food list wholesale, in one
// transaction so a failed insert never leaves the meal half empty.
func (r *mealRepository) ReplaceMealFoods(ctx context.Context, mealID string, foods []*entities.MealFood) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", mealID).
			Delete(&entities.MealFood{}).Error; err != nil {
			return err
		}
		if len(foods) == 0 {
			return nil
		}
		return tx.Create(foods).Error
	})
}

func (r *mealRepository) DeleteMeal(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&entities.Meal{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("meal_id = ?", id).
			Delete(&entities.MealFood{}).Error
	})
}

func (r *mealRepository) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}
