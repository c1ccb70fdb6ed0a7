package mealplan

import (
	"context"

	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type (
	MealPlanRepository interface {
		CreateTemplate(ctx context.Context, template *entities.MealPlanTemplate) error
		GetTemplateByID(ctx context.Context, id string, userID string) (*entities.MealPlanTemplate, error)
		GetTemplatesByUser(ctx context.Context, userID string) ([]*entities.MealPlanTemplate, error)
		GetActiveTemplatesByMealID(ctx context.Context, mealID string) ([]*entities.MealPlanTemplate, error)
		UpdateTemplate(ctx context.Context, template *entities.MealPlanTemplate) error
		ActivateTemplate(ctx context.Context, id string, userID string) error
		DeleteTemplate(ctx context.Context, id string, userID string) error
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

// CreateTemplate inserts the template; when it arrives active, every
// other template of the user is deactivated in the same transaction so
// at most one stays active.
func (r *mealPlanRepository) CreateTemplate(ctx context.Context, template *entities.MealPlanTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if template.IsActive {
			if err := deactivateOtherTemplates(tx, template.UserID.String(), template.ID.String()); err != nil {
				return err
			}
		}
		return tx.Create(template).Error
	})
}

func (r *mealPlanRepository) GetTemplateByID(ctx context.Context, id string, userID string) (*entities.MealPlanTemplate, error) {
	var template entities.MealPlanTemplate
	if err := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("id = ? AND user_id = ?", id, userID).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *mealPlanRepository) GetTemplatesByUser(ctx context.Context, userID string) ([]*entities.MealPlanTemplate, error) {
	var templates []*entities.MealPlanTemplate
	if err := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// GetActiveTemplatesByMealID finds active templates, across users, with
// at least one assignment pinned to the meal. Inactive templates are
// left out: their diary rows are never regenerated.
func (r *mealPlanRepository) GetActiveTemplatesByMealID(ctx context.Context, mealID string) ([]*entities.MealPlanTemplate, error) {
	var templates []*entities.MealPlanTemplate
	if err := r.db.WithContext(ctx).
		Preload("Assignments").
		Joins("JOIN meal_plan_template_assignments a ON a.template_id = meal_plan_templates.id").
		Where("a.meal_id = ? AND meal_plan_templates.is_active = ?", mealID, true).
		Distinct("meal_plan_templates.*").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// UpdateTemplate rewrites the template row and replaces its assignment
// list wholesale, in one transaction. An update that leaves the
// template active also deactivates every other template of the user
// inside the same transaction.
func (r *mealPlanRepository) UpdateTemplate(ctx context.Context, template *entities.MealPlanTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if template.IsActive {
			if err := deactivateOtherTemplates(tx, template.UserID.String(), template.ID.String()); err != nil {
				return err
			}
		}
		if err := tx.Omit("Assignments").Save(template).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", template.ID).
			Delete(&entities.MealPlanTemplateAssignment{}).Error; err != nil {
			return err
		}
		if len(template.Assignments) == 0 {
			return nil
		}
		return tx.Create(template.Assignments).Error
	})
}

// ActivateTemplate flips the one-active flag in a single transaction:
// deactivate everything else, then set the target active. Interleaved
// activations can never leave two templates active.
func (r *mealPlanRepository) ActivateTemplate(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deactivateOtherTemplates(tx, userID, id); err != nil {
			return err
		}
		result := tx.Model(&entities.MealPlanTemplate{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func deactivateOtherTemplates(tx *gorm.DB, userID string, exceptID string) error {
	return tx.Model(&entities.MealPlanTemplate{}).
		Where("user_id = ? AND id <> ? AND is_active = ?", userID, exceptID, true).
		Update("is_active", false).Error
}

func (r *mealPlanRepository) DeleteTemplate(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&entities.MealPlanTemplate{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("template_id = ?", id).
			Delete(&entities.MealPlanTemplateAssignment{}).Error
	})
}
