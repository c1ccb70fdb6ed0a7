package domain

import (
	"errors"
)

var (
	MessageSuccessCreateTemplate   = "meal plan template created successfully"
	MessageSuccessGetTemplates     = "meal plan templates retrieved successfully"
	MessageSuccessUpdateTemplate   = "meal plan template updated successfully"
	MessageSuccessDeleteTemplate   = "meal plan template deleted successfully"
	MessageSuccessActivateTemplate = "meal plan template activated successfully"

	MessageFailedCreateTemplate   = "failed to create meal plan template"
	MessageFailedGetTemplates     = "failed to retrieve meal plan templates"
	MessageFailedUpdateTemplate   = "plan no longer exists or could not be updated"
	MessageFailedDeleteTemplate   = "plan no longer exists or could not be deleted"
	MessageFailedActivateTemplate = "failed to activate meal plan template"

	ErrTemplateNotFound = errors.New("meal plan template not found")
)

type TemplateAssignmentRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	MealType  string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snacks"`
	ItemType  string `json:"item_type" validate:"required,oneof=meal food"`

	MealID    *string  `json:"meal_id" validate:"omitempty,uuid"`
	FoodID    *string  `json:"food_id" validate:"omitempty,uuid"`
	VariantID *string  `json:"variant_id" validate:"omitempty,uuid"`
	Quantity  *float64 `json:"quantity" validate:"omitempty,gt=0"`
	Unit      *string  `json:"unit" validate:"omitempty"`
}

type MealPlanTemplateRequest struct {
	PlanName    string                      `json:"plan_name" validate:"required"`
	Description string                      `json:"description"`
	StartDate   string                      `json:"start_date" validate:"required"`
	EndDate     *string                     `json:"end_date" validate:"omitempty"`
	IsActive    bool                        `json:"is_active"`
	Assignments []TemplateAssignmentRequest `json:"assignments" validate:"dive"`

	// EffectiveFrom bounds the resync window on update; defaults to
	// today so past diary history is preserved.
	EffectiveFrom *string `json:"effective_from" validate:"omitempty"`
}
