package entities

import (
	"time"

	"github.com/google/uuid"
)

// MealPlanTemplate is a recurring weekly meal plan. At most one
// template is active per user; activating one deactivates the rest.
type MealPlanTemplate struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID  `gorm:"index" json:"user_id"`
	PlanName    string     `json:"plan_name"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	IsActive    bool       `json:"is_active"`

	Assignments []*MealPlanTemplateAssignment `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
	Timestamp
}

// MealPlanTemplateAssignment pins one meal or one food to a
// (weekday, meal type) slot. ItemType selects which payload fields are
// populated: "meal" uses MealID; "food" uses FoodID/VariantID/
// Quantity/Unit. Assignments are owned by their template and replaced
// wholesale on template update.
type MealPlanTemplateAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	TemplateID uuid.UUID `gorm:"index" json:"template_id"`
	DayOfWeek  int       `json:"day_of_week"`
	MealType   string    `json:"meal_type"`
	ItemType   string    `json:"item_type"` // "meal", "food"

	MealID    *uuid.UUID `json:"meal_id,omitempty"`
	FoodID    *uuid.UUID `json:"food_id,omitempty"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  *float64   `json:"quantity,omitempty"`
	Unit      *string    `json:"unit,omitempty"`

	Meal *Meal `gorm:"foreignKey:MealID" json:"meal,omitempty"`
	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Timestamp
}
