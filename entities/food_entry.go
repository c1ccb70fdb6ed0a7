package entities

import (
	"time"

	"github.com/google/uuid"
)

// FoodEntry is one concrete diary row. MealPlanTemplateID is set only
// on rows the materializer generated; manual rows keep it null and are
// never touched by a resync.
type FoodEntry struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID             uuid.UUID  `gorm:"index:idx_food_entries_user_date" json:"user_id"`
	FoodID             uuid.UUID  `json:"food_id"`
	VariantID          *uuid.UUID `json:"variant_id,omitempty"`
	MealType           string     `json:"meal_type"`
	Quantity           float64    `json:"quantity"`
	Unit               string     `json:"unit"`
	EntryDate          time.Time  `gorm:"type:date;index:idx_food_entries_user_date" json:"entry_date"`
	MealPlanTemplateID *uuid.UUID `gorm:"index" json:"meal_plan_template_id,omitempty"`

	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Timestamp
}
