package entities

import (
	"github.com/google/uuid"
)

// Meal is a reusable, user-authored bundle of foods. Its food list is
// replaced wholesale on update and edits propagate to every active
// meal plan template that references the meal.
type Meal struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`

	Foods []*MealFood `gorm:"foreignKey:MealID" json:"foods,omitempty"`
	Timestamp
}

type MealFood struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MealID    uuid.UUID  `gorm:"index" json:"meal_id"`
	FoodID    uuid.UUID  `json:"food_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Position  int        `json:"position"`

	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Timestamp
}
