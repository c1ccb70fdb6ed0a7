package entities

import (
	"github.com/google/uuid"
)

type Food struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           *uuid.UUID `json:"user_id,omitempty"`
	Name             string     `json:"name"`
	Brand            string     `json:"brand,omitempty"`
	IsCustom         bool       `json:"is_custom"`
	SharedWithPublic bool       `json:"shared_with_public"`

	Variants []*FoodVariant `gorm:"foreignKey:FoodID" json:"variants,omitempty"`
	Timestamp
}

type FoodVariant struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FoodID      uuid.UUID `json:"food_id"`
	ServingSize float64   `json:"serving_size"`
	ServingUnit string    `json:"serving_unit"`
	IsDefault   bool      `json:"is_default"`

	Timestamp
}
