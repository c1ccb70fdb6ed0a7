package domain

import (
	"errors"
)

var (
	MessageSuccessAddFoodEntry    = "food entry added successfully"
	MessageSuccessGetFoodEntries  = "food entries retrieved successfully"
	MessageSuccessDeleteFoodEntry = "food entry deleted successfully"

	MessageFailedAddFoodEntry    = "failed to add food entry"
	MessageFailedGetFoodEntries  = "failed to retrieve food entries"
	MessageFailedDeleteFoodEntry = "failed to delete food entry"

	ErrFoodEntryNotFound = errors.New("food entry not found")
)

type AddFoodEntryRequest struct {
	FoodID    string  `json:"food_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	MealType  string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snacks"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Unit      string  `json:"unit" validate:"required"`
	EntryDate string  `json:"entry_date" validate:"required"`
}
