package domain

import (
	"errors"
)

var (
	MessageSuccessCreateMeal = "meal created successfully"
	MessageSuccessGetMeals   = "meals retrieved successfully"
	MessageSuccessUpdateMeal = "meal updated successfully"
	MessageSuccessDeleteMeal = "meal deleted successfully"

	MessageFailedCreateMeal = "failed to create meal"
	MessageFailedGetMeals   = "failed to retrieve meals"
	MessageFailedUpdateMeal = "failed to update meal"
	MessageFailedDeleteMeal = "meal no longer exists or could not be deleted"

	ErrMealNotFound     = errors.New("meal not found")
	ErrMealNotOwned     = errors.New("meal does not belong to the requesting user")
	ErrFoodNotFound     = errors.New("food not found")
	ErrFoodNotVisible   = errors.New("food is neither owned by the user nor public")
	ErrMealInUse        = errors.New("meal is referenced by an active meal plan")
	ErrMealFoodsMissing = errors.New("meal must contain at least one food")
)

type MealFoodRequest struct {
	FoodID    string  `json:"food_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Unit      string  `json:"unit" validate:"required"`
}

type MealRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	IsPublic    bool              `json:"is_public"`
	Foods       []MealFoodRequest `json:"foods" validate:"required,min=1,dive"`
}
