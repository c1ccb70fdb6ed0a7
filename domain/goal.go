package domain

import (
	"errors"

	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
)

var (
	MessageSuccessGetGoals           = "goals resolved successfully"
	MessageSuccessManageGoalTimeline = "goal timeline updated successfully"
	MessageSuccessGetWeeklyPlans     = "weekly goal plans retrieved successfully"
	MessageSuccessCreateWeeklyPlan   = "weekly goal plan created successfully"
	MessageSuccessUpdateWeeklyPlan   = "weekly goal plan updated successfully"
	MessageSuccessDeleteWeeklyPlan   = "weekly goal plan deleted successfully"

	MessageFailedGetGoals           = "failed to resolve goals"
	MessageFailedManageGoalTimeline = "failed to update goal timeline"
	MessageFailedGetWeeklyPlans     = "failed to retrieve weekly goal plans"
	MessageFailedCreateWeeklyPlan   = "failed to create weekly goal plan"
	MessageFailedUpdateWeeklyPlan   = "failed to update weekly goal plan"
	MessageFailedDeleteWeeklyPlan   = "failed to delete weekly goal plan"

	ErrWeeklyGoalPlanNotFound = errors.New("weekly goal plan not found")
	ErrStartDateAfterEndDate  = errors.New("start date is after end date")
)

// GoalSet is the fully resolved goal bundle for one (user, date). Both
// macro representations and all four meal-distribution percentages are
// always populated, so callers never branch on how the source row
// stored its macros.
type GoalSet struct {
	Calories                      float64 `json:"calories"`
	Protein                       float64 `json:"protein"`
	Carbs                         float64 `json:"carbs"`
	Fat                           float64 `json:"fat"`
	ProteinPercentage             float64 `json:"protein_percentage"`
	CarbsPercentage               float64 `json:"carbs_percentage"`
	FatPercentage                 float64 `json:"fat_percentage"`
	WaterGoalML                   float64 `json:"water_goal_ml"`
	SaturatedFat                  float64 `json:"saturated_fat"`
	PolyunsaturatedFat            float64 `json:"polyunsaturated_fat"`
	MonounsaturatedFat            float64 `json:"monounsaturated_fat"`
	TransFat                      float64 `json:"trans_fat"`
	Cholesterol                   float64 `json:"cholesterol"`
	Sodium                        float64 `json:"sodium"`
	Potassium                     float64 `json:"potassium"`
	DietaryFiber                  float64 `json:"dietary_fiber"`
	Sugars                        float64 `json:"sugars"`
	VitaminA                      float64 `json:"vitamin_a"`
	VitaminC                      float64 `json:"vitamin_c"`
	Calcium                       float64 `json:"calcium"`
	Iron                          float64 `json:"iron"`
	TargetExerciseCaloriesBurned  float64 `json:"target_exercise_calories_burned"`
	TargetExerciseDurationMinutes float64 `json:"target_exercise_duration_minutes"`
	BreakfastPercentage           float64 `json:"breakfast_percentage"`
	LunchPercentage               float64 `json:"lunch_percentage"`
	DinnerPercentage              float64 `json:"dinner_percentage"`
	SnacksPercentage              float64 `json:"snacks_percentage"`
}

// GoalTargetsRequest carries the writable target fields shared by the
// goal-timeline and goal-preset surfaces.
type GoalTargetsRequest struct {
	Calories                      float64 `json:"calories" validate:"omitempty,min=0"`
	Protein                       float64 `json:"protein" validate:"omitempty,min=0"`
	Carbs                         float64 `json:"carbs" validate:"omitempty,min=0"`
	Fat                           float64 `json:"fat" validate:"omitempty,min=0"`
	WaterGoalML                   float64 `json:"water_goal_ml" validate:"omitempty,min=0"`
	SaturatedFat                  float64 `json:"saturated_fat" validate:"omitempty,min=0"`
	PolyunsaturatedFat            float64 `json:"polyunsaturated_fat" validate:"omitempty,min=0"`
	MonounsaturatedFat            float64 `json:"monounsaturated_fat" validate:"omitempty,min=0"`
	TransFat                      float64 `json:"trans_fat" validate:"omitempty,min=0"`
	Cholesterol                   float64 `json:"cholesterol" validate:"omitempty,min=0"`
	Sodium                        float64 `json:"sodium" validate:"omitempty,min=0"`
	Potassium                     float64 `json:"potassium" validate:"omitempty,min=0"`
	DietaryFiber                  float64 `json:"dietary_fiber" validate:"omitempty,min=0"`
	Sugars                        float64 `json:"sugars" validate:"omitempty,min=0"`
	VitaminA                      float64 `json:"vitamin_a" validate:"omitempty,min=0"`
	VitaminC                      float64 `json:"vitamin_c" validate:"omitempty,min=0"`
	Calcium                       float64 `json:"calcium" validate:"omitempty,min=0"`
	Iron                          float64 `json:"iron" validate:"omitempty,min=0"`
	TargetExerciseCaloriesBurned  float64 `json:"target_exercise_calories_burned" validate:"omitempty,min=0"`
	TargetExerciseDurationMinutes float64 `json:"target_exercise_duration_minutes" validate:"omitempty,min=0"`

	ProteinPercentage   *float64 `json:"protein_percentage" validate:"omitempty,min=0,max=100"`
	CarbsPercentage     *float64 `json:"carbs_percentage" validate:"omitempty,min=0,max=100"`
	FatPercentage       *float64 `json:"fat_percentage" validate:"omitempty,min=0,max=100"`
	BreakfastPercentage *float64 `json:"breakfast_percentage" validate:"omitempty,min=0,max=100"`
	LunchPercentage     *float64 `json:"lunch_percentage" validate:"omitempty,min=0,max=100"`
	DinnerPercentage    *float64 `json:"dinner_percentage" validate:"omitempty,min=0,max=100"`
	SnacksPercentage    *float64 `json:"snacks_percentage" validate:"omitempty,min=0,max=100"`
}

// Targets converts the request into the stored representation. The
// grams/percentage normalization is applied by the services.
func (r *GoalTargetsRequest) Targets() entities.GoalTargets {
	return entities.GoalTargets{
		Calories:                      r.Calories,
		Protein:                       r.Protein,
		Carbs:                         r.Carbs,
		Fat:                           r.Fat,
		WaterGoalML:                   r.WaterGoalML,
		SaturatedFat:                  r.SaturatedFat,
		PolyunsaturatedFat:            r.PolyunsaturatedFat,
		MonounsaturatedFat:            r.MonounsaturatedFat,
		TransFat:                      r.TransFat,
		Cholesterol:                   r.Cholesterol,
		Sodium:                        r.Sodium,
		Potassium:                     r.Potassium,
		DietaryFiber:                  r.DietaryFiber,
		Sugars:                        r.Sugars,
		VitaminA:                      r.VitaminA,
		VitaminC:                      r.VitaminC,
		Calcium:                       r.Calcium,
		Iron:                          r.Iron,
		TargetExerciseCaloriesBurned:  r.TargetExerciseCaloriesBurned,
		TargetExerciseDurationMinutes: r.TargetExerciseDurationMinutes,
		ProteinPercentage:             r.ProteinPercentage,
		CarbsPercentage:               r.CarbsPercentage,
		FatPercentage:                 r.FatPercentage,
		BreakfastPercentage:           r.BreakfastPercentage,
		LunchPercentage:               r.LunchPercentage,
		DinnerPercentage:              r.DinnerPercentage,
		SnacksPercentage:              r.SnacksPercentage,
	}
}

type GoalTimelineRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	Cascade   bool   `json:"cascade"`

	GoalTargetsRequest
}

type WeeklyGoalPlanRequest struct {
	PlanName  string  `json:"plan_name" validate:"required"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   *string `json:"end_date" validate:"omitempty"`
	IsActive  bool    `json:"is_active"`

	SundayPresetID    *string `json:"sunday_preset_id" validate:"omitempty,uuid"`
	MondayPresetID    *string `json:"monday_preset_id" validate:"omitempty,uuid"`
	TuesdayPresetID   *string `json:"tuesday_preset_id" validate:"omitempty,uuid"`
	WednesdayPresetID *string `json:"wednesday_preset_id" validate:"omitempty,uuid"`
	ThursdayPresetID  *string `json:"thursday_preset_id" validate:"omitempty,uuid"`
	FridayPresetID    *string `json:"friday_preset_id" validate:"omitempty,uuid"`
	SaturdayPresetID  *string `json:"saturday_preset_id" validate:"omitempty,uuid"`
}
