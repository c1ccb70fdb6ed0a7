package entities

import (
	"time"

	"github.com/google/uuid"
)

// GoalTargets holds the nutrient and exercise targets shared by
// per-date goal rows and goal presets. Macro percentages are nullable:
// when set, the gram fields are derived from them; when grams are set
// directly, the percentage fields stay null.
type GoalTargets struct {
	Calories                      float64  `json:"calories"`
	Protein                       float64  `json:"protein"`
	Carbs                         float64  `json:"carbs"`
	Fat                           float64  `json:"fat"`
	WaterGoalML                   float64  `json:"water_goal_ml"`
	SaturatedFat                  float64  `json:"saturated_fat"`
	PolyunsaturatedFat            float64  `json:"polyunsaturated_fat"`
	MonounsaturatedFat            float64  `json:"monounsaturated_fat"`
	TransFat                      float64  `json:"trans_fat"`
	Cholesterol                   float64  `json:"cholesterol"`
	Sodium                        float64  `json:"sodium"`
	Potassium                     float64  `json:"potassium"`
	DietaryFiber                  float64  `json:"dietary_fiber"`
	Sugars                        float64  `json:"sugars"`
	VitaminA                      float64  `json:"vitamin_a"`
	VitaminC                      float64  `json:"vitamin_c"`
	Calcium                       float64  `json:"calcium"`
	Iron                          float64  `json:"iron"`
	TargetExerciseCaloriesBurned  float64  `json:"target_exercise_calories_burned"`
	TargetExerciseDurationMinutes float64  `json:"target_exercise_duration_minutes"`
	ProteinPercentage             *float64 `json:"protein_percentage,omitempty"`
	CarbsPercentage               *float64 `json:"carbs_percentage,omitempty"`
	FatPercentage                 *float64 `json:"fat_percentage,omitempty"`
	BreakfastPercentage           *float64 `json:"breakfast_percentage,omitempty"`
	LunchPercentage               *float64 `json:"lunch_percentage,omitempty"`
	DinnerPercentage              *float64 `json:"dinner_percentage,omitempty"`
	SnacksPercentage              *float64 `json:"snacks_percentage,omitempty"`
}

// UserGoal is one per-date goal row. Cascading=false pins the row to
// its exact date; Cascading=true makes it fill forward until
// superseded.
type UserGoal struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"index:idx_user_goals_user_date" json:"user_id"`
	GoalDate  time.Time `gorm:"type:date;index:idx_user_goals_user_date" json:"goal_date"`
	Cascading bool      `json:"cascade"`

	GoalTargets
	Timestamp
}

type GoalPreset struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	PresetName string    `json:"preset_name"`

	GoalTargets
	Timestamp
}

// WeeklyGoalPlan maps each weekday to an optional goal preset. At most
// one plan is active per user at any time.
type WeeklyGoalPlan struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	PlanName  string     `json:"plan_name"`
	StartDate time.Time  `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`

	SundayPresetID    *uuid.UUID `json:"sunday_preset_id,omitempty"`
	MondayPresetID    *uuid.UUID `json:"monday_preset_id,omitempty"`
	TuesdayPresetID   *uuid.UUID `json:"tuesday_preset_id,omitempty"`
	WednesdayPresetID *uuid.UUID `json:"wednesday_preset_id,omitempty"`
	ThursdayPresetID  *uuid.UUID `json:"thursday_preset_id,omitempty"`
	FridayPresetID    *uuid.UUID `json:"friday_preset_id,omitempty"`
	SaturdayPresetID  *uuid.UUID `json:"saturday_preset_id,omitempty"`

	Timestamp
}

// PresetIDForWeekday returns the preset slot for a Go weekday
// (Sunday = 0).
func (p *WeeklyGoalPlan) PresetIDForWeekday(day time.Weekday) *uuid.UUID {
	switch day {
	case time.Sunday:
		return p.SundayPresetID
	case time.Monday:
		return p.MondayPresetID
	case time.Tuesday:
		return p.TuesdayPresetID
	case time.Wednesday:
		return p.WednesdayPresetID
	case time.Thursday:
		return p.ThursdayPresetID
	case time.Friday:
		return p.FridayPresetID
	case time.Saturday:
		return p.SaturdayPresetID
	}
	return nil
}
