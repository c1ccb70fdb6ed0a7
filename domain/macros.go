package domain

import (
	"math"

	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
)

// Calorie density per gram: protein and carbs 4 kcal, fat 9 kcal.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	distributionSumEpsilon = 1e-6
)

// MacroGramsFromPercentages derives gram targets from calorie-share
// percentages.
func MacroGramsFromPercentages(calories, proteinPct, carbsPct, fatPct float64) (protein, carbs, fat float64) {
	protein = calories * (proteinPct / 100) / kcalPerGramProtein
	carbs = calories * (carbsPct / 100) / kcalPerGramCarbs
	fat = calories * (fatPct / 100) / kcalPerGramFat
	return protein, carbs, fat
}

// MacroPercentagesFromGrams is the inverse derivation, used when a row
// stored grams directly. Zero calories yields zero percentages.
func MacroPercentagesFromGrams(calories, protein, carbs, fat float64) (proteinPct, carbsPct, fatPct float64) {
	if calories <= 0 {
		return 0, 0, 0
	}
	proteinPct = protein * kcalPerGramProtein / calories * 100
	carbsPct = carbs * kcalPerGramCarbs / calories * 100
	fatPct = fat * kcalPerGramFat / calories * 100
	return proteinPct, carbsPct, fatPct
}

// ValidateMacroPercentages rejects a partially supplied percentage
// triple. Either all three are present or none is.
func ValidateMacroPercentages(proteinPct, carbsPct, fatPct *float64) *ValidationError {
	set := 0
	for _, p := range []*float64{proteinPct, carbsPct, fatPct} {
		if p != nil {
			set++
		}
	}
	if set != 0 && set != 3 {
		return NewValidationError("macro_percentages", "protein, carbs and fat percentages must be provided together")
	}
	return nil
}

// ValidateMealDistribution enforces that the breakfast/lunch/dinner/
// snacks percentages, when supplied, are supplied together and sum to
// exactly 100.
func ValidateMealDistribution(breakfast, lunch, dinner, snacks *float64) *ValidationError {
	set := 0
	sum := 0.0
	for _, p := range []*float64{breakfast, lunch, dinner, snacks} {
		if p != nil {
			set++
			sum += *p
		}
	}
	if set == 0 {
		return nil
	}
	if set != 4 {
		return NewValidationError("meal_distribution", "breakfast, lunch, dinner and snacks percentages must be provided together")
	}
	if math.Abs(sum-100) > distributionSumEpsilon {
		return NewValidationError("meal_distribution", "meal distribution percentages must sum to 100")
	}
	return nil
}

// NormalizeMacros applies the grams-XOR-percentages rule in place:
// when the percentage triple is set, gram fields are derived from it
// and both are stored; otherwise the percentage fields are cleared and
// the supplied grams stand.
func NormalizeMacros(t *entities.GoalTargets) {
	if t.ProteinPercentage != nil && t.CarbsPercentage != nil && t.FatPercentage != nil {
		t.Protein, t.Carbs, t.Fat = MacroGramsFromPercentages(
			t.Calories, *t.ProteinPercentage, *t.CarbsPercentage, *t.FatPercentage,
		)
		return
	}
	t.ProteinPercentage = nil
	t.CarbsPercentage = nil
	t.FatPercentage = nil
}

// GoalSetFromTargets resolves a stored target row into the output
// shape: both macro representations populated, missing distribution
// percentages defaulted to an even 25/25/25/25 split.
func GoalSetFromTargets(t entities.GoalTargets) GoalSet {
	set := GoalSet{
		Calories:                      t.Calories,
		Protein:                       t.Protein,
		Carbs:                         t.Carbs,
		Fat:                           t.Fat,
		WaterGoalML:                   t.WaterGoalML,
		SaturatedFat:                  t.SaturatedFat,
		PolyunsaturatedFat:            t.PolyunsaturatedFat,
		MonounsaturatedFat:            t.MonounsaturatedFat,
		TransFat:                      t.TransFat,
		Cholesterol:                   t.Cholesterol,
		Sodium:                        t.Sodium,
		Potassium:                     t.Potassium,
		DietaryFiber:                  t.DietaryFiber,
		Sugars:                        t.Sugars,
		VitaminA:                      t.VitaminA,
		VitaminC:                      t.VitaminC,
		Calcium:                       t.Calcium,
		Iron:                          t.Iron,
		TargetExerciseCaloriesBurned:  t.TargetExerciseCaloriesBurned,
		TargetExerciseDurationMinutes: t.TargetExerciseDurationMinutes,
		BreakfastPercentage:           25,
		LunchPercentage:               25,
		DinnerPercentage:              25,
		SnacksPercentage:              25,
	}

	if t.ProteinPercentage != nil && t.CarbsPercentage != nil && t.FatPercentage != nil {
		set.ProteinPercentage = *t.ProteinPercentage
		set.CarbsPercentage = *t.CarbsPercentage
		set.FatPercentage = *t.FatPercentage
		set.Protein, set.Carbs, set.Fat = MacroGramsFromPercentages(
			t.Calories, set.ProteinPercentage, set.CarbsPercentage, set.FatPercentage,
		)
	} else {
		set.ProteinPercentage, set.CarbsPercentage, set.FatPercentage = MacroPercentagesFromGrams(
			t.Calories, t.Protein, t.Carbs, t.Fat,
		)
	}

	if t.BreakfastPercentage != nil && t.LunchPercentage != nil && t.DinnerPercentage != nil && t.SnacksPercentage != nil {
		set.BreakfastPercentage = *t.BreakfastPercentage
		set.LunchPercentage = *t.LunchPercentage
		set.DinnerPercentage = *t.DinnerPercentage
		set.SnacksPercentage = *t.SnacksPercentage
	}

	return set
}

// DefaultGoalTargets is the tier-4 fallback: the built-in goal set for
// users with no stored rows, plans or presets.
func DefaultGoalTargets() entities.GoalTargets {
	return entities.GoalTargets{
		Calories:           2000,
		Protein:            150,
		Carbs:              250,
		Fat:                67,
		WaterGoalML:        1920, // 8 glasses * 240ml
		SaturatedFat:       20,
		PolyunsaturatedFat: 10,
		MonounsaturatedFat: 25,
		TransFat:           0,
		Cholesterol:        300,
		Sodium:             2300,
		Potassium:          3500,
		DietaryFiber:       25,
		Sugars:             50,
		VitaminA:           900,
		VitaminC:           90,
		Calcium:            1000,
		Iron:               18,
	}
}
