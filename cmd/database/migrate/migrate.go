package migration

import (
	"fmt"
	"log"

	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Food{}); err != nil {
		log.Fatalf("Error migrating food database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodVariant{}); err != nil {
		log.Fatalf("Error migrating food variant database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserGoal{}); err != nil {
		log.Fatalf("Error migrating user goal database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.GoalPreset{}); err != nil {
		log.Fatalf("Error migrating goal preset database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.WeeklyGoalPlan{}); err != nil {
		log.Fatalf("Error migrating weekly goal plan database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Meal{}); err != nil {
		log.Fatalf("Error migrating meal database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealFood{}); err != nil {
		log.Fatalf("Error migrating meal food database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealPlanTemplate{}); err != nil {
		log.Fatalf("Error migrating meal plan template database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealPlanTemplateAssignment{}); err != nil {
		log.Fatalf("Error migrating meal plan assignment database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodEntry{}); err != nil {
		log.Fatalf("Error migrating food entry database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
