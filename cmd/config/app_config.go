package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/api/handlers"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/api/routes"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/cache"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/middleware"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/utils"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/diary"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/goal"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/jwt"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/meal"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/mealplan"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/preset"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	utils.InitLogger()
	utils.InitMetrics()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	app.Use(middlewares.RequestLogger(utils.Logger))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Cache: optional, resolution works uncached when redis is down
	var goalCache goal.GoalCache
	var invalidator preset.ResolutionInvalidator
	if client, err := cache.InitRedis(utils.Logger); err == nil {
		resolutionCache := cache.NewGoalResolutionCache(client, utils.Logger)
		goalCache = resolutionCache
		invalidator = resolutionCache
	}

	// Repository
	presetRepository := preset.NewGoalPresetRepository(db)
	goalRepository := goal.NewGoalRepository(db)
	mealRepository := meal.NewMealRepository(db)
	mealPlanRepository := mealplan.NewMealPlanRepository(db)
	foodEntryRepository := diary.NewFoodEntryRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	presetService := preset.NewGoalPresetService(presetRepository, invalidator)
	goalService := goal.NewGoalService(goalRepository, presetRepository, goalCache)
	mealPlanService := mealplan.NewMealPlanService(mealPlanRepository, mealRepository, foodEntryRepository, utils.Logger)
	mealService := meal.NewMealService(mealRepository, mealPlanService)
	foodEntryService := diary.NewFoodEntryService(foodEntryRepository)

	// Handler
	goalHandler := handlers.NewGoalHandler(goalService, validator)
	presetHandler := handlers.NewPresetHandler(presetService, validator)
	mealHandler := handlers.NewMealHandler(mealService, validator)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanService, validator)
	diaryHandler := handlers.NewDiaryHandler(foodEntryService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		GoalHandler:     goalHandler,
		PresetHandler:   presetHandler,
		MealHandler:     mealHandler,
		MealPlanHandler: mealPlanHandler,
		DiaryHandler:    diaryHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
