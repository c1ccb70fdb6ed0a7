package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/api/handlers"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/middleware"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/jwt"
)

type Config struct {
	App             *fiber.App
	GoalHandler     handlers.GoalHandler
	PresetHandler   handlers.PresetHandler
	MealHandler     handlers.MealHandler
	MealPlanHandler handlers.MealPlanHandler
	DiaryHandler    handlers.DiaryHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Goals()
	c.Presets()
	c.Meals()
	c.MealPlans()
	c.Diary()
	c.GuestRoute()
}

func (c *Config) Goals() {
	goals := c.App.Group("/api/v1/goals", c.Middleware.AuthMiddleware(c.JWTService))
	{
		goals.Get("", c.GoalHandler.GetGoals)
		goals.Post("/manage-timeline", c.GoalHandler.ManageGoalTimeline)
		goals.Get("/weekly-plans", c.GoalHandler.GetWeeklyGoalPlans)
		goals.Post("/weekly-plans", c.GoalHandler.CreateWeeklyGoalPlan)
		goals.Put("/weekly-plans/:id", c.GoalHandler.UpdateWeeklyGoalPlan)
		goals.Delete("/weekly-plans/:id", c.GoalHandler.DeleteWeeklyGoalPlan)
	}
}

func (c *Config) Presets() {
	presets := c.App.Group("/api/v1/goal-presets", c.Middleware.AuthMiddleware(c.JWTService))
	{
		presets.Post("", c.PresetHandler.CreateGoalPreset)
		presets.Get("", c.PresetHandler.GetGoalPresets)
		presets.Get("/:id", c.PresetHandler.GetGoalPresetDetails)
		presets.Put("/:id", c.PresetHandler.UpdateGoalPreset)
		presets.Delete("/:id", c.PresetHandler.DeleteGoalPreset)
	}
}

func (c *Config) Meals() {
	meals := c.App.Group("/api/v1/meals", c.Middleware.AuthMiddleware(c.JWTService))
	{
		meals.Post("", c.MealHandler.CreateMeal)
		meals.Get("", c.MealHandler.GetMeals)
		meals.Get("/:id", c.MealHandler.GetMealDetails)
		meals.Put("/:id", c.MealHandler.UpdateMeal)
		meals.Delete("/:id", c.MealHandler.DeleteMeal)
	}
}

func (c *Config) MealPlans() {
	plans := c.App.Group("/api/v1/meal-plans", c.Middleware.AuthMiddleware(c.JWTService))
	{
		plans.Post("", c.MealPlanHandler.CreateTemplate)
		plans.Get("", c.MealPlanHandler.GetTemplates)
		plans.Get("/:id", c.MealPlanHandler.GetTemplateDetails)
		plans.Put("/:id", c.MealPlanHandler.UpdateTemplate)
		plans.Delete("/:id", c.MealPlanHandler.DeleteTemplate)
		plans.Post("/:id/activate", c.MealPlanHandler.ActivateTemplate)
	}
}

func (c *Config) Diary() {
	diary := c.App.Group("/api/v1/diary", c.Middleware.AuthMiddleware(c.JWTService))
	{
		diary.Post("/entries", c.DiaryHandler.AddFoodEntry)
		diary.Get("/entries", c.DiaryHandler.GetFoodEntries)
		diary.Delete("/entries/:id", c.DiaryHandler.DeleteFoodEntry)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
