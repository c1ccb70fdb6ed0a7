package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/api/presenters"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/goal"
)

type (
	GoalHandler interface {
		GetGoals(c *fiber.Ctx) error
		ManageGoalTimeline(c *fiber.Ctx) error
		GetWeeklyGoalPlans(c *fiber.Ctx) error
		CreateWeeklyGoalPlan(c *fiber.Ctx) error
		UpdateWeeklyGoalPlan(c *fiber.Ctx) error
		DeleteWeeklyGoalPlan(c *fiber.Ctx) error
	}

	goalHandler struct {
		goalService goal.GoalService
		validator   *validator.Validate
	}
)

func NewGoalHandler(goalService goal.GoalService, validator *validator.Validate) GoalHandler {
	return &goalHandler{
		goalService: goalService,
		validator:   validator,
	}
}

func (h *goalHandler) GetGoals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	date := c.Query("date", time.Now().Format(domain.DateLayout))

	res, err := h.goalService.ResolveGoals(c.Context(), userID, date)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetGoals, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGoals)
}

func (h *goalHandler) ManageGoalTimeline(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.GoalTimelineRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedManageGoalTimeline, err)
	}

	if err := h.goalService.ManageGoalTimeline(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedManageGoalTimeline, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessManageGoalTimeline)
}

func (h *goalHandler) GetWeeklyGoalPlans(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.goalService.GetWeeklyGoalPlans(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWeeklyPlans, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeeklyPlans)
}

func (h *goalHandler) CreateWeeklyGoalPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.WeeklyGoalPlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateWeeklyPlan, err)
	}

	res, err := h.goalService.CreateWeeklyGoalPlan(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateWeeklyPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateWeeklyPlan)
}

func (h *goalHandler) UpdateWeeklyGoalPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	planID := c.Params("id")
	req := new(domain.WeeklyGoalPlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateWeeklyPlan, err)
	}

	res, err := h.goalService.UpdateWeeklyGoalPlan(c.Context(), planID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateWeeklyPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateWeeklyPlan)
}

func (h *goalHandler) DeleteWeeklyGoalPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	planID := c.Params("id")

	if err := h.goalService.DeleteWeeklyGoalPlan(c.Context(), planID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteWeeklyPlan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteWeeklyPlan)
}
