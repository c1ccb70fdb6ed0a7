package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/api/presenters"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/mealplan"
)

type (
	MealPlanHandler interface {
		CreateTemplate(c *fiber.Ctx) error
		GetTemplates(c *fiber.Ctx) error
		GetTemplateDetails(c *fiber.Ctx) error
		UpdateTemplate(c *fiber.Ctx) error
		DeleteTemplate(c *fiber.Ctx) error
		ActivateTemplate(c *fiber.Ctx) error
	}

	mealPlanHandler struct {
		mealPlanService mealplan.MealPlanService
		validator       *validator.Validate
	}
)

func NewMealPlanHandler(mealPlanService mealplan.MealPlanService, validator *validator.Validate) MealPlanHandler {
	return &mealPlanHandler{
		mealPlanService: mealPlanService,
		validator:       validator,
	}
}

func (h *mealPlanHandler) CreateTemplate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MealPlanTemplateRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTemplate, err)
	}

	res, err := h.mealPlanService.CreateTemplate(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTemplate, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateTemplate)
}

func (h *mealPlanHandler) GetTemplates(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.mealPlanService.GetTemplates(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTemplates, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTemplates)
}

func (h *mealPlanHandler) GetTemplateDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	templateID := c.Params("id")

	res, err := h.mealPlanService.GetTemplate(c.Context(), templateID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetTemplates, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTemplates)
}

func (h *mealPlanHandler) UpdateTemplate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	templateID := c.Params("id")
	req := new(domain.MealPlanTemplateRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTemplate, err)
	}

	res, err := h.mealPlanService.UpdateTemplate(c.Context(), templateID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTemplate, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateTemplate)
}

func (h *mealPlanHandler) DeleteTemplate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	templateID := c.Params("id")

	if err := h.mealPlanService.DeleteTemplate(c.Context(), templateID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteTemplate, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteTemplate)
}

func (h *mealPlanHandler) ActivateTemplate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	templateID := c.Params("id")

	if err := h.mealPlanService.ActivateTemplate(c.Context(), templateID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedActivateTemplate, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessActivateTemplate)
}
