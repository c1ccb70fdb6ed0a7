package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/api/presenters"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/preset"
)

type (
	PresetHandler interface {
		CreateGoalPreset(c *fiber.Ctx) error
		GetGoalPresets(c *fiber.Ctx) error
		GetGoalPresetDetails(c *fiber.Ctx) error
		UpdateGoalPreset(c *fiber.Ctx) error
		DeleteGoalPreset(c *fiber.Ctx) error
	}

	presetHandler struct {
		presetService preset.GoalPresetService
		validator     *validator.Validate
	}
)

func NewPresetHandler(presetService preset.GoalPresetService, validator *validator.Validate) PresetHandler {
	return &presetHandler{
		presetService: presetService,
		validator:     validator,
	}
}

func (h *presetHandler) CreateGoalPreset(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.GoalPresetRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePreset, err)
	}

	res, err := h.presetService.CreateGoalPreset(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePreset, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePreset)
}

func (h *presetHandler) GetGoalPresets(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.presetService.GetGoalPresets(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPresets, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPresets)
}

func (h *presetHandler) GetGoalPresetDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	presetID := c.Params("id")

	res, err := h.presetService.GetGoalPreset(c.Context(), presetID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPresets, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPresets)
}

func (h *presetHandler) UpdateGoalPreset(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	presetID := c.Params("id")
	req := new(domain.GoalPresetRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePreset, err)
	}

	res, err := h.presetService.UpdateGoalPreset(c.Context(), presetID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePreset, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdatePreset)
}

func (h *presetHandler) DeleteGoalPreset(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	presetID := c.Params("id")

	if err := h.presetService.DeleteGoalPreset(c.Context(), presetID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePreset, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePreset)
}
