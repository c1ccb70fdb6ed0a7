package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/api/presenters"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/diary"
)

type (
	DiaryHandler interface {
		AddFoodEntry(c *fiber.Ctx) error
		GetFoodEntries(c *fiber.Ctx) error
		DeleteFoodEntry(c *fiber.Ctx) error
	}

	diaryHandler struct {
		foodEntryService diary.FoodEntryService
		validator        *validator.Validate
	}
)

func NewDiaryHandler(foodEntryService diary.FoodEntryService, validator *validator.Validate) DiaryHandler {
	return &diaryHandler{
		foodEntryService: foodEntryService,
		validator:        validator,
	}
}

func (h *diaryHandler) AddFoodEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddFoodEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodEntry, err)
	}

	res, err := h.foodEntryService.AddFoodEntry(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFoodEntry)
}

func (h *diaryHandler) GetFoodEntries(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	date := c.Query("date", time.Now().Format(domain.DateLayout))

	res, err := h.foodEntryService.GetFoodEntries(c.Context(), userID, date)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodEntries, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoodEntries)
}

func (h *diaryHandler) DeleteFoodEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	entryID := c.Params("id")

	if err := h.foodEntryService.DeleteFoodEntry(c.Context(), entryID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteFoodEntry, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodEntry)
}
