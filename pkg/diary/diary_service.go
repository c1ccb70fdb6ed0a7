package diary

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type (
	FoodEntryService interface {
		AddFoodEntry(ctx context.Context, req domain.AddFoodEntryRequest, userID string) (*entities.FoodEntry, error)
		GetFoodEntries(ctx context.Context, userID string, date string) ([]*entities.FoodEntry, error)
		DeleteFoodEntry(ctx context.Context, entryID string, userID string) error
	}

	foodEntryService struct {
		foodEntryRepository FoodEntryRepository
	}
)

func NewFoodEntryService(foodEntryRepository FoodEntryRepository) FoodEntryService {
	return &foodEntryService{foodEntryRepository: foodEntryRepository}
}

// AddFoodEntry logs one manual diary row. Manual rows carry no
// template id, so plan resyncs leave them alone.
func (s *foodEntryService) AddFoodEntry(ctx context.Context, req domain.AddFoodEntryRequest, userID string) (*entities.FoodEntry, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	foodUUID, err := uuid.Parse(req.FoodID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	entryDate, err := domain.ParseDate(req.EntryDate)
	if err != nil {
		return nil, domain.NewValidationError("entry_date", "must be a date in YYYY-MM-DD form")
	}

	var variantID *uuid.UUID
	if req.VariantID != nil {
		id, err := uuid.Parse(*req.VariantID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		variantID = &id
	}

	entry := &entities.FoodEntry{
		ID:        uuid.New(),
		UserID:    userUUID,
		FoodID:    foodUUID,
		VariantID: variantID,
		MealType:  req.MealType,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		EntryDate: domain.DateOnly(entryDate),
	}
	if err := s.foodEntryRepository.CreateFoodEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *foodEntryService) GetFoodEntries(ctx context.Context, userID string, date string) ([]*entities.FoodEntry, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, domain.NewValidationError("date", "must be a date in YYYY-MM-DD form")
	}
	return s.foodEntryRepository.GetFoodEntriesByDate(ctx, userID, domain.DateOnly(day))
}

func (s *foodEntryService) DeleteFoodEntry(ctx context.Context, entryID string, userID string) error {
	if err := s.foodEntryRepository.DeleteFoodEntry(ctx, entryID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodEntryNotFound
		}
		return err
	}
	return nil
}
