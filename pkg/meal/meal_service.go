package meal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type (
	MealService interface {
		CreateMeal(ctx context.Context, req domain.MealRequest, userID string) (*entities.Meal, error)
		GetMeal(ctx context.Context, mealID string, userID string) (*entities.Meal, error)
		GetMeals(ctx context.Context, userID string) ([]*entities.Meal, error)
		UpdateMeal(ctx context.Context, mealID string, req domain.MealRequest, userID string) (*entities.Meal, error)
		DeleteMeal(ctx context.Context, mealID string, userID string) error
	}

	// PlanSyncer receives meal-change notifications so plan-generated
	// diary rows can be rebuilt. Wired at startup; nil disables
	// propagation.
	PlanSyncer interface {
		OnMealChanged(ctx context.Context, mealID string) error
	}

	mealService struct {
		mealRepository MealRepository
		planSyncer     PlanSyncer
	}
)

func NewMealService(mealRepository MealRepository, planSyncer PlanSyncer) MealService {
	return &mealService{
		mealRepository: mealRepository,
		planSyncer:     planSyncer,
	}
}

func (s *mealService) CreateMeal(ctx context.Context, req domain.MealRequest, userID string) (*entities.Meal, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	meal := &entities.Meal{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	foods, err := s.buildMealFoods(ctx, meal.ID, req.Foods, userID)
	if err != nil {
		return nil, err
	}
	meal.Foods = foods

	if err := s.mealRepository.CreateMeal(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *mealService) GetMeal(ctx context.Context, mealID string, userID string) (*entities.Meal, error) {
	meal, err := s.mealRepository.GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMealNotFound
		}
		return nil, err
	}
	if meal.UserID.String() != userID && !meal.IsPublic {
		return nil, domain.ErrMealNotOwned
	}
	return meal, nil
}

func (s *mealService) GetMeals(ctx context.Context, userID string) ([]*entities.Meal, error) {
	return s.mealRepository.GetMealsByUser(ctx, userID)
}

// UpdateMeal rewrites the meal and its food list, then resyncs every
// active plan template referencing it so future diary rows match the
// new composition.
func (s *mealService) UpdateMeal(ctx context.Context, mealID string, req domain.MealRequest, userID string) (*entities.Meal, error) {
	meal, err := s.mealRepository.GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMealNotFound
		}
		return nil, err
	}
	if meal.UserID.String() != userID {
		return nil, domain.ErrMealNotOwned
	}

	meal.Name = req.Name
	meal.Description = req.Description
	meal.IsPublic = req.IsPublic

	foods, err := s.buildMealFoods(ctx, meal.ID, req.Foods, userID)
	if err != nil {
		return nil, err
	}

	if err := s.mealRepository.UpdateMeal(ctx, meal); err != nil {
		return nil, err
	}
	if err := s.mealRepository.ReplaceMealFoods(ctx, mealID, foods); err != nil {
		return nil, err
	}
	meal.Foods = foods

	if s.planSyncer != nil {
		if err := s.planSyncer.OnMealChanged(ctx, mealID); err != nil {
			return nil, err
		}
	}
	return meal, nil
}

func (s *mealService) DeleteMeal(ctx context.Context, mealID string, userID string) error {
	if err := s.mealRepository.DeleteMeal(ctx, mealID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealNotFound
		}
		return err
	}
	return nil
}

// buildMealFoods validates every referenced food (owned or public) and
// assigns list positions in request order.
func (s *mealService) buildMealFoods(ctx context.Context, mealID uuid.UUID, reqs []domain.MealFoodRequest, userID string) ([]*entities.MealFood, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrMealFoodsMissing
	}

	foods := make([]*entities.MealFood, 0, len(reqs))
	for i, fr := range reqs {
		foodID, err := uuid.Parse(fr.FoodID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}

		food, err := s.mealRepository.GetFoodByID(ctx, fr.FoodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrFoodNotFound
			}
			return nil, err
		}
		if !food.SharedWithPublic && (food.UserID == nil || food.UserID.String() != userID) {
			return nil, domain.ErrFoodNotVisible
		}

		var variantID *uuid.UUID
		if fr.VariantID != nil {
			id, err := uuid.Parse(*fr.VariantID)
			if err != nil {
				return nil, domain.ErrParseUUID
			}
			variantID = &id
		}

		foods = append(foods, &entities.MealFood{
			ID:        uuid.New(),
			MealID:    mealID,
			FoodID:    foodID,
			VariantID: variantID,
			Quantity:  fr.Quantity,
			Unit:      fr.Unit,
			Position:  i,
		})
	}
	return foods, nil
}
