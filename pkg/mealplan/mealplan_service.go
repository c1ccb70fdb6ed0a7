package mealplan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/utils"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/diary"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/meal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openEndedHorizonDays caps materialization for templates without an
// end date. Later activations or resyncs extend the window again.
const openEndedHorizonDays = 90

type (
	MealPlanService interface {
		CreateTemplate(ctx context.Context, req domain.MealPlanTemplateRequest, userID string) (*entities.MealPlanTemplate, error)
		GetTemplates(ctx context.Context, userID string) ([]*entities.MealPlanTemplate, error)
		GetTemplate(ctx context.Context, templateID string, userID string) (*entities.MealPlanTemplate, error)
		UpdateTemplate(ctx context.Context, templateID string, req domain.MealPlanTemplateRequest, userID string) (*entities.MealPlanTemplate, error)
		DeleteTemplate(ctx context.Context, templateID string, userID string) error
		ActivateTemplate(ctx context.Context, templateID string, userID string) error

		// OnMealChanged resyncs every active template referencing the
		// meal, one template at a time.
		OnMealChanged(ctx context.Context, mealID string) error
	}

	mealPlanService struct {
		mealPlanRepository  MealPlanRepository
		mealRepository      meal.MealRepository
		foodEntryRepository diary.FoodEntryRepository
		logger              *zap.Logger
	}
)

func NewMealPlanService(
	mealPlanRepository MealPlanRepository,
	mealRepository meal.MealRepository,
	foodEntryRepository diary.FoodEntryRepository,
	logger *zap.Logger,
) MealPlanService {
	return &mealPlanService{
		mealPlanRepository:  mealPlanRepository,
		mealRepository:      mealRepository,
		foodEntryRepository: foodEntryRepository,
		logger:              logger,
	}
}

func (s *mealPlanService) CreateTemplate(ctx context.Context, req domain.MealPlanTemplateRequest, userID string) (*entities.MealPlanTemplate, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	template := &entities.MealPlanTemplate{
		ID:          uuid.New(),
		UserID:      userUUID,
		PlanName:    req.PlanName,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if err := s.applyTemplateRequest(ctx, template, req, userID); err != nil {
		return nil, err
	}

	if err := s.mealPlanRepository.CreateTemplate(ctx, template); err != nil {
		return nil, err
	}

	if template.IsActive {
		if err := s.materialize(ctx, template, domain.DateOnly(time.Now())); err != nil {
			return nil, err
		}
	}
	return template, nil
}

func (s *mealPlanService) GetTemplates(ctx context.Context, userID string) ([]*entities.MealPlanTemplate, error) {
	return s.mealPlanRepository.GetTemplatesByUser(ctx, userID)
}

func (s *mealPlanService) GetTemplate(ctx context.Context, templateID string, userID string) (*entities.MealPlanTemplate, error) {
	template, err := s.mealPlanRepository.GetTemplateByID(ctx, templateID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

// UpdateTemplate rewrites the template and its assignments, then
// resyncs generated diary rows from the effective date forward so the
// diary reflects the new composition without touching history.
func (s *mealPlanService) UpdateTemplate(ctx context.Context, templateID string, req domain.MealPlanTemplateRequest, userID string) (*entities.MealPlanTemplate, error) {
	template, err := s.mealPlanRepository.GetTemplateByID(ctx, templateID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}

	template.PlanName = req.PlanName
	template.Description = req.Description
	template.IsActive = req.IsActive
	if err := s.applyTemplateRequest(ctx, template, req, userID); err != nil {
		return nil, err
	}

	effectiveFrom := domain.DateOnly(time.Now())
	if req.EffectiveFrom != nil {
		parsed, err := domain.ParseDate(*req.EffectiveFrom)
		if err != nil {
			return nil, domain.NewValidationError("effective_from", "must be a date in YYYY-MM-DD form")
		}
		effectiveFrom = domain.DateOnly(parsed)
	}

	if err := s.mealPlanRepository.UpdateTemplate(ctx, template); err != nil {
		return nil, err
	}

	// Whether the edit recomposed the plan or switched it off, the old
	// composition's future rows are stale either way. The purge is
	// unconditional; only an active result is rebuilt.
	if err := s.resync(ctx, template, effectiveFrom); err != nil {
		return nil, err
	}
	return template, nil
}

// DeleteTemplate removes the template and the diary rows it generated
// from today onward. Rows for past days stay as eaten history.
func (s *mealPlanService) DeleteTemplate(ctx context.Context, templateID string, userID string) error {
	today := domain.DateOnly(time.Now())
	if _, err := s.foodEntryRepository.DeleteEntriesByTemplateFrom(ctx, templateID, userID, today); err != nil {
		return err
	}
	if err := s.mealPlanRepository.DeleteTemplate(ctx, templateID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTemplateNotFound
		}
		return err
	}
	return nil
}

func (s *mealPlanService) ActivateTemplate(ctx context.Context, templateID string, userID string) error {
	template, err := s.mealPlanRepository.GetTemplateByID(ctx, templateID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTemplateNotFound
		}
		return err
	}

	if err := s.mealPlanRepository.ActivateTemplate(ctx, templateID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTemplateNotFound
		}
		return err
	}
	template.IsActive = true

	return s.materialize(ctx, template, domain.DateOnly(time.Now()))
}

func (s *mealPlanService) OnMealChanged(ctx context.Context, mealID string) error {
	templates, err := s.mealPlanRepository.GetActiveTemplatesByMealID(ctx, mealID)
	if err != nil {
		return err
	}

	today := domain.DateOnly(time.Now())
	for _, template := range templates {
		if err := s.resync(ctx, template, today); err != nil {
			return err
		}
	}
	return nil
}

// resync deletes the template's generated rows from effectiveFrom
// onward and, when the template is active, rebuilds them, all in one
// transaction. An inactive template only gets the purge.
func (s *mealPlanService) resync(ctx context.Context, template *entities.MealPlanTemplate, effectiveFrom time.Time) error {
	utils.TemplateResyncs.Inc()
	err := s.foodEntryRepository.Transaction(ctx, func(repo diary.FoodEntryRepository) error {
		if _, err := repo.DeleteEntriesByTemplateFrom(ctx, template.ID.String(), template.UserID.String(), effectiveFrom); err != nil {
			return err
		}
		if !template.IsActive {
			return nil
		}
		return s.materializeInto(ctx, repo, template, effectiveFrom)
	})
	if err != nil {
		return &domain.TransactionError{Err: err}
	}
	return nil
}

// materialize writes the template's diary rows for the window starting
// at effectiveFrom, in one transaction.
func (s *mealPlanService) materialize(ctx context.Context, template *entities.MealPlanTemplate, effectiveFrom time.Time) error {
	err := s.foodEntryRepository.Transaction(ctx, func(repo diary.FoodEntryRepository) error {
		return s.materializeInto(ctx, repo, template, effectiveFrom)
	})
	if err != nil {
		return &domain.TransactionError{Err: err}
	}
	return nil
}

func (s *mealPlanService) materializeInto(ctx context.Context, repo diary.FoodEntryRepository, template *entities.MealPlanTemplate, effectiveFrom time.Time) error {
	start := domain.DateOnly(template.StartDate)
	if effectiveFrom.After(start) {
		start = effectiveFrom
	}

	var end time.Time
	if template.EndDate != nil {
		end = domain.DateOnly(*template.EndDate)
	} else {
		end = start.AddDate(0, 0, openEndedHorizonDays)
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, assignment := range template.Assignments {
			if assignment.DayOfWeek != int(day.Weekday()) {
				continue
			}
			if err := s.materializeAssignment(ctx, repo, template, assignment, day); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *mealPlanService) materializeAssignment(ctx context.Context, repo diary.FoodEntryRepository, template *entities.MealPlanTemplate, assignment *entities.MealPlanTemplateAssignment, day time.Time) error {
	switch assignment.ItemType {
	case domain.ItemTypeMeal:
		if assignment.MealID == nil {
			return nil
		}
		m, err := s.mealRepository.GetMealByID(ctx, assignment.MealID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A deleted meal leaves a dangling assignment; the
				// rest of the plan still materializes.
				s.logger.Warn("skipping assignment with missing meal",
					zap.String("template_id", template.ID.String()),
					zap.String("meal_id", assignment.MealID.String()),
				)
				return nil
			}
			return err
		}
		for _, mf := range m.Foods {
			if err := s.insertIfAbsent(ctx, repo, template, assignment.MealType, day, mf.FoodID, mf.VariantID, mf.Quantity, mf.Unit); err != nil {
				return err
			}
		}
		return nil
	case domain.ItemTypeFood:
		if assignment.FoodID == nil {
			return nil
		}
		quantity := 1.0
		if assignment.Quantity != nil {
			quantity = *assignment.Quantity
		}
		unit := "serving"
		if assignment.Unit != nil {
			unit = *assignment.Unit
		}
		return s.insertIfAbsent(ctx, repo, template, assignment.MealType, day, *assignment.FoodID, assignment.VariantID, quantity, unit)
	default:
		return nil
	}
}

// insertIfAbsent applies the materialization dedupe rule: a row is
// written only when no entry with the same user, food, meal type, date
// and variant exists, so reruns never duplicate and user edits win.
func (s *mealPlanService) insertIfAbsent(ctx context.Context, repo diary.FoodEntryRepository, template *entities.MealPlanTemplate, mealType string, day time.Time, foodID uuid.UUID, variantID *uuid.UUID, quantity float64, unit string) error {
	var variantStr *string
	if variantID != nil {
		v := variantID.String()
		variantStr = &v
	}

	exists, err := repo.EntryExists(ctx, template.UserID.String(), foodID.String(), mealType, day, variantStr)
	if err != nil {
		return err
	}
	if exists {
		utils.EntriesSkipped.Inc()
		return nil
	}

	templateID := template.ID
	entry := &entities.FoodEntry{
		ID:                 uuid.New(),
		UserID:             template.UserID,
		FoodID:             foodID,
		VariantID:          variantID,
		MealType:           mealType,
		Quantity:           quantity,
		Unit:               unit,
		EntryDate:          day,
		MealPlanTemplateID: &templateID,
	}
	if err := repo.CreateFoodEntry(ctx, entry); err != nil {
		return err
	}
	utils.EntriesMaterialized.Inc()
	return nil
}

// applyTemplateRequest parses dates and rebuilds the assignment list,
// validating at write time that every referenced meal and food exists
// and is visible to the template owner.
func (s *mealPlanService) applyTemplateRequest(ctx context.Context, template *entities.MealPlanTemplate, req domain.MealPlanTemplateRequest, userID string) error {
	startDate, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return domain.NewValidationError("start_date", "must be a date in YYYY-MM-DD form")
	}
	template.StartDate = domain.DateOnly(startDate)

	template.EndDate = nil
	if req.EndDate != nil {
		endDate, err := domain.ParseDate(*req.EndDate)
		if err != nil {
			return domain.NewValidationError("end_date", "must be a date in YYYY-MM-DD form")
		}
		endDate = domain.DateOnly(endDate)
		if endDate.Before(template.StartDate) {
			return domain.ErrStartDateAfterEndDate
		}
		template.EndDate = &endDate
	}

	assignments := make([]*entities.MealPlanTemplateAssignment, 0, len(req.Assignments))
	for _, ar := range req.Assignments {
		assignment := &entities.MealPlanTemplateAssignment{
			ID:         uuid.New(),
			TemplateID: template.ID,
			DayOfWeek:  ar.DayOfWeek,
			MealType:   ar.MealType,
			ItemType:   ar.ItemType,
			Quantity:   ar.Quantity,
			Unit:       ar.Unit,
		}
		switch ar.ItemType {
		case domain.ItemTypeMeal:
			if ar.MealID == nil {
				return domain.NewValidationError("meal_id", "required for meal assignments")
			}
			id, err := uuid.Parse(*ar.MealID)
			if err != nil {
				return domain.ErrParseUUID
			}
			m, err := s.mealRepository.GetMealByID(ctx, id.String())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrMealNotFound
				}
				return err
			}
			if m.UserID.String() != userID && !m.IsPublic {
				return domain.ErrMealNotOwned
			}
			assignment.MealID = &id
		case domain.ItemTypeFood:
			if ar.FoodID == nil {
				return domain.NewValidationError("food_id", "required for food assignments")
			}
			id, err := uuid.Parse(*ar.FoodID)
			if err != nil {
				return domain.ErrParseUUID
			}
			food, err := s.mealRepository.GetFoodByID(ctx, id.String())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrFoodNotFound
				}
				return err
			}
			if !food.SharedWithPublic && (food.UserID == nil || food.UserID.String() != userID) {
				return domain.ErrFoodNotVisible
			}
			assignment.FoodID = &id
			if ar.VariantID != nil {
				vid, err := uuid.Parse(*ar.VariantID)
				if err != nil {
					return domain.ErrParseUUID
				}
				assignment.VariantID = &vid
			}
		default:
			return domain.NewValidationError("item_type", "must be meal or food")
		}
		assignments = append(assignments, assignment)
	}
	template.Assignments = assignments
	return nil
}
