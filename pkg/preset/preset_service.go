package preset

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type (
	GoalPresetService interface {
		CreateGoalPreset(ctx context.Context, req domain.GoalPresetRequest, userID string) (*entities.GoalPreset, error)
		GetGoalPresets(ctx context.Context, userID string) ([]*entities.GoalPreset, error)
		GetGoalPreset(ctx context.Context, presetID string, userID string) (*entities.GoalPreset, error)
		UpdateGoalPreset(ctx context.Context, presetID string, req domain.GoalPresetRequest, userID string) (*entities.GoalPreset, error)
		DeleteGoalPreset(ctx context.Context, presetID string, userID string) error
	}

	// ResolutionInvalidator drops cached goal resolutions for a user.
	// Preset edits can change the effective answer for any date an
	// active weekly plan covers, so the whole user is invalidated.
	ResolutionInvalidator interface {
		InvalidateUser(ctx context.Context, userID string)
	}

	goalPresetService struct {
		presetRepository GoalPresetRepository
		invalidator      ResolutionInvalidator
	}
)

func NewGoalPresetService(presetRepository GoalPresetRepository, invalidator ResolutionInvalidator) GoalPresetService {
	return &goalPresetService{
		presetRepository: presetRepository,
		invalidator:      invalidator,
	}
}

func validatePresetTargets(targets *entities.GoalTargets) error {
	if err := domain.ValidateMacroPercentages(targets.ProteinPercentage, targets.CarbsPercentage, targets.FatPercentage); err != nil {
		return err
	}
	if err := domain.ValidateMealDistribution(targets.BreakfastPercentage, targets.LunchPercentage, targets.DinnerPercentage, targets.SnacksPercentage); err != nil {
		return err
	}
	domain.NormalizeMacros(targets)
	return nil
}

func (s *goalPresetService) CreateGoalPreset(ctx context.Context, req domain.GoalPresetRequest, userID string) (*entities.GoalPreset, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	targets := req.Targets()
	if err := validatePresetTargets(&targets); err != nil {
		return nil, err
	}

	preset := &entities.GoalPreset{
		ID:          uuid.New(),
		UserID:      userUUID,
		PresetName:  req.PresetName,
		GoalTargets: targets,
	}

	if err := s.presetRepository.CreateGoalPreset(ctx, preset); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return preset, nil
}

func (s *goalPresetService) GetGoalPresets(ctx context.Context, userID string) ([]*entities.GoalPreset, error) {
	return s.presetRepository.GetGoalPresetsByUser(ctx, userID)
}

func (s *goalPresetService) GetGoalPreset(ctx context.Context, presetID string, userID string) (*entities.GoalPreset, error) {
	preset, err := s.presetRepository.GetGoalPresetByID(ctx, presetID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGoalPresetNotFound
		}
		return nil, err
	}
	return preset, nil
}

func (s *goalPresetService) UpdateGoalPreset(ctx context.Context, presetID string, req domain.GoalPresetRequest, userID string) (*entities.GoalPreset, error) {
	preset, err := s.presetRepository.GetGoalPresetByID(ctx, presetID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGoalPresetNotFound
		}
		return nil, err
	}

	targets := req.Targets()
	if err := validatePresetTargets(&targets); err != nil {
		return nil, err
	}

	preset.PresetName = req.PresetName
	preset.GoalTargets = targets

	if err := s.presetRepository.UpdateGoalPreset(ctx, preset); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return preset, nil
}

func (s *goalPresetService) DeleteGoalPreset(ctx context.Context, presetID string, userID string) error {
	if err := s.presetRepository.DeleteGoalPreset(ctx, presetID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGoalPresetNotFound
		}
		return err
	}

	// Weekly plan slots may still name the deleted preset; resolution
	// treats the dangling id as an empty slot.
	s.invalidate(ctx, userID)
	return nil
}

func (s *goalPresetService) invalidate(ctx context.Context, userID string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateUser(ctx, userID)
	}
}
