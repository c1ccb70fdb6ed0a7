package goal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"github.com/upcubeinc/health.upcube.ai-sub001/internal/utils"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/preset"
	"gorm.io/gorm"
)

// cascadeHorizonMonths bounds how far a cascading goal row fills
// forward: a row older than this no longer applies and resolution
// falls through to the built-in defaults.
const cascadeHorizonMonths = 6

type (
	GoalService interface {
		ResolveGoals(ctx context.Context, userID string, date string) (domain.GoalSet, error)
		ManageGoalTimeline(ctx context.Context, req domain.GoalTimelineRequest, userID string) error

		CreateWeeklyGoalPlan(ctx context.Context, req domain.WeeklyGoalPlanRequest, userID string) (*entities.WeeklyGoalPlan, error)
		GetWeeklyGoalPlans(ctx context.Context, userID string) ([]*entities.WeeklyGoalPlan, error)
		UpdateWeeklyGoalPlan(ctx context.Context, planID string, req domain.WeeklyGoalPlanRequest, userID string) (*entities.WeeklyGoalPlan, error)
		DeleteWeeklyGoalPlan(ctx context.Context, planID string, userID string) error
	}

	// GoalCache memoizes resolved goal sets per (user, date). A nil
	// cache disables memoization; correctness never depends on it.
	// Get returns the write-back key alongside a miss, so the value is
	// stored under the version seen before resolution; an invalidation
	// in between orphans the write instead of reviving it. An empty
	// key means the cache is unusable for this resolution.
	GoalCache interface {
		Get(ctx context.Context, userID string, date time.Time) (*domain.GoalSet, string, bool)
		Set(ctx context.Context, key string, set domain.GoalSet)
		InvalidateUser(ctx context.Context, userID string)
	}

	goalService struct {
		goalRepository   GoalRepository
		presetRepository preset.GoalPresetRepository
		cache            GoalCache
	}
)

func NewGoalService(goalRepository GoalRepository, presetRepository preset.GoalPresetRepository, cache GoalCache) GoalService {
	return &goalService{
		goalRepository:   goalRepository,
		presetRepository: presetRepository,
		cache:            cache,
	}
}

// ResolveGoals computes the effective goal set for one user and date.
// Precedence, first match wins: pinned per-date row, active weekly
// plan slot, latest cascading row within the horizon, built-in
// defaults. Missing data at any tier falls through; only malformed
// input fails.
func (s *goalService) ResolveGoals(ctx context.Context, userID string, date string) (domain.GoalSet, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.GoalSet{}, domain.NewValidationError("user_id", "must be a valid UUID")
	}
	day, err := domain.ParseDate(date)
	if err != nil {
		return domain.GoalSet{}, domain.NewValidationError("date", "must be a date in YYYY-MM-DD form")
	}
	day = domain.DateOnly(day)

	var cacheKey string
	if s.cache != nil {
		cached, key, ok := s.cache.Get(ctx, userID, day)
		if ok {
			utils.GoalCacheHits.Inc()
			return *cached, nil
		}
		utils.GoalCacheMisses.Inc()
		cacheKey = key
	}

	targets, err := s.resolveTiers(ctx, userID, day)
	if err != nil {
		return domain.GoalSet{}, err
	}

	set := domain.GoalSetFromTargets(targets)
	if s.cache != nil && cacheKey != "" {
		s.cache.Set(ctx, cacheKey, set)
	}
	return set, nil
}

// resolveTiers holds the precedence order in one place so it stays a
// deliberate, easily adjusted decision.
func (s *goalService) resolveTiers(ctx context.Context, userID string, day time.Time) (entities.GoalTargets, error) {
	pinned, err := s.goalRepository.GetPinnedGoalByDate(ctx, userID, day)
	if err != nil {
		return entities.GoalTargets{}, err
	}
	if pinned != nil {
		return pinned.GoalTargets, nil
	}

	plan, err := s.goalRepository.GetActiveWeeklyGoalPlan(ctx, userID, day)
	if err != nil {
		return entities.GoalTargets{}, err
	}
	if plan != nil {
		if presetID := plan.PresetIDForWeekday(day.Weekday()); presetID != nil {
			p, err := s.presetRepository.GetGoalPresetByID(ctx, presetID.String(), userID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return entities.GoalTargets{}, err
			}
			// A deleted preset leaves a dangling slot; treat it as
			// empty and keep falling through.
			if p != nil {
				return p.GoalTargets, nil
			}
		}
	}

	notBefore := day.AddDate(0, -cascadeHorizonMonths, 0)
	cascading, err := s.goalRepository.GetLatestCascadingGoal(ctx, userID, day, notBefore)
	if err != nil {
		return entities.GoalTargets{}, err
	}
	if cascading != nil {
		return cascading.GoalTargets, nil
	}

	return domain.DefaultGoalTargets(), nil
}

// ManageGoalTimeline writes one per-date goal row. Non-cascading
// requests, and edits to past dates, pin the row to its exact date.
// Cascading requests first clear the superseded horizon so the new row
// becomes the fill-forward baseline.
func (s *goalService) ManageGoalTimeline(ctx context.Context, req domain.GoalTimelineRequest, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	startDate, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return domain.NewValidationError("start_date", "must be a date in YYYY-MM-DD form")
	}
	startDate = domain.DateOnly(startDate)

	targets := req.Targets()
	if err := domain.ValidateMacroPercentages(targets.ProteinPercentage, targets.CarbsPercentage, targets.FatPercentage); err != nil {
		return err
	}
	if err := domain.ValidateMealDistribution(targets.BreakfastPercentage, targets.LunchPercentage, targets.DinnerPercentage, targets.SnacksPercentage); err != nil {
		return err
	}
	domain.NormalizeMacros(&targets)

	today := domain.DateOnly(time.Now())
	goalRow := &entities.UserGoal{
		ID:          uuid.New(),
		UserID:      userUUID,
		GoalDate:    startDate,
		Cascading:   req.Cascade && !startDate.Before(today),
		GoalTargets: targets,
	}

	if goalRow.Cascading {
		horizon := startDate.AddDate(0, cascadeHorizonMonths, 0)
		if err := s.goalRepository.DeleteGoalsInRange(ctx, userID, startDate, horizon); err != nil {
			return err
		}
	}
	if err := s.goalRepository.UpsertGoal(ctx, goalRow); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *goalService) CreateWeeklyGoalPlan(ctx context.Context, req domain.WeeklyGoalPlanRequest, userID string) (*entities.WeeklyGoalPlan, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	plan := &entities.WeeklyGoalPlan{
		ID:       uuid.New(),
		UserID:   userUUID,
		PlanName: req.PlanName,
		IsActive: req.IsActive,
	}
	if err := s.applyWeeklyPlanRequest(plan, req); err != nil {
		return nil, err
	}

	if err := s.goalRepository.CreateWeeklyGoalPlan(ctx, plan); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return plan, nil
}

func (s *goalService) GetWeeklyGoalPlans(ctx context.Context, userID string) ([]*entities.WeeklyGoalPlan, error) {
	return s.goalRepository.GetWeeklyGoalPlansByUser(ctx, userID)
}

func (s *goalService) UpdateWeeklyGoalPlan(ctx context.Context, planID string, req domain.WeeklyGoalPlanRequest, userID string) (*entities.WeeklyGoalPlan, error) {
	plan, err := s.goalRepository.GetWeeklyGoalPlanByID(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWeeklyGoalPlanNotFound
		}
		return nil, err
	}

	plan.PlanName = req.PlanName
	plan.IsActive = req.IsActive
	if err := s.applyWeeklyPlanRequest(plan, req); err != nil {
		return nil, err
	}

	if err := s.goalRepository.UpdateWeeklyGoalPlan(ctx, plan); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return plan, nil
}

func (s *goalService) DeleteWeeklyGoalPlan(ctx context.Context, planID string, userID string) error {
	if err := s.goalRepository.DeleteWeeklyGoalPlan(ctx, planID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrWeeklyGoalPlanNotFound
		}
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *goalService) applyWeeklyPlanRequest(plan *entities.WeeklyGoalPlan, req domain.WeeklyGoalPlanRequest) error {
	startDate, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return domain.NewValidationError("start_date", "must be a date in YYYY-MM-DD form")
	}
	plan.StartDate = domain.DateOnly(startDate)

	plan.EndDate = nil
	if req.EndDate != nil {
		endDate, err := domain.ParseDate(*req.EndDate)
		if err != nil {
			return domain.NewValidationError("end_date", "must be a date in YYYY-MM-DD form")
		}
		endDate = domain.DateOnly(endDate)
		if endDate.Before(plan.StartDate) {
			return domain.ErrStartDateAfterEndDate
		}
		plan.EndDate = &endDate
	}

	slots := []struct {
		raw  *string
		dest **uuid.UUID
	}{
		{req.SundayPresetID, &plan.SundayPresetID},
		{req.MondayPresetID, &plan.MondayPresetID},
		{req.TuesdayPresetID, &plan.TuesdayPresetID},
		{req.WednesdayPresetID, &plan.WednesdayPresetID},
		{req.ThursdayPresetID, &plan.ThursdayPresetID},
		{req.FridayPresetID, &plan.FridayPresetID},
		{req.SaturdayPresetID, &plan.SaturdayPresetID},
	}
	for _, slot := range slots {
		*slot.dest = nil
		if slot.raw == nil {
			continue
		}
		id, err := uuid.Parse(*slot.raw)
		if err != nil {
			return domain.ErrParseUUID
		}
		*slot.dest = &id
	}
	return nil
}

func (s *goalService) invalidate(ctx context.Context, userID string) {
	if s.cache != nil {
		s.cache.InvalidateUser(ctx, userID)
	}
}
