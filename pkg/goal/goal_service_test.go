package goal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type fakeGoalRepository struct {
	pinned    map[string]*entities.UserGoal // keyed by date string
	cascading []*entities.UserGoal
	plans     []*entities.WeeklyGoalPlan

	upserted     []*entities.UserGoal
	deletedFrom  *time.Time
	deletedTo    *time.Time
	plansDeleted []string
}

func newFakeGoalRepository() *fakeGoalRepository {
	return &fakeGoalRepository{pinned: make(map[string]*entities.UserGoal)}
}

func (r *fakeGoalRepository) GetPinnedGoalByDate(ctx context.Context, userID string, date time.Time) (*entities.UserGoal, error) {
	g, ok := r.pinned[date.Format(domain.DateLayout)]
	if !ok {
		return nil, nil
	}
	return g, nil
}

func (r *fakeGoalRepository) GetLatestCascadingGoal(ctx context.Context, userID string, date time.Time, notBefore time.Time) (*entities.UserGoal, error) {
	var best *entities.UserGoal
	for _, g := range r.cascading {
		if g.GoalDate.After(date) || !g.GoalDate.After(notBefore) {
			continue
		}
		if best == nil || g.GoalDate.After(best.GoalDate) {
			best = g
		}
	}
	return best, nil
}

func (r *fakeGoalRepository) UpsertGoal(ctx context.Context, goal *entities.UserGoal) error {
	r.upserted = append(r.upserted, goal)
	return nil
}

func (r *fakeGoalRepository) DeleteGoalsInRange(ctx context.Context, userID string, from time.Time, to time.Time) error {
	r.deletedFrom = &from
	r.deletedTo = &to
	return nil
}

func (r *fakeGoalRepository) GetActiveWeeklyGoalPlan(ctx context.Context, userID string, date time.Time) (*entities.WeeklyGoalPlan, error) {
	for _, p := range r.plans {
		if !p.IsActive || p.StartDate.After(date) {
			continue
		}
		if p.EndDate != nil && p.EndDate.Before(date) {
			continue
		}
		return p, nil
	}
	return nil, nil
}

func (r *fakeGoalRepository) CreateWeeklyGoalPlan(ctx context.Context, plan *entities.WeeklyGoalPlan) error {
	if plan.IsActive {
		r.deactivateOtherPlans(plan.ID)
	}
	r.plans = append(r.plans, plan)
	return nil
}

func (r *fakeGoalRepository) GetWeeklyGoalPlansByUser(ctx context.Context, userID string) ([]*entities.WeeklyGoalPlan, error) {
	return r.plans, nil
}

func (r *fakeGoalRepository) GetWeeklyGoalPlanByID(ctx context.Context, id string, userID string) (*entities.WeeklyGoalPlan, error) {
	for _, p := range r.plans {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGoalRepository) UpdateWeeklyGoalPlan(ctx context.Context, plan *entities.WeeklyGoalPlan) error {
	if plan.IsActive {
		r.deactivateOtherPlans(plan.ID)
	}
	return nil
}

func (r *fakeGoalRepository) deactivateOtherPlans(exceptID uuid.UUID) {
	for _, p := range r.plans {
		if p.ID != exceptID {
			p.IsActive = false
		}
	}
}

func (r *fakeGoalRepository) DeleteWeeklyGoalPlan(ctx context.Context, id string, userID string) error {
	for i, p := range r.plans {
		if p.ID.String() == id {
			r.plans = append(r.plans[:i], r.plans[i+1:]...)
			r.plansDeleted = append(r.plansDeleted, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakePresetRepository struct {
	presets map[string]*entities.GoalPreset
}

func (r *fakePresetRepository) CreateGoalPreset(ctx context.Context, preset *entities.GoalPreset) error {
	return nil
}

func (r *fakePresetRepository) GetGoalPresetByID(ctx context.Context, id string, userID string) (*entities.GoalPreset, error) {
	p, ok := r.presets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePresetRepository) GetGoalPresetsByUser(ctx context.Context, userID string) ([]*entities.GoalPreset, error) {
	return nil, nil
}

func (r *fakePresetRepository) UpdateGoalPreset(ctx context.Context, preset *entities.GoalPreset) error {
	return nil
}

func (r *fakePresetRepository) DeleteGoalPreset(ctx context.Context, id string, userID string) error {
	return nil
}

// recordingCache keys entries by version and date, the same shape the
// redis cache uses, so the write-back key contract is observable.
type recordingCache struct {
	version       int
	entries       map[string]domain.GoalSet
	setKeys       []string
	invalidations int

	// onMiss runs after Get hands out its key and before the caller
	// writes back, standing in for a concurrent invalidation.
	onMiss func()
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string]domain.GoalSet)}
}

func (c *recordingCache) key(date time.Time) string {
	return fmt.Sprintf("%d:%s", c.version, date.Format(domain.DateLayout))
}

func (c *recordingCache) Get(ctx context.Context, userID string, date time.Time) (*domain.GoalSet, string, bool) {
	key := c.key(date)
	set, ok := c.entries[key]
	if !ok {
		if c.onMiss != nil {
			c.onMiss()
		}
		return nil, key, false
	}
	return &set, key, true
}

func (c *recordingCache) Set(ctx context.Context, key string, set domain.GoalSet) {
	c.entries[key] = set
	c.setKeys = append(c.setKeys, key)
}

func (c *recordingCache) InvalidateUser(ctx context.Context, userID string) {
	c.invalidations++
	c.version++
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := domain.ParseDate(s)
	require.NoError(t, err)
	return day
}

func targetsWithCalories(calories float64) entities.GoalTargets {
	t := domain.DefaultGoalTargets()
	t.Calories = calories
	return t
}

func TestResolveGoalsPinnedWins(t *testing.T) {
	repo := newFakeGoalRepository()
	userID := uuid.NewString()
	day := "2025-06-02"

	repo.pinned[day] = &entities.UserGoal{GoalTargets: targetsWithCalories(1800)}
	repo.cascading = append(repo.cascading, &entities.UserGoal{
		GoalDate:    mustDate(t, "2025-06-01"),
		Cascading:   true,
		GoalTargets: targetsWithCalories(2500),
	})

	service := NewGoalService(repo, &fakePresetRepository{}, nil)
	set, err := service.ResolveGoals(context.Background(), userID, day)

	require.NoError(t, err)
	assert.Equal(t, 1800.0, set.Calories)
}

func TestResolveGoalsWeeklyPlanSlot(t *testing.T) {
	repo := newFakeGoalRepository()
	presetID := uuid.New()
	presets := &fakePresetRepository{presets: map[string]*entities.GoalPreset{
		presetID.String(): {ID: presetID, GoalTargets: targetsWithCalories(2200)},
	}}

	// 2025-06-02 is a Monday
	repo.plans = append(repo.plans, &entities.WeeklyGoalPlan{
		ID:             uuid.New(),
		IsActive:       true,
		StartDate:      mustDate(t, "2025-01-01"),
		MondayPresetID: &presetID,
	})

	service := NewGoalService(repo, presets, nil)
	set, err := service.ResolveGoals(context.Background(), uuid.NewString(), "2025-06-02")

	require.NoError(t, err)
	assert.Equal(t, 2200.0, set.Calories)
}

func TestResolveGoalsDanglingPresetFallsThrough(t *testing.T) {
	repo := newFakeGoalRepository()
	deletedPresetID := uuid.New()
	repo.plans = append(repo.plans, &entities.WeeklyGoalPlan{
		ID:             uuid.New(),
		IsActive:       true,
		StartDate:      mustDate(t, "2025-01-01"),
		MondayPresetID: &deletedPresetID,
	})
	repo.cascading = append(repo.cascading, &entities.UserGoal{
		GoalDate:    mustDate(t, "2025-05-20"),
		Cascading:   true,
		GoalTargets: targetsWithCalories(2400),
	})

	service := NewGoalService(repo, &fakePresetRepository{presets: map[string]*entities.GoalPreset{}}, nil)
	set, err := service.ResolveGoals(context.Background(), uuid.NewString(), "2025-06-02")

	require.NoError(t, err)
	assert.Equal(t, 2400.0, set.Calories)
}

func TestResolveGoalsEmptyWeekdaySlotFallsThrough(t *testing.T) {
	repo := newFakeGoalRepository()
	presetID := uuid.New()
	repo.plans = append(repo.plans, &entities.WeeklyGoalPlan{
		ID:              uuid.New(),
		IsActive:        true,
		StartDate:       mustDate(t, "2025-01-01"),
		TuesdayPresetID: &presetID, // Monday slot empty
	})

	service := NewGoalService(repo, &fakePresetRepository{}, nil)
	set, err := service.ResolveGoals(context.Background(), uuid.NewString(), "2025-06-02")

	require.NoError(t, err)
	assert.Equal(t, 2000.0, set.Calories) // defaults
}

func TestResolveGoalsCascadeHorizon(t *testing.T) {
	repo := newFakeGoalRepository()
	repo.cascading = append(repo.cascading, &entities.UserGoal{
		GoalDate:    mustDate(t, "2024-11-01"),
		Cascading:   true,
		GoalTargets: targetsWithCalories(2600),
	})
	service := NewGoalService(repo, &fakePresetRepository{}, nil)

	// Inside the six month window the row still applies.
	set, err := service.ResolveGoals(context.Background(), uuid.NewString(), "2025-04-30")
	require.NoError(t, err)
	assert.Equal(t, 2600.0, set.Calories)

	// Past the window it no longer does.
	set, err = service.ResolveGoals(context.Background(), uuid.NewString(), "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, set.Calories)
}

func TestResolveGoalsDefaults(t *testing.T) {
	service := NewGoalService(newFakeGoalRepository(), &fakePresetRepository{}, nil)

	set, err := service.ResolveGoals(context.Background(), uuid.NewString(), "2025-06-02")

	require.NoError(t, err)
	assert.Equal(t, 2000.0, set.Calories)
	assert.Equal(t, 1920.0, set.WaterGoalML)
	assert.Equal(t, 25.0, set.BreakfastPercentage)
}

func TestResolveGoalsBadInput(t *testing.T) {
	service := NewGoalService(newFakeGoalRepository(), &fakePresetRepository{}, nil)

	_, err := service.ResolveGoals(context.Background(), "not-a-uuid", "2025-06-02")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "user_id", vErr.Field)

	_, err = service.ResolveGoals(context.Background(), uuid.NewString(), "02/06/2025")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date", vErr.Field)
}

func TestResolveGoalsUsesCache(t *testing.T) {
	repo := newFakeGoalRepository()
	cache := newRecordingCache()
	service := NewGoalService(repo, &fakePresetRepository{}, cache)

	first, err := service.ResolveGoals(context.Background(), uuid.NewString(), "2025-06-02")
	require.NoError(t, err)

	// Change underlying data; the cached answer should still come back.
	repo.pinned["2025-06-02"] = &entities.UserGoal{GoalTargets: targetsWithCalories(1500)}

	second, err := service.ResolveGoals(context.Background(), uuid.NewString(), "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, first.Calories, second.Calories)
}

func TestResolveGoalsInvalidationOrphansInFlightWrite(t *testing.T) {
	repo := newFakeGoalRepository()
	cache := newRecordingCache()
	service := NewGoalService(repo, &fakePresetRepository{}, cache)
	userID := uuid.NewString()

	// A goal write lands between the cache read and the write-back.
	cache.onMiss = func() {
		repo.pinned["2025-06-02"] = &entities.UserGoal{GoalTargets: targetsWithCalories(1500)}
		cache.InvalidateUser(context.Background(), userID)
	}
	set, err := service.ResolveGoals(context.Background(), userID, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, set.Calories)
	cache.onMiss = nil

	// The write-back went under the pre-invalidation key, so it can
	// never be read back under the bumped version.
	require.Len(t, cache.setKeys, 1)
	assert.Equal(t, "0:2025-06-02", cache.setKeys[0])

	set, err = service.ResolveGoals(context.Background(), userID, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, set.Calories)
}

func TestManageGoalTimelineCascadingClearsHorizon(t *testing.T) {
	repo := newFakeGoalRepository()
	cache := newRecordingCache()
	service := NewGoalService(repo, &fakePresetRepository{}, cache)

	start := time.Now().AddDate(0, 0, 1).Format(domain.DateLayout)
	req := domain.GoalTimelineRequest{StartDate: start, Cascade: true}
	req.Calories = 2100

	err := service.ManageGoalTimeline(context.Background(), req, uuid.NewString())
	require.NoError(t, err)

	require.NotNil(t, repo.deletedFrom)
	require.NotNil(t, repo.deletedTo)
	assert.Equal(t, repo.deletedFrom.AddDate(0, 6, 0), *repo.deletedTo)

	require.Len(t, repo.upserted, 1)
	assert.True(t, repo.upserted[0].Cascading)
	assert.Equal(t, 2100.0, repo.upserted[0].GoalTargets.Calories)
	assert.Equal(t, 1, cache.invalidations)
}

func TestManageGoalTimelinePastDateIsPinned(t *testing.T) {
	repo := newFakeGoalRepository()
	service := NewGoalService(repo, &fakePresetRepository{}, nil)

	req := domain.GoalTimelineRequest{StartDate: "2020-01-15", Cascade: true}
	req.Calories = 1700

	err := service.ManageGoalTimeline(context.Background(), req, uuid.NewString())
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.False(t, repo.upserted[0].Cascading)
	assert.Nil(t, repo.deletedFrom)
}

func TestManageGoalTimelineRejectsPartialMacros(t *testing.T) {
	service := NewGoalService(newFakeGoalRepository(), &fakePresetRepository{}, nil)

	pct := 30.0
	req := domain.GoalTimelineRequest{StartDate: "2025-06-02"}
	req.ProteinPercentage = &pct

	err := service.ManageGoalTimeline(context.Background(), req, uuid.NewString())
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCreateWeeklyGoalPlanActiveDeactivatesOthers(t *testing.T) {
	repo := newFakeGoalRepository()
	cache := newRecordingCache()
	existing := &entities.WeeklyGoalPlan{ID: uuid.New(), IsActive: true, StartDate: mustDate(t, "2025-01-01")}
	repo.plans = append(repo.plans, existing)

	service := NewGoalService(repo, &fakePresetRepository{}, cache)
	plan, err := service.CreateWeeklyGoalPlan(context.Background(), domain.WeeklyGoalPlanRequest{
		PlanName:  "cut week",
		StartDate: "2025-06-01",
		IsActive:  true,
	}, uuid.NewString())

	require.NoError(t, err)
	assert.True(t, plan.IsActive)
	assert.False(t, existing.IsActive)
	assert.Equal(t, 1, cache.invalidations)
}

func TestUpdateWeeklyGoalPlanActiveDeactivatesOthers(t *testing.T) {
	repo := newFakeGoalRepository()
	other := &entities.WeeklyGoalPlan{ID: uuid.New(), IsActive: true, StartDate: mustDate(t, "2025-01-01")}
	dormant := &entities.WeeklyGoalPlan{ID: uuid.New(), StartDate: mustDate(t, "2025-02-01")}
	repo.plans = append(repo.plans, other, dormant)

	service := NewGoalService(repo, &fakePresetRepository{}, nil)
	plan, err := service.UpdateWeeklyGoalPlan(context.Background(), dormant.ID.String(), domain.WeeklyGoalPlanRequest{
		PlanName:  "bulk week",
		StartDate: "2025-02-01",
		IsActive:  true,
	}, uuid.NewString())

	require.NoError(t, err)
	assert.True(t, plan.IsActive)
	assert.False(t, other.IsActive)
}

func TestWeeklyGoalPlanRejectsInvertedDates(t *testing.T) {
	service := NewGoalService(newFakeGoalRepository(), &fakePresetRepository{}, nil)

	end := "2025-05-01"
	_, err := service.CreateWeeklyGoalPlan(context.Background(), domain.WeeklyGoalPlanRequest{
		PlanName:  "backwards",
		StartDate: "2025-06-01",
		EndDate:   &end,
	}, uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrStartDateAfterEndDate)
}

func TestDeleteWeeklyGoalPlanNotFound(t *testing.T) {
	service := NewGoalService(newFakeGoalRepository(), &fakePresetRepository{}, nil)

	err := service.DeleteWeeklyGoalPlan(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrWeeklyGoalPlanNotFound)
}
