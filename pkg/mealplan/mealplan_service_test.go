package mealplan

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"github.com/upcubeinc/health.upcube.ai-sub001/pkg/diary"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeMealPlanRepository struct {
	templates map[string]*entities.MealPlanTemplate
}

func newFakeMealPlanRepository() *fakeMealPlanRepository {
	return &fakeMealPlanRepository{templates: make(map[string]*entities.MealPlanTemplate)}
}

func (r *fakeMealPlanRepository) CreateTemplate(ctx context.Context, template *entities.MealPlanTemplate) error {
	if template.IsActive {
		r.deactivateOthers(template.UserID.String(), template.ID.String())
	}
	r.templates[template.ID.String()] = template
	return nil
}

func (r *fakeMealPlanRepository) GetTemplateByID(ctx context.Context, id string, userID string) (*entities.MealPlanTemplate, error) {
	template, ok := r.templates[id]
	if !ok || template.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return template, nil
}

func (r *fakeMealPlanRepository) GetTemplatesByUser(ctx context.Context, userID string) ([]*entities.MealPlanTemplate, error) {
	var out []*entities.MealPlanTemplate
	for _, template := range r.templates {
		if template.UserID.String() == userID {
			out = append(out, template)
		}
	}
	return out, nil
}

func (r *fakeMealPlanRepository) GetActiveTemplatesByMealID(ctx context.Context, mealID string) ([]*entities.MealPlanTemplate, error) {
	var out []*entities.MealPlanTemplate
	for _, template := range r.templates {
		if !template.IsActive {
			continue
		}
		for _, a := range template.Assignments {
			if a.MealID != nil && a.MealID.String() == mealID {
				out = append(out, template)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeMealPlanRepository) UpdateTemplate(ctx context.Context, template *entities.MealPlanTemplate) error {
	if template.IsActive {
		r.deactivateOthers(template.UserID.String(), template.ID.String())
	}
	r.templates[template.ID.String()] = template
	return nil
}

func (r *fakeMealPlanRepository) ActivateTemplate(ctx context.Context, id string, userID string) error {
	template, ok := r.templates[id]
	if !ok || template.UserID.String() != userID {
		return gorm.ErrRecordNotFound
	}
	r.deactivateOthers(userID, id)
	template.IsActive = true
	return nil
}

func (r *fakeMealPlanRepository) deactivateOthers(userID string, exceptID string) {
	for _, template := range r.templates {
		if template.UserID.String() == userID && template.ID.String() != exceptID {
			template.IsActive = false
		}
	}
}

func (r *fakeMealPlanRepository) DeleteTemplate(ctx context.Context, id string, userID string) error {
	if _, ok := r.templates[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.templates, id)
	return nil
}

type fakeMealRepository struct {
	meals map[string]*entities.Meal
	foods map[string]*entities.Food
}

func (r *fakeMealRepository) CreateMeal(ctx context.Context, meal *entities.Meal) error { return nil }

func (r *fakeMealRepository) GetMealByID(ctx context.Context, id string) (*entities.Meal, error) {
	m, ok := r.meals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMealRepository) GetMealsByUser(ctx context.Context, userID string) ([]*entities.Meal, error) {
	return nil, nil
}

func (r *fakeMealRepository) UpdateMeal(ctx context.Context, meal *entities.Meal) error { return nil }

func (r *fakeMealRepository) ReplaceMealFoods(ctx context.Context, mealID string, foods []*entities.MealFood) error {
	return nil
}

func (r *fakeMealRepository) DeleteMeal(ctx context.Context, id string, userID string) error {
	return nil
}

func (r *fakeMealRepository) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	f, ok := r.foods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

type fakeFoodEntryRepository struct {
	entries []*entities.FoodEntry
}

func (r *fakeFoodEntryRepository) CreateFoodEntry(ctx context.Context, entry *entities.FoodEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeFoodEntryRepository) EntryExists(ctx context.Context, userID string, foodID string, mealType string, date time.Time, variantID *string) (bool, error) {
	for _, e := range r.entries {
		if e.UserID.String() != userID || e.FoodID.String() != foodID || e.MealType != mealType || !e.EntryDate.Equal(date) {
			continue
		}
		switch {
		case variantID == nil && e.VariantID == nil:
			return true, nil
		case variantID != nil && e.VariantID != nil && e.VariantID.String() == *variantID:
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFoodEntryRepository) GetFoodEntriesByDate(ctx context.Context, userID string, date time.Time) ([]*entities.FoodEntry, error) {
	var out []*entities.FoodEntry
	for _, e := range r.entries {
		if e.UserID.String() == userID && e.EntryDate.Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeFoodEntryRepository) DeleteFoodEntry(ctx context.Context, id string, userID string) error {
	for i, e := range r.entries {
		if e.ID.String() == id && e.UserID.String() == userID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeFoodEntryRepository) DeleteEntriesByTemplateFrom(ctx context.Context, templateID string, userID string, from time.Time) (int64, error) {
	var kept []*entities.FoodEntry
	var removed int64
	for _, e := range r.entries {
		if e.MealPlanTemplateID != nil && e.MealPlanTemplateID.String() == templateID &&
			e.UserID.String() == userID && !e.EntryDate.Before(from) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

func (r *fakeFoodEntryRepository) Transaction(ctx context.Context, fn func(repo diary.FoodEntryRepository) error) error {
	return fn(r)
}

func (r *fakeFoodEntryRepository) generatedCount(templateID string) int {
	n := 0
	for _, e := range r.entries {
		if e.MealPlanTemplateID != nil && e.MealPlanTemplateID.String() == templateID {
			n++
		}
	}
	return n
}

type planFixture struct {
	service   MealPlanService
	plans     *fakeMealPlanRepository
	meals     *fakeMealRepository
	entries   *fakeFoodEntryRepository
	userID    uuid.UUID
	mealID    uuid.UUID
	foodA     uuid.UUID
	foodB     uuid.UUID
	soloFood  uuid.UUID
	startDate time.Time
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()

	f := &planFixture{
		plans: newFakeMealPlanRepository(),
		meals: &fakeMealRepository{
			meals: make(map[string]*entities.Meal),
			foods: make(map[string]*entities.Food),
		},
		entries:  &fakeFoodEntryRepository{},
		userID:   uuid.New(),
		mealID:   uuid.New(),
		foodA:    uuid.New(),
		foodB:    uuid.New(),
		soloFood: uuid.New(),
	}
	f.startDate = domain.DateOnly(time.Now())
	f.meals.foods[f.soloFood.String()] = &entities.Food{
		ID:     f.soloFood,
		UserID: &f.userID,
		Name:   "banana",
	}

	f.meals.meals[f.mealID.String()] = &entities.Meal{
		ID:     f.mealID,
		UserID: f.userID,
		Name:   "overnight oats",
		Foods: []*entities.MealFood{
			{FoodID: f.foodA, Quantity: 80, Unit: "g", Position: 0},
			{FoodID: f.foodB, Quantity: 250, Unit: "ml", Position: 1},
		},
	}

	f.service = NewMealPlanService(f.plans, f.meals, f.entries, zap.NewNop())
	return f
}

// weekAssignments pins the meal to every weekday so any 7 day window
// materializes the same number of rows.
func (f *planFixture) weekAssignments(itemType string) []domain.TemplateAssignmentRequest {
	var out []domain.TemplateAssignmentRequest
	mealID := f.mealID.String()
	foodID := f.soloFood.String()
	qty := 1.5
	unit := "cup"
	for day := 0; day < 7; day++ {
		a := domain.TemplateAssignmentRequest{
			DayOfWeek: day,
			MealType:  domain.MealTypeBreakfast,
			ItemType:  itemType,
		}
		if itemType == domain.ItemTypeMeal {
			a.MealID = &mealID
		} else {
			a.FoodID = &foodID
			a.Quantity = &qty
			a.Unit = &unit
		}
		out = append(out, a)
	}
	return out
}

func (f *planFixture) templateRequest(t *testing.T, days int, itemType string) domain.MealPlanTemplateRequest {
	t.Helper()
	end := f.startDate.AddDate(0, 0, days-1).Format(domain.DateLayout)
	return domain.MealPlanTemplateRequest{
		PlanName:    "weekday rotation",
		StartDate:   f.startDate.Format(domain.DateLayout),
		EndDate:     &end,
		IsActive:    true,
		Assignments: f.weekAssignments(itemType),
	}
}

func TestCreateActiveTemplateMaterializesMealEntries(t *testing.T) {
	f := newPlanFixture(t)

	template, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeMeal), f.userID.String())
	require.NoError(t, err)

	// 7 days, 2 foods in the meal per day.
	assert.Equal(t, 14, f.entries.generatedCount(template.ID.String()))
	for _, e := range f.entries.entries {
		assert.Equal(t, domain.MealTypeBreakfast, e.MealType)
		require.NotNil(t, e.MealPlanTemplateID)
		assert.Equal(t, template.ID, *e.MealPlanTemplateID)
	}
}

func TestCreateActiveTemplateMaterializesFoodEntries(t *testing.T) {
	f := newPlanFixture(t)

	template, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 3, domain.ItemTypeFood), f.userID.String())
	require.NoError(t, err)

	require.Equal(t, 3, f.entries.generatedCount(template.ID.String()))
	assert.Equal(t, 1.5, f.entries.entries[0].Quantity)
	assert.Equal(t, "cup", f.entries.entries[0].Unit)
}

func TestCreateInactiveTemplateWritesNothing(t *testing.T) {
	f := newPlanFixture(t)
	req := f.templateRequest(t, 7, domain.ItemTypeMeal)
	req.IsActive = false

	_, err := f.service.CreateTemplate(context.Background(), req, f.userID.String())
	require.NoError(t, err)

	assert.Empty(t, f.entries.entries)
}

func TestMaterializationIsIdempotent(t *testing.T) {
	f := newPlanFixture(t)

	template, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeMeal), f.userID.String())
	require.NoError(t, err)
	require.Equal(t, 14, f.entries.generatedCount(template.ID.String()))

	// Activating again reruns materialization over the same window.
	err = f.service.ActivateTemplate(context.Background(), template.ID.String(), f.userID.String())
	require.NoError(t, err)

	assert.Equal(t, 14, f.entries.generatedCount(template.ID.String()))
}

func TestMaterializationSkipsManualDuplicate(t *testing.T) {
	f := newPlanFixture(t)

	// User already logged food A for breakfast today by hand.
	manual := &entities.FoodEntry{
		ID:        uuid.New(),
		UserID:    f.userID,
		FoodID:    f.foodA,
		MealType:  domain.MealTypeBreakfast,
		Quantity:  999,
		Unit:      "g",
		EntryDate: f.startDate,
	}
	f.entries.entries = append(f.entries.entries, manual)

	template, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 1, domain.ItemTypeMeal), f.userID.String())
	require.NoError(t, err)

	// Only food B was inserted; the manual row stands untouched.
	assert.Equal(t, 1, f.entries.generatedCount(template.ID.String()))
	assert.Equal(t, 999.0, manual.Quantity)
}

func TestMaterializationSkipsDanglingMeal(t *testing.T) {
	f := newPlanFixture(t)

	req := f.templateRequest(t, 7, domain.ItemTypeMeal)
	req.IsActive = false
	template, err := f.service.CreateTemplate(context.Background(), req, f.userID.String())
	require.NoError(t, err)

	// The meal disappears after the template was saved.
	delete(f.meals.meals, f.mealID.String())

	err = f.service.ActivateTemplate(context.Background(), template.ID.String(), f.userID.String())
	require.NoError(t, err)

	assert.Zero(t, f.entries.generatedCount(template.ID.String()))
}

func TestTemplateRejectsForeignReferences(t *testing.T) {
	f := newPlanFixture(t)

	// Food owned by someone else and not shared.
	strangerFood := uuid.New()
	stranger := uuid.New()
	f.meals.foods[strangerFood.String()] = &entities.Food{ID: strangerFood, UserID: &stranger}

	req := f.templateRequest(t, 7, domain.ItemTypeFood)
	foreign := strangerFood.String()
	req.Assignments[0].FoodID = &foreign
	_, err := f.service.CreateTemplate(context.Background(), req, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrFoodNotVisible)

	// Unknown meal reference fails at write time.
	req = f.templateRequest(t, 7, domain.ItemTypeMeal)
	unknown := uuid.NewString()
	req.Assignments[0].MealID = &unknown
	_, err = f.service.CreateTemplate(context.Background(), req, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrMealNotFound)
}

func TestOpenEndedTemplateHasBoundedWindow(t *testing.T) {
	f := newPlanFixture(t)
	req := f.templateRequest(t, 7, domain.ItemTypeFood)
	req.EndDate = nil

	template, err := f.service.CreateTemplate(context.Background(), req, f.userID.String())
	require.NoError(t, err)

	// 91 days inclusive, one slot per day.
	assert.Equal(t, 91, f.entries.generatedCount(template.ID.String()))
}

func TestUpdateTemplateResyncsFutureEntries(t *testing.T) {
	f := newPlanFixture(t)

	template, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeMeal), f.userID.String())
	require.NoError(t, err)
	require.Equal(t, 14, f.entries.generatedCount(template.ID.String()))

	// Switch the plan to a single food slot per day.
	updated, err := f.service.UpdateTemplate(context.Background(), template.ID.String(), f.templateRequest(t, 7, domain.ItemTypeFood), f.userID.String())
	require.NoError(t, err)

	assert.Equal(t, 7, f.entries.generatedCount(updated.ID.String()))
}

func TestUpdateTemplateToInactivePurgesFutureEntries(t *testing.T) {
	f := newPlanFixture(t)

	template, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeMeal), f.userID.String())
	require.NoError(t, err)
	require.Equal(t, 14, f.entries.generatedCount(template.ID.String()))

	// Switching the plan off removes its future generated rows even
	// though nothing gets rebuilt.
	req := f.templateRequest(t, 7, domain.ItemTypeFood)
	req.IsActive = false
	updated, err := f.service.UpdateTemplate(context.Background(), template.ID.String(), req, f.userID.String())
	require.NoError(t, err)

	assert.False(t, updated.IsActive)
	assert.Zero(t, f.entries.generatedCount(template.ID.String()))
}

func TestUpdateTemplateEffectiveFromPreservesHistory(t *testing.T) {
	f := newPlanFixture(t)

	template, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeFood), f.userID.String())
	require.NoError(t, err)
	require.Equal(t, 7, f.entries.generatedCount(template.ID.String()))

	// Resync from day 3 on: the first three generated days survive.
	req := f.templateRequest(t, 7, domain.ItemTypeFood)
	effective := f.startDate.AddDate(0, 0, 3).Format(domain.DateLayout)
	req.EffectiveFrom = &effective

	_, err = f.service.UpdateTemplate(context.Background(), template.ID.String(), req, f.userID.String())
	require.NoError(t, err)

	assert.Equal(t, 7, f.entries.generatedCount(template.ID.String()))
	preserved := 0
	for _, e := range f.entries.entries {
		if e.EntryDate.Before(f.startDate.AddDate(0, 0, 3)) {
			preserved++
		}
	}
	assert.Equal(t, 3, preserved)
}

func TestDeleteTemplateRemovesFutureGeneratedEntries(t *testing.T) {
	f := newPlanFixture(t)

	template, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeFood), f.userID.String())
	require.NoError(t, err)

	// A manual row on the same dates must survive the delete.
	manual := &entities.FoodEntry{
		ID:        uuid.New(),
		UserID:    f.userID,
		FoodID:    uuid.New(),
		MealType:  domain.MealTypeLunch,
		EntryDate: f.startDate,
	}
	f.entries.entries = append(f.entries.entries, manual)

	err = f.service.DeleteTemplate(context.Background(), template.ID.String(), f.userID.String())
	require.NoError(t, err)

	assert.Zero(t, f.entries.generatedCount(template.ID.String()))
	require.Len(t, f.entries.entries, 1)
	assert.Equal(t, manual.ID, f.entries.entries[0].ID)
}

func TestActivateTemplateDeactivatesOthers(t *testing.T) {
	f := newPlanFixture(t)

	first, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeFood), f.userID.String())
	require.NoError(t, err)

	second, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeMeal), f.userID.String())
	require.NoError(t, err)

	assert.False(t, f.plans.templates[first.ID.String()].IsActive)
	assert.True(t, f.plans.templates[second.ID.String()].IsActive)

	err = f.service.ActivateTemplate(context.Background(), first.ID.String(), f.userID.String())
	require.NoError(t, err)

	assert.True(t, f.plans.templates[first.ID.String()].IsActive)
	assert.False(t, f.plans.templates[second.ID.String()].IsActive)
}

func TestOnMealChangedResyncsOnlyActiveTemplates(t *testing.T) {
	f := newPlanFixture(t)

	active, err := f.service.CreateTemplate(context.Background(), f.templateRequest(t, 7, domain.ItemTypeMeal), f.userID.String())
	require.NoError(t, err)

	inactiveReq := f.templateRequest(t, 7, domain.ItemTypeMeal)
	inactiveReq.IsActive = false
	inactive, err := f.service.CreateTemplate(context.Background(), inactiveReq, f.userID.String())
	require.NoError(t, err)

	// Shrink the meal to a single food and propagate.
	f.meals.meals[f.mealID.String()].Foods = f.meals.meals[f.mealID.String()].Foods[:1]
	err = f.service.OnMealChanged(context.Background(), f.mealID.String())
	require.NoError(t, err)

	assert.Equal(t, 7, f.entries.generatedCount(active.ID.String()))
	assert.Zero(t, f.entries.generatedCount(inactive.ID.String()))
}

func TestTemplateRequestValidation(t *testing.T) {
	f := newPlanFixture(t)

	req := f.templateRequest(t, 7, domain.ItemTypeMeal)
	req.StartDate = "junk"
	_, err := f.service.CreateTemplate(context.Background(), req, f.userID.String())
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	req = f.templateRequest(t, 7, domain.ItemTypeMeal)
	end := "2020-01-01"
	req.EndDate = &end
	_, err = f.service.CreateTemplate(context.Background(), req, f.userID.String())
	assert.ErrorIs(t, err, domain.ErrStartDateAfterEndDate)

	req = f.templateRequest(t, 7, domain.ItemTypeMeal)
	req.Assignments[0].MealID = nil
	_, err = f.service.CreateTemplate(context.Background(), req, f.userID.String())
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "meal_id", vErr.Field)

	// An unrecognized item type is rejected, not stored as an empty
	// assignment materialization would silently skip.
	req = f.templateRequest(t, 7, domain.ItemTypeMeal)
	req.Assignments[0].ItemType = "supplement"
	_, err = f.service.CreateTemplate(context.Background(), req, f.userID.String())
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "item_type", vErr.Field)
}

func TestGetTemplateNotFound(t *testing.T) {
	f := newPlanFixture(t)

	_, err := f.service.GetTemplate(context.Background(), uuid.NewString(), f.userID.String())
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}
