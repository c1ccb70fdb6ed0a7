package diary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upcubeinc/health.upcube.ai-sub001/domain"
	"github.com/upcubeinc/health.upcube.ai-sub001/entities"
	"gorm.io/gorm"
)

type fakeFoodEntryRepository struct {
	entries []*entities.FoodEntry
}

func (r *fakeFoodEntryRepository) CreateFoodEntry(ctx context.Context, entry *entities.FoodEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeFoodEntryRepository) EntryExists(ctx context.Context, userID string, foodID string, mealType string, date time.Time, variantID *string) (bool, error) {
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
	return 0, nil
}

func (r *fakeFoodEntryRepository) Transaction(ctx context.Context, fn func(repo FoodEntryRepository) error) error {
	return fn(r)
}

func TestAddFoodEntry(t *testing.T) {
	repo := &fakeFoodEntryRepository{}
	service := NewFoodEntryService(repo)
	userID := uuid.NewString()

	entry, err := service.AddFoodEntry(context.Background(), domain.AddFoodEntryRequest{
		FoodID:    uuid.NewString(),
		MealType:  domain.MealTypeLunch,
		Quantity:  150,
		Unit:      "g",
		EntryDate: "2025-06-02",
	}, userID)

	require.NoError(t, err)
	assert.Nil(t, entry.MealPlanTemplateID)
	assert.Equal(t, domain.MealTypeLunch, entry.MealType)
	assert.Equal(t, "2025-06-02", entry.EntryDate.Format(domain.DateLayout))
	assert.Len(t, repo.entries, 1)
}

func TestAddFoodEntryBadDate(t *testing.T) {
	service := NewFoodEntryService(&fakeFoodEntryRepository{})

	_, err := service.AddFoodEntry(context.Background(), domain.AddFoodEntryRequest{
		FoodID:    uuid.NewString(),
		MealType:  domain.MealTypeLunch,
		Quantity:  150,
		Unit:      "g",
		EntryDate: "June 2nd",
	}, uuid.NewString())

	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGetFoodEntriesFiltersByDate(t *testing.T) {
	repo := &fakeFoodEntryRepository{}
	service := NewFoodEntryService(repo)
	userID := uuid.NewString()

	for _, date := range []string{"2025-06-01", "2025-06-02", "2025-06-02"} {
		_, err := service.AddFoodEntry(context.Background(), domain.AddFoodEntryRequest{
			FoodID:    uuid.NewString(),
			MealType:  domain.MealTypeDinner,
			Quantity:  1,
			Unit:      "serving",
			EntryDate: date,
		}, userID)
		require.NoError(t, err)
	}

	entries, err := service.GetFoodEntries(context.Background(), userID, "2025-06-02")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDeleteFoodEntryNotFound(t *testing.T) {
	service := NewFoodEntryService(&fakeFoodEntryRepository{})

	err := service.DeleteFoodEntry(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrFoodEntryNotFound)
}
