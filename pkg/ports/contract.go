package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	sample := func(location string) *domain.Result {
		r := &domain.Result{
			Location:        location,
			UserPrefs:       domain.Prefs{"duration": 2},
			Attractions:     []domain.Attraction{{Name: "Pier", Description: "Walk", Category: "Outdoor"}},
			Foods:           []domain.Food{{Name: "Taco", Description: "Street", Type: "Snack"}},
			Itinerary:       []domain.DayPlan{{Day: 1, Activities: []domain.Activity{{Time: "9:00 AM", Item: "Pier", Details: "Walk"}}}},
			Narration:       []string{"Day one."},
			EvaluationScore: 7.5,
		}
		r.Normalize()
		return r
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, runID, sample("Lisbon"))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "Lisbon", loaded.Location)
		assert.Equal(t, 7.5, loaded.EvaluationScore)
		require.Len(t, loaded.Itinerary, 1)
		assert.Equal(t, "Pier", loaded.Itinerary[0].Activities[0].Item)
		assert.Equal(t, []string{"Day one."}, loaded.Narration)
		// JSON persistence turns numbers into float64.
		assert.NotNil(t, loaded.UserPrefs["duration"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, sample("Porto")))

		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = store.Save(ctx, id1, sample("Rome"))
		_ = store.Save(ctx, id2, sample("Milan"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
