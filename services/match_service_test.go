package services

import (
	"context"
	"testing"

	"travelassist_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locatedUser(id, name string, lat, lng float64) models.User {
	return models.User{
		UserID:   id,
		FullName: name,
		Email:    id + "@example.com",
		Location: &models.Location{Latitude: lat, Longitude: lng, Timestamp: 1},
	}
}

func TestMatchService_FindNearby(t *testing.T) {
	ctx := context.Background()
	origin := models.Location{Latitude: 48.8566, Longitude: 2.3522}

	t.Run("excludes self, unlocated, and out-of-radius users", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.PutUser(ctx, locatedUser("self", "Self", origin.Latitude, origin.Longitude)))
		// ~1.1 km north
		require.NoError(t, store.PutUser(ctx, locatedUser("near", "Near", 48.8666, 2.3522)))
		// ~11 km north
		require.NoError(t, store.PutUser(ctx, locatedUser("far", "Far", 48.9566, 2.3522)))
		require.NoError(t, store.PutUser(ctx, models.User{UserID: "nowhere", FullName: "Nowhere"}))

		ms := NewMatchService(store, 3)
		candidates, err := ms.FindNearby(ctx, "self", origin)
		require.NoError(t, err)

		require.Len(t, candidates, 1)
		assert.Equal(t, "near", candidates[0].UserID)
		assert.InDelta(t, 1.11, candidates[0].DistanceKm, 0.02)
	})

	t.Run("rated candidates rank above closer unrated ones", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.PutUser(ctx, locatedUser("self", "Self", origin.Latitude, origin.Longitude)))

		closest := locatedUser("unrated", "Unrated", 48.8576, 2.3522)
		require.NoError(t, store.PutUser(ctx, closest))

		good := locatedUser("good", "Good", 48.8666, 2.3522)
		good.AverageRating = 4.0
		good.Ratings = []models.Rating{{Stars: 4}}
		require.NoError(t, store.PutUser(ctx, good))

		best := locatedUser("best", "Best", 48.8700, 2.3522)
		best.AverageRating = 4.5
		best.Ratings = []models.Rating{{Stars: 4}, {Stars: 5}}
		require.NoError(t, store.PutUser(ctx, best))

		ms := NewMatchService(store, 3)
		candidates, err := ms.FindNearby(ctx, "self", origin)
		require.NoError(t, err)

		require.Len(t, candidates, 3)
		assert.Equal(t, "best", candidates[0].UserID)
		assert.Equal(t, "good", candidates[1].UserID)
		assert.Equal(t, "unrated", candidates[2].UserID)
	})

	t.Run("snapshot feeds CachedCandidate", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.PutUser(ctx, locatedUser("self", "Self", origin.Latitude, origin.Longitude)))
		require.NoError(t, store.PutUser(ctx, locatedUser("near", "Near", 48.8666, 2.3522)))

		ms := NewMatchService(store, 3)

		_, ok := ms.CachedCandidate("self", "near")
		assert.False(t, ok, "no snapshot before a scan")

		_, err := ms.FindNearby(ctx, "self", origin)
		require.NoError(t, err)

		candidate, ok := ms.CachedCandidate("self", "near")
		require.True(t, ok)
		assert.Equal(t, "near", candidate.UserID)

		_, ok = ms.CachedCandidate("self", "absent")
		assert.False(t, ok)
	})
}
