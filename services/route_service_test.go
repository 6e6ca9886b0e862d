package services

import (
	"context"
	"testing"

	"travelassist_server/models"
	apperrors "travelassist_server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPlanner returns a fixed route, or nil when told to fail.
type scriptedPlanner struct {
	route []models.LatLng
	calls int
}

func (p *scriptedPlanner) GetRoute(_ context.Context, _, _ models.LatLng) []models.LatLng {
	p.calls++
	return p.route
}

func TestRouteService_RefreshRoutes(t *testing.T) {
	ctx := context.Background()
	route := []models.LatLng{{Latitude: 48.8566, Longitude: 2.3522}, {Latitude: 48.8576, Longitude: 2.3522}}

	t.Run("computes and caches per connection", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.PutUser(ctx, locatedUser("alice", "Alice", 48.8566, 2.3522)))
		require.NoError(t, store.PutUser(ctx, locatedUser("bob", "Bob", 48.8576, 2.3522)))

		planner := &scriptedPlanner{route: route}
		rs := NewRouteService(store, planner)

		conn := models.Connection{ConnectionID: "c1", Users: []string{"alice", "bob"}, PairKey: PairKey("alice", "bob")}
		fresh := rs.RefreshRoutes(ctx, "alice", *mustLoc(48.8566, 2.3522), []models.Connection{conn})

		require.Contains(t, fresh, "c1")
		assert.Equal(t, route, fresh["c1"])
		assert.Equal(t, 1, planner.calls)

		// cached: a later read does not call the planner again
		got, err := rs.RouteForConnection(ctx, store, "c1", "alice")
		require.NoError(t, err)
		assert.Equal(t, route, got)
		assert.Equal(t, 1, planner.calls)
	})

	t.Run("planner failure clears the cached route", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.PutUser(ctx, locatedUser("alice", "Alice", 48.8566, 2.3522)))
		require.NoError(t, store.PutUser(ctx, locatedUser("bob", "Bob", 48.8576, 2.3522)))

		planner := &scriptedPlanner{route: route}
		rs := NewRouteService(store, planner)
		conn := models.Connection{ConnectionID: "c1", Users: []string{"alice", "bob"}}

		rs.RefreshRoutes(ctx, "alice", *mustLoc(48.8566, 2.3522), []models.Connection{conn})

		planner.route = nil
		fresh := rs.RefreshRoutes(ctx, "alice", *mustLoc(48.8566, 2.3522), []models.Connection{conn})
		assert.NotContains(t, fresh, "c1")

		rs.mu.Lock()
		_, cached := rs.routes["c1"]
		rs.mu.Unlock()
		assert.False(t, cached)
	})
}

func TestRouteService_RouteForConnection(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss computes from stored location", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.PutUser(ctx, locatedUser("alice", "Alice", 48.8566, 2.3522)))
		require.NoError(t, store.PutUser(ctx, locatedUser("bob", "Bob", 48.8576, 2.3522)))
		store.connections["c1"] = models.Connection{ConnectionID: "c1", Users: []string{"alice", "bob"}}

		route := []models.LatLng{{Latitude: 1, Longitude: 2}}
		rs := NewRouteService(store, &scriptedPlanner{route: route})

		got, err := rs.RouteForConnection(ctx, store, "c1", "alice")
		require.NoError(t, err)
		assert.Equal(t, route, got)
	})

	t.Run("unknown connection", func(t *testing.T) {
		store := newMemStore()
		rs := NewRouteService(store, &scriptedPlanner{})
		_, err := rs.RouteForConnection(ctx, store, "missing", "alice")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("outsider denied", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.PutUser(ctx, locatedUser("carol", "Carol", 48.85, 2.35)))
		store.connections["c1"] = models.Connection{ConnectionID: "c1", Users: []string{"alice", "bob"}}

		rs := NewRouteService(store, &scriptedPlanner{})
		_, err := rs.RouteForConnection(ctx, store, "c1", "carol")
		assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))
	})
}

func mustLoc(lat, lng float64) *models.Location {
	return &models.Location{Latitude: lat, Longitude: lng, Timestamp: 1}
}
