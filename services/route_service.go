package services

import (
	"context"
	"errors"
	"sync"

	"travelassist_server/models"
	apperrors "travelassist_server/pkg/errors"
)

// RouteService keeps the ephemeral per-connection route overlays. Routes are
// derived data: recomputed whenever a connection or either party's location
// changes, dropped when the connection ends, never persisted.
type RouteService struct {
	Users    UserStore
	Planner  RoutePlanner

	mu     sync.Mutex
	routes map[string][]models.LatLng
}

func NewRouteService(users UserStore, planner RoutePlanner) *RouteService {
	return &RouteService{
		Users:   users,
		Planner: planner,
		routes:  make(map[string][]models.LatLng),
	}
}

// RefreshRoutes recomputes the walking route for each of selfID's active
// connections from selfLoc and returns the fresh set keyed by connection id.
// Connections without a resolvable counterpart location simply get no route.
func (rs *RouteService) RefreshRoutes(ctx context.Context, selfID string, selfLoc models.Location, connections []models.Connection) map[string][]models.LatLng {
	fresh := make(map[string][]models.LatLng)
	for _, conn := range connections {
		other, err := rs.Users.GetUser(ctx, conn.Other(selfID))
		if err != nil || other.Location == nil {
			rs.ClearRoute(conn.ConnectionID)
			continue
		}

		points := rs.Planner.GetRoute(ctx,
			models.LatLng{Latitude: selfLoc.Latitude, Longitude: selfLoc.Longitude},
			models.LatLng{Latitude: other.Location.Latitude, Longitude: other.Location.Longitude},
		)
		if points == nil {
			rs.ClearRoute(conn.ConnectionID)
			continue
		}

		rs.mu.Lock()
		rs.routes[conn.ConnectionID] = points
		rs.mu.Unlock()
		fresh[conn.ConnectionID] = points
	}
	return fresh
}

// RouteForConnection returns the cached route for a connection, computing it
// on a miss from selfID's current stored location.
func (rs *RouteService) RouteForConnection(ctx context.Context, connections ConnectionStore, connectionID, selfID string) ([]models.LatLng, error) {
	rs.mu.Lock()
	cached, ok := rs.routes[connectionID]
	rs.mu.Unlock()
	if ok {
		return cached, nil
	}

	conn, err := connections.GetConnection(ctx, connectionID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.NotFound("connection not found")
		}
		return nil, apperrors.External("failed to fetch connection", err)
	}
	if !conn.Involves(selfID) {
		return nil, apperrors.PermissionDenied("user is not part of this connection")
	}

	self, err := rs.Users.GetUser(ctx, selfID)
	if err != nil {
		return nil, apperrors.External("failed to fetch user", err)
	}
	if self.Location == nil {
		return nil, nil
	}

	fresh := rs.RefreshRoutes(ctx, selfID, *self.Location, []models.Connection{*conn})
	return fresh[connectionID], nil
}

// ClearRoute drops a connection's cached route.
func (rs *RouteService) ClearRoute(connectionID string) {
	rs.mu.Lock()
	delete(rs.routes, connectionID)
	rs.mu.Unlock()
}

var _ RouteCache = (*RouteService)(nil)
