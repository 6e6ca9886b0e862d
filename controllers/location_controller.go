package controllers

import (
	"encoding/json"
	"net/http"

	"travelassist_server/models"
	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// LocationController handles location fixes. A fix drives everything that
// hangs off "self location changed": the nearby recomputation, the
// auto-completion sweep, and the route refresh for active connections.
type LocationController struct {
	Profiles    *services.UserProfileService
	Matcher     *services.MatchService
	Connections *services.ConnectionService
	Routes      *services.RouteService
}

func NewLocationController(
	profiles *services.UserProfileService,
	matcher *services.MatchService,
	connections *services.ConnectionService,
	routes *services.RouteService,
) *LocationController {
	return &LocationController{
		Profiles:    profiles,
		Matcher:     matcher,
		Connections: connections,
		Routes:      routes,
	}
}

// HandleUpdateLocation stores a position fix and returns the derived state:
// ranked nearby users, any auto-completed connections' rating prompts, and
// refreshed route overlays.
func (lc *LocationController) HandleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var loc models.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := lc.Profiles.UpdateLocation(r.Context(), userID, loc); err != nil {
		writeError(w, err)
		return
	}

	candidates, err := lc.Matcher.FindNearby(r.Context(), userID, loc)
	if err != nil {
		writeError(w, err)
		return
	}

	prompts, err := lc.Connections.AutoComplete(r.Context(), userID, loc)
	if err != nil {
		writeError(w, err)
		return
	}

	connections, err := lc.Connections.ListConnections(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	routes := lc.Routes.RefreshRoutes(r.Context(), userID, loc, connections)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"nearbyUsers":   candidates,
		"ratingPrompts": prompts,
		"routes":        routes,
	})
}
