package controllers

import (
	"net/http"
	"strconv"

	"travelassist_server/models"
	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for nearby-user matching
type MatchController struct {
	Matcher  *services.MatchService
	Profiles *services.UserProfileService
}

func NewMatchController(matcher *services.MatchService, profiles *services.UserProfileService) *MatchController {
	return &MatchController{Matcher: matcher, Profiles: profiles}
}

// HandleNearby returns the ranked candidates around a user. Coordinates come
// from ?lat=&lng= when provided, otherwise from the user's stored location.
func (mc *MatchController) HandleNearby(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	loc, ok := parseCoords(r)
	if !ok {
		view, err := mc.Profiles.GetProfile(r.Context(), userID, "")
		if err != nil {
			writeError(w, err)
			return
		}
		if view.Location == nil {
			http.Error(w, "User has no known location", http.StatusBadRequest)
			return
		}
		loc = *view.Location
	}

	candidates, err := mc.Matcher.FindNearby(r.Context(), userID, loc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"nearbyUsers": candidates})
}

func parseCoords(r *http.Request) (models.Location, bool) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		return models.Location{}, false
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		return models.Location{}, false
	}
	return models.Location{Latitude: lat, Longitude: lng}, true
}
