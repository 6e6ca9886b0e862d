package routes

import (
	"travelassist_server/controllers"
	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for proximity matching under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, profileService *services.UserProfileService) {
	controller := controllers.NewMatchController(matchService, profileService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()

	matchRouter.HandleFunc("/nearby/{userId}", controller.HandleNearby).Methods("GET")
}

// RegisterLocationRoutes sets up the location update route under /api/location
func RegisterLocationRoutes(
	r *mux.Router,
	profileService *services.UserProfileService,
	matchService *services.MatchService,
	connectionService *services.ConnectionService,
	routeService *services.RouteService,
) {
	controller := controllers.NewLocationController(profileService, matchService, connectionService, routeService)

	locationRouter := r.PathPrefix("/api/location").Subrouter()

	locationRouter.HandleFunc("/{userId}", controller.HandleUpdateLocation).Methods("PUT")
}
