package routes

import (
	"travelassist_server/controllers"
	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, profileService *services.UserProfileService) {
	// Initialize the controller with the provided UserProfileService
	controller := controllers.NewUserProfileController(profileService)

	// Create a subrouter for the /api/profiles base path
	profileRouter := r.PathPrefix("/api/profiles").Subrouter()

	// Define routes and their corresponding handlers
	profileRouter.HandleFunc("", controller.HandleRegister).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.HandleGetProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}/skills", controller.HandleUpdateSkills).Methods("PUT")
	profileRouter.HandleFunc("/{userId}/trusted-contacts", controller.HandleUpdateTrustedContacts).Methods("PUT")
}
