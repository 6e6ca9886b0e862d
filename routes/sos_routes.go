package routes

import (
	"travelassist_server/controllers"
	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// RegisterSOSRoutes sets up routes for emergency alerts under /api/sos
func RegisterSOSRoutes(r *mux.Router, sosService *services.SOSService) {
	controller := controllers.NewSOSController(sosService)

	sosRouter := r.PathPrefix("/api/sos").Subrouter()

	sosRouter.HandleFunc("/photo-upload-url", controller.HandlePhotoUploadURL).Methods("POST")
	sosRouter.HandleFunc("/alert", controller.HandleTriggerAlert).Methods("POST")
}
