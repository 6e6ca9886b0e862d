package routes

import (
	"travelassist_server/controllers"
	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// RegisterConnectionRoutes sets up routes for the connection lifecycle under /api/connections
func RegisterConnectionRoutes(r *mux.Router, connectionService *services.ConnectionService, routeService *services.RouteService) {
	controller := controllers.NewConnectionController(connectionService, routeService)

	connectionRouter := r.PathPrefix("/api/connections").Subrouter()

	connectionRouter.HandleFunc("/request", controller.HandleSendRequest).Methods("POST")
	connectionRouter.HandleFunc("/respond", controller.HandleRespond).Methods("POST")
	connectionRouter.HandleFunc("/disconnect", controller.HandleDisconnect).Methods("POST")
	connectionRouter.HandleFunc("/rating", controller.HandleSubmitRating).Methods("POST")
	connectionRouter.HandleFunc("/requests/{userId}", controller.HandleListRequests).Methods("GET")
	connectionRouter.HandleFunc("/active/{userId}", controller.HandleListConnections).Methods("GET")
	connectionRouter.HandleFunc("/history/{userId}", controller.HandleListHistory).Methods("GET")
	connectionRouter.HandleFunc("/{connectionId}/route", controller.HandleGetRoute).Methods("GET")
}
