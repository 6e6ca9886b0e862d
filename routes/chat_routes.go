package routes

import (
	"travelassist_server/controllers"
	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	// Initialize the controller with the ChatService
	controller := controllers.NewChatController(chatService)

	// Create a subrouter for /api/chat
	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	// Define routes and their corresponding handlers
	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/messages/mark-as-read", controller.HandleMarkRead).Methods("POST")
}
