package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// ConnectionController handles HTTP requests for the connection lifecycle
type ConnectionController struct {
	Connections *services.ConnectionService
	Routes      *services.RouteService
}

func NewConnectionController(connections *services.ConnectionService, routes *services.RouteService) *ConnectionController {
	return &ConnectionController{Connections: connections, Routes: routes}
}

// HandleSendRequest creates a pending connection request
func (cc *ConnectionController) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.From == "" || request.To == "" {
		log.Println("Missing required fields in send request")
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}

	req, err := cc.Connections.SendRequest(r.Context(), request.From, request.To)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Connection request sent!",
		"request": req,
	})
}

// HandleRespond accepts or rejects a pending request
func (cc *ConnectionController) HandleRespond(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RequestID string `json:"requestId"`
		UserID    string `json:"userId"`
		Accept    bool   `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.RequestID == "" || request.UserID == "" {
		http.Error(w, "requestId and userId are required", http.StatusBadRequest)
		return
	}

	conn, err := cc.Connections.RespondToRequest(r.Context(), request.RequestID, request.UserID, request.Accept)
	if err != nil {
		writeError(w, err)
		return
	}

	if conn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Request rejected"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Request accepted",
		"connection": conn,
	})
}

// HandleDisconnect ends a connection and returns the mandatory rating prompt
func (cc *ConnectionController) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConnectionID string `json:"connectionId"`
		UserID       string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ConnectionID == "" || request.UserID == "" {
		http.Error(w, "connectionId and userId are required", http.StatusBadRequest)
		return
	}

	prompt, err := cc.Connections.Disconnect(r.Context(), request.ConnectionID, request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Successfully disconnected",
		"ratingPrompt": prompt,
	})
}

// HandleSubmitRating appends a rating and returns the new average
func (cc *ConnectionController) HandleSubmitRating(w http.ResponseWriter, r *http.Request) {
	var request struct {
		From    string `json:"from"`
		To      string `json:"to"`
		Stars   int    `json:"stars"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.From == "" || request.To == "" {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}

	average, err := cc.Connections.SubmitRating(r.Context(), request.From, request.To, request.Stars, request.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Rating submitted",
		"averageRating": average,
	})
}

// HandleListRequests returns the pending requests addressed to a user
func (cc *ConnectionController) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	requests, err := cc.Connections.ListRequests(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// HandleListConnections returns a user's active connections
func (cc *ConnectionController) HandleListConnections(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	connections, err := cc.Connections.ListConnections(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"connections": connections})
}

// HandleListHistory returns a user's completed meetings, newest first
func (cc *ConnectionController) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	entries, err := cc.Connections.ListHistory(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}

// HandleGetRoute returns the walking route overlay for a connection. An empty
// route is normal and not an error.
func (cc *ConnectionController) HandleGetRoute(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connectionId"]
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	points, err := cc.Routes.RouteForConnection(r.Context(), cc.Connections.Connections, connectionID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"route": points})
}
