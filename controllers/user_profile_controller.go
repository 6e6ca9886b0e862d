package controllers

import (
	"encoding/json"
	"net/http"

	"travelassist_server/models"
	"travelassist_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles HTTP requests for user records
type UserProfileController struct {
	Profiles *services.UserProfileService
}

// NewUserProfileController creates a new UserProfileController instance
func NewUserProfileController(profiles *services.UserProfileService) *UserProfileController {
	return &UserProfileController{Profiles: profiles}
}

// HandleRegister creates a user record
func (uc *UserProfileController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := uc.Profiles.Register(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleGetProfile fetches a profile, with optional ?target= distance annotation
func (uc *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	targetID := r.URL.Query().Get("target")

	view, err := uc.Profiles.GetProfile(r.Context(), userID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleUpdateSkills replaces a user's skill tags
func (uc *UserProfileController) HandleUpdateSkills(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var request struct {
		Skills []string `json:"skills"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := uc.Profiles.UpdateSkills(r.Context(), userID, request.Skills); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Skills saved successfully"})
}

// HandleUpdateTrustedContacts replaces a user's SOS contact list
func (uc *UserProfileController) HandleUpdateTrustedContacts(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var request struct {
		Contacts []models.TrustedContact `json:"contacts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := uc.Profiles.UpdateTrustedContacts(r.Context(), userID, request.Contacts); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Trusted contacts saved successfully"})
}
