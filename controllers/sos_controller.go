package controllers

import (
	"encoding/json"
	"net/http"

	"travelassist_server/models"
	"travelassist_server/services"
)

// SOSController handles emergency alert requests
type SOSController struct {
	SOS *services.SOSService
}

func NewSOSController(sos *services.SOSService) *SOSController {
	return &SOSController{SOS: sos}
}

// HandlePhotoUploadURL returns a presigned S3 URL for an SOS photo
func (sc *SOSController) HandlePhotoUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	uploadURL, key, err := sc.SOS.PhotoUploadURL(r.Context(), request.FileName, request.FileType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"uploadURL": uploadURL,
		"key":       key,
	})
}

// HandleTriggerAlert sends the SOS message to the user's trusted contacts
func (sc *SOSController) HandleTriggerAlert(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string   `json:"userId"`
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		PhotoKeys []string `json:"photoKeys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	loc := models.Location{Latitude: request.Latitude, Longitude: request.Longitude}
	sent, err := sc.SOS.TriggerAlert(r.Context(), request.UserID, loc, request.PhotoKeys)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "SOS alert sent",
		"contactCount": sent,
	})
}
