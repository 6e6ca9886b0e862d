package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "travelassist_server/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps service error codes onto HTTP statuses. The body carries
// the code so clients can branch without parsing messages.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.CodeOf(err) {
	case apperrors.CodeValidation:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodePermissionDenied:
		status = http.StatusForbidden
	case apperrors.CodeExternal:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}

	writeJSON(w, status, map[string]string{
		"code":  string(apperrors.CodeOf(err)),
		"error": err.Error(),
	})
}
