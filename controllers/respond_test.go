package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "travelassist_server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest, "VALIDATION"},
		{"not found", apperrors.NotFound("missing"), http.StatusNotFound, "NOT_FOUND"},
		{"permission denied", apperrors.PermissionDenied("nope"), http.StatusForbidden, "PERMISSION_DENIED"},
		{"external", apperrors.External("upstream", errors.New("boom")), http.StatusBadGateway, "EXTERNAL"},
		{"plain error", errors.New("surprise"), http.StatusInternalServerError, "UNKNOWN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body["code"])
		})
	}
}
