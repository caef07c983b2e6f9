package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/hypertroq/internal/api"
	"github.com/claude/hypertroq/internal/overlay"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeBackendError maps an error from the backend or the overlay onto a
// JSON error response. Backend errors keep their status so clients can tell
// a validation reject (422) from an expired token (401).
func (s *Server) writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if api.IsServerError(err) {
			s.log.Error("backend error", "status", apiErr.Status, "error", apiErr.Message)
		}
		writeError(w, apiErr.Status, apiErr.Message)
		return
	}
	if errors.Is(err, overlay.ErrNotDirty) || errors.Is(err, overlay.ErrSaveInFlight) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.log.Error("request failed", "error", err)
	writeError(w, http.StatusBadGateway, "backend unreachable: "+err.Error())
}

// decodeBody reads a JSON request body, answering 400 on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
