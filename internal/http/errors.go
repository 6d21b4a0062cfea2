package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crewboard/internal/club"
	"github.com/mauv0809/crewboard/internal/roster"
)

// statusFor maps a roster error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, roster.ErrNotOwner):
		return http.StatusForbidden
	case roster.IsValidation(err):
		return http.StatusBadRequest
	case roster.IsNotFound(err), errors.Is(err, club.ErrMemberNotFound):
		return http.StatusNotFound
	case roster.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the error's own message for expected failures and hides internal ones.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("Invalid request body", "error", err, "url", r.URL.Path)
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}
