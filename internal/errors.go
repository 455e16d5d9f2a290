package internal

import (
	"encoding/json"
	"errors"
	"net/http"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/models"
	"portfolio-api/internal/store"

	"github.com/sirupsen/logrus"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Debug("write response body")
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, auth.ErrorResponse{Error: message, Code: code})
}

// writeError maps repository and auth failures to HTTP responses. Anything
// unrecognised is a 500 whose details only go to the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, validationErr)
	case errors.Is(err, store.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Project not found", "NOT_FOUND")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, "Invalid password", "INVALID_CREDENTIALS")
	case errors.Is(err, auth.ErrTokenExpired):
		writeErrorMessage(w, http.StatusUnauthorized, "The token has expired", "TOKEN_EXPIRED")
	case errors.Is(err, auth.ErrTokenInvalid):
		writeErrorMessage(w, http.StatusUnauthorized, "Invalid token", "INVALID_TOKEN")
	default:
		s.requestLog(r).WithError(err).Error("request failed")
		writeErrorMessage(w, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}
