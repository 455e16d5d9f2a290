package internal

import (
	"errors"
	"net/http"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/models"
)

// login exchanges the admin password for a signed token carrying is_admin.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_JSON")
		return
	}
	if req.Password == nil {
		writeErrorMessage(w, http.StatusBadRequest, "Password is required", "PASSWORD_REQUIRED")
		return
	}

	token, err := s.Auth.Login(*req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.requestLog(r).WithField("client_ip", r.RemoteAddr).Warn("Failed admin login")
		}
		s.writeError(w, r, err)
		return
	}

	s.requestLog(r).Info("Admin logged in")
	writeJSON(w, http.StatusOK, models.LoginResponse{AccessToken: token})
}
