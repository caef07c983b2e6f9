package gateway

import (
	"net/http"

	"github.com/claude/hypertroq/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	tokens, err := s.api.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	if err := s.session.SetCredentials(*tokens); err != nil {
		s.log.Error("persisting credentials", "error", err)
	}

	user, err := s.api.Profile(r.Context())
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.session.SetUser(user)
	s.store.InvalidateAll()

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterData
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := s.api.Register(r.Context(), req)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.session.Clear()
	s.store.InvalidateAll()
	s.overlay.DiscardAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if u := s.session.User(); u != nil {
		writeJSON(w, http.StatusOK, u)
		return
	}
	user, err := s.api.Profile(r.Context())
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.session.SetUser(user)
	writeJSON(w, http.StatusOK, user)
}
