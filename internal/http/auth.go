package httpserver

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/evalboard/evalboard/internal/service"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeJSONBody(w, r, &input); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	user, err := s.svc.Register(r.Context(), input)
	if err != nil {
		s.respondServiceError(w, err, "register user")
		return
	}

	// Registration signs the new account in, matching the client's flow.
	if err := s.sessions.SignIn(w, r, user.ID); err != nil {
		s.logger.Error("sign in after register", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	s.respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSONBody(w, r, &input); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	user, err := s.svc.Login(r.Context(), input)
	if err != nil {
		s.respondServiceError(w, err, "login user")
		return
	}

	if err := s.sessions.SignIn(w, r, user.ID); err != nil {
		s.logger.Error("sign in", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.SignOut(w, r); err != nil {
		s.logger.Error("sign out", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Me(actorFrom(r))
	if err != nil {
		s.respondServiceError(w, err, "read profile")
		return
	}
	s.respondJSON(w, http.StatusOK, user)
}
