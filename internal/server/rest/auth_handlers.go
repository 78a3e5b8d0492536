package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/mdd/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest accepts the identifier under either key; identifier wins
// when both are sent.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	res, err := s.services.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	s.countAuthAttempt("register", err)
	if err != nil {
		return err
	}

	s.logger.Info(r.Context(), "Registered", "user_id", res.ID, "request_id", requestIDFrom(r.Context()))
	writeJSON(w, http.StatusCreated, res)
	return nil
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}

	res, err := s.services.Auth.Login(r.Context(), identifier, req.Password)
	s.countAuthAttempt("login", err)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, res)
	return nil
}

func (s *Server) countAuthAttempt(op string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, common.ErrValidation):
		outcome = "invalid_input"
	case errors.Is(err, common.ErrInvalidCredentials):
		outcome = "invalid_credentials"
	case errors.Is(err, common.ErrConflict):
		outcome = "conflict"
	default:
		outcome = "error"
	}
	s.metrics.AuthAttempt(op, outcome)
}

func (s *Server) authStatus(w http.ResponseWriter, r *http.Request) error {
	msg, err := s.services.Auth.Status(r.Context())
	if err != nil {
		return err
	}
	writeMessage(w, http.StatusOK, msg, TypeInfo)
	return nil
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	if err := s.services.Auth.Logout(r.Context(), id); err != nil {
		return err
	}
	writeMessage(w, http.StatusOK, "logged out", TypeSuccess)
	return nil
}
