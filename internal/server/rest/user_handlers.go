package rest

import (
	"net/http"

	"github.com/dmitrijs2005/mdd/internal/server/services"
)

type profileUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	p, err := s.services.Users.Profile(r.Context(), id.UserID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, p)
	return nil
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	var req profileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	res, err := s.services.Users.UpdateProfile(r.Context(), id.UserID, services.ProfileUpdate(req))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}
