package rest

import (
	"net/http"
)

func (s *Server) commentsHealth(w http.ResponseWriter, r *http.Request) error {
	writeMessage(w, http.StatusOK, "comment service is up", TypeSuccess)
	return nil
}

func (s *Server) getComment(w http.ResponseWriter, r *http.Request) error {
	commentID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	c, err := s.services.Comments.Get(r.Context(), commentID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, c)
	return nil
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	commentID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	if err := s.services.Comments.Delete(r.Context(), id.UserID, commentID); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
