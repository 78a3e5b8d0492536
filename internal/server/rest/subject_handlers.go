package rest

import (
	"net/http"
)

type createSubjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) listSubjects(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	req, err := pageRequest(r)
	if err != nil {
		return err
	}
	page, err := s.services.Subjects.List(r.Context(), id.UserID, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, page)
	return nil
}

func (s *Server) getSubject(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	subjectID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	subj, err := s.services.Subjects.Get(r.Context(), id.UserID, subjectID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, subj)
	return nil
}

func (s *Server) createSubject(w http.ResponseWriter, r *http.Request) error {
	var req createSubjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	subj, err := s.services.Subjects.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, subj)
	return nil
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	subjectID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	subj, err := s.services.Subjects.Subscribe(r.Context(), id.UserID, subjectID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, subj)
	return nil
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	subjectID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	subj, err := s.services.Subjects.Unsubscribe(r.Context(), id.UserID, subjectID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, subj)
	return nil
}
