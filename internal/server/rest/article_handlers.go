package rest

import (
	"net/http"
)

type createArticleRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	SubjectID int64  `json:"subjectId"`
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) error {
	req, err := pageRequest(r)
	if err != nil {
		return err
	}
	page, err := s.services.Articles.List(r.Context(), req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, page)
	return nil
}

func (s *Server) feed(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	req, err := pageRequest(r)
	if err != nil {
		return err
	}
	page, err := s.services.Articles.Feed(r.Context(), id.UserID, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, page)
	return nil
}

func (s *Server) articlesBySubject(w http.ResponseWriter, r *http.Request) error {
	subjectID, err := pathID(r, "subjectId")
	if err != nil {
		return err
	}
	req, err := pageRequest(r)
	if err != nil {
		return err
	}
	page, err := s.services.Articles.BySubject(r.Context(), subjectID, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, page)
	return nil
}

func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) error {
	articleID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	a, err := s.services.Articles.Get(r.Context(), articleID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, a)
	return nil
}

func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	var req createArticleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	a, err := s.services.Articles.Create(r.Context(), id.UserID, req.Title, req.Content, req.SubjectID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, a)
	return nil
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) error {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		return err
	}
	req, err := pageRequest(r)
	if err != nil {
		return err
	}
	page, err := s.services.Comments.ListByArticle(r.Context(), articleID, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, page)
	return nil
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	articleID, err := pathID(r, "articleId")
	if err != nil {
		return err
	}
	var req createCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	c, err := s.services.Comments.Create(r.Context(), id.UserID, articleID, req.Content)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, c)
	return nil
}
