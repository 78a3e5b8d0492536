package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/auth"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/services"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// handlerFunc is a handler that leaves error responses to the translator.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg, typ string) {
	writeJSON(w, status, MessageResponse{Message: msg, Type: typ})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		ve := common.NewValidationError()
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			ve.Add("body", "request body is required")
		case errors.As(err, &tooBig):
			ve.Add("body", "request body is too large")
		default:
			ve.Add("body", "request body is not valid JSON")
		}
		return ve
	}
	return nil
}

// identity returns the caller. The gate guarantees one on protected routes;
// the error covers handlers mounted on public ones by mistake.
func identity(r *http.Request) (*auth.Identity, error) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		ve := common.NewValidationError()
		ve.Add(name, name+" must be a positive integer")
		return 0, ve
	}
	return id, nil
}

// pageRequest reads page, size and sort from the query string.
func pageRequest(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	ve := common.NewValidationError()

	intParam := func(name string, def int) int {
		raw := q.Get(name)
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add(name, name+" must be an integer")
		}
		return n
	}
	page := intParam("page", 0)
	size := intParam("size", services.DefaultPageSize)
	if err := ve.Err(); err != nil {
		return models.PageRequest{}, err
	}
	return services.NewPageRequest(page, size, q.Get("sort"))
}
