package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/mdd/internal/common"
)

// Message types of the response body.
const (
	TypeError   = "error"
	TypeInfo    = "info"
	TypeSuccess = "success"
)

// UnauthenticatedMessage is the only message a 401 for a missing or bad
// token ever carries.
const UnauthenticatedMessage = "full authentication is required to access this resource"

const (
	validationMessage = "validation failed"
	internalMessage   = "an internal error occurred"
)

// MessageResponse is the body of every error and of plain status replies.
type MessageResponse struct {
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// translate maps err to a status code and a body safe to show clients.
func translate(err error) (int, MessageResponse) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, MessageResponse{Message: validationMessage, Type: TypeError, Errors: ve.Fields}
	}

	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, errorBody(err, validationMessage)
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, MessageResponse{Message: common.ErrInvalidCredentials.Error(), Type: TypeError}
	case errors.Is(err, common.ErrUnauthenticated), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, MessageResponse{Message: UnauthenticatedMessage, Type: TypeError}
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, errorBody(err, "access denied")
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, errorBody(err, "resource not found")
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict, errorBody(err, "resource already exists")
	}
	return http.StatusInternalServerError, MessageResponse{Message: internalMessage, Type: TypeError}
}

// errorBody uses the message of a *common.Error, which services write for
// clients, and fallback for anything else.
func errorBody(err error, fallback string) MessageResponse {
	var ce *common.Error
	if errors.As(err, &ce) {
		return MessageResponse{Message: ce.Message, Type: TypeError}
	}
	return MessageResponse{Message: fallback, Type: TypeError}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := translate(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()))
	}
	writeJSON(w, status, body)
}
