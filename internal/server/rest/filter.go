package rest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/auth"
)

// identityFilter attaches an auth.Identity to the request context when it
// carries a valid bearer token. It never rejects a request itself; the
// gate does. Tokens are not parsed on paths the gate leaves public.
func (s *Server) identityFilter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if s.gate.Requirement(r.URL.Path) == Public {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(common.AuthorizationHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(header, common.BearerPrefix) {
			s.rejectToken(r, "bad_format", nil)
			next.ServeHTTP(w, r)
			return
		}

		id, err := s.authenticator.Authenticate(ctx, strings.TrimPrefix(header, common.BearerPrefix))
		if err != nil {
			s.rejectToken(r, string(auth.RejectionReason(err)), err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(ctx, id)))
	})
}

func (s *Server) rejectToken(r *http.Request, reason string, err error) {
	ctx := r.Context()
	if reason == "" {
		// not a token problem: the store could not be reached
		s.logger.Error(ctx, "token check failed", "error", err, "request_id", requestIDFrom(ctx))
		reason = "error"
	} else {
		s.logger.Debug(ctx, "token rejected", "reason", reason, "path", r.URL.Path, "request_id", requestIDFrom(ctx))
	}
	if s.metrics != nil {
		s.metrics.TokenRejected(reason)
	}
}
