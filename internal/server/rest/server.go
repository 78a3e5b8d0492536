// Package rest exposes the services over HTTP/JSON.
//
// Every request passes through the same chain: recovery, request id,
// access log and metrics, CORS, the identity filter, the authorization gate
// and finally the router. Handlers return errors; one translator turns them
// into responses.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mdd/internal/logging"
	"github.com/dmitrijs2005/mdd/internal/server/auth"
	"github.com/dmitrijs2005/mdd/internal/server/config"
	"github.com/dmitrijs2005/mdd/internal/server/metrics"
	"github.com/dmitrijs2005/mdd/internal/server/services"
	"github.com/gorilla/mux"
)

// Authenticator resolves a raw bearer token into an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*auth.Identity, error)
}

// Services groups the business services the handlers call.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Subjects *services.SubjectService
	Articles *services.ArticleService
	Comments *services.CommentService
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	corsOrigins     []string

	logger        logging.Logger
	services      Services
	authenticator Authenticator
	metrics       *metrics.Metrics
	health        http.Handler
	gate          *Gate

	router  *mux.Router
	handler http.Handler
}

func NewServer(c *config.Config, l logging.Logger, svc Services, m *metrics.Metrics, health http.Handler) *Server {
	s := &Server{
		address:         c.HTTPAddr,
		shutdownTimeout: c.ShutdownTimeout,
		corsOrigins:     c.CORSOrigins,
		logger:          l.With("module", "rest_server"),
		services:        svc,
		authenticator:   svc.Auth,
		metrics:         m,
		health:          health,
		gate:            NewGate(DefaultRules...),
		router:          mux.NewRouter(),
	}
	s.routes()
	s.handler = s.chain(s.router)
	return s
}

// ServeHTTP makes the server usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) chain(h http.Handler) http.Handler {
	h = s.authorizationGate(h)
	h = s.identityFilter(h)
	h = s.cors(h)
	h = s.accessLog(h)
	h = s.requestID(h)
	h = s.recovery(h)
	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
