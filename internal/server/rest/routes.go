package rest

import (
	"net/http"

	"github.com/dmitrijs2005/mdd/internal/common"
)

func (s *Server) routes() {
	r := s.router

	r.NotFoundHandler = s.handle(func(w http.ResponseWriter, r *http.Request) error {
		return common.NotFound("no resource at %s", r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed", TypeError)
	})

	if s.health != nil {
		r.Handle("/actuator/health", s.health).Methods(http.MethodGet)
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	a := api.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/register", s.handle(s.register)).Methods(http.MethodPost)
	a.HandleFunc("/login", s.handle(s.login)).Methods(http.MethodPost)
	a.HandleFunc("/status", s.handle(s.authStatus)).Methods(http.MethodGet)

	art := api.PathPrefix("/articles").Subrouter()
	art.HandleFunc("", s.handle(s.listArticles)).Methods(http.MethodGet)
	art.HandleFunc("", s.handle(s.createArticle)).Methods(http.MethodPost)
	art.HandleFunc("/feed", s.handle(s.feed)).Methods(http.MethodGet)
	art.HandleFunc("/subject/{subjectId:[0-9]+}", s.handle(s.articlesBySubject)).Methods(http.MethodGet)
	art.HandleFunc("/{id:[0-9]+}", s.handle(s.getArticle)).Methods(http.MethodGet)
	art.HandleFunc("/{articleId:[0-9]+}/comments", s.handle(s.listComments)).Methods(http.MethodGet)
	art.HandleFunc("/{articleId:[0-9]+}/comments", s.handle(s.createComment)).Methods(http.MethodPost)

	c := api.PathPrefix("/comments").Subrouter()
	c.HandleFunc("/health", s.handle(s.commentsHealth)).Methods(http.MethodGet)
	c.HandleFunc("/{id:[0-9]+}", s.handle(s.getComment)).Methods(http.MethodGet)
	c.HandleFunc("/{id:[0-9]+}", s.handle(s.deleteComment)).Methods(http.MethodDelete)

	sub := api.PathPrefix("/subjects").Subrouter()
	sub.HandleFunc("", s.handle(s.listSubjects)).Methods(http.MethodGet)
	sub.HandleFunc("", s.handle(s.createSubject)).Methods(http.MethodPost)
	sub.HandleFunc("/{id:[0-9]+}", s.handle(s.getSubject)).Methods(http.MethodGet)
	sub.HandleFunc("/{id:[0-9]+}/subscribe", s.handle(s.subscribe)).Methods(http.MethodPost)
	sub.HandleFunc("/{id:[0-9]+}/subscribe", s.handle(s.unsubscribe)).Methods(http.MethodDelete)

	// The id segment is accepted for compatibility with older clients; the
	// identity decides whose profile is read or written.
	u := api.PathPrefix("/user").Subrouter()
	u.HandleFunc("/logout", s.handle(s.logout)).Methods(http.MethodPost)
	for _, p := range []string{"/me", "/{id:[0-9]+}"} {
		u.HandleFunc(p, s.handle(s.profile)).Methods(http.MethodGet)
		u.HandleFunc(p, s.handle(s.updateProfile)).Methods(http.MethodPut)
	}
}
