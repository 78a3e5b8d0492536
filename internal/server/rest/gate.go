package rest

import (
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/auth"
)

type Requirement int

const (
	// Authenticated is the zero value so that an unmatched path is protected.
	Authenticated Requirement = iota
	Public
)

func (r Requirement) String() string {
	if r == Public {
		return "public"
	}
	return "authenticated"
}

// Rule maps a path prefix to its requirement. The prefix matches whole
// segments: "/metrics" covers "/metrics" and "/metrics/x" but not
// "/metricsx".
type Rule struct {
	Prefix      string
	Requirement Requirement
}

var DefaultRules = []Rule{
	{Prefix: "/api/auth", Requirement: Public},
	{Prefix: "/actuator/health", Requirement: Public},
	{Prefix: "/metrics", Requirement: Public},
	{Prefix: "/api", Requirement: Authenticated},
}

// Gate decides per path whether an identity is needed. The longest matching
// prefix wins; paths matching no rule require authentication.
type Gate struct {
	rules []Rule
}

func NewGate(rules ...Rule) *Gate {
	sorted := make([]Rule, len(rules))
	for i, r := range rules {
		r.Prefix = strings.TrimRight(r.Prefix, "/")
		sorted[i] = r
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Gate{rules: sorted}
}

func (g *Gate) Requirement(path string) Requirement {
	for _, r := range g.rules {
		if matchSegments(path, r.Prefix) {
			return r.Requirement
		}
	}
	return Authenticated
}

func matchSegments(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Allow reports whether a request for path may proceed given whether it
// carries an identity.
func (g *Gate) Allow(path string, identified bool) bool {
	return identified || g.Requirement(path) == Public
}

func (s *Server) authorizationGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, identified := auth.IdentityFrom(r.Context())
		if !s.gate.Allow(r.URL.Path, identified) {
			s.writeError(w, r, common.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
