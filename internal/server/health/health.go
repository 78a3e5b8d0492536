// Package health reports liveness and dependency status for
// /actuator/health.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	StatusUp       = "UP"
	StatusDegraded = "DEGRADED"
	StatusDown     = "DOWN"
)

// Pinger is anything that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name     string
	pinger   Pinger
	required bool
}

// Checker pings registered dependencies. A failing required dependency
// makes the service DOWN, an optional one only DEGRADED.
type Checker struct {
	deps    []dependency
	timeout time.Duration
}

func NewChecker() *Checker {
	return &Checker{timeout: 3 * time.Second}
}

// Add registers a dependency and returns the checker for chaining.
func (c *Checker) Add(name string, p Pinger, required bool) *Checker {
	c.deps = append(c.deps, dependency{name: name, pinger: p, required: required})
	return c
}

type Status struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
}

type ComponentStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latencyMs"`
}

func (c *Checker) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	st := Status{Status: StatusUp, Timestamp: time.Now().UTC(), Components: map[string]ComponentStatus{}}
	for _, d := range c.deps {
		start := time.Now()
		err := d.pinger.Ping(ctx)
		cs := ComponentStatus{Status: StatusUp, LatencyMS: time.Since(start).Milliseconds()}
		if err != nil {
			cs.Status = StatusDown
			cs.Message = err.Error()
			if d.required {
				st.Status = StatusDown
			} else if st.Status == StatusUp {
				st.Status = StatusDegraded
			}
		}
		st.Components[d.name] = cs
	}
	return st
}

// ServeHTTP answers 503 when DOWN and 200 otherwise.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st := c.Check(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if st.Status == StatusDown {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(st)
}
