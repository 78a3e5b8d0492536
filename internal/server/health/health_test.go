package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("connection refused") })
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		checker *Checker
		want    string
	}{
		{name: "no deps", checker: NewChecker(), want: StatusUp},
		{name: "all up", checker: NewChecker().Add("database", up, true).Add("redis", up, false), want: StatusUp},
		{name: "optional down", checker: NewChecker().Add("database", up, true).Add("redis", down, false), want: StatusDegraded},
		{name: "required down", checker: NewChecker().Add("database", down, true).Add("redis", down, false), want: StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.checker.Check(context.Background()).Status)
		})
	}
}

func TestServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	NewChecker().Add("database", down, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actuator/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, StatusDown, st.Status)
	assert.Equal(t, "connection refused", st.Components["database"].Message)

	rec = httptest.NewRecorder()
	NewChecker().Add("redis", down, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actuator/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
