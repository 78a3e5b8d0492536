package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := NewMetrics()

	m.ObserveRequest(http.MethodGet, "/api/articles", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/articles", 200, 20*time.Millisecond)
	m.AuthAttempt("login", "invalid_credentials")
	m.TokenRejected("expired")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/articles", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenRejectionsTotal.WithLabelValues("expired")))
}

func TestHandler_Exposition(t *testing.T) {
	m := NewMetrics()
	m.AuthAttempt("register", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `mdd_auth_attempts_total{operation="register",outcome="success"} 1`))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
