package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/mdd/internal/server/config"
	"github.com/dmitrijs2005/mdd/internal/server/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func memoryConfig(t *testing.T) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = config.MemoryDSN
	c.HTTPAddr = freeAddr(t)
	c.LogLevel = "error"
	c.BcryptCost = 4
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_Memory(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, memoryConfig(t))
	require.NoError(t, err)

	n, err := app.repos.Subjects().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n, "default subjects are seeded")
	assert.IsType(t, tokenstore.Noop{}, app.revoked)
}

func TestNewApp_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := memoryConfig(t)
	c.RedisURL = "redis://" + mr.Addr()

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.IsType(t, &tokenstore.RedisStore{}, app.revoked)
	app.close()
}

func TestNewApp_BadRedis(t *testing.T) {
	c := memoryConfig(t)
	c.RedisURL = "not a url"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestNewApp_BadLogLevel(t *testing.T) {
	c := memoryConfig(t)
	c.LogLevel = "chatty"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestApp_RunServesUntilCancelled(t *testing.T) {
	c := memoryConfig(t)
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + c.HTTPAddr + "/actuator/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
