package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	config "github.com/mwantia/govportal/internal/config/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.BaseServerConfig {
	cfg := config.GetServerDefault()
	cfg.Log.Level = "FATAL"
	cfg.Log.NoTerminal = true
	cfg.Database.SQLite.Path = filepath.Join(t.TempDir(), "agent.db")
	cfg.HTTP.Address = "127.0.0.1:0"
	cfg.ShutdownTimeout = "2s"
	return &cfg
}

func TestSetup(t *testing.T) {
	ctx := context.Background()
	pa := NewAgent(testConfig(t))

	require.NoError(t, pa.setupServices(ctx))
	t.Cleanup(func() {
		pa.store.Close()
	})
	require.NoError(t, pa.setupServer(ctx))

	rec := httptest.NewRecorder()
	pa.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	pa.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tables/projects/sessions", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, pa.sessions.Len())
}

func TestSetupRejectsUnknownDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Type = "postgres"

	assert.Error(t, NewAgent(cfg).setupServices(context.Background()))
}

func TestSetupClosesStoreOnFailure(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.HTTP.Address = "localhost"

	pa := NewAgent(cfg)
	require.Error(t, pa.setup(ctx))

	require.NotNil(t, pa.store)
	assert.Error(t, pa.store.Health(ctx))
}

func TestServeRejectsInvalidAddress(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.Address = "::1"

	pa := NewAgent(cfg)
	assert.ErrorContains(t, pa.Serve(context.Background()), "invalid http address")
	assert.Error(t, pa.store.Health(context.Background()))
}
