package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/hearth/backend/config"
	"github.com/pageza/hearth/backend/internal/api"
	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:    config.Test,
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func TestNew(t *testing.T) {
	planner := service.NewPlannerService(kvstore.NewMemoryStore())
	auth, err := service.NewAuthService(config.AuthConfig{JWTSecret: "s", Password: "p", TokenTTL: time.Hour}, config.HouseholdConfig{})
	require.NoError(t, err)

	srv := New(testConfig(), api.Services{
		Auth:    auth,
		Planner: planner,
		Backup:  service.NewBackupService(planner, nil),
	})
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestShutdownWithoutStart(t *testing.T) {
	srv := New(testConfig(), api.Services{})
	assert.NoError(t, srv.Shutdown(context.Background()))
}
