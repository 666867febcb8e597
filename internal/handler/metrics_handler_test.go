package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-scheduler/internal/service"
)

func newMetricsRouter(checks map[string]ReadinessCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewMetricsHandler(service.NewMetricsService(), checks)
	router := gin.New()
	router.GET("/health", handler.Health)
	router.GET("/ready", handler.Ready)
	router.GET("/metrics", handler.Prometheus)
	router.GET("/metrics/snapshot", handler.Snapshot)
	return router
}

func TestReadyReportsFailingChecks(t *testing.T) {
	router := newMetricsRouter(map[string]ReadinessCheck{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	})

	w := serve(router, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
	assert.NotContains(t, w.Body.String(), "postgres")
}

func TestHealthAndReady(t *testing.T) {
	router := newMetricsRouter(nil)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/ready", nil).Code)
}

func TestPrometheusEndpoint(t *testing.T) {
	router := newMetricsRouter(nil)

	w := serve(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")

	w = serve(router, http.MethodGet, "/metrics/snapshot", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
