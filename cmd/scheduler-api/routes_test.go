package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-scheduler/internal/dto"
	"github.com/noah-isme/curriculum-scheduler/internal/handler"
	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/service"
	"github.com/noah-isme/curriculum-scheduler/pkg/config"
)

func testRouter(t *testing.T) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: config.EnvProduction, APIPrefix: "/api/v1"}
	tokens := service.NewTokenService(nil, nil, service.TokenConfig{Secret: "secret", Issuer: "test", Expiry: time.Hour})
	metrics := service.NewMetricsService()
	router := newRouter(cfg, zap.NewNop(), routes{
		tokens:    tokens,
		metrics:   metrics,
		generator: handler.NewScheduleGeneratorHandler(service.NewScheduleGeneratorService(nil, nil, nil, nil, nil, nil, nil, service.ScheduleGeneratorConfig{})),
		health:    handler.NewMetricsHandler(metrics, nil),
		enabled:   true,
	})
	return router, tokens
}

func TestRouterPublicEndpoints(t *testing.T) {
	router, _ := testRouter(t)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterGuardsScheduleRoutes(t *testing.T) {
	router, tokens := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/schedules/generate", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	viewer, err := tokens.Issue(dto.IssueTokenRequest{Subject: "viewer-1", Role: models.RoleViewer})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules/generate", nil)
	req.Header.Set("Authorization", "Bearer "+viewer.AccessToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/schedule-runs", nil)
	req.Header.Set("Authorization", "Bearer "+viewer.AccessToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterWithoutExports(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/export/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
