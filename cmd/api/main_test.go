// Package main starts an HTTP server that exposes the generation pipeline.
// Clients post a graph document and receive either the generated server
// source or the resolved model as JSON.
package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/routeforge/core/cmd/api/middleware"
	"github.com/routeforge/core/internal/handlers"
	"github.com/routeforge/core/internal/models"
	"github.com/routeforge/core/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminGraph = `{"nodes":[
	{"id":"1","properties":{"type":"entry"}},
	{"id":"2","target":["5"],"properties":{"type":"middleware","admin_required":true}},
	{"id":"3","properties":{"type":"middleware","log_requests":true}},
	{"id":"5","properties":{"endpoint":"/admin"}}
]}`

func TestMainRoutes(t *testing.T) {
	router := newRouter(pipeline.New(pipeline.Options{}))

	t.Run("health endpoint is accessible", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response handlers.HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, handlers.ServiceName, response.Service)
	})

	t.Run("generate endpoint emits admin chain", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(adminGraph))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "app.get('/admin', authMiddleware, adminMiddleware, loggingMiddleware, (req, res) => {")
	})

	t.Run("resolve endpoint reports propagated routes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/resolve", strings.NewReader(adminGraph))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var model models.Model
		require.NoError(t, json.NewDecoder(w.Body).Decode(&model))
		assert.Equal(t, []string{"/admin"}, model.AdminAuth.Routes)
		assert.True(t, model.Routes[0].AdminRequired)
	})

	t.Run("non-existent route returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCorsWrapsRouter(t *testing.T) {
	handler := middleware.Cors("https://app.example")(newRouter(pipeline.New(pipeline.Options{})))

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ROUTEFORGE_TEST_VALUE", "set")

	assert.Equal(t, "set", getEnv("ROUTEFORGE_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", getEnv("ROUTEFORGE_TEST_UNSET", "fallback"))
}
