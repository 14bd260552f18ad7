// Package main starts an HTTP server that exposes the generation pipeline.
// Clients post a graph document and receive either the generated server
// source or the resolved model as JSON.
package main

import (
	"net/http"
	"os"

	"github.com/routeforge/core/cmd/api/middleware"
	"github.com/routeforge/core/internal/handlers"
	"github.com/routeforge/core/internal/pipeline"
	"github.com/routeforge/core/internal/shared"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func newRouter(p *pipeline.Pipeline) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler(p))
	mux.HandleFunc("/generate", handlers.GenerateHandler(p))
	mux.HandleFunc("/resolve", handlers.ResolveHandler(p))
	return mux
}

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := getEnv("ROUTEFORGE_CONFIG", "routeforge.toml")
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := shared.LoadConfig(configPath)
		if err != nil {
			logger.Fatal("failed to load config", "path", configPath, "error", err)
		}
		config = loaded
	}

	if err := shared.SetLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("invalid log level, keeping default", "level", config.Log.Level)
	}

	p := pipeline.FromConfig(config, logger)
	origin := getEnv("CORS_ALLOWED_ORIGIN", config.API.AllowedOrigin)
	handler := middleware.Cors(origin)(newRouter(p))

	logger.Info("server starting", "addr", config.API.Addr)
	logger.Fatal(http.ListenAndServe(config.API.Addr, handler))
}
