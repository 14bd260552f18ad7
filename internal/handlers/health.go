// Package handlers provides HTTP request handlers for the API endpoints.
// Every handler is bound to the pipeline it serves, so responses reflect the
// generator configuration the service was started with.
package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/routeforge/core/internal/pipeline"
)

const ServiceName = "routeforge-api"

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

var startTime = time.Now()

// HealthHandler reports liveness together with the generator settings applied
// to every /generate and /resolve request.
func HealthHandler(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Service:   ServiceName,
			Uptime:    time.Since(startTime).String(),
			Details: map[string]string{
				"propagation":    string(p.Propagation()),
				"server_port":    strconv.Itoa(p.Port()),
				"default_output": p.DefaultOutput(),
				"go_version":     runtime.Version(),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			p.Logger().Error("failed to encode health response", "error", err)
		}
	}
}
