package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/startforge/blueprint/internal/engine"
)

// HealthResponse represents the JSON response from the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Index     string `json:"index"`
	Documents int    `json:"documents"`
	Timestamp string `json:"timestamp"`
}

// StatsReporter is the engine dependency of the health endpoint.
// Implemented by *engine.Engine.
type StatsReporter interface {
	Stats(ctx context.Context) (*engine.Stats, error)
}

// NewHealthHandler creates an HTTP handler for the /health endpoint.
// The server is healthy as soon as it can report stats; the index field
// distinguishes a ready index from one still pending lazy ingestion.
func NewHealthHandler(reporter StatsReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		response := HealthResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")

		stats, err := reporter.Stats(ctx)
		if err != nil {
			response.Status = "unhealthy"
			response.Index = "error"
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(response)
			return
		}

		response.Status = "healthy"
		if stats.Initialized {
			response.Index = "ready"
			if stats.Index != nil {
				response.Documents = stats.Index.Documents
			}
		} else {
			response.Index = "pending"
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}
