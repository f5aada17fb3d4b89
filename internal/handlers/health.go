package handlers

import (
	"net/http"
	"runtime"
	"time"

	"media-ingest/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
	FFmpeg       bool   `json:"ffmpeg"`
	FFprobe      bool   `json:"ffprobe"`
	Catalog      bool   `json:"catalog"`
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck reports service health. A missing engine binary degrades the
// status but still answers 200, since imports keep working without previews.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:       statusHealthy,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		FFmpeg:       h.engine.FFmpeg,
		FFprobe:      h.engine.FFprobe,
		Catalog:      h.catalog != nil,
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
	}
	if !resp.FFmpeg || !resp.FFprobe {
		resp.Status = statusDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		writeJSON(w, resp)
	}
}
