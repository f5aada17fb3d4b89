package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"media-ingest/internal/database"
	"media-ingest/internal/engine"
	"media-ingest/internal/handlers"
	"media-ingest/internal/ingest"
	"media-ingest/internal/startup"
)

func newTestHandlers(t *testing.T) *handlers.Handlers {
	t.Helper()
	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "assets.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	eng := engine.NewFFmpeg("", "")
	return handlers.New(ingest.New(eng, ingest.WithCatalog(db)), db, startup.EngineStatus{})
}

func TestSetupRouter(t *testing.T) {
	tests := []struct {
		name           string
		metricsEnabled bool
		path           string
		want           int
	}{
		{"health", false, "/health", http.StatusOK},
		{"version", false, "/version", http.StatusOK},
		{"metrics enabled", true, "/metrics", http.StatusOK},
		{"metrics disabled", false, "/metrics", http.StatusNotFound},
		{"unknown route", false, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(newTestHandlers(t), tt.metricsEnabled)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestSetupRouter_MethodNotAllowed(t *testing.T) {
	r := setupRouter(newTestHandlers(t), false)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/import", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/import = %d, want 405", rec.Code)
	}
}
