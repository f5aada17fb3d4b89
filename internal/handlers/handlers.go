package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"media-ingest/internal/database"
	"media-ingest/internal/ingest"
	"media-ingest/internal/startup"
)

// Catalog is the read side of the asset catalog.
type Catalog interface {
	ListAssets(ctx context.Context, projectRoot, kind string) ([]database.Asset, error)
}

// Handlers serves the ingest API.
type Handlers struct {
	importer  *ingest.Importer
	catalog   Catalog
	engine    startup.EngineStatus
	startTime time.Time
}

// New returns Handlers backed by importer. catalog may be nil, in which case
// the asset listing answers 503.
func New(importer *ingest.Importer, catalog Catalog, engine startup.EngineStatus) *Handlers {
	return &Handlers{
		importer:  importer,
		catalog:   catalog,
		engine:    engine,
		startTime: time.Now(),
	}
}

// Routes registers the API on r.
func (h *Handlers) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet, http.MethodHead).Name("health")
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet).Name("version")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/import", h.Import).Methods(http.MethodPost).Name("import")
	api.HandleFunc("/import/batch", h.ImportBatch).Methods(http.MethodPost).Name("import-batch")
	api.HandleFunc("/replace", h.Replace).Methods(http.MethodPost).Name("replace")
	api.HandleFunc("/assets", h.ListAssets).Methods(http.MethodGet).Name("assets")
	api.HandleFunc("/assets/file", h.GetAssetFile).Methods(http.MethodGet, http.MethodHead).Name("asset-file")
}
