package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-ingest/internal/database"
	"media-ingest/internal/engine"
	"media-ingest/internal/filesystem"
	"media-ingest/internal/handlers"
	"media-ingest/internal/ingest"
	"media-ingest/internal/logging"
	"media-ingest/internal/memory"
	"media-ingest/internal/metrics"
	"media-ingest/internal/middleware"
	"media-ingest/internal/startup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Configure memory limit before anything allocates much
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	if config.MetricsEnabled {
		metrics.InitializeMetrics()
	}
	if config.ProjectsDir != "" {
		filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
			"projects": config.ProjectsDir,
		}))
	}

	// Media engine
	engineStatus := startup.LogEngineInit(config)
	eng := engine.NewFFmpeg(config.FFmpegPath, config.FFprobePath)

	// Catalog
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize database: %v", err)
	}
	startup.LogCatalogInit(time.Since(dbStart))

	importer := ingest.New(eng,
		ingest.WithCatalog(db),
		ingest.WithWorkers(config.ImportWorkers),
	)
	h := handlers.New(importer, db, engineStatus)

	router := setupRouter(h, config.MetricsEnabled)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Compression(middleware.DefaultCompressionConfig())(router)
	handler = middleware.Logger(loggingConfig)(handler)

	// Imports of large files can run for minutes, so there is no write timeout.
	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go handleShutdown(srv, db)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()
	h.Routes(r)
	if metricsEnabled {
		r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")
	}
	return r
}

func handleShutdown(srv *http.Server, db *database.Database) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// In-flight imports finish before the catalog closes.
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if err := db.Close(); err != nil {
		logging.Warn("Catalog close error: %v", err)
	} else {
		startup.LogShutdownStepComplete("Catalog closed")
	}

	startup.LogShutdownComplete()
}
