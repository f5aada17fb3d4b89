// Package startup loads configuration and prints the startup and shutdown
// log sections.
//
// # Configuration
//
// [LoadConfig] reads these environment variables:
//
//   - PORT: HTTP port (default: 8765)
//   - DATABASE_DIR: catalog directory (default: <user config dir>/media-ingest)
//   - FFMPEG_PATH, FFPROBE_PATH: engine binaries (default: ffmpeg, ffprobe)
//   - PROJECTS_DIR: parent of project roots, used to label filesystem metrics
//   - IMPORT_WORKERS: batch import pool size (default: derived from GOMAXPROCS)
//   - METRICS_ENABLED: expose /metrics (default: true)
//   - LOG_HEALTH_CHECKS: log /health requests (default: true)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//
// The catalog directory is created if missing and must be writable. The
// engine binaries are checked once by [LogEngineInit]; a missing binary is
// logged but does not stop the service.
//
// # Build Information
//
// Version, Commit and BuildTime are set at build time:
//
//	go build -ldflags "-X media-ingest/internal/startup.Version=1.0.0"
package startup
