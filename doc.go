// Package main provides the HTTP server for media-ingest.
//
// media-ingest copies video, audio and image files into a project directory
// with a fixed layout and derives the artifacts an editor needs from each
// one: a thumbnail, an extracted audio track and a waveform image for video,
// a waveform for audio, and a cached copy of each image. Technical metadata
// (duration, dimensions, frame rate) is probed at import time.
//
// # Application Lifecycle
//
//  1. Memory Configuration: sets GOMEMLIMIT from MEMORY_LIMIT if present
//  2. Configuration Loading: reads environment variables and prepares the
//     catalog directory
//  3. Engine Check: looks up ffmpeg and ffprobe; a missing binary degrades
//     previews but never blocks imports
//  4. Catalog Initialization: opens the SQLite asset catalog
//  5. HTTP Server Setup: routes, middleware and the /metrics endpoint
//  6. Graceful Shutdown: on SIGINT/SIGTERM the server drains in-flight
//     imports (30s timeout) and the catalog is closed
//
// # Project Layout
//
// Every project root receives:
//
//	videos/            imported video originals
//	audio/             imported audio originals
//	images/            imported image originals
//	.cache/audio/      audio extracted from videos
//	.cache/thumbnails/ video thumbnails and cached images
//	.cache/waveforms/  waveform images
//
// # Environment Variables
//
//   - PORT: HTTP port (default: 8765)
//   - DATABASE_DIR: directory for the asset catalog
//   - FFMPEG_PATH, FFPROBE_PATH: engine binaries
//   - PROJECTS_DIR: parent of the project roots, used to label filesystem
//     retry metrics
//   - IMPORT_WORKERS: concurrency for batch imports
//   - METRICS_ENABLED: expose /metrics (default: true)
//   - LOG_HEALTH_CHECKS: log /health requests (default: true)
//   - LOG_LEVEL: debug, info, warn or error
//   - MEMORY_LIMIT, MEMORY_RATIO: container memory limit and the share of it
//     given to the Go runtime
//
// # Related Packages
//
//   - [media-ingest/internal/ingest]: import and replace orchestration
//   - [media-ingest/internal/layout]: project directory layout
//   - [media-ingest/internal/media]: metadata probing and artifact generation
//   - [media-ingest/internal/engine]: ffmpeg and ffprobe invocation
//   - [media-ingest/internal/database]: SQLite asset catalog
//   - [media-ingest/internal/handlers]: HTTP request handlers
//
// The ingest command in cmd/ingest runs the same imports from a shell.
package main
