// Package metrics provides Prometheus instrumentation for the media ingest service.
//
// All metrics are prefixed with "media_ingest_" to avoid naming collisions with
// other applications.
//
// # Metric Categories
//
// ## Import Metrics
//
//   - ImportsTotal: Counter of Import/Replace operations by operation, kind and status
//   - ImportDuration: Histogram of end-to-end operation duration
//   - ImportsInFlight: Gauge of operations currently running
//   - ImportBytesCopied: Counter of bytes copied into managed storage
//
// ## Derivation Metrics
//
//   - DerivationsTotal: Counter of derived-artifact attempts by artifact and status
//     ("success", "failed", "skipped")
//   - DerivationDuration: Histogram of derivation duration by artifact
//
// ## Engine Metrics
//
//   - EngineInvocationsTotal: Counter of media engine calls by capability and status
//   - EngineInvocationDuration: Histogram of engine call duration by capability
//
// ## Filesystem Metrics
//
// Retry behaviour for network-mounted sources (ESTALE handling), labelled by
// retry operation and volume.
//
// ## HTTP and Database Metrics
//
// Request counters for the companion HTTP surface and query counters for the
// asset catalog.
//
// Call InitializeMetrics once at startup so every label combination is exported
// from the first scrape.
package metrics
