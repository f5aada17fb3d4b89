// Package logging provides a simple leveled logging interface for the
// media ingest service.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions, including degraded imports
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable, or
// DEBUG=true. Component loggers created with New prefix each line with the
// component name:
//
//	log := logging.New("ingest")
//	log.Warn("thumbnail failed for %s: %v", path, err)
package logging
