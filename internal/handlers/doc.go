// Package handlers implements the HTTP API of the ingest service.
//
// All request bodies and responses are JSON. Import and replace map their
// errors onto status codes: malformed input is 400, a missing source file
// is 404, any other failure is 500. Degraded imports (missing previews or
// metadata) are still 200 responses.
package handlers
