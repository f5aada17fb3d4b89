package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"

	"media-ingest/internal/ingest"
	"media-ingest/internal/layout"
	"media-ingest/internal/logging"
)

// maxBodyBytes bounds request bodies; they only carry paths.
const maxBodyBytes = 1 << 20

// errBadRequest marks request validation failures.
var errBadRequest = errors.New("bad request")

// writeJSON encodes v as JSON and writes it to the response writer.
// Encoding or write errors can only be logged at this point.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// writeJSONStatus writes v with the given status code.
func writeJSONStatus(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, v)
}

// decodeJSON reads a single JSON object from r into v, rejecting unknown
// fields and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON body", errBadRequest)
	}
	return nil
}

// requireAbs checks that a request path field is present and absolute.
func requireAbs(field, p string) error {
	if p == "" {
		return fmt.Errorf("%w: %s is required", errBadRequest, field)
	}
	if !filepath.IsAbs(p) {
		return fmt.Errorf("%w: %s must be an absolute path", errBadRequest, field)
	}
	return nil
}

// importContext detaches an import from the client connection. Imports run
// to completion once started; a disconnect only loses the response.
func importContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// statusForError maps a fatal import error to an HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, layout.ErrOutsideTree),
		errors.Is(err, layout.ErrNotManaged),
		errors.Is(err, ingest.ErrInvalidKind),
		errors.Is(err, ingest.ErrMissingProjectRoot),
		errors.Is(err, ingest.ErrNotRegularFile):
		return http.StatusBadRequest
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err with its mapped status and logs server-side failures.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logging.Error("%s %s failed: %v", r.Method, r.URL.Path, err)
	}
	writeJSONError(w, err.Error(), status)
}
