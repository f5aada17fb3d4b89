package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"media-ingest/internal/layout"
	"media-ingest/internal/mediatypes"
)

// ListAssets returns the catalog rows of a project, optionally filtered by
// kind.
func (h *Handlers) ListAssets(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeJSONError(w, "asset catalog is not enabled", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	root := q.Get("projectRoot")
	if err := requireAbs("projectRoot", root); err != nil {
		writeError(w, r, err)
		return
	}
	kind, err := parseKind(q.Get("kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	assets, err := h.catalog.ListAssets(r.Context(), filepath.Clean(root), string(kind))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusOK, assets)
}

// GetAssetFile serves a file from a project's managed tree, such as an
// original, extracted audio, thumbnail or waveform.
func (h *Handlers) GetAssetFile(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	root := q.Get("projectRoot")
	if err := requireAbs("projectRoot", root); err != nil {
		writeError(w, r, err)
		return
	}
	rel := q.Get("path")
	if rel == "" {
		writeError(w, r, fmt.Errorf("%w: path is required", errBadRequest))
		return
	}

	full, err := layout.Resolve(root, rel)
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := os.Open(full)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if info.IsDir() {
		writeError(w, r, fmt.Errorf("%w: %s is a directory", errBadRequest, rel))
		return
	}

	w.Header().Set("Content-Type", mediatypes.GetMimeType(strings.ToLower(filepath.Ext(full))))
	if strings.HasPrefix(layout.ToRelativePath(root, full), layout.CacheDir+"/") {
		// Cached previews are rewritten in place by replace.
		w.Header().Set("Cache-Control", "no-cache")
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
