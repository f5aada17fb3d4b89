package handlers

import (
	"fmt"
	"net/http"

	"media-ingest/internal/ingest"
	"media-ingest/internal/mediatypes"
)

// maxBatchSources bounds one batch request.
const maxBatchSources = 500

// ImportRequest is the body of POST /api/import.
type ImportRequest struct {
	ProjectRoot string `json:"projectRoot"`
	SourcePath  string `json:"sourcePath"`
	Kind        string `json:"kind,omitempty"`
}

// BatchImportRequest is the body of POST /api/import/batch.
type BatchImportRequest struct {
	ProjectRoot string   `json:"projectRoot"`
	SourcePaths []string `json:"sourcePaths"`
	Kind        string   `json:"kind,omitempty"`
}

// ReplaceRequest is the body of POST /api/replace.
type ReplaceRequest struct {
	ProjectRoot  string `json:"projectRoot"`
	RelativePath string `json:"relativePath"`
	SourcePath   string `json:"sourcePath"`
}

// parseKind accepts an empty kind (classify by extension) or a valid name.
func parseKind(s string) (mediatypes.Kind, error) {
	if s == "" {
		return "", nil
	}
	kind, ok := mediatypes.ParseKind(s)
	if !ok {
		return "", fmt.Errorf("%w: kind must be video, audio or image", errBadRequest)
	}
	return kind, nil
}

// Import copies one file into a project.
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireAbs("projectRoot", req.ProjectRoot); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireAbs("sourcePath", req.SourcePath); err != nil {
		writeError(w, r, err)
		return
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.importer.Import(importContext(r), req.ProjectRoot, req.SourcePath, kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusOK, res)
}

// BatchImportResponse is the body returned by POST /api/import/batch.
type BatchImportResponse struct {
	Items     []ingest.BatchItem `json:"items"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// ImportBatch imports several files; per-file failures are reported in the
// items rather than failing the request.
func (h *Handlers) ImportBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireAbs("projectRoot", req.ProjectRoot); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.SourcePaths) == 0 {
		writeError(w, r, fmt.Errorf("%w: sourcePaths is required", errBadRequest))
		return
	}
	if len(req.SourcePaths) > maxBatchSources {
		writeError(w, r, fmt.Errorf("%w: at most %d sourcePaths per request", errBadRequest, maxBatchSources))
		return
	}
	for _, p := range req.SourcePaths {
		if err := requireAbs("sourcePaths[]", p); err != nil {
			writeError(w, r, err)
			return
		}
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := h.importer.ImportBatch(importContext(r), req.ProjectRoot, req.SourcePaths, kind)
	resp := BatchImportResponse{Items: items}
	for _, item := range items {
		if item.Err != nil {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}
	writeJSONStatus(w, http.StatusOK, resp)
}

// Replace overwrites a managed file and regenerates its previews.
func (h *Handlers) Replace(w http.ResponseWriter, r *http.Request) {
	var req ReplaceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireAbs("projectRoot", req.ProjectRoot); err != nil {
		writeError(w, r, err)
		return
	}
	if req.RelativePath == "" {
		writeError(w, r, fmt.Errorf("%w: relativePath is required", errBadRequest))
		return
	}
	if err := requireAbs("sourcePath", req.SourcePath); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.importer.Replace(importContext(r), req.ProjectRoot, req.RelativePath, req.SourcePath)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusOK, res)
}
