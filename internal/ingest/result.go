package ingest

import (
	"media-ingest/internal/media"
	"media-ingest/internal/mediatypes"
)

// Asset describes a managed file and its derived artifacts. Artifact paths
// are project-relative and empty when the artifact could not be produced.
type Asset struct {
	Kind                       mediatypes.Kind `json:"kind"`
	RelativePath               string          `json:"relativePath"`
	AbsolutePath               string          `json:"absolutePath"`
	ThumbnailRelativePath      string          `json:"thumbnailRelativePath,omitempty"`
	WaveformRelativePath       string          `json:"waveformRelativePath,omitempty"`
	ExtractedAudioRelativePath string          `json:"extractedAudioRelativePath,omitempty"`
	Metadata                   media.Metadata  `json:"metadata"`
}

// ImportResult is returned by Import.
type ImportResult struct {
	ID string `json:"id"`
	Asset
}

// ReplaceResult is returned by Replace. The relative path is the handle.
type ReplaceResult struct {
	Asset
}

// BatchItem is the outcome of one source in ImportBatch.
type BatchItem struct {
	SourcePath string        `json:"sourcePath"`
	Result     *ImportResult `json:"result,omitempty"`
	Err        error         `json:"-"`
	Error      string        `json:"error,omitempty"`
}
