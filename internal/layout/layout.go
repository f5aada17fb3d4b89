package layout

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"media-ingest/internal/mediatypes"
)

// Directory names under the project root.
const (
	VideosDir     = "videos"
	AudioDir      = "audio"
	ImagesDir     = "images"
	CacheDir      = ".cache"
	ThumbnailsDir = ".cache/thumbnails"
	WaveformsDir  = ".cache/waveforms"
)

// Extensions of engine-produced artifacts.
const (
	ExtractedAudioExt = ".m4a"
	VideoThumbExt     = ".jpg"
	WaveformExt       = ".png"
)

// ErrOutsideTree is returned when a relative path would resolve outside the
// project root.
var ErrOutsideTree = errors.New("path escapes project root")

// ErrNotManaged is returned for a path that is not a durable original
// directly under videos/, audio/ or images/.
var ErrNotManaged = errors.New("path is not a managed asset")

// dirPerm is the mode for every managed directory.
const dirPerm = 0o755

// managedDirs is every directory EnsureDirectories creates, durable first.
var managedDirs = []string{VideosDir, AudioDir, ImagesDir, ThumbnailsDir, WaveformsDir}

// AssetDirectory returns the durable storage directory for kind.
func AssetDirectory(projectRoot string, kind mediatypes.Kind) string {
	switch kind {
	case mediatypes.KindAudio:
		return filepath.Join(projectRoot, AudioDir)
	case mediatypes.KindImage:
		return filepath.Join(projectRoot, ImagesDir)
	default:
		return filepath.Join(projectRoot, VideosDir)
	}
}

// EnsureDirectories creates the managed tree under projectRoot. Existing
// directories are left alone, so calling it repeatedly is a no-op.
func EnsureDirectories(projectRoot string) error {
	for _, dir := range managedDirs {
		full := filepath.Join(projectRoot, filepath.FromSlash(dir))
		if err := os.MkdirAll(full, dirPerm); err != nil {
			return fmt.Errorf("create managed directory %s: %w", dir, err)
		}
	}
	return nil
}

// OriginalPath returns the durable location for an asset named name.
// ext should include the leading dot; an empty ext becomes DefaultExtension.
func OriginalPath(projectRoot string, kind mediatypes.Kind, name, ext string) string {
	if ext == "" {
		ext = mediatypes.DefaultExtension
	}
	return filepath.Join(AssetDirectory(projectRoot, kind), name+ext)
}

// ExtractedAudioPath returns where the audio track of video asset name is written.
func ExtractedAudioPath(projectRoot, name string) string {
	return filepath.Join(projectRoot, AudioDir, name+ExtractedAudioExt)
}

// VideoThumbnailPath returns the cached frame thumbnail for video asset name.
func VideoThumbnailPath(projectRoot, name string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(ThumbnailsDir), name+VideoThumbExt)
}

// ImageThumbnailPath returns the cached copy used as thumbnail for image asset
// name. The original extension is kept because the copy is not re-encoded.
func ImageThumbnailPath(projectRoot, name, ext string) string {
	if ext == "" {
		ext = mediatypes.DefaultExtension
	}
	return filepath.Join(projectRoot, filepath.FromSlash(ThumbnailsDir), name+ext)
}

// WaveformPath returns the cached waveform image for asset name.
func WaveformPath(projectRoot, name string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(WaveformsDir), name+WaveformExt)
}

// normalizeSlashes converts both separator styles to "/" independent of the
// host convention.
func normalizeSlashes(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// ToRelativePath strips projectRoot from p and normalizes the result to a
// forward-slash path without a leading "/" or "./". A path that is already
// relative is only normalized, so the function is idempotent.
func ToRelativePath(projectRoot, p string) string {
	rel := normalizeSlashes(p)
	root := strings.TrimRight(normalizeSlashes(projectRoot), "/")

	switch {
	case root != "" && rel == root:
		rel = ""
	case root != "" && strings.HasPrefix(rel, root+"/"):
		rel = rel[len(root)+1:]
	}

	if rel != "" {
		rel = path.Clean(rel)
	}
	for {
		switch {
		case strings.HasPrefix(rel, "./"):
			rel = rel[2:]
		case strings.HasPrefix(rel, "/"):
			rel = rel[1:]
		case rel == ".":
			rel = ""
		default:
			return rel
		}
	}
}

// Resolve returns the absolute location of a project-relative path. Paths that
// climb out of projectRoot are rejected with ErrOutsideTree.
func Resolve(projectRoot, relativePath string) (string, error) {
	rel := ToRelativePath(projectRoot, relativePath)
	if rel == "" || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%q: %w", relativePath, ErrOutsideTree)
	}
	return filepath.Join(projectRoot, filepath.FromSlash(rel)), nil
}

// KindForPath returns the kind recorded by the durable directory that holds
// relativePath. Only files directly under videos/, audio/ or images/ qualify;
// cache files, nested paths and anything else in the project are rejected
// with ErrNotManaged.
func KindForPath(relativePath string) (mediatypes.Kind, error) {
	dir, name := path.Split(ToRelativePath("", relativePath))
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%q: %w", relativePath, ErrNotManaged)
	}
	switch dir {
	case VideosDir + "/":
		return mediatypes.KindVideo, nil
	case AudioDir + "/":
		return mediatypes.KindAudio, nil
	case ImagesDir + "/":
		return mediatypes.KindImage, nil
	}
	return "", fmt.Errorf("%q: %w", relativePath, ErrNotManaged)
}

// BaseName returns the file name of p without its extension, and the extension.
func BaseName(p string) (name, ext string) {
	base := path.Base(normalizeSlashes(p))
	ext = path.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}
