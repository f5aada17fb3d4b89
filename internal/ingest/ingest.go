package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"media-ingest/internal/database"
	"media-ingest/internal/engine"
	"media-ingest/internal/filesystem"
	"media-ingest/internal/layout"
	"media-ingest/internal/logging"
	"media-ingest/internal/media"
	"media-ingest/internal/mediatypes"
	"media-ingest/internal/metrics"
)

var (
	// ErrNotRegularFile is returned when the source path is a directory or
	// other non-regular file.
	ErrNotRegularFile = errors.New("source is not a regular file")
	// ErrInvalidKind is returned for a forced kind outside video, audio, image.
	ErrInvalidKind = errors.New("invalid media kind")
	// ErrMissingProjectRoot is returned when no project root is given.
	ErrMissingProjectRoot = errors.New("project root is required")
)

// Operation names used in logs and metric labels.
const (
	OpImport  = "import"
	OpReplace = "replace"
)

// Catalog records import results. Failures are logged, never returned.
type Catalog interface {
	UpsertAsset(ctx context.Context, a *database.Asset) error
}

// Importer runs Import and Replace against any number of project roots. It
// holds no per-project state and is safe for concurrent use.
type Importer struct {
	prober    *media.Prober
	generator *media.Generator
	genOpts   *media.GeneratorOptions
	catalog   Catalog
	newID     func() string
	retry     filesystem.RetryConfig
	workers   int
	log       *logging.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithCatalog records every result in c.
func WithCatalog(c Catalog) Option {
	return func(im *Importer) { im.catalog = c }
}

// WithIDFunc overrides identity allocation. fn must return unique,
// filename-safe strings.
func WithIDFunc(fn func() string) Option {
	return func(im *Importer) { im.newID = fn }
}

// WithRetry sets the retry policy for source access.
func WithRetry(cfg filesystem.RetryConfig) Option {
	return func(im *Importer) { im.retry = cfg }
}

// WithGeneratorOptions overrides the derivation parameters.
func WithGeneratorOptions(opts media.GeneratorOptions) Option {
	return func(im *Importer) { im.genOpts = &opts }
}

// WithWorkers sets the pool size used by ImportBatch.
func WithWorkers(n int) Option {
	return func(im *Importer) { im.workers = n }
}

// New returns an Importer that derives artifacts through eng.
func New(eng engine.Engine, opts ...Option) *Importer {
	im := &Importer{
		prober: media.NewProber(eng),
		newID:  uuid.NewString,
		retry:  filesystem.DefaultRetryConfig(),
		log:    logging.New("ingest"),
	}
	for _, opt := range opts {
		opt(im)
	}

	genOpts := media.DefaultGeneratorOptions()
	genOpts.Retry = im.retry
	if im.genOpts != nil {
		genOpts = *im.genOpts
	}
	im.generator = media.NewGenerator(eng, genOpts)
	return im
}

// Import copies sourcePath into projectRoot's managed tree under a new
// identity and derives its artifacts. forced overrides classification when
// non-empty.
func (im *Importer) Import(ctx context.Context, projectRoot, sourcePath string, forced mediatypes.Kind) (res *ImportResult, err error) {
	kind := forced
	if kind == "" {
		kind = mediatypes.Classify(sourcePath)
	}
	defer im.track(OpImport, &kind, time.Now(), &err)()

	projectRoot, err = normalizeRoot(projectRoot)
	if err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, forced)
	}
	info, err := im.statSource(sourcePath)
	if err != nil {
		return nil, err
	}
	if err := layout.EnsureDirectories(projectRoot); err != nil {
		return nil, err
	}

	id := im.newID()
	_, ext := layout.BaseName(sourcePath)
	dest := layout.OriginalPath(projectRoot, kind, id, ext)

	if err := im.copy(sourcePath, dest); err != nil {
		return nil, err
	}

	asset := im.derive(ctx, projectRoot, kind, dest, id, ext, info)
	res = &ImportResult{ID: id, Asset: asset}
	im.record(ctx, projectRoot, id, &res.Asset)

	im.log.Info("imported %s as %s (%s)", sourcePath, asset.RelativePath, kind)
	return res, nil
}

// Replace overwrites the managed file at relativePath with sourcePath and
// regenerates its artifacts. relativePath must name a file directly under
// videos/, audio/ or images/; that directory decides the kind. Cached
// artifacts are named after its base name, overwriting earlier ones.
func (im *Importer) Replace(ctx context.Context, projectRoot, relativePath, sourcePath string) (res *ReplaceResult, err error) {
	var kind mediatypes.Kind
	defer im.track(OpReplace, &kind, time.Now(), &err)()

	projectRoot, err = normalizeRoot(projectRoot)
	if err != nil {
		return nil, err
	}
	dest, err := layout.Resolve(projectRoot, relativePath)
	if err != nil {
		return nil, err
	}
	kind, err = layout.KindForPath(layout.ToRelativePath(projectRoot, dest))
	if err != nil {
		return nil, err
	}
	info, err := im.statSource(sourcePath)
	if err != nil {
		return nil, err
	}
	if err := layout.EnsureDirectories(projectRoot); err != nil {
		return nil, err
	}

	if err := im.copy(sourcePath, dest); err != nil {
		return nil, err
	}

	name, ext := layout.BaseName(dest)
	asset := im.derive(ctx, projectRoot, kind, dest, name, ext, info)
	res = &ReplaceResult{Asset: asset}
	im.record(ctx, projectRoot, name, &res.Asset)

	im.log.Info("replaced %s from %s", asset.RelativePath, sourcePath)
	return res, nil
}

func normalizeRoot(projectRoot string) (string, error) {
	if projectRoot == "" {
		return "", ErrMissingProjectRoot
	}
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}
	return abs, nil
}

func (im *Importer) statSource(sourcePath string) (os.FileInfo, error) {
	info, err := filesystem.StatWithRetry(sourcePath, im.retry)
	if err != nil {
		return nil, fmt.Errorf("stat source %s: %w", sourcePath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", sourcePath, ErrNotRegularFile)
	}
	return info, nil
}

func (im *Importer) copy(sourcePath, dest string) error {
	n, err := filesystem.CopyFile(sourcePath, dest, im.retry)
	if err != nil {
		return fmt.Errorf("copy %s: %w", sourcePath, err)
	}
	metrics.ImportBytesCopied.Add(float64(n))
	return nil
}

// record writes asset to the catalog when one is configured.
func (im *Importer) record(ctx context.Context, projectRoot, id string, asset *Asset) {
	if im.catalog == nil {
		return
	}
	row := &database.Asset{
		ProjectRoot:        projectRoot,
		RelativePath:       asset.RelativePath,
		ID:                 id,
		Kind:               string(asset.Kind),
		ThumbnailPath:      asset.ThumbnailRelativePath,
		WaveformPath:       asset.WaveformRelativePath,
		ExtractedAudioPath: asset.ExtractedAudioRelativePath,
		Size:               asset.Metadata.Size,
		ModTime:            asset.Metadata.LastModified,
		Duration:           asset.Metadata.Duration,
		Width:              asset.Metadata.Width,
		Height:             asset.Metadata.Height,
		FPS:                asset.Metadata.FPS,
	}
	if err := im.catalog.UpsertAsset(ctx, row); err != nil {
		im.log.Warn("catalog update failed for %s: %v", asset.RelativePath, err)
	}
}

// track updates the import metrics; call the returned func when the
// operation finishes. kindp is read at that point, since Replace learns the
// kind only after validating the path.
func (im *Importer) track(op string, kindp *mediatypes.Kind, start time.Time, errp *error) func() {
	metrics.ImportsInFlight.Inc()
	return func() {
		metrics.ImportsInFlight.Dec()
		kind := *kindp
		label := string(kind)
		if !kind.Valid() {
			label = "unknown"
		}
		status := "success"
		if *errp != nil {
			status = "error"
		}
		metrics.ImportsTotal.WithLabelValues(op, label, status).Inc()
		metrics.ImportDuration.WithLabelValues(op, label).Observe(time.Since(start).Seconds())
	}
}
