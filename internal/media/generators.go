package media

import (
	"context"
	"fmt"
	"os"
	"time"

	"media-ingest/internal/engine"
	"media-ingest/internal/filesystem"
	"media-ingest/internal/logging"
	"media-ingest/internal/metrics"
)

// Fixed derivation parameters.
const (
	ThumbnailOffsetSeconds = 0.1
	ThumbnailWidth         = 320
	ThumbnailQuality       = 3

	AudioCodec   = "aac"
	AudioBitrate = "192k"

	WaveformWidth  = 1000
	WaveformHeight = 200
	WaveformColor  = "#4a9eff"
)

// Artifact names used in logs and metric labels.
const (
	ArtifactThumbnail = "thumbnail"
	ArtifactAudio     = "audio"
	ArtifactWaveform  = "waveform"
)

// GeneratorOptions holds the engine parameters for each artifact. With
// VerifyStills set, generated JPEG and PNG files must decode before the
// step counts as a success.
type GeneratorOptions struct {
	ThumbnailAt  float64
	Frame        engine.FrameOptions
	Audio        engine.AudioOptions
	Waveform     engine.WaveformOptions
	VerifyStills bool
	Retry        filesystem.RetryConfig
}

// DefaultGeneratorOptions returns the standard artifact parameters.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		ThumbnailAt:  ThumbnailOffsetSeconds,
		Frame:        engine.FrameOptions{WidthPx: ThumbnailWidth, Quality: ThumbnailQuality},
		Audio:        engine.AudioOptions{Codec: AudioCodec, Bitrate: AudioBitrate, FastStart: true},
		Waveform:     engine.WaveformOptions{WidthPx: WaveformWidth, HeightPx: WaveformHeight, Color: WaveformColor},
		VerifyStills: true,
		Retry:        filesystem.DefaultRetryConfig(),
	}
}

// Generator produces derived artifacts. Each method is independent and never
// returns an error; failures are reported in the Outcome and any partial
// output at the target path is removed.
type Generator struct {
	engine engine.Engine
	opts   GeneratorOptions
	log    *logging.Logger
}

// NewGenerator returns a Generator using eng with opts.
func NewGenerator(eng engine.Engine, opts GeneratorOptions) *Generator {
	return &Generator{engine: eng, opts: opts, log: logging.New("derive")}
}

// VideoThumbnail extracts an early frame of a video as a JPEG at dst.
func (g *Generator) VideoThumbnail(ctx context.Context, src, dst string) Outcome {
	return g.attempt(ArtifactThumbnail, src, dst, g.opts.VerifyStills, func() error {
		return g.engine.ExtractFrame(ctx, src, g.opts.ThumbnailAt, dst, g.opts.Frame)
	})
}

// ImageThumbnail copies an image unchanged into the thumbnail cache.
func (g *Generator) ImageThumbnail(_ context.Context, src, dst string) Outcome {
	return g.attempt(ArtifactThumbnail, src, dst, false, func() error {
		_, err := filesystem.CopyFile(src, dst, g.opts.Retry)
		return err
	})
}

// ExtractAudio writes the audio track of a video to dst.
func (g *Generator) ExtractAudio(ctx context.Context, src, dst string) Outcome {
	return g.attempt(ArtifactAudio, src, dst, false, func() error {
		return g.engine.ExtractAudio(ctx, src, dst, g.opts.Audio)
	})
}

// Waveform renders a waveform image of the audio in src to dst.
func (g *Generator) Waveform(ctx context.Context, src, dst string) Outcome {
	return g.attempt(ArtifactWaveform, src, dst, g.opts.VerifyStills, func() error {
		return g.engine.RenderWaveform(ctx, src, dst, g.opts.Waveform)
	})
}

// SkipWaveform records a waveform suppressed because its audio source is missing.
func (g *Generator) SkipWaveform(src string, cause error) Outcome {
	out := Skipped("audio extraction failed")
	g.log.Debug("waveform skipped for %s: %v", src, cause)
	metrics.DerivationsTotal.WithLabelValues(ArtifactWaveform, out.status()).Inc()
	return out
}

// attempt runs fn inside a boundary that turns errors and panics into a
// failed Outcome, then checks that dst really holds an artifact.
func (g *Generator) attempt(artifact, src, dst string, verifyStill bool, fn func() error) (out Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = Failure(fmt.Errorf("%s generation panicked: %v", artifact, r))
		}
		if !out.OK() {
			removePartial(dst)
			g.log.Warn("%s not generated for %s: %v", artifact, src, out.Err)
		} else {
			g.log.Debug("%s generated: %s", artifact, dst)
		}
		metrics.DerivationsTotal.WithLabelValues(artifact, out.status()).Inc()
		metrics.DerivationDuration.WithLabelValues(artifact).Observe(time.Since(start).Seconds())
	}()

	if err := fn(); err != nil {
		return Failure(err)
	}
	if err := verifyOutput(dst, verifyStill); err != nil {
		return Failure(err)
	}
	return Success(dst)
}

func removePartial(p string) {
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		logging.Debug("could not remove partial artifact %s: %v", p, err)
	}
}
