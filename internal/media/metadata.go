package media

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"media-ingest/internal/engine"
	"media-ingest/internal/logging"
	"media-ingest/internal/metrics"
)

// Metadata is the metadata attached to a managed asset. Size and LastModified
// always come from the filesystem; the probed fields are nil when unknown.
type Metadata struct {
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	Duration     *float64  `json:"duration,omitempty"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	FPS          *float64  `json:"fps,omitempty"`
}

// Probed is the engine-derived part of Metadata.
type Probed struct {
	Duration *float64
	Width    *int
	Height   *int
	FPS      *float64
}

// Empty reports whether nothing was probed.
func (p Probed) Empty() bool {
	return p.Duration == nil && p.Width == nil && p.Height == nil && p.FPS == nil
}

// Apply copies the probed fields into m.
func (p Probed) Apply(m *Metadata) {
	m.Duration = p.Duration
	m.Width = p.Width
	m.Height = p.Height
	m.FPS = p.FPS
}

// ParseFrameRate converts engine frame rate text such as "30000/1001" to
// frames per second. Non-numeric parts, a zero numerator or denominator,
// and non-finite values all report false. A bare positive number is accepted.
func ParseFrameRate(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	numText, denText, hasDen := strings.Cut(text, "/")
	num, err := strconv.ParseFloat(strings.TrimSpace(numText), 64)
	if err != nil {
		return 0, false
	}
	den := 1.0
	if hasDen {
		den, err = strconv.ParseFloat(strings.TrimSpace(denText), 64)
		if err != nil {
			return 0, false
		}
	}
	if num == 0 || den == 0 {
		return 0, false
	}

	fps := num / den
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0, false
	}
	return fps, true
}

// Prober extracts Probed metadata through an engine.
type Prober struct {
	engine engine.Engine
	log    *logging.Logger
}

// NewProber returns a Prober backed by eng.
func NewProber(eng engine.Engine) *Prober {
	return &Prober{engine: eng, log: logging.New("probe")}
}

// Probe inspects path once. Any engine failure yields an empty Probed value.
func (p *Prober) Probe(ctx context.Context, path string) (probed Probed) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("probe panicked for %s: %v", path, r)
			probed = Probed{}
		}
		status := "success"
		if probed.Empty() {
			status = "failed"
		}
		metrics.DerivationsTotal.WithLabelValues("probe", status).Inc()
		metrics.DerivationDuration.WithLabelValues("probe").Observe(time.Since(start).Seconds())
	}()

	out, err := p.engine.Probe(ctx, path)
	if err != nil {
		p.log.Warn("probe failed for %s: %v", path, err)
		return Probed{}
	}
	if out == nil {
		p.log.Warn("probe returned no data for %s", path)
		return Probed{}
	}
	return fromProbeOutput(out)
}

func fromProbeOutput(out *engine.ProbeOutput) Probed {
	var probed Probed
	if out.Duration != nil && *out.Duration >= 0 && !math.IsNaN(*out.Duration) && !math.IsInf(*out.Duration, 0) {
		d := *out.Duration
		probed.Duration = &d
	}

	video, ok := out.FirstStream("video")
	if !ok {
		return probed
	}
	probed.Width = video.Width
	probed.Height = video.Height
	if fps, ok := ParseFrameRate(video.FrameRate); ok {
		probed.FPS = &fps
	}
	return probed
}
