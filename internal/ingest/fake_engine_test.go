package ingest

import (
	"context"
	"errors"
	"image/color"
	"os"
	"sync"

	"github.com/disintegration/imaging"

	"media-ingest/internal/engine"
)

var errEngine = errors.New("engine failed")

// fakeEngine writes real, small artifacts without invoking ffmpeg.
type fakeEngine struct {
	mu    sync.Mutex
	calls map[string][]string // capability -> input paths

	probe   *engine.ProbeOutput
	failAll bool

	audioErr    error
	waveformErr error
}

func (f *fakeEngine) record(capability, input string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string][]string{}
	}
	f.calls[capability] = append(f.calls[capability], input)
}

func (f *fakeEngine) inputs(capability string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls[capability]...)
}

func (f *fakeEngine) Probe(_ context.Context, path string) (*engine.ProbeOutput, error) {
	f.record("probe", path)
	if f.failAll {
		return nil, errEngine
	}
	return f.probe, nil
}

func (f *fakeEngine) ExtractFrame(_ context.Context, path string, _ float64, out string, _ engine.FrameOptions) error {
	f.record("extract_frame", path)
	if f.failAll {
		return errEngine
	}
	return writeStill(out)
}

func (f *fakeEngine) ExtractAudio(_ context.Context, path, out string, _ engine.AudioOptions) error {
	f.record("extract_audio", path)
	if f.failAll {
		return errEngine
	}
	if f.audioErr != nil {
		return f.audioErr
	}
	return os.WriteFile(out, []byte("m4a"), 0o644)
}

func (f *fakeEngine) RenderWaveform(_ context.Context, path, out string, _ engine.WaveformOptions) error {
	f.record("render_waveform", path)
	if f.failAll {
		return errEngine
	}
	if f.waveformErr != nil {
		return f.waveformErr
	}
	return writeStill(out)
}

func writeStill(out string) error {
	return imaging.Save(imaging.New(4, 2, color.NRGBA{B: 255, A: 255}), out)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func videoProbe() *engine.ProbeOutput {
	return &engine.ProbeOutput{
		Duration: floatPtr(2.0),
		Streams: []engine.Stream{
			{Type: "video", Width: intPtr(640), Height: intPtr(360), FrameRate: "25/1"},
			{Type: "audio"},
		},
	}
}

// audioProbeWithCover mimics an MP3 with embedded album art.
func audioProbeWithCover() *engine.ProbeOutput {
	return &engine.ProbeOutput{
		Duration: floatPtr(180.5),
		Streams: []engine.Stream{
			{Type: "audio"},
			{Type: "video", Width: intPtr(500), Height: intPtr(500), FrameRate: "90000/1"},
		},
	}
}
