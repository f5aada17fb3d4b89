package media

import (
	"context"
	"errors"
	"image/color"
	"os"
	"sync"

	"github.com/disintegration/imaging"

	"media-ingest/internal/engine"
)

// fakeEngine writes small real files instead of invoking ffmpeg.
type fakeEngine struct {
	mu    sync.Mutex
	calls []string

	probe    *engine.ProbeOutput
	probeErr error

	frameErr    error
	audioErr    error
	waveformErr error
	// garbage writes undecodable bytes for stills.
	garbage bool
	// panicOn names a capability that panics.
	panicOn string
}

func (f *fakeEngine) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.panicOn == name {
		panic("boom")
	}
}

func (f *fakeEngine) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *fakeEngine) Probe(_ context.Context, _ string) (*engine.ProbeOutput, error) {
	f.record("probe")
	return f.probe, f.probeErr
}

func (f *fakeEngine) ExtractFrame(_ context.Context, _ string, _ float64, out string, _ engine.FrameOptions) error {
	f.record("extract_frame")
	if f.frameErr != nil {
		// Leave a partial file behind like a real engine might.
		_ = os.WriteFile(out, []byte("partial"), 0o644)
		return f.frameErr
	}
	return f.writeStill(out)
}

func (f *fakeEngine) ExtractAudio(_ context.Context, _ string, out string, _ engine.AudioOptions) error {
	f.record("extract_audio")
	if f.audioErr != nil {
		return f.audioErr
	}
	return os.WriteFile(out, []byte("fake m4a data"), 0o644)
}

func (f *fakeEngine) RenderWaveform(_ context.Context, _ string, out string, _ engine.WaveformOptions) error {
	f.record("render_waveform")
	if f.waveformErr != nil {
		return f.waveformErr
	}
	return f.writeStill(out)
}

func (f *fakeEngine) writeStill(out string) error {
	if f.garbage {
		return os.WriteFile(out, []byte("not an image"), 0o644)
	}
	return imaging.Save(imaging.New(8, 4, color.NRGBA{R: 74, G: 158, B: 255, A: 255}), out)
}

var errEngine = errors.New("engine exited with status 1")
