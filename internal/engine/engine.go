package engine

import "context"

// Engine is the set of media operations the pipeline requires.
type Engine interface {
	// Probe inspects path and reports its container duration and streams.
	Probe(ctx context.Context, path string) (*ProbeOutput, error)
	// ExtractFrame writes a single still taken at atSeconds to outputPath.
	ExtractFrame(ctx context.Context, path string, atSeconds float64, outputPath string, opts FrameOptions) error
	// ExtractAudio writes the audio stream of path to an audio-only container.
	ExtractAudio(ctx context.Context, path, outputPath string, opts AudioOptions) error
	// RenderWaveform writes a single-frame waveform image of the audio in path.
	RenderWaveform(ctx context.Context, path, outputPath string, opts WaveformOptions) error
}

// ProbeOutput is the subset of probe data the pipeline consumes.
type ProbeOutput struct {
	// Duration in seconds; nil when the engine did not report one.
	Duration *float64
	Streams  []Stream
}

// Stream describes one elementary stream.
type Stream struct {
	Type   string // "video", "audio", ...
	Width  *int
	Height *int
	// FrameRate is the raw "num/den" text reported by the engine.
	FrameRate string
}

// FirstStream returns the first stream of the given type.
func (p *ProbeOutput) FirstStream(streamType string) (Stream, bool) {
	if p == nil {
		return Stream{}, false
	}
	for _, s := range p.Streams {
		if s.Type == streamType {
			return s, true
		}
	}
	return Stream{}, false
}

// FrameOptions configures ExtractFrame.
type FrameOptions struct {
	// WidthPx scales the still to this width, keeping the aspect ratio.
	WidthPx int
	// Quality is the JPEG quantizer (2 best .. 31 worst); 0 uses the engine default.
	Quality int
}

// AudioOptions configures ExtractAudio.
type AudioOptions struct {
	Codec   string // e.g. "aac"
	Bitrate string // e.g. "192k"
	// FastStart moves container metadata to the front for progressive playback.
	FastStart bool
}

// WaveformOptions configures RenderWaveform.
type WaveformOptions struct {
	WidthPx  int
	HeightPx int
	Color    string // e.g. "#4a9eff"
}
