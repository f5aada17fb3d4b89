package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"media-ingest/internal/logging"
	"media-ingest/internal/metrics"
)

// Default binary names, resolved through PATH.
const (
	DefaultFFmpegPath  = "ffmpeg"
	DefaultFFprobePath = "ffprobe"
)

// maxStderr bounds how much process stderr is kept in an error.
const maxStderr = 2048

var log = logging.New("engine")

// FFmpeg implements Engine by running the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpeg returns an engine using the given binaries. Empty paths fall back
// to the defaults.
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = DefaultFFmpegPath
	}
	if ffprobePath == "" {
		ffprobePath = DefaultFFprobePath
	}
	return &FFmpeg{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Available reports whether bin resolves to an executable.
func Available(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// ffprobe -print_format json output
type probeJSON struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

// Probe runs ffprobe and converts its JSON report.
func (f *FFmpeg) Probe(ctx context.Context, path string) (*ProbeOutput, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	out, err := f.run(ctx, "probe", f.ffprobePath, args)
	if err != nil {
		return nil, err
	}
	return parseProbeJSON(out)
}

func parseProbeJSON(data []byte) (*ProbeOutput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("ffprobe produced no output")
	}

	var raw probeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	out := &ProbeOutput{}
	if d, err := strconv.ParseFloat(strings.TrimSpace(raw.Format.Duration), 64); err == nil {
		out.Duration = &d
	}

	for _, s := range raw.Streams {
		stream := Stream{Type: s.CodecType}
		if s.Width > 0 {
			w := s.Width
			stream.Width = &w
		}
		if s.Height > 0 {
			h := s.Height
			stream.Height = &h
		}
		stream.FrameRate = s.RFrameRate
		if stream.FrameRate == "" || stream.FrameRate == "0/0" {
			stream.FrameRate = s.AvgFrameRate
		}
		out.Streams = append(out.Streams, stream)
	}
	return out, nil
}

// ExtractFrame writes one JPEG still of path taken atSeconds in.
func (f *FFmpeg) ExtractFrame(ctx context.Context, path string, atSeconds float64, outputPath string, opts FrameOptions) error {
	_, err := f.run(ctx, "extract_frame", f.ffmpegPath, frameArgs(path, atSeconds, outputPath, opts))
	return err
}

func frameArgs(path string, atSeconds float64, outputPath string, opts FrameOptions) []string {
	args := []string{
		"-y",
		"-ss", strconv.FormatFloat(atSeconds, 'f', -1, 64),
		"-i", path,
		"-frames:v", "1",
	}
	if opts.WidthPx > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:-1", opts.WidthPx))
	}
	if opts.Quality > 0 {
		args = append(args, "-q:v", strconv.Itoa(opts.Quality))
	}
	return append(args, outputPath)
}

// ExtractAudio writes the audio stream of path to outputPath.
func (f *FFmpeg) ExtractAudio(ctx context.Context, path, outputPath string, opts AudioOptions) error {
	_, err := f.run(ctx, "extract_audio", f.ffmpegPath, audioArgs(path, outputPath, opts))
	return err
}

func audioArgs(path, outputPath string, opts AudioOptions) []string {
	args := []string{
		"-y",
		"-i", path,
		"-vn",
	}
	if opts.Codec != "" {
		args = append(args, "-c:a", opts.Codec)
	}
	if opts.Bitrate != "" {
		args = append(args, "-b:a", opts.Bitrate)
	}
	if opts.FastStart {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, outputPath)
}

// RenderWaveform draws a mono waveform of path into a single PNG frame.
func (f *FFmpeg) RenderWaveform(ctx context.Context, path, outputPath string, opts WaveformOptions) error {
	_, err := f.run(ctx, "render_waveform", f.ffmpegPath, waveformArgs(path, outputPath, opts))
	return err
}

func waveformArgs(path, outputPath string, opts WaveformOptions) []string {
	filter := fmt.Sprintf("aformat=channel_layouts=mono,showwavespic=s=%dx%d", opts.WidthPx, opts.HeightPx)
	if opts.Color != "" {
		filter += ":colors=" + opts.Color
	}
	return []string{
		"-y",
		"-i", path,
		"-filter_complex", filter,
		"-frames:v", "1",
		outputPath,
	}
}

// run executes bin and returns its stdout. The error includes a bounded
// excerpt of stderr.
func (f *FFmpeg) run(ctx context.Context, capability, bin string, args []string) ([]byte, error) {
	start := time.Now()
	log.Debug("%s: %s %s", capability, bin, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	metrics.EngineInvocationDuration.WithLabelValues(capability).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EngineInvocationsTotal.WithLabelValues(capability, "error").Inc()
		return nil, fmt.Errorf("%s failed: %w - %s", bin, err, truncate(stderr.String(), maxStderr))
	}
	metrics.EngineInvocationsTotal.WithLabelValues(capability, "success").Inc()
	return stdout.Bytes(), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
