// Package engine wraps the external media toolkit (ffmpeg and ffprobe) behind
// the four capabilities the ingest pipeline needs: probe, frame extraction,
// audio extraction and waveform rendering.
//
// Each call spawns one process. Failures come back as errors carrying the
// process stderr; callers decide whether a failure is fatal.
package engine
