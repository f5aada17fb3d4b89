package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"media-ingest/internal/engine"
	"media-ingest/internal/ingest"
)

// noEngine fails every capability, as when ffmpeg is not installed.
type noEngine struct{}

var errNoEngine = errors.New("engine unavailable")

func (noEngine) Probe(context.Context, string) (*engine.ProbeOutput, error) {
	return nil, errNoEngine
}

func (noEngine) ExtractFrame(context.Context, string, float64, string, engine.FrameOptions) error {
	return errNoEngine
}

func (noEngine) ExtractAudio(context.Context, string, string, engine.AudioOptions) error {
	return errNoEngine
}

func (noEngine) RenderWaveform(context.Context, string, string, engine.WaveformOptions) error {
	return errNoEngine
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), noEngine{}, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSanitizeCommand(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"import", "import"},
		{"re-place_2", "re-place_2"},
		{"rm -rf /", "rm_-rf__"},
		{"\x1b[31m", "__31m"},
	}
	for _, tt := range tests {
		if got := sanitizeCommand(tt.in); got != tt.want {
			t.Errorf("sanitizeCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"unknown command", []string{"frobnicate"}},
		{"import without project", []string{"import", "a.mp4"}},
		{"import without files", []string{"import", "-project", "/tmp/p"}},
		{"import bad kind", []string{"import", "-project", "/tmp/p", "-kind", "pdf", "a.pdf"}},
		{"replace without path", []string{"replace", "-project", "/tmp/p", "a.mp4"}},
		{"list without catalog", []string{"list", "-project", "/tmp/p", "-db", ""}},
		{"unknown flag", []string{"import", "-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCmd(t, tt.args...); code != exitUsage {
				t.Errorf("exit code = %d, want %d", code, exitUsage)
			}
		})
	}
}

func TestRun_ImportSingle(t *testing.T) {
	project := t.TempDir()
	src := writeFile(t, t.TempDir(), "clip.mov", "video")

	code, out, stderr := runCmd(t, "import", "-project", project, "-db", "", src)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	var res ingest.ImportResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not an import result: %v\n%s", err, out)
	}
	if res.Kind != "video" || !strings.HasSuffix(res.RelativePath, ".mov") {
		t.Errorf("result = %+v", res)
	}
	if _, err := os.Stat(res.AbsolutePath); err != nil {
		t.Errorf("original not copied: %v", err)
	}
}

func TestRun_ImportBatchPartial(t *testing.T) {
	project := t.TempDir()
	dir := t.TempDir()
	good := writeFile(t, dir, "a.wav", "audio")

	code, out, stderr := runCmd(t, "import", "-project", project, "-db", "", good, filepath.Join(dir, "missing.wav"))
	if code != exitPartial {
		t.Fatalf("exit code = %d, want %d", code, exitPartial)
	}
	if !strings.Contains(stderr, "missing.wav") {
		t.Errorf("stderr does not name the failed file: %s", stderr)
	}

	var items []ingest.BatchItem
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Result == nil || items[1].Error == "" {
		t.Errorf("items = %+v", items)
	}
}

func TestRun_ReplaceAndList(t *testing.T) {
	project := t.TempDir()
	dbDir := t.TempDir()
	dir := t.TempDir()

	code, out, stderr := runCmd(t, "import", "-project", project, "-db", dbDir, writeFile(t, dir, "a.png", "one"))
	if code != exitOK {
		t.Fatalf("import: exit %d, %s", code, stderr)
	}
	var res ingest.ImportResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}

	code, _, stderr = runCmd(t, "replace", "-project", project, "-db", dbDir, "-path", res.RelativePath, writeFile(t, dir, "b.png", "two"))
	if code != exitOK {
		t.Fatalf("replace: exit %d, %s", code, stderr)
	}
	data, err := os.ReadFile(res.AbsolutePath)
	if err != nil || string(data) != "two" {
		t.Errorf("managed file = %q, %v", data, err)
	}

	code, out, stderr = runCmd(t, "list", "-project", project, "-db", dbDir, "-kind", "image")
	if code != exitOK {
		t.Fatalf("list: exit %d, %s", code, stderr)
	}
	var assets []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &assets); err != nil {
		t.Fatal(err)
	}
	if len(assets) != 1 || assets[0]["id"] != res.ID {
		t.Errorf("assets = %v, want one with id %s", assets, res.ID)
	}
}

func TestRun_ImportMissingSource(t *testing.T) {
	code, _, stderr := runCmd(t, "import", "-project", t.TempDir(), "-db", "", filepath.Join(t.TempDir(), "gone.mp4"))
	if code != exitFailed {
		t.Errorf("exit code = %d, want %d", code, exitFailed)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr = %q", stderr)
	}
}
