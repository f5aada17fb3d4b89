package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
	if config.VolumeResolver != nil {
		t.Error("VolumeResolver should be nil by default")
	}
}

func TestIsNFSStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"ESTALE error", syscall.ESTALE, true},
		{"wrapped ESTALE", &os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}, true},
		{"ENOENT error", syscall.ENOENT, false},
		{"generic error", os.ErrNotExist, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNFSStaleError(tt.err); got != tt.want {
				t.Errorf("isNFSStaleError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestVolumeResolver_Resolve(t *testing.T) {
	vr := NewVolumeResolver(map[string]string{
		"projects": "/srv/projects",
		"nested":   "/srv/projects/shared",
		"empty":    "",
	})

	tests := []struct {
		path string
		want string
	}{
		{"/srv/projects", "projects"},
		{"/srv/projects/a/videos/x.mp4", "projects"},
		{"/srv/projects/shared/b.mp4", "nested"},
		{"/srv/projects-old/c.mp4", "unknown"},
		{"/tmp/d.mp4", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := vr.Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%s) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}

	var nilResolver *VolumeResolver
	if got := nilResolver.Resolve("/srv/projects"); got != "unknown" {
		t.Errorf("nil resolver Resolve() = %s, want unknown", got)
	}
}

func TestRetryConfig_ResolveVolume(t *testing.T) {
	orig := defaultResolver
	t.Cleanup(func() { SetDefaultVolumeResolver(orig) })

	SetDefaultVolumeResolver(NewVolumeResolver(map[string]string{"projects": "/srv/projects"}))

	config := DefaultRetryConfig()
	if got := config.resolveVolume("/srv/projects/a.mp4"); got != "projects" {
		t.Errorf("default resolver: got %s, want projects", got)
	}

	config.VolumeResolver = NewVolumeResolver(map[string]string{"override": "/srv"})
	if got := config.resolveVolume("/srv/projects/a.mp4"); got != "override" {
		t.Errorf("config resolver: got %s, want override", got)
	}
}

func TestStatWithRetry(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(file, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := StatWithRetry(file, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("StatWithRetry() error: %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("Size() = %d, want 4", info.Size())
	}

	start := time.Now()
	_, err = StatWithRetry(filepath.Join(dir, "missing.mp4"), DefaultRetryConfig())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
	if time.Since(start) > 40*time.Millisecond {
		t.Error("non-stale errors should not be retried")
	}
}

func TestOpenWithRetry(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(file, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenWithRetry(file, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("OpenWithRetry() error: %v", err)
	}
	_ = f.Close()

	if _, err := OpenWithRetry(filepath.Join(dir, "missing"), DefaultRetryConfig()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}

func TestWithRetry_StaleThenSuccess(t *testing.T) {
	config := RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

	calls := 0
	got, err := withRetry("stat", "/x", config, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, &os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}
		}
		return 7, nil
	})
	if err != nil {
		t.Fatalf("withRetry() error: %v", err)
	}
	if got != 7 || calls != 3 {
		t.Errorf("got %d after %d calls, want 7 after 3", got, calls)
	}
}

func TestWithRetry_Exhausted(t *testing.T) {
	config := RetryConfig{MaxRetries: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}

	calls := 0
	_, err := withRetry("open", "/x", config, func() (string, error) {
		calls++
		return "", fmt.Errorf("open: %w", syscall.ESTALE)
	})
	if !errors.Is(err, syscall.ESTALE) {
		t.Errorf("error = %v, want ESTALE", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want MaxRetries+1 = 3", calls)
	}
}
