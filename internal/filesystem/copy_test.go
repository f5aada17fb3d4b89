package filesystem

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mov")
	dst := filepath.Join(dir, "dst.mov")
	content := bytes.Repeat([]byte("frame"), 1000)

	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	n, err := CopyFile(src, dst, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("CopyFile() error: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("CopyFile() = %d bytes, want %d", n, len(content))
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Error("destination content differs from source")
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("ModTime = %v, want %v", info.ModTime(), mtime)
	}

	if _, err := os.Stat(dst + partSuffix); !os.IsNotExist(err) {
		t.Error("temporary .part file left behind")
	}
}

func TestCopyFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.mp4")
	dst := filepath.Join(dir, "existing.mp4")

	if err := os.WriteFile(dst, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := CopyFile(src, dst, DefaultRetryConfig()); err != nil {
		t.Fatalf("CopyFile() error: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("destination = %q, want %q", got, "new")
	}
}

func TestCopyFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing source", func(t *testing.T) {
		_, err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "out"), DefaultRetryConfig())
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want ErrNotExist", err)
		}
	})

	t.Run("directory source", func(t *testing.T) {
		if _, err := CopyFile(dir, filepath.Join(dir, "out"), DefaultRetryConfig()); err == nil {
			t.Error("expected error copying a directory")
		}
	})

	t.Run("destination is a directory", func(t *testing.T) {
		src := filepath.Join(dir, "src2")
		if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		dst := filepath.Join(dir, "occupied")
		if err := os.MkdirAll(filepath.Join(dst, "child"), 0o755); err != nil {
			t.Fatal(err)
		}
		if _, err := CopyFile(src, dst, DefaultRetryConfig()); err == nil {
			t.Error("expected error renaming onto a directory")
		}
		if _, err := os.Stat(dst + partSuffix); !os.IsNotExist(err) {
			t.Error("temporary .part file left behind after failed rename")
		}
	})

	t.Run("missing destination directory", func(t *testing.T) {
		src := filepath.Join(dir, "src")
		if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		dst := filepath.Join(dir, "nope", "out")
		if _, err := CopyFile(src, dst, DefaultRetryConfig()); err == nil {
			t.Error("expected error when destination directory is missing")
		}
		if _, err := os.Stat(dst); !os.IsNotExist(err) {
			t.Error("destination should not exist after failed copy")
		}
	})
}
