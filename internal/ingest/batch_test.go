package ingest

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestImportBatch(t *testing.T) {
	root := t.TempDir()
	good := writeSource(t, "a.mp4", "a")
	missing := filepath.Join(t.TempDir(), "missing.mp4")
	image := writeSource(t, "c.jpg", "c")

	im := New(&fakeEngine{probe: videoProbe()}, WithWorkers(2))
	items := im.ImportBatch(context.Background(), root, []string{good, missing, image, good}, "")

	if len(items) != 4 {
		t.Fatalf("len = %d, want 4", len(items))
	}
	wantSources := []string{good, missing, image, good}
	for i, item := range items {
		if item.SourcePath != wantSources[i] {
			t.Errorf("items[%d].SourcePath = %q, want %q", i, item.SourcePath, wantSources[i])
		}
	}

	if items[0].Err != nil || items[0].Result == nil {
		t.Errorf("items[0] = %+v, want success", items[0])
	}
	if !errors.Is(items[1].Err, fs.ErrNotExist) || items[1].Error == "" || items[1].Result != nil {
		t.Errorf("items[1] = %+v, want not-exist failure", items[1])
	}
	if items[2].Result == nil || items[2].Result.Kind != "image" {
		t.Errorf("items[2] = %+v, want image import", items[2])
	}
	if items[3].Result == nil || items[3].Result.ID == items[0].Result.ID {
		t.Error("duplicate source should become a separate asset")
	}
}

func TestImportBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := writeSource(t, "a.mp4", "a")
	items := New(&fakeEngine{}).ImportBatch(ctx, t.TempDir(), []string{src, src}, "")
	for i, item := range items {
		if item.SourcePath != src || !errors.Is(item.Err, context.Canceled) {
			t.Errorf("items[%d] = %+v, want cancelled", i, item)
		}
	}
}

func TestImportBatch_Empty(t *testing.T) {
	if items := New(&fakeEngine{}).ImportBatch(context.Background(), t.TempDir(), nil, ""); len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}
}
