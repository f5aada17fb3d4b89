package ingest

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"media-ingest/internal/layout"
	"media-ingest/internal/media"
	"media-ingest/internal/mediatypes"
)

// derivation collects the degrading steps for one managed file. Each field
// is written by exactly one goroutine.
type derivation struct {
	probed    media.Probed
	thumbnail media.Outcome
	audio     media.Outcome
	waveform  media.Outcome
}

// derive probes original and runs the generators for kind, naming the
// artifacts after name. It never fails.
func (im *Importer) derive(ctx context.Context, projectRoot string, kind mediatypes.Kind, original, name, ext string, source os.FileInfo) Asset {
	var d derivation
	var g errgroup.Group

	g.Go(func() error {
		d.probed = im.prober.Probe(ctx, original)
		return nil
	})

	switch kind {
	case mediatypes.KindVideo:
		g.Go(func() error {
			d.thumbnail = im.generator.VideoThumbnail(ctx, original, layout.VideoThumbnailPath(projectRoot, name))
			return nil
		})
		g.Go(func() error {
			d.audio = im.generator.ExtractAudio(ctx, original, layout.ExtractedAudioPath(projectRoot, name))
			if !d.audio.OK() {
				d.waveform = im.generator.SkipWaveform(original, d.audio.Err)
				return nil
			}
			d.waveform = im.generator.Waveform(ctx, d.audio.Path, layout.WaveformPath(projectRoot, name))
			return nil
		})
	case mediatypes.KindAudio:
		g.Go(func() error {
			d.waveform = im.generator.Waveform(ctx, original, layout.WaveformPath(projectRoot, name))
			return nil
		})
	case mediatypes.KindImage:
		g.Go(func() error {
			d.thumbnail = im.generator.ImageThumbnail(ctx, original, layout.ImageThumbnailPath(projectRoot, name, ext))
			return nil
		})
	}
	_ = g.Wait()

	asset := Asset{
		Kind:                       kind,
		RelativePath:               layout.ToRelativePath(projectRoot, original),
		AbsolutePath:               original,
		ThumbnailRelativePath:      relativeIfOK(projectRoot, d.thumbnail),
		WaveformRelativePath:       relativeIfOK(projectRoot, d.waveform),
		ExtractedAudioRelativePath: relativeIfOK(projectRoot, d.audio),
		Metadata: media.Metadata{
			Size:         source.Size(),
			LastModified: source.ModTime(),
		},
	}
	probedForKind(kind, d.probed).Apply(&asset.Metadata)
	return asset
}

// probedForKind drops stream fields that do not describe kind: cover art in
// an audio file is not a picture size, and a still has no frame rate.
func probedForKind(kind mediatypes.Kind, p media.Probed) media.Probed {
	switch kind {
	case mediatypes.KindAudio:
		p.Width, p.Height, p.FPS = nil, nil, nil
	case mediatypes.KindImage:
		p.FPS = nil
	}
	return p
}

func relativeIfOK(projectRoot string, o media.Outcome) string {
	if !o.OK() {
		return ""
	}
	return layout.ToRelativePath(projectRoot, o.Path)
}
