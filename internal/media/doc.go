// Package media holds the best-effort steps of the ingest pipeline: metadata
// probing and derived artifact generation.
//
// Nothing in this package fails its caller. The Prober degrades to an empty
// Probed value, and every Generator method returns an Outcome that is either a
// written artifact path or the reason it is absent:
//
//	out := gen.VideoThumbnail(ctx, src, dst)
//	if out.OK() {
//	    thumb = out.Path
//	}
package media
