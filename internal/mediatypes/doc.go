// Package mediatypes provides the media kind classification shared by the
// ingest packages.
//
// This package exists as a dependency-free foundation that can be imported by other
// packages without creating import cycles. It contains primitive types, constants,
// and pure utility functions with no external dependencies beyond the standard library.
//
// # Kinds
//
// Every managed asset is exactly one of three kinds:
//
//	mediatypes.KindVideo // mp4, mov, mkv, webm, ...
//	mediatypes.KindAudio // mp3, wav, m4a, flac, ...
//	mediatypes.KindImage // jpg, png, webp, ...
//
// Classify maps a path to its kind by lowercased extension. Unrecognized
// extensions, and paths without an extension, classify as KindVideo so that
// unknown inputs go through the richest derivation pipeline:
//
//	switch mediatypes.Classify(path) {
//	case mediatypes.KindVideo:
//	    // thumbnail + extracted audio + waveform
//	case mediatypes.KindAudio:
//	    // waveform
//	case mediatypes.KindImage:
//	    // cache copy
//	}
//
// # MIME Types
//
// Use GetMimeType to get the appropriate MIME type for HTTP responses:
//
//	ext := strings.ToLower(filepath.Ext(filename))
//	mimeType := mediatypes.GetMimeType(ext) // e.g., "image/jpeg"
package mediatypes
