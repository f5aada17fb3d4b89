// Command ingest imports media files into a project directory from the
// command line, without running the HTTP server.
//
// Usage:
//
//	ingest <command> [flags]
//
// Commands:
//
//	import   Copy one or more files into the project and generate their
//	         thumbnails, extracted audio and waveforms. Several files are
//	         imported concurrently. Results are printed as JSON.
//
//	replace  Overwrite an already managed file (given by -path, relative to
//	         the project) and regenerate its previews in place.
//
//	list     Print the catalog entries recorded for a project.
//
//	version  Print build information.
//
// Examples:
//
//	ingest import -project ~/Projects/demo clip.mov take2.wav
//	ingest import -project ~/Projects/demo -kind audio voice.bin
//	ingest replace -project ~/Projects/demo -path videos/3f2a.mov fixed.mov
//
// Environment:
//
//	DATABASE_DIR  Catalog directory. When set, imports are recorded.
//	FFMPEG_PATH   ffmpeg binary (default: ffmpeg)
//	FFPROBE_PATH  ffprobe binary (default: ffprobe)
//
// A missing ffmpeg never fails an import: the original is still copied and
// the previews are simply left out of the result.
//
// Exit codes are 0 on success, 1 on failure, 2 on bad usage and 3 when a
// batch import succeeded only partially.
package main
