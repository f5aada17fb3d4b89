// Package layout computes where managed assets and their derived artifacts
// live inside a project.
//
// The projectRoot argument every function takes is the managed root itself:
// callers that keep the tree in a hidden directory of a larger project pass
// that directory. The tree below it is:
//
//	videos/               durable video originals      <id><ext>
//	audio/                durable audio originals      <id><ext>
//	                      extracted audio tracks       <id>.m4a
//	images/               durable image originals      <id><ext>
//	.cache/thumbnails/    regenerable thumbnails       <id>.jpg or <id><ext>
//	.cache/waveforms/     regenerable waveform images  <id>.png
//
// Only files directly under the three durable directories are managed
// assets (see KindForPath); the directory a file lives in, not its
// extension, records its kind.
//
// Paths handed back to callers are project-relative, forward-slash separated,
// and never start with "/" or "./".
package layout
