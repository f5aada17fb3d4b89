/*
Package ingest copies media files into a project's managed tree and derives
their previews.

An Import allocates a fresh identity, copies the source to
videos/, audio/ or images/ according to its kind, and then runs the
derivations that kind needs:

	video  thumbnail, extracted audio, waveform of the extracted audio
	audio  waveform
	image  thumbnail (a byte copy of the original)

Probing and the derivations run concurrently once the copy is in place; for
video the waveform waits for audio extraction and is skipped if it failed.

Only three failures are returned as errors: the managed tree cannot be
created, the source cannot be statted, or the bytes cannot be copied.
Everything after the copy degrades instead: a failed probe leaves the
optional metadata fields unset and a failed derivation leaves its path
empty in the result.

Replace overwrites an existing managed file in place and reruns the same
derivations, naming cached artifacts after the existing file's base name.
*/
package ingest
