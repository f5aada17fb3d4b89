// Package memory sets the Go runtime soft memory limit from container
// settings.
//
// Import work runs ffmpeg and ffprobe as child processes, whose memory is
// outside the Go heap. The heap is therefore limited to a fraction of the
// container limit (MEMORY_RATIO, default 0.85) so the engine processes keep
// headroom:
//
//	env:
//	- name: MEMORY_LIMIT
//	  valueFrom:
//	    resourceFieldRef:
//	      resource: limits.memory
//
// An explicit GOMEMLIMIT always wins and is only reported.
package memory
