/*
Package filesystem provides the file access used when bringing source media into
managed storage: stat and open with retry on stale NFS file handles, and an
atomic copy into the managed tree.

# Retry

Source media often lives on network mounts. StatWithRetry and OpenWithRetry wrap
os.Stat and os.Open and retry ESTALE (errno 116) with exponential backoff. Every
other error is returned immediately, so a missing or unreadable source still
fails fast:

	info, err := filesystem.StatWithRetry(src, filesystem.DefaultRetryConfig())
	if err != nil {
	    return err // errors.Is(err, fs.ErrNotExist) still works
	}

# Copy

CopyFile writes to "<dst>.part", syncs, preserves the source modification
time, and renames over dst. A reader never observes a half-written managed
file, and an existing dst is replaced in one step.
*/
package filesystem
