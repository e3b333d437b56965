package fsutil

import (
	"bytes"
	"context"
	"fmt"
)

// CommitOptions control how rewritten content reaches the disk.
type CommitOptions struct {
	// Backup keeps the original next to the file.
	Backup bool
	// Force skips the check for changes made since the file was read.
	Force bool
}

// Commit writes the new content of a file read with ReadFile. Unchanged
// content is not written. It reports whether the file was written and
// returns ErrChangedOnDisk when the file was modified in the meantime.
func Commit(ctx context.Context, snap *Snapshot, original, content []byte, opts CommitOptions) (bool, error) {
	if snap == nil {
		return false, ErrNilSnapshot
	}
	if bytes.Equal(original, content) {
		return false, nil
	}
	if !opts.Force {
		changed, err := Changed(ctx, snap)
		if err != nil {
			return false, err
		}
		if changed {
			return false, fmt.Errorf("%w: %s", ErrChangedOnDisk, snap.Path)
		}
	}
	if opts.Backup {
		if _, err := CreateBackup(ctx, snap.Path); err != nil {
			return false, err
		}
	}
	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode); err != nil {
		return false, err
	}
	return true, nil
}
