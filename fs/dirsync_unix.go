//go:build !windows

package fs

import (
	"fmt"
	"os"
)

// SyncDir fsyncs a directory so that metadata changes (file creation,
// rename) survive a crash. On Unix the directory entry for a newly created
// file is not durable until the directory itself has been synced, even if
// the file's contents were.
func SyncDir(fsys FileSystem, dir string) error {
	if fsys == nil {
		fsys = Default
	}
	d, err := fsys.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("open directory for sync: %w", err)
	}
	defer d.Close()

	if err := d.Sync(); err != nil {
		return fmt.Errorf("sync directory: %w", err)
	}
	return nil
}
