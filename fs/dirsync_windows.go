//go:build windows

package fs

import "fmt"

// SyncDir is a no-op on Windows. NTFS/ReFS journal directory metadata, and
// opening a directory handle for FlushFileBuffers is not supported; file
// creation and rename are durable without an explicit directory sync.
func SyncDir(fsys FileSystem, dir string) error {
	if fsys == nil {
		fsys = Default
	}
	if _, err := fsys.Stat(dir); err != nil {
		return fmt.Errorf("directory does not exist: %w", err)
	}
	return nil
}
