//go:build windows

package fs

import "golang.org/x/sys/windows"

// SyncDevice forces outstanding writes for the handle to the storage medium.
// FlushFileBuffers flushes both the file's dirty pages and, for handles
// opened on a volume, the device cache.
func (f *localFile) SyncDevice() error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
