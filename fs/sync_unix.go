//go:build unix && !linux && !darwin

package fs

import "golang.org/x/sys/unix"

// SyncDevice forces outstanding writes for the handle to the storage medium.
func (f *localFile) SyncDevice() error {
	return unix.Fsync(int(f.Fd()))
}
