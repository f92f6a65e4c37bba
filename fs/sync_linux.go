//go:build linux

package fs

import "golang.org/x/sys/unix"

// SyncDevice forces outstanding writes for the handle to the storage medium.
// On Linux fsync(2) includes a device write-barrier, so it is the device
// flush primitive.
func (f *localFile) SyncDevice() error {
	return unix.Fsync(int(f.Fd()))
}
