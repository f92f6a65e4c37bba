//go:build darwin

package fs

import "golang.org/x/sys/unix"

// SyncDevice forces outstanding writes for the handle to the storage medium.
//
// Plain fsync(2) on Darwin only guarantees delivery to the drive, not that
// the drive has written it. F_FULLFSYNC asks the drive to flush its own
// cache as well. Some filesystems (e.g. SMB mounts) reject F_FULLFSYNC; fall
// back to fsync there since it is the strongest call available.
func (f *localFile) SyncDevice() error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	if err == unix.ENOTSUP || err == unix.EINVAL {
		return unix.Fsync(int(f.Fd()))
	}
	return err
}
