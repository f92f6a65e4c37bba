package fs

import (
	"io"
	"os"
)

// File represents an open file.
//
// Sync hands dirty data for the file to the kernel's writeback path
// (cache-level durability). SyncDevice is the stronger primitive: it blocks
// until the storage device itself acknowledges the outstanding writes, using
// the platform-specific flush call (fsync on Linux/BSD, F_FULLFSYNC on
// Darwin, FlushFileBuffers on Windows).
type File interface {
	io.ReadWriteCloser
	io.ReaderAt
	io.Seeker
	Sync() error
	SyncDevice() error
	Stat() (os.FileInfo, error)
}

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(name string) ([]os.DirEntry, error)
	Truncate(name string, size int64) error
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &localFile{File: f}, nil
}

func (LocalFS) Remove(name string) error              { return os.Remove(name) }
func (LocalFS) Rename(oldpath, newpath string) error  { return os.Rename(oldpath, newpath) }
func (LocalFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
func (LocalFS) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }
func (LocalFS) Truncate(name string, size int64) error     { return os.Truncate(name, size) }

// localFile wraps *os.File to provide the device-flush primitive.
// The platform-specific SyncDevice implementations live in sync_*.go.
type localFile struct {
	*os.File
}

// Default is the default local file system.
var Default FileSystem = LocalFS{}
