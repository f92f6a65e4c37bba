package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	// Test MkdirAll
	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, lfs.MkdirAll(dir, 0755))

	// Test OpenFile (Create)
	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	// Write
	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)

	// Sync (cache) and SyncDevice (medium)
	assert.NoError(t, f.Sync())
	assert.NoError(t, f.SyncDevice())

	// Stat via File
	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	assert.NoError(t, f.Close())

	// Stat via FS
	info2, err := lfs.Stat(fpath)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info2.Size())

	// ReadDir
	entries, err := lfs.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	// Rename
	newPath := filepath.Join(dir, "renamed.txt")
	assert.NoError(t, lfs.Rename(fpath, newPath))

	// Truncate
	assert.NoError(t, lfs.Truncate(newPath, 3))
	info3, err := lfs.Stat(newPath)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), info3.Size())

	// Remove
	assert.NoError(t, lfs.Remove(newPath))
	_, err = lfs.Stat(newPath)
	assert.True(t, os.IsNotExist(err))
}

func TestSyncDir(t *testing.T) {
	tmp := t.TempDir()

	fpath := filepath.Join(tmp, "file.bin")
	f, err := Default.OpenFile(fpath, os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.NoError(t, SyncDir(Default, tmp))
	assert.NoError(t, SyncDir(nil, tmp))
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})

	ffs.SetLimit(5) // Fail after 5 bytes

	fpath := filepath.Join(tmp, "faulty.txt")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	// Write 5 bytes - OK
	n, err := f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	// Write 1 byte - Fail
	n, err = f.Write([]byte("!"))
	assert.Error(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, int64(5), ffs.GetWritten())

	// Lifting the limit makes a retry succeed.
	ffs.SetLimit(-1)
	n, err = f.Write([]byte("!"))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	f.Close()
}

func TestFaultyFS_DeviceSync(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)

	fpath := filepath.Join(tmp, "dev.bin")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.SyncDevice())
	assert.Equal(t, int64(1), ffs.DeviceSyncs())

	// Simulated unplug: device flush fails, cache flush still works.
	ffs.RemoveMedium()
	err = f.SyncDevice()
	assert.ErrorIs(t, err, ErrMediumRemoved)
	assert.NoError(t, f.Sync())
	assert.Equal(t, int64(2), ffs.DeviceSyncs())

	ffs.ReattachMedium()
	assert.NoError(t, f.SyncDevice())
	assert.Equal(t, int64(3), ffs.DeviceSyncs())
}

func TestFaultyFS_Rules(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("flaky", Fault{FailAfterBytes: -1, FailOnDeviceSync: true})

	fpath := filepath.Join(tmp, "flaky.bin")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("data"))
	assert.NoError(t, err)
	assert.NoError(t, f.Sync())
	assert.Error(t, f.SyncDevice())

	// Unmatched files are unaffected.
	other, err := ffs.OpenFile(filepath.Join(tmp, "steady.bin"), os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)
	defer other.Close()
	assert.NoError(t, other.SyncDevice())
}

func TestFaultyFS_Delegation(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}
	ffs := NewFaultyFS(lfs)

	// MkdirAll
	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, ffs.MkdirAll(dir, 0755))

	// Truncate
	fpath := filepath.Join(dir, "test.txt")
	f, _ := lfs.OpenFile(fpath, os.O_CREATE, 0644)
	f.Close()
	assert.NoError(t, ffs.Truncate(fpath, 10))

	// Rename + Stat
	assert.NoError(t, ffs.Rename(fpath, fpath+".renamed"))
	_, err := ffs.Stat(fpath + ".renamed")
	assert.NoError(t, err)

	// Remove
	assert.NoError(t, ffs.Remove(fpath+".renamed"))

	// ReadDir
	_, err = ffs.ReadDir(dir)
	assert.NoError(t, err)
}
