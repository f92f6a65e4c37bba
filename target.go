package durafile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/durafile/durafile/fs"
)

// WriteTarget owns a single open handle to a destination path and tracks the
// durability level its written bytes have reached. The level only increases
// until the next Write; Write drops it back to LevelBuffered.
//
// A WriteTarget is not safe for concurrent use. One writer owns the handle
// for the whole lifecycle; concurrent writers to the same path must be
// arbitrated externally.
type WriteTarget struct {
	fsys fs.FileSystem
	file fs.File
	buf  *writeBuffer
	path string
	opts options

	level   DurabilityLevel
	written int64
	closed  bool
}

// Open creates or truncates the destination path and returns a WriteTarget
// owning its handle.
func Open(path string, optFns ...Option) (*WriteTarget, error) {
	o := applyOptions(optFns)

	f, err := o.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, o.fileMode)
	if err != nil {
		return nil, err
	}

	return &WriteTarget{
		fsys:  o.fs,
		file:  f,
		buf:   newWriteBuffer(f, o.bufferSize),
		path:  path,
		opts:  o,
		level: LevelBuffered,
	}, nil
}

// Path returns the destination path.
func (t *WriteTarget) Path() string { return t.path }

// Level returns the durability level currently recorded for the target.
func (t *WriteTarget) Level() DurabilityLevel { return t.level }

// Written returns the number of bytes accepted since open.
func (t *WriteTarget) Written() int64 { return t.written }

// Write appends p to the in-process buffer. No system call is made unless
// the buffer exceeds its threshold, in which case the overflow spills to the
// OS. The recorded level becomes LevelBuffered either way: a spill still
// leaves a tail of unknown size in the buffer, so only an explicit Flush or
// Commit raises the level.
func (t *WriteTarget) Write(p []byte) (int, error) {
	if t.closed {
		return 0, os.ErrClosed
	}

	n, err := t.buf.Write(p)
	t.written += int64(n)
	if len(p) > 0 {
		t.level = LevelBuffered
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFlushFailed, err)
	}
	t.opts.metrics.RecordWrite(n, err)
	return n, err
}

// ReadFrom streams r into the buffer, implementing io.ReaderFrom.
func (t *WriteTarget) ReadFrom(r io.Reader) (int64, error) {
	chunk := make([]byte, 32*1024)
	var total int64
	for {
		n, rerr := r.Read(chunk)
		if n > 0 {
			wn, werr := t.Write(chunk[:n])
			total += int64(wn)
			if werr != nil {
				return total, werr
			}
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}

// Flush transfers all buffered bytes to the OS, raising the level to at
// least LevelCacheCommitted. After a successful Flush any other reader of
// the path observes the written bytes, even though physical storage may be
// unchanged.
//
// On failure the error wraps ErrFlushFailed and the unwritten bytes stay in
// the buffer, so the caller may retry after intervening (e.g. freeing disk
// space).
func (t *WriteTarget) Flush() error {
	if t.closed {
		return os.ErrClosed
	}

	start := time.Now()
	err := t.buf.Flush()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFlushFailed, err)
	} else if t.level < LevelCacheCommitted {
		t.level = LevelCacheCommitted
	}
	t.opts.metrics.RecordFlush(time.Since(start), err)
	t.opts.logger.LogFlush(t.path, int64(t.buf.Buffered()), err)
	return err
}

// Commit blocks until the requested durability level is reached.
// level must be LevelCacheCommitted or LevelPhysicallyCommitted; lower
// levels are always subsumed, so committing a never-flushed target flushes
// it first.
//
// Commit is idempotent: if the recorded level already satisfies the request
// it returns immediately without device I/O. A physical commit blocks until
// the storage device itself confirms the write; there is no implicit
// timeout. If ctx expires while the device flush is in flight, the error is
// ErrMediumFailure and the recorded level stays below the request — the
// handle must not be reused afterwards, since the flush outcome is unknown.
//
// Commit never reports a level the OS did not genuinely confirm.
func (t *WriteTarget) Commit(ctx context.Context, level DurabilityLevel) (CommitResult, error) {
	if t.closed {
		return CommitResult{Level: t.level}, os.ErrClosed
	}
	if level != LevelCacheCommitted && level != LevelPhysicallyCommitted {
		return CommitResult{Level: t.level}, fmt.Errorf("%w: %s", ErrInvalidCommitLevel, level)
	}

	start := time.Now()

	if t.level >= level {
		// Already satisfied: no device I/O on repeat commits.
		t.opts.metrics.RecordCommit(level, time.Since(start), nil)
		return CommitResult{Level: t.level}, nil
	}

	if err := t.Flush(); err != nil {
		t.opts.metrics.RecordCommit(level, time.Since(start), err)
		t.opts.logger.LogCommit(t.path, level, t.level, err)
		return CommitResult{Level: t.level}, &CommitError{
			Path: t.path, Requested: level, Reached: t.level, cause: err,
		}
	}

	res := CommitResult{Level: t.level}
	if level == LevelPhysicallyCommitted {
		if err := t.syncDevice(ctx); err != nil {
			t.opts.metrics.RecordCommit(level, time.Since(start), err)
			t.opts.logger.LogCommit(t.path, level, t.level, err)
			return CommitResult{Level: t.level}, &CommitError{
				Path: t.path, Requested: level, Reached: t.level, cause: err,
			}
		}
		t.level = LevelPhysicallyCommitted
		res = CommitResult{Level: t.level, DeviceSynced: true}
	}

	t.opts.metrics.RecordCommit(level, time.Since(start), nil)
	t.opts.logger.LogCommit(t.path, level, t.level, nil)
	return res, nil
}

// syncDevice issues the blocking device-flush primitive. The flush itself
// cannot be interrupted; ctx expiry abandons the wait and reports the data
// as at risk.
func (t *WriteTarget) syncDevice(ctx context.Context) error {
	start := time.Now()
	errCh := make(chan error, 1)
	go func() {
		errCh <- t.file.SyncDevice()
	}()

	var err error
	select {
	case <-ctx.Done():
		err = fmt.Errorf("%w: device flush did not complete: %w", ErrMediumFailure, ctx.Err())
	case devErr := <-errCh:
		err = classifyDeviceError(devErr)
	}
	t.opts.metrics.RecordDeviceSync(time.Since(start), err)
	if err != nil {
		return err
	}

	if t.opts.syncParentDir {
		if derr := fs.SyncDir(t.fsys, filepath.Dir(t.path)); derr != nil {
			// The contents reached the medium but the directory entry may
			// not have; a crash could orphan the file, so do not claim the
			// physical tier.
			return fmt.Errorf("%w: parent directory sync: %w", ErrMediumFailure, derr)
		}
	}
	return nil
}

// Size returns the byte length the OS currently reports for the target.
// This reads cache-level metadata: a correct size does NOT imply the
// physical commit has happened. See SizeProbe.
func (t *WriteTarget) Size() (int64, error) {
	info, err := t.fsys.Stat(t.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Close flushes the buffer to the cache tier and releases the handle.
// Close guarantees LevelCacheCommitted on every exit path it can, but it
// never implies LevelPhysicallyCommitted — callers wanting the physical tier
// must Commit before Close.
func (t *WriteTarget) Close() error {
	if t.closed {
		return os.ErrClosed
	}
	t.closed = true

	flushErr := t.buf.Flush()
	if flushErr == nil && t.level < LevelCacheCommitted {
		t.level = LevelCacheCommitted
	} else if flushErr != nil {
		flushErr = fmt.Errorf("%w: %w", ErrFlushFailed, flushErr)
	}

	err := errors.Join(flushErr, t.file.Close())
	t.opts.logger.LogClose(t.path, t.level, err)
	return err
}

// WriteFile copies r to path, commits to the requested durability level and
// closes the target. It is the one-shot form of Open/ReadFrom/Commit/Close.
func WriteFile(ctx context.Context, path string, r io.Reader, level DurabilityLevel, optFns ...Option) (CommitResult, error) {
	t, err := Open(path, optFns...)
	if err != nil {
		return CommitResult{}, err
	}

	var res CommitResult
	if _, err = t.ReadFrom(r); err == nil {
		res, err = t.Commit(ctx, level)
	} else {
		res = CommitResult{Level: t.Level()}
	}

	if cerr := t.Close(); err == nil && cerr != nil {
		err = cerr
	}
	res.Level = t.Level()
	return res, err
}
