package durafile

import (
	"errors"
	"fmt"
	"os"

	"github.com/durafile/durafile/fs"
)

var (
	// ErrFlushFailed is returned when the buffer-to-cache transfer was
	// rejected by the OS (e.g. disk full). The buffered bytes are left
	// intact, so the caller may retry after intervening.
	ErrFlushFailed = errors.New("flush to OS failed")

	// ErrInvalidHandle is returned when the device flush was issued on an
	// invalid handle. This is a programmer error and is not retried.
	ErrInvalidHandle = errors.New("invalid file handle")

	// ErrPermissionDenied is returned when the caller lacks the rights to
	// invoke the device flush.
	ErrPermissionDenied = errors.New("device flush not permitted")

	// ErrMediumFailure is returned when the device failed or was removed
	// during a flush. Data that was only cache-committed must be treated as
	// at risk.
	ErrMediumFailure = errors.New("storage medium failed or was removed")

	// ErrInvalidCommitLevel is returned when Commit is asked for a level
	// that is not a commit target. Only the cache and physical tiers can be
	// requested; LevelBuffered is where data starts, not somewhere to go.
	ErrInvalidCommitLevel = errors.New("level is not a commit target")
)

// ErrUnknownLevel indicates a durability level name that ParseLevel does not
// recognize.
type ErrUnknownLevel struct {
	Name string
}

func (e *ErrUnknownLevel) Error() string {
	return fmt.Sprintf("unknown durability level: %q", e.Name)
}

// CommitError reports a failed commit attempt.
//
// The original underlying error can be accessed via errors.Unwrap.
type CommitError struct {
	Path      string
	Requested DurabilityLevel
	Reached   DurabilityLevel
	cause     error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s to %s: stopped at %s: %v", e.Path, e.Requested, e.Reached, e.cause)
}

func (e *CommitError) Unwrap() error { return e.cause }

// classifyDeviceError maps an error from the device-flush primitive onto the
// package taxonomy. Unknown failures classify as ErrMediumFailure: if
// durability cannot be verified, the data is at risk.
func classifyDeviceError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrMediumRemoved) {
		return fmt.Errorf("%w: %w", ErrMediumFailure, err)
	}
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	if errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}
	if sentinel := classifyErrno(err); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return fmt.Errorf("%w: %w", ErrMediumFailure, err)
}
