//go:build unix

package durafile

import (
	"errors"

	"golang.org/x/sys/unix"
)

func classifyErrno(err error) error {
	switch {
	case errors.Is(err, unix.EBADF):
		return ErrInvalidHandle
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		return ErrPermissionDenied
	case errors.Is(err, unix.EIO), errors.Is(err, unix.ENODEV),
		errors.Is(err, unix.ENXIO), errors.Is(err, unix.ETIMEDOUT):
		return ErrMediumFailure
	}
	return nil
}
