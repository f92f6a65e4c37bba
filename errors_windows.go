//go:build windows

package durafile

import (
	"errors"

	"golang.org/x/sys/windows"
)

func classifyErrno(err error) error {
	switch {
	case errors.Is(err, windows.ERROR_INVALID_HANDLE):
		return ErrInvalidHandle
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return ErrPermissionDenied
	case errors.Is(err, windows.ERROR_NOT_READY), errors.Is(err, windows.ERROR_IO_DEVICE),
		errors.Is(err, windows.ERROR_DEV_NOT_EXIST):
		return ErrMediumFailure
	}
	return nil
}
