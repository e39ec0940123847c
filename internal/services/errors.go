package services

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrScanInProgress rejects a second Scan against an instance that is
// already mid-scan; calls are never interleaved.
var ErrScanInProgress = errors.New("scan already in progress")

// NotFoundError reports a scan root that did not exist before traversal.
type NotFoundError struct {
	Path string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", err.Path)
}

// UnreadableError reports a non-recoverable I/O failure that aborted the
// whole scan.
type UnreadableError struct {
	Path string
	Err  error
}

func (err *UnreadableError) Error() string {
	return fmt.Sprintf("unreadable: %s: %v", err.Path, err.Err)
}

func (err *UnreadableError) Unwrap() error {
	return err.Err
}

// isRecoverable classifies a per-entry failure as skip-and-continue rather
// than scan-aborting: permissions, entries vanishing mid-walk, not-a-dir
// races, bad descriptors and plain I/O errors. Everything else is fatal.
func isRecoverable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrClosed) || errors.Is(err, fs.ErrInvalid) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return recoverableErrno(errno)
	}
	return false
}
