//go:build !unix

package services

import "syscall"

// Non-POSIX errno values are not classified; the portable fs.Err* checks in
// isRecoverable already cover permissions and vanished entries.
func recoverableErrno(syscall.Errno) bool {
	return false
}
