//go:build unix

package services

import "syscall"

func recoverableErrno(errno syscall.Errno) bool {
	switch errno {
	case syscall.EACCES, syscall.EPERM, syscall.ENOENT, syscall.ENOTDIR,
		syscall.EBADF, syscall.EIO, syscall.ENXIO:
		return true
	}
	return false
}
