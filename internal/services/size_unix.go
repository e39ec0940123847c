//go:build unix

package services

import (
	"io/fs"
	"syscall"

	"treescope/internal/domain"
)

// fileSizeBytes measures a file per the requested strategy. POSIX st_blocks
// is in 512-byte units regardless of the filesystem block size.
func fileSizeBytes(info fs.FileInfo, strategy domain.SizeStrategy) int64 {
	if strategy != domain.SizeAllocated {
		return info.Size()
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}
	return int64(stat.Blocks) * 512
}
