//go:build !unix

package services

import (
	"io/fs"

	"treescope/internal/domain"
)

// Block usage is not exposed portably here, so both strategies fall back to
// the logical size.
func fileSizeBytes(info fs.FileInfo, _ domain.SizeStrategy) int64 {
	return info.Size()
}
