package services

import "treescope/internal/domain"

// UnlimitedDepth disables depth capping.
const UnlimitedDepth = -1

type ScanRequest struct {
	RootPath string
	// MaxDepth caps traversal: a directory reached at this depth is still
	// visited and sized, but its children are not materialized. Negative
	// means unlimited.
	MaxDepth   int
	Strategy   domain.SizeStrategy
	OnProgress ProgressFunc
}
