package domain

// SizeStrategy selects how a file's byte count is measured.
type SizeStrategy string

const (
	// SizeLogical uses the apparent file size attribute.
	SizeLogical SizeStrategy = "logical"
	// SizeAllocated uses on-disk block usage, which is smaller than the
	// logical size for sparse files.
	SizeAllocated SizeStrategy = "allocated"
)

func ParseSizeStrategy(value string, fallback SizeStrategy) SizeStrategy {
	switch SizeStrategy(value) {
	case SizeLogical, SizeAllocated:
		return SizeStrategy(value)
	default:
		return fallback
	}
}
