package services

// ScanProgress is a fire-and-forget side channel: cumulative counters plus
// the directory currently being visited. It never gates traversal.
type ScanProgress struct {
	ItemsScanned int64
	BytesScanned int64
	CurrentDir   string
}

type ProgressFunc func(ScanProgress)
