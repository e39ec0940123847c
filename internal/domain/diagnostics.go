package domain

// SkippedSampleCap bounds the skipped-path sample kept per scan; only the
// first few skips are recorded, the counter is exhaustive.
const SkippedSampleCap = 5

// ScanDiagnostics aggregates the recoverable failures of one scan. A fresh
// value replaces the previous one atomically when a scan completes.
type ScanDiagnostics struct {
	SkippedItemCount    int64
	SampledSkippedPaths []string
}

func (diag *ScanDiagnostics) RecordSkip(path string) {
	diag.SkippedItemCount++
	if len(diag.SampledSkippedPaths) < SkippedSampleCap {
		diag.SampledSkippedPaths = append(diag.SampledSkippedPaths, path)
	}
}

func (diag ScanDiagnostics) IsPartialResult() bool {
	return diag.SkippedItemCount > 0
}
