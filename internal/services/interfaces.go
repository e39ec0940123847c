package services

import (
	"context"

	"treescope/internal/domain"
)

type Scanner interface {
	Scan(ctx context.Context, req ScanRequest) (ScanResult, error)
}

type DiagnosticsProvider interface {
	// LastScanDiagnostics returns the diagnostics of the most recently
	// completed scan; ok is false before any scan has completed.
	LastScanDiagnostics() (diag domain.ScanDiagnostics, ok bool)
}
