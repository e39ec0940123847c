package services

import (
	"time"

	"treescope/internal/domain"
)

type ScanResult struct {
	Root        *domain.FileNode
	Diagnostics domain.ScanDiagnostics
	Duration    time.Duration
}
