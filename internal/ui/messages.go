package ui

import "treescope/internal/services"

type scanResultMsg struct {
	result services.ScanResult
	err    error
}

type scanProgressMsg struct {
	progress services.ScanProgress
}
