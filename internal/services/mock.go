package services

import (
	"context"
	"path/filepath"
	"time"

	"treescope/internal/domain"
)

// MockScanner returns a small fixed tree, useful for exercising consumers
// without touching the filesystem.
type MockScanner struct{}

func NewMockScanner() *MockScanner {
	return &MockScanner{}
}

func (scanner *MockScanner) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	start := time.Now()
	select {
	case <-ctx.Done():
		return ScanResult{}, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}

	root := cleanPath(req.RootPath)
	media := domain.NewDirectory("media", filepath.Join(root, "media"), []*domain.FileNode{
		domain.NewFile("movie.mkv", filepath.Join(root, "media", "movie.mkv"), 700),
		domain.NewFile("song.flac", filepath.Join(root, "media", "song.flac"), 100),
	})
	docs := domain.NewDirectory("docs", filepath.Join(root, "docs"), []*domain.FileNode{
		domain.NewFile("notes.txt", filepath.Join(root, "docs", "notes.txt"), 200),
	})
	node := domain.NewDirectory(filepath.Base(root), root, []*domain.FileNode{media, docs})

	return ScanResult{Root: node, Duration: time.Since(start)}, nil
}

func (scanner *MockScanner) LastScanDiagnostics() (domain.ScanDiagnostics, bool) {
	return domain.ScanDiagnostics{}, false
}
