package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treescope/internal/domain"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))
	return path
}

func logicalScan(t *testing.T, root string, maxDepth int) ScanResult {
	t.Helper()
	result, err := NewFSScanner().Scan(context.Background(), ScanRequest{
		RootPath: root,
		MaxDepth: maxDepth,
		Strategy: domain.SizeLogical,
	})
	require.NoError(t, err)
	return result
}

func TestScanMissingRoot(t *testing.T) {
	scanner := NewFSScanner()
	_, err := scanner.Scan(context.Background(), ScanRequest{
		RootPath: filepath.Join(t.TempDir(), "does-not-exist"),
		MaxDepth: UnlimitedDepth,
		Strategy: domain.SizeLogical,
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	_, ok := scanner.LastScanDiagnostics()
	assert.False(t, ok, "no diagnostics before a completed scan")
}

func TestScanSizesAndStructure(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "f1", 100)
	writeFile(t, sub, "f2", 50)
	writeFile(t, root, "b.txt", 25)

	result := logicalScan(t, root, UnlimitedDepth)
	require.NotNil(t, result.Root)
	assert.Equal(t, int64(175), result.Root.SizeBytes())
	assert.True(t, result.Root.IsDir())
	require.Len(t, result.Root.Children(), 2)
	assert.Equal(t, "a", result.Root.Children()[0].Name(), "children listed in name order")
	assert.Equal(t, int64(150), result.Root.Children()[0].SizeBytes())
	assert.False(t, result.Diagnostics.IsPartialResult())
}

func TestScanDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.Mkdir(dir, 0o755))
		writeFile(t, dir, "data", 10)
	}
	first := logicalScan(t, root, UnlimitedDepth)
	second := logicalScan(t, root, UnlimitedDepth)
	requireSameShape(t, first.Root, second.Root)
}

func requireSameShape(t *testing.T, a, b *domain.FileNode) {
	t.Helper()
	require.True(t, a.Equal(b), "nodes differ: %s vs %s", a.Path(), b.Path())
	require.Len(t, b.Children(), len(a.Children()))
	for i := range a.Children() {
		requireSameShape(t, a.Children()[i], b.Children()[i])
	}
}

func TestScanSymlinksNotTraversed(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation not reliable on windows")
	}
	root := t.TempDir()
	target := filepath.Join(root, "real")
	require.NoError(t, os.Mkdir(target, 0o755))
	writeFile(t, target, "data", 40)
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link-dir")))
	require.NoError(t, os.Symlink(filepath.Join(target, "data"), filepath.Join(root, "link-file")))

	result := logicalScan(t, root, UnlimitedDepth)
	assert.Equal(t, int64(40), result.Root.SizeBytes(), "symlinks must not be sized")
	assert.Len(t, result.Root.Children(), 1)
	assert.EqualValues(t, 0, result.Diagnostics.SkippedItemCount, "symlinks are not skips")
}

func TestScanUnreadableSubdirIsPartial(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	writeFile(t, locked, "hidden", 999)
	writeFile(t, root, "readable", 64)
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	scanner := NewFSScanner()
	result, err := scanner.Scan(context.Background(), ScanRequest{
		RootPath: root,
		MaxDepth: UnlimitedDepth,
		Strategy: domain.SizeLogical,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(64), result.Root.SizeBytes(), "only the readable file is sized")
	assert.GreaterOrEqual(t, result.Diagnostics.SkippedItemCount, int64(1))
	assert.NotEmpty(t, result.Diagnostics.SampledSkippedPaths)
	assert.True(t, result.Diagnostics.IsPartialResult())

	diag, ok := scanner.LastScanDiagnostics()
	require.True(t, ok)
	assert.Equal(t, result.Diagnostics.SkippedItemCount, diag.SkippedItemCount)
}

func TestScanSkipSampleBounded(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	for i := 0; i < domain.SkippedSampleCap+2; i++ {
		dir := filepath.Join(root, string(rune('a'+i)))
		require.NoError(t, os.Mkdir(dir, 0o755))
		require.NoError(t, os.Chmod(dir, 0o000))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	}
	result := logicalScan(t, root, UnlimitedDepth)
	assert.EqualValues(t, domain.SkippedSampleCap+2, result.Diagnostics.SkippedItemCount)
	assert.Len(t, result.Diagnostics.SampledSkippedPaths, domain.SkippedSampleCap)
}

func TestScanDepthCapped(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	writeFile(t, deep, "buried", 64)
	writeFile(t, root, "top", 32)

	result := logicalScan(t, root, 1)
	assert.Equal(t, int64(96), result.Root.SizeBytes(), "capped scan still reports full size")

	capped := result.Root.Find(filepath.Join(root, "a"))
	require.NotNil(t, capped)
	assert.True(t, capped.IsDepthCapped())
	assert.Empty(t, capped.Children(), "no children materialized beyond the cap")
	assert.Equal(t, int64(64), capped.SizeBytes())
}

func TestScanRootDepthZero(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "f", 10)
	result := logicalScan(t, root, 0)
	assert.True(t, result.Root.IsDepthCapped())
	assert.Equal(t, int64(10), result.Root.SizeBytes())
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "f", 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewFSScanner().Scan(ctx, ScanRequest{
		RootPath: root,
		MaxDepth: UnlimitedDepth,
		Strategy: domain.SizeLogical,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result.Root, "cancellation discards all partial state")

	var unreadable *UnreadableError
	assert.False(t, errors.As(err, &unreadable), "cancellation is not a scan error")
}

func TestScanRejectsOverlappingScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "f", 10)

	scanner := NewFSScanner()
	var once sync.Once
	var overlapErr error
	_, err := scanner.Scan(context.Background(), ScanRequest{
		RootPath: root,
		MaxDepth: UnlimitedDepth,
		Strategy: domain.SizeLogical,
		OnProgress: func(ScanProgress) {
			once.Do(func() {
				_, overlapErr = scanner.Scan(context.Background(), ScanRequest{
					RootPath: root,
					MaxDepth: UnlimitedDepth,
					Strategy: domain.SizeLogical,
				})
			})
		},
	})
	require.NoError(t, err)
	require.ErrorIs(t, overlapErr, ErrScanInProgress)
}

func TestScanProgressIsCumulative(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		dir := filepath.Join(root, string(rune('a'+i)))
		require.NoError(t, os.Mkdir(dir, 0o755))
		writeFile(t, dir, "data", 10)
	}
	var updates []ScanProgress
	_, err := NewFSScanner().Scan(context.Background(), ScanRequest{
		RootPath: root,
		MaxDepth: UnlimitedDepth,
		Strategy: domain.SizeLogical,
		OnProgress: func(progress ScanProgress) {
			updates = append(updates, progress)
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, updates)
	for i := 1; i < len(updates); i++ {
		assert.GreaterOrEqual(t, updates[i].ItemsScanned, updates[i-1].ItemsScanned)
		assert.GreaterOrEqual(t, updates[i].BytesScanned, updates[i-1].BytesScanned)
	}
}

func TestScanFileRoot(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "single", 77)
	result := logicalScan(t, path, UnlimitedDepth)
	assert.False(t, result.Root.IsDir())
	assert.Equal(t, int64(77), result.Root.SizeBytes())
}
