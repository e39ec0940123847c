package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"treescope/internal/domain"
)

const progressEvery = 100

// FSScanner walks a filesystem subtree into an immutable FileNode tree.
// Traversal is strictly sequential and depth-first, children in name order,
// so traversal and progress are reproducible. One scan at a time per
// instance; cancellation is observed before every entry visit and discards
// all partial state.
type FSScanner struct {
	scanMu sync.Mutex
	mu     sync.RWMutex
	last   *domain.ScanDiagnostics
}

func NewFSScanner() *FSScanner {
	return &FSScanner{}
}

func (scanner *FSScanner) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	if !scanner.scanMu.TryLock() {
		return ScanResult{}, ErrScanInProgress
	}
	defer scanner.scanMu.Unlock()

	start := time.Now()
	root := cleanPath(req.RootPath)

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ScanResult{}, &NotFoundError{Path: root}
		}
		return ScanResult{}, &UnreadableError{Path: root, Err: err}
	}

	walk := &treeWalker{
		maxDepth:   req.MaxDepth,
		strategy:   req.Strategy,
		onProgress: req.OnProgress,
	}

	name := filepath.Base(root)
	if name == "." || name == string(filepath.Separator) {
		name = root
	}

	var node *domain.FileNode
	if info.IsDir() {
		node, err = walk.walkDir(ctx, root, name, 0)
	} else {
		node = domain.NewFile(name, root, fileSizeBytes(info, walk.strategy))
		walk.visited(node.SizeBytes(), root)
	}
	if err != nil {
		return ScanResult{}, err
	}

	scanner.mu.Lock()
	diag := walk.diag
	scanner.last = &diag
	scanner.mu.Unlock()

	return ScanResult{Root: node, Diagnostics: walk.diag, Duration: time.Since(start)}, nil
}

func (scanner *FSScanner) LastScanDiagnostics() (domain.ScanDiagnostics, bool) {
	scanner.mu.RLock()
	defer scanner.mu.RUnlock()
	if scanner.last == nil {
		return domain.ScanDiagnostics{}, false
	}
	return *scanner.last, true
}

// treeWalker holds the mutable state of one in-flight scan. It is owned by a
// single goroutine for the scan's lifetime, so nothing here is locked.
type treeWalker struct {
	maxDepth   int
	strategy   domain.SizeStrategy
	onProgress ProgressFunc
	items      int64
	bytes      int64
	diag       domain.ScanDiagnostics
}

func (walk *treeWalker) walkDir(ctx context.Context, path, name string, depth int) (*domain.FileNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if walk.maxDepth >= 0 && depth >= walk.maxDepth {
		size, err := walk.flattenedSize(ctx, path)
		if err != nil {
			return nil, err
		}
		return domain.NewDepthCappedDir(name, path, size), nil
	}

	walk.report(path)

	entries, err := os.ReadDir(path)
	if err != nil {
		if depth > 0 && isRecoverable(err) {
			walk.diag.RecordSkip(path)
			return nil, nil
		}
		return nil, &UnreadableError{Path: path, Err: err}
	}

	// os.ReadDir sorts by filename, which is path order within a directory.
	children := make([]*domain.FileNode, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			// Never traversed or sized; not a skip either.
			continue
		}
		childPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			child, err := walk.walkDir(ctx, childPath, entry.Name(), depth+1)
			if err != nil {
				return nil, err
			}
			if child == nil {
				continue
			}
			children = append(children, child)
			walk.visited(0, path)
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if isRecoverable(err) {
				walk.diag.RecordSkip(childPath)
				continue
			}
			return nil, &UnreadableError{Path: childPath, Err: err}
		}
		size := fileSizeBytes(info, walk.strategy)
		children = append(children, domain.NewFile(entry.Name(), childPath, size))
		walk.visited(size, path)
	}

	return domain.NewDirectory(name, path, children), nil
}

// flattenedSize totals a depth-capped subtree without materializing nodes.
// The walk is sequential and lexically ordered; per-entry failures follow the
// same recoverable-skip policy as the main traversal.
func (walk *treeWalker) flattenedSize(ctx context.Context, root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if isRecoverable(err) {
				walk.diag.RecordSkip(path)
				return nil
			}
			return &UnreadableError{Path: path, Err: err}
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if entry.IsDir() {
			walk.report(path)
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			if isRecoverable(err) {
				walk.diag.RecordSkip(path)
				return nil
			}
			return &UnreadableError{Path: path, Err: err}
		}
		size := fileSizeBytes(info, walk.strategy)
		total += size
		walk.visited(size, root)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (walk *treeWalker) visited(size int64, dir string) {
	walk.items++
	walk.bytes += size
	if walk.onProgress != nil && walk.items%progressEvery == 0 {
		walk.onProgress(ScanProgress{ItemsScanned: walk.items, BytesScanned: walk.bytes, CurrentDir: dir})
	}
}

func (walk *treeWalker) report(dir string) {
	if walk.onProgress != nil {
		walk.onProgress(ScanProgress{ItemsScanned: walk.items, BytesScanned: walk.bytes, CurrentDir: dir})
	}
}

func cleanPath(path string) string {
	if path == "" {
		return path
	}
	clean := filepath.Clean(path)
	abs, err := filepath.Abs(clean)
	if err != nil {
		return clean
	}
	return abs
}
