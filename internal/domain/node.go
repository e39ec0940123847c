package domain

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileNode is one entry of an immutable scan snapshot. A directory's size is
// the sum of its children, except for depth-capped directories whose children
// were never materialized and whose size is a flattened recursive total.
// Nodes are never mutated after construction.
type FileNode struct {
	name     string
	path     string
	isDir    bool
	capped   bool
	size     int64
	children []*FileNode
	bySize   []*FileNode
}

// Fingerprint is a cheap structural identity for a node: two nodes with the
// same fingerprint are interchangeable for layout purposes.
type Fingerprint struct {
	Path       string
	SizeBytes  int64
	ChildCount int
}

func NewFile(name, path string, size int64) *FileNode {
	return &FileNode{name: name, path: path, size: size}
}

// NewDirectory builds a directory node from already-built children. The size
// is the children sum and the by-size view is computed once, here.
func NewDirectory(name, path string, children []*FileNode) *FileNode {
	var total int64
	for _, child := range children {
		total += child.size
	}
	return &FileNode{
		name:     name,
		path:     path,
		isDir:    true,
		size:     total,
		children: children,
		bySize:   sortBySize(children),
	}
}

// NewDepthCappedDir builds a directory leaf visited at the traversal depth
// limit: no children, size already flattened to the full recursive total.
func NewDepthCappedDir(name, path string, size int64) *FileNode {
	return &FileNode{name: name, path: path, isDir: true, capped: true, size: size}
}

func (node *FileNode) Name() string  { return node.name }
func (node *FileNode) Path() string  { return node.path }
func (node *FileNode) IsDir() bool   { return node.isDir }
func (node *FileNode) SizeBytes() int64 { return node.size }

// IsDepthCapped reports whether the node is a directory whose children were
// never materialized.
func (node *FileNode) IsDepthCapped() bool { return node.capped }

func (node *FileNode) Children() []*FileNode { return node.children }

// ChildrenBySize returns children ordered by size descending, ties broken by
// name then path. The view is precomputed; callers must not modify it.
func (node *FileNode) ChildrenBySize() []*FileNode { return node.bySize }

// Equal treats nodes with the same path and size as interchangeable,
// regardless of child list identity.
func (node *FileNode) Equal(other *FileNode) bool {
	if node == nil || other == nil {
		return node == other
	}
	return node.path == other.path && node.size == other.size
}

func (node *FileNode) Fingerprint() Fingerprint {
	return Fingerprint{Path: node.path, SizeBytes: node.size, ChildCount: len(node.children)}
}

// Find returns the descendant (or the node itself) with the given path, or
// nil when no such node exists in the materialized tree.
func (node *FileNode) Find(path string) *FileNode {
	if node == nil {
		return nil
	}
	if node.path == path {
		return node
	}
	if !hasPathPrefix(node.path, path) {
		return nil
	}
	for _, child := range node.children {
		if found := child.Find(path); found != nil {
			return found
		}
	}
	return nil
}

// Prune returns a tree with every node whose path is in excluded removed and
// all ancestor sizes recomputed, or nil when the node itself is excluded.
// The receiver is returned unchanged when nothing under it matched; the
// operation never mutates.
func (node *FileNode) Prune(excluded map[string]struct{}) *FileNode {
	if node == nil {
		return nil
	}
	if _, gone := excluded[node.path]; gone {
		return nil
	}
	if !node.isDir || len(node.children) == 0 {
		return node
	}
	changed := false
	kept := make([]*FileNode, 0, len(node.children))
	for _, child := range node.children {
		pruned := child.Prune(excluded)
		if pruned == nil {
			changed = true
			continue
		}
		if pruned != child {
			changed = true
		}
		kept = append(kept, pruned)
	}
	if !changed {
		return node
	}
	return NewDirectory(node.name, node.path, kept)
}

func sortBySize(children []*FileNode) []*FileNode {
	if len(children) == 0 {
		return nil
	}
	view := append([]*FileNode{}, children...)
	sort.SliceStable(view, func(i, j int) bool {
		if view[i].size != view[j].size {
			return view[i].size > view[j].size
		}
		if view[i].name != view[j].name {
			return view[i].name < view[j].name
		}
		return view[i].path < view[j].path
	})
	return view
}

func hasPathPrefix(root, path string) bool {
	if root == path {
		return true
	}
	rootWithSep := root + string(filepath.Separator)
	return strings.HasPrefix(path, rootWithSep)
}
