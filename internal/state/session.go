package state

import (
	"treescope/internal/config"
	"treescope/internal/domain"
	"treescope/internal/layout"
	"treescope/internal/services"
)

type ViewMode int

const (
	ViewTreemap ViewMode = iota
	ViewRadial
)

func (mode ViewMode) String() string {
	if mode == ViewRadial {
		return "radial"
	}
	return "treemap"
}

// Session is the UI-facing snapshot of one run: the latest completed tree,
// its diagnostics, and where the user is looking.
type Session struct {
	Cfg         config.Config
	Root        *domain.FileNode
	Diagnostics domain.ScanDiagnostics
	HaveResult  bool
	Focus       string
	Mode        ViewMode
}

func NewSession(cfg config.Config) *Session {
	return &Session{Cfg: cfg}
}

// ApplyResult replaces the previous scan result atomically; the superseded
// tree is dropped by normal ownership.
func (session *Session) ApplyResult(result services.ScanResult) {
	session.Root = result.Root
	session.Diagnostics = result.Diagnostics
	session.HaveResult = true
	session.Focus = ""
}

// FocusedNode resolves the focus path against the tree, falling back to the
// root when the focus no longer exists.
func (session *Session) FocusedNode() *domain.FileNode {
	if session.Root == nil {
		return nil
	}
	if session.Focus == "" {
		return session.Root
	}
	if node := session.Root.Find(session.Focus); node != nil {
		return node
	}
	return session.Root
}

// FocusInto moves focus to the given path if it names a directory with
// materialized children.
func (session *Session) FocusInto(path string) bool {
	if session.Root == nil || path == "" {
		return false
	}
	node := session.Root.Find(path)
	if node == nil || !node.IsDir() || len(node.Children()) == 0 {
		return false
	}
	session.Focus = path
	return true
}

func (session *Session) FocusParent() {
	node := session.FocusedNode()
	if node == nil || node == session.Root {
		session.Focus = ""
		return
	}
	parent := parentOf(session.Root, node.Path())
	if parent == nil || parent == session.Root {
		session.Focus = ""
		return
	}
	session.Focus = parent.Path()
}

// HideFocused prunes the focused subtree out of the in-memory tree without
// rescanning; ancestor sizes are recomputed. Hiding the root is refused.
func (session *Session) HideFocused() bool {
	node := session.FocusedNode()
	if node == nil || node == session.Root {
		return false
	}
	excluded := map[string]struct{}{node.Path(): {}}
	pruned := session.Root.Prune(excluded)
	if pruned == nil {
		return false
	}
	session.FocusParent()
	session.Root = pruned
	return true
}

func (session *Session) ToggleMode() {
	if session.Mode == ViewTreemap {
		session.Mode = ViewRadial
	} else {
		session.Mode = ViewTreemap
	}
}

func (session *Session) TreemapOptions() layout.Options {
	return layout.Options{
		MaxDepth:           4,
		MaxChildrenPerNode: session.Cfg.MaxChildrenPerNode,
		MinVisibleFraction: session.Cfg.MinVisibleFraction,
		MaxCount:           session.Cfg.MaxCells,
	}
}

func (session *Session) RadialOptions() layout.Options {
	return layout.Options{
		MaxDepth:           5,
		MaxChildrenPerNode: session.Cfg.MaxChildrenPerNode,
		MinVisibleFraction: session.Cfg.MinVisibleFraction,
		MaxCount:           session.Cfg.MaxArcs,
	}
}

func parentOf(root *domain.FileNode, path string) *domain.FileNode {
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if child.Path() == path {
			return root
		}
		if found := parentOf(child, path); found != nil {
			return found
		}
	}
	return nil
}
