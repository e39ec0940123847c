package layout

import (
	"math"

	"treescope/internal/domain"
)

const (
	fullCircle = 2 * math.Pi
	// ringStart puts the first entry boundary at twelve o'clock.
	ringStart = -math.Pi / 2
	// expandAllDepth: directories whose arc sits at or above this ring are
	// always expanded; deeper ones only when they have more than one
	// non-zero-sized child, collapsing uninformative single-child chains.
	expandAllDepth = 2
)

type Arc struct {
	StartAngle  float64
	EndAngle    float64
	Depth       int
	ParentPath  string
	SizeBytes   int64
	Label       string
	Path        string
	IsDir       bool
	IsAggregate bool
	// BranchIndex is inherited from the top-level ancestor so a whole
	// branch keeps one color group across depths.
	BranchIndex int
}

// MakeArcs lays the tree out as radial rings: the root is a full-circle arc
// at depth 0 and each directory distributes its span across its entries
// proportionally to size. Never emits more than opts.MaxCount arcs.
func MakeArcs(root *domain.FileNode, opts Options) []Arc {
	if root == nil || opts.MaxCount <= 0 {
		return nil
	}
	budget := opts.MaxCount
	arcs := []Arc{{
		StartAngle:  ringStart,
		EndAngle:    ringStart + fullCircle,
		Depth:       0,
		SizeBytes:   root.SizeBytes(),
		Label:       root.Name(),
		Path:        root.Path(),
		IsDir:       root.IsDir(),
		BranchIndex: 0,
	}}
	budget--
	if root.IsDir() {
		layoutRing(root, ringStart, ringStart+fullCircle, 1, -1, opts, &budget, &arcs)
	}
	return arcs
}

// layoutRing emits one ring of arcs for dir's entries between start and end.
// branch < 0 means the entries are top-level and assign their own indices.
func layoutRing(dir *domain.FileNode, start, end float64, depth, branch int, opts Options, budget *int, out *[]Arc) {
	if *budget <= 0 || depth > opts.MaxDepth {
		return
	}
	entries := childEntries(dir, opts.MaxChildrenPerNode, opts.MinVisibleFraction)
	total := float64(entrySum(entries))
	if total <= 0 {
		return
	}
	span := end - start
	angle := start
	for i, e := range entries {
		if *budget <= 0 {
			return
		}
		arcEnd := angle + span*float64(e.size)/total
		if i == len(entries)-1 {
			// Close the ring exactly; accumulated float error stays out
			// of the last boundary.
			arcEnd = end
		}
		childBranch := branch
		if childBranch < 0 {
			childBranch = i
		}
		*out = append(*out, Arc{
			StartAngle:  angle,
			EndAngle:    arcEnd,
			Depth:       depth,
			ParentPath:  dir.Path(),
			SizeBytes:   e.size,
			Label:       e.label,
			Path:        e.path,
			IsDir:       e.isDir,
			IsAggregate: e.isAggregate,
			BranchIndex: childBranch,
		})
		*budget--
		if e.isDir && e.node != nil && *budget > 0 && shouldExpand(e.node, depth) {
			layoutRing(e.node, angle, arcEnd, depth+1, childBranch, opts, budget, out)
		}
		angle = arcEnd
	}
}

func shouldExpand(dir *domain.FileNode, depth int) bool {
	if depth <= expandAllDepth {
		return true
	}
	nonZero := 0
	for _, child := range dir.Children() {
		if child.SizeBytes() > 0 {
			nonZero++
			if nonZero > 1 {
				return true
			}
		}
	}
	return false
}
