package layout

import (
	"math"

	"treescope/internal/domain"
)

// cellInset shrinks the region handed to a cell's own children, in unit-square
// coordinates, so nesting stays visible when drawn.
const cellInset = 0.004

// Rect is a normalized rectangle inside the unit square.
type Rect struct {
	X, Y, W, H float64
}

type Cell struct {
	Rect        Rect
	Depth       int
	SizeBytes   int64
	Label       string
	Path        string
	IsDir       bool
	IsAggregate bool
}

// MakeCells lays the tree out as a squarified treemap of the unit square.
// The root itself emits no cell; its entries tile [0,1]x[0,1] at depth 1.
// Never emits more than opts.MaxCount cells; degenerate rectangles are
// dropped silently without consuming budget.
func MakeCells(root *domain.FileNode, opts Options) []Cell {
	if root == nil || opts.MaxCount <= 0 {
		return nil
	}
	unit := Rect{X: 0, Y: 0, W: 1, H: 1}
	if !root.IsDir() {
		return []Cell{{Rect: unit, Depth: 1, SizeBytes: root.SizeBytes(), Label: root.Name(), Path: root.Path()}}
	}
	budget := opts.MaxCount
	var cells []Cell
	layoutCells(root, unit, 1, opts, &budget, &cells)
	return cells
}

func layoutCells(dir *domain.FileNode, rect Rect, depth int, opts Options, budget *int, out *[]Cell) {
	if *budget <= 0 || degenerate(rect) {
		return
	}
	entries := childEntries(dir, opts.MaxChildrenPerNode, opts.MinVisibleFraction)
	if entrySum(entries) <= 0 {
		return
	}
	rects := squarify(entries, rect)
	for i, e := range entries {
		if *budget <= 0 {
			return
		}
		r := rects[i]
		if degenerate(r) {
			continue
		}
		*out = append(*out, Cell{
			Rect:        r,
			Depth:       depth,
			SizeBytes:   e.size,
			Label:       e.label,
			Path:        e.path,
			IsDir:       e.isDir,
			IsAggregate: e.isAggregate,
		})
		*budget--
		if e.isDir && e.node != nil && len(e.node.Children()) > 0 && depth < opts.MaxDepth && *budget > 0 {
			layoutCells(e.node, inset(r, cellInset), depth+1, opts, budget, out)
		}
	}
}

// squarify assigns each entry an area-proportional rectangle using the
// classic greedy row heuristic: keep appending the next size-sorted entry to
// the current row while doing so does not worsen the row's worst aspect
// ratio against the short side of the remaining rectangle.
func squarify(entries []entry, rect Rect) []Rect {
	total := float64(entrySum(entries))
	rects := make([]Rect, len(entries))
	if total <= 0 || degenerate(rect) {
		return rects
	}
	areas := make([]float64, len(entries))
	scale := rect.W * rect.H / total
	for i, e := range entries {
		areas[i] = float64(e.size) * scale
	}

	remaining := rect
	rowStart := 0
	i := 0
	for i < len(areas) {
		side := shortSide(remaining)
		if i > rowStart && worstAspect(areas[rowStart:i], side) < worstAspect(areas[rowStart:i+1], side) {
			layoutRow(areas[rowStart:i], &remaining, rects[rowStart:i])
			rowStart = i
			continue
		}
		i++
	}
	layoutRow(areas[rowStart:], &remaining, rects[rowStart:])
	return rects
}

// worstAspect is the worst ratio achievable for a row of the given areas laid
// against a side of length w.
func worstAspect(row []float64, w float64) float64 {
	var sum, largest float64
	smallest := math.MaxFloat64
	for _, a := range row {
		sum += a
		if a > largest {
			largest = a
		}
		if a < smallest {
			smallest = a
		}
	}
	if sum <= 0 || smallest <= 0 || w <= 0 {
		return math.MaxFloat64
	}
	s2 := sum * sum
	w2 := w * w
	return math.Max(w2*largest/s2, s2/(w2*smallest))
}

// layoutRow places a finished row along the short side of the remaining
// rectangle, splitting it proportionally to area, and consumes the row's
// thickness from the long axis.
func layoutRow(row []float64, remaining *Rect, out []Rect) {
	var sum float64
	for _, a := range row {
		sum += a
	}
	if sum <= 0 {
		return
	}
	if remaining.W >= remaining.H {
		if remaining.H <= 0 {
			return
		}
		width := sum / remaining.H
		y := remaining.Y
		for i, a := range row {
			h := a / width
			out[i] = Rect{X: remaining.X, Y: y, W: width, H: h}
			y += h
		}
		remaining.X += width
		remaining.W = math.Max(remaining.W-width, 0)
	} else {
		if remaining.W <= 0 {
			return
		}
		height := sum / remaining.W
		x := remaining.X
		for i, a := range row {
			w := a / height
			out[i] = Rect{X: x, Y: remaining.Y, W: w, H: height}
			x += w
		}
		remaining.Y += height
		remaining.H = math.Max(remaining.H-height, 0)
	}
}

func shortSide(r Rect) float64 {
	return math.Min(r.W, r.H)
}

func inset(r Rect, pad float64) Rect {
	if r.W <= 2*pad || r.H <= 2*pad {
		return Rect{}
	}
	return Rect{X: r.X + pad, Y: r.Y + pad, W: r.W - 2*pad, H: r.H - 2*pad}
}

func degenerate(r Rect) bool {
	return r.W <= 0 || r.H <= 0
}
