package layout

import "treescope/internal/domain"

// AggregateLabel names the synthetic bucket that collapses the long tail of
// small children at each directory level.
const AggregateLabel = "smaller items"

// keepByRank always grants the first few children their own entry even when
// they fall under the visibility threshold. The same constant serves both
// layout engines.
const keepByRank = 5

type entry struct {
	label       string
	path        string
	size        int64
	node        *domain.FileNode
	isDir       bool
	isAggregate bool
}

// childEntries selects the bounded entry list for one directory: children in
// by-size order become real entries while under maxChildren and either above
// minFraction of the directory total or within the first keepByRank ranks;
// everything else is summed into a single aggregate entry. Order is always
// size-descending with label as tie-break, so layouts are deterministic.
func childEntries(dir *domain.FileNode, maxChildren int, minFraction float64) []entry {
	children := dir.ChildrenBySize()
	if len(children) == 0 {
		return nil
	}
	total := dir.SizeBytes()

	entries := make([]entry, 0, minInt(len(children)+1, maxChildren+1))
	var restSize int64
	restCount := 0
	for rank, child := range children {
		visible := total > 0 && float64(child.SizeBytes())/float64(total) >= minFraction
		if len(entries) < maxChildren && (visible || rank < keepByRank) {
			entries = append(entries, entry{
				label: child.Name(),
				path:  child.Path(),
				size:  child.SizeBytes(),
				node:  child,
				isDir: child.IsDir(),
			})
			continue
		}
		restSize += child.SizeBytes()
		restCount++
	}
	if restCount > 0 {
		entries = append(entries, entry{
			label:       AggregateLabel,
			size:        restSize,
			isAggregate: true,
		})
	}
	return entries
}

func entrySum(entries []entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.size
	}
	return total
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
