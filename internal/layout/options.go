package layout

// Options bound what a layout pass may emit. MaxCount is a global primitive
// budget threaded through the recursive expansion; once it is exhausted no
// further directories are entered.
type Options struct {
	MaxDepth           int
	MaxChildrenPerNode int
	MinVisibleFraction float64
	MaxCount           int
}

func DefaultTreemapOptions() Options {
	return Options{
		MaxDepth:           4,
		MaxChildrenPerNode: 24,
		MinVisibleFraction: 0.002,
		MaxCount:           600,
	}
}

func DefaultRadialOptions() Options {
	return Options{
		MaxDepth:           5,
		MaxChildrenPerNode: 32,
		MinVisibleFraction: 0.004,
		MaxCount:           900,
	}
}
