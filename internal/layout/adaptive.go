package layout

import "treescope/internal/domain"

// Adaptive fidelity: when a first pass saturates the arc budget or the root
// fans out unusually wide, re-run with stricter thresholds so very wide trees
// degrade into fewer, chunkier arcs instead of arbitrary truncation.
const (
	tierOneSaturation = 0.92
	tierTwoSaturation = 0.98
	tierOneFanOut     = 140
	tierTwoFanOut     = 260
)

// MakeArcsAdaptive wraps MakeArcs with the degradation policy. The core
// contract of MakeArcs is unchanged; this only picks stricter options for a
// second pass when the first one comes back saturated.
func MakeArcsAdaptive(root *domain.FileNode, opts Options) []Arc {
	arcs := MakeArcs(root, opts)
	if root == nil {
		return arcs
	}
	switch fidelityTier(len(arcs), len(root.Children()), opts.MaxCount) {
	case 2:
		return MakeArcs(root, tighten(opts, 2, 4))
	case 1:
		return MakeArcs(root, tighten(opts, 1, 2))
	default:
		return arcs
	}
}

func fidelityTier(realized, rootFanOut, budget int) int {
	if budget <= 0 {
		return 0
	}
	saturation := float64(realized) / float64(budget)
	if saturation >= tierTwoSaturation || rootFanOut >= tierTwoFanOut {
		return 2
	}
	if saturation >= tierOneSaturation || rootFanOut >= tierOneFanOut {
		return 1
	}
	return 0
}

// tighten halves the per-node cap once per tier, scales the visibility
// threshold up and the global budget down.
func tighten(opts Options, tier int, fractionMul float64) Options {
	strict := opts
	strict.MaxChildrenPerNode = maxInt(opts.MaxChildrenPerNode>>(uint(tier)), 4)
	strict.MinVisibleFraction = opts.MinVisibleFraction * fractionMul
	strict.MaxCount = maxInt(opts.MaxCount*3/(3+tier), 16)
	return strict
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
