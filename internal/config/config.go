package config

import "treescope/internal/domain"

type Config struct {
	Path               string              `json:"path"`
	MaxDepth           int                 `json:"maxDepth"`
	Strategy           domain.SizeStrategy `json:"strategy"`
	Theme              string              `json:"theme"`
	MaxCells           int                 `json:"maxCells"`
	MaxArcs            int                 `json:"maxArcs"`
	MaxChildrenPerNode int                 `json:"maxChildrenPerNode"`
	MinVisibleFraction float64             `json:"minVisibleFraction"`
}

type fileConfig struct {
	Path               *string  `json:"path"`
	MaxDepth           *int     `json:"maxDepth"`
	Strategy           *string  `json:"strategy"`
	Theme              *string  `json:"theme"`
	MaxCells           *int     `json:"maxCells"`
	MaxArcs            *int     `json:"maxArcs"`
	MaxChildrenPerNode *int     `json:"maxChildrenPerNode"`
	MinVisibleFraction *float64 `json:"minVisibleFraction"`
}
