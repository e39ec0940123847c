package config

import (
	"flag"

	"treescope/internal/domain"
)

func ParseFlags(base Config) Config {
	path := flag.String("path", base.Path, "Root path to scan")
	maxDepth := flag.Int("max-depth", base.MaxDepth, "Traversal depth cap (negative = unlimited)")
	strategy := flag.String("size", string(base.Strategy), "Size strategy: logical or allocated")
	theme := flag.String("theme", base.Theme, "Color theme: dark or light")
	flag.Parse()

	base.Path = *path
	base.MaxDepth = *maxDepth
	base.Strategy = domain.ParseSizeStrategy(*strategy, base.Strategy)
	base.Theme = *theme
	return base
}
