package config

import (
	"testing"

	"treescope/internal/domain"
)

func TestMergeConfigOverlaysOnlySetFields(t *testing.T) {
	base := DefaultConfig()
	path := "/scans"
	strategy := "allocated"
	badStrategy := "apparent-ish"
	maxCells := 0

	merged := mergeConfig(base, fileConfig{Path: &path, Strategy: &strategy, MaxCells: &maxCells})
	if merged.Path != "/scans" {
		t.Errorf("expected overlaid path, got %s", merged.Path)
	}
	if merged.Strategy != domain.SizeAllocated {
		t.Errorf("expected allocated strategy, got %s", merged.Strategy)
	}
	if merged.MaxCells != base.MaxCells {
		t.Error("non-positive budgets must not overlay")
	}
	if merged.Theme != base.Theme {
		t.Error("unset fields keep defaults")
	}

	merged = mergeConfig(base, fileConfig{Strategy: &badStrategy})
	if merged.Strategy != base.Strategy {
		t.Errorf("unknown strategy must fall back, got %s", merged.Strategy)
	}
}

func TestParseSizeStrategyFallback(t *testing.T) {
	if got := domain.ParseSizeStrategy("allocated", domain.SizeLogical); got != domain.SizeAllocated {
		t.Errorf("expected allocated, got %s", got)
	}
	if got := domain.ParseSizeStrategy("nonsense", domain.SizeLogical); got != domain.SizeLogical {
		t.Errorf("expected fallback, got %s", got)
	}
}
