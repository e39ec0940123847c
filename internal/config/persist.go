package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"treescope/internal/domain"
)

const (
	configDirName  = "treescope"
	configFileName = "config.json"
)

func DefaultConfig() Config {
	return Config{
		Path:               ".",
		MaxDepth:           -1,
		Strategy:           domain.SizeLogical,
		Theme:              "dark",
		MaxCells:           600,
		MaxArcs:            900,
		MaxChildrenPerNode: 24,
		MinVisibleFraction: 0.002,
	}
}

func ConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

func LoadConfig() (Config, error) {
	config := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config, err
	}
	return mergeConfig(config, stored), nil
}

func SaveConfig(config Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.Path != nil {
		merged.Path = *stored.Path
	}
	if stored.MaxDepth != nil {
		merged.MaxDepth = *stored.MaxDepth
	}
	if stored.Strategy != nil {
		merged.Strategy = domain.ParseSizeStrategy(*stored.Strategy, base.Strategy)
	}
	if stored.Theme != nil {
		merged.Theme = *stored.Theme
	}
	if stored.MaxCells != nil && *stored.MaxCells > 0 {
		merged.MaxCells = *stored.MaxCells
	}
	if stored.MaxArcs != nil && *stored.MaxArcs > 0 {
		merged.MaxArcs = *stored.MaxArcs
	}
	if stored.MaxChildrenPerNode != nil && *stored.MaxChildrenPerNode > 0 {
		merged.MaxChildrenPerNode = *stored.MaxChildrenPerNode
	}
	if stored.MinVisibleFraction != nil && *stored.MinVisibleFraction >= 0 {
		merged.MinVisibleFraction = *stored.MinVisibleFraction
	}
	return merged
}
