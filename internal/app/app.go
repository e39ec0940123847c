package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"treescope/internal/config"
	"treescope/internal/history"
	"treescope/internal/layout"
	"treescope/internal/services"
	"treescope/internal/ui"
)

func Run() error {
	base := config.DefaultConfig()
	loaded, loadErr := config.LoadConfig()
	if loadErr == nil {
		base = loaded
	}
	cfg := config.ParseFlags(base)

	scanner := services.NewFSScanner()
	store, err := history.NewStore()
	if err != nil {
		store = nil
	}

	model := ui.NewModel(cfg, scanner, layout.NewCache(), store)
	if loadErr != nil {
		model = model.WithStatus("Config warning: using defaults")
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if provider, ok := finalModel.(ui.ConfigProvider); ok {
		if err := config.SaveConfig(provider.ConfigSnapshot()); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	return nil
}
