package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"treescope/internal/config"
	"treescope/internal/domain"
	"treescope/internal/history"
	"treescope/internal/layout"
	"treescope/internal/services"
	"treescope/internal/state"
)

type Model struct {
	session    *state.Session
	scanner    services.Scanner
	layouts    *layout.Cache
	store      *history.Store
	keys       KeyMap
	spin       spinner.Model
	progressCh chan services.ScanProgress
	initCtx    context.Context
	cancel     context.CancelFunc
	scanning   bool
	showHelp   bool
	status     string
	progress   services.ScanProgress
	width      int
	height     int
}

type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func NewModel(cfg config.Config, scanner services.Scanner, layouts *layout.Cache, store *history.Store) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		session:    state.NewSession(cfg),
		scanner:    scanner,
		layouts:    layouts,
		store:      store,
		keys:       DefaultKeyMap(),
		spin:       spin,
		progressCh: make(chan services.ScanProgress, 64),
		initCtx:    ctx,
		cancel:     cancel,
		scanning:   true,
		status:     fmt.Sprintf("Scanning %s", cfg.Path),
	}
}

func (model Model) Init() tea.Cmd {
	return tea.Batch(model.spin.Tick, model.scanCmd(model.initCtx), model.waitProgress())
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		return model, nil

	case spinner.TickMsg:
		if !model.scanning {
			return model, nil
		}
		var cmd tea.Cmd
		model.spin, cmd = model.spin.Update(msg)
		return model, cmd

	case scanProgressMsg:
		model.progress = msg.progress
		if model.scanning {
			return model, model.waitProgress()
		}
		return model, nil

	case scanResultMsg:
		model.scanning = false
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				model.status = "Scan cancelled"
			} else {
				model.status = fmt.Sprintf("Scan error: %v", msg.err)
			}
			return model, nil
		}
		model.session.ApplyResult(msg.result)
		model.status = completionStatus(msg.result)
		model.appendHistory(msg.result)
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(msg)
	}
	return model, nil
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit):
		if model.cancel != nil {
			model.cancel()
		}
		return model, tea.Quit

	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil

	case key.Matches(msg, model.keys.Cancel):
		if model.scanning && model.cancel != nil {
			model.cancel()
		}
		return model, nil

	case key.Matches(msg, model.keys.Rescan):
		if model.scanning {
			return model, nil
		}
		return model.startScan()

	case key.Matches(msg, model.keys.View):
		model.session.ToggleMode()
		return model, nil

	case key.Matches(msg, model.keys.Strategy):
		if model.scanning {
			return model, nil
		}
		if model.session.Cfg.Strategy == domain.SizeAllocated {
			model.session.Cfg.Strategy = domain.SizeLogical
		} else {
			model.session.Cfg.Strategy = domain.SizeAllocated
		}
		return model.startScan()

	case key.Matches(msg, model.keys.Back):
		model.session.FocusParent()
		return model, nil

	case key.Matches(msg, model.keys.Hide):
		if model.session.HideFocused() {
			model.status = "Hidden from view (rescan to restore)"
		}
		return model, nil
	}

	// Digits focus the nth largest child of the focused directory.
	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= 9 {
		node := model.session.FocusedNode()
		if node != nil && n <= len(node.ChildrenBySize()) {
			model.session.FocusInto(node.ChildrenBySize()[n-1].Path())
		}
		return model, nil
	}
	return model, nil
}

func (model Model) startScan() (Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	model.cancel = cancel
	model.scanning = true
	model.progress = services.ScanProgress{}
	model.status = fmt.Sprintf("Scanning %s", model.session.Cfg.Path)
	return model, tea.Batch(model.spin.Tick, model.scanCmd(ctx), model.waitProgress())
}

func (model Model) scanCmd(ctx context.Context) tea.Cmd {
	scanner := model.scanner
	cfg := model.session.Cfg
	progressCh := model.progressCh
	return func() tea.Msg {
		result, err := scanner.Scan(ctx, services.ScanRequest{
			RootPath: cfg.Path,
			MaxDepth: cfg.MaxDepth,
			Strategy: cfg.Strategy,
			OnProgress: func(progress services.ScanProgress) {
				select {
				case progressCh <- progress:
				default:
				}
			},
		})
		return scanResultMsg{result: result, err: err}
	}
}

func (model Model) waitProgress() tea.Cmd {
	progressCh := model.progressCh
	return func() tea.Msg {
		return scanProgressMsg{progress: <-progressCh}
	}
}

func (model Model) appendHistory(result services.ScanResult) {
	if model.store == nil || result.Root == nil {
		return
	}
	_ = model.store.Append(history.Summary{
		RootPath:     result.Root.Path(),
		Strategy:     model.session.Cfg.Strategy,
		TotalBytes:   result.Root.SizeBytes(),
		ItemCount:    model.progress.ItemsScanned,
		SkippedCount: result.Diagnostics.SkippedItemCount,
		DurationMS:   result.Duration.Milliseconds(),
		CompletedAt:  time.Now(),
	})
}

func (model Model) ConfigSnapshot() config.Config {
	return model.session.Cfg
}

func (model Model) WithStatus(status string) Model {
	model.status = status
	return model
}

func completionStatus(result services.ScanResult) string {
	total := humanize.Bytes(uint64(result.Root.SizeBytes()))
	if result.Diagnostics.IsPartialResult() {
		return fmt.Sprintf("Partial result: %s in %s, %d items skipped",
			total, result.Duration.Round(time.Millisecond), result.Diagnostics.SkippedItemCount)
	}
	return fmt.Sprintf("Scanned %s in %s", total, result.Duration.Round(time.Millisecond))
}
