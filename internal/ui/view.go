package ui

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"treescope/internal/layout"
	"treescope/internal/state"
)

type uiStyles struct {
	headerStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	warnStyle   lipgloss.Style
	branches    []lipgloss.Style
	aggregate   lipgloss.Style
}

var branchPalette = []string{"25", "64", "130", "90", "31", "136", "97", "66", "125", "28"}

func stylesFor(model Model) uiStyles {
	header := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true)
	if strings.ToLower(model.session.Cfg.Theme) == "light" {
		header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235"))
		muted = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
		warn = lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true)
	}
	branches := make([]lipgloss.Style, len(branchPalette))
	for i, color := range branchPalette {
		branches[i] = lipgloss.NewStyle().Background(lipgloss.Color(color)).Foreground(lipgloss.Color("255"))
	}
	return uiStyles{
		headerStyle: header,
		mutedStyle:  muted,
		warnStyle:   warn,
		branches:    branches,
		aggregate:   lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250")),
	}
}

func (model Model) View() string {
	styles := stylesFor(model)
	if model.showHelp {
		return renderHelpView(styles)
	}
	header := renderHeader(model, styles)
	body := renderBody(model, styles)
	footer := renderFooter(model, styles)
	return strings.Join([]string{header, body, footer}, "\n")
}

func renderHeader(model Model, styles uiStyles) string {
	node := model.session.FocusedNode()
	if node == nil {
		return styles.headerStyle.Render("TreeScope")
	}
	title := fmt.Sprintf("TreeScope  %s  %s", node.Path(), humanize.Bytes(uint64(node.SizeBytes())))
	line := styles.headerStyle.Render(title)
	if model.session.Diagnostics.IsPartialResult() {
		sample := ""
		if paths := model.session.Diagnostics.SampledSkippedPaths; len(paths) > 0 {
			sample = fmt.Sprintf(" (first: %s)", paths[0])
		}
		warn := fmt.Sprintf("partial: %d skipped%s", model.session.Diagnostics.SkippedItemCount, sample)
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, "  ", styles.warnStyle.Render(warn))
	}
	return line
}

func renderBody(model Model, styles uiStyles) string {
	width, height := bodyDimensions(model)
	if model.scanning {
		return renderScanning(model, styles, height)
	}
	node := model.session.FocusedNode()
	if node == nil {
		return styles.mutedStyle.Render("No scan result.")
	}
	if model.session.Mode == state.ViewRadial {
		arcs := model.layouts.Arcs(node, model.session.RadialOptions())
		return renderRings(arcs, width, height, styles)
	}
	cells := model.layouts.Cells(node, model.session.TreemapOptions())
	return renderGrid(cells, width, height, styles)
}

func renderScanning(model Model, styles uiStyles, height int) string {
	lines := []string{
		fmt.Sprintf("%s %s", model.spin.View(), model.status),
		styles.mutedStyle.Render(fmt.Sprintf("%s items, %s",
			humanize.Comma(model.progress.ItemsScanned),
			humanize.Bytes(uint64(model.progress.BytesScanned)))),
		styles.mutedStyle.Render(truncateLabel(model.progress.CurrentDir, model.width)),
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderGrid rasterizes treemap cells onto a character grid. Cells are
// emitted parents-first, so later (deeper) cells overwrite their parent's
// region and nesting shows through the inset borders.
func renderGrid(cells []layout.Cell, width, height int, styles uiStyles) string {
	if width < 2 || height < 2 {
		return ""
	}
	owner := make([][]int, height)
	for y := range owner {
		owner[y] = make([]int, width)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}
	for i, cell := range cells {
		if cell.Depth > 2 {
			continue
		}
		x0 := int(math.Round(cell.Rect.X * float64(width)))
		y0 := int(math.Round(cell.Rect.Y * float64(height)))
		x1 := int(math.Round((cell.Rect.X + cell.Rect.W) * float64(width)))
		y1 := int(math.Round((cell.Rect.Y + cell.Rect.H) * float64(height)))
		for y := clampInt(y0, 0, height); y < clampInt(y1, 0, height); y++ {
			for x := clampInt(x0, 0, width); x < clampInt(x1, 0, width); x++ {
				owner[y][x] = i
			}
		}
	}

	labeled := make(map[int]bool, len(cells))
	var b strings.Builder
	for y := 0; y < height; y++ {
		x := 0
		for x < width {
			idx := owner[y][x]
			run := x
			for run < width && owner[y][run] == idx {
				run++
			}
			segment := strings.Repeat(" ", run-x)
			if idx >= 0 {
				cell := cells[idx]
				if !labeled[idx] {
					labeled[idx] = true
					segment = padLabel(cellCaption(cell), run-x)
				}
				b.WriteString(cellStyle(cell, styles).Render(segment))
			} else {
				b.WriteString(segment)
			}
			x = run
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderRings draws each radial depth as a horizontal band: the full ring
// span maps onto the terminal width.
func renderRings(arcs []layout.Arc, width, height int, styles uiStyles) string {
	if width < 2 {
		return ""
	}
	maxDepth := 0
	for _, arc := range arcs {
		if arc.Depth > maxDepth {
			maxDepth = arc.Depth
		}
	}
	if maxDepth+1 > height {
		maxDepth = height - 1
	}

	var lines []string
	for depth := 0; depth <= maxDepth; depth++ {
		var b strings.Builder
		x := 0
		for _, arc := range arcs {
			if arc.Depth != depth {
				continue
			}
			start := angleToColumn(arc.StartAngle, width)
			end := angleToColumn(arc.EndAngle, width)
			if end <= start {
				continue
			}
			if start > x {
				b.WriteString(strings.Repeat(" ", start-x))
			}
			b.WriteString(arcStyle(arc, styles).Render(padLabel(arcCaption(arc), end-start)))
			x = end
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func renderFooter(model Model, styles uiStyles) string {
	mode := model.session.Mode.String()
	strategy := string(model.session.Cfg.Strategy)
	keys := "1-9 focus  backspace parent  tab view  s size  x hide  r rescan  esc cancel  ? help  q quit"
	status := model.status
	left := fmt.Sprintf("View: %s  Size: %s", mode, strategy)
	return strings.Join([]string{
		styles.mutedStyle.Render(truncateLabel(status, model.width)),
		styles.mutedStyle.Render(fmt.Sprintf("%s  %s", left, keys)),
	}, "\n")
}

func renderHelpView(styles uiStyles) string {
	rows := []string{
		styles.headerStyle.Render("TreeScope keys"),
		"",
		"1-9        focus the nth largest child",
		"backspace  focus parent directory",
		"tab / v    switch treemap and radial views",
		"s          toggle logical/allocated sizes (rescans)",
		"x          hide focused subtree from the view",
		"r          rescan",
		"esc        cancel a running scan",
		"q          quit",
	}
	return strings.Join(rows, "\n")
}

func bodyDimensions(model Model) (int, int) {
	width := model.width
	if width <= 0 {
		width = 80
	}
	height := model.height - 4
	if height < 4 {
		height = 4
	}
	return width, height
}

func cellStyle(cell layout.Cell, styles uiStyles) lipgloss.Style {
	if cell.IsAggregate {
		return styles.aggregate
	}
	return styles.branches[pathHue(cell.Path)%len(styles.branches)]
}

func arcStyle(arc layout.Arc, styles uiStyles) lipgloss.Style {
	if arc.IsAggregate {
		return styles.aggregate
	}
	return styles.branches[arc.BranchIndex%len(styles.branches)]
}

func cellCaption(cell layout.Cell) string {
	return fmt.Sprintf("%s %s", cell.Label, humanize.Bytes(uint64(cell.SizeBytes)))
}

func arcCaption(arc layout.Arc) string {
	return arc.Label
}

func angleToColumn(angle float64, width int) int {
	fraction := (angle + math.Pi/2) / (2 * math.Pi)
	return clampInt(int(math.Round(fraction*float64(width))), 0, width)
}

func pathHue(path string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return int(h.Sum32())
}

func padLabel(label string, width int) string {
	if width <= 0 {
		return ""
	}
	label = truncateLabel(label, width)
	return label + strings.Repeat(" ", width-len([]rune(label)))
}

func truncateLabel(label string, width int) string {
	runes := []rune(label)
	if width <= 0 || len(runes) <= width {
		return label
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
