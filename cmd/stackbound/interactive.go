package main

import (
	"fmt"
	"sort"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/haldorsen/stackbound/internal/analyzer"
)

// runInteractive browses the call graph in a scrollable terminal table,
// the same termui-based layout this codebase's other debugging views
// use: a handful of widgets laid out once, redrawn on key events instead
// of on a timer.
func runInteractive(result *analyzer.Result) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal UI: %w", err)
	}
	defer ui.Close()

	funcs := result.Functions()
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].TotalStack > funcs[j].TotalStack })

	table := widgets.NewTable()
	table.Title = "call graph"
	table.Rows = append([][]string{{"FUNCTION", "OWN", "TOTAL", "FLAGS"}}, tableRows(funcs)...)
	table.TextStyle = ui.NewStyle(ui.ColorWhite)
	table.RowSeparator = false

	detail := widgets.NewParagraph()
	detail.Title = "diagnostics"
	detail.Text = diagnosticsText(result)

	width, height := ui.TerminalDimensions()
	table.SetRect(0, 0, width, height-8)
	detail.SetRect(0, height-8, width, height)

	selected := 0
	render := func() {
		table.RowStyles[selected+1] = ui.NewStyle(ui.ColorBlack, ui.ColorCyan)
		ui.Render(table, detail)
	}
	render()

	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "<C-c>":
			return nil
		case "<Down>", "j":
			if selected < len(funcs)-1 {
				delete(table.RowStyles, selected+1)
				selected++
			}
		case "<Up>", "k":
			if selected > 0 {
				delete(table.RowStyles, selected+1)
				selected--
			}
		}
		render()
	}

	return nil
}

func tableRows(funcs []analyzer.FunctionResult) [][]string {
	rows := make([][]string, len(funcs))
	for i, f := range funcs {
		rows[i] = []string{f.Name, fmt.Sprintf("%d", f.OwnStack), fmt.Sprintf("%d", f.TotalStack), functionFlags(f)}
	}
	return rows
}

func diagnosticsText(result *analyzer.Result) string {
	if len(result.Diagnostics) == 0 {
		return "no diagnostics"
	}
	var sb strings.Builder
	for _, d := range result.Diagnostics {
		sb.WriteString(d.String())
		sb.WriteRune('\n')
	}
	return sb.String()
}
