// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/Work-Fort/Kiln/pkg/config"
)

// StepState represents how a step is shown in the sidebar
type StepState int

const (
	StepPending StepState = iota
	StepSelected
	StepComplete
)

// StepItem is one sidebar row
type StepItem struct {
	Title    string
	Badge    string
	Selected bool
	Complete bool
}

// State returns the indicator state for the row. A selected step keeps its
// checkmark once complete.
func (s StepItem) State() StepState {
	switch {
	case s.Complete:
		return StepComplete
	case s.Selected:
		return StepSelected
	default:
		return StepPending
	}
}

// StepListConfig holds configuration for sidebar rendering
type StepListConfig struct {
	Width  int // Content width inside the pane border
	Height int // Content height inside the pane border
}

// RenderStepList renders the numbered step sidebar inside a rounded pane
func RenderStepList(items []StepItem, cfg StepListConfig) string {
	theme := config.CurrentTheme

	rowWidth := cfg.Width - 2 // horizontal padding
	if rowWidth < 4 {
		rowWidth = 4
	}

	rows := make([]string, 0, len(items))
	for i, item := range items {
		var indicator string
		switch item.State() {
		case StepComplete:
			indicator = theme.CompleteIndicator()
		case StepSelected:
			indicator = theme.ActiveIndicator()
		default:
			indicator = theme.PendingIndicator()
		}

		label := truncate(fmt.Sprintf("%d. %s", i+1, item.Title), rowWidth-2)

		style := theme.SubtleStyle()
		if item.Selected {
			style = theme.TitleStyle()
		} else if item.Complete {
			style = lipgloss.NewStyle()
		}

		rows = append(rows, indicator+" "+style.Render(label))
	}

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.GetMutedColor()).
		Width(cfg.Width).
		Height(cfg.Height).
		Padding(0, 1)

	return pane.Render(strings.Join(rows, "\n"))
}

// truncate shortens s to at most width cells, adding an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
