// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// LayoutDimensions holds calculated dimensions for the guide layout
type LayoutDimensions struct {
	Width         int
	Height        int
	SidebarWidth  int // Content width of the step list pane
	ContentWidth  int // Content width of the step pane
	BodyHeight    int // Content height of both panes
	ViewportWidth int
	ViewportRows  int
}

// Layout overhead, in rows
const (
	headerLines      = 1
	footerLines      = 2
	paneBorderLines  = 2
	stepTitleLines   = 2 // title row + blank row above the viewport
	paneBorderWidth  = 2
	panePaddingWidth = 2
	paneGap          = 1
	minSidebarWidth  = 22
	maxSidebarWidth  = 34
	minBodyHeight    = 3
)

// CalculateGuideLayout splits the terminal into a step sidebar and a
// content pane.
//
// Lipgloss sets Style.Width including padding, with the border rendered
// outside it, so each pane renders at Width + paneBorderWidth.
func CalculateGuideLayout(terminalWidth, terminalHeight int) LayoutDimensions {
	sidebar := terminalWidth / 4
	if sidebar < minSidebarWidth {
		sidebar = minSidebarWidth
	}
	if sidebar > maxSidebarWidth {
		sidebar = maxSidebarWidth
	}

	content := terminalWidth - sidebar - 2*paneBorderWidth - paneGap
	if content < 10 {
		content = 10
	}

	body := terminalHeight - headerLines - footerLines - paneBorderLines
	if body < minBodyHeight {
		body = minBodyHeight
	}

	rows := body - stepTitleLines
	if rows < 1 {
		rows = 1
	}

	return LayoutDimensions{
		Width:         terminalWidth,
		Height:        terminalHeight,
		SidebarWidth:  sidebar,
		ContentWidth:  content,
		BodyHeight:    body,
		ViewportWidth: content - panePaddingWidth,
		ViewportRows:  rows,
	}
}

// RenderCenteredModal renders a modal overlay centered in the terminal
func RenderCenteredModal(content string, width, height int, borderColor lipgloss.Color, modalWidth int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

// FillTerminal uses lipgloss.Place to fill terminal dimensions and eliminate gaps
func FillTerminal(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}

// TerminalWidth returns the stdout width, or fallback when stdout is not a terminal
func TerminalWidth(fallback int) int {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

// MarkdownRenderer renders markdown through glamour, reusing the renderer
// until the wrap width changes
type MarkdownRenderer struct {
	style    string // glamour standard style name, "auto" to detect
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for a glamour style ("auto",
// "dark", "light", "notty", ...)
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = "auto"
	}
	return &MarkdownRenderer{style: style}
}

// Render renders md wrapped to width, trimming trailing blank space
func (m *MarkdownRenderer) Render(md string, width int) (string, error) {
	if m.renderer == nil || m.width != width {
		styleOpt := glamour.WithStandardStyle(m.style)
		if m.style == "auto" {
			styleOpt = glamour.WithAutoStyle()
		}
		r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			return "", err
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, " \n"), nil
}
