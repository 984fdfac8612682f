// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the application color scheme
type Theme struct {
	Primary   string // Ember orange
	Secondary string // Warm amber
	Muted     string // Ash gray
	Success   string
	Warning   string
	Error     string
}

// CurrentTheme is the active theme used throughout the application
var CurrentTheme = Theme{
	Primary:   "#FF8C42",
	Secondary: "#FFC15E",
	Muted:     "#7D7A8C",
	Success:   "#8BD17C",
	Warning:   "#FFD166",
	Error:     "#EF476F",
}

func (t Theme) GetPrimaryColor() lipgloss.Color {
	return lipgloss.Color(t.Primary)
}

func (t Theme) GetSecondaryColor() lipgloss.Color {
	return lipgloss.Color(t.Secondary)
}

func (t Theme) GetMutedColor() lipgloss.Color {
	return lipgloss.Color(t.Muted)
}

func (t Theme) GetSuccessColor() lipgloss.Color {
	return lipgloss.Color(t.Success)
}

func (t Theme) GetWarningColor() lipgloss.Color {
	return lipgloss.Color(t.Warning)
}

func (t Theme) GetErrorColor() lipgloss.Color {
	return lipgloss.Color(t.Error)
}

func (t Theme) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetPrimaryColor()).Bold(true)
}

func (t Theme) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetSuccessColor()).Bold(true)
}

func (t Theme) WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetWarningColor())
}

func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetErrorColor())
}

func (t Theme) SubtleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetMutedColor())
}

// BadgeStyle renders short step labels such as "~20 min"
func (t Theme) BadgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1B1B1E")).
		Background(t.GetSecondaryColor()).
		Padding(0, 1)
}

func (t Theme) SuccessMessage(text string) string {
	return t.SuccessStyle().Render("✓ " + text)
}

func (t Theme) WarningMessage(text string) string {
	return t.WarningStyle().Render("⚠ " + text)
}

func (t Theme) ErrorMessage(text string) string {
	return t.ErrorStyle().Render("✗ " + text)
}

// ActiveIndicator returns a solid dot for the selected step
func (t Theme) ActiveIndicator() string {
	return lipgloss.NewStyle().Foreground(t.GetPrimaryColor()).Render("●")
}

// PendingIndicator returns an empty circle for steps not yet done
func (t Theme) PendingIndicator() string {
	return t.SubtleStyle().Render("○")
}

// CompleteIndicator returns a checkmark for completed steps
func (t Theme) CompleteIndicator() string {
	return t.SuccessStyle().Render("✓")
}

// RenderHeader renders the banner shown above the wizard
// Format: "  KILN  ▸  SECTION  ▸  [CONTEXT]  "
func (t Theme) RenderHeader(width int, section, context string) string {
	headerText := fmt.Sprintf("  KILN  ▸  %s  ▸  [%s]  ", section, context)
	return lipgloss.NewStyle().
		Foreground(t.GetSecondaryColor()).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render(headerText)
}

// RenderFooter renders a footer with box characters
// Format: "╰─ [content] ─╯"
func (t Theme) RenderFooter(width int, content string) string {
	return lipgloss.NewStyle().
		Foreground(t.GetMutedColor()).
		Width(width).
		Align(lipgloss.Center).
		Render("╰─ " + content + " ─╯")
}
