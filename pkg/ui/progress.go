// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/Work-Fort/Kiln/pkg/config"
)

// ProgressBar renders completion percentage as a gradient bar
type ProgressBar struct {
	bar progress.Model
}

// NewProgressBar creates a progress bar in the theme colors
func NewProgressBar() ProgressBar {
	theme := config.CurrentTheme
	return ProgressBar{
		bar: progress.New(
			progress.WithGradient(theme.Secondary, theme.Primary),
			progress.WithoutPercentage(),
		),
	}
}

// Render draws the bar for percent (0-100) followed by a label, fitting width
func (p ProgressBar) Render(percent, done, total, width int) string {
	label := fmt.Sprintf(" %3d%% (%d/%d done)", percent, done, total)
	barWidth := width - len(label)
	if barWidth < 4 {
		barWidth = 4
	}
	p.bar.Width = barWidth
	return p.bar.ViewAs(float64(percent)/100) + label
}
