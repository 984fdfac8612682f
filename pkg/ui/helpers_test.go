// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCalculateGuideLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantSidebar   int
		wantBody      int
	}{
		{"wide", 160, 50, 34, 45},
		{"standard", 120, 40, 30, 35},
		{"narrow", 60, 20, 22, 15},
		{"tiny", 20, 4, 22, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := CalculateGuideLayout(tt.width, tt.height)
			if l.SidebarWidth != tt.wantSidebar {
				t.Errorf("SidebarWidth = %d, want %d", l.SidebarWidth, tt.wantSidebar)
			}
			if l.BodyHeight != tt.wantBody {
				t.Errorf("BodyHeight = %d, want %d", l.BodyHeight, tt.wantBody)
			}
			if l.ViewportRows < 1 {
				t.Errorf("ViewportRows = %d, want at least 1", l.ViewportRows)
			}
		})
	}
}

func TestCalculateGuideLayout_FitsWidth(t *testing.T) {
	l := CalculateGuideLayout(120, 40)
	total := l.SidebarWidth + paneBorderWidth + paneGap + l.ContentWidth + paneBorderWidth
	if total != 120 {
		t.Errorf("panes span %d columns, want 120", total)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer("notty")

	out, err := r.Render("## Boot chain\n\nTF-A loads OP-TEE.", 60)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "Boot chain") || !strings.Contains(out, "TF-A loads OP-TEE.") {
		t.Errorf("unexpected render: %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newlines to be trimmed")
	}

	first := r.renderer
	if _, err := r.Render("again", 60); err != nil {
		t.Fatal(err)
	}
	if r.renderer != first {
		t.Error("expected renderer reuse at the same width")
	}
	if _, err := r.Render("again", 80); err != nil {
		t.Fatal(err)
	}
	if r.renderer == first {
		t.Error("expected a new renderer after the width changed")
	}
}

func TestFillTerminal(t *testing.T) {
	out := FillTerminal("hi", 10, 3)
	if lipgloss.Height(out) != 3 || lipgloss.Width(out) != 10 {
		t.Errorf("expected 10x3 block, got %dx%d", lipgloss.Width(out), lipgloss.Height(out))
	}
}
