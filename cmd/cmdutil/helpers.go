// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/Work-Fort/Kiln/pkg/ui"
	"golang.org/x/term"
)

// IsInteractive checks if stdin is connected to a terminal AND the user wants TUI mode
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && config.GetUseTUI()
}

// MarkdownStyle picks the glamour style for w: auto-detected on a terminal,
// plain text when output is piped or redirected
func MarkdownStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "auto"
	}
	return "notty"
}

// WriteMarkdown renders md through glamour and writes it to w. Rendering
// failures fall back to the raw markdown.
func WriteMarkdown(w io.Writer, md string) {
	r := ui.NewMarkdownRenderer(MarkdownStyle(w))
	rendered, err := r.Render(md, ui.TerminalWidth(100))
	if err != nil {
		fmt.Fprintln(w, md)
		return
	}
	fmt.Fprintln(w, rendered)
}
