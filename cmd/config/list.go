// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all configuration values",
		Long: `List all configuration values with their sources.

Output format: key = value (source)`,
		Example: `  kiln config list

  # Example output:
  # experiments.enabled = true (from ~/.config/kiln/config.yaml)
  # feature-flags = {"advanced": true} (from ~/.config/kiln/config.yaml)
  # links.docs = https://optee.readthedocs.io/ (from ./kiln.yaml)
  # log-level = info (default)
  # use-tui = false (from ENV: KILN_USE_TUI)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := config.ListConfigValues()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(values) == 0 {
				fmt.Fprintln(out, "No configuration set")
				return nil
			}

			for _, cv := range values {
				fmt.Fprintf(out, "%s = %v (%s)\n", cv.Key, cv.Value, cv.Source)
			}

			fmt.Fprintln(out, "\n"+config.CurrentTheme.SubtleStyle().Render("Configuration precedence: ENV > repo config > user config > defaults"))
			return nil
		},
	}
}
