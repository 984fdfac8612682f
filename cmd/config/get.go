// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value",
		Long: `Get a configuration value and show its source.

The source indicates where the value comes from in precedence order:
  - ENV: Environment variable (KILN_*)
  - Repo: Repo config file (./kiln.yaml)
  - User: User config file (~/.config/kiln/config.yaml)
  - Default: Built-in default value`,
		Args: cobra.ExactArgs(1),
		Example: `  kiln config get use-tui
  kiln config get links.hardware

  # Output shows value and source:
  # use-tui = true (from ENV: KILN_USE_TUI)
  # log-level = debug (from ./kiln.yaml)
  # experiments.enabled = true (from ~/.config/kiln/config.yaml)
  # links.docs =  (default)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cv, err := config.GetConfigValue(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v (%s)\n", cv.Key, cv.Value, cv.Source)
			return nil
		},
	}
}
