// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/spf13/cobra"
)

func newUnsetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove configuration value",
		Long: `Remove a configuration key from a config file.

**Note:**
  - Removing a parent key removes all nested values (e.g., unsetting 'links' removes every link)
  - Environment variables and defaults still apply after removal`,
		Args: cobra.ExactArgs(1),
		Example: `  kiln config unset use-tui
  kiln config unset links.docs
  kiln config unset --global feature-flags

  # Remove every link override
  kiln config unset links`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			scope, scopeName, configFile := scopeFor(global)

			if err := config.UnsetConfigValue(key, scope); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s config (%s)\n", key, scopeName, configFile)
			return nil
		},
	}

	addGlobalFlag(cmd, &global)
	return cmd
}
