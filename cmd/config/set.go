// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set configuration value",
		Long: `Set a configuration key to a value.

Keys use dot notation for nested values (e.g., links.docs).

Boolean values support natural language:
  - true:  true, yes, on, enable, enabled
  - false: false, no, off, disable, disabled

Link values must be absolute URLs with a host. Feature flags take a
JSON object.`,
		Args: cobra.ExactArgs(2),
		Example: `  kiln config set use-tui false
  kiln config set log-level debug
  kiln config set links.support https://github.com/OP-TEE/optee_os/issues

  # Operator preferences go in user config
  kiln config set --global experiments.enabled yes
  kiln config set --global feature-flags '{"advanced": true}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			scope, scopeName, configFile := scopeFor(global)

			if err := config.SetConfigValue(key, value, scope); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (%s: %s)\n", key, value, scopeName, configFile)
			return nil
		},
	}

	addGlobalFlag(cmd, &global)
	return cmd
}
