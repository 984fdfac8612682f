// SPDX-License-Identifier: Apache-2.0
package config

import (
	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage kiln configuration",
		Long: `Manage kiln configuration settings.

Configuration precedence (highest to lowest):
  1. Environment variables (KILN_*)
  2. Repo config (./kiln.yaml)
  3. User config (~/.config/kiln/config.yaml)
  4. Defaults

By default, config commands operate on repo config (./kiln.yaml).
Use --global to operate on user config instead. Feature flags and
experiments are operator preferences and only live in user config.`,
		Example: `  # Point the guide at your own documentation mirror
  kiln config set links.docs https://optee.readthedocs.io/

  # Turn on experiments and the advanced sections
  kiln config set --global experiments.enabled true
  kiln config set --global feature-flags '{"advanced": true}'

  # Get a configuration value
  kiln config get use-tui

  # Remove a configuration value
  kiln config unset links.docs
  kiln config unset --global feature-flags

  # List all configuration
  kiln config list`,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newUnsetCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// addGlobalFlag adds the --global flag to a command
func addGlobalFlag(cmd *cobra.Command, global *bool) {
	cmd.Flags().BoolVar(global, "global", false, "Operate on user config instead of repo config")
}

// scopeFor maps the --global flag to a scope and the file it writes
func scopeFor(global bool) (config.ConfigScope, string, string) {
	if global {
		return config.ScopeUser, "global", "~/.config/kiln/" + config.ConfigFileName + config.DefaultConfigExt
	}
	return config.ScopeRepo, "repo", config.LocalConfigFile + config.DefaultConfigExt
}
