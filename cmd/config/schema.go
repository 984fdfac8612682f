// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/spf13/cobra"
)

// parseSchemaScope maps the --scope value to a scope, nil meaning every key
func parseSchemaScope(raw string) (*config.ConfigScope, error) {
	var scope config.ConfigScope
	switch raw {
	case "":
		return nil, nil
	case "user", "global":
		scope = config.ScopeUser
	case "repo":
		scope = config.ScopeRepo
	default:
		return nil, fmt.Errorf("invalid scope: %s (must be 'user' or 'repo')", raw)
	}
	return &scope, nil
}

func newSchemaCmd() *cobra.Command {
	var outputFile string
	var scopeFlag string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for kiln.yaml",
		Long: `Print a JSON Schema (Draft 2020-12) describing the keys kiln reads.

The links.docs, links.source, links.hardware and links.support keys are
typed as strings with format "uri", so editors flag relative paths early.
feature-flags and experiments.enabled are operator preferences: they appear
in the user scope and are left out of --scope repo, matching what
"kiln config set" accepts for ./kiln.yaml.`,
		Example: `  # Schema for a project's ./kiln.yaml
  kiln config schema --scope repo -o kiln.schema.json

  # Then reference it from the top of kiln.yaml
  # yaml-language-server: $schema=./kiln.schema.json

  # Schema for ~/.config/kiln/config.yaml, feature flags included
  kiln config schema --scope user`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseSchemaScope(scopeFlag)
			if err != nil {
				return err
			}

			schema, err := config.GenerateJSONSchemaForScope(scope)
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}

			if outputFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(schema))
				return nil
			}
			if err := os.WriteFile(outputFile, append(schema, '\n'), 0644); err != nil {
				return fmt.Errorf("failed to write schema to %s: %w", outputFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the schema to a file instead of stdout")
	cmd.Flags().StringVar(&scopeFlag, "scope", "", "Limit to keys valid in one scope: user or repo")

	return cmd
}
