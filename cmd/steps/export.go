// SPDX-License-Identifier: Apache-2.0
package steps

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Work-Fort/Kiln/cmd/cmdutil"
	"github.com/Work-Fort/Kiln/pkg/guide"
	"github.com/Work-Fort/Kiln/pkg/ui"
	"github.com/Work-Fort/Kiln/pkg/wizard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportDocument is the yaml/json export shape
type exportDocument struct {
	Title   string        `json:"title" yaml:"title"`
	Release string        `json:"release" yaml:"release"`
	Steps   []wizard.Step `json:"steps" yaml:"steps"`
}

// encodeSteps serializes steps in the named format
func encodeSteps(steps []wizard.Step, format string) ([]byte, error) {
	doc := exportDocument{Title: guide.Title, Release: guide.Release, Steps: steps}

	switch format {
	case "markdown", "md":
		return []byte(guide.DocumentMarkdown(steps)), nil
	case "yaml", "yml":
		return yaml.Marshal(doc)
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be 'markdown', 'yaml' or 'json')", format)
	}
}

func newExportCmd(load func() []wizard.Step) *cobra.Command {
	var (
		format     string
		outputFile string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole guide",
		Long: `Export every step as markdown (for reading offline) or as yaml/json
(for feeding other tools). Markdown is written unrendered.`,
		Args: cobra.NoArgs,
		Example: `  kiln steps export > guide.md
  kiln steps export --format yaml -o guide.yaml
  kiln steps export --format json --advanced`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := encodeSteps(load(), format)
			if err != nil {
				return err
			}

			if outputFile == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if err := checkOverwrite(outputFile, force); err != nil {
				return err
			}

			if err := os.WriteFile(outputFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write export to file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Guide written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format: markdown, yaml or json")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the output file without asking")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"markdown", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// checkOverwrite refuses to replace an existing file unless forced or
// confirmed interactively
func checkOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if !cmdutil.IsInteractive() {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	ok, err := ui.ConfirmOverwrite(path)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("export cancelled: %s left unchanged", path)
	}
	return nil
}
