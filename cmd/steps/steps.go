// SPDX-License-Identifier: Apache-2.0
package steps

import (
	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/Work-Fort/Kiln/pkg/guide"
	"github.com/Work-Fort/Kiln/pkg/wizard"
	"github.com/spf13/cobra"
)

// NewStepsCmd creates the steps command and its subcommands
func NewStepsCmd() *cobra.Command {
	var advanced bool

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Inspect guide steps without the wizard",
		Long: `List, show and export the guide's steps.

Steps are built from the same configuration as 'kiln guide', so feature
flags and resource links apply here too.`,
		Example: `  # List step IDs
  kiln steps list

  # Show one step, or one section of it
  kiln steps show build
  kiln steps show build --section build-the-image

  # Export the guide for offline reading
  kiln steps export --format markdown -o optee-rpi3.md`,
	}

	cmd.PersistentFlags().BoolVar(&advanced, "advanced", false, "Enable experiments and the advanced sections for this run")

	load := func() []wizard.Step {
		settings := config.LoadGuideSettings()
		if advanced {
			settings.ExperimentsEnabled = true
			settings = settings.WithFlag(config.FlagAdvanced, true)
		}
		return guide.BuildSteps(settings)
	}

	cmd.AddCommand(newListCmd(load))
	cmd.AddCommand(newShowCmd(load))
	cmd.AddCommand(newExportCmd(load))

	return cmd
}

// completeStepIDs offers step IDs for the first positional argument
func completeStepIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, s := range guide.BuildSteps(config.GuideSettings{}) {
		out = append(out, s.ID+"\t"+s.Title)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
