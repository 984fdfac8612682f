// SPDX-License-Identifier: Apache-2.0
package guide

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Kiln/cmd/cmdutil"
	"github.com/Work-Fort/Kiln/pkg/config"
	guidepkg "github.com/Work-Fort/Kiln/pkg/guide"
	"github.com/Work-Fort/Kiln/pkg/wizard"
	"github.com/spf13/cobra"
)

// NewGuideCmd creates the guide command
func NewGuideCmd() *cobra.Command {
	var (
		startStep string
		advanced  bool
	)

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Walk through building, flashing and verifying OP-TEE on a Raspberry Pi 3",
		Long: `Walk through building an OP-TEE image for the Raspberry Pi 3, flashing it
to an SD card and verifying the secure world.

kiln never runs any of these steps for you. Each page lists the commands to
run on your own machine and what to expect. Mark pages as done to track your
progress for this session.

Interactive mode (default when stdin is a terminal and use-tui is true):
  Launches a step-by-step wizard with a step list, progress bar and
  step picker.

Non-interactive mode:
  Prints the whole guide (or the --step page) as formatted text.`,
		Example: `  # Start the wizard
  kiln guide

  # Jump straight to flashing
  kiln guide --step flash

  # Include the advanced sections for this run
  kiln guide --advanced

  # Print the guide without the wizard
  kiln guide --use-tui=false | less -R`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.LoadGuideSettings()
			if advanced {
				settings.ExperimentsEnabled = true
				settings = settings.WithFlag(config.FlagAdvanced, true)
			}

			steps := guidepkg.BuildSteps(settings)
			if startStep != "" {
				if _, ok := guidepkg.Find(steps, startStep); !ok {
					return fmt.Errorf("unknown step %q (valid steps: %s)", startStep, strings.Join(guidepkg.StepIDs(steps), ", "))
				}
			}

			log.Debug("guide: starting",
				"interactive", cmdutil.IsInteractive(),
				"step", startStep,
				"repo_config", config.IsRepoMode(),
				"experiments", settings.ExperimentsEnabled,
				"advanced", settings.FlagEnabled(config.FlagAdvanced))

			if !cmdutil.IsInteractive() {
				printGuide(cmd.OutOrStdout(), steps, startStep)
				return nil
			}
			return runInteractive(settings, startStep)
		},
	}

	cmd.Flags().StringVarP(&startStep, "step", "s", "", "Step to open first (see 'kiln steps list')")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "Enable experiments and the advanced sections for this run")
	_ = cmd.RegisterFlagCompletionFunc("step", completeStepIDs)

	return cmd
}

// completeStepIDs offers step IDs for shell completion
func completeStepIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	steps := guidepkg.BuildSteps(config.GuideSettings{})
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if strings.HasPrefix(s.ID, toComplete) {
			out = append(out, s.ID+"\t"+s.Title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// printGuide writes the guide, or the single step id, as rendered markdown
func printGuide(w io.Writer, steps []wizard.Step, id string) {
	if id == "" {
		cmdutil.WriteMarkdown(w, guidepkg.DocumentMarkdown(steps))
		return
	}
	step, _ := guidepkg.Find(steps, id)
	cmdutil.WriteMarkdown(w, "# "+step.Title+"\n\n"+guidepkg.StepMarkdown(step))
}

// runInteractive launches the Bubble Tea guide
func runInteractive(settings config.GuideSettings, startStep string) error {
	p := tea.NewProgram(NewModel(settings, startStep, "auto"), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("guide failed: %w", err)
	}
	return nil
}
