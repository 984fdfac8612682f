// SPDX-License-Identifier: Apache-2.0
package steps

import (
	"fmt"
	"strings"

	"github.com/Work-Fort/Kiln/cmd/cmdutil"
	"github.com/Work-Fort/Kiln/pkg/guide"
	"github.com/Work-Fort/Kiln/pkg/wizard"
	"github.com/spf13/cobra"
)

func newShowCmd(load func() []wizard.Step) *cobra.Command {
	var sectionID string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one step",
		Long: `Render one step as formatted text.

Use --section with a section slug to print only that section. Slugs are
the lowercased, hyphenated section headings.`,
		Args: cobra.ExactArgs(1),
		Example: `  kiln steps show flash
  kiln steps show prerequisites --section install-repo`,
		ValidArgsFunction: completeStepIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := load()

			step, ok := guide.Find(steps, args[0])
			if !ok {
				return fmt.Errorf("unknown step %q (valid steps: %s)", args[0], strings.Join(guide.StepIDs(steps), ", "))
			}

			if sectionID == "" {
				cmdutil.WriteMarkdown(cmd.OutOrStdout(), "# "+step.Title+"\n\n"+guide.StepMarkdown(step))
				return nil
			}

			sec, ok := guide.FindSection(step, sectionID)
			if !ok {
				ids := make([]string, len(step.Sections))
				for i, s := range step.Sections {
					ids[i] = s.ID
				}
				return fmt.Errorf("step %q has no section %q (sections: %s)", step.ID, sectionID, strings.Join(ids, ", "))
			}
			cmdutil.WriteMarkdown(cmd.OutOrStdout(), guide.SectionMarkdown(sec))
			return nil
		},
	}

	cmd.Flags().StringVar(&sectionID, "section", "", "Only show the section with this slug")
	return cmd
}
