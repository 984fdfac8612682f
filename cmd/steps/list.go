// SPDX-License-Identifier: Apache-2.0
package steps

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/Work-Fort/Kiln/pkg/wizard"
	"github.com/spf13/cobra"
)

func newListCmd(load func() []wizard.Step) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List guide steps",
		Long:    `List every step in guide order with its ID, title and badge.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := config.CurrentTheme

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(theme.GetMutedColor())).
				Headers("#", "ID", "TITLE", "BADGE").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return theme.TitleStyle().Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				})

			for i, s := range load() {
				t.Row(strconv.Itoa(i+1), s.ID, s.Title, s.Badge)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}
