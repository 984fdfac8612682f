// SPDX-License-Identifier: Apache-2.0
package version

import (
	"fmt"

	"github.com/Work-Fort/Kiln/pkg/guide"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the current version of kiln and the OP-TEE release its guide targets.`,
		Run: func(cmd *cobra.Command, args []string) {
			if version == "" {
				version = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kiln version %s (guide: OP-TEE %s)\n", version, guide.Release)
		},
	}
}
