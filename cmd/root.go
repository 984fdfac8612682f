// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Kiln/cmd/cmdutil"
	configCmd "github.com/Work-Fort/Kiln/cmd/config"
	"github.com/Work-Fort/Kiln/cmd/guide"
	"github.com/Work-Fort/Kiln/cmd/steps"
	"github.com/Work-Fort/Kiln/cmd/version"
	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via ldflags
	// -ldflags "-X github.com/Work-Fort/Kiln/cmd.Version=x.y.z"
	Version string

	logLevel string
	useTUI   bool
)

var rootCmd = &cobra.Command{
	Use:   "kiln",
	Short: "Step-by-step guide to building OP-TEE for the Raspberry Pi 3",
	Long: `Kiln - OP-TEE build and flash guide

An interactive wizard that walks you through building an OP-TEE trusted
OS image for the Raspberry Pi 3, flashing it to an SD card and verifying
the secure world. Kiln only shows instructions: every command is run by
you, on your own machine.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitDirs(); err != nil {
			return err
		}

		if err := config.LoadConfig(); err != nil {
			return err
		}

		// Config files and KILN_* env may override the flag defaults
		useTUI = config.GetUseTUI()
		logLevel = config.GetLogLevel()

		return setupLogging(logLevel)
	},
}

// setupLogging points the default logger at the JSON debug log file
func setupLogging(levelName string) error {
	if levelName == "disabled" {
		log.SetOutput(io.Discard)
		return nil
	}

	level, err := log.ParseLevel(levelName)
	if err != nil {
		level = log.InfoLevel
	}

	f, err := os.OpenFile(config.GlobalPaths.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	fileLogger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02T15:04:05.000Z07:00",
		Level:           level,
		ReportCaller:    true,
		Formatter:       log.JSONFormatter,
	})
	log.SetDefault(fileLogger)

	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errorStyle := config.CurrentTheme.ErrorStyle()
		fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), err.Error())
		os.Exit(1)
	}
}

func init() {
	// Redirected to the log file in PersistentPreRunE
	log.SetReportTimestamp(false)
	log.SetLevel(log.InfoLevel)

	config.InitViper()

	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level: disabled, debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&useTUI, "use-tui", true, "Enable terminal UI mode")

	if err := config.BindFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(guide.NewGuideCmd())
	rootCmd.AddCommand(steps.NewStepsCmd())
	rootCmd.AddCommand(configCmd.NewConfigCmd())
	rootCmd.AddCommand(version.NewVersionCmd(Version))

	rootCmd.SetHelpFunc(styledHelpFunc)
	rootCmd.SetUsageFunc(styledUsageFunc)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Linux shells only
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(newCompletionCmd())
}

// shellCompletion describes one completion subcommand
type shellCompletion struct {
	shell   string
	install string
	gen     func(cmd *cobra.Command, w io.Writer, withDesc bool) error
}

var shellCompletions = []shellCompletion{
	{
		shell: "bash",
		install: `This script depends on the 'bash-completion' package.

To load completions in your current shell session:

	source <(%[1]s completion bash)

To load completions for every new session, execute once:

	%[1]s completion bash > /etc/bash_completion.d/%[1]s`,
		gen: func(cmd *cobra.Command, w io.Writer, withDesc bool) error {
			return cmd.Root().GenBashCompletionV2(w, withDesc)
		},
	},
	{
		shell: "zsh",
		install: `If shell completion is not already enabled in your environment you will need
to enable it. You can execute the following once:

	echo "autoload -U compinit; compinit" >> ~/.zshrc

To load completions for every new session, execute once:

	%[1]s completion zsh > "${fpath[1]}/_%[1]s"`,
		gen: func(cmd *cobra.Command, w io.Writer, withDesc bool) error {
			if !withDesc {
				return cmd.Root().GenZshCompletionNoDesc(w)
			}
			return cmd.Root().GenZshCompletion(w)
		},
	},
	{
		shell: "fish",
		install: `To load completions in your current shell session:

	%[1]s completion fish | source

To load completions for every new session, execute once:

	%[1]s completion fish > ~/.config/fish/completions/%[1]s.fish`,
		gen: func(cmd *cobra.Command, w io.Writer, withDesc bool) error {
			return cmd.Root().GenFishCompletion(w, withDesc)
		},
	},
}

// newCompletionCmd builds a completion command for bash, zsh and fish
func newCompletionCmd() *cobra.Command {
	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate the autocompletion script for the specified shell",
		Long: fmt.Sprintf(`Generate the autocompletion script for %s for the specified shell.
See each sub-command's help for details on how to use the generated script.
`, rootCmd.Name()),
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
	}

	for _, sc := range shellCompletions {
		var noDesc bool
		sub := &cobra.Command{
			Use:   sc.shell,
			Short: fmt.Sprintf("Generate the autocompletion script for %s", sc.shell),
			Long: fmt.Sprintf("Generate the autocompletion script for the %s shell.\n\n", sc.shell) +
				fmt.Sprintf(sc.install, rootCmd.Name()) +
				"\n\nYou will need to start a new shell for this setup to take effect.\n",
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			ValidArgsFunction:     cobra.NoFileCompletions,
			RunE: func(cmd *cobra.Command, args []string) error {
				return sc.gen(cmd, cmd.OutOrStdout(), !noDesc)
			},
		}
		sub.Flags().BoolVar(&noDesc, "no-descriptions", false, "disable completion descriptions")
		completionCmd.AddCommand(sub)
	}

	return completionCmd
}

// styledHelpFunc renders help output as markdown through glamour
func styledHelpFunc(cmd *cobra.Command, args []string) {
	cmdutil.WriteMarkdown(cmd.OutOrStdout(), generateHelpMarkdown(cmd))
}

// styledUsageFunc renders usage output as markdown through glamour
func styledUsageFunc(cmd *cobra.Command) error {
	cmdutil.WriteMarkdown(cmd.OutOrStdout(), generateUsageMarkdown(cmd))
	return nil
}

func generateHelpMarkdown(cmd *cobra.Command) string {
	var md strings.Builder

	md.WriteString(fmt.Sprintf("# %s\n\n", cmd.Name()))

	if cmd.Long != "" {
		md.WriteString(cmd.Long + "\n\n")
	} else if cmd.Short != "" {
		md.WriteString(cmd.Short + "\n\n")
	}

	if cmd.Runnable() {
		md.WriteString("## Usage\n\n")
		md.WriteString(fmt.Sprintf("```\n%s\n```\n\n", cmd.UseLine()))
	}

	if len(cmd.Aliases) > 0 {
		md.WriteString("## Aliases\n\n")
		md.WriteString(fmt.Sprintf("`%s`\n\n", strings.Join(cmd.Aliases, "`, `")))
	}

	if cmd.HasExample() {
		md.WriteString("## Examples\n\n")
		md.WriteString(fmt.Sprintf("```\n%s\n```\n\n", cmd.Example))
	}

	writeCommandsAndFlags(&md, cmd, "##")

	md.WriteString(fmt.Sprintf("Use `%s [command] --help` for more information about a command.\n", cmd.CommandPath()))

	return md.String()
}

func generateUsageMarkdown(cmd *cobra.Command) string {
	var md strings.Builder

	md.WriteString("## Usage\n\n")
	if cmd.Runnable() {
		md.WriteString(fmt.Sprintf("```\n%s\n```\n\n", cmd.UseLine()))
	}
	writeCommandsAndFlags(&md, cmd, "###")

	return md.String()
}

// writeCommandsAndFlags appends the subcommand list and flag blocks under
// headings of the given level
func writeCommandsAndFlags(md *strings.Builder, cmd *cobra.Command, level string) {
	if hasSubCommands(cmd) {
		md.WriteString(level + " Available Commands\n\n")
		for _, subCmd := range cmd.Commands() {
			if !subCmd.IsAvailableCommand() || subCmd.IsAdditionalHelpTopicCommand() {
				continue
			}
			md.WriteString(fmt.Sprintf("- **%s** - %s\n", subCmd.Name(), subCmd.Short))
		}
		md.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() {
		md.WriteString(level + " Flags\n\n")
		md.WriteString(fmt.Sprintf("```\n%s\n```\n\n", cmd.LocalFlags().FlagUsages()))
	}

	if cmd.HasAvailableInheritedFlags() {
		md.WriteString(level + " Global Flags\n\n")
		md.WriteString(fmt.Sprintf("```\n%s\n```\n\n", cmd.InheritedFlags().FlagUsages()))
	}
}

// hasSubCommands checks if command has available subcommands
func hasSubCommands(cmd *cobra.Command) bool {
	for _, subCmd := range cmd.Commands() {
		if subCmd.IsAvailableCommand() && !subCmd.IsAdditionalHelpTopicCommand() {
			return true
		}
	}
	return false
}
