package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/ui"
)

// version is set at build time via -ldflags
var version = "dev"

// helpShown tracks whether help text was rendered; gitidm treats a help
// invocation as a usage error and exits nonzero.
var helpShown bool

var rootCmd = &cobra.Command{
	Use:   "gitidm",
	Short: "Manage multiple git identities",
	Long: `gitidm stores named git identities (author name, email, and SSH
authentication) inside your global git configuration and switches between
them by rewriting user.name, user.email, and core.sshCommand.

All state lives under the gitidm.* namespace of ~/.gitconfig, so there is
no separate configuration file to manage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		helpShown = true
	})
}

// Execute runs the root command and maps failures to exit code 1.
func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
	if helpShown {
		os.Exit(1)
	}
}
