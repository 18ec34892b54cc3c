package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/agent"
	"github.com/byterings/gitidm/internal/gitcfg"
	"github.com/byterings/gitidm/internal/ui"
)

var useCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Switch the global git configuration to an identity",
	Long: `Apply a stored identity to the global git configuration.

Writes the identity's name, email, and ssh command to user.name,
user.email, and core.sshCommand, and records the identity as active.`,
	Args: cobra.ExactArgs(1),
	Example: `  gitidm use work
  gitidm use personal`,
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	id := args[0]

	if err := requireGit(); err != nil {
		return err
	}

	_, _, engine := openStore()

	ident, err := engine.Use(id)
	if err != nil {
		return err
	}

	// git older than 2.10 ignores core.sshCommand silently
	if ident.SSHCommand != "" && !gitcfg.SupportsSSHCommand() {
		ui.Warning("your git does not support core.sshCommand (needs 2.10+); SSH authentication will not follow this identity")
	}

	if ident.SSHKey != "" {
		agent.Check(agent.SSHAdd{}, ident.SSHKey)
	}

	ui.Success(fmt.Sprintf("Switched to identity '%s' (%s)", id, ident.Email))

	return nil
}
