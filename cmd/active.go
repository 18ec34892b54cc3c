package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/agent"
	"github.com/byterings/gitidm/internal/ui"
)

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the active identity and verify the live git config",
	Long: `Display the identity recorded as active and compare it against the
live global git configuration, field by field.

Every mismatching field is reported, and any mismatch makes the command
fail so scripts can detect drift. Reapply with 'gitidm use <id>'.`,
	RunE: runActive,
}

func init() {
	rootCmd.AddCommand(activeCmd)
}

func runActive(cmd *cobra.Command, args []string) error {
	if err := requireGit(); err != nil {
		return err
	}

	_, _, engine := openStore()

	status, err := engine.Status()
	if err != nil {
		return err
	}

	if status == nil {
		fmt.Println("No identity active")
		fmt.Println("\nApply one with: gitidm use <id>")
		return nil
	}

	ui.PrintIdentity(status.Stored, true)

	if status.Stored.SSHKey != "" {
		agent.Check(agent.SSHAdd{}, status.Stored.SSHKey)
	}

	// Surface every discrepancy before failing, not just the first
	for _, d := range status.Drift {
		ui.Warning(fmt.Sprintf("live %s is %q, identity '%s' has %q", d.Field, d.Live, status.ActiveID, d.Stored))
	}

	return status.DriftError()
}
