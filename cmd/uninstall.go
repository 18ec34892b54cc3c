package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/gitcfg"
	"github.com/byterings/gitidm/internal/identity"
	"github.com/byterings/gitidm/internal/ui"
)

var uninstallForce bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove all gitidm state from the git configuration",
	Long: `Remove every stored identity and the active pointer from the global
git configuration.

The live user.name, user.email, and core.sshCommand values are left in
place so git keeps working with whatever identity was last applied.`,
	Example: `  # Remove all gitidm state
  gitidm uninstall

  # After running this command, manually delete the binary:
  # Linux/macOS: sudo rm /usr/local/bin/gitidm
  # Windows: delete gitidm.exe from the install folder`,
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
	uninstallCmd.Flags().BoolVar(&uninstallForce, "force", false, "Skip confirmation prompt")
}

func runUninstall(cmd *cobra.Command, args []string) error {
	if err := requireGit(); err != nil {
		return err
	}

	if !uninstallForce {
		fmt.Println("This will:")
		fmt.Println("  1. Remove every stored identity (gitidm.* keys)")
		fmt.Println("  2. Clear the active identity pointer")
		fmt.Println()

		confirmed, err := ui.PromptConfirmation("Continue?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Operation cancelled.")
			return nil
		}
		fmt.Println()
	}

	store, repo, _ := openStore()

	fmt.Println("Step 1: Removing identities...")
	if err := removeAll(repo); err != nil {
		return err
	}
	fmt.Println()

	fmt.Println("Step 2: Clearing active pointer...")
	// Best effort: an already-absent pointer is fine, anything else is not
	if err := store.Unset(identity.ActiveKey); err != nil && !errors.Is(err, gitcfg.ErrUnset) {
		return err
	}
	ui.Success("Active pointer cleared")
	fmt.Println()

	ui.Success("gitidm uninstall complete!")
	fmt.Println()
	fmt.Println("Final step - manually remove the gitidm binary:")
	if runtime.GOOS == "windows" {
		fmt.Println("  Remove-Item (Get-Command gitidm).Source")
	} else {
		fmt.Println("  sudo rm /usr/local/bin/gitidm")
	}
	fmt.Println()

	return nil
}
