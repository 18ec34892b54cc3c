package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/identity"
	"github.com/byterings/gitidm/internal/ui"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:     "remove <id|all>",
	Aliases: []string{"rm"},
	Short:   "Remove an identity, or all of them",
	Long: `Delete a stored identity from the global git configuration.

'remove all' deletes every identity. Each deletion is independent: a
failure on one identity does not stop the rest, and every outcome is
reported per id.`,
	Args: cobra.ExactArgs(1),
	Example: `  gitidm remove work
  gitidm remove all`,
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "Skip confirmation when removing all identities")
}

func runRemove(cmd *cobra.Command, args []string) error {
	id := args[0]

	if err := requireGit(); err != nil {
		return err
	}

	_, repo, _ := openStore()

	if id == identity.ReservedID {
		if !removeForce {
			confirmed, err := ui.PromptConfirmation("Remove every stored identity?")
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Cancelled")
				return nil
			}
		}
		return removeAll(repo)
	}

	if err := repo.Remove(id); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Identity '%s' removed", id))

	return nil
}

func removeAll(repo *identity.Repository) error {
	removed, failed, err := repo.RemoveAll()
	if err != nil {
		return err
	}

	for _, id := range removed {
		ui.Success(fmt.Sprintf("Identity '%s' removed", id))
	}
	for _, f := range failed {
		ui.Error(fmt.Sprintf("could not remove '%s': %v", f.ID, f.Err))
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to remove %d of %d identities", len(failed), len(removed)+len(failed))
	}
	if len(removed) == 0 {
		fmt.Println("No identities to remove")
	}
	return nil
}
