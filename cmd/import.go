package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/identity"
	"github.com/byterings/gitidm/internal/ui"
)

var importOverwrite bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import identities from a TOML export",
	Long: `Restore identities from a file produced by 'gitidm export'.

Identities that already exist are skipped unless --overwrite is given.
Each identity is imported independently; failures are reported per id.`,
	Args: cobra.ExactArgs(1),
	Example: `  gitidm import identities.toml
  gitidm import identities.toml --overwrite`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Merge into identities that already exist")
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireGit(); err != nil {
		return err
	}

	_, repo, _ := openStore()

	imported, failed, err := identity.Import(repo, args[0], importOverwrite)
	if err != nil {
		return err
	}

	for _, id := range imported {
		ui.Success(fmt.Sprintf("Identity '%s' imported", id))
	}
	for _, f := range failed {
		ui.Error(fmt.Sprintf("could not import '%s': %v", f.ID, f.Err))
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to import %d of %d identities", len(failed), len(imported)+len(failed))
	}
	if len(imported) == 0 {
		fmt.Println("Nothing to import")
	}
	return nil
}
