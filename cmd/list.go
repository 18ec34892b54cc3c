package cmd

import (
	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/identity"
	"github.com/byterings/gitidm/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all stored identities",
	Long:    `Display all stored git identities and highlight the active one.`,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if err := requireGit(); err != nil {
		return err
	}

	store, repo, _ := openStore()

	idents, err := repo.List()
	if err != nil {
		return err
	}

	activeID, err := store.Get(identity.ActiveKey)
	if err != nil {
		return err
	}

	ui.PrintIdentityList(idents, activeID)

	return nil
}
