package cmd

import (
	"fmt"

	"github.com/byterings/gitidm/internal/activation"
	"github.com/byterings/gitidm/internal/gitcfg"
	"github.com/byterings/gitidm/internal/identity"
)

// requireGit fails early when the git binary is missing, before any
// command touches the config store.
func requireGit() error {
	if !gitcfg.IsGitInstalled() {
		return fmt.Errorf("git is not installed")
	}
	return nil
}

// openStore wires the global git config store, the identity repository,
// and the activation engine for a command invocation.
func openStore() (gitcfg.Store, *identity.Repository, *activation.Engine) {
	store := gitcfg.NewGitStore()
	repo := identity.NewRepository(store)
	return store, repo, activation.NewEngine(store, repo)
}
