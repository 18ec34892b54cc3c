package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/identity"
	"github.com/byterings/gitidm/internal/sshkey"
	"github.com/byterings/gitidm/internal/ui"
)

var (
	addFlagName    string
	addFlagEmail   string
	addFlagKey     string
	addFlagCommand string
)

var addCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a new identity or update an existing one",
	Long: `Add a git identity with name, email, and an SSH auth method.

A new identity needs all three. Re-adding an existing id updates only
the fields you supply and leaves the rest untouched.`,
	Args: cobra.ExactArgs(1),
	Example: `  # Key-file identity; core.sshCommand is derived from the path
  gitidm add work --name "John Doe" --email john@work.com --key ~/.ssh/id_work

  # Custom ssh command instead of a key path
  gitidm add oss --name "John Doe" --email john@oss.dev --ssh-command "ssh -i ~/.ssh/id_oss"

  # Update a single field of an existing identity
  gitidm add work --email john.doe@work.com

  # Interactive mode
  gitidm add work`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addFlagName, "name", "", "Full name for git commits")
	addCmd.Flags().StringVar(&addFlagEmail, "email", "", "Email address for git commits")
	addCmd.Flags().StringVar(&addFlagKey, "key", "", "Path to an SSH private key")
	addCmd.Flags().StringVar(&addFlagCommand, "ssh-command", "", "Verbatim ssh command for core.sshCommand")
	addCmd.MarkFlagsMutuallyExclusive("key", "ssh-command")
}

func runAdd(cmd *cobra.Command, args []string) error {
	id := args[0]

	if err := requireGit(); err != nil {
		return err
	}

	fields := identity.Fields{
		Name:    addFlagName,
		Email:   addFlagEmail,
		Command: addFlagCommand,
	}

	// No flags at all: collect everything interactively
	if cmd.Flags().NFlag() == 0 {
		fmt.Printf("Adding identity '%s'\n\n", id)

		name, email, err := ui.PromptIdentityInfo()
		if err != nil {
			return fmt.Errorf("failed to get identity info: %w", err)
		}
		fields.Name = name
		fields.Email = email

		choice, err := ui.PromptAuthMethod()
		if err != nil {
			return fmt.Errorf("failed to get auth method: %w", err)
		}
		switch choice {
		case ui.AuthOptionKey:
			addFlagKey, err = ui.PromptKeyPath()
		case ui.AuthOptionCommand:
			fields.Command, err = ui.PromptSSHCommand()
		}
		if err != nil {
			return err
		}
	}

	// The key must be readable now, not at first use
	if addFlagKey != "" {
		expanded, err := sshkey.Validate(addFlagKey)
		if err != nil {
			return err
		}
		fields.Key = expanded
	}

	_, repo, _ := openStore()
	if err := repo.Upsert(id, fields); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Identity '%s' saved", id))
	fmt.Printf("\nNext: gitidm use %s\n", id)

	return nil
}
