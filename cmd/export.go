package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/identity"
	"github.com/byterings/gitidm/internal/platform"
	"github.com/byterings/gitidm/internal/ui"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all identities to a TOML file",
	Long: `Write every stored identity to a TOML snapshot that can be restored
with 'gitidm import' on another machine.

Key files are referenced by path and never copied; move them separately.`,
	Example: `  gitidm export --output identities.toml
  gitidm export > identities.toml`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Destination file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireGit(); err != nil {
		return err
	}

	_, repo, _ := openStore()

	if exportOutput == "" {
		return identity.Export(repo, os.Stdout)
	}

	f, err := platform.OpenFileSecure(exportOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", exportOutput, err)
	}
	defer f.Close()

	if err := identity.Export(repo, f); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Identities exported to %s", exportOutput))

	return nil
}
