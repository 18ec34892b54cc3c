package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/byterings/gitidm/internal/activation"
	"github.com/byterings/gitidm/internal/agent"
	"github.com/byterings/gitidm/internal/gitcfg"
	"github.com/byterings/gitidm/internal/identity"
	"github.com/byterings/gitidm/internal/platform"
	"github.com/byterings/gitidm/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Check gitidm state health and diagnose common issues.

Runs checks on:
- git availability and version
- Stored identity completeness
- Active pointer validity
- SSH key files and permissions
- SSH agent status
- Live git config alignment`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	passed  bool
	message string
	fix     string // Suggested fix command
}

func printCheckResult(r checkResult) {
	if r.passed {
		fmt.Printf("  ✓ %s\n", r.message)
	} else if r.fix != "" {
		fmt.Printf("  ⚠ %s\n", r.message)
		fmt.Printf("    → %s\n", r.fix)
	} else {
		fmt.Printf("  ✗ %s\n", r.message)
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println()
	fmt.Println("Checking gitidm configuration...")
	fmt.Println()

	errors := 0
	warnings := 0

	tally := func(results []checkResult) {
		for _, r := range results {
			printCheckResult(r)
			if !r.passed && r.fix == "" {
				errors++
			} else if !r.passed {
				warnings++
			}
		}
	}

	fmt.Println("Git")
	fmt.Println("───")
	gitResults := checkGit()
	tally(gitResults)

	if !gitcfg.IsGitInstalled() {
		fmt.Println()
		ui.Error("Cannot continue without git")
		return nil
	}

	store, repo, engine := openStore()

	fmt.Println()
	fmt.Println("Identities")
	fmt.Println("──────────")
	tally(checkIdentities(repo))

	fmt.Println()
	fmt.Println("Active Identity")
	fmt.Println("───────────────")
	tally(checkActive(store, repo, engine))

	fmt.Println()
	fmt.Println("SSH Agent")
	fmt.Println("─────────")
	tally(checkAgent(repo))

	// Summary
	fmt.Println()
	fmt.Println("─────────")

	if errors == 0 && warnings == 0 {
		ui.Success("All checks passed!")
	} else if errors == 0 {
		fmt.Printf("⚠ %d warning(s)\n", warnings)
	} else {
		fmt.Printf("✗ %d error(s), %d warning(s)\n", errors, warnings)
	}

	return nil
}

func checkGit() []checkResult {
	var results []checkResult

	if !gitcfg.IsGitInstalled() {
		results = append(results, checkResult{
			passed:  false,
			message: "git is not installed",
		})
		return results
	}

	version, err := gitcfg.Version()
	if err != nil {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Could not determine git version: %v", err),
		})
		return results
	}

	results = append(results, checkResult{
		passed:  true,
		message: fmt.Sprintf("git %s installed", version),
	})

	if !gitcfg.SupportsSSHCommand() {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("git %s does not support core.sshCommand (needs 2.10+)", version),
			fix:     "Upgrade git to 2.10 or newer",
		})
	}

	return results
}

func checkIdentities(repo *identity.Repository) []checkResult {
	var results []checkResult

	idents, err := repo.List()
	if err != nil {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Could not list identities: %v", err),
		})
		return results
	}

	if len(idents) == 0 {
		results = append(results, checkResult{
			passed:  false,
			message: "No identities stored",
			fix:     "Run: gitidm add <id>",
		})
		return results
	}

	results = append(results, checkResult{
		passed:  true,
		message: fmt.Sprintf("%d identit(ies) stored", len(idents)),
	})

	for _, ident := range idents {
		if ident.Name == "" || ident.Email == "" || ident.SSHCommand == "" {
			results = append(results, checkResult{
				passed:  false,
				message: fmt.Sprintf("Identity '%s' is incomplete", ident.ID),
				fix:     fmt.Sprintf("Run: gitidm add %s --name ... --email ... --key ...", ident.ID),
			})
			continue
		}

		if ident.SSHKey == "" {
			results = append(results, checkResult{
				passed:  true,
				message: fmt.Sprintf("Identity '%s' complete (custom ssh command)", ident.ID),
			})
			continue
		}

		if _, err := os.Stat(ident.SSHKey); os.IsNotExist(err) {
			results = append(results, checkResult{
				passed:  false,
				message: fmt.Sprintf("SSH key missing for '%s': %s", ident.ID, ident.SSHKey),
				fix:     fmt.Sprintf("Run: gitidm add %s --key <path>", ident.ID),
			})
			continue
		}

		ok, err := platform.CheckFilePermissions(ident.SSHKey)
		if err == nil && !ok {
			results = append(results, checkResult{
				passed:  false,
				message: fmt.Sprintf("SSH key for '%s' has insecure permissions", ident.ID),
				fix:     platform.GetPermissionFixCommand(ident.SSHKey),
			})
			continue
		}

		results = append(results, checkResult{
			passed:  true,
			message: fmt.Sprintf("Identity '%s' complete, key file present", ident.ID),
		})
	}

	return results
}

func checkActive(store gitcfg.Store, repo *identity.Repository, engine *activation.Engine) []checkResult {
	var results []checkResult

	activeID, err := store.Get(identity.ActiveKey)
	if err != nil {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Could not read active pointer: %v", err),
		})
		return results
	}

	if activeID == "" {
		results = append(results, checkResult{
			passed:  false,
			message: "No identity active",
			fix:     "Run: gitidm use <id>",
		})
		return results
	}

	exists, err := repo.Exists(activeID)
	if err == nil && !exists {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Active identity '%s' no longer exists", activeID),
			fix:     "Run: gitidm use <id> with a stored identity",
		})
		return results
	}

	results = append(results, checkResult{
		passed:  true,
		message: fmt.Sprintf("Active identity: %s", activeID),
	})

	status, err := engine.Status()
	if err != nil || status == nil {
		return results
	}

	if len(status.Drift) == 0 {
		results = append(results, checkResult{
			passed:  true,
			message: "Live git config matches the active identity",
		})
	}
	for _, d := range status.Drift {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("%s mismatch: %q (identity has %q)", d.Field, d.Live, d.Stored),
			fix:     fmt.Sprintf("Run: gitidm use %s", activeID),
		})
	}

	return results
}

func checkAgent(repo *identity.Repository) []checkResult {
	var results []checkResult

	if os.Getenv("SSH_AUTH_SOCK") == "" {
		results = append(results, checkResult{
			passed:  false,
			message: "SSH agent not running (SSH_AUTH_SOCK not set)",
			fix:     "Run: eval $(ssh-agent)",
		})
		return results
	}

	results = append(results, checkResult{
		passed:  true,
		message: "SSH agent running",
	})

	idents, err := repo.List()
	if err != nil {
		return results
	}

	for _, ident := range idents {
		if ident.SSHKey == "" {
			continue
		}
		if agent.Loaded(agent.SSHAdd{}, ident.SSHKey) {
			results = append(results, checkResult{
				passed:  true,
				message: fmt.Sprintf("Key for '%s' loaded in agent", ident.ID),
			})
		} else {
			results = append(results, checkResult{
				passed:  false,
				message: fmt.Sprintf("Key for '%s' not loaded in agent", ident.ID),
				fix:     fmt.Sprintf("Run: ssh-add %s", ident.SSHKey),
			})
		}
	}

	return results
}
