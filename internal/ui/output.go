package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/byterings/gitidm/internal/identity"
)

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// Success prints a success message with checkmark
func Success(message string) {
	successColor.Printf("✓ %s\n", message)
}

// Info prints an info message
func Info(message string) {
	fmt.Printf("ℹ %s\n", message)
}

// Warning prints an advisory message to stderr. Warnings never change
// the exit code.
func Warning(message string) {
	warningColor.Fprintf(os.Stderr, "WARNING: %s\n", message)
}

// Error prints a fatal message to stderr
func Error(message string) {
	errorColor.Fprintf(os.Stderr, "ERROR: %s\n", message)
}

// Hint prints a follow-up line under a warning or error
func Hint(message string) {
	fmt.Fprintf(os.Stderr, "  %s\n", message)
}

// PrintIdentity prints one identity as a header line and its stored
// fields as a labeled sub-list, skipping absent fields.
func PrintIdentity(ident identity.Identity, active bool) {
	indicator := " "
	if active {
		indicator = "→"
	}
	fmt.Printf("%s %s\n", indicator, ident.ID)

	for _, field := range []struct {
		label string
		value string
	}{
		{"name", ident.Name},
		{"email", ident.Email},
		{"sshKey", ident.SSHKey},
		{"sshCommand", ident.SSHCommand},
	} {
		if field.value != "" {
			fmt.Printf("    %-12s %s\n", field.label+":", field.value)
		}
	}
}

// PrintIdentityList prints all identities and marks the active one
func PrintIdentityList(idents []identity.Identity, activeID string) {
	if len(idents) == 0 {
		fmt.Println("No identities configured yet.")
		fmt.Println("\nAdd your first identity with: gitidm add <id>")
		return
	}

	fmt.Println("\nConfigured identities:")
	fmt.Println()

	for _, ident := range idents {
		PrintIdentity(ident, ident.ID == activeID)
	}

	fmt.Println()
	if activeID == "" {
		fmt.Println("No identity active. Use 'gitidm use <id>' to apply one.")
	}
}
