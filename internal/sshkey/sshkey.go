package sshkey

import (
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"

	"github.com/byterings/gitidm/internal/platform"
)

// Validate checks that an SSH private key exists and is readable, and
// returns the tilde-expanded path. Insecure permissions only warn.
func Validate(path string) (string, error) {
	expanded, err := platform.ExpandTilde(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("key file does not exist: %s", expanded)
		}
		return "", fmt.Errorf("failed to access key file: %w", err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", expanded)
	}

	// Check permissions (Unix only)
	ok, err := platform.CheckFilePermissions(expanded)
	if err != nil {
		return "", err
	}
	if !ok {
		fmt.Printf("⚠ Warning: Key file has insecure permissions: %s\n", info.Mode())
		fmt.Printf("  Run: %s\n", platform.GetPermissionFixCommand(expanded))
	}

	return expanded, nil
}

// Fingerprint returns the SHA256 fingerprint of the public key next to
// the given private key (<path>.pub), in the format ssh-add -l prints.
func Fingerprint(privateKeyPath string) (string, error) {
	data, err := os.ReadFile(privateKeyPath + ".pub")
	if err != nil {
		return "", fmt.Errorf("failed to read public key: %w", err)
	}

	pub, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}

	return ssh.FingerprintSHA256(pub), nil
}
