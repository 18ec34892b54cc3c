package agent

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/byterings/gitidm/internal/sshkey"
	"github.com/byterings/gitidm/internal/ui"
)

// Lister queries an ssh-agent-like service for its loaded keys.
type Lister interface {
	// ListKeys returns the raw key listing, one key per line.
	ListKeys() (string, error)
}

// SSHAdd lists agent keys by running ssh-add -l.
type SSHAdd struct{}

func (SSHAdd) ListKeys() (string, error) {
	output, err := exec.Command("ssh-add", "-l").Output()
	if err != nil {
		return "", fmt.Errorf("ssh-add -l: %w", err)
	}
	return string(output), nil
}

// Loaded reports whether the key at keyPath appears in the agent's
// listing, matched by path or by the SHA256 fingerprint of its public
// key. Any query failure (no agent running) reports not loaded.
func Loaded(l Lister, keyPath string) bool {
	listing, err := l.ListKeys()
	if err != nil {
		return false
	}
	if strings.Contains(listing, keyPath) {
		return true
	}
	if fp, err := sshkey.Fingerprint(keyPath); err == nil && strings.Contains(listing, fp) {
		return true
	}
	return false
}

// Check warns if the key is not loaded in the agent. Advisory only: it
// never fails and never changes the calling operation's outcome. An
// empty path is a no-op.
func Check(l Lister, keyPath string) {
	if keyPath == "" {
		return
	}
	if !Loaded(l, keyPath) {
		ui.Warning(fmt.Sprintf("SSH key %s is not loaded in the agent", keyPath))
		ui.Hint(fmt.Sprintf("Run: ssh-add %s", keyPath))
	}
}
