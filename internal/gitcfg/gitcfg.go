package gitcfg

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrUnset is returned by Unset when the key was not set to begin with.
	ErrUnset = errors.New("key is not set")

	// ErrNoSection is returned by RemoveSection when the section does not exist.
	ErrNoSection = errors.New("no such section")
)

// Entry is a single key/value pair from the global git configuration.
type Entry struct {
	Key   string
	Value string
}

// Store is the contract over the global git configuration. All keys are
// full dotted names (e.g. "user.email", "gitidm.work.name").
type Store interface {
	// Get returns the value for key, or "" if the key is not set.
	Get(key string) (string, error)

	// Set writes key to value.
	Set(key, value string) error

	// Unset removes key. Returns ErrUnset if the key was not set.
	Unset(key string) error

	// List returns all entries whose key starts with prefix, in the order
	// the configuration reports them.
	List(prefix string) ([]Entry, error)

	// RemoveSection deletes an entire section (e.g. "gitidm.work").
	// Returns ErrNoSection if the section does not exist.
	RemoveSection(name string) error
}

// GitStore implements Store by running git config --global.
type GitStore struct{}

// NewGitStore returns a Store backed by the user's global git configuration.
func NewGitStore() *GitStore {
	return &GitStore{}
}

func (s *GitStore) Get(key string) (string, error) {
	cmd := exec.Command("git", "config", "--global", "--get", key)
	output, err := cmd.Output()
	if err != nil {
		// Exit code 1 means the key doesn't exist
		if exitError, ok := err.(*exec.ExitError); ok && exitError.ExitCode() == 1 {
			return "", nil
		}
		return "", fmt.Errorf("failed to read git config %s: %w", key, err)
	}
	return strings.TrimSpace(string(output)), nil
}

func (s *GitStore) Set(key, value string) error {
	cmd := exec.Command("git", "config", "--global", key, value)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to set git config %s: %s: %w", key, strings.TrimSpace(string(output)), err)
	}
	return nil
}

func (s *GitStore) Unset(key string) error {
	cmd := exec.Command("git", "config", "--global", "--unset", key)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// Exit code 5 means the key was not set
		if exitError, ok := err.(*exec.ExitError); ok && exitError.ExitCode() == 5 {
			return ErrUnset
		}
		return fmt.Errorf("failed to unset git config %s: %s: %w", key, strings.TrimSpace(string(output)), err)
	}
	return nil
}

func (s *GitStore) List(prefix string) ([]Entry, error) {
	pattern := "^" + regexp.QuoteMeta(prefix)
	cmd := exec.Command("git", "config", "--global", "--get-regexp", pattern)
	output, err := cmd.Output()
	if err != nil {
		// Exit code 1 means no keys matched
		if exitError, ok := err.(*exec.ExitError); ok && exitError.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list git config %s*: %w", prefix, err)
	}

	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		// --get-regexp emits "key value" with the value possibly containing spaces
		key, value, _ := strings.Cut(line, " ")
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries, nil
}

func (s *GitStore) RemoveSection(name string) error {
	cmd := exec.Command("git", "config", "--global", "--remove-section", name)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if strings.Contains(strings.ToLower(string(output)), "no such section") {
			return ErrNoSection
		}
		return fmt.Errorf("failed to remove git config section %s: %s: %w", name, strings.TrimSpace(string(output)), err)
	}
	return nil
}

// IsGitInstalled checks if git is installed
func IsGitInstalled() bool {
	cmd := exec.Command("git", "--version")
	return cmd.Run() == nil
}

// Version returns the installed git version string (e.g. "2.39.2").
func Version() (string, error) {
	cmd := exec.Command("git", "--version")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get git version: %w", err)
	}
	fields := strings.Fields(strings.TrimSpace(string(output)))
	if len(fields) < 3 {
		return "", fmt.Errorf("unexpected git version output: %q", string(output))
	}
	return fields[2], nil
}

// SupportsSSHCommand reports whether the installed git understands
// core.sshCommand (introduced in git 2.10). Older git ignores the key
// silently, which would then be reported as drift.
func SupportsSSHCommand() bool {
	version, err := Version()
	if err != nil {
		return false
	}
	return versionAtLeast(version, 2, 10)
}

func versionAtLeast(version string, major, minor int) bool {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return false
	}
	maj, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return maj > major || (maj == major && min >= minor)
}
