package identity

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

const (
	// Namespace is the git config section holding all stored identities.
	Namespace = "gitidm"

	// ReservedID cannot be used as an identity id; "remove all" uses it
	// to address every identity at once.
	ReservedID = "all"

	// ActiveKey is the top-level git config key naming the identity that
	// was last applied with "use".
	ActiveKey = "user.activeidm"
)

// Identity is a stored git authoring identity. Fields that were never
// supplied are empty strings.
type Identity struct {
	ID         string
	Name       string
	Email      string
	SSHKey     string // private key path, set only for key-file identities
	SSHCommand string // ssh invocation written to core.sshCommand
}

// IsZero reports whether no field of the identity is set.
func (i Identity) IsZero() bool {
	return i.Name == "" && i.Email == "" && i.SSHKey == "" && i.SSHCommand == ""
}

// Fields is the input of a single Upsert call. Empty fields are left
// untouched in storage. Key and Command are the two mutually exclusive
// auth variants: a key path (from which the ssh command is derived) or a
// verbatim ssh command.
type Fields struct {
	Name    string
	Email   string
	Key     string
	Command string
}

// HasAuth reports whether the call carries an auth method.
func (f Fields) HasAuth() bool {
	return f.Key != "" || f.Command != ""
}

// KeyCommand derives the ssh invocation for a private key path. The key
// is pinned with IdentitiesOnly and the user's ssh config is bypassed so
// the agent cannot substitute another identity.
func KeyCommand(path string) string {
	return fmt.Sprintf("ssh -i %s -o IdentitiesOnly=yes -F /dev/null", shellquote.Join(path))
}
