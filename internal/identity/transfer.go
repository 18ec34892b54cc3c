package identity

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// transferFile is the on-disk layout of an identity export.
type transferFile struct {
	Identities []transferIdentity `toml:"identity"`
}

type transferIdentity struct {
	ID         string `toml:"id"`
	Name       string `toml:"name,omitempty"`
	Email      string `toml:"email,omitempty"`
	SSHKey     string `toml:"ssh_key,omitempty"`
	SSHCommand string `toml:"ssh_command,omitempty"`
}

// Export writes every stored identity to w as TOML.
func Export(r *Repository, w io.Writer) error {
	idents, err := r.List()
	if err != nil {
		return err
	}

	out := transferFile{Identities: make([]transferIdentity, 0, len(idents))}
	for _, ident := range idents {
		out.Identities = append(out.Identities, transferIdentity{
			ID:         ident.ID,
			Name:       ident.Name,
			Email:      ident.Email,
			SSHKey:     ident.SSHKey,
			SSHCommand: ident.SSHCommand,
		})
	}

	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode identities: %w", err)
	}
	return nil
}

// Import reads a TOML export from path and upserts every identity in it.
// Existing ids are skipped unless overwrite is set. Like RemoveAll, each
// identity is handled independently and failures are reported per id.
func Import(r *Repository, path string, overwrite bool) (imported []string, failed []Failure, err error) {
	var in transferFile
	if _, err := toml.DecodeFile(path, &in); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	for _, ti := range in.Identities {
		if ti.ID == "" {
			failed = append(failed, Failure{ID: "?", Err: &ValidationError{Reason: "identity entry without an id"}})
			continue
		}

		exists, err := r.Exists(ti.ID)
		if err != nil {
			return imported, failed, err
		}
		if exists && !overwrite {
			failed = append(failed, Failure{ID: ti.ID, Err: fmt.Errorf("already exists (use --overwrite to merge)")})
			continue
		}

		fields := Fields{Name: ti.Name, Email: ti.Email}
		// A key-file identity carries both the path and its derived
		// command; restoring the path re-derives the command.
		if ti.SSHKey != "" {
			fields.Key = ti.SSHKey
		} else {
			fields.Command = ti.SSHCommand
		}

		if err := r.Upsert(ti.ID, fields); err != nil {
			failed = append(failed, Failure{ID: ti.ID, Err: err})
			continue
		}
		imported = append(imported, ti.ID)
	}
	return imported, failed, nil
}
