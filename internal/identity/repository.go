package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/byterings/gitidm/internal/gitcfg"
)

// Repository stores identities in the global git configuration under
// gitidm.<id>.<field> keys. The store itself is the source of truth for
// uniqueness: re-adding an existing id merges fields instead of creating
// a duplicate.
type Repository struct {
	store gitcfg.Store
}

// NewRepository returns a Repository over the given store.
func NewRepository(store gitcfg.Store) *Repository {
	return &Repository{store: store}
}

func sectionName(id string) string {
	return Namespace + "." + id
}

func fieldKey(id, field string) string {
	return sectionName(id) + "." + field
}

// Exists reports whether any key is stored for id.
func (r *Repository) Exists(id string) (bool, error) {
	entries, err := r.store.List(sectionName(id) + ".")
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// Upsert creates the identity on first call and merges fields into it on
// later calls. Validation runs before any write, so a failed call leaves
// the store untouched.
func (r *Repository) Upsert(id string, f Fields) error {
	if id == ReservedID {
		return &ValidationError{Reason: fmt.Sprintf("'%s' is reserved and cannot be used as an identity id", ReservedID)}
	}
	// The CLI already rejects --key together with --ssh-command; this
	// re-check keeps the invariant for any other caller.
	if f.Key != "" && f.Command != "" {
		return &ValidationError{Reason: "conflicting auth method: a key file and an ssh command cannot be set in the same call"}
	}

	exists, err := r.Exists(id)
	if err != nil {
		return err
	}
	if !exists && (f.Name == "" || f.Email == "" || !f.HasAuth()) {
		return &ValidationError{Reason: fmt.Sprintf("incomplete new identity '%s': name, email, and a key or ssh command are all required", id)}
	}

	if f.Name != "" {
		if err := r.store.Set(fieldKey(id, "name"), f.Name); err != nil {
			return err
		}
	}
	if f.Email != "" {
		if err := r.store.Set(fieldKey(id, "email"), f.Email); err != nil {
			return err
		}
	}
	if f.Key != "" {
		if err := r.store.Set(fieldKey(id, "sshKey"), f.Key); err != nil {
			return err
		}
		if err := r.store.Set(fieldKey(id, "sshCommand"), KeyCommand(f.Key)); err != nil {
			return err
		}
	}
	if f.Command != "" {
		if err := r.store.Set(fieldKey(id, "sshCommand"), f.Command); err != nil {
			return err
		}
	}

	return nil
}

// Get reads the identity for id. Returns ErrNotFound if no field is
// stored for it.
func (r *Repository) Get(id string) (Identity, error) {
	ident := Identity{ID: id}

	var err error
	if ident.Name, err = r.store.Get(fieldKey(id, "name")); err != nil {
		return Identity{}, err
	}
	if ident.Email, err = r.store.Get(fieldKey(id, "email")); err != nil {
		return Identity{}, err
	}
	if ident.SSHKey, err = r.store.Get(fieldKey(id, "sshKey")); err != nil {
		return Identity{}, err
	}
	if ident.SSHCommand, err = r.store.Get(fieldKey(id, "sshCommand")); err != nil {
		return Identity{}, err
	}

	if ident.IsZero() {
		return Identity{}, fmt.Errorf("identity '%s': %w", id, ErrNotFound)
	}
	return ident, nil
}

// Remove deletes the whole section for id. Returns ErrNotFound if the
// section does not exist.
func (r *Repository) Remove(id string) error {
	err := r.store.RemoveSection(sectionName(id))
	if errors.Is(err, gitcfg.ErrNoSection) {
		return fmt.Errorf("identity '%s': %w", id, ErrNotFound)
	}
	return err
}

// Failure records a per-id error from a batch operation.
type Failure struct {
	ID  string
	Err error
}

// RemoveAll removes every stored identity. Each removal is independent:
// one failure does not stop the rest of the batch.
func (r *Repository) RemoveAll() (removed []string, failed []Failure, err error) {
	idents, err := r.List()
	if err != nil {
		return nil, nil, err
	}

	for _, ident := range idents {
		if err := r.Remove(ident.ID); err != nil {
			failed = append(failed, Failure{ID: ident.ID, Err: err})
		} else {
			removed = append(removed, ident.ID)
		}
	}
	return removed, failed, nil
}

// List returns all stored identities grouped by id, in the order the
// store reports them.
func (r *Repository) List() ([]Identity, error) {
	entries, err := r.store.List(Namespace + ".")
	if err != nil {
		return nil, err
	}

	var order []string
	byID := make(map[string]*Identity)

	for _, entry := range entries {
		rest := strings.TrimPrefix(entry.Key, Namespace+".")
		// The id itself may contain dots; the field name is the last segment
		dot := strings.LastIndex(rest, ".")
		if dot <= 0 {
			continue
		}
		id, field := rest[:dot], rest[dot+1:]

		ident, ok := byID[id]
		if !ok {
			ident = &Identity{ID: id}
			byID[id] = ident
			order = append(order, id)
		}

		// git reports variable names lowercased
		switch strings.ToLower(field) {
		case "name":
			ident.Name = entry.Value
		case "email":
			ident.Email = entry.Value
		case "sshkey":
			ident.SSHKey = entry.Value
		case "sshcommand":
			ident.SSHCommand = entry.Value
		}
	}

	idents := make([]Identity, 0, len(order))
	for _, id := range order {
		idents = append(idents, *byID[id])
	}
	return idents, nil
}
