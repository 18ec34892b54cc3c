package activation

import (
	"errors"
	"fmt"

	"github.com/byterings/gitidm/internal/gitcfg"
	"github.com/byterings/gitidm/internal/identity"
)

// Engine applies stored identities to the live global git configuration
// and checks the live configuration against the declared-active identity.
type Engine struct {
	store gitcfg.Store
	repo  *identity.Repository
}

// NewEngine returns an Engine over the given store and repository.
func NewEngine(store gitcfg.Store, repo *identity.Repository) *Engine {
	return &Engine{store: store, repo: repo}
}

// Live is a snapshot of the git config fields this tool manages.
type Live struct {
	Name       string
	Email      string
	SSHCommand string
}

// Discrepancy is one field where the live configuration disagrees with
// the active identity.
type Discrepancy struct {
	Field  string
	Stored string
	Live   string
}

// Status describes the active identity and any drift from it.
type Status struct {
	ActiveID string
	Stored   identity.Identity
	Live     Live
	Drift    []Discrepancy
}

// Use applies the identity to the live configuration and records it as
// active. Empty stored fields leave the corresponding live field
// untouched. Returns the applied identity.
func (e *Engine) Use(id string) (identity.Identity, error) {
	exists, err := e.repo.Exists(id)
	if err != nil {
		return identity.Identity{}, err
	}
	if !exists {
		return identity.Identity{}, fmt.Errorf("identity '%s': %w", id, identity.ErrNotFound)
	}

	ident, err := e.repo.Get(id)
	if err != nil {
		return identity.Identity{}, err
	}

	if ident.Name != "" {
		if err := e.store.Set("user.name", ident.Name); err != nil {
			return identity.Identity{}, fmt.Errorf("failed to set git user.name: %w", err)
		}
	}
	if ident.Email != "" {
		if err := e.store.Set("user.email", ident.Email); err != nil {
			return identity.Identity{}, fmt.Errorf("failed to set git user.email: %w", err)
		}
	}
	if ident.SSHCommand != "" {
		if err := e.store.Set("core.sshCommand", ident.SSHCommand); err != nil {
			return identity.Identity{}, fmt.Errorf("failed to set git core.sshCommand: %w", err)
		}
	}

	if err := e.store.Set(identity.ActiveKey, id); err != nil {
		return identity.Identity{}, fmt.Errorf("failed to set active identity: %w", err)
	}

	return ident, nil
}

// Status reads the active pointer and compares the stored identity it
// names against the live configuration, field by field. A nil Status
// with nil error means no identity is active. A deleted-but-still-active
// identity reads back as all-empty stored fields and is compared as such.
func (e *Engine) Status() (*Status, error) {
	activeID, err := e.store.Get(identity.ActiveKey)
	if err != nil {
		return nil, err
	}
	if activeID == "" {
		return nil, nil
	}

	stored, err := e.repo.Get(activeID)
	if err != nil && !errors.Is(err, identity.ErrNotFound) {
		return nil, err
	}
	stored.ID = activeID

	var live Live
	if live.Name, err = e.store.Get("user.name"); err != nil {
		return nil, err
	}
	if live.Email, err = e.store.Get("user.email"); err != nil {
		return nil, err
	}
	if live.SSHCommand, err = e.store.Get("core.sshCommand"); err != nil {
		return nil, err
	}

	st := &Status{ActiveID: activeID, Stored: stored, Live: live}
	for _, cmp := range []struct {
		field  string
		stored string
		live   string
	}{
		{"user.name", stored.Name, live.Name},
		{"user.email", stored.Email, live.Email},
		{"core.sshCommand", stored.SSHCommand, live.SSHCommand},
	} {
		if cmp.stored != cmp.live {
			st.Drift = append(st.Drift, Discrepancy{Field: cmp.field, Stored: cmp.stored, Live: cmp.live})
		}
	}
	return st, nil
}

// DriftError builds the failure for a status with discrepancies, or nil
// when the live configuration matches.
func (s *Status) DriftError() error {
	if len(s.Drift) == 0 {
		return nil
	}
	fields := make([]string, 0, len(s.Drift))
	for _, d := range s.Drift {
		fields = append(fields, d.Field)
	}
	return &identity.DriftError{ID: s.ActiveID, Fields: fields}
}
