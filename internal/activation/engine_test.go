package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byterings/gitidm/internal/gitcfg"
	"github.com/byterings/gitidm/internal/identity"
)

func newTestEngine(t *testing.T) (*gitcfg.MemStore, *identity.Repository, *Engine) {
	t.Helper()
	store := gitcfg.NewMemStore()
	repo := identity.NewRepository(store)
	return store, repo, NewEngine(store, repo)
}

func seedIdentity(t *testing.T, repo *identity.Repository, id string) {
	t.Helper()
	err := repo.Upsert(id, identity.Fields{
		Name:  "John Doe",
		Email: id + "@example.com",
		Key:   "/keys/" + id,
	})
	require.NoError(t, err)
}

func TestUseUnknownIdentityLeavesLiveConfigUnchanged(t *testing.T) {
	store, _, engine := newTestEngine(t)
	require.NoError(t, store.Set("user.name", "Before"))

	_, err := engine.Use("nope")
	require.ErrorIs(t, err, identity.ErrNotFound)

	name, _ := store.Get("user.name")
	assert.Equal(t, "Before", name)
	active, _ := store.Get(identity.ActiveKey)
	assert.Empty(t, active)
}

func TestUseAppliesIdentityAndSetsActivePointer(t *testing.T) {
	store, repo, engine := newTestEngine(t)
	seedIdentity(t, repo, "work")

	ident, err := engine.Use("work")
	require.NoError(t, err)
	assert.Equal(t, "/keys/work", ident.SSHKey)

	name, _ := store.Get("user.name")
	email, _ := store.Get("user.email")
	sshCmd, _ := store.Get("core.sshCommand")
	active, _ := store.Get(identity.ActiveKey)

	assert.Equal(t, "John Doe", name)
	assert.Equal(t, "work@example.com", email)
	assert.Equal(t, identity.KeyCommand("/keys/work"), sshCmd)
	assert.Equal(t, "work", active)

	// use then active: no discrepancy
	status, err := engine.Status()
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Empty(t, status.Drift)
	assert.NoError(t, status.DriftError())
}

func TestUseSkipsEmptyStoredFields(t *testing.T) {
	store, _, engine := newTestEngine(t)
	// seed a partial section directly; the repository refuses to create
	// one, but the store can hold one (external edits, older versions)
	require.NoError(t, store.Set("gitidm.half.email", "half@example.com"))
	require.NoError(t, store.Set("user.name", "Keep Me"))

	_, err := engine.Use("half")
	require.NoError(t, err)

	name, _ := store.Get("user.name")
	assert.Equal(t, "Keep Me", name, "empty stored name must not clear the live value")
	email, _ := store.Get("user.email")
	assert.Equal(t, "half@example.com", email)
}

func TestStatusNoActiveIdentity(t *testing.T) {
	_, _, engine := newTestEngine(t)

	status, err := engine.Status()
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestStatusReportsSingleDriftedField(t *testing.T) {
	store, repo, engine := newTestEngine(t)
	seedIdentity(t, repo, "work")
	_, err := engine.Use("work")
	require.NoError(t, err)

	// external edit behind our back
	require.NoError(t, store.Set("user.email", "someone@else.com"))

	status, err := engine.Status()
	require.NoError(t, err)
	require.NotNil(t, status)

	require.Len(t, status.Drift, 1)
	assert.Equal(t, "user.email", status.Drift[0].Field)
	assert.Equal(t, "someone@else.com", status.Drift[0].Live)
	assert.Equal(t, "work@example.com", status.Drift[0].Stored)

	var derr *identity.DriftError
	require.ErrorAs(t, status.DriftError(), &derr)
	assert.Equal(t, "work", derr.ID)
	assert.Equal(t, []string{"user.email"}, derr.Fields)
}

func TestStatusCollectsAllDriftedFields(t *testing.T) {
	store, repo, engine := newTestEngine(t)
	seedIdentity(t, repo, "work")
	_, err := engine.Use("work")
	require.NoError(t, err)

	require.NoError(t, store.Set("user.name", "Other"))
	require.NoError(t, store.Set("core.sshCommand", "ssh -i /other"))

	status, err := engine.Status()
	require.NoError(t, err)
	require.Len(t, status.Drift, 2)

	var derr *identity.DriftError
	require.ErrorAs(t, status.DriftError(), &derr)
	assert.ElementsMatch(t, []string{"user.name", "core.sshCommand"}, derr.Fields)
}

func TestStatusWithDeletedReferent(t *testing.T) {
	_, repo, engine := newTestEngine(t)
	seedIdentity(t, repo, "work")
	_, err := engine.Use("work")
	require.NoError(t, err)

	// delete the identity but leave the pointer
	require.NoError(t, repo.Remove("work"))

	status, err := engine.Status()
	require.NoError(t, err)
	require.NotNil(t, status, "a dangling pointer is not the same as no active identity")

	assert.Equal(t, "work", status.ActiveID)
	assert.True(t, status.Stored.IsZero())
	// live fields still carry the applied values, so all three drift
	assert.Len(t, status.Drift, 3)
}
