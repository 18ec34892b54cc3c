package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byterings/gitidm/internal/gitcfg"
)

func newTestRepo(t *testing.T) (*gitcfg.MemStore, *Repository) {
	t.Helper()
	store := gitcfg.NewMemStore()
	return store, NewRepository(store)
}

func TestUpsertKeyFileRoundTrip(t *testing.T) {
	_, repo := newTestRepo(t)

	err := repo.Upsert("work", Fields{Name: "John Doe", Email: "john@work.com", Key: "/path/to/key"})
	require.NoError(t, err)

	ident, err := repo.Get("work")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", ident.Name)
	assert.Equal(t, "john@work.com", ident.Email)
	assert.Equal(t, "/path/to/key", ident.SSHKey)
	assert.Equal(t, "ssh -i /path/to/key -o IdentitiesOnly=yes -F /dev/null", ident.SSHCommand)
}

func TestUpsertCustomCommandLeavesKeyAbsent(t *testing.T) {
	_, repo := newTestRepo(t)

	err := repo.Upsert("oss", Fields{Name: "John Doe", Email: "john@oss.dev", Command: "ssh -i ~/.ssh/id_oss"})
	require.NoError(t, err)

	ident, err := repo.Get("oss")
	require.NoError(t, err)
	assert.Empty(t, ident.SSHKey)
	assert.Equal(t, "ssh -i ~/.ssh/id_oss", ident.SSHCommand)
}

func TestUpsertReservedID(t *testing.T) {
	store, repo := newTestRepo(t)

	err := repo.Upsert("all", Fields{Name: "x", Email: "x@x", Key: "/k"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	entries, _ := store.List("")
	assert.Empty(t, entries, "validation failure must not write anything")
}

func TestUpsertConflictingAuthMethod(t *testing.T) {
	store, repo := newTestRepo(t)
	require.NoError(t, repo.Upsert("work", Fields{Name: "John", Email: "j@w", Key: "/k"}))
	before, _ := store.List("")

	err := repo.Upsert("work", Fields{Key: "/k2", Command: "ssh -i /k2"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	after, _ := store.List("")
	assert.Equal(t, before, after, "conflicting auth method must not write anything")
}

func TestUpsertIncompleteNewIdentity(t *testing.T) {
	store, repo := newTestRepo(t)

	for _, f := range []Fields{
		{Email: "j@w", Key: "/k"},
		{Name: "John", Key: "/k"},
		{Name: "John", Email: "j@w"},
	} {
		err := repo.Upsert("work", f)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}

	entries, _ := store.List("")
	assert.Empty(t, entries)
}

func TestUpsertMergesFields(t *testing.T) {
	_, repo := newTestRepo(t)
	require.NoError(t, repo.Upsert("work", Fields{Name: "John", Email: "j@old.com", Key: "/k"}))

	// Partial update is fine once the identity exists
	require.NoError(t, repo.Upsert("work", Fields{Email: "j@new.com"}))

	ident, err := repo.Get("work")
	require.NoError(t, err)
	assert.Equal(t, "John", ident.Name)
	assert.Equal(t, "j@new.com", ident.Email)
	assert.Equal(t, "/k", ident.SSHKey)
}

func TestGetNotFound(t *testing.T) {
	_, repo := newTestRepo(t)

	_, err := repo.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExists(t *testing.T) {
	_, repo := newTestRepo(t)

	exists, err := repo.Exists("work")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Upsert("work", Fields{Name: "John", Email: "j@w", Key: "/k"}))

	exists, err = repo.Exists("work")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRemoveNotFound(t *testing.T) {
	_, repo := newTestRepo(t)
	assert.ErrorIs(t, repo.Remove("nope"), ErrNotFound)
}

func TestRemove(t *testing.T) {
	_, repo := newTestRepo(t)
	require.NoError(t, repo.Upsert("work", Fields{Name: "John", Email: "j@w", Key: "/k"}))

	require.NoError(t, repo.Remove("work"))

	_, err := repo.Get("work")
	assert.ErrorIs(t, err, ErrNotFound)
}

// failingStore fails RemoveSection for one section to exercise the
// remove-all isolation.
type failingStore struct {
	*gitcfg.MemStore
	failSection string
}

func (s *failingStore) RemoveSection(name string) error {
	if name == s.failSection {
		return errors.New("section is locked")
	}
	return s.MemStore.RemoveSection(name)
}

func TestRemoveAllContinuesPastFailures(t *testing.T) {
	store := &failingStore{MemStore: gitcfg.NewMemStore(), failSection: "gitidm.b"}
	repo := NewRepository(store)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Upsert(id, Fields{Name: "N", Email: "e@x", Key: "/k"}))
	}

	removed, failed, err := repo.RemoveAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, removed)
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].ID)

	idents, err := repo.List()
	require.NoError(t, err)
	require.Len(t, idents, 1)
	assert.Equal(t, "b", idents[0].ID)
}

func TestRemoveAllEmptyStore(t *testing.T) {
	_, repo := newTestRepo(t)

	removed, failed, err := repo.RemoveAll()
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Empty(t, failed)
}

func TestListKeepsStoreOrder(t *testing.T) {
	_, repo := newTestRepo(t)
	require.NoError(t, repo.Upsert("work", Fields{Name: "John", Email: "j@w", Key: "/k"}))
	require.NoError(t, repo.Upsert("personal", Fields{Name: "Johnny", Email: "j@p", Command: "ssh -i /p"}))

	idents, err := repo.List()
	require.NoError(t, err)
	require.Len(t, idents, 2)
	assert.Equal(t, "work", idents[0].ID)
	assert.Equal(t, "personal", idents[1].ID)
	assert.Equal(t, "Johnny", idents[1].Name)
}

func TestListReadsLowercasedFieldNames(t *testing.T) {
	// git --get-regexp reports variable names lowercased
	store, repo := newTestRepo(t)
	require.NoError(t, store.Set("gitidm.work.name", "John"))
	require.NoError(t, store.Set("gitidm.work.sshkey", "/k"))
	require.NoError(t, store.Set("gitidm.work.sshcommand", "ssh -i /k"))

	idents, err := repo.List()
	require.NoError(t, err)
	require.Len(t, idents, 1)
	assert.Equal(t, "/k", idents[0].SSHKey)
	assert.Equal(t, "ssh -i /k", idents[0].SSHCommand)
}

func TestKeyCommandQuotesPath(t *testing.T) {
	assert.Equal(t,
		"ssh -i '/home/j/my keys/id' -o IdentitiesOnly=yes -F /dev/null",
		KeyCommand("/home/j/my keys/id"))
}
