package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeLister struct {
	listing string
	err     error
}

func (f fakeLister) ListKeys() (string, error) {
	return f.listing, f.err
}

func TestLoadedMatchesByPath(t *testing.T) {
	l := fakeLister{listing: "256 SHA256:abcdef /home/j/.ssh/id_work (ED25519)\n"}
	assert.True(t, Loaded(l, "/home/j/.ssh/id_work"))
}

func TestLoadedNotInListing(t *testing.T) {
	l := fakeLister{listing: "256 SHA256:abcdef /home/j/.ssh/id_other (ED25519)\n"}
	assert.False(t, Loaded(l, "/home/j/.ssh/id_work"))
}

func TestLoadedQueryFailureMeansNotLoaded(t *testing.T) {
	// no agent running: ssh-add exits nonzero
	l := fakeLister{err: errors.New("ssh-add -l: exit status 2")}
	assert.False(t, Loaded(l, "/home/j/.ssh/id_work"))
}
