package identity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation names an identity that is not
// in the store.
var ErrNotFound = errors.New("identity not found")

// ValidationError reports bad or conflicting input. It is always raised
// before any write happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// DriftError reports that the live git configuration no longer matches
// the identity the active pointer names.
type DriftError struct {
	ID     string
	Fields []string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("live git config has drifted from identity '%s' (%s); run 'gitidm use %s' to reapply it",
		e.ID, strings.Join(e.Fields, ", "), e.ID)
}
