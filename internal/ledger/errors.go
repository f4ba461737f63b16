package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an update or remove that referenced an unknown id. The
// ledger state is unchanged; callers decide how to surface it.
var ErrNotFound = errors.New("transaction not found")

// PersistenceError reports that the durable write failed after the in-memory
// mutation was already applied. Memory and durable state have diverged; the
// caller can retry the write or warn the user.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist after %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
