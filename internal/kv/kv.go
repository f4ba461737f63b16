// Package kv defines the narrow key-value contract the ledger persists
// through, plus its sqlite, mongo and in-memory adapters.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound marks an absent key. Absence is a valid first-run state, not
// a failure; the ledger seeds itself when it sees it.
var ErrKeyNotFound = errors.New("key not found")

// Store maps string keys to opaque blobs. Single-call atomicity is the only
// guarantee adapters must provide.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
