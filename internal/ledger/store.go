// Package ledger implements the aggregation engine: the authoritative
// transaction collection, the derived views kept consistent with it, and the
// glue to the key-value persistence adapter.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tally/internal/core"
	"tally/internal/export"
	"tally/internal/kv"
)

// transactionsKey is the single persistence key the store owns.
const transactionsKey = "transactions"

// Mutation actions reported to the optional publisher.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Publisher receives a change notification after each fully successful
// mutation. Implementations must tolerate being called from the mutation path;
// failures are logged and swallowed, never surfaced to the caller.
type Publisher interface {
	TransactionChanged(ctx context.Context, action, id string) error
}

// Store owns the in-memory transaction collection and is the sole writer of
// the transactions key. Construct one per session with Open and inject it into
// every consumer; there is no package-level instance.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	items  []core.Transaction
	aggs   *aggregates
	ids    *idGenerator
	events Publisher
	seed   []core.Transaction
	year   int
}

type Option func(*Store)

// WithPublisher attaches a change-feed publisher. A nil publisher is valid and
// means no events are emitted.
func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.events = p }
}

// WithSeed replaces the bundled first-run dataset.
func WithSeed(seed []core.Transaction) Option {
	return func(s *Store) { s.seed = seed }
}

// WithYear pins the cached monthly series to a specific year instead of the
// current calendar year.
func WithYear(year int) Option {
	return func(s *Store) { s.year = year }
}

// Open loads the transaction collection from the persistence adapter. An
// absent key or an unreadable blob is the first-run state: the seed dataset
// becomes the new ground truth and is written back immediately.
func Open(ctx context.Context, store kv.Store, opts ...Option) (*Store, error) {
	s := &Store{
		kv:   store,
		ids:  newIDGenerator(),
		seed: seedTransactions(),
		year: time.Now().Year(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := s.kv.Load(ctx, transactionsKey)
	if err == nil {
		var items []core.Transaction
		if uerr := json.Unmarshal(data, &items); uerr == nil {
			s.items = items
		} else {
			slog.WarnContext(ctx, "Stored transactions unreadable, reseeding", "error", uerr)
			err = uerr
		}
	} else {
		slog.InfoContext(ctx, "No stored transactions, bootstrapping from seed", "reason", err)
	}

	if err != nil {
		s.items = append([]core.Transaction{}, s.seed...)
		if serr := s.persist(ctx, "bootstrap"); serr != nil {
			// Memory is the ground truth from here on; the next successful
			// mutation writes the full collection anyway.
			slog.WarnContext(ctx, "Failed to write seed dataset", "error", serr)
		}
	}
	if s.items == nil {
		s.items = []core.Transaction{}
	}

	s.aggs = recompute(s.items, s.year)
	slog.InfoContext(ctx, "Ledger opened", "transactions", len(s.items), "year", s.year)
	return s, nil
}

// Snapshot reads the persisted collection without constructing a Store. It is
// for read-only consumers in other processes that must see the owner's latest
// write rather than their own stale copy.
func Snapshot(ctx context.Context, store kv.Store) ([]core.Transaction, error) {
	data, err := store.Load(ctx, transactionsKey)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	var items []core.Transaction
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return items, nil
}

// List returns the transactions in insertion order.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

// Get returns the transaction with the given id, or ErrNotFound.
func (s *Store) Get(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ErrNotFound
}

// Add validates the draft, assigns a fresh id, appends the record and writes
// the full collection back. On a persistence failure the record is already
// applied in memory and is returned alongside a *PersistenceError.
func (s *Store) Add(ctx context.Context, draft core.Draft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	tx := draft.Transaction(s.ids.Next())
	s.items = append(s.items, tx)
	s.aggs.apply(tx)
	err := s.persist(ctx, "add")
	s.mu.Unlock()

	if err != nil {
		return tx, err
	}
	s.publish(ctx, ActionCreated, tx.ID)
	return tx, nil
}

// Update merges the patch onto the stored record and re-validates the result
// under the same rules as Add, including type/category coherence: a type
// change with a stale category fails validation instead of corrupting the
// category sums.
func (s *Store) Update(ctx context.Context, id string, patch core.Patch) (core.Transaction, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.Transaction{}, ErrNotFound
	}

	old := s.items[idx]
	merged := old.Apply(patch)
	if err := merged.Draft().Validate(); err != nil {
		s.mu.Unlock()
		return core.Transaction{}, err
	}

	s.items[idx] = merged
	// Remove-old-then-add-new covers amount, category, type and date changes
	// in one pass without a rescan.
	s.aggs.unapply(old)
	s.aggs.apply(merged)
	err := s.persist(ctx, "update")
	s.mu.Unlock()

	if err != nil {
		return merged, err
	}
	s.publish(ctx, ActionUpdated, merged.ID)
	return merged, nil
}

// Remove deletes the record and returns what was removed.
func (s *Store) Remove(ctx context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.Transaction{}, ErrNotFound
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.aggs.unapply(removed)
	err := s.persist(ctx, "remove")
	s.mu.Unlock()

	if err != nil {
		return removed, err
	}
	s.publish(ctx, ActionDeleted, removed.ID)
	return removed, nil
}

// Balance returns income minus expenses over the whole ledger.
func (s *Store) Balance() core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Money{Cents: s.aggs.balance}
}

// ExpensesByCategory returns the per-category expense sums. Categories whose
// sum would be zero are absent.
func (s *Store) ExpensesByCategory() map[string]core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggs.categorySums(core.Expense)
}

// IncomesByCategory returns the per-category income sums.
func (s *Store) IncomesByCategory() map[string]core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggs.categorySums(core.Income)
}

// MonthlyTotals returns the twelve-month series for the given year. A zero
// year means the pinned year (the current calendar year by default). Years
// other than the pinned one are recomputed from the collection on demand.
func (s *Store) MonthlyTotals(year int) MonthlySeries {
	s.mu.Lock()
	defer s.mu.Unlock()
	if year == 0 || year == s.aggs.year {
		return s.aggs.monthly
	}
	return recompute(s.items, year).monthly
}

// ExportCSV serializes the current collection in list order.
func (s *Store) ExportCSV() string {
	return export.CSV(s.List())
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the entire collection through the adapter. Must be called
// with the lock held.
func (s *Store) persist(ctx context.Context, op string) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.kv.Save(ctx, transactionsKey, data); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (s *Store) publish(ctx context.Context, action, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.TransactionChanged(ctx, action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"action", action, "id", id, "error", err)
	}
}
