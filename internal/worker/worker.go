// Package worker runs the background consumers of the ledger: the spreadsheet
// mirror fed by the change feed and the scheduled CSV snapshots.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/events"
	"tally/internal/export"
	"tally/internal/kv"
	"tally/internal/ledger"
	"tally/internal/sheets"
)

// Mirror appends newly created transactions to an external spreadsheet. It
// reads the persisted collection on every event so it sees the engine
// process's latest write, not a stale in-memory copy.
type Mirror struct {
	store    kv.Store
	appender sheets.RowAppender
}

func NewMirror(store kv.Store, appender sheets.RowAppender) *Mirror {
	return &Mirror{store: store, appender: appender}
}

// HandleEvent processes one change-feed message. The mirror is append-only:
// updates and deletes are acknowledged and skipped.
func (m *Mirror) HandleEvent(ctx context.Context, ev *events.LedgerEvent) error {
	if ev.Action != ledger.ActionCreated {
		slog.DebugContext(ctx, "Skipping non-create event", "action", ev.Action, "id", ev.ID)
		return nil
	}

	items, err := ledger.Snapshot(ctx, m.store)
	if err != nil {
		return fmt.Errorf("read ledger snapshot: %w", err)
	}

	for _, t := range items {
		if t.ID == ev.ID {
			rowRef, err := m.appender.Append(ctx, t)
			if err != nil {
				return fmt.Errorf("append transaction %s: %w", t.ID, err)
			}
			slog.InfoContext(ctx, "Transaction mirrored", "id", t.ID, "row", rowRef)
			return nil
		}
	}

	// The record was removed between the event and now. Nothing to mirror.
	slog.WarnContext(ctx, "Transaction gone before mirroring", "id", ev.ID)
	return nil
}

// Snapshotter writes dated CSV snapshots of the full ledger to a directory.
type Snapshotter struct {
	store kv.Store
	dir   string
}

func NewSnapshotter(store kv.Store, dir string) *Snapshotter {
	return &Snapshotter{store: store, dir: dir}
}

func (s *Snapshotter) WriteSnapshot(ctx context.Context) error {
	items, err := ledger.Snapshot(ctx, s.store)
	if err != nil {
		return fmt.Errorf("read ledger snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("ledger-%s.csv", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(path, []byte(export.CSV(items)), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Ledger snapshot written", "path", path, "transactions", len(items))
	return nil
}
