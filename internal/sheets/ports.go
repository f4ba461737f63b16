// Package sheets holds the outbound ports for mirroring ledger rows to an
// external spreadsheet.
package sheets

import (
	"context"

	"tally/internal/core"
)

// RowAppender mirrors one transaction to an external sheet and returns a
// reference to the appended row.
type RowAppender interface {
	Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
}
