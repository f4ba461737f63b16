// Package export serializes ledger snapshots to textual tabular formats.
package export

import (
	"strings"

	"tally/internal/core"
)

// CSV renders the collection as ID,Amount,Description,Category,Date,Type rows
// in list order. Descriptions are wrapped in double quotes without escaping
// embedded quotes or commas; the limitation is inherited from the format
// existing consumers already parse, so it is preserved rather than fixed.
func CSV(items []core.Transaction) string {
	var b strings.Builder
	b.WriteString("ID,Amount,Description,Category,Date,Type\n")
	for i, t := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(t.ID)
		b.WriteByte(',')
		b.WriteString(t.Amount.String())
		b.WriteString(`,"`)
		b.WriteString(t.Description)
		b.WriteString(`",`)
		b.WriteString(t.Category)
		b.WriteByte(',')
		b.WriteString(t.Date.String())
		b.WriteByte(',')
		b.WriteString(string(t.Type))
	}
	return b.String()
}
