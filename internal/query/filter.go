// Package query provides read-only projections over a ledger snapshot. It is
// stateless with respect to the ledger: nothing here mutates the input.
package query

import (
	"sort"
	"strings"

	"tally/internal/core"
)

// TypeAll disables the type predicate.
const TypeAll = "all"

// Params narrows a transaction list. Zero values disable each predicate; a
// record passes only when it satisfies all three.
type Params struct {
	Search   string // case-insensitive substring on description or category label
	Type     string // "all", "income" or "expense"
	Category string // exact category match, empty = no filter
}

// Filter returns the records satisfying the parameters, in input order.
func Filter(items []core.Transaction, p Params) []core.Transaction {
	search := strings.ToLower(strings.TrimSpace(p.Search))
	out := make([]core.Transaction, 0, len(items))
	for _, t := range items {
		if !matchesSearch(t, search) {
			continue
		}
		if p.Type != "" && p.Type != TypeAll && string(t.Type) != p.Type {
			continue
		}
		if p.Category != "" && t.Category != p.Category {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t core.Transaction, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), search) ||
		strings.Contains(strings.ToLower(t.CategoryLabel()), search)
}

// Recent returns the n most recent records by date, newest first. Records
// sharing a date keep their insertion order. Pass n <= 0 for no limit.
func Recent(items []core.Transaction, n int) []core.Transaction {
	out := append([]core.Transaction(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Time.After(out[j].Date.Time)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
