package ledger

import (
	"tally/internal/core"
)

// MonthlySeries is the twelve-bucket income/expense time series for one year.
// Buckets are indexed by zero-based calendar month; transactions dated outside
// the year are excluded entirely.
type MonthlySeries struct {
	Year     int            `json:"year"`
	Expenses [12]core.Money `json:"expenses"`
	Incomes  [12]core.Money `json:"incomes"`
}

// aggregates is the derived-view cache: always a pure function of the current
// transaction list. The live path maintains it with incremental deltas; full
// recompute is the reference the two must agree with.
type aggregates struct {
	balance  int64            // cents
	expenses map[string]int64 // category -> cents
	incomes  map[string]int64
	year     int // the year the monthly series is pinned to
	monthly  MonthlySeries
}

func newAggregates(year int) *aggregates {
	return &aggregates{
		expenses: make(map[string]int64),
		incomes:  make(map[string]int64),
		year:     year,
		monthly:  MonthlySeries{Year: year},
	}
}

// recompute builds the cache from scratch in one linear scan. It initializes
// the cache on load and serves as the reference implementation in tests.
func recompute(items []core.Transaction, year int) *aggregates {
	a := newAggregates(year)
	for _, t := range items {
		a.apply(t)
	}
	return a
}

// apply adds one record's contribution to every view.
func (a *aggregates) apply(t core.Transaction) {
	cents := t.Amount.Cents
	if t.Type == core.Income {
		a.balance += cents
		a.incomes[t.Category] += cents
	} else {
		a.balance -= cents
		a.expenses[t.Category] += cents
	}
	if t.Date.Year() == a.year {
		m := t.Date.Month() - 1
		if t.Type == core.Income {
			a.monthly.Incomes[m].Cents += cents
		} else {
			a.monthly.Expenses[m].Cents += cents
		}
	}
}

// unapply subtracts one record's contribution, using its value before
// deletion. A category bucket that drops to zero or below is removed rather
// than kept: "absent" and "present with 0" are the same display case.
func (a *aggregates) unapply(t core.Transaction) {
	cents := t.Amount.Cents
	if t.Type == core.Income {
		a.balance -= cents
		a.incomes[t.Category] -= cents
		if a.incomes[t.Category] <= 0 {
			delete(a.incomes, t.Category)
		}
	} else {
		a.balance += cents
		a.expenses[t.Category] -= cents
		if a.expenses[t.Category] <= 0 {
			delete(a.expenses, t.Category)
		}
	}
	if t.Date.Year() == a.year {
		m := t.Date.Month() - 1
		if t.Type == core.Income {
			a.monthly.Incomes[m].Cents -= cents
		} else {
			a.monthly.Expenses[m].Cents -= cents
		}
	}
}

func (a *aggregates) categorySums(typ core.TransactionType) map[string]core.Money {
	src := a.expenses
	if typ == core.Income {
		src = a.incomes
	}
	out := make(map[string]core.Money, len(src))
	for category, cents := range src {
		out[category] = core.Money{Cents: cents}
	}
	return out
}
