package query

import (
	"reflect"
	"testing"

	"tally/internal/core"
)

func tx(id, description, category string, typ core.TransactionType, date core.Date) core.Transaction {
	return core.Transaction{
		ID:          id,
		Amount:      core.Money{Cents: 100},
		Description: description,
		Category:    category,
		Date:        date,
		Type:        typ,
	}
}

func ids(items []core.Transaction) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	items := []core.Transaction{
		tx("1", "Movie tickets", "entertainment", core.Expense, core.NewDate(2023, 4, 1)),
		tx("2", "Groceries", "food", core.Expense, core.NewDate(2023, 4, 2)),
		tx("3", "Monthly salary", "salary", core.Income, core.NewDate(2023, 4, 3)),
		tx("4", "Dinner out", "food", core.Expense, core.NewDate(2023, 4, 4)),
	}

	cases := []struct {
		name string
		p    Params
		want []string
	}{
		{"no predicates", Params{}, []string{"1", "2", "3", "4"}},
		{"type all is no-op", Params{Type: TypeAll}, []string{"1", "2", "3", "4"}},
		{"search description", Params{Search: "movie"}, []string{"1"}},
		{"search matches category label", Params{Search: "dining"}, []string{"2", "4"}},
		{"search is trimmed", Params{Search: "  movie  "}, []string{"1"}},
		{"type only", Params{Type: "income"}, []string{"3"}},
		{"category only", Params{Category: "food"}, []string{"2", "4"}},
		{"all three must hold", Params{Search: "dinner", Type: "expense", Category: "food"}, []string{"4"}},
		{"conjunction can be empty", Params{Search: "movie", Category: "food"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(items, tc.p))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Filter(%+v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestFilterKeepsInputOrder(t *testing.T) {
	items := []core.Transaction{
		tx("b", "Coffee", "food", core.Expense, core.NewDate(2023, 4, 9)),
		tx("a", "Coffee beans", "food", core.Expense, core.NewDate(2023, 4, 1)),
	}
	got := ids(Filter(items, Params{Search: "coffee"}))
	if !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("order changed: %v", got)
	}
}

func TestRecent(t *testing.T) {
	items := []core.Transaction{
		tx("old", "First", "food", core.Expense, core.NewDate(2023, 1, 1)),
		tx("mid1", "Second", "food", core.Expense, core.NewDate(2023, 3, 1)),
		tx("mid2", "Third", "food", core.Expense, core.NewDate(2023, 3, 1)),
		tx("new", "Fourth", "food", core.Expense, core.NewDate(2023, 6, 1)),
	}

	got := ids(Recent(items, 3))
	// Ties keep insertion order.
	if !reflect.DeepEqual(got, []string{"new", "mid1", "mid2"}) {
		t.Fatalf("Recent(3) = %v", got)
	}

	if got := ids(Recent(items, 0)); len(got) != 4 {
		t.Fatalf("Recent(0) should not truncate, got %v", got)
	}

	// The input stays untouched.
	if items[0].ID != "old" {
		t.Fatal("input slice reordered")
	}
}
