package ledger

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"tally/internal/core"
)

// equal compares two caches field by field, treating empty and nil category
// maps as the same thing.
func aggregatesEqual(a, b *aggregates) bool {
	if a.balance != b.balance || a.year != b.year || a.monthly != b.monthly {
		return false
	}
	if len(a.expenses) != len(b.expenses) || len(a.incomes) != len(b.incomes) {
		return false
	}
	return reflect.DeepEqual(a.expenses, b.expenses) &&
		reflect.DeepEqual(a.incomes, b.incomes)
}

func TestIncrementalMatchesRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	categories := map[core.TransactionType][]string{
		core.Expense: core.ExpenseCategories(),
		core.Income:  core.IncomeCategories(),
	}

	var items []core.Transaction
	live := newAggregates(2023)

	randomTx := func(id int) core.Transaction {
		typ := core.Expense
		if rng.Intn(2) == 0 {
			typ = core.Income
		}
		pool := categories[typ]
		year := 2022 + rng.Intn(3)
		return core.Transaction{
			ID:       fmt.Sprintf("tx-%d", id),
			Amount:   core.Money{Cents: int64(1 + rng.Intn(500000))},
			Category: pool[rng.Intn(len(pool))],
			Date:     core.NewDate(year, 1+rng.Intn(12), 1+rng.Intn(28)),
			Type:     typ,
		}
	}

	for op := 0; op < 500; op++ {
		switch {
		case len(items) == 0 || rng.Intn(3) > 0:
			tx := randomTx(op)
			items = append(items, tx)
			live.apply(tx)
		case rng.Intn(2) == 0:
			i := rng.Intn(len(items))
			old := items[i]
			replacement := randomTx(op)
			replacement.ID = old.ID
			items[i] = replacement
			live.unapply(old)
			live.apply(replacement)
		default:
			i := rng.Intn(len(items))
			old := items[i]
			items = append(items[:i], items[i+1:]...)
			live.unapply(old)
		}

		if ref := recompute(items, 2023); !aggregatesEqual(live, ref) {
			t.Fatalf("op %d: incremental cache diverged from recompute\nlive: %+v\nref:  %+v", op, live, ref)
		}
	}
}

func TestCategoryPruning(t *testing.T) {
	a := newAggregates(2023)
	tx := core.Transaction{
		ID:       "1",
		Amount:   core.Money{Cents: 10000},
		Category: "food",
		Date:     core.NewDate(2023, 4, 6),
		Type:     core.Expense,
	}

	a.apply(tx)
	if a.expenses["food"] != 10000 {
		t.Fatalf("expense.food = %d, want 10000", a.expenses["food"])
	}

	a.unapply(tx)
	if _, ok := a.expenses["food"]; ok {
		t.Fatal("zeroed bucket must be deleted, not kept at 0")
	}
	if a.balance != 0 {
		t.Fatalf("balance = %d, want 0", a.balance)
	}
}

func TestCategorySumsEqualBalance(t *testing.T) {
	items := seedTransactions()
	a := recompute(items, 2023)

	var incomes, expenses int64
	for _, c := range a.incomes {
		incomes += c
	}
	for _, c := range a.expenses {
		expenses += c
	}
	if a.balance != incomes-expenses {
		t.Fatalf("balance %d != incomes %d - expenses %d", a.balance, incomes, expenses)
	}
}

func TestMonthlySeriesCoversOnlyPinnedYear(t *testing.T) {
	items := []core.Transaction{
		{ID: "1", Amount: core.Money{Cents: 100}, Category: "food", Date: core.NewDate(2022, 12, 31), Type: core.Expense},
		{ID: "2", Amount: core.Money{Cents: 200}, Category: "food", Date: core.NewDate(2023, 1, 1), Type: core.Expense},
		{ID: "3", Amount: core.Money{Cents: 300}, Category: "salary", Date: core.NewDate(2024, 1, 1), Type: core.Income},
	}
	a := recompute(items, 2023)

	var expenses, incomes int64
	for i := 0; i < 12; i++ {
		expenses += a.monthly.Expenses[i].Cents
		incomes += a.monthly.Incomes[i].Cents
	}
	if expenses != 200 || incomes != 0 {
		t.Fatalf("series sums = %d/%d, want 200/0", expenses, incomes)
	}
	// The balance still covers every year.
	if a.balance != 300-100-200 {
		t.Fatalf("balance = %d, want 0", a.balance)
	}
}
