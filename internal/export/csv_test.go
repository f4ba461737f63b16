package export

import (
	"strings"
	"testing"

	"tally/internal/core"
)

func TestCSV(t *testing.T) {
	items := []core.Transaction{
		{
			ID:          "1",
			Amount:      core.Money{Cents: 250000},
			Description: "Monthly Salary",
			Category:    "salary",
			Date:        core.NewDate(2023, 4, 1),
			Type:        core.Income,
		},
		{
			ID:          "3",
			Amount:      core.Money{Cents: 10050},
			Description: "Groceries, weekly",
			Category:    "food",
			Date:        core.NewDate(2023, 4, 6),
			Type:        core.Expense,
		},
	}

	got := CSV(items)
	want := "ID,Amount,Description,Category,Date,Type\n" +
		`1,2500,"Monthly Salary",salary,2023-04-01,income` + "\n" +
		`3,100.5,"Groceries, weekly",food,2023-04-06,expense`
	if got != want {
		t.Fatalf("CSV mismatch:\ngot:  %q\nwant: %q", got, want)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatal("no trailing newline expected")
	}
}

func TestCSVEmpty(t *testing.T) {
	if got := CSV(nil); got != "ID,Amount,Description,Category,Date,Type\n" {
		t.Fatalf("empty export = %q", got)
	}
}

func TestCSVQuotesStayVerbatim(t *testing.T) {
	items := []core.Transaction{{
		ID:          "9",
		Amount:      core.Money{Cents: 500},
		Description: `The "good" cafe`,
		Category:    "food",
		Date:        core.NewDate(2023, 5, 1),
		Type:        core.Expense,
	}}
	got := CSV(items)
	if !strings.Contains(got, `"The "good" cafe"`) {
		t.Fatalf("embedded quotes must pass through unescaped: %q", got)
	}
}
