package ledger

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tally/internal/core"
)

// seedTransactions is the bundled first-run dataset, written back the first
// time the persistence key is found absent or unreadable. It covers every
// category-type pair the dashboard shows out of the box.
func seedTransactions() []core.Transaction {
	seed := []struct {
		id, description, category, date string
		cents                           int64
		typ                             core.TransactionType
	}{
		{"1", "Monthly Salary", "salary", "2023-04-01", 250000, core.Income},
		{"2", "Freelance Project", "freelance", "2023-04-05", 50000, core.Income},
		{"3", "Grocery Shopping", "food", "2023-04-06", 10000, core.Expense},
		{"4", "Electricity Bill", "bills", "2023-04-10", 8000, core.Expense},
		{"5", "Weekend Trip", "travel", "2023-04-15", 20000, core.Expense},
		{"6", "New Clothes", "shopping", "2023-04-18", 15000, core.Expense},
		{"7", "Restaurant Dinner", "food", "2023-04-20", 7000, core.Expense},
		{"8", "Movie Night", "entertainment", "2023-04-23", 5000, core.Expense},
		{"9", "Medical Checkup", "health", "2023-04-25", 12000, core.Expense},
		{"10", "Online Course", "education", "2023-04-28", 30000, core.Expense},
	}

	out := make([]core.Transaction, len(seed))
	for i, s := range seed {
		date, _ := core.ParseDate(s.date)
		out[i] = core.Transaction{
			ID:          s.id,
			Amount:      core.Money{Cents: s.cents},
			Description: s.description,
			Category:    s.category,
			Date:        date,
			Type:        s.typ,
		}
	}
	return out
}

type seedRecord struct {
	ID          string  `yaml:"id"`
	Amount      float64 `yaml:"amount"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Date        string  `yaml:"date"`
	Type        string  `yaml:"type"`
}

// LoadSeedFile reads a YAML seed dataset used in place of the bundled one.
func LoadSeedFile(path string) ([]core.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var records []seedRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]core.Transaction, 0, len(records))
	for i, r := range records {
		date, err := core.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("seed-%d", i+1)
		}
		tx := core.Transaction{
			ID:          id,
			Amount:      core.Money{Cents: int64(r.Amount*100 + 0.5)},
			Description: r.Description,
			Category:    r.Category,
			Date:        date,
			Type:        core.TransactionType(r.Type),
		}
		if err := tx.Draft().Validate(); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
		out = append(out, tx)
	}
	return out, nil
}
