package core

// Category taxonomy. Two closed enumerations, one per transaction type, each
// with a human-readable label. Values outside the enumeration are tolerated
// everywhere: they validate, they aggregate under their own bucket, and they
// display verbatim. That keeps datasets written by newer or older versions
// loadable without migration.

// CategoryOther is the fallback bucket both enumerations share.
const CategoryOther = "other"

var expenseCategoryLabels = map[string]string{
	"food":          "Food & Dining",
	"bills":         "Bills & Utilities",
	"travel":        "Travel",
	"shopping":      "Shopping",
	"entertainment": "Entertainment",
	"health":        "Health & Medical",
	"education":     "Education",
	CategoryOther:   "Other",
}

var incomeCategoryLabels = map[string]string{
	"salary":      "Salary",
	"freelance":   "Freelance",
	"gifts":       "Gifts",
	"investments": "Investments",
	CategoryOther: "Other",
}

// ExpenseCategories returns the closed expense enumeration.
func ExpenseCategories() []string {
	return categoriesOf(expenseCategoryLabels)
}

// IncomeCategories returns the closed income enumeration.
func IncomeCategories() []string {
	return categoriesOf(incomeCategoryLabels)
}

func categoriesOf(labels map[string]string) []string {
	out := make([]string, 0, len(labels))
	for c := range labels {
		out = append(out, c)
	}
	return out
}

// KnownCategory reports whether the category belongs to the enumeration
// associated with the type.
func KnownCategory(typ TransactionType, category string) bool {
	_, ok := labelsFor(typ)[category]
	return ok
}

// CategoryLabel returns the display label for a category. Unrecognized
// categories come back verbatim.
func CategoryLabel(typ TransactionType, category string) string {
	if label, ok := labelsFor(typ)[category]; ok {
		return label
	}
	return category
}

// CategoryLabel returns the record's display label.
func (t Transaction) CategoryLabel() string {
	return CategoryLabel(t.Type, t.Category)
}

func labelsFor(typ TransactionType) map[string]string {
	if typ == Income {
		return incomeCategoryLabels
	}
	return expenseCategoryLabels
}
