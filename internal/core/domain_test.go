package core

import (
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatal("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatal("expected error for negative")
	}
}

func TestDraftValidate(t *testing.T) {
	good := Draft{
		Amount:      Money{Cents: 10000},
		Description: "Groceries",
		Category:    "food",
		Date:        NewDate(2023, 4, 6),
		Type:        Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Unrecognized categories pass validation; they display verbatim.
	unknown := good
	unknown.Category = "crypto"
	if err := unknown.Validate(); err != nil {
		t.Fatalf("unknown category should validate, got %v", err)
	}

	bads := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"zero amount", Draft{Description: "a", Category: "food", Date: NewDate(2025, 1, 1), Type: Expense}, ErrInvalidAmount},
		{"empty description", Draft{Amount: Money{Cents: 1}, Description: "  ", Category: "food", Date: NewDate(2025, 1, 1), Type: Expense}, ErrEmptyDescription},
		{"bad type", Draft{Amount: Money{Cents: 1}, Description: "a", Category: "food", Date: NewDate(2025, 1, 1), Type: "transfer"}, ErrInvalidType},
		{"zero date", Draft{Amount: Money{Cents: 1}, Description: "a", Category: "food", Type: Expense}, ErrInvalidDate},
	}
	for _, tc := range bads {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestApplyPatch(t *testing.T) {
	tx := Transaction{
		ID:          "1",
		Amount:      Money{Cents: 10000},
		Description: "Groceries",
		Category:    "food",
		Date:        NewDate(2023, 4, 6),
		Type:        Expense,
	}

	amount := Money{Cents: 15000}
	merged := tx.Apply(Patch{Amount: &amount})

	if merged.ID != "1" {
		t.Fatalf("id changed: %s", merged.ID)
	}
	if merged.Amount.Cents != 15000 {
		t.Fatalf("amount = %d, want 15000", merged.Amount.Cents)
	}
	if merged.Description != "Groceries" || merged.Category != "food" {
		t.Fatal("untouched fields changed")
	}
	if tx.Amount.Cents != 10000 {
		t.Fatal("original mutated")
	}
}

func TestCategoryLabel(t *testing.T) {
	cases := []struct {
		typ      TransactionType
		category string
		want     string
	}{
		{Expense, "food", "Food & Dining"},
		{Expense, "entertainment", "Entertainment"},
		{Income, "salary", "Salary"},
		{Income, "other", "Other"},
		{Expense, "crypto", "crypto"}, // unknown stays verbatim
	}
	for _, tc := range cases {
		if got := CategoryLabel(tc.typ, tc.category); got != tc.want {
			t.Errorf("CategoryLabel(%s, %s) = %q, want %q", tc.typ, tc.category, got, tc.want)
		}
	}

	if KnownCategory(Expense, "crypto") {
		t.Error("crypto should not be a known expense category")
	}
	if !KnownCategory(Income, "freelance") {
		t.Error("freelance should be a known income category")
	}
}
