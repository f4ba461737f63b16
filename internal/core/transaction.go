package core

import (
	"errors"
	"strings"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is the sole persisted entity of the ledger. The ID is
	// assigned by the ledger store at creation and never changes.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type"`
	}

	// Draft is a transaction before the ledger has assigned it an id.
	Draft struct {
		Amount      Money
		Description string
		Category    string
		Date        Date
		Type        TransactionType
	}

	// Patch carries a partial update; nil fields are left untouched.
	Patch struct {
		Amount      *Money
		Description *string
		Category    *string
		Date        *Date
		Type        *TransactionType
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDate      = errors.New("invalid date")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (d Draft) Validate() error {
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(d.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if err := d.Date.Validate(); err != nil {
		return err
	}
	// Unknown categories are accepted on purpose: datasets written by older
	// versions may carry labels outside the current enumeration. They render
	// verbatim and aggregate under their own bucket.
	return nil
}

// Transaction materializes the draft under the given id.
func (d Draft) Transaction(id string) Transaction {
	return Transaction{
		ID:          id,
		Amount:      d.Amount,
		Description: d.Description,
		Category:    d.Category,
		Date:        d.Date,
		Type:        d.Type,
	}
}

// Draft returns the id-less view of the record, used to re-validate merged
// updates under the same rules as creation.
func (t Transaction) Draft() Draft {
	return Draft{
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date,
		Type:        t.Type,
	}
}

// Apply merges the patch onto a copy of the record. Every field except the id
// can be replaced; validation of the merged result is the caller's job.
func (t Transaction) Apply(p Patch) Transaction {
	out := t
	if p.Amount != nil {
		out.Amount = *p.Amount
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	return out
}
