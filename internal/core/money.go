// Package core holds the ledger's domain model: transactions, calendar dates,
// exact decimal amounts and the category taxonomy.
package core

import (
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// Money is an exact decimal quantity stored as integer cents. All aggregation
// happens on cents, so repeated adds and removes never accumulate float drift.
// The sign is carried by the transaction type; stored amounts are always
// positive, but derived values such as the balance may go negative.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }
func (m Money) Neg() Money        { return Money{Cents: -m.Cents} }

// String renders the amount as a plain decimal with trailing zeros trimmed:
// 250000 cents -> "2500", 1230 cents -> "12.3", 1234 cents -> "12.34".
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	var s string
	switch {
	case frac == 0:
		s = strconv.FormatInt(whole, 10)
	case frac%10 == 0:
		s = strconv.FormatInt(whole, 10) + "." + strconv.FormatInt(frac/10, 10)
	default:
		s = strconv.FormatInt(whole, 10) + "." + fmt.Sprintf("%02d", frac)
	}
	if neg {
		s = "-" + s
	}
	return s
}

// MarshalJSON emits the amount as a bare JSON number so the persisted shape
// stays `"amount": 2500` rather than an object or string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse amount %s: %w", data, ErrInvalidAmount)
	}
	m.Cents = int64(math.Round(v * 100))
	return nil
}

// ParseAmount converts a user-supplied decimal string to Money with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted. Signed, zero and malformed inputs are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 1234 cents
//	ParseAmount("12,345") -> 1235 cents (rounds up)
func ParseAmount(s string) (Money, error) {
	intPart, fracPart, err := splitDecimal(s)
	if err != nil {
		return Money{}, err
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxWhole = (1<<63 - 1) / 100
	if iv > maxWhole {
		return Money{}, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}

func splitDecimal(s string) (intPart, fracPart string, err error) {
	normalized := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			continue
		case r == ',':
			normalized = append(normalized, '.')
		default:
			normalized = append(normalized, r)
		}
	}
	if len(normalized) == 0 {
		return "", "", ErrInvalidAmount
	}
	if normalized[0] == '+' || normalized[0] == '-' {
		return "", "", ErrInvalidAmount
	}
	dot := -1
	for i, r := range normalized {
		if r == '.' {
			if dot >= 0 {
				return "", "", ErrInvalidAmount
			}
			dot = i
			continue
		}
		if !unicode.IsDigit(r) {
			return "", "", ErrInvalidAmount
		}
	}
	if dot < 0 {
		return string(normalized), "", nil
	}
	intPart = string(normalized[:dot])
	fracPart = string(normalized[dot+1:])
	if intPart == "" {
		intPart = "0"
	}
	return intPart, fracPart, nil
}
