package model

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in paise (1/100 rupee). Columns store it as NUMERIC(10,2)
// and JSON renders it in rupees, so sums never accumulate float error.
type Money int64

// Rupees builds a Money from a rupee value, rounding half away from zero to
// the nearest paisa.
func Rupees(v float64) Money {
	return Money(decimal.NewFromFloat(v).Shift(2).Round(0).IntPart())
}

func (m Money) asDecimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Float returns the amount in rupees.
func (m Money) Float() float64 {
	return m.asDecimal().InexactFloat64()
}

// String renders the amount in rupees with two decimals, e.g. "3000.00".
func (m Money) String() string {
	return m.asDecimal().StringFixed(2)
}

// ParseMoney parses a decimal rupee string such as "2500", "2500.5" or "2500.50".
// Amounts with non-zero digits past the paisa are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse money: empty value")
	}
	if _, frac, ok := strings.Cut(s, "."); ok && strings.ContainsAny(frac, "+-") {
		return 0, fmt.Errorf("parse money %q: sign inside fraction", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	if !d.Equal(d.Truncate(2)) {
		return 0, fmt.Errorf("parse money %q: more than two decimal places", s)
	}
	paise := d.Shift(2)
	if !paise.BigInt().IsInt64() {
		return 0, fmt.Errorf("parse money %q: out of range", s)
	}
	return Money(paise.IntPart()), nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		*m = Rupees(v)
		return nil
	case []byte:
		p, err := ParseMoney(string(v))
		if err != nil {
			return err
		}
		*m = p
		return nil
	case string:
		p, err := ParseMoney(v)
		if err != nil {
			return err
		}
		*m = p
		return nil
	default:
		return fmt.Errorf("scan money: unsupported type %T", src)
	}
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// MarshalJSON renders rupees as a JSON number, trimming trailing zero decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.asDecimal().String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string in rupees.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*m = 0
		return nil
	}
	p, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = p
	return nil
}
