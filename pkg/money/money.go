// Package money provides currency-safe financial arithmetic for the family
// finance plan. Amounts are carried as integer minor units (the CFA franc has
// no minor fraction, so minor units are whole francs) and parsed through
// shopspring/decimal so dirty spreadsheet values never lose precision.
package money

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency codes used by the plan (ISO-4217)
const (
	XAF = "XAF" // Central African CFA franc (the product's base currency)
	EUR = "EUR" // Euro
	CHF = "CHF" // Swiss franc
)

// ErrUnparseable is returned when a string amount cannot be interpreted.
var ErrUnparseable = errors.New("money: unparseable amount")

// Money represents a monetary value with currency. It wraps go-money for safe
// arithmetic and shopspring/decimal for precise conversions.
type Money struct {
	m *money.Money
}

// New creates a Money value from minor units and a currency code.
func New(amountMinor int64, currencyCode string) *Money {
	return &Money{m: money.New(amountMinor, currencyCode)}
}

// Zero returns a zero Money value for the given currency.
func Zero(currencyCode string) *Money {
	return New(0, currencyCode)
}

// NewFromDecimal creates Money from a decimal value, rounding to the
// currency's minor unit.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(XAF)
	}
	multiplier := decimal.New(1, int32(currency.Fraction))
	minor := amount.Mul(multiplier).Round(0).IntPart()
	return New(minor, currencyCode)
}

// NewFromString parses a string amount. It accepts the formats found in the
// family's exported spreadsheets: "1000000", "1 000 000", "1,000,000.50" and
// the European "1.234,56". Currency symbols and the FCFA suffix are stripped.
func NewFromString(amount, currencyCode string) (*Money, error) {
	d, err := ParseDecimal(amount)
	if err != nil {
		return nil, err
	}
	return NewFromDecimal(d, currencyCode), nil
}

// ParseDecimal interprets a raw amount string as a decimal value.
func ParseDecimal(amount string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amount)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	for _, noise := range []string{"FCFA", "XAF", "€", "CHF", "$"} {
		cleaned = strings.ReplaceAll(cleaned, noise, "")
	}
	if cleaned == "" {
		return decimal.Zero, ErrUnparseable
	}

	// European format 1.234,56: comma is the decimal separator when it
	// appears after the last dot.
	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	if lastComma > lastDot {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrUnparseable
	}
	return d, nil
}

// LenientMinor coerces a raw amount string to minor units. Unparseable input
// degrades to 0 rather than erroring, per the ledger's tolerant import policy.
func LenientMinor(amount, currencyCode string) int64 {
	m, err := NewFromString(amount, currencyCode)
	if err != nil {
		return 0
	}
	return m.Amount()
}

// Amount returns the amount in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsNegative returns true if the amount is less than zero.
func (m *Money) IsNegative() bool {
	return m != nil && m.m != nil && m.m.IsNegative()
}

// Abs returns the absolute value.
func (m *Money) Abs() *Money {
	if m == nil || m.m == nil {
		return Zero(XAF)
	}
	return &Money{m: m.m.Absolute()}
}

// Negate returns the negated value.
func (m *Money) Negate() *Money {
	if m == nil || m.m == nil {
		return Zero(XAF)
	}
	return &Money{m: m.m.Negative()}
}

// Add adds two Money values. Returns an error if currencies don't match.
func (m *Money) Add(other *Money) (*Money, error) {
	if m == nil || m.m == nil {
		return other, nil
	}
	if other == nil || other.m == nil {
		return m, nil
	}
	result, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: result}, nil
}

// MustAdd adds two Money values, panics if currencies don't match.
func (m *Money) MustAdd(other *Money) *Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// ToDecimal converts to decimal.Decimal in major units.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	currency := m.m.Currency()
	d := decimal.NewFromInt(m.m.Amount())
	divisor := decimal.New(1, int32(currency.Fraction))
	return d.Div(divisor)
}

// ToFloat64 converts to float64 (display and ratio computation only).
func (m *Money) ToFloat64() float64 {
	return m.ToDecimal().InexactFloat64()
}

// Display returns a formatted string using the currency's locale rules.
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return money.New(0, XAF).Display()
	}
	return m.m.Display()
}

// FormatFCFA renders minor units the way the family's reports do:
// "1 234 567 FCFA".
func FormatFCFA(amountMinor int64) string {
	neg := amountMinor < 0
	if neg {
		amountMinor = -amountMinor
	}
	digits := decimal.NewFromInt(amountMinor).String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String() + " FCFA"
	if neg {
		out = "-" + out
	}
	return out
}

// MarshalJSON renders the value with its display form for API consumers.
func (m *Money) MarshalJSON() ([]byte, error) {
	if m == nil || m.m == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(map[string]interface{}{
		"amount":   m.Amount(),
		"currency": m.Currency(),
		"display":  m.Display(),
	})
}

// UnmarshalJSON restores a value from its amount and currency fields.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Currency == "" {
		v.Currency = XAF
	}
	m.m = money.New(v.Amount, v.Currency)
	return nil
}
