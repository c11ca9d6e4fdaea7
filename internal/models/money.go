package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CurrencyLabel is the only currency the hotel bills in
const CurrencyLabel = "PHP"

// ErrInvalidAmount indicates a money string could not be parsed
var ErrInvalidAmount = errors.New("invalid money amount")

// Centavos is a PHP amount in minor units. All pricing arithmetic stays in
// int64 centavos so totals are exact across platforms.
type Centavos int64

// PHP builds an amount from whole pesos.
func PHP(pesos int64) Centavos {
	return Centavos(pesos * 100)
}

// ParseAmount parses a decimal string such as "2500" or "2500.50" into
// centavos. At most two fraction digits are accepted.
func ParseAmount(s string) (Centavos, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole = s[:idx]
		frac = s[idx+1:]
	}
	if whole == "" || len(frac) > 2 {
		return 0, ErrInvalidAmount
	}

	pesos, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	cents := int64(0)
	if frac != "" {
		padded := frac + strings.Repeat("0", 2-len(frac))
		cents, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	amount := Centavos(pesos*100 + cents)
	if negative {
		amount = -amount
	}
	return amount, nil
}

// Percent returns pct% of the amount, rounded half-up.
func (c Centavos) Percent(pct int64) Centavos {
	raw := int64(c) * pct
	q := raw / 100
	if raw%100 >= 50 {
		q++
	}
	return Centavos(q)
}

// Mul scales the amount by an integer factor (persons, days, nights).
func (c Centavos) Mul(n int64) Centavos {
	return Centavos(int64(c) * n)
}

// String renders the bare decimal value with two places, e.g. "3000.00".
func (c Centavos) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Format renders the amount with the currency label, e.g. "PHP 3000.00".
func (c Centavos) Format() string {
	return CurrencyLabel + " " + c.String()
}
