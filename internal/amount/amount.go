// Package amount provides exact integer arithmetic over stroop-denominated
// amount strings and conversion to human-readable decimal form.
package amount

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits in the human-readable
// representation of an amount (1 unit = 10^7 stroops).
const Precision = 7

// Parse parses a stroop amount string into a big integer.
// An empty string is treated as zero.
func Parse(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// MustParse parses a stroop amount string and panics on malformed input.
// Intended for literals in tests and fixtures.
func MustParse(s string) *big.Int {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Delta returns after − before as a stroop amount string.
// The sign of the result indicates the direction of the change.
func Delta(before, after string) (*big.Int, error) {
	b, err := Parse(before)
	if err != nil {
		return nil, fmt.Errorf("before: %w", err)
	}
	a, err := Parse(after)
	if err != nil {
		return nil, fmt.Errorf("after: %w", err)
	}
	return a.Sub(a, b), nil
}

// String formats a big integer as a stroop amount string.
// A nil value formats as "0".
func String(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// IsZero reports whether a stroop amount string denotes zero.
// An empty string denotes zero; malformed strings are not zero-valued.
func IsZero(s string) bool {
	if s == "" {
		return true
	}
	v, err := Parse(s)
	if err != nil {
		return false
	}
	return v.Sign() == 0
}

// Abs returns the absolute value of v as a new big integer.
func Abs(v *big.Int) *big.Int {
	return new(big.Int).Abs(v)
}

// ToDecimal converts a stroop amount string to its human-readable decimal
// form with trailing fractional zeros removed.
func ToDecimal(stroops string) (string, error) {
	v, err := Parse(stroops)
	if err != nil {
		return "", err
	}
	return TrimZeros(decimal.NewFromBigInt(v, -Precision).String()), nil
}

// TrimZeros removes trailing fractional zeros from a decimal string,
// dropping the decimal point entirely when nothing remains after it.
func TrimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
