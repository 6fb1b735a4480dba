package models

import (
	"math"
	"strconv"
	"strings"
)

// Amount decodes a JSON value that may be a number or a string into a float64
// using the parse-or-zero policy: anything that does not parse as a finite
// non-negative number becomes 0. The leniency is deliberate, so callers that
// need a positive amount must validate after decoding.
type Amount float64

// UnmarshalJSON never fails; malformed input decodes as 0.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount(ParseAmount(strings.Trim(string(data), `"`)))
	return nil
}

// Float64 returns the normalized value.
func (a Amount) Float64() float64 {
	return float64(a)
}

// ParseAmount converts s to a float64, defaulting non-numeric, NaN,
// infinite, and negative input to 0. Amounts are magnitudes; a negative
// amount would let a settlement pull funds out of the creator.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
