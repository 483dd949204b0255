// Package money holds the numeric conventions shared by the planner,
// the bill matcher and the split balancer.
//
// Amounts are float64 dollars. Equality is always checked against a
// one cent band because repeated float arithmetic on currency values
// drifts below the cent.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Tolerance is the band inside which two amounts are considered equal.
const Tolerance = 0.01

// Equal reports whether a and b differ by less than one cent.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Round2 rounds to two decimal places, half away from zero.
//
// Rounding goes through decimal so that values like 1.005 are not
// skewed by their binary representation.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// Sub returns a - b computed on decimals.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

// Sum adds up amounts on decimals.
func Sum(amounts ...float64) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum
}

// Format renders an amount as "$1234.50".
func Format(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

// Valid reports whether amount is a usable number.
func Valid(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// FromDecimal converts a stored decimal to the float representation
// used by the engine.
func FromDecimal(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// ToDecimal converts an engine amount for storage.
func ToDecimal(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}
