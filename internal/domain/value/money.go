package value

import (
	"fmt"
	"math"
)

// Money is a currency amount in dollars. Arithmetic stays in float64 and is
// rounded to cents only at formatting and comparison boundaries.
type Money float64

func (m Money) Float64() float64 {
	return float64(m)
}

// Round returns the amount rounded to whole cents.
func (m Money) Round() Money {
	return Money(math.Round(float64(m)*100) / 100)
}

// Format renders a signed dollar amount: "$12.34", "-$5.00". Display of an
// undefined amount (nil *Money) is the caller's concern; by convention the
// UI shows an em dash.
func (m Money) Format() string {
	v := float64(m.Round())
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func MoneyPtr(v float64) *Money {
	m := Money(v)
	return &m
}
