// Package money rounds and formats CHF amounts for presentation. The quote
// engine works in full floating precision; everything here is display-side
// and must never feed back into a computation.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds to the cent, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RoundCash rounds to the nearest 0.05 CHF, the smallest circulating coin.
func RoundCash(v float64) float64 {
	d := decimal.NewFromFloat(v)
	step := decimal.NewFromInt(20)
	f, _ := d.Mul(step).Round(0).Div(step).Float64()
	return f
}

// FormatCHF renders an amount in the Swiss convention: apostrophe thousands
// separators and two decimals, e.g. "12'345.60".
func FormatCHF(v float64) string {
	s := decimal.NewFromFloat(Round2(v)).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('\'')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
