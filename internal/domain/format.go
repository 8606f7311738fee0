package domain

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// significantDigits is the precision of formatted results.
const significantDigits = 4

// formatContext rounds to significantDigits with banker's rounding.
var formatContext = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(significantDigits)
	ctx.Rounding = apd.RoundHalfEven
	return ctx
}()

// SmartFormat renders v for display: rounded to 4 significant digits with
// round-half-to-even, in fixed-point notation, without trailing fractional
// zeros. Zero renders as "0".
//
// Rounding operates on the shortest decimal representation of v (the digits
// strconv would print), not on its exact binary expansion, so 1.0005 rounds
// to "1" and 1.0015 to "1.002".
func SmartFormat(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	d, _, err := apd.NewFromString(strconv.FormatFloat(v, 'e', -1, 64))
	if err != nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	var rounded apd.Decimal
	if _, err := formatContext.Round(&rounded, d); err != nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	// Reduce drops trailing coefficient zeros, so 1.000 prints as "1" while
	// 1E+3 still expands to "1000".
	rounded.Reduce(&rounded)
	return rounded.Text('f')
}

// formatValue renders the submitted value back in its shortest fixed-point
// form: 5 → "5", 273.15 → "273.15", 1e3 → "1000".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
