package clinic

import (
	"math"
	"strconv"
)

// Round2 rounds v to two decimal places, halves away from zero. Total
// calculation and rendering both go through it so the two can never
// disagree on the last paisa.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a currency amount the way bills print it: the
// shortest decimal form with no trailing zeros, so 7000 stays "7000"
// and 2500.5 stays "2500.5".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatComputedAmount renders a discounted total. Unlike plain sums, a
// computed amount always carries at least one decimal place, so a whole
// result still reads as "6300.0" rather than "6300".
func formatComputedAmount(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return FormatAmount(v)
}
