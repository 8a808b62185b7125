package display

import (
	"fmt"
	"math"
	"strconv"
)

// FormatMoney renders a dollar amount with two decimals (e.g. "$2.00").
// Negative amounts keep the sign before the dollar sign ("-$1.50").
func FormatMoney(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// FormatRate renders a per-unit dollar rate (e.g. "$2.00/min").
// NaN values (undefined statistics such as std dev of one sample) render
// as "n/a".
func FormatRate(rate float64, unit string) string {
	if math.IsNaN(rate) {
		return "n/a"
	}
	return FormatMoney(rate) + "/" + unit
}

// FormatStat renders a bare statistic with four-digit precision, or "n/a"
// when undefined. Used for table cells where the unit is in the header.
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// FormatCount renders an integer with thousands separators (e.g. "1,234,567").
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatMinutes renders a duration in minutes with a compact unit label
// (e.g. "10.0 min", "24.0 h").
func FormatMinutes(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%.1f min", minutes)
	}
	return fmt.Sprintf("%.1f h", minutes/60)
}
