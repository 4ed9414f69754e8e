package currency

import (
	"math"
	"strconv"
	"strings"
)

// FormatReal renders an amount in Reais, e.g. "R$ 12.34".
func FormatReal(v float64) string {
	return "R$ " + ToFixed(v, 2)
}

// FormatDollar renders an amount in Dollars, e.g. "$ 6.54".
func FormatDollar(v float64) string {
	return "$ " + ToFixed(v, 2)
}

// FormatYen renders an amount in Yen with thousands separators, e.g. "¥ 12,345".
func FormatYen(v float64) string {
	return "¥ " + groupThousands(v)
}

// SummaryYen renders a Yen total in thousands, e.g. "¥ 12k".
func SummaryYen(v float64) string {
	return "¥ " + strconv.FormatFloat(jsRound(v/1000), 'f', 0, 64) + "k"
}

// SummaryReal renders a Real total rounded to whole Reais, e.g. "R$ 123".
func SummaryReal(v float64) string {
	return "R$ " + strconv.FormatFloat(jsRound(v), 'f', 0, 64)
}

// SummaryDollar renders a Dollar total with no decimals, e.g. "$ 24".
func SummaryDollar(v float64) string {
	return "$ " + ToFixed(v, 0)
}

// jsRound rounds half up toward positive infinity.
func jsRound(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0
	}
	return r
}

// groupThousands formats v with comma thousands separators and at most
// three decimals, trailing zeros dropped.
func groupThousands(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 3, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if v < 0 && out != "0" {
		out = "-" + out
	}
	return out
}
