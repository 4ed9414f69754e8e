// Package currency keeps the Real, Yen and Dollar price fields in step.
//
// Conversions always pivot through Real: editing Yen or Dollar first
// computes a rounded Real and derives the third field from that rounded
// value. Displayed figures depend on that order, so it must not change.
package currency

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Fixed exchange rates.
const (
	// YenToReal is the value of one Yen in Reais.
	YenToReal = 0.034
	// DollarToReal is the value of one Dollar in Reais.
	DollarToReal = 5.20
)

// Prices holds the raw text of the three price fields.
type Prices struct {
	Real   string
	Yen    string
	Dollar string
}

// FromReal returns the fields after the user typed text into the Real field.
func FromReal(text string) Prices {
	p := Prices{Real: text}
	reais, ok := Parse(text)
	if !ok {
		return p
	}
	p.Yen = ToFixed(reais/YenToReal, 0)
	p.Dollar = ToFixed(reais/DollarToReal, 2)
	return p
}

// FromYen returns the fields after the user typed text into the Yen field.
func FromYen(text string) Prices {
	p := Prices{Yen: text}
	yen, ok := Parse(text)
	if !ok {
		return p
	}
	p.Real = ToFixed(yen*YenToReal, 2)
	p.Dollar = ToFixed(mustParse(p.Real)/DollarToReal, 2)
	return p
}

// FromDollar returns the fields after the user typed text into the Dollar field.
func FromDollar(text string) Prices {
	p := Prices{Dollar: text}
	dollar, ok := Parse(text)
	if !ok {
		return p
	}
	p.Real = ToFixed(dollar*DollarToReal, 2)
	p.Yen = ToFixed(mustParse(p.Real)/YenToReal, 0)
	return p
}

// Parse reads a price typed by the user: a plain decimal number, optionally
// signed or with an exponent. Blank, hex, non-finite and any other text is
// rejected.
func Parse(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseOrZero is Parse with blank or invalid input read as 0.
func ParseOrZero(text string) float64 {
	v, _ := Parse(text)
	return v
}

// PriceText turns a stored amount back into field text. Zero is shown as
// an empty field rather than "0".
func PriceText(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToFixed formats v with the given number of decimals, rounding ties away
// from zero on the exact binary value. A negative input keeps its sign
// even when it rounds to zero.
func ToFixed(v float64, digits int) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}

	abs := math.Abs(v)
	s := strconv.FormatFloat(abs, 'f', digits, 64)

	// FormatFloat rounds exact ties to even; only exact ties need fixing.
	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	scaled := new(big.Rat).Mul(new(big.Rat).SetFloat64(abs), scale)
	doubled := new(big.Rat).Mul(scaled, big.NewRat(2, 1))
	if doubled.IsInt() && !scaled.IsInt() {
		n := new(big.Int).Quo(scaled.Num(), scaled.Denom())
		n.Add(n, big.NewInt(1))
		s = withPoint(n.String(), digits)
	}

	if v < 0 {
		return "-" + s
	}
	return s
}

func withPoint(digitsStr string, digits int) string {
	if digits == 0 {
		return digitsStr
	}
	for len(digitsStr) <= digits {
		digitsStr = "0" + digitsStr
	}
	cut := len(digitsStr) - digits
	return digitsStr[:cut] + "." + digitsStr[cut:]
}

func mustParse(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
