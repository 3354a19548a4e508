package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/number"
)

// ParseCurrency parses free-form currency text into minor units.
//
// Everything except digits and the first decimal point is ignored. Every
// minus sign before the first digit or decimal point flips the sign. Digits
// beyond the second decimal place are dropped.
//
// ok is false if the text contains no number.
func ParseCurrency(s string) (minor int64, ok bool) {
	var cleaned strings.Builder
	var digits, point, negative bool

	for _, c := range s {
		switch {
		case !digits && !point && c == '-':
			negative = !negative
		case c >= '0' && c <= '9':
			digits = true
			cleaned.WriteRune(c)
		case !point && c == '.':
			point = true
			cleaned.WriteRune(c)
		}
	}

	value, err := decimal.NewFromString(cleaned.String())
	if err != nil {
		return 0, false
	}

	value = value.Shift(2).Truncate(0)
	if !value.BigInt().IsInt64() {
		return 0, false
	}

	minor = value.IntPart()
	if negative {
		minor = -minor
	}

	return minor, true
}

// FormatCurrency formats minor units as a major unit amount with two decimal
// places and the digit grouping of the ledger's language.
func (l *Ledger) FormatCurrency(minor int64) string {
	major := decimal.New(minor, -2).InexactFloat64()
	return l.printer.Sprintf("%v", number.Decimal(major, number.Scale(2)))
}
