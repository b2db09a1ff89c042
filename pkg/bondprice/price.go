// Package bondprice implements the fractional-32nds price notation used for
// US Treasury quotes: integer part, '-', two-digit 32nds, then one character
// for eighths of a 32nd where '+' means 4/8. The smallest increment is
// therefore 1/256 of a point.
package bondprice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nikolaydubina/fpdecimal"
)

// TicksPerPoint is the number of price increments in one point.
const TicksPerPoint = 256

// ErrBadNotation reports a price string that does not follow 32nds notation.
var ErrBadNotation = errors.New("bad bond price notation")

func init() {
	// Midpoints of tick-aligned prices land on half ticks, and
	// 1/512 = 0.001953125 needs nine fraction digits to be exact.
	fpdecimal.FractionDigits = 9
}

// FromTicks converts a whole number of 1/256 ticks into a decimal price.
func FromTicks(ticks int64) fpdecimal.Decimal {
	whole := ticks / TicksPerPoint
	frac := ticks % TicksPerPoint
	d, _ := fpdecimal.FromString(fmt.Sprintf("%d.%09d", whole, frac*3906250))
	return d
}

// FromHalfTicks converts a whole number of 1/512 increments into a decimal
// price.
func FromHalfTicks(halfTicks int64) fpdecimal.Decimal {
	whole := halfTicks / (2 * TicksPerPoint)
	frac := halfTicks % (2 * TicksPerPoint)
	d, _ := fpdecimal.FromString(fmt.Sprintf("%d.%09d", whole, frac*1953125))
	return d
}

// Midpoint returns the exact midpoint of two tick-aligned prices. The sum of
// the tick counts is the midpoint expressed in half ticks, so no division of
// decimals is involved.
func Midpoint(a, b fpdecimal.Decimal) fpdecimal.Decimal {
	return FromHalfTicks(Ticks(a) + Ticks(b))
}

// Ticks converts a decimal price to the nearest whole number of 1/256 ticks.
func Ticks(price fpdecimal.Decimal) int64 {
	s := price.String()
	intStr, fracStr, _ := strings.Cut(s, ".")
	whole, _ := strconv.ParseInt(intStr, 10, 64)
	for len(fracStr) < 9 {
		fracStr += "0"
	}
	frac, _ := strconv.ParseInt(fracStr[:9], 10, 64)
	ticks := (frac + 3906250/2) / 3906250
	return whole*TicksPerPoint + ticks
}

// Parse converts 32nds notation ("100-16+", "99-312") into a decimal price.
func Parse(s string) (fpdecimal.Decimal, error) {
	intStr, frac, ok := strings.Cut(s, "-")
	if !ok || len(frac) != 3 {
		return fpdecimal.Zero, fmt.Errorf("%q: %w", s, ErrBadNotation)
	}

	whole, err := strconv.ParseInt(intStr, 10, 64)
	if err != nil || whole < 0 {
		return fpdecimal.Zero, fmt.Errorf("%q: %w", s, ErrBadNotation)
	}

	thirtySeconds, err := strconv.ParseInt(frac[:2], 10, 64)
	if err != nil || thirtySeconds > 31 {
		return fpdecimal.Zero, fmt.Errorf("%q: %w", s, ErrBadNotation)
	}

	var eighths int64
	switch c := frac[2]; {
	case c == '+':
		eighths = 4
	case c >= '0' && c <= '7':
		eighths = int64(c - '0')
	default:
		return fpdecimal.Zero, fmt.Errorf("%q: %w", s, ErrBadNotation)
	}

	return FromTicks(whole*TicksPerPoint + thirtySeconds*8 + eighths), nil
}

// Format renders a decimal price in 32nds notation. The price is rounded to
// the nearest 1/256 tick first, so Parse(Format(p)) == p for every
// tick-aligned price.
func Format(price fpdecimal.Decimal) string {
	ticks := Ticks(price)
	whole := ticks / TicksPerPoint
	rem := ticks % TicksPerPoint
	thirtySeconds := rem / 8
	eighths := rem % 8

	last := byte('0' + eighths)
	if eighths == 4 {
		last = '+'
	}
	return fmt.Sprintf("%d-%02d%c", whole, thirtySeconds, last)
}
