package summary

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money is an amount in whole cents.
type Money int64

const microsPerCent = 10_000

// EstimateValue returns count*unitValue rounded to cents, half to even.
// unitValue is taken to six decimal places and the product is computed
// exactly, so counts that land on a half cent round the same way every
// time. Negative unit values are treated as zero.
func EstimateValue(count int, unitValue float64) Money {
	if count <= 0 || unitValue <= 0 {
		return 0
	}
	micros := int64(math.Round(unitValue*1e6)) * int64(count)
	return Money(roundHalfEven(micros, microsPerCent))
}

// roundHalfEven divides n (non-negative) by d and rounds the quotient.
func roundHalfEven(n, d int64) int64 {
	q, r := n/d, n%d
	switch {
	case 2*r > d:
		q++
	case 2*r == d && q%2 == 1:
		q++
	}
	return q
}

// Dollars returns the amount as a float, for display and export only.
func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// String formats the amount as "$1,234.56".
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return sign + "$" + printer.Sprintf("%d", int64(m)/100) + fmt.Sprintf(".%02d", int64(m)%100)
}
