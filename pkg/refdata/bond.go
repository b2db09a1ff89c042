package refdata

import "time"

// Bond identifies one US Treasury instrument.
type Bond struct {
	cusip    string
	ticker   string
	maturity time.Time
}

// NewBond creates a bond product.
func NewBond(cusip, ticker string, maturity time.Time) Bond {
	return Bond{cusip: cusip, ticker: ticker, maturity: maturity}
}

// ProductID returns the CUSIP identifying the bond.
func (b Bond) ProductID() string {
	return b.cusip
}

// Ticker returns the display ticker, e.g. "US10Y".
func (b Bond) Ticker() string {
	return b.ticker
}

// Maturity returns the maturity date.
func (b Bond) Maturity() time.Time {
	return b.maturity
}
