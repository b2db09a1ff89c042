package booking

import (
	"strconv"

	"github.com/nikolaydubina/fpdecimal"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/refdata"
)

// Side represents buy or sell side of a trade
type Side int

// Trade sides
const (
	Buy Side = iota
	Sell
)

// String returns side as string
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseSide converts the wire spelling of a trade side.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "BUY":
		return Buy, true
	case "SELL":
		return Sell, true
	default:
		return 0, false
	}
}

// Trade is a booked fill on a particular book.
type Trade struct {
	product  refdata.Bond
	tradeID  string
	price    fpdecimal.Decimal
	book     string
	quantity int64
	side     Side
}

// NewTrade creates a trade. Trade ids must be globally unique; booking does
// not deduplicate.
func NewTrade(product refdata.Bond, tradeID string, price fpdecimal.Decimal, book string, quantity int64, side Side) Trade {
	return Trade{
		product:  product,
		tradeID:  tradeID,
		price:    price,
		book:     book,
		quantity: quantity,
		side:     side,
	}
}

// Product returns the instrument traded.
func (t Trade) Product() refdata.Bond {
	return t.product
}

// TradeID returns the unique trade id.
func (t Trade) TradeID() string {
	return t.tradeID
}

// Price returns the trade price.
func (t Trade) Price() fpdecimal.Decimal {
	return t.price
}

// Book returns the book the trade is assigned to.
func (t Trade) Book() string {
	return t.book
}

// Quantity returns the fill quantity.
func (t Trade) Quantity() int64 {
	return t.quantity
}

// Side returns the trade side.
func (t Trade) Side() Side {
	return t.side
}

// PersistKey returns the key the audit sink files this trade under.
func (t Trade) PersistKey() string {
	return t.tradeID
}

// ToFields renders the trade as ordered display strings.
func (t Trade) ToFields() []string {
	return []string{
		t.product.ProductID(),
		t.tradeID,
		bondprice.Format(t.price),
		t.book,
		strconv.FormatInt(t.quantity, 10),
		t.side.String(),
	}
}
