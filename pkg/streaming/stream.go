package streaming

import (
	"strconv"

	"github.com/nikolaydubina/fpdecimal"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/refdata"
)

// Order is one side of a published two-way price stream.
type Order struct {
	price      fpdecimal.Decimal
	visibleQty int64
	hiddenQty  int64
	side       marketdata.Side
}

// NewOrder creates a stream order.
func NewOrder(price fpdecimal.Decimal, visibleQty, hiddenQty int64, side marketdata.Side) Order {
	return Order{price: price, visibleQty: visibleQty, hiddenQty: hiddenQty, side: side}
}

// Price returns the stream price.
func (o Order) Price() fpdecimal.Decimal {
	return o.price
}

// VisibleQuantity returns the displayed size.
func (o Order) VisibleQuantity() int64 {
	return o.visibleQty
}

// HiddenQuantity returns the reserve size.
func (o Order) HiddenQuantity() int64 {
	return o.hiddenQty
}

// Side returns BID or OFFER.
func (o Order) Side() marketdata.Side {
	return o.side
}

// Stream is a two-way price published for one instrument.
type Stream struct {
	product refdata.Bond
	bid     Order
	offer   Order
}

// NewStream creates a two-way price stream.
func NewStream(product refdata.Bond, bid, offer Order) Stream {
	return Stream{product: product, bid: bid, offer: offer}
}

// Product returns the instrument.
func (s Stream) Product() refdata.Bond {
	return s.product
}

// Bid returns the bid side.
func (s Stream) Bid() Order {
	return s.bid
}

// Offer returns the offer side.
func (s Stream) Offer() Order {
	return s.offer
}

// PersistKey returns the key the audit sink files this stream under.
func (s Stream) PersistKey() string {
	return s.product.ProductID()
}

// ToFields renders both sides as ordered display strings.
func (s Stream) ToFields() []string {
	return []string{
		s.product.ProductID(),
		bondprice.Format(s.bid.Price()),
		strconv.FormatInt(s.bid.VisibleQuantity(), 10),
		strconv.FormatInt(s.bid.HiddenQuantity(), 10),
		bondprice.Format(s.offer.Price()),
		strconv.FormatInt(s.offer.VisibleQuantity(), 10),
		strconv.FormatInt(s.offer.HiddenQuantity(), 10),
	}
}
