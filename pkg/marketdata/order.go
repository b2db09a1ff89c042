package marketdata

import "github.com/nikolaydubina/fpdecimal"

// Side represents the pricing side of a market data order
type Side int

// Pricing sides
const (
	Bid Side = iota
	Offer
)

// String returns side as string
func (s Side) String() string {
	switch s {
	case Bid:
		return "BID"
	case Offer:
		return "OFFER"
	default:
		return "UNKNOWN"
	}
}

// ParseSide converts the wire spelling of a pricing side.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "BID":
		return Bid, true
	case "OFFER":
		return Offer, true
	default:
		return 0, false
	}
}

// Order is one resting quote at a price level.
type Order struct {
	price    fpdecimal.Decimal
	quantity int64
	side     Side
}

// NewOrder creates a market data order.
func NewOrder(price fpdecimal.Decimal, quantity int64, side Side) Order {
	return Order{price: price, quantity: quantity, side: side}
}

// Price returns the price on the order
func (o Order) Price() fpdecimal.Decimal {
	return o.price
}

// Quantity returns the quantity on the order
func (o Order) Quantity() int64 {
	return o.quantity
}

// Side returns the side on the order
func (o Order) Side() Side {
	return o.side
}

// BidOffer is a snapshot of the best bid and best offer of a book. The
// bid/offer price relationship is tracked as-is, not enforced.
type BidOffer struct {
	bid   Order
	offer Order
}

// NewBidOffer pairs a best bid with a best offer.
func NewBidOffer(bid, offer Order) BidOffer {
	return BidOffer{bid: bid, offer: offer}
}

// Bid returns the best bid order
func (b BidOffer) Bid() Order {
	return b.bid
}

// Offer returns the best offer order
func (b BidOffer) Offer() Order {
	return b.offer
}

// Spread returns the offer price minus the bid price.
func (b BidOffer) Spread() fpdecimal.Decimal {
	return b.offer.price.Sub(b.bid.price)
}
