package marketdata

import (
	"errors"
	"fmt"

	"github.com/quantsys/bondflow/pkg/refdata"
)

// ErrEmptySide reports a best-price lookup against a book side with no
// resting orders.
var ErrEmptySide = errors.New("empty book side")

// OrderBook holds the full two-sided depth for one instrument.
type OrderBook struct {
	product    refdata.Bond
	bidStack   []Order
	offerStack []Order
}

// NewOrderBook creates an order book from bid and offer stacks.
func NewOrderBook(product refdata.Bond, bidStack, offerStack []Order) OrderBook {
	return OrderBook{product: product, bidStack: bidStack, offerStack: offerStack}
}

// Product returns the instrument the book belongs to.
func (b OrderBook) Product() refdata.Bond {
	return b.product
}

// BidStack returns the bid side depth.
func (b OrderBook) BidStack() []Order {
	return b.bidStack
}

// OfferStack returns the offer side depth.
func (b OrderBook) OfferStack() []Order {
	return b.offerStack
}

// BestBidOffer scans the bid stack for the maximum price and the offer stack
// for the minimum price. Ties go to the first order encountered.
func (b OrderBook) BestBidOffer() (BidOffer, error) {
	if len(b.bidStack) == 0 {
		return BidOffer{}, fmt.Errorf("%s bids: %w", b.product.ProductID(), ErrEmptySide)
	}
	if len(b.offerStack) == 0 {
		return BidOffer{}, fmt.Errorf("%s offers: %w", b.product.ProductID(), ErrEmptySide)
	}

	bestBid := b.bidStack[0]
	for _, o := range b.bidStack[1:] {
		if o.price.GreaterThan(bestBid.price) {
			bestBid = o
		}
	}

	bestOffer := b.offerStack[0]
	for _, o := range b.offerStack[1:] {
		if o.price.LessThan(bestOffer.price) {
			bestOffer = o
		}
	}

	return NewBidOffer(bestBid, bestOffer), nil
}

// aggregateStack consolidates a stack by price: orders sharing a price are
// summed into a single order. The rebuilt orders carry the given side.
// Output order is unspecified; aggregation is order-independent by price.
func aggregateStack(stack []Order, side Side) []Order {
	quantities := make(map[string]int64, len(stack))
	prices := make(map[string]Order, len(stack))

	for _, o := range stack {
		key := o.price.String()
		quantities[key] += o.quantity
		if _, ok := prices[key]; !ok {
			prices[key] = o
		}
	}

	aggregated := make([]Order, 0, len(quantities))
	for key, qty := range quantities {
		aggregated = append(aggregated, NewOrder(prices[key].price, qty, side))
	}
	return aggregated
}
