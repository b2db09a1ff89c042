package pricing

import (
	"github.com/nikolaydubina/fpdecimal"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/refdata"
)

// Price is an internal valuation: a mid price with a bid/offer spread.
type Price struct {
	product refdata.Bond
	mid     fpdecimal.Decimal
	spread  fpdecimal.Decimal
}

// NewPrice creates a price. Spread is expected to be non-negative.
func NewPrice(product refdata.Bond, mid, spread fpdecimal.Decimal) Price {
	return Price{product: product, mid: mid, spread: spread}
}

// Product returns the instrument being priced.
func (p Price) Product() refdata.Bond {
	return p.product
}

// Mid returns the mid price.
func (p Price) Mid() fpdecimal.Decimal {
	return p.mid
}

// Spread returns the bid/offer spread around the mid.
func (p Price) Spread() fpdecimal.Decimal {
	return p.spread
}

// PersistKey returns the key the audit sink files this price under.
func (p Price) PersistKey() string {
	return p.product.ProductID()
}

// ToFields renders the price as ordered display strings.
func (p Price) ToFields() []string {
	return []string{
		p.product.ProductID(),
		bondprice.Format(p.mid),
		bondprice.Format(p.spread),
	}
}
