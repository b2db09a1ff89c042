package position

import (
	"sort"
	"strconv"

	"github.com/quantsys/bondflow/pkg/booking"
	"github.com/quantsys/bondflow/pkg/refdata"
)

// Position is the signed per-book holding of one instrument. Books not yet
// traded have an implicit zero position.
type Position struct {
	product   refdata.Bond
	positions map[string]int64
}

// NewPosition creates an empty position for an instrument.
func NewPosition(product refdata.Bond) Position {
	return Position{
		product:   product,
		positions: make(map[string]int64),
	}
}

// Product returns the instrument.
func (p Position) Product() refdata.Bond {
	return p.product
}

// PositionIn returns the signed quantity held in one book.
func (p Position) PositionIn(book string) int64 {
	return p.positions[book]
}

// AggregatePosition returns the signed sum across all books.
func (p Position) AggregatePosition() int64 {
	var total int64
	for _, qty := range p.positions {
		total += qty
	}
	return total
}

// AddPosition applies one fill to a book, buys adding and sells subtracting.
func (p Position) AddPosition(book string, quantity int64, side booking.Side) Position {
	next := Position{
		product:   p.product,
		positions: make(map[string]int64, len(p.positions)+1),
	}
	for b, q := range p.positions {
		next.positions[b] = q
	}
	if side == booking.Sell {
		quantity = -quantity
	}
	next.positions[book] += quantity
	return next
}

// PersistKey returns the key the audit sink files this position under.
func (p Position) PersistKey() string {
	return p.product.ProductID()
}

// ToFields renders the position as ordered display strings, books in sorted
// order followed by the aggregate.
func (p Position) ToFields() []string {
	books := make([]string, 0, len(p.positions))
	for b := range p.positions {
		books = append(books, b)
	}
	sort.Strings(books)

	fields := make([]string, 0, 2*len(books)+3)
	fields = append(fields, p.product.ProductID())
	for _, b := range books {
		fields = append(fields, b, strconv.FormatInt(p.positions[b], 10))
	}
	fields = append(fields, "AGGREGATE", strconv.FormatInt(p.AggregatePosition(), 10))
	return fields
}
