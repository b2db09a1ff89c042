package inquiry

import (
	"strconv"

	"github.com/nikolaydubina/fpdecimal"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/booking"
	"github.com/quantsys/bondflow/pkg/refdata"
)

// State is the lifecycle state of a customer inquiry
type State string

// Inquiry states. DONE, REJECTED and CUSTOMER_REJECTED are terminal.
const (
	Received         State = "RECEIVED"
	Quoted           State = "QUOTED"
	Done             State = "DONE"
	Rejected         State = "REJECTED"
	CustomerRejected State = "CUSTOMER_REJECTED"
)

// ParseState converts the wire spelling of an inquiry state.
func ParseState(s string) (State, bool) {
	switch State(s) {
	case Received, Quoted, Done, Rejected, CustomerRejected:
		return State(s), true
	default:
		return "", false
	}
}

// Inquiry is a customer request for a quote.
type Inquiry struct {
	inquiryID string
	product   refdata.Bond
	side      booking.Side
	quantity  int64
	price     fpdecimal.Decimal
	state     State
}

// NewInquiry creates an inquiry.
func NewInquiry(inquiryID string, product refdata.Bond, side booking.Side, quantity int64, price fpdecimal.Decimal, state State) Inquiry {
	return Inquiry{
		inquiryID: inquiryID,
		product:   product,
		side:      side,
		quantity:  quantity,
		price:     price,
		state:     state,
	}
}

// InquiryID returns the unique inquiry id.
func (i Inquiry) InquiryID() string {
	return i.inquiryID
}

// Product returns the instrument inquired about.
func (i Inquiry) Product() refdata.Bond {
	return i.product
}

// Side returns the customer's side.
func (i Inquiry) Side() booking.Side {
	return i.side
}

// Quantity returns the inquired quantity.
func (i Inquiry) Quantity() int64 {
	return i.quantity
}

// Price returns the quoted price.
func (i Inquiry) Price() fpdecimal.Decimal {
	return i.price
}

// State returns the lifecycle state.
func (i Inquiry) State() State {
	return i.state
}

// WithPrice returns a copy carrying the given quote price.
func (i Inquiry) WithPrice(price fpdecimal.Decimal) Inquiry {
	i.price = price
	return i
}

// WithState returns a copy in the given state.
func (i Inquiry) WithState(state State) Inquiry {
	i.state = state
	return i
}

// PersistKey returns the key the audit sink files this inquiry under.
func (i Inquiry) PersistKey() string {
	return i.inquiryID
}

// ToFields renders the inquiry as ordered display strings.
func (i Inquiry) ToFields() []string {
	return []string{
		i.inquiryID,
		i.product.ProductID(),
		i.side.String(),
		strconv.FormatInt(i.quantity, 10),
		bondprice.Format(i.price),
		string(i.state),
	}
}
