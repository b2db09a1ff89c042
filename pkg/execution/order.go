package execution

import (
	"strconv"

	"github.com/nikolaydubina/fpdecimal"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/marketdata"
	"github.com/quantsys/bondflow/pkg/refdata"
)

// OrderType represents type of the execution order
type OrderType string

// Order types
const (
	TypeFOK    OrderType = "FOK"
	TypeIOC    OrderType = "IOC"
	TypeMarket OrderType = "MARKET"
	TypeLimit  OrderType = "LIMIT"
	TypeStop   OrderType = "STOP"
)

// Market identifies the venue an order is routed to
type Market string

// Markets
const (
	BrokerTec Market = "BROKERTEC"
	ESpeed    Market = "ESPEED"
	CME       Market = "CME"
)

// Order is an execution order that can be placed on a venue.
type Order struct {
	product       refdata.Bond
	side          marketdata.Side
	orderID       string
	orderType     OrderType
	price         fpdecimal.Decimal
	visibleQty    int64
	hiddenQty     int64
	parentOrderID string
	isChildOrder  bool
}

// NewOrder creates an execution order. Child orders carry a non-empty parent
// order id.
func NewOrder(product refdata.Bond, side marketdata.Side, orderID string, orderType OrderType,
	price fpdecimal.Decimal, visibleQty, hiddenQty int64, parentOrderID string, isChildOrder bool) Order {
	return Order{
		product:       product,
		side:          side,
		orderID:       orderID,
		orderType:     orderType,
		price:         price,
		visibleQty:    visibleQty,
		hiddenQty:     hiddenQty,
		parentOrderID: parentOrderID,
		isChildOrder:  isChildOrder,
	}
}

// Product returns the instrument being traded.
func (o Order) Product() refdata.Bond {
	return o.product
}

// Side returns the pricing side the order rests against.
func (o Order) Side() marketdata.Side {
	return o.side
}

// OrderID returns the order id.
func (o Order) OrderID() string {
	return o.orderID
}

// OrderType returns the order type.
func (o Order) OrderType() OrderType {
	return o.orderType
}

// Price returns the order price.
func (o Order) Price() fpdecimal.Decimal {
	return o.price
}

// VisibleQuantity returns the quantity displayed to the market.
func (o Order) VisibleQuantity() int64 {
	return o.visibleQty
}

// HiddenQuantity returns the quantity held back from the market.
func (o Order) HiddenQuantity() int64 {
	return o.hiddenQty
}

// ParentOrderID returns the parent order id, empty for parents.
func (o Order) ParentOrderID() string {
	return o.parentOrderID
}

// IsChildOrder reports whether this order was sliced off a parent.
func (o Order) IsChildOrder() bool {
	return o.isChildOrder
}

// PersistKey returns the key the audit sink files this order under.
func (o Order) PersistKey() string {
	return o.product.ProductID()
}

// ToFields renders the order as ordered display strings. Field order and
// enumerated-value spelling are part of the audit contract.
func (o Order) ToFields() []string {
	isChild := "NO"
	if o.isChildOrder {
		isChild = "YES"
	}
	return []string{
		o.product.ProductID(),
		o.side.String(),
		o.orderID,
		string(o.orderType),
		bondprice.Format(o.price),
		strconv.FormatInt(o.visibleQty, 10),
		strconv.FormatInt(o.hiddenQty, 10),
		o.parentOrderID,
		isChild,
	}
}
