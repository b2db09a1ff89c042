package marketdata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

// Connector ingests market data order records. Each record is
// "instrumentId,priceText,quantity,side"; 2*depth consecutive records form
// one full book which is handed to the service as a single update.
// The connector is subscribe only.
type Connector struct {
	service *Service
	refdata refdata.Source
}

// NewConnector creates a connector feeding the given service.
func NewConnector(svc *Service, src refdata.Source) *Connector {
	return &Connector{service: svc, refdata: src}
}

// Publish implements service.Connector; market data flows inward only.
func (c *Connector) Publish(OrderBook) error {
	return nil
}

// Subscribe reads records to completion, emitting one book per 2*depth
// lines. A malformed record aborts the stream with no partial application.
func (c *Connector) Subscribe(r io.Reader) error {
	batchSize := c.service.BookDepth() * 2

	var (
		bidStack   []Order
		offerStack []Order
		productID  string
		count      int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return fmt.Errorf("market data %q: %w", line, service.ErrMalformedRecord)
		}

		price, err := bondprice.Parse(fields[1])
		if err != nil {
			return fmt.Errorf("market data %q: %w", line, service.ErrMalformedRecord)
		}
		quantity, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("market data %q: %w", line, service.ErrMalformedRecord)
		}
		side, ok := ParseSide(fields[3])
		if !ok {
			return fmt.Errorf("market data %q: %w", line, service.ErrMalformedRecord)
		}

		productID = fields[0]
		order := NewOrder(price, quantity, side)
		if side == Bid {
			bidStack = append(bidStack, order)
		} else {
			offerStack = append(offerStack, order)
		}

		count++
		if count == batchSize {
			bond, err := c.refdata.BondByID(productID)
			if err != nil {
				return err
			}
			book := NewOrderBook(bond, bidStack, offerStack)
			if err := c.service.OnMessage(book); err != nil {
				return err
			}

			bidStack = nil
			offerStack = nil
			count = 0
		}
	}
	return scanner.Err()
}
