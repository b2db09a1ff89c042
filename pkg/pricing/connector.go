package pricing

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

// Connector ingests price records "instrumentId,bidPriceText,offerPriceText",
// converting each to a mid/spread price. Subscribe only.
type Connector struct {
	service *Service
	refdata refdata.Source
}

// NewConnector creates a connector feeding the given service.
func NewConnector(svc *Service, src refdata.Source) *Connector {
	return &Connector{service: svc, refdata: src}
}

// Publish implements service.Connector; prices flow inward only.
func (c *Connector) Publish(Price) error {
	return nil
}

// Subscribe reads price records to completion.
func (c *Connector) Subscribe(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return fmt.Errorf("price %q: %w", line, service.ErrMalformedRecord)
		}

		bid, err := bondprice.Parse(fields[1])
		if err != nil {
			return fmt.Errorf("price %q: %w", line, service.ErrMalformedRecord)
		}
		offer, err := bondprice.Parse(fields[2])
		if err != nil {
			return fmt.Errorf("price %q: %w", line, service.ErrMalformedRecord)
		}

		bond, err := c.refdata.BondByID(fields[0])
		if err != nil {
			return err
		}

		mid := bondprice.Midpoint(bid, offer)
		spread := offer.Sub(bid)
		if err := c.service.OnMessage(NewPrice(bond, mid, spread)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
