package booking

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

// Connector ingests trade records
// "instrumentId,tradeId,priceText,book,quantity,side". Subscribe only.
type Connector struct {
	service *Service
	refdata refdata.Source
}

// NewConnector creates a connector feeding the given service.
func NewConnector(svc *Service, src refdata.Source) *Connector {
	return &Connector{service: svc, refdata: src}
}

// Publish implements service.Connector; trades flow inward only.
func (c *Connector) Publish(Trade) error {
	return nil
}

// Subscribe reads trade records to completion.
func (c *Connector) Subscribe(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 6 {
			return fmt.Errorf("trade %q: %w", line, service.ErrMalformedRecord)
		}

		price, err := bondprice.Parse(fields[2])
		if err != nil {
			return fmt.Errorf("trade %q: %w", line, service.ErrMalformedRecord)
		}
		quantity, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return fmt.Errorf("trade %q: %w", line, service.ErrMalformedRecord)
		}
		side, ok := ParseSide(fields[5])
		if !ok {
			return fmt.Errorf("trade %q: %w", line, service.ErrMalformedRecord)
		}

		bond, err := c.refdata.BondByID(fields[0])
		if err != nil {
			return err
		}

		trade := NewTrade(bond, fields[1], price, fields[3], quantity, side)
		if err := c.service.OnMessage(trade); err != nil {
			return err
		}
	}
	return scanner.Err()
}
