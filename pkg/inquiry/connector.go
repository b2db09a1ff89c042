package inquiry

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nikolaydubina/fpdecimal"

	"github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/booking"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

// quotePrice is the flat quote applied to every received inquiry.
var quotePrice = fpdecimal.FromInt(100)

// Connector ingests inquiry records
// "inquiryId,instrumentId,side,quantity,priceText,state" and plays the
// quoting counterparty on the loopback path.
type Connector struct {
	service *Service
	refdata refdata.Source
}

// NewConnector creates a connector feeding the given service and attaches
// itself as the service's loopback.
func NewConnector(svc *Service, src refdata.Source) *Connector {
	c := &Connector{service: svc, refdata: src}
	svc.SetConnector(c)
	return c
}

// Publish quotes a RECEIVED inquiry and re-ingests it as QUOTED. Inquiries
// in any other state pass through unchanged.
func (c *Connector) Publish(i Inquiry) error {
	if i.State() != Received {
		return nil
	}
	quoted := i.WithPrice(quotePrice).WithState(Quoted)
	return c.service.OnMessage(quoted)
}

// Subscribe reads inquiry records to completion.
func (c *Connector) Subscribe(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 6 {
			return fmt.Errorf("inquiry %q: %w", line, service.ErrMalformedRecord)
		}

		side, ok := booking.ParseSide(fields[2])
		if !ok {
			return fmt.Errorf("inquiry %q: %w", line, service.ErrMalformedRecord)
		}
		quantity, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return fmt.Errorf("inquiry %q: %w", line, service.ErrMalformedRecord)
		}
		price, err := bondprice.Parse(fields[4])
		if err != nil {
			return fmt.Errorf("inquiry %q: %w", line, service.ErrMalformedRecord)
		}
		state, ok := ParseState(fields[5])
		if !ok {
			return fmt.Errorf("inquiry %q: %w", line, service.ErrMalformedRecord)
		}

		bond, err := c.refdata.BondByID(fields[1])
		if err != nil {
			return err
		}

		inq := NewInquiry(fields[0], bond, side, quantity, price, state)
		if err := c.service.OnMessage(inq); err != nil {
			return err
		}
	}
	return scanner.Err()
}
