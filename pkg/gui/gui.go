// Package gui renders a throttled price ticker. It is the display analogue
// of the audit sink: timestamped rows, but rate limited so a human can
// follow them.
package gui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/quantsys/bondflow/pkg/history"
	"github.com/quantsys/bondflow/pkg/pricing"
	"github.com/quantsys/bondflow/pkg/service"
)

// DefaultThrottle is the minimum interval between rendered rows.
const DefaultThrottle = 300 * time.Millisecond

// Service writes price ticker rows, dropping updates that arrive faster
// than the throttle interval.
type Service struct {
	w       io.Writer
	limiter *rate.Limiter
	now     func() time.Time
}

// NewService creates a ticker writing to w at the default throttle.
func NewService(w io.Writer) *Service {
	return NewServiceWithThrottle(w, DefaultThrottle)
}

// NewServiceWithThrottle creates a ticker with an explicit interval.
func NewServiceWithThrottle(w io.Writer, interval time.Duration) *Service {
	return &Service{
		w:       w,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		now:     time.Now,
	}
}

// SetClock overrides the row timestamp source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// OnPrice renders one price row unless throttled. A dropped row is not an
// error.
func (s *Service) OnPrice(p pricing.Price) error {
	if !s.limiter.Allow() {
		return nil
	}
	row := s.now().Format(history.TimeFormat) + "," + strings.Join(p.ToFields(), ",")
	if _, err := fmt.Fprintln(s.w, row); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

// PriceListener returns the listener to register on the pricing service.
func (s *Service) PriceListener() service.Listener[pricing.Price] {
	return &priceListener{service: s}
}

type priceListener struct {
	service.NoopListener[pricing.Price]
	service *Service
}

func (l *priceListener) OnAdd(p pricing.Price) error {
	return l.service.OnPrice(p)
}
