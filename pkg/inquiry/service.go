package inquiry

import (
	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/service"
)

// Service runs the inquiry lifecycle, keyed on inquiry id.
//
// A RECEIVED inquiry is stored and sent back out through the connector,
// which quotes it and re-ingests it as QUOTED. A QUOTED inquiry transitions
// to DONE and listeners are notified exactly once. Terminal inquiries are
// stored without notification.
type Service struct {
	inquiries *service.Store[Inquiry]
	connector service.Connector[Inquiry]
	logger    zerolog.Logger
}

// NewService creates an inquiry service. SetConnector must be called before
// any RECEIVED inquiry is ingested.
func NewService() *Service {
	return &Service{
		inquiries: service.NewStore("inquiry", func(i Inquiry) string {
			return i.InquiryID()
		}),
		logger: logging.Component("inquiry"),
	}
}

// SetConnector attaches the quoting loopback connector.
func (s *Service) SetConnector(c service.Connector[Inquiry]) {
	s.connector = c
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[Inquiry]) {
	s.inquiries.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *Service) Listeners() []service.Listener[Inquiry] {
	return s.inquiries.Listeners()
}

// Inquiry returns an inquiry by id.
func (s *Service) Inquiry(inquiryID string) (Inquiry, error) {
	return s.inquiries.Get(inquiryID)
}

// OnMessage advances one inquiry through the lifecycle.
func (s *Service) OnMessage(i Inquiry) error {
	switch i.State() {
	case Received:
		s.inquiries.Put(i)
		s.logger.Debug().
			Str("inquiry_id", i.InquiryID()).
			Msg("Received inquiry, quoting")
		return s.connector.Publish(i)
	case Quoted:
		done := i.WithState(Done)
		s.logger.Debug().
			Str("inquiry_id", done.InquiryID()).
			Msg("Inquiry done")
		return s.inquiries.Ingest(done)
	default:
		s.inquiries.Put(i)
		return nil
	}
}

// SendQuote sets the quote price on an inquiry and notifies listeners. The
// state is left untouched; only the ingestion path transitions to DONE.
func (s *Service) SendQuote(inquiryID string, price fpdecimal.Decimal) error {
	i, err := s.inquiries.Get(inquiryID)
	if err != nil {
		return err
	}
	return s.inquiries.Ingest(i.WithPrice(price))
}

// RejectInquiry marks an inquiry REJECTED. Listeners are not notified; the
// audit stream records only completed inquiries.
func (s *Service) RejectInquiry(inquiryID string) error {
	i, err := s.inquiries.Get(inquiryID)
	if err != nil {
		return err
	}
	s.inquiries.Put(i.WithState(Rejected))
	return nil
}
