package risk

import (
	"fmt"

	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog"

	"github.com/quantsys/bondflow/pkg/logging"
	"github.com/quantsys/bondflow/pkg/position"
	"github.com/quantsys/bondflow/pkg/refdata"
	"github.com/quantsys/bondflow/pkg/service"
)

// Service computes PV01 risk from position updates, keyed on product
// identifier. Per-unit PV01 values come from the injected reference data.
type Service struct {
	figures *service.Store[PV01]
	refdata refdata.Source
	logger  zerolog.Logger
}

// NewService creates a risk service.
func NewService(src refdata.Source) *Service {
	return &Service{
		figures: service.NewStore("risk", func(p PV01) string {
			return p.Product().ProductID()
		}),
		refdata: src,
		logger:  logging.Component("risk"),
	}
}

// AddListener registers a downstream listener.
func (s *Service) AddListener(l service.Listener[PV01]) {
	s.figures.AddListener(l)
}

// Listeners returns the registered listeners in registration order.
func (s *Service) Listeners() []service.Listener[PV01] {
	return s.figures.Listeners()
}

// PV01 returns the latest risk figure for a product.
func (s *Service) PV01(productID string) (PV01, error) {
	return s.figures.Get(productID)
}

// AddPosition recomputes the instrument's risk from its aggregate position
// and notifies listeners once.
func (s *Service) AddPosition(p position.Position) error {
	productID := p.Product().ProductID()
	perUnit, err := s.refdata.PV01(productID)
	if err != nil {
		return err
	}

	figure := NewPV01(p.Product(), perUnit, p.AggregatePosition())

	s.logger.Debug().
		Str("product", productID).
		Int64("quantity", figure.Quantity()).
		Str("risk", figure.Risk().String()).
		Msg("Recomputed risk")

	return s.figures.Ingest(figure)
}

// BucketedRisk sums risk and position over a sector's members into one
// figure. Every member must already carry a risk figure; a missing member is
// an error.
func (s *Service) BucketedRisk(sector BucketedSector) (SectorRisk, error) {
	total := fpdecimal.Zero
	var quantity int64
	for _, bond := range sector.Products() {
		figure, err := s.figures.Get(bond.ProductID())
		if err != nil {
			return SectorRisk{}, fmt.Errorf("sector %s: %w", sector.Name(), err)
		}
		total = total.Add(figure.Risk())
		quantity += figure.Quantity()
	}
	return NewSectorRisk(sector, total, quantity), nil
}

// PositionListener returns the listener to register on the position service.
func (s *Service) PositionListener() service.Listener[position.Position] {
	return &positionListener{service: s}
}

type positionListener struct {
	service.NoopListener[position.Position]
	service *Service
}

func (l *positionListener) OnAdd(p position.Position) error {
	return l.service.AddPosition(p)
}
