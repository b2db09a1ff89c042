package risk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nikolaydubina/fpdecimal"

	"github.com/quantsys/bondflow/pkg/refdata"
)

// PV01 is the dollar-value-of-a-basis-point risk carried on one instrument
// for its current aggregate position.
type PV01 struct {
	product  refdata.Bond
	pv01     fpdecimal.Decimal
	quantity int64
}

// NewPV01 creates a PV01 risk figure.
func NewPV01(product refdata.Bond, pv01 fpdecimal.Decimal, quantity int64) PV01 {
	return PV01{product: product, pv01: pv01, quantity: quantity}
}

// Product returns the instrument.
func (p PV01) Product() refdata.Bond {
	return p.product
}

// PV01 returns the per-unit PV01 value.
func (p PV01) PV01() fpdecimal.Decimal {
	return p.pv01
}

// Quantity returns the aggregate position the figure was computed for.
func (p PV01) Quantity() int64 {
	return p.quantity
}

// Risk returns pv01 times quantity, the total risk on the instrument.
// Per-unit values carry at most four decimal places while quantities run to
// billions, so the product is computed in integer ten-thousandths to stay
// inside int64.
func (p PV01) Risk() fpdecimal.Decimal {
	intPart, fracPart, _ := strings.Cut(p.pv01.String(), ".")
	whole, _ := strconv.ParseInt(intPart, 10, 64)
	for len(fracPart) < 4 {
		fracPart += "0"
	}
	frac, _ := strconv.ParseInt(fracPart[:4], 10, 64)

	scaled := (whole*10000 + frac) * p.quantity
	neg := scaled < 0
	if neg {
		scaled = -scaled
	}
	s := fmt.Sprintf("%d.%04d", scaled/10000, scaled%10000)
	if neg {
		s = "-" + s
	}
	d, _ := fpdecimal.FromString(s)
	return d
}

// PersistKey returns the key the audit sink files this figure under.
func (p PV01) PersistKey() string {
	return p.product.ProductID()
}

// ToFields renders the figure as ordered display strings.
func (p PV01) ToFields() []string {
	return []string{
		p.product.ProductID(),
		p.pv01.String(),
		strconv.FormatInt(p.quantity, 10),
		p.Risk().String(),
	}
}

// BucketedSector is a named basket of instruments risk can be summed over.
type BucketedSector struct {
	name     string
	products []refdata.Bond
}

// NewBucketedSector creates a sector bucket.
func NewBucketedSector(name string, products []refdata.Bond) BucketedSector {
	return BucketedSector{name: name, products: products}
}

// Name returns the sector name.
func (b BucketedSector) Name() string {
	return b.name
}

// Products returns the member instruments.
func (b BucketedSector) Products() []refdata.Bond {
	return b.products
}

// SectorRisk is the total PV01 risk and position summed over a sector's
// members.
type SectorRisk struct {
	sector   BucketedSector
	risk     fpdecimal.Decimal
	quantity int64
}

// NewSectorRisk creates a sector risk figure.
func NewSectorRisk(sector BucketedSector, risk fpdecimal.Decimal, quantity int64) SectorRisk {
	return SectorRisk{sector: sector, risk: risk, quantity: quantity}
}

// Sector returns the bucket the figure was summed over.
func (s SectorRisk) Sector() BucketedSector {
	return s.sector
}

// Risk returns the summed risk across members.
func (s SectorRisk) Risk() fpdecimal.Decimal {
	return s.risk
}

// Quantity returns the summed aggregate position across members.
func (s SectorRisk) Quantity() int64 {
	return s.quantity
}

// ToFields renders the figure as ordered display strings.
func (s SectorRisk) ToFields() []string {
	return []string{
		s.sector.Name(),
		strconv.FormatInt(s.quantity, 10),
		s.risk.String(),
	}
}
