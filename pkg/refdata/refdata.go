// Package refdata provides the read-only instrument reference data consumed
// by the trading services: the on-the-run Treasury table and per-unit PV01
// values. A Source is injected into service constructors; there is no
// process-wide table.
package refdata

import (
	"fmt"
	"strings"
	"time"

	"github.com/nikolaydubina/fpdecimal"

	// Sets the global decimal precision before any table value is parsed.
	_ "github.com/quantsys/bondflow/pkg/bondprice"
	"github.com/quantsys/bondflow/pkg/service"
)

// Source resolves bond identifiers and risk reference values.
type Source interface {
	// BondByID returns the bond for a CUSIP.
	BondByID(cusip string) (Bond, error)
	// PV01 returns the per-unit PV01 for a CUSIP. Values carry at most four
	// decimal places; risk aggregation computes in integer ten-thousandths.
	PV01(cusip string) (fpdecimal.Decimal, error)
	// Bonds returns every known bond.
	Bonds() []Bond
}

type entry struct {
	bond Bond
	pv01 fpdecimal.Decimal
}

// StaticSource is an immutable in-memory Source.
type StaticSource struct {
	byID  map[string]entry
	order []string
}

// NewStaticSource builds a source from parallel bond/pv01 slices. It panics
// when a pv01 value carries more than four decimal places, since downstream
// risk math would silently truncate it.
func NewStaticSource(bonds []Bond, pv01s []fpdecimal.Decimal) *StaticSource {
	s := &StaticSource{byID: make(map[string]entry, len(bonds))}
	for i, b := range bonds {
		if !tenThousandths(pv01s[i]) {
			panic(fmt.Sprintf("refdata: pv01 %s for %s has more than four decimal places",
				pv01s[i].String(), b.ProductID()))
		}
		s.byID[b.ProductID()] = entry{bond: b, pv01: pv01s[i]}
		s.order = append(s.order, b.ProductID())
	}
	return s
}

// tenThousandths reports whether d is exactly representable in units of
// 0.0001.
func tenThousandths(d fpdecimal.Decimal) bool {
	_, frac, _ := strings.Cut(d.String(), ".")
	if len(frac) <= 4 {
		return true
	}
	return strings.TrimRight(frac[4:], "0") == ""
}

// BondByID implements Source.
func (s *StaticSource) BondByID(cusip string) (Bond, error) {
	e, ok := s.byID[cusip]
	if !ok {
		return Bond{}, fmt.Errorf("bond %q: %w", cusip, service.ErrNotFound)
	}
	return e.bond, nil
}

// PV01 implements Source.
func (s *StaticSource) PV01(cusip string) (fpdecimal.Decimal, error) {
	e, ok := s.byID[cusip]
	if !ok {
		return fpdecimal.Zero, fmt.Errorf("pv01 %q: %w", cusip, service.ErrNotFound)
	}
	return e.pv01, nil
}

// Bonds implements Source.
func (s *StaticSource) Bonds() []Bond {
	bonds := make([]Bond, 0, len(s.order))
	for _, id := range s.order {
		bonds = append(bonds, s.byID[id].bond)
	}
	return bonds
}

// OnTheRun returns the seven on-the-run Treasuries (2Y through 30Y, issue
// date 2022-11) with their per-unit PV01 values.
func OnTheRun() *StaticSource {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	bonds := []Bond{
		NewBond("91282CFX4", "US2Y", date(2024, time.November, 30)),
		NewBond("91282CFW6", "US3Y", date(2025, time.November, 15)),
		NewBond("91282CFZ9", "US5Y", date(2027, time.November, 30)),
		NewBond("91282CFY2", "US7Y", date(2029, time.November, 30)),
		NewBond("91282CFV8", "US10Y", date(2032, time.November, 15)),
		NewBond("912810TM0", "US20Y", date(2042, time.November, 30)),
		NewBond("912810TL2", "US30Y", date(2052, time.November, 15)),
	}
	pv01s := []fpdecimal.Decimal{
		mustDecimal("0.0185"),
		mustDecimal("0.0275"),
		mustDecimal("0.0443"),
		mustDecimal("0.0614"),
		mustDecimal("0.0857"),
		mustDecimal("0.1603"),
		mustDecimal("0.2186"),
	}
	return NewStaticSource(bonds, pv01s)
}

func mustDecimal(s string) fpdecimal.Decimal {
	d, err := fpdecimal.FromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
