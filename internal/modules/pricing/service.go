package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/validator"
	"eventhire/internal/repository"
)

type Service struct {
	materials MaterialReader
	venues    VenueReader
	vehicles  VehicleReader
}

func NewService(materials MaterialReader, venues VenueReader, vehicles VehicleReader) *Service {
	return &Service{materials: materials, venues: venues, vehicles: vehicles}
}

// Quote prices req. Lines without a name or base price are completed from
// the catalog and dropped when the material is unknown. Distance comes from
// the request, then the venue's round trip, then zero; an unknown vehicle
// adds no logistics.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}

	km, err := s.distance(ctx, req)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	q := Compute(lines, *req.Date, km, vehicle)
	return &q, nil
}

func (s *Service) distance(ctx context.Context, req QuoteRequest) (decimal.Decimal, error) {
	if req.DistanceKm != nil {
		return *req.DistanceKm, nil
	}
	if req.VenueID == nil {
		return decimal.Zero, nil
	}
	v, err := s.venues.GetByID(ctx, *req.VenueID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return decimal.Zero, nil
	case err != nil:
		return decimal.Zero, err
	}
	return v.DistanceKmRound, nil
}

func (s *Service) vehicle(ctx context.Context, id *int64) (*domain.Vehicle, error) {
	if id == nil {
		return nil, nil
	}
	v, err := s.vehicles.GetByID(ctx, *id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (s *Service) lines(ctx context.Context, rows []QuoteLineRequest) ([]Line, error) {
	var missing []int64
	for _, r := range rows {
		if r.MaterialID > 0 && (r.Name == nil || r.BasePrice == nil) {
			missing = append(missing, r.MaterialID)
		}
	}
	catalog, err := s.materials.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	out := make([]Line, 0, len(rows))
	for _, r := range rows {
		if r.MaterialID <= 0 {
			continue
		}
		l := Line{MaterialID: r.MaterialID, Qty: decimal.NewFromInt(1)}
		if r.Qty != nil {
			l.Qty = *r.Qty
		}
		if r.Name == nil || r.BasePrice == nil {
			m, ok := catalog[r.MaterialID]
			if !ok {
				continue
			}
			l.Name, l.BasePrice = m.Name, m.BasePrice
		}
		if r.Name != nil {
			l.Name = *r.Name
		}
		if r.BasePrice != nil {
			l.BasePrice = *r.BasePrice
		}
		out = append(out, l)
	}
	return out, nil
}

// Simple is the flat list price of qty units: prezzo_base × qta.
func (s *Service) Simple(ctx context.Context, req SimpleRequest) (*SimpleQuote, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	found, err := s.materials.GetByIDs(ctx, []int64{req.MaterialID})
	if err != nil {
		return nil, err
	}
	m, ok := found[req.MaterialID]
	if !ok {
		return nil, ErrUnknownReference
	}
	if _, err := s.venues.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownReference
		}
		return nil, err
	}
	return &SimpleQuote{Total: Round2(m.BasePrice.Mul(decimal.NewFromInt(int64(req.Qty))))}, nil
}
