package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/validator"
	"eventhire/internal/repository"
)

type Service struct {
	clients ClientRepository
	venues  VenueRepository
	now     func() time.Time
}

func NewService(clients ClientRepository, venues VenueRepository) *Service {
	return &Service{clients: clients, venues: venues, now: time.Now}
}

func (s *Service) ListClients(ctx context.Context, search string) ([]domain.Client, error) {
	return s.clients.List(ctx, search)
}

func (s *Service) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	return c, mapErr(err)
}

func (s *Service) CreateClient(ctx context.Context, req ClientRequest) (*domain.Client, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	c := &domain.Client{
		UID:   uuid.NewString(),
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.clients.Create(ctx, c, s.now().Year()); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (s *Service) UpdateClient(ctx context.Context, id int64, req ClientRequest) (*domain.Client, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Email = req.Email
	c.Phone = req.Phone
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (s *Service) DeleteClient(ctx context.Context, id int64) error {
	return mapErr(s.clients.Delete(ctx, id))
}

func (s *Service) ListVenues(ctx context.Context, search string) ([]domain.Venue, error) {
	return s.venues.List(ctx, search)
}

func (s *Service) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	v, err := s.venues.GetByID(ctx, id)
	return v, mapErr(err)
}

func (s *Service) CreateVenue(ctx context.Context, req VenueRequest) (*domain.Venue, error) {
	if err := checkVenue(&req); err != nil {
		return nil, err
	}
	v := &domain.Venue{UID: uuid.NewString()}
	applyVenue(v, req)
	if err := s.venues.Create(ctx, v, s.now().Year()); err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (s *Service) UpdateVenue(ctx context.Context, id int64, req VenueRequest) (*domain.Venue, error) {
	if err := checkVenue(&req); err != nil {
		return nil, err
	}
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	applyVenue(v, req)
	if err := s.venues.Update(ctx, v); err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (s *Service) DeleteVenue(ctx context.Context, id int64) error {
	return mapErr(s.venues.Delete(ctx, id))
}

func applyVenue(v *domain.Venue, req VenueRequest) {
	v.Name = strings.TrimSpace(req.Name)
	v.Address = req.Address
	v.City = req.City
	v.PostalCode = req.PostalCode
	v.Province = req.Province
	v.DistanceKm = decimal.Zero
	if req.DistanceKm != nil {
		v.DistanceKm = *req.DistanceKm
	}
	v.DistanceKmRound = decimal.Zero
	if req.DistanceKmRound != nil {
		v.DistanceKmRound = *req.DistanceKmRound
	}
}

func checkVenue(req *VenueRequest) error {
	if err := validator.Check(req); err != nil {
		return err
	}
	for field, d := range map[string]*decimal.Decimal{"distanza_km": req.DistanceKm, "distanza_km_ar": req.DistanceKmRound} {
		if d != nil && d.IsNegative() {
			return validator.FieldErrors{field: "gte"}
		}
	}
	return nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInUse):
		return ErrInUse
	default:
		return err
	}
}
