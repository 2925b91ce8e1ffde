package logistics

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/validator"
	"eventhire/internal/repository"
)

type Service struct {
	vehicles    VehicleRepository
	technicians TechnicianRepository
	events      EventReader
}

func NewService(vehicles VehicleRepository, technicians TechnicianRepository, events EventReader) *Service {
	return &Service{vehicles: vehicles, technicians: technicians, events: events}
}

func (s *Service) ListVehicles(ctx context.Context, activeOnly bool) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx, activeOnly)
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	return v, mapErr(err)
}

func (s *Service) CreateVehicle(ctx context.Context, req VehicleRequest) (*domain.Vehicle, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	v := &domain.Vehicle{Active: true}
	applyVehicle(v, req)
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (s *Service) UpdateVehicle(ctx context.Context, id int64, req VehicleRequest) (*domain.Vehicle, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	applyVehicle(v, req)
	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	return mapErr(s.vehicles.Delete(ctx, id))
}

func applyVehicle(v *domain.Vehicle, req VehicleRequest) {
	v.Plate = strings.ToUpper(strings.TrimSpace(req.Plate))
	v.Description = strings.TrimSpace(req.Description)
	if req.CostPerKm != nil {
		v.CostPerKm = *req.CostPerKm
	}
	if req.CallOutCost != nil {
		v.CallOutCost = *req.CallOutCost
	}
	if req.Active != nil {
		v.Active = *req.Active
	}
}

func (s *Service) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	return s.technicians.List(ctx)
}

func (s *Service) GetTechnician(ctx context.Context, id int64) (*domain.Technician, error) {
	t, err := s.technicians.GetByID(ctx, id)
	return t, mapErr(err)
}

func (s *Service) CreateTechnician(ctx context.Context, req TechnicianRequest) (*domain.Technician, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	t := &domain.Technician{}
	applyTechnician(t, req)
	if err := s.technicians.Create(ctx, t); err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (s *Service) UpdateTechnician(ctx context.Context, id int64, req TechnicianRequest) (*domain.Technician, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	t, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	applyTechnician(t, req)
	if err := s.technicians.Update(ctx, t); err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (s *Service) DeleteTechnician(ctx context.Context, id int64) error {
	return mapErr(s.technicians.Delete(ctx, id))
}

func applyTechnician(t *domain.Technician, req TechnicianRequest) {
	t.Name = strings.TrimSpace(req.Name)
	t.Role = strings.TrimSpace(req.Role)
	t.Email, t.Phone, t.Notes = req.Email, req.Phone, req.Notes
	if req.HourlyRate != nil {
		t.HourlyRate = *req.HourlyRate
	}
	if req.CostPerKm != nil {
		t.CostPerKm = *req.CostPerKm
	}
}

// Preview prices the travel of every active vehicle and every technician
// to an event. The distance is kmOverride when given, else the event's own
// distance, else the venue's one-way distance.
func (s *Service) Preview(ctx context.Context, eventID int64, kmOverride *decimal.Decimal) (*Preview, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	km := ev.RelevantDistanceKm()
	if kmOverride != nil {
		km = *kmOverride
	}

	vehicles, err := s.vehicles.List(ctx, true)
	if err != nil {
		return nil, err
	}
	techs, err := s.technicians.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &Preview{
		EventID:     ev.ID,
		DistanceKm:  km,
		Vehicles:    make([]CostRow, 0, len(vehicles)),
		Technicians: make([]CostRow, 0, len(techs)),
	}
	for _, v := range vehicles {
		cost := v.TripCost(km).Round(2)
		out.VehiclesTotal = out.VehiclesTotal.Add(cost)
		out.Vehicles = append(out.Vehicles, CostRow{ID: v.ID, Name: vehicleName(v), CostPerKm: v.CostPerKm, Km: km, Total: cost})
	}
	for _, t := range techs {
		cost := t.TravelCost(km).Round(2)
		out.TechniciansTotal = out.TechniciansTotal.Add(cost)
		out.Technicians = append(out.Technicians, CostRow{ID: t.ID, Name: t.Name, Role: t.Role, CostPerKm: t.CostPerKm, Km: km, Total: cost})
	}
	out.Total = out.VehiclesTotal.Add(out.TechniciansTotal)
	return out, nil
}

func vehicleName(v domain.Vehicle) string {
	if v.Description == "" {
		return v.Plate
	}
	return v.Plate + " (" + v.Description + ")"
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicatePlate
	default:
		return err
	}
}
