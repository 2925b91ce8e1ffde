package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventhire/internal/config"
	"eventhire/internal/database"
	"eventhire/internal/domain"
	"eventhire/internal/logging"
	"eventhire/internal/modules/booking"
	"eventhire/internal/notification"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

func main() {
	cfg, err := config.Load(os.Getenv("EVENTHIRE_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.AppEnv, cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if config.IsProdLike(cfg.AppEnv) {
		log.Fatal("refusing to seed a production database", zap.String("env", cfg.AppEnv))
	}

	db, err := database.Connect(cfg.Database.URL, log)
	if err != nil {
		log.Fatal("db connection failed", zap.Error(err))
	}
	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	if err := seed(ctx, db, cfg.Calendar.NumLocations, log); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("demo data loaded")
}

func seed(ctx context.Context, db *gorm.DB, numLocations int, log *zap.Logger) error {
	log.Info("cleaning old data")
	for _, table := range []string{
		"event_revisions", "calendar_slots", "event_lines", "events",
		"material_suggestions", "suggestion_rules", "materials",
		"vehicles", "technicians", "venues", "clients",
	} {
		if err := db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	year := dates.Today().Year

	// clients and venues
	clientRepo := repository.NewClientRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	var clients []domain.Client
	for _, name := range []string{"Rossi Eventi", "Bianchi Catering", "Comune di Verona"} {
		c := domain.Client{UID: uuid.NewString(), Name: name}
		if err := clientRepo.Create(ctx, &c, year); err != nil {
			return err
		}
		clients = append(clients, c)
	}
	var venues []domain.Venue
	for i, name := range []string{"Villa Aurora", "Palazzo della Gran Guardia", "Cascina San Marco"} {
		km := decimal.NewFromInt(int64(15 + 20*i))
		v := domain.Venue{UID: uuid.NewString(), Name: name, City: ptr("Verona"), DistanceKm: km, DistanceKmRound: km.Mul(decimal.NewFromInt(2))}
		if err := venueRepo.Create(ctx, &v, year); err != nil {
			return err
		}
		venues = append(venues, v)
	}

	// catalog
	log.Info("creating materials")
	materialRepo := repository.NewMaterialRepository(db)
	catalog := []domain.Material{
		{Name: "Sedia Chiavarina", Category: ptr("Arredo"), Subcategory: ptr("Sedute"), Stock: 300, BasePrice: decimal.RequireFromString("2.50"), UnitLabel: domain.UnitPiece},
		{Name: "Tavolo tondo 180", Category: ptr("Arredo"), Subcategory: ptr("Tavoli"), Stock: 40, BasePrice: decimal.RequireFromString("12.00"), UnitLabel: domain.UnitPiece},
		{Name: "Tovaglia bianca", Category: ptr("Tessili"), Stock: 60, BasePrice: decimal.RequireFromString("4.00"), UnitLabel: domain.UnitPiece},
		{Name: "Gazebo 4x4", Category: ptr("Strutture"), Stock: 6, BasePrice: decimal.RequireFromString("180.00"), UnitLabel: domain.UnitPiece},
		{Name: "Tecnico luci", Category: ptr("Personale"), BasePrice: decimal.RequireFromString("35.00"), UnitLabel: domain.UnitHour, IsTechnician: true},
		{Name: "Furgone", Category: ptr("Logistica"), BasePrice: decimal.RequireFromString("0.90"), UnitLabel: domain.UnitKm, IsVehicle: true},
	}
	for i := range catalog {
		if err := materialRepo.Create(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	if err := materialRepo.CreateSuggestion(ctx, &domain.MaterialSuggestion{
		TriggerID: catalog[1].ID, SuggestedID: catalog[2].ID, QtyDefault: 1, Label: "Tovaglia per tavolo", Active: true,
	}); err != nil {
		return err
	}

	// fleet and crew
	vehicleRepo := repository.NewVehicleRepository(db)
	for _, v := range []domain.Vehicle{
		{Plate: "FV123AB", Description: "Furgone Ducato", CostPerKm: decimal.RequireFromString("0.45"), CallOutCost: decimal.NewFromInt(30), Active: true},
		{Plate: "GK987ZT", Description: "Camion 75q", CostPerKm: decimal.RequireFromString("0.80"), CallOutCost: decimal.NewFromInt(60), Active: true},
	} {
		if err := vehicleRepo.Create(ctx, &v); err != nil {
			return err
		}
	}
	technicianRepo := repository.NewTechnicianRepository(db)
	for _, t := range []domain.Technician{
		{Name: "Marco Verdi", Role: "Montaggio", HourlyRate: decimal.NewFromInt(25), CostPerKm: decimal.RequireFromString("0.30")},
		{Name: "Luca Neri", Role: "Luci e audio", HourlyRate: decimal.NewFromInt(35), CostPerKm: decimal.RequireFromString("0.30")},
	} {
		if err := technicianRepo.Create(ctx, &t); err != nil {
			return err
		}
	}

	// events go through the booking service so slots and revisions line up
	log.Info("creating events")
	svc := booking.NewService(booking.Deps{
		Events:    repository.NewEventRepository(db),
		Slots:     repository.NewSlotRepository(db),
		Revisions: repository.NewRevisionRepository(db),
		Materials: materialRepo,
		Clients:   clientRepo,
		Venues:    venueRepo,
	}, notification.Nop{}, numLocations, log)

	start := dates.Today().AddDays(7)
	statuses := []domain.EventStatus{domain.EventConfirmed, domain.EventDraft, domain.EventInvoiced, domain.EventConfirmed, domain.EventCancelled}
	for i, status := range statuses {
		day := start.AddDays(i * 3)
		req := booking.EventRequest{
			Title:    fmt.Sprintf("Evento demo %d", i+1),
			Date:     day.Ptr(),
			Status:   status,
			ClientID: clients[i%len(clients)].ID,
			VenueID:  venues[i%len(venues)].ID,
			Lines: []booking.LineRequest{
				{MaterialID: catalog[0].ID, Qty: 80 + 20*i},
				{MaterialID: catalog[1].ID, Qty: 10 + i, CoverageDays: 2},
				{MaterialID: catalog[4].ID, Qty: 6, IsTechnician: true},
			},
		}
		if i == 3 {
			req.DateFrom = day.Ptr()
			req.DateTo = day.AddDays(2).Ptr()
			req.Lines = append(req.Lines, booking.LineRequest{MaterialID: catalog[3].ID, Qty: 4})
		}
		if _, err := svc.Create(ctx, req); err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
