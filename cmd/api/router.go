package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventhire/internal/availability"
	"eventhire/internal/config"
	"eventhire/internal/middleware"
	"eventhire/internal/modules/booking"
	"eventhire/internal/modules/calendar"
	"eventhire/internal/modules/catalog"
	"eventhire/internal/modules/directory"
	"eventhire/internal/modules/live"
	"eventhire/internal/modules/logistics"
	"eventhire/internal/modules/pricing"
	"eventhire/internal/modules/stats"
	"eventhire/internal/modules/warehouse"
	"eventhire/internal/notification"
	"eventhire/internal/repository"
)

func newRouter(cfg *config.Config, db *gorm.DB, hub *live.Hub, notifier notification.Publisher, log *zap.Logger) *gin.Engine {
	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	// repositories
	clientRepo := repository.NewClientRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	eventRepo := repository.NewEventRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	revisionRepo := repository.NewRevisionRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	technicianRepo := repository.NewTechnicianRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	engine := availability.New(cfg.Calendar.WarnThreshold)

	// services
	directoryService := directory.NewService(clientRepo, venueRepo)
	catalogService := catalog.NewService(materialRepo, eventRepo, engine)
	bookingService := booking.NewService(booking.Deps{
		Events:    eventRepo,
		Slots:     slotRepo,
		Revisions: revisionRepo,
		Materials: materialRepo,
		Clients:   clientRepo,
		Venues:    venueRepo,
	}, notifier, cfg.Calendar.NumLocations, log)
	calendarService := calendar.NewService(slotRepo, cfg.Calendar.NumLocations)
	warehouseService := warehouse.NewService(materialRepo, eventRepo, engine)
	pricingService := pricing.NewService(materialRepo, venueRepo, vehicleRepo)
	logisticsService := logistics.NewService(vehicleRepo, technicianRepo, eventRepo)
	statsService := stats.NewService(statsRepo)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.HTTP.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		directory.NewHandler(directoryService).RegisterRoutes(api)
		catalog.NewHandler(catalogService).RegisterRoutes(api)
		booking.NewHandler(bookingService).RegisterRoutes(api)
		calendar.NewHandler(calendarService).RegisterRoutes(api)
		warehouse.NewHandler(warehouseService).RegisterRoutes(api)
		pricing.NewHandler(pricingService).RegisterRoutes(api)
		logistics.NewHandler(logisticsService).RegisterRoutes(api)
		stats.NewHandler(statsService).RegisterRoutes(api)
	}

	live.NewHandler(hub, cfg.HTTP.AllowedOrigins, log).RegisterRoutes(r)

	return r
}
