package main

import (
	"os"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cleanbook/internal/config"
	"cleanbook/internal/database"
	"cleanbook/internal/middleware"
	"cleanbook/internal/modules/auth"
	"cleanbook/internal/modules/availability"
	"cleanbook/internal/modules/booking"
	"cleanbook/internal/modules/catalog"
	"cleanbook/internal/notify"
	jwtsvc "cleanbook/internal/pkg/jwt"
	"cleanbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		logger.Info().Str("addr", cfg.RedisAddr).Msg("availability cache enabled")
	}

	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notify.NewHub()
	calendar := notify.NewHTTPCalendarClient(cfg.CalendarBaseURL)
	syncDispatcher := notify.NewSyncDispatcher(hub, calendar, userRepo, logger)

	var dispatcher notify.Dispatcher = syncDispatcher
	if cfg.DispatchMode == "async" {
		bus := EventBus.New()
		if err := notify.SubscribeSync(bus, syncDispatcher); err != nil {
			logger.Fatal().Err(err).Msg("event bus subscription failed")
		}
		dispatcher = notify.NewBusDispatcher(bus)
		logger.Info().Msg("booking side effects dispatched async")
	}

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(storeRepo, catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService, userRepo)

	availabilityCache := availability.NewCache(rdb, 30*time.Second)
	availabilityService := availability.NewService(
		storeRepo, catalogRepo, bookingRepo, shiftRepo,
		availabilityCache, cfg.SlotIntervalMin, cfg.TravelPaddingMin,
	)
	availabilityHandler := availability.NewHandler(availabilityService)

	bookingService := booking.NewService(
		storeRepo, catalogRepo, bookingRepo, bookingRepo, auditRepo,
		dispatcher, logger, cfg.TravelPaddingMin, cfg.PendingTTL,
	)
	bookingHandler := booking.NewHandler(bookingService)

	wsHandler := notify.NewWSHandler(hub, j, logger)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		wsHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("api listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
