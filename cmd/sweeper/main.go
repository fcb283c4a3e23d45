package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cleanbook/internal/config"
	"cleanbook/internal/database"
	"cleanbook/internal/repository"
)

// The sweeper physically cancels expired pending_payment bookings. Capacity
// math never waits for it: the availability engines already treat expired
// holds as released.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "sweeper").Logger()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	bookingRepo := repository.NewBookingRepository(db)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := bookingRepo.CancelExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error().Err(err).Msg("sweep failed")
			return
		}
		if n > 0 {
			logger.Info().Int64("cancelled", n).Msg("expired holds swept")
		}
	}

	c := cron.New()
	if _, err := c.AddFunc("@every 1m", sweep); err != nil {
		logger.Fatal().Err(err).Msg("cron setup failed")
	}

	sweep()
	c.Start()
	logger.Info().Msg("sweeper running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-c.Stop().Done()
	logger.Info().Msg("sweeper stopped")
}
