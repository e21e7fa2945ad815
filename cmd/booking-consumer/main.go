// Command booking-consumer drains the booking.created queue and appends a
// line per booking to booking.log so staff can follow new requests.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/kids-center-booking/internal/config"
	applog "github.com/iliyamo/kids-center-booking/internal/log"
	"github.com/iliyamo/kids-center-booking/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	applog.Configure(applog.Config{Level: cfg.LogLevel, Service: "kids-center-consumer"})
	logger := applog.WithComponent("booking-consumer")

	if cfg.RabbitURL == "" {
		logger.Error().Msg("RABBITMQ_URL (or AMQP_URL) is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("log_dir", cfg.BookingLogDir).Msg("consuming booking.created")
	if err := queue.StartBookingConsumer(ctx, cfg.RabbitURL, cfg.BookingLogDir); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("consumer stopped")
		os.Exit(1)
	}
	logger.Info().Msg("bye")
}
