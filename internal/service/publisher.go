// Package service publishes booking domain events to RabbitMQ.  Errors are
// logged and returned so callers can ignore them without interrupting the
// request flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	applog "github.com/iliyamo/kids-center-booking/internal/log"
	q "github.com/iliyamo/kids-center-booking/internal/queue"
)

// BookingPublisher sends booking.created events.  A nil publisher, or one
// built with an empty URL, is a no-op.
type BookingPublisher struct {
	url string
}

// NewBookingPublisher returns nil when url is empty so events are disabled.
func NewBookingPublisher(url string) *BookingPublisher {
	if url == "" {
		return nil
	}
	return &BookingPublisher{url: url}
}

// PublishBookingCreated publishes event to the booking.created queue.  The
// connection is opened per call; booking volume is low and this keeps the
// broker optional.  Messages are marked as persistent.
func (p *BookingPublisher) PublishBookingCreated(ctx context.Context, event q.BookingCreatedEvent) error {
	if p == nil || p.url == "" {
		return nil
	}
	logger := applog.WithComponent("rabbitmq")

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(3 * time.Second)})
	if err != nil {
		logger.Warn().Err(err).Msg("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Warn().Err(err).Msg("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.BookingCreatedQueue, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
		logger.Warn().Err(err).Msg("queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.BookingID,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                    // default exchange
		q.BookingCreatedQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		logger.Warn().Err(err).Str("booking_id", event.BookingID).Msg("publish failed")
		return err
	}
	return nil
}
