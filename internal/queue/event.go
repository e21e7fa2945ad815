// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedQueue is the durable queue booking events are routed to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a booking has been persisted.  It
// carries enough detail for the consumer to log or notify staff without
// querying the store.
type BookingCreatedEvent struct {
	BookingID     string `json:"booking_id"`
	ProgramKey    string `json:"program_key"`
	ProgramTitle  string `json:"program_title,omitempty"`
	ParentName    string `json:"parent_name"`
	Phone         string `json:"phone"`
	PreferredDate string `json:"preferred_date"`
	GuestsCount   int    `json:"guests_count,omitempty"`
	CreatedAt     string `json:"created_at"`
}
