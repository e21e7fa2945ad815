package model

import "time"

// Booking is a reservation request submitted through the contact form.  ID
// and CreatedAt are assigned by the store; every other field is echoed back
// exactly as submitted, zero values included.
type Booking struct {
	ID            string    `json:"id"`
	ParentName    string    `json:"parent_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	ChildName     string    `json:"child_name"`
	ChildAge      int       `json:"child_age"`
	GuestsCount   int       `json:"guests_count"`
	PreferredDate Date      `json:"preferred_date"`
	ProgramKey    string    `json:"program_key"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}
