package repository

import (
	"context"

	"github.com/iliyamo/kids-center-booking/internal/model"
)

// Unavailable stands in for the booking store when DATABASE_URL or
// DATABASE_NAME is missing, or the initial connection failed.  The service
// keeps serving the catalog while every booking call fails.
type Unavailable struct {
	// Reason is reported by Status; defaults to ErrStoreNotConfigured.
	Reason error
}

func (u Unavailable) err() error {
	if u.Reason != nil {
		return u.Reason
	}
	return ErrStoreNotConfigured
}

// Insert always fails with the unavailability reason.
func (u Unavailable) Insert(ctx context.Context, b *model.Booking) (string, error) {
	return "", u.err()
}

// List always fails with the unavailability reason.
func (u Unavailable) List(ctx context.Context, limit int) ([]model.Booking, error) {
	return nil, u.err()
}

// Status reports the store as disconnected.  Configured is true only when
// a connection was attempted and failed.
func (u Unavailable) Status(ctx context.Context) StoreStatus {
	return StoreStatus{
		Backend:     "none",
		Configured:  u.Reason != nil,
		Collections: []string{},
		Error:       u.err().Error(),
	}
}
