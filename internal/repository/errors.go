// Package repository defines the booking store adapters and the error
// values they share. Handlers map every store error to HTTP 500 and expose
// its message verbatim, so messages here are written for end users.
package repository

import "errors"

// ErrStoreNotConfigured is returned by the Unavailable store when the
// process started without a usable database connection.
var ErrStoreNotConfigured = errors.New("database is not configured")

// ErrInvalidDocument is returned when a stored record cannot be mapped to
// the wire schema, for example a preferred_date of an unexpected type.
var ErrInvalidDocument = errors.New("invalid booking document")
