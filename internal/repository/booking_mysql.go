package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/kids-center-booking/internal/model"
)

// BookingMySQLRepo keeps bookings in a single MySQL table for deployments
// that have no document store.  Identifiers are random UUIDs generated here.
type BookingMySQLRepo struct {
	db   *sql.DB // db is the underlying connection pool
	name string  // name is the schema reported by Status
}

// NewBookingMySQLRepo constructs a BookingMySQLRepo with the provided DB handle.
func NewBookingMySQLRepo(db *sql.DB, name string) *BookingMySQLRepo {
	return &BookingMySQLRepo{db: db, name: name}
}

// EnsureSchema creates the booking table when it is missing.
func (r *BookingMySQLRepo) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS booking (
	id             CHAR(36)      NOT NULL PRIMARY KEY,
	parent_name    VARCHAR(100)  NOT NULL,
	phone          VARCHAR(32)   NOT NULL,
	email          VARCHAR(254)  NOT NULL DEFAULT '',
	child_name     VARCHAR(100)  NOT NULL DEFAULT '',
	child_age      INT           NOT NULL DEFAULT 0,
	guests_count   INT           NOT NULL DEFAULT 0,
	preferred_date DATE          NULL,
	program_key    VARCHAR(64)   NOT NULL,
	comment        TEXT          NOT NULL,
	created_at     DATETIME(3)   NOT NULL,
	KEY idx_booking_created (created_at, id)
) DEFAULT CHARSET=utf8mb4`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Insert stores b under a new UUID.  b.ID and b.CreatedAt are filled in on
// success.
func (r *BookingMySQLRepo) Insert(ctx context.Context, b *model.Booking) (string, error) {
	const q = `INSERT INTO booking
	(id, parent_name, phone, email, child_name, child_age, guests_count, preferred_date, program_key, comment, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	id := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Millisecond)
	var date sql.NullTime
	if !b.PreferredDate.IsZero() {
		date = sql.NullTime{Time: b.PreferredDate.Time, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, q,
		id, b.ParentName, b.Phone, b.Email, b.ChildName, b.ChildAge, b.GuestsCount,
		date, b.ProgramKey, b.Comment, now,
	); err != nil {
		return "", err
	}
	b.ID = id
	b.CreatedAt = now
	return id, nil
}

// List returns up to limit bookings ordered by created_at then id, newest first.
func (r *BookingMySQLRepo) List(ctx context.Context, limit int) ([]model.Booking, error) {
	const q = `SELECT id, parent_name, phone, email, child_name, child_age, guests_count, preferred_date, program_key, comment, created_at
	           FROM booking ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var (
			b    model.Booking
			date sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.ParentName, &b.Phone, &b.Email, &b.ChildName, &b.ChildAge,
			&b.GuestsCount, &date, &b.ProgramKey, &b.Comment, &b.CreatedAt); err != nil {
			return nil, err
		}
		if date.Valid {
			b.PreferredDate = model.NewDate(date.Time)
		}
		b.CreatedAt = b.CreatedAt.UTC()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Status reports up to ten table names of the current schema.
func (r *BookingMySQLRepo) Status(ctx context.Context) StoreStatus {
	st := StoreStatus{Backend: "mysql", Name: r.name, Configured: true, Collections: []string{}}
	rows, err := r.db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		st.Error = err.Error()
		return st
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			st.Error = err.Error()
			return st
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		st.Error = err.Error()
		return st
	}
	st.Connected = true
	st.Collections = truncateNames(names)
	return st
}
