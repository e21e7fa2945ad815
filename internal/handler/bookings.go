package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	applog "github.com/iliyamo/kids-center-booking/internal/log"
	"github.com/iliyamo/kids-center-booking/internal/metrics"
	"github.com/iliyamo/kids-center-booking/internal/model"
	"github.com/iliyamo/kids-center-booking/internal/queue"
)

// MaxListedBookings caps GET /api/bookings.
const MaxListedBookings = 50

// BookingStore persists and lists bookings.  Implementations must be safe
// for concurrent use.
type BookingStore interface {
	Insert(ctx context.Context, b *model.Booking) (string, error)
	List(ctx context.Context, limit int) ([]model.Booking, error)
}

// EventPublisher announces persisted bookings.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// ProgramFinder resolves program keys to catalog entries.
type ProgramFinder interface {
	Get(key string) (model.Program, bool)
}

// BookingRequest is the payload accepted by POST /api/bookings.
type BookingRequest struct {
	ParentName    string     `json:"parent_name" validate:"required,min=1,max=100"`
	Phone         string     `json:"phone" validate:"required,min=5,max=32"`
	Email         string     `json:"email" validate:"omitempty,email,max=254"`
	ChildName     string     `json:"child_name" validate:"max=100"`
	ChildAge      int        `json:"child_age" validate:"min=0,max=17"`
	GuestsCount   int        `json:"guests_count" validate:"min=0,max=100"`
	PreferredDate model.Date `json:"preferred_date" validate:"required"`
	ProgramKey    string     `json:"program_key" validate:"required,max=64"`
	Comment       string     `json:"comment" validate:"max=1000"`
}

func (r BookingRequest) booking() model.Booking {
	return model.Booking{
		ParentName:    r.ParentName,
		Phone:         r.Phone,
		Email:         r.Email,
		ChildName:     r.ChildName,
		ChildAge:      r.ChildAge,
		GuestsCount:   r.GuestsCount,
		PreferredDate: r.PreferredDate,
		ProgramKey:    r.ProgramKey,
		Comment:       r.Comment,
	}
}

// BookingHandler accepts and lists booking submissions.  Catalog and Events
// are optional; a nil Events disables booking.created notifications.
type BookingHandler struct {
	Store   BookingStore
	Catalog ProgramFinder
	Events  EventPublisher
}

// NewBookingHandler panics if store is nil; use repository.Unavailable when
// no database is configured.
func NewBookingHandler(store BookingStore, catalog ProgramFinder, events EventPublisher) *BookingHandler {
	if store == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{Store: store, Catalog: catalog, Events: events}
}

// CreateBooking handles POST /api/bookings.  Malformed or invalid payloads
// get 422; store failures get 500 with the store's message.  On success the
// response is {"status":"ok","id":...}.  Identical payloads are stored as
// separate bookings.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail(bindMessage(err)))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail(err.Error()))
	}

	ctx := c.Request().Context()
	b := req.booking()
	id, err := h.Store.Insert(ctx, &b)
	if err != nil {
		metrics.IncStoreError("insert")
		logger := applog.WithComponent("bookings")
		logger.Error().Err(err).Str("program_key", b.ProgramKey).Msg("insert booking failed")
		return c.JSON(http.StatusInternalServerError, detail(err.Error()))
	}
	metrics.IncBookingsCreated()
	h.publish(ctx, id, b)
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "id": id})
}

// ListBookings handles GET /api/bookings.  It returns at most
// MaxListedBookings records, newest first, wrapped as {"items": [...]}.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	items, err := h.Store.List(c.Request().Context(), MaxListedBookings)
	if err != nil {
		metrics.IncStoreError("list")
		logger := applog.WithComponent("bookings")
		logger.Error().Err(err).Msg("list bookings failed")
		return c.JSON(http.StatusInternalServerError, detail(err.Error()))
	}
	if len(items) > MaxListedBookings {
		items = items[:MaxListedBookings]
	}
	if items == nil {
		items = []model.Booking{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// publish sends booking.created best-effort.  It outlives client
// cancellation but is bounded by its own timeout.
func (h *BookingHandler) publish(ctx context.Context, id string, b model.Booking) {
	if h.Events == nil {
		return
	}
	ev := queue.BookingCreatedEvent{
		BookingID:     id,
		ProgramKey:    b.ProgramKey,
		ParentName:    b.ParentName,
		Phone:         b.Phone,
		PreferredDate: b.PreferredDate.String(),
		GuestsCount:   b.GuestsCount,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if h.Catalog != nil {
		if p, ok := h.Catalog.Get(b.ProgramKey); ok {
			ev.ProgramTitle = p.Title
		}
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	err := h.Events.PublishBookingCreated(pctx, ev)
	metrics.RecordEventPublish(err)
	if err != nil {
		logger := applog.WithComponent("bookings")
		logger.Warn().Err(err).Str("booking_id", id).Msg("booking event not published")
	}
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
