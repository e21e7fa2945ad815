package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/kids-center-booking/internal/handler"
)

// RegisterRoutes registers the service-level endpoints: the greeting, the
// liveness probe, the diagnostics report and Prometheus metrics.
func RegisterRoutes(e *echo.Echo, d *handler.DiagnosticsHandler) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	e.GET("/test", d.Diagnostics)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterCatalog exposes the program catalog.  The catalog never changes at
// runtime, so it is the one route behind the response cache.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	e.GET("/api/programs", h.ListPrograms, cache)
}

// RegisterBookings exposes booking submission and listing.  Only submission
// is rate limited; listing must always reflect the latest writes, so it is
// never cached.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, limiter echo.MiddlewareFunc) {
	e.POST("/api/bookings", h.CreateBooking, limiter)
	e.GET("/api/bookings", h.ListBookings)
}
