package router

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/kids-center-booking/internal/catalog"
	"github.com/iliyamo/kids-center-booking/internal/config"
	"github.com/iliyamo/kids-center-booking/internal/handler"
	"github.com/iliyamo/kids-center-booking/internal/middleware"
	"github.com/iliyamo/kids-center-booking/internal/model"
	"github.com/iliyamo/kids-center-booking/internal/repository"
	"github.com/iliyamo/kids-center-booking/internal/validate"
)

// Store is what the server needs from a booking backend.
type Store interface {
	Insert(ctx context.Context, b *model.Booking) (string, error)
	List(ctx context.Context, limit int) ([]model.Booking, error)
	Status(ctx context.Context) repository.StoreStatus
}

// Deps carries everything NewServer wires together.  Store must be set
// (repository.Unavailable when no database is configured); Events and Redis
// are optional.
type Deps struct {
	Catalog   *catalog.Provider
	Store     Store
	Events    handler.EventPublisher
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Env       handler.DiagnosticsEnv
}

// NewServer builds the Echo instance with the shared middleware chain and
// all routes registered.
func NewServer(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Validator = validate.New()

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())
	// Public demo service: any origin, method and header.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE, echo.OPTIONS},
	}))

	cat := d.Catalog
	if cat == nil {
		cat = catalog.New()
	}
	store := d.Store
	if store == nil {
		store = repository.Unavailable{}
	}

	RegisterRoutes(e, &handler.DiagnosticsHandler{Store: store, Env: d.Env})
	RegisterCatalog(e, handler.NewCatalogHandler(cat), middleware.NewRedisCache(d.Cache, d.Redis))
	RegisterBookings(e, handler.NewBookingHandler(store, cat, d.Events), middleware.NewTokenBucket(d.RateLimit, d.Redis))
	return e
}
