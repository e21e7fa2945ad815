package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kids-center-booking/internal/repository"
)

// StoreStatusReporter is implemented by every booking store.
type StoreStatusReporter interface {
	Status(ctx context.Context) repository.StoreStatus
}

// DiagnosticsEnv reports which store variables were present at startup.
type DiagnosticsEnv struct {
	DatabaseURLSet  bool `json:"database_url_set"`
	DatabaseNameSet bool `json:"database_name_set"`
}

// DiagnosticsResponse is the body of GET /test.  Best-effort only; clients
// should not depend on its shape.
type DiagnosticsResponse struct {
	Backend  string                 `json:"backend"`
	Database repository.StoreStatus `json:"database"`
	Env      DiagnosticsEnv         `json:"env"`
}

// DiagnosticsHandler answers GET /test.
type DiagnosticsHandler struct {
	Store StoreStatusReporter
	Env   DiagnosticsEnv
}

// Diagnostics always returns 200; store problems are reported in the body.
func (h *DiagnosticsHandler) Diagnostics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	resp := DiagnosticsResponse{Backend: "running", Env: h.Env}
	if h.Store != nil {
		resp.Database = h.Store.Status(ctx)
	} else {
		resp.Database = repository.Unavailable{}.Status(ctx)
	}
	return c.JSON(http.StatusOK, resp)
}
