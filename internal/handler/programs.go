// Package handler exposes the HTTP handlers of the booking API.  This file
// serves the public program catalog; it has no error paths because the
// catalog is compiled in.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kids-center-booking/internal/model"
)

// ProgramLister is the read side of the catalog.
type ProgramLister interface {
	List() []model.Program
}

// CatalogHandler serves the program catalog to unauthenticated users.
type CatalogHandler struct {
	Catalog ProgramLister
}

// NewCatalogHandler panics on a nil catalog, like the other constructors.
func NewCatalogHandler(catalog ProgramLister) *CatalogHandler {
	if catalog == nil {
		panic("nil catalog passed to NewCatalogHandler")
	}
	return &CatalogHandler{Catalog: catalog}
}

// ListPrograms handles GET /api/programs.  The response is a bare JSON
// array in catalog order.
func (h *CatalogHandler) ListPrograms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.List())
}
