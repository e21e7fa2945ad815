package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RootMessage is the fixed greeting served on GET /.
const RootMessage = "Kids Interactive Center Backend is running"

// Root answers GET / with a fixed greeting regardless of store state.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": RootMessage})
}

// Health is a liveness probe for load balancers.  It returns a plain text
// "ok" with HTTP 200 and never touches the store.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
