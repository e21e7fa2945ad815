package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	applog "github.com/iliyamo/kids-center-booking/internal/log"
)

// detail builds the {"detail": ...} error body used by every endpoint.
func detail(msg string) echo.Map {
	return echo.Map{"detail": msg}
}

// HTTPErrorHandler renders errors that escape handlers (unknown routes,
// wrong methods, panics turned into errors by Recover) in the same
// {"detail": ...} shape the handlers use.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
		if he.Internal != nil && code >= http.StatusInternalServerError {
			msg = he.Internal.Error()
		}
	}
	if code >= http.StatusInternalServerError {
		logger := applog.WithComponent("http")
		logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, detail(msg))
	}
	if werr != nil {
		logger := applog.WithComponent("http")
		logger.Error().Err(werr).Msg("write error response")
	}
}
