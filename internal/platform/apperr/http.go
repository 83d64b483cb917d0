package apperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPError converts an error into the echo.HTTPError a handler should
// return. Unknown errors surface as 500 without leaking internals.
func HTTPError(err error) *echo.HTTPError {
	switch KindOf(err) {
	case KindValidation:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case KindConflict:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case KindTransport:
		return echo.NewHTTPError(http.StatusBadGateway, "upstream store unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
