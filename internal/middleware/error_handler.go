package middleware

import (
	"net/http"

	"devenirShop/pkg/logger"
	jsonres "devenirShop/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler maps unhandled errors to the common JSON envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled_error", "error", err, "path", c.Path())
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
