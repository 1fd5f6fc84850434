package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rfmInsight/pkg/logger"
	jsonres "rfmInsight/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error that escapes a handler as a JSON envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		logger.Error("Unhandled error", err, "path", c.Path())
	}

	status := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, jsonres.Error(status, message, nil))
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}
