package rest

import (
	"net/http"

	jsonres "rfmInsight/pkg/response"

	"github.com/labstack/echo/v4"
)

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", "Invalid request", err.Error()))
}

func internalError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, jsonres.Error("INTERNAL_SERVER_ERROR", "Internal server error", err.Error()))
}
