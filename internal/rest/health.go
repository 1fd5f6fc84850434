package rest

import (
	"net/http"

	"rfmInsight/business/artifact"

	"github.com/labstack/echo/v4"
)

type ArtifactSummarizer interface {
	Summary() artifact.Summary
}

type HealthHandler struct {
	artifacts ArtifactSummarizer
	version   string
}

func NewHealthHandler(artifacts ArtifactSummarizer, version string) *HealthHandler {
	return &HealthHandler{
		artifacts: artifacts,
		version:   version,
	}
}

// GET /healthz
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"version":   h.version,
		"artifacts": h.artifacts.Summary(),
	})
}
