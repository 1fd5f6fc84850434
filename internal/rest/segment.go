package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rfmInsight/domain"
	"rfmInsight/pkg/logger"
	jsonres "rfmInsight/pkg/response"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SegmentHandler struct {
		validate *validator.Validate
		service  SegmentService
		timeout  time.Duration
	}

	SegmentService interface {
		Predict(ctx context.Context, recency, frequency, monetary float64) (domain.SegmentPrediction, error)
		Segments(ctx context.Context) ([]domain.SegmentPrediction, error)
	}

	// Fields are pointers so a missing value is told apart from zero.
	PredictSegmentRequest struct {
		Recency   *float64 `json:"recency" validate:"required,gte=0"`
		Frequency *float64 `json:"frequency" validate:"required,gte=0"`
		Monetary  *float64 `json:"monetary" validate:"required,gte=0"`
	}
)

func NewSegmentHandler(service SegmentService, timeout time.Duration) *SegmentHandler {
	return &SegmentHandler{
		validate: validator.New(),
		service:  service,
		timeout:  timeout,
	}
}

// POST /api/v1/segments/predict
// body: { "recency": 5, "frequency": 20, "monetary": 500.0 }
func (h *SegmentHandler) Predict(c echo.Context) error {
	var req PredictSegmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pred, err := h.service.Predict(ctx, *req.Recency, *req.Frequency, *req.Monetary)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, jsonres.Error(
				"MODEL_UNAVAILABLE", "Segment prediction failed", err.Error(),
			))
		}
		logger.Error("Failed to predict segment", err)
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(pred))
}

// GET /api/v1/segments
func (h *SegmentHandler) Segments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	segs, err := h.service.Segments(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, jsonres.Error(
				"MODEL_UNAVAILABLE", "Segment model unavailable", err.Error(),
			))
		}
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(segs))
}
