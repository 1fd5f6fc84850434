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
	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		timeout  time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, productCode string) ([]domain.Recommendation, error)
		Products(ctx context.Context, prefix string, limit int) ([]string, error)
	}

	RecommendationResponse struct {
		ProductCode     string                  `json:"product_code"`
		Recommendations []domain.Recommendation `json:"recommendations"`
	}

	ProductsQuery struct {
		Prefix string `query:"prefix"`
		Limit  int    `query:"limit" validate:"gte=0,lte=100"`
	}
)

func NewRecommendationHandler(service RecommendationService, timeout time.Duration) *RecommendationHandler {
	return &RecommendationHandler{
		validate: validator.New(),
		service:  service,
		timeout:  timeout,
	}
}

// GET /api/v1/recommendations/:code
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	code := c.Param("code")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.Recommend(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, jsonres.Error(
				"NOT_FOUND", "Product code not found. Try a code from your dataset (e.g., 85123A).", echo.Map{"product_code": code},
			))
		}
		logger.Error("Failed to recommend products", err, "product_code", code)
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(RecommendationResponse{
		ProductCode:     code,
		Recommendations: recs,
	}))
}

// GET /api/v1/products?prefix=85&limit=20
func (h *RecommendationHandler) Products(c echo.Context) error {
	var q ProductsQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(&q); err != nil {
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	codes, err := h.service.Products(ctx, q.Prefix, q.Limit)
	if err != nil {
		logger.Error("Failed to list products", err)
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(codes))
}
