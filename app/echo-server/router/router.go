package router

import (
	"rfmInsight/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	api.GET("/recommendations/:code", handler.Recommend)
	api.GET("/products", handler.Products)
}

func SetSegmentRoutes(api *echo.Group, handler *rest.SegmentHandler) {
	segments := api.Group("/segments")
	segments.GET("", handler.Segments)
	segments.POST("/predict", handler.Predict)
}

func SetOpsRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
