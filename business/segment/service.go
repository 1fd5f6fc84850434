package segment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"rfmInsight/domain"
	"rfmInsight/pkg/logger"
	"rfmInsight/pkg/metrics"
)

// ModelProvider hands out the fitted scaler and clustering model.
type ModelProvider interface {
	Scaler(ctx context.Context) (*domain.Scaler, error)
	ClusterModel(ctx context.Context) (*domain.ClusterModel, error)
}

type Service struct {
	models ModelProvider
	labels Labels
}

func NewService(models ModelProvider, labels Labels) *Service {
	if labels == nil {
		labels = NewLabels(nil)
	}
	return &Service{
		models: models,
		labels: labels,
	}
}

// Predict scales (recency, frequency, monetary) with the fitted scaler and
// assigns the nearest cluster. Every failure, including a panic inside the
// computation, is returned as domain.ErrModelUnavailable.
func (s *Service) Predict(ctx context.Context, recency, frequency, monetary float64) (pred domain.SegmentPrediction, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			pred = domain.SegmentPrediction{}
			err = fmt.Errorf("%w: panic: %v", domain.ErrModelUnavailable, r)
		}

		metrics.PredictLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.PredictRequests.WithLabelValues(metrics.OutcomeModelUnavailable).Inc()
			logger.Error("Segment prediction failed", err)
			return
		}
		metrics.PredictRequests.WithLabelValues(metrics.OutcomeOK).Inc()
		metrics.SegmentAssignments.WithLabelValues(strconv.Itoa(pred.ClusterID)).Inc()
	}()

	if err := ctx.Err(); err != nil {
		return domain.SegmentPrediction{}, fmt.Errorf("%w: context error: %w", domain.ErrModelUnavailable, err)
	}

	scaler, clusters, err := s.load(ctx)
	if err != nil {
		return domain.SegmentPrediction{}, err
	}

	scaled, err := transform(scaler, []float64{recency, frequency, monetary})
	if err != nil {
		return domain.SegmentPrediction{}, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}

	id, err := nearest(clusters, scaled)
	if err != nil {
		return domain.SegmentPrediction{}, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}

	return domain.SegmentPrediction{
		ClusterID: id,
		Label:     s.labels.For(id),
	}, nil
}

// Segments lists every cluster id the model can assign, with its label.
func (s *Service) Segments(ctx context.Context) ([]domain.SegmentPrediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	_, clusters, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SegmentPrediction, 0, len(clusters.Centroids))
	for _, id := range clusters.Clusters() {
		out = append(out, domain.SegmentPrediction{ClusterID: id, Label: s.labels.For(id)})
	}
	return out, nil
}

func (s *Service) load(ctx context.Context) (*domain.Scaler, *domain.ClusterModel, error) {
	if s.models == nil {
		return nil, nil, fmt.Errorf("%w: no model provider", domain.ErrModelUnavailable)
	}

	scaler, err := s.models.Scaler(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: scaler: %w", domain.ErrModelUnavailable, err)
	}
	if err := scaler.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: scaler: %w", domain.ErrModelUnavailable, err)
	}

	clusters, err := s.models.ClusterModel(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cluster model: %w", domain.ErrModelUnavailable, err)
	}
	if err := clusters.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: cluster model: %w", domain.ErrModelUnavailable, err)
	}

	return scaler, clusters, nil
}
