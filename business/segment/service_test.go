package segment

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"rfmInsight/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticModels struct {
	mu       sync.Mutex
	scaler   *domain.Scaler
	clusters *domain.ClusterModel
	err      error
}

func (m *staticModels) Scaler(ctx context.Context) (*domain.Scaler, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.scaler, nil
}

func (m *staticModels) ClusterModel(ctx context.Context) (*domain.ClusterModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clusters, nil
}

func (m *staticModels) set(clusters *domain.ClusterModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clusters = clusters
}

func fittedScaler() *domain.Scaler {
	return &domain.Scaler{
		Kind:     domain.ScalerStandard,
		Features: domain.FeatureNames,
		Center:   []float64{90, 4, 1500},
		Scale:    []float64{100, 8, 5000},
	}
}

func fittedClusters() *domain.ClusterModel {
	return &domain.ClusterModel{Centroids: [][]float64{
		{-0.5, 1.2, 1.5},
		{-0.3, 0.1, 0.0},
		{1.6, -0.4, -0.3},
		{0.2, -0.3, -0.2},
	}}
}

func newFitted() (*Service, *staticModels) {
	models := &staticModels{scaler: fittedScaler(), clusters: fittedClusters()}
	return NewService(models, NewLabels(nil)), models
}

func TestPredictFittedModel(t *testing.T) {
	svc, _ := newFitted()

	// scaled: (-0.85, 2.0, -0.2), closest to centroid 0
	pred, err := svc.Predict(context.Background(), 5, 20, 500.0)
	require.NoError(t, err)
	assert.Equal(t, domain.SegmentPrediction{ClusterID: 0, Label: "High-Value Customer"}, pred)

	// scaled: (2.5, -0.375, -0.28), closest to centroid 2
	pred, err = svc.Predict(context.Background(), 340, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, pred.ClusterID)
	assert.Equal(t, "At Risk", pred.Label)
}

func TestPredictAlwaysKnownClusterAndLabel(t *testing.T) {
	svc, models := newFitted()
	known := models.clusters.Clusters()

	for _, r := range []float64{0, 1, 30, 180, 365, 1000} {
		for _, f := range []float64{0, 1, 5, 50, 500} {
			for _, m := range []float64{0, 10.5, 500, 5000, 250000} {
				pred, err := svc.Predict(context.Background(), r, f, m)
				require.NoError(t, err)
				assert.Contains(t, known, pred.ClusterID)
				assert.NotEmpty(t, pred.Label)
			}
		}
	}
}

func TestPredictIdempotent(t *testing.T) {
	svc, _ := newFitted()

	first, err := svc.Predict(context.Background(), 12, 7, 820.5)
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), 12, 7, 820.5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPredictFallbackLabel(t *testing.T) {
	models := &staticModels{
		scaler: fittedScaler(),
		clusters: &domain.ClusterModel{Centroids: [][]float64{
			{100, 100, 100}, {100, 100, 100}, {100, 100, 100}, {100, 100, 100},
			{-0.85, 2.0, -0.2},
		}},
	}
	svc := NewService(models, nil)

	pred, err := svc.Predict(context.Background(), 5, 20, 500)
	require.NoError(t, err)
	assert.Equal(t, 4, pred.ClusterID)
	assert.Equal(t, "Segment 4", pred.Label)
}

func TestPredictTieGoesToLowestID(t *testing.T) {
	models := &staticModels{
		scaler:   &domain.Scaler{Kind: domain.ScalerStandard, Center: []float64{0, 0, 0}, Scale: []float64{1, 1, 1}},
		clusters: &domain.ClusterModel{Centroids: [][]float64{{2, 0, 0}, {0, 0, 0}, {0, 0, 0}}},
	}
	svc := NewService(models, nil)

	pred, err := svc.Predict(context.Background(), 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pred.ClusterID)
}

func TestPredictZeroScaleCountsAsOne(t *testing.T) {
	models := &staticModels{
		scaler:   &domain.Scaler{Kind: domain.ScalerStandard, Center: []float64{0, 0, 0}, Scale: []float64{0, 0, 0}},
		clusters: &domain.ClusterModel{Centroids: [][]float64{{0, 0, 0}, {3, 3, 3}}},
	}
	svc := NewService(models, nil)

	pred, err := svc.Predict(context.Background(), 3, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, pred.ClusterID)
}

func TestPredictNonFiniteInput(t *testing.T) {
	svc, _ := newFitted()

	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		_, err := svc.Predict(context.Background(), 1, 1, v)
		assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
	}
}

func TestPredictCorruptedModelRecovers(t *testing.T) {
	svc, models := newFitted()

	models.set(&domain.ClusterModel{Centroids: [][]float64{{0, 1}, {1, 0}}})
	_, err := svc.Predict(context.Background(), 5, 20, 500)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
	assert.ErrorContains(t, err, "2 dimensions")

	models.set(fittedClusters())
	pred, err := svc.Predict(context.Background(), 5, 20, 500)
	require.NoError(t, err)
	assert.Equal(t, 0, pred.ClusterID)
}

func TestPredictProviderFailure(t *testing.T) {
	models := &staticModels{err: errors.New("artifact store offline")}
	svc := NewService(models, nil)

	_, err := svc.Predict(context.Background(), 1, 2, 3)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
	assert.ErrorContains(t, err, "artifact store offline")

	_, err = NewService(nil, nil).Predict(context.Background(), 1, 2, 3)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))

	_, err = NewService(&staticModels{}, nil).Predict(context.Background(), 1, 2, 3)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable), "nil models are unavailable")
}

func TestPredictCanceledContext(t *testing.T) {
	svc, _ := newFitted()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Predict(ctx, 1, 2, 3)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSegments(t *testing.T) {
	models := &staticModels{scaler: fittedScaler(), clusters: fittedClusters()}
	svc := NewService(models, NewLabels(map[int]string{1: "Loyal"}))

	segs, err := svc.Segments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.SegmentPrediction{
		{ClusterID: 0, Label: "High-Value Customer"},
		{ClusterID: 1, Label: "Loyal"},
		{ClusterID: 2, Label: "At Risk"},
		{ClusterID: 3, Label: "New / Occasional Buyer"},
	}, segs)
}

func TestLabels(t *testing.T) {
	l := NewLabels(map[int]string{7: "VIP"})
	assert.Equal(t, "VIP", l.For(7))
	assert.Equal(t, "Potential Loyalist", l.For(1))
	assert.Equal(t, "Segment 9", l.For(9))
	assert.Equal(t, "Segment -1", l.For(-1))

	assert.Equal(t, "Potential Loyalist", DefaultLabels[1], "defaults are not mutated")
	_, mutated := DefaultLabels[7]
	assert.False(t, mutated)
}
