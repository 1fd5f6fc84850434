package artifact

import (
	"context"
	"fmt"
	"time"

	"rfmInsight/domain"
	"rfmInsight/pkg/logger"
)

// Bundle holds the artifacts loaded at start. It is never mutated after
// LoadBundle returns and is safe for concurrent reads.
type Bundle struct {
	similarity *domain.SimilarityMatrix
	scaler     *domain.Scaler
	clusters   *domain.ClusterModel
	summary    Summary
}

type Summary struct {
	Source     string    `json:"source"`
	Products   int       `json:"products"`
	Clusters   int       `json:"clusters"`
	ScalerKind string    `json:"scaler_kind"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// LoadBundle loads and validates every artifact. Any failure is reported as
// domain.ErrStartupFailure; the caller must not start serving.
func LoadBundle(ctx context.Context, source string, loader Loader) (*Bundle, error) {
	sim, err := loader.LoadSimilarity(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity table: %w", domain.ErrStartupFailure, err)
	}
	if sim == nil || sim.Len() == 0 {
		return nil, fmt.Errorf("%w: similarity table: empty", domain.ErrStartupFailure)
	}

	scaler, err := loader.LoadScaler(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: scaler: %w", domain.ErrStartupFailure, err)
	}
	if err := scaler.Validate(); err != nil {
		return nil, fmt.Errorf("%w: scaler: %w", domain.ErrStartupFailure, err)
	}

	clusters, err := loader.LoadClusterModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cluster model: %w", domain.ErrStartupFailure, err)
	}
	if err := clusters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: cluster model: %w", domain.ErrStartupFailure, err)
	}

	b := &Bundle{
		similarity: sim,
		scaler:     scaler,
		clusters:   clusters,
		summary: Summary{
			Source:     source,
			Products:   sim.Len(),
			Clusters:   len(clusters.Centroids),
			ScalerKind: scaler.Kind,
			LoadedAt:   time.Now().UTC(),
		},
	}

	logger.Info("Artifacts loaded",
		"source", source,
		"products", b.summary.Products,
		"clusters", b.summary.Clusters,
		"scaler_kind", b.summary.ScalerKind,
	)

	return b, nil
}

func (b *Bundle) Similarity() *domain.SimilarityMatrix {
	return b.similarity
}

func (b *Bundle) Scaler(ctx context.Context) (*domain.Scaler, error) {
	if b.scaler == nil {
		return nil, fmt.Errorf("scaler not loaded")
	}
	return b.scaler, nil
}

func (b *Bundle) ClusterModel(ctx context.Context) (*domain.ClusterModel, error) {
	if b.clusters == nil {
		return nil, fmt.Errorf("cluster model not loaded")
	}
	return b.clusters, nil
}

func (b *Bundle) Summary() Summary {
	return b.summary
}
