package artifact

import (
	"context"
	"fmt"

	"rfmInsight/domain"
)

// Loader deserializes the three offline artifacts into their in-memory shapes.
// Implementations own the storage format; nothing downstream depends on it.
type Loader interface {
	LoadSimilarity(ctx context.Context) (*domain.SimilarityMatrix, error)
	LoadScaler(ctx context.Context) (*domain.Scaler, error)
	LoadClusterModel(ctx context.Context) (*domain.ClusterModel, error)
}

// BlobSource returns the raw bytes of a named artifact.
type BlobSource interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

type Names struct {
	Similarity string
	Scaler     string
	Cluster    string
}

func DefaultNames() Names {
	return Names{
		Similarity: "similarity.json",
		Scaler:     "rfm_scaler.json",
		Cluster:    "kmeans_rfm_model.json",
	}
}

// BlobLoader reads JSON-encoded artifacts from any BlobSource.
type BlobLoader struct {
	source BlobSource
	names  Names
}

var _ Loader = (*BlobLoader)(nil)

func NewBlobLoader(source BlobSource, names Names) *BlobLoader {
	def := DefaultNames()
	if names.Similarity == "" {
		names.Similarity = def.Similarity
	}
	if names.Scaler == "" {
		names.Scaler = def.Scaler
	}
	if names.Cluster == "" {
		names.Cluster = def.Cluster
	}

	return &BlobLoader{source: source, names: names}
}

func (l *BlobLoader) LoadSimilarity(ctx context.Context) (*domain.SimilarityMatrix, error) {
	data, err := l.fetch(ctx, l.names.Similarity)
	if err != nil {
		return nil, err
	}
	return DecodeSimilarity(data)
}

func (l *BlobLoader) LoadScaler(ctx context.Context) (*domain.Scaler, error) {
	data, err := l.fetch(ctx, l.names.Scaler)
	if err != nil {
		return nil, err
	}
	return DecodeScaler(data)
}

func (l *BlobLoader) LoadClusterModel(ctx context.Context) (*domain.ClusterModel, error) {
	data, err := l.fetch(ctx, l.names.Cluster)
	if err != nil {
		return nil, err
	}
	return DecodeClusterModel(data)
}

func (l *BlobLoader) fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	data, err := l.source.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return data, nil
}
