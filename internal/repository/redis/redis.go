package redis

import (
	"context"
	"errors"
	"fmt"

	"rfmInsight/business/artifact"

	"github.com/redis/go-redis/v9"
)

// ArtifactRepository reads artifacts stored as string values under
// "<prefix><name>" keys.
type ArtifactRepository struct {
	client *redis.Client
	prefix string
}

var _ artifact.BlobSource = (*ArtifactRepository)(nil)

func NewArtifactRepository(client *redis.Client, prefix string) *ArtifactRepository {
	return &ArtifactRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *ArtifactRepository) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := r.key(name)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("artifact %s not found", key)
		}
		return nil, fmt.Errorf("failed to get artifact from Redis: %w", err)
	}

	return val, nil
}

// Store writes an artifact without expiry. Used to seed a Redis-backed deployment.
func (r *ArtifactRepository) Store(ctx context.Context, name string, data []byte) error {
	if err := r.client.Set(ctx, r.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store artifact in Redis: %w", err)
	}
	return nil
}

func (r *ArtifactRepository) key(name string) string {
	return r.prefix + name
}
