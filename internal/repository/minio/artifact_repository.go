package minio

import (
	"context"
	"fmt"
	"io"
	"path"

	"rfmInsight/business/artifact"

	"github.com/minio/minio-go/v7"
)

// ArtifactRepository reads artifacts from objects "<prefix><name>" in a bucket.
type ArtifactRepository struct {
	mc     *minio.Client
	bucket string
	prefix string
}

var _ artifact.BlobSource = (*ArtifactRepository)(nil)

func NewArtifactRepository(mc *minio.Client, bucket, prefix string) *ArtifactRepository {
	return &ArtifactRepository{
		mc:     mc,
		bucket: bucket,
		prefix: prefix,
	}
}

func (r *ArtifactRepository) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := r.objectKey(name)

	obj, err := r.mc.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", r.bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("artifact %s/%s not found", r.bucket, key)
		}
		return nil, fmt.Errorf("failed to read object %s/%s: %w", r.bucket, key, err)
	}

	return data, nil
}

func (r *ArtifactRepository) objectKey(name string) string {
	if r.prefix == "" {
		return name
	}
	return path.Join(r.prefix, name)
}
