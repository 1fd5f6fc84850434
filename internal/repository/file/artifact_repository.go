package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"rfmInsight/business/artifact"
)

// ArtifactRepository reads artifacts from a local directory.
type ArtifactRepository struct {
	dir string
}

var _ artifact.BlobSource = (*ArtifactRepository)(nil)

func NewArtifactRepository(dir string) *ArtifactRepository {
	return &ArtifactRepository{dir: dir}
}

func (r *ArtifactRepository) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("artifact name %q escapes %s", name, r.dir)
	}

	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("artifact %s not found in %s", name, r.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}

	return data, nil
}
