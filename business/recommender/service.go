package recommender

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"rfmInsight/domain"
	"rfmInsight/pkg/metrics"
)

// MaxRecommendations caps the length of every Recommend result.
const MaxRecommendations = 5

const (
	defaultProductLimit = 20
	maxProductLimit     = 100
)

type Service struct {
	matrix *domain.SimilarityMatrix
}

func NewService(matrix *domain.SimilarityMatrix) *Service {
	return &Service{matrix: matrix}
}

// Recommend returns up to MaxRecommendations products most similar to
// productCode, best first. The product itself is never part of the result.
// Unknown codes return domain.ErrNotFound.
func (s *Service) Recommend(ctx context.Context, productCode string) ([]domain.Recommendation, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if !s.matrix.Contains(productCode) {
		metrics.RecommendRequests.WithLabelValues(metrics.OutcomeNotFound).Inc()
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, productCode)
	}

	col, _ := s.matrix.Column(productCode)
	col = slices.DeleteFunc(col, func(r domain.Recommendation) bool {
		return r.ProductCode == productCode
	})
	slices.SortFunc(col, func(a, b domain.Recommendation) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.ProductCode, b.ProductCode)
	})

	if len(col) > MaxRecommendations {
		col = col[:MaxRecommendations]
	}

	metrics.RecommendRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	return col, nil
}

// Products lists known product codes in ascending order, optionally
// filtered by prefix.
func (s *Service) Products(ctx context.Context, prefix string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultProductLimit
	}
	limit = min(limit, maxProductLimit)

	codes := s.matrix.Codes()
	slices.Sort(codes)

	out := make([]string, 0, min(limit, len(codes)))
	for _, c := range codes {
		if !strings.HasPrefix(c, prefix) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}

	return out, nil
}
