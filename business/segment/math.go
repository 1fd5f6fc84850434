package segment

import (
	"fmt"
	"math"

	"rfmInsight/domain"

	"gonum.org/v1/gonum/floats"
)

// transform applies (x - center) / scale per feature. A zero scale counts as 1.
func transform(s *domain.Scaler, x []float64) ([]float64, error) {
	if len(x) != len(s.Center) || len(x) != len(s.Scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Center), len(x))
	}

	scale := make([]float64, len(s.Scale))
	for i, v := range s.Scale {
		if v == 0 {
			v = 1
		}
		scale[i] = v
	}

	out := make([]float64, len(x))
	floats.SubTo(out, x, s.Center)
	floats.Div(out, scale)

	if !allFinite(out) {
		return nil, fmt.Errorf("scaled vector %v is not finite", out)
	}
	return out, nil
}

// nearest returns the index of the centroid closest to v by Euclidean
// distance. Exact ties go to the lowest index.
func nearest(m *domain.ClusterModel, v []float64) (int, error) {
	if len(m.Centroids) == 0 {
		return 0, fmt.Errorf("cluster model has no centroids")
	}

	best, bestDist := -1, math.Inf(1)
	for id, c := range m.Centroids {
		if len(c) != len(v) {
			return 0, fmt.Errorf("centroid %d has %d dimensions, input has %d", id, len(c), len(v))
		}
		d := floats.Distance(v, c, 2)
		if math.IsNaN(d) {
			return 0, fmt.Errorf("distance to centroid %d is not a number", id)
		}
		if d < bestDist {
			best, bestDist = id, d
		}
	}

	if best < 0 {
		return 0, fmt.Errorf("no centroid within finite distance")
	}
	return best, nil
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
