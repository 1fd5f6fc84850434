package domain

import (
	"fmt"
	"math"
	"slices"
)

// NumFeatures is the width of an RFM vector: recency, frequency, monetary.
const NumFeatures = 3

var FeatureNames = []string{"recency", "frequency", "monetary"}

const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
)

// Scaler holds fitted per-feature normalization parameters.
// A min-max scaler is stored as center=min, scale=max-min.
type Scaler struct {
	Kind     string    `json:"kind"`
	Features []string  `json:"features,omitempty"`
	Center   []float64 `json:"center"`
	Scale    []float64 `json:"scale"`
}

func (s *Scaler) Validate() error {
	if s == nil {
		return fmt.Errorf("scaler is nil")
	}
	switch s.Kind {
	case ScalerStandard, ScalerMinMax:
	default:
		return fmt.Errorf("unknown scaler kind %q", s.Kind)
	}
	if len(s.Features) > 0 && !slices.Equal(s.Features, FeatureNames) {
		return fmt.Errorf("scaler features %v, want %v", s.Features, FeatureNames)
	}
	if len(s.Center) != NumFeatures || len(s.Scale) != NumFeatures {
		return fmt.Errorf("scaler has %d centers and %d scales, want %d", len(s.Center), len(s.Scale), NumFeatures)
	}
	for i := range NumFeatures {
		if !isFinite(s.Center[i]) || !isFinite(s.Scale[i]) {
			return fmt.Errorf("non-finite scaler parameter for %s", FeatureNames[i])
		}
		if s.Scale[i] < 0 {
			return fmt.Errorf("negative scale for %s", FeatureNames[i])
		}
	}
	return nil
}

// ClusterModel is a fitted partition model; cluster id is the centroid index.
type ClusterModel struct {
	Centroids [][]float64 `json:"centroids"`
}

func (m *ClusterModel) Validate() error {
	if m == nil {
		return fmt.Errorf("cluster model is nil")
	}
	if len(m.Centroids) == 0 {
		return fmt.Errorf("cluster model has no centroids")
	}
	for id, c := range m.Centroids {
		if len(c) != NumFeatures {
			return fmt.Errorf("centroid %d has %d dimensions, want %d", id, len(c), NumFeatures)
		}
		for _, v := range c {
			if !isFinite(v) {
				return fmt.Errorf("centroid %d has a non-finite coordinate", id)
			}
		}
	}
	return nil
}

// Clusters returns every cluster id the model can assign.
func (m *ClusterModel) Clusters() []int {
	ids := make([]int, len(m.Centroids))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

type SegmentPrediction struct {
	ClusterID int    `json:"cluster_id"`
	Label     string `json:"label"`
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
