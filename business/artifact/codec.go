package artifact

import (
	"fmt"

	"rfmInsight/domain"

	json "github.com/goccy/go-json"
)

type similarityFile struct {
	Products []string    `json:"products"`
	Scores   [][]float64 `json:"scores"`
}

type scalerFile struct {
	Kind     string    `json:"kind"`
	Features []string  `json:"features"`
	Center   []float64 `json:"center"`
	Mean     []float64 `json:"mean"`
	Min      []float64 `json:"min"`
	Scale    []float64 `json:"scale"`
}

type clusterFile struct {
	Centroids [][]float64 `json:"centroids"`
}

func DecodeSimilarity(data []byte) (*domain.SimilarityMatrix, error) {
	var f similarityFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode similarity table: %w", err)
	}
	return domain.NewSimilarityMatrix(f.Products, f.Scores)
}

func DecodeScaler(data []byte) (*domain.Scaler, error) {
	var f scalerFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode scaler: %w", err)
	}

	if f.Kind == "" {
		f.Kind = domain.ScalerStandard
	}

	center := f.Center
	if center == nil {
		switch f.Kind {
		case domain.ScalerStandard:
			center = f.Mean
		case domain.ScalerMinMax:
			center = f.Min
		}
	}

	s := &domain.Scaler{
		Kind:     f.Kind,
		Features: f.Features,
		Center:   center,
		Scale:    f.Scale,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func DecodeClusterModel(data []byte) (*domain.ClusterModel, error) {
	var f clusterFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode cluster model: %w", err)
	}

	m := &domain.ClusterModel{Centroids: f.Centroids}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
