package domain

import (
	"fmt"
	"math"
	"slices"
)

// SimilarityMatrix is a square table of pairwise product similarity scores.
// Both axes share one key list, scores are stored row-major.
type SimilarityMatrix struct {
	codes  []string
	index  map[string]int
	scores []float64
}

type SimilarityEntry struct {
	ProductCode string
	OtherCode   string
	Score       float64
}

type Recommendation struct {
	ProductCode string  `json:"product_code"`
	Score       float64 `json:"score"`
}

func NewSimilarityMatrix(codes []string, scores [][]float64) (*SimilarityMatrix, error) {
	n := len(codes)
	if n == 0 {
		return nil, fmt.Errorf("similarity matrix has no products")
	}
	if len(scores) != n {
		return nil, fmt.Errorf("similarity matrix has %d rows for %d products", len(scores), n)
	}

	m := &SimilarityMatrix{
		codes:  slices.Clone(codes),
		index:  make(map[string]int, n),
		scores: make([]float64, 0, n*n),
	}
	for i, code := range codes {
		if code == "" {
			return nil, fmt.Errorf("empty product code at position %d", i)
		}
		if _, dup := m.index[code]; dup {
			return nil, fmt.Errorf("duplicate product code %q", code)
		}
		m.index[code] = i
	}

	for i, row := range scores {
		if len(row) != n {
			return nil, fmt.Errorf("row %q has %d columns, want %d", codes[i], len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("non-finite score at (%q, %q)", codes[i], codes[j])
			}
		}
		m.scores = append(m.scores, row...)
	}

	return m, nil
}

// NewSimilarityMatrixFromEntries builds a matrix from (product, other, score) triples.
// Every cell must be present exactly once and the row and column key sets must match.
func NewSimilarityMatrixFromEntries(entries []SimilarityEntry) (*SimilarityMatrix, error) {
	rowKeys := make(map[string]struct{})
	colKeys := make(map[string]struct{})
	for _, e := range entries {
		rowKeys[e.ProductCode] = struct{}{}
		colKeys[e.OtherCode] = struct{}{}
	}
	if len(rowKeys) != len(colKeys) {
		return nil, fmt.Errorf("row and column key sets differ: %d rows, %d columns", len(rowKeys), len(colKeys))
	}
	for k := range rowKeys {
		if _, ok := colKeys[k]; !ok {
			return nil, fmt.Errorf("product %q appears as a row but not as a column", k)
		}
	}

	codes := make([]string, 0, len(rowKeys))
	for k := range rowKeys {
		codes = append(codes, k)
	}
	slices.Sort(codes)

	pos := make(map[string]int, len(codes))
	for i, c := range codes {
		pos[c] = i
	}

	n := len(codes)
	if len(entries) != n*n {
		return nil, fmt.Errorf("similarity table has %d cells, want %d for %d products", len(entries), n*n, n)
	}

	scores := make([][]float64, n)
	seen := make([][]bool, n)
	for i := range scores {
		scores[i] = make([]float64, n)
		seen[i] = make([]bool, n)
	}
	for _, e := range entries {
		i, j := pos[e.ProductCode], pos[e.OtherCode]
		if seen[i][j] {
			return nil, fmt.Errorf("duplicate cell (%q, %q)", e.ProductCode, e.OtherCode)
		}
		seen[i][j] = true
		scores[i][j] = e.Score
	}

	return NewSimilarityMatrix(codes, scores)
}

func (m *SimilarityMatrix) Len() int {
	return len(m.codes)
}

// Codes returns a copy of the product codes in matrix order.
func (m *SimilarityMatrix) Codes() []string {
	return slices.Clone(m.codes)
}

func (m *SimilarityMatrix) Contains(code string) bool {
	_, ok := m.index[code]
	return ok
}

// Column returns every (product, score) pair of the column keyed by code,
// including the self cell. ok is false for unknown codes.
func (m *SimilarityMatrix) Column(code string) ([]Recommendation, bool) {
	j, ok := m.index[code]
	if !ok {
		return nil, false
	}

	n := len(m.codes)
	col := make([]Recommendation, n)
	for i := range n {
		col[i] = Recommendation{ProductCode: m.codes[i], Score: m.scores[i*n+j]}
	}
	return col, true
}
