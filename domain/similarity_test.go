package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimilarityMatrixRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		codes  []string
		scores [][]float64
	}{
		{"empty", nil, nil},
		{"row count", []string{"a", "b"}, [][]float64{{1, 0}}},
		{"ragged", []string{"a", "b"}, [][]float64{{1, 0}, {0}}},
		{"duplicate code", []string{"a", "a"}, [][]float64{{1, 0}, {0, 1}}},
		{"empty code", []string{"a", ""}, [][]float64{{1, 0}, {0, 1}}},
		{"nan", []string{"a", "b"}, [][]float64{{1, math.NaN()}, {0, 1}}},
		{"inf", []string{"a", "b"}, [][]float64{{1, 0}, {math.Inf(1), 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimilarityMatrix(tt.codes, tt.scores)
			assert.Error(t, err)
		})
	}
}

func TestSimilarityMatrixColumn(t *testing.T) {
	m, err := NewSimilarityMatrix(
		[]string{"a", "b", "c"},
		[][]float64{
			{1.0, 0.2, 0.3},
			{0.5, 1.0, 0.6},
			{0.7, 0.8, 1.0},
		},
	)
	require.NoError(t, err)

	col, ok := m.Column("a")
	require.True(t, ok)
	assert.Equal(t, []Recommendation{
		{ProductCode: "a", Score: 1.0},
		{ProductCode: "b", Score: 0.5},
		{ProductCode: "c", Score: 0.7},
	}, col)

	_, ok = m.Column("A")
	assert.False(t, ok, "lookup is case-sensitive")

	codes := m.Codes()
	codes[0] = "mutated"
	assert.True(t, m.Contains("a"), "Codes returns a copy")
}

func TestNewSimilarityMatrixFromEntries(t *testing.T) {
	entries := []SimilarityEntry{
		{"b", "b", 1}, {"b", "a", 0.4},
		{"a", "a", 1}, {"a", "b", 0.3},
	}

	m, err := NewSimilarityMatrixFromEntries(entries)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Codes())

	col, ok := m.Column("a")
	require.True(t, ok)
	assert.Equal(t, 0.4, col[1].Score)
}

func TestNewSimilarityMatrixFromEntriesRejectsMalformed(t *testing.T) {
	t.Run("missing cell", func(t *testing.T) {
		_, err := NewSimilarityMatrixFromEntries([]SimilarityEntry{
			{"a", "a", 1}, {"a", "b", 0.3}, {"b", "b", 1},
		})
		assert.ErrorContains(t, err, "cells")
	})

	t.Run("duplicate cell", func(t *testing.T) {
		_, err := NewSimilarityMatrixFromEntries([]SimilarityEntry{
			{"a", "a", 1}, {"a", "b", 0.3}, {"a", "b", 0.3}, {"b", "b", 1},
		})
		assert.ErrorContains(t, err, "duplicate cell")
	})

	t.Run("asymmetric keys", func(t *testing.T) {
		_, err := NewSimilarityMatrixFromEntries([]SimilarityEntry{
			{"a", "a", 1}, {"a", "c", 0.3}, {"b", "a", 1}, {"b", "c", 1},
		})
		assert.Error(t, err)
	})
}
