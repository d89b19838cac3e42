package knn

import (
	"math"
	"testing"

	"github.com/geteat/tablerec/core"
)

func TestEngineRankOrdering(t *testing.T) {
	e, err := NewEngine(2)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	query := []float32{0, 0}
	candidates := [][]float32{
		{3, 4}, // 距离 5
		{1, 0}, // 距离 1
		{0, 2}, // 距离 2
	}

	got, err := e.Rank(query, candidates)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	wantOrder := []int{1, 2, 0}
	wantDist := []float64{1, 2, 5}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d neighbors, want %d", len(got), len(wantOrder))
	}
	for i, nb := range got {
		if nb.Index != wantOrder[i] {
			t.Errorf("neighbor %d index = %d, want %d", i, nb.Index, wantOrder[i])
		}
		if math.Abs(nb.Distance-wantDist[i]) > 1e-9 {
			t.Errorf("neighbor %d distance = %f, want %f", i, nb.Distance, wantDist[i])
		}
	}
}

func TestEngineRankStableTies(t *testing.T) {
	e, _ := NewEngine(1)

	// 三个等距候选必须保持输入顺序
	got, err := e.Rank([]float32{0}, [][]float32{{1}, {1}, {1}})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for i, nb := range got {
		if nb.Index != i {
			t.Errorf("tie broke input order: position %d has index %d", i, nb.Index)
		}
	}
}

func TestEngineRankEmpty(t *testing.T) {
	e, _ := NewEngine(3)
	got, err := e.Rank([]float32{1, 2, 3}, nil)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d neighbors, want 0", len(got))
	}
}

func TestEngineRankDimensionMismatch(t *testing.T) {
	e, _ := NewEngine(3)

	tests := []struct {
		name       string
		query      []float32
		candidates [][]float32
	}{
		{name: "short query", query: []float32{1, 2}, candidates: [][]float32{{1, 2, 3}}},
		{name: "short candidate", query: []float32{1, 2, 3}, candidates: [][]float32{{1, 2, 3}, {1, 2}}},
		{name: "nil query", query: nil, candidates: [][]float32{{1, 2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Rank(tt.query, tt.candidates)
			if !core.IsModelFailure(err) {
				t.Errorf("expected MODEL_FAILURE, got %v", err)
			}
		})
	}
}

func TestNewEngineInvalidDim(t *testing.T) {
	for _, dim := range []int{0, -1} {
		if _, err := NewEngine(dim); !core.IsModelFailure(err) {
			t.Errorf("NewEngine(%d): expected MODEL_FAILURE, got %v", dim, err)
		}
	}
}
