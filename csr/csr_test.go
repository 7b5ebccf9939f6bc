package csr_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/flokey/back40computing/csr"
)

// TestFromAdjacency_RowLayout checks offsets, degrees, and row contents.
func TestFromAdjacency_RowLayout(t *testing.T) {
	g, err := csr.FromAdjacency([][]uint32{
		{1, 2},
		{2},
		{},
		{0, 1, 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.VertexCount() != 4 || g.EdgeCount() != 6 {
		t.Fatalf("V=%d E=%d; want 4, 6", g.VertexCount(), g.EdgeCount())
	}
	if off, length := g.Row(2); length != 0 || off != 3 {
		t.Errorf("Row(2) = (%d,%d); want (3,0)", off, length)
	}
	if got := g.Neighbors(3); !reflect.DeepEqual(got, []uint32{0, 1, 2}) {
		t.Errorf("Neighbors(3) = %v", got)
	}
	if g.Degree(0) != 2 {
		t.Errorf("Degree(0) = %d; want 2", g.Degree(0))
	}
}

// TestFromAdjacency_RangeError rejects out-of-range neighbor ids.
func TestFromAdjacency_RangeError(t *testing.T) {
	if _, err := csr.FromAdjacency([][]uint32{{5}}); !errors.Is(err, csr.ErrVertexRange) {
		t.Errorf("want ErrVertexRange, got %v", err)
	}
}

// TestFromEdges_DirectedSorted builds a directed graph with sorted rows.
func TestFromEdges_DirectedSorted(t *testing.T) {
	g, err := csr.FromEdges(4, []csr.Edge{
		{From: 0, To: 3},
		{From: 0, To: 1},
		{From: 2, To: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Neighbors(0); !reflect.DeepEqual(got, []uint32{1, 3}) {
		t.Errorf("Neighbors(0) = %v; want [1 3]", got)
	}
	if g.Degree(1) != 0 || g.Degree(2) != 1 {
		t.Errorf("degrees = %d,%d; want 0,1", g.Degree(1), g.Degree(2))
	}
}

// TestFromEdges_Undirected mirrors every edge.
func TestFromEdges_Undirected(t *testing.T) {
	g, err := csr.FromEdges(3, []csr.Edge{{From: 0, To: 1}, {From: 1, To: 2}}, csr.WithUndirected())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.EdgeCount() != 4 {
		t.Fatalf("EdgeCount = %d; want 4", g.EdgeCount())
	}
	if got := g.Neighbors(1); !reflect.DeepEqual(got, []uint32{0, 2}) {
		t.Errorf("Neighbors(1) = %v; want [0 2]", got)
	}
}

// TestFromEdges_Errors covers the construction sentinels.
func TestFromEdges_Errors(t *testing.T) {
	if _, err := csr.FromEdges(-1, nil); !errors.Is(err, csr.ErrVertexCount) {
		t.Errorf("negative V: want ErrVertexCount, got %v", err)
	}
	if _, err := csr.FromEdges(2, []csr.Edge{{From: 0, To: 2}}); !errors.Is(err, csr.ErrVertexRange) {
		t.Errorf("endpoint out of range: want ErrVertexRange, got %v", err)
	}
}

// TestFromEdges_UnsortedRows keeps insertion order.
func TestFromEdges_UnsortedRows(t *testing.T) {
	g, err := csr.FromEdges(3, []csr.Edge{
		{From: 0, To: 2},
		{From: 0, To: 1},
	}, csr.WithUnsortedRows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Neighbors(0); !reflect.DeepEqual(got, []uint32{2, 1}) {
		t.Errorf("Neighbors(0) = %v; want [2 1]", got)
	}
}
