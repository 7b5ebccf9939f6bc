package csr

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for graph construction and lookup.
var (
	// ErrVertexCount indicates a negative vertex count.
	ErrVertexCount = errors.New("csr: vertex count cannot be negative")
	// ErrVertexRange indicates a vertex id outside [0, VertexCount).
	ErrVertexRange = errors.New("csr: vertex id out of range")
)

// Edge is one directed edge of the input list.
type Edge struct {
	From, To uint32
}

// Graph is an immutable CSR adjacency index: offsets has VertexCount+1
// entries and neighbors holds all rows back to back. Safe for concurrent
// readers; never mutated after construction.
type Graph struct {
	offsets   []uint32
	neighbors []uint32
}

// Option tunes graph construction.
type Option func(*buildOptions)

type buildOptions struct {
	undirected bool
	sortedRows bool
}

func defaultBuildOptions() buildOptions {
	return buildOptions{sortedRows: true}
}

// WithUndirected mirrors every edge, so u→v also yields v→u.
func WithUndirected() Option {
	return func(o *buildOptions) { o.undirected = true }
}

// WithUnsortedRows keeps each row in insertion order instead of sorting by
// neighbor id.
func WithUnsortedRows() Option {
	return func(o *buildOptions) { o.sortedRows = false }
}

// FromAdjacency builds a Graph from per-vertex neighbor lists. Every
// neighbor id must lie in [0, len(lists)).
func FromAdjacency(lists [][]uint32) (*Graph, error) {
	v := uint32(len(lists))
	offsets := make([]uint32, len(lists)+1)
	var total uint32
	for i, row := range lists {
		offsets[i] = total
		total += uint32(len(row))
	}
	offsets[len(lists)] = total

	neighbors := make([]uint32, 0, total)
	for i, row := range lists {
		for _, n := range row {
			if n >= v {
				return nil, fmt.Errorf("%w: neighbor %d of vertex %d (V=%d)", ErrVertexRange, n, i, v)
			}
			neighbors = append(neighbors, n)
		}
	}
	return &Graph{offsets: offsets, neighbors: neighbors}, nil
}

// FromEdges builds a Graph over vertexCount vertices from an edge list.
func FromEdges(vertexCount int, edges []Edge, opts ...Option) (*Graph, error) {
	if vertexCount < 0 {
		return nil, ErrVertexCount
	}
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}

	v := uint32(vertexCount)
	degree := make([]uint32, vertexCount)
	for _, e := range edges {
		if e.From >= v || e.To >= v {
			return nil, fmt.Errorf("%w: edge %d→%d (V=%d)", ErrVertexRange, e.From, e.To, v)
		}
		degree[e.From]++
		if o.undirected {
			degree[e.To]++
		}
	}

	offsets := make([]uint32, vertexCount+1)
	var total uint32
	for i, d := range degree {
		offsets[i] = total
		total += d
	}
	offsets[vertexCount] = total

	neighbors := make([]uint32, total)
	cursor := make([]uint32, vertexCount)
	copy(cursor, offsets[:vertexCount])
	for _, e := range edges {
		neighbors[cursor[e.From]] = e.To
		cursor[e.From]++
		if o.undirected {
			neighbors[cursor[e.To]] = e.From
			cursor[e.To]++
		}
	}

	if o.sortedRows {
		for i := 0; i < vertexCount; i++ {
			row := neighbors[offsets[i]:offsets[i+1]]
			sort.Slice(row, func(a, b int) bool { return row[a] < row[b] })
		}
	}
	return &Graph{offsets: offsets, neighbors: neighbors}, nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.offsets) - 1 }

// EdgeCount returns the number of stored (directed) adjacency entries.
func (g *Graph) EdgeCount() int { return len(g.neighbors) }

// Row returns vertex v's (offset, length) into the flat neighbor array.
// The id must be in range; expansion kernels look rows up on the hot path
// and the frontier is validated upstream.
func (g *Graph) Row(v uint32) (offset, length uint32) {
	off := g.offsets[v]
	return off, g.offsets[v+1] - off
}

// Degree returns vertex v's neighbor count.
func (g *Graph) Degree(v uint32) uint32 {
	return g.offsets[v+1] - g.offsets[v]
}

// Neighbors returns vertex v's row of the flat neighbor array. The slice
// aliases the graph's storage and must not be mutated.
func (g *Graph) Neighbors(v uint32) []uint32 {
	return g.neighbors[g.offsets[v]:g.offsets[v+1]]
}

// NeighborAt returns the adjacency entry at absolute index i, used by
// kernels that stride a row cooperatively from its Row offset.
func (g *Graph) NeighborAt(i uint32) uint32 { return g.neighbors[i] }
