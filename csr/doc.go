// Package csr provides an immutable compressed-sparse-row adjacency index:
// a flat neighbor array plus per-vertex (offset, length) rows.
//
// What
//
//   - Graph: offsets (vertexCount+1 entries) over one flat neighbor array.
//   - FromAdjacency builds from per-vertex neighbor lists.
//   - FromEdges builds from an edge list, optionally mirroring edges for an
//     undirected graph and optionally sorting each row.
//   - Row(v) returns the (offset, length) pair; Neighbors(v) the row slice.
//
// Why
//
//	Frontier expansion reads adjacency once per traversal and from every
//	block concurrently. A CSR index is read-only after construction, so all
//	blocks share it without locks, and a row lookup is two array reads —
//	the exact shape the expansion engine's Classify phase needs.
//
// Errors
//
//   - ErrVertexCount for a negative vertex count.
//   - ErrVertexRange for an edge endpoint or lookup outside [0, V).
package csr
