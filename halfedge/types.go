// SPDX-License-Identifier: MIT

package halfedge

import "gonum.org/v1/gonum/spatial/r3"

// VertexID identifies a vertex. IDs are dense, start at 0 and are never reused.
type VertexID int

// HalfedgeID identifies a directed halfedge. Halfedges are allocated in pairs:
// h and h^1 are opposite to each other and share the EdgeID h/2.
type HalfedgeID int

// EdgeID identifies an undirected edge (a pair of halfedges).
type EdgeID int

// FaceID identifies a triangular face.
type FaceID int

// Sentinels for "no element". Border halfedges carry NoFace.
const (
	NoVertex   VertexID   = -1
	NoHalfedge HalfedgeID = -1
	NoFace     FaceID     = -1
)

// Mesh is an index-based half-edge triangle mesh with optional boundary.
//
// Storage is struct-of-slices: every halfedge h stores the vertex it points
// to, the face on its left, and its next/prev halfedges around that face.
// Border halfedges (Face == NoFace) are linked into border loops so that
// vertex circulation works uniformly for interior and border vertices.
//
// A Mesh is not safe for concurrent mutation. Readers may run in parallel
// as long as no FlipEdge/SplitEdge is in progress.
type Mesh struct {
	positions []r3.Vec     // vertex → position
	vhalf     []HalfedgeID // vertex → one incoming halfedge (border one on the boundary)

	target []VertexID   // halfedge → head vertex
	face   []FaceID     // halfedge → incident face or NoFace
	next   []HalfedgeID // halfedge → next around face/border loop
	prev   []HalfedgeID // halfedge → prev around face/border loop

	fhalf []HalfedgeID // face → one halfedge on its boundary
}

// Split describes the local configuration produced by SplitEdge.
//
// The split edge p–q with opposite vertices v (left of p→q) and u (right of
// p→q) becomes p–s and s–q, and s is connected to u and v. HPS, HQS, HUS and
// HVS are the four halfedges pointing into s; Edge keeps the ID of the
// original edge, which now joins p and s.
type Split struct {
	Edge   EdgeID
	Vertex VertexID
	HPS    HalfedgeID
	HQS    HalfedgeID
	HUS    HalfedgeID
	HVS    HalfedgeID
}
