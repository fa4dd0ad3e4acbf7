// SPDX-License-Identifier: MIT

// Package halfedge provides the triangle-mesh collaborator used by the Ricci
// flow: an index-based half-edge structure with stable integer IDs,
// circulators, and the two topology mutators the remesher needs.
//
// What
//
//   - New builds a mesh from positions and counter-clockwise triangles and
//     rejects anything that is not an oriented 2-manifold (with or without
//     boundary).
//   - Halfedges are paired: Opposite(h) == h^1 and Edge(h) == h/2, so twin
//     lookups never touch memory.
//   - FlipEdge keeps every ID; SplitEdge appends one vertex, three edges and
//     two faces. IDs are never reused, so per-element slices held by callers
//     only need to grow.
//   - Geometry helpers (EdgeLength, FaceNormal, DihedralAngle) read the 3D
//     positions; they know nothing about intrinsic metrics.
//   - Platonic shells, grids and subdivision give deterministic test surfaces.
//
// Concurrency
//
//	A Mesh is not synchronized. Concurrent readers are fine; FlipEdge,
//	SplitEdge and SetPosition must be serialized by the caller.
//
// Complexity
//
//   - Navigation (Next, Prev, Opposite, Target, Face): O(1).
//   - Circulation around a vertex: O(deg(v)).
//   - FlipEdge: O(deg(u)); SplitEdge: O(1) amortized.
package halfedge
