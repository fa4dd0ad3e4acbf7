// SPDX-License-Identifier: MIT

// Package seam cuts a triangle mesh open along a set of edges so that every
// piece can be laid out in the plane.
//
// ShortestPaths is Dijkstra's algorithm over the edge graph, weighted by
// the intrinsic edge lengths of a metric store and started from any number
// of sources at once. It keeps a lazy min-heap: improved distances are
// pushed again and stale entries are skipped when popped.
//
// CutGraph builds the seam used by the embedder:
//
//   - Closed pieces are rooted at their lowest cone (or at WithRoot); every
//     other cone is joined to the root along its shortest path.
//   - Pieces with a border are rooted at all border vertices at once, so
//     each interior cone gets the shortest path to the boundary.
//   - Edges left over by a primal shortest-path tree and a dual spanning
//     tree close the handles of higher-genus pieces and join extra
//     boundary loops; each is added together with its two tree paths.
//   - A cone that ends up with no seam edge, such as the only cone of a
//     closed piece, is slit open along its shortest incident edge.
//
// Complexity:
//   - ShortestPaths: O((V + E) log V) time, O(V + E) space.
//   - CutGraph: one ShortestPaths run per connected piece plus O(V + E + F).
package seam
