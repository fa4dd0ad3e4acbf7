// SPDX-License-Identifier: MIT

package seam

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/metric"
)

// Paths is the result of ShortestPaths.
type Paths struct {
	mesh *halfedge.Mesh
	dist []float64             // vertex → distance, +Inf if unreachable
	prev []halfedge.HalfedgeID // vertex → last halfedge of its path, NoHalfedge at sources
}

// Distance returns the length of the shortest path from any source to v,
// or +Inf when v is unreachable.
func (p *Paths) Distance(v halfedge.VertexID) float64 { return p.dist[v] }

// Reached reports whether v is connected to a source.
func (p *Paths) Reached(v halfedge.VertexID) bool { return !math.IsInf(p.dist[v], 1) }

// Parent returns the halfedge u→v that ends the shortest path to v, or
// NoHalfedge for sources and unreachable vertices.
func (p *Paths) Parent(v halfedge.VertexID) halfedge.HalfedgeID { return p.prev[v] }

// PathTo returns the halfedges of the shortest path to v in walking order,
// from its source to v. It is empty for sources and unreachable vertices.
func (p *Paths) PathTo(v halfedge.VertexID) []halfedge.HalfedgeID {
	var out []halfedge.HalfedgeID
	for h := p.prev[v]; h != halfedge.NoHalfedge; h = p.prev[p.mesh.Source(h)] {
		out = append(out, h)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShortestPaths computes, for every vertex, the shortest edge path from
// the nearest of sources, using the edge lengths of s as weights.
//
// Preconditions and validation (in order):
//  1. s must be non-nil (ErrNilStore).
//  2. sources must be non-empty (ErrNoSource).
//  3. every source must exist in the mesh (ErrVertexNotFound).
//  4. no edge may have a negative or NaN length (ErrNegativeLength).
//
// Equal distances are settled in increasing vertex order, so the result is
// deterministic.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func ShortestPaths(s *metric.Store, sources []halfedge.VertexID) (*Paths, error) {
	if s == nil {
		return nil, ErrNilStore
	}
	if len(sources) == 0 {
		return nil, ErrNoSource
	}
	m := s.Mesh()
	for _, v := range sources {
		if !m.HasVertex(v) {
			return nil, errors.Wrapf(ErrVertexNotFound, "source %d", v)
		}
	}
	for e := 0; e < m.NumEdges(); e++ {
		if l := s.EdgeLength(halfedge.EdgeID(e)); !(l >= 0) {
			return nil, errors.Wrapf(ErrNegativeLength, "edge %d length %g", e, l)
		}
	}

	r := &runner{
		store:   s,
		mesh:    m,
		dist:    make([]float64, m.NumVertices()),
		prev:    make([]halfedge.HalfedgeID, m.NumVertices()),
		visited: make([]bool, m.NumVertices()),
		pq:      make(nodePQ, 0, m.NumVertices()),
	}
	r.init(sources)
	r.process()
	return &Paths{mesh: m, dist: r.dist, prev: r.prev}, nil
}

// runner holds the mutable state of one ShortestPaths call.
type runner struct {
	store   *metric.Store
	mesh    *halfedge.Mesh
	dist    []float64
	prev    []halfedge.HalfedgeID
	visited []bool // distance is final
	pq      nodePQ
}

func (r *runner) init(sources []halfedge.VertexID) {
	for v := range r.dist {
		r.dist[v] = math.Inf(1)
		r.prev[v] = halfedge.NoHalfedge
	}
	heap.Init(&r.pq)
	for _, v := range sources {
		if r.dist[v] == 0 {
			continue
		}
		r.dist[v] = 0
		heap.Push(&r.pq, &nodeItem{id: v, dist: 0})
	}
}

func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		r.visited[item.id] = true
		r.relax(item.id)
	}
}

// relax walks the outgoing halfedges of u. The strict comparison keeps the
// first parent found among equal-length paths.
func (r *runner) relax(u halfedge.VertexID) {
	for _, in := range r.mesh.HalfedgesAroundTarget(u) {
		out := r.mesh.Opposite(in) // u → v
		v := r.mesh.Target(out)
		if r.visited[v] {
			continue
		}
		d := r.dist[u] + r.store.HalfedgeLength(out)
		if d >= r.dist[v] {
			continue
		}
		r.dist[v] = d
		r.prev[v] = out
		heap.Push(&r.pq, &nodeItem{id: v, dist: d})
	}
}

// nodeItem is a vertex and a tentative distance.
type nodeItem struct {
	id   halfedge.VertexID
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by distance, then vertex ID.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
