// SPDX-License-Identifier: MIT

package seam

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/internal/logging"
	"github.com/katalvlaran/ricci/metric"
)

// Cut is a set of mesh edges the embedder never crosses.
type Cut struct {
	mesh  *halfedge.Mesh
	edges []bool // by EdgeID
	n     int
}

// NewCut wraps an explicit edge list.
//
// Errors: halfedge.ErrOutOfRange for an edge outside m.
func NewCut(m *halfedge.Mesh, edges []halfedge.EdgeID) (*Cut, error) {
	c := &Cut{mesh: m, edges: make([]bool, m.NumEdges())}
	for _, e := range edges {
		if !m.HasEdge(e) {
			return nil, errors.Wrapf(halfedge.ErrOutOfRange, "cut edge %d", e)
		}
		c.add(e)
	}
	return c, nil
}

// Mesh returns the mesh the cut was built for.
func (c *Cut) Mesh() *halfedge.Mesh { return c.mesh }

// Contains reports whether e is part of the cut.
func (c *Cut) Contains(e halfedge.EdgeID) bool {
	return e >= 0 && int(e) < len(c.edges) && c.edges[e]
}

// Len returns the number of cut edges.
func (c *Cut) Len() int { return c.n }

// Edges returns the cut edges in increasing ID order.
func (c *Cut) Edges() []halfedge.EdgeID {
	out := make([]halfedge.EdgeID, 0, c.n)
	for e, in := range c.edges {
		if in {
			out = append(out, halfedge.EdgeID(e))
		}
	}
	return out
}

// Degree returns the number of cut edges incident to v.
func (c *Cut) Degree(v halfedge.VertexID) int {
	n := 0
	for _, h := range c.mesh.HalfedgesAroundTarget(v) {
		if c.Contains(c.mesh.Edge(h)) {
			n++
		}
	}
	return n
}

func (c *Cut) add(e halfedge.EdgeID) {
	if !c.edges[e] {
		c.edges[e] = true
		c.n++
	}
}

// addPath adds the tree path from v back to its root.
func (c *Cut) addPath(p *Paths, v halfedge.VertexID) {
	for h := p.Parent(v); h != halfedge.NoHalfedge; h = p.Parent(c.mesh.Source(h)) {
		c.add(c.mesh.Edge(h))
	}
}

// CutGraph returns a seam along which the mesh of s opens into pieces that
// are topological disks, with every cone on the border of its piece.
//
// Implementation:
//   - Stage 1: split the vertices into connected pieces. Pieces with a
//     border are rooted at all their border vertices; closed pieces at
//     one root each.
//   - Stage 2: one multi-source ShortestPaths run from all roots. Every
//     interior cone adds its path to the cut.
//   - Stage 3: a dual spanning tree over the faces, crossing neither border
//     edges nor primal tree edges. Each interior edge outside both trees
//     is added with the tree paths of its endpoints.
//   - Stage 4: cones still without a cut edge are slit along their
//     shortest incident edge.
//
// Errors: ErrNilStore, ErrVertexNotFound, ErrNegativeLength.
// Complexity: O((V + E) log V + F).
func CutGraph(s *metric.Store, cones []halfedge.VertexID, opts ...Option) (*Cut, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if s == nil {
		return nil, ErrNilStore
	}
	m := s.Mesh()
	if cfg.Root != halfedge.NoVertex && !m.HasVertex(cfg.Root) {
		return nil, errors.Wrapf(ErrVertexNotFound, "root %d", cfg.Root)
	}
	isCone := make([]bool, m.NumVertices())
	for _, v := range cones {
		if !m.HasVertex(v) {
			return nil, errors.Wrapf(ErrVertexNotFound, "cone %d", v)
		}
		isCone[v] = true
	}

	// Stage 1: pieces and roots.
	roots := rootsOf(m, isCone, cfg.Root)

	// Stage 2: shortest-path tree and cone paths.
	paths, err := ShortestPaths(s, roots)
	if err != nil {
		return nil, err
	}
	c := &Cut{mesh: m, edges: make([]bool, m.NumEdges())}
	inTree := make([]bool, m.NumEdges())
	for v := 0; v < m.NumVertices(); v++ {
		if h := paths.Parent(halfedge.VertexID(v)); h != halfedge.NoHalfedge {
			inTree[m.Edge(h)] = true
		}
	}
	for v, cone := range isCone {
		if cone {
			c.addPath(paths, halfedge.VertexID(v))
		}
	}

	// Stage 3: handles and extra boundary loops.
	crossed := dualTree(m, inTree)
	loops := 0
	for e := 0; e < m.NumEdges(); e++ {
		id := halfedge.EdgeID(e)
		if inTree[e] || crossed[e] || m.IsBorderEdge(id) {
			continue
		}
		a, b := m.EdgeVertices(id)
		c.add(id)
		c.addPath(paths, a)
		c.addPath(paths, b)
		loops++
	}

	// Stage 4: slits.
	slits := 0
	for v, cone := range isCone {
		vid := halfedge.VertexID(v)
		if !cone || m.IsBorderVertex(vid) || c.Degree(vid) > 0 {
			continue
		}
		c.add(shortestIncident(s, vid))
		slits++
	}

	logging.Logger().Debug("seam",
		"roots", len(roots),
		"cones", len(cones),
		"loops", loops,
		"slits", slits,
		"edges", c.n)
	return c, nil
}

// rootsOf returns every border vertex plus one root per closed piece.
func rootsOf(m *halfedge.Mesh, isCone []bool, preferred halfedge.VertexID) []halfedge.VertexID {
	seen := make([]bool, m.NumVertices())
	var roots []halfedge.VertexID
	var stack, members []halfedge.VertexID
	for start := 0; start < m.NumVertices(); start++ {
		if seen[start] {
			continue
		}
		members = members[:0]
		stack = append(stack[:0], halfedge.VertexID(start))
		seen[start] = true
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, v)
			for _, u := range m.VerticesAroundVertex(v) {
				if !seen[u] {
					seen[u] = true
					stack = append(stack, u)
				}
			}
		}
		slices.Sort(members)
		roots = append(roots, pieceRoots(m, members, isCone, preferred)...)
	}
	return roots
}

// pieceRoots picks the roots of one connected piece; members is sorted.
func pieceRoots(m *halfedge.Mesh, members []halfedge.VertexID, isCone []bool, preferred halfedge.VertexID) []halfedge.VertexID {
	var border []halfedge.VertexID
	for _, v := range members {
		if m.IsBorderVertex(v) {
			border = append(border, v)
		}
	}
	if len(border) > 0 {
		return border
	}
	if preferred != halfedge.NoVertex {
		if _, ok := slices.BinarySearch(members, preferred); ok {
			return []halfedge.VertexID{preferred}
		}
	}
	for _, v := range members {
		if isCone[v] {
			return []halfedge.VertexID{v}
		}
	}
	return []halfedge.VertexID{members[0]}
}

// dualTree marks the edges crossed by a breadth-first spanning forest of
// the faces that avoids border edges and the primal tree.
func dualTree(m *halfedge.Mesh, inTree []bool) []bool {
	crossed := make([]bool, m.NumEdges())
	seen := make([]bool, m.NumFaces())
	var queue []halfedge.FaceID
	for start := 0; start < m.NumFaces(); start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue = append(queue[:0], halfedge.FaceID(start))
		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			for _, h := range m.HalfedgesAroundFace(f) {
				o := m.Opposite(h)
				if m.IsBorder(o) || inTree[m.Edge(h)] {
					continue
				}
				g := m.Face(o)
				if seen[g] {
					continue
				}
				seen[g] = true
				crossed[m.Edge(h)] = true
				queue = append(queue, g)
			}
		}
	}
	return crossed
}

func shortestIncident(s *metric.Store, v halfedge.VertexID) halfedge.EdgeID {
	m := s.Mesh()
	best := halfedge.EdgeID(-1)
	for _, h := range m.HalfedgesAroundTarget(v) {
		e := m.Edge(h)
		if best < 0 || s.EdgeLength(e) < s.EdgeLength(best) {
			best = e
		}
	}
	return best
}
