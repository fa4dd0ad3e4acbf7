// SPDX-License-Identifier: MIT

package metric

import (
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/ricci/halfedge"
)

// Store holds the intrinsic metric of a mesh: one length per edge, one
// radius per vertex and one inversive distance per edge. Lengths, not
// positions, are the source of truth for every angle and curvature.
//
// A Store is owned by a single goroutine; it is not safe for concurrent
// mutation.
type Store struct {
	mesh   *halfedge.Mesh
	length []float64 // by EdgeID
	radius []float64 // by VertexID
	inv    []float64 // by EdgeID
}

// New derives the circle-packing metric of m from its 3D positions.
//
// Implementation:
//   - Stage 1: lengths = Euclidean edge lengths; every face must satisfy the
//     strict triangle inequality.
//   - Stage 2: radius(v) = min over corners at v of (l1 + l2 − l3)/2, the
//     tangent radius of the incircle construction.
//   - Stage 3: I(e) = (l² − ri² − rj²)/(2 ri rj). Because the minimum is taken,
//     neighbouring circles may be disjoint and I can exceed 1.
//
// Errors: ErrInvalidMetric.
// Complexity: O(V + E + F).
func New(m *halfedge.Mesh) (*Store, error) {
	s := &Store{
		mesh:   m,
		length: make([]float64, m.NumEdges()),
		radius: make([]float64, m.NumVertices()),
		inv:    make([]float64, m.NumEdges()),
	}
	for e := range s.length {
		l := m.EdgeLength(halfedge.EdgeID(e))
		if !positive(l) {
			return nil, errors.Wrapf(ErrInvalidMetric, "edge %d has length %g", e, l)
		}
		s.length[e] = l
	}
	for f := 0; f < m.NumFaces(); f++ {
		if err := s.checkFace(halfedge.FaceID(f), s.length); err != nil {
			return nil, err
		}
	}
	for v := range s.radius {
		r := s.TangentRadius(halfedge.VertexID(v))
		if !positive(r) {
			return nil, errors.Wrapf(ErrInvalidMetric, "vertex %d has radius %g", v, r)
		}
		s.radius[v] = r
	}
	for e := range s.inv {
		s.ResetInversiveDistance(halfedge.EdgeID(e))
	}
	return s, nil
}

// Mesh returns the underlying mesh.
func (s *Store) Mesh() *halfedge.Mesh { return s.mesh }

// EdgeLength returns the current length of e.
func (s *Store) EdgeLength(e halfedge.EdgeID) float64 { return s.length[e] }

// HalfedgeLength returns the length of the edge of h.
func (s *Store) HalfedgeLength(h halfedge.HalfedgeID) float64 { return s.length[s.mesh.Edge(h)] }

// SetEdgeLength replaces the length of e. It fails with ErrInvalidMetric,
// leaving the store unchanged, if l is not a positive finite number or if an
// incident face would violate the strict triangle inequality.
func (s *Store) SetEdgeLength(e halfedge.EdgeID, l float64) error {
	if !s.mesh.HasEdge(e) {
		return errors.Wrapf(ErrInvalidMetric, "edge %d out of range", e)
	}
	if !positive(l) {
		return errors.Wrapf(ErrInvalidMetric, "edge %d: length %g", e, l)
	}
	old := s.length[e]
	s.length[e] = l
	h := s.mesh.Halfedge(e)
	for _, x := range [2]halfedge.HalfedgeID{h, s.mesh.Opposite(h)} {
		if f := s.mesh.Face(x); f != halfedge.NoFace {
			if err := s.checkFace(f, s.length); err != nil {
				s.length[e] = old
				return err
			}
		}
	}
	return nil
}

// SetEdgeLengths assigns several lengths at once, then validates every face
// incident to any of them. On failure all lengths are rolled back. The
// remesher uses it after flips and splits, where faces are only consistent
// once every new length is in place.
func (s *Store) SetEdgeLengths(edges []halfedge.EdgeID, lengths []float64) error {
	if len(edges) != len(lengths) {
		return errors.Wrapf(ErrInvalidMetric, "%d edges, %d lengths", len(edges), len(lengths))
	}
	old := make([]float64, len(edges))
	for i, e := range edges {
		if !s.mesh.HasEdge(e) || int(e) >= len(s.length) {
			return errors.Wrapf(ErrInvalidMetric, "edge %d out of range", e)
		}
		if !positive(lengths[i]) {
			return errors.Wrapf(ErrInvalidMetric, "edge %d: length %g", e, lengths[i])
		}
		old[i] = s.length[e]
	}
	for i, e := range edges {
		s.length[e] = lengths[i]
	}
	for _, e := range edges {
		h := s.mesh.Halfedge(e)
		for _, x := range [2]halfedge.HalfedgeID{h, s.mesh.Opposite(h)} {
			f := s.mesh.Face(x)
			if f == halfedge.NoFace {
				continue
			}
			if err := s.checkFace(f, s.length); err != nil {
				for i := len(edges) - 1; i >= 0; i-- {
					s.length[edges[i]] = old[i]
				}
				return err
			}
		}
	}
	return nil
}

// VertexRadius returns the circle radius at v.
func (s *Store) VertexRadius(v halfedge.VertexID) float64 { return s.radius[v] }

// SetVertexRadius replaces the radius at v; r must be positive and finite.
func (s *Store) SetVertexRadius(v halfedge.VertexID, r float64) error {
	if !s.mesh.HasVertex(v) {
		return errors.Wrapf(ErrInvalidMetric, "vertex %d out of range", v)
	}
	if !positive(r) {
		return errors.Wrapf(ErrInvalidMetric, "vertex %d: radius %g", v, r)
	}
	s.radius[v] = r
	return nil
}

// InversiveDistance returns I(e).
func (s *Store) InversiveDistance(e halfedge.EdgeID) float64 { return s.inv[e] }

// ResetInversiveDistance recomputes I(e) from the current length and the
// radii of its endpoints.
func (s *Store) ResetInversiveDistance(e halfedge.EdgeID) {
	u, v := s.mesh.EdgeVertices(e)
	ri, rj, l := s.radius[u], s.radius[v], s.length[e]
	s.inv[e] = (l*l - ri*ri - rj*rj) / (2 * ri * rj)
}

// LengthFromRadii returns sqrt(max(0, ri² + rj² + 2·ri·rj·I(e))).
func (s *Store) LengthFromRadii(e halfedge.EdgeID) float64 {
	u, v := s.mesh.EdgeVertices(e)
	return lengthFromRadii(s.radius[u], s.radius[v], s.inv[e])
}

func lengthFromRadii(ri, rj, inv float64) float64 {
	return math.Sqrt(math.Max(0, ri*ri+rj*rj+2*ri*rj*inv))
}

// UpdateLengthsFromRadii recomputes every edge length from the radii and
// inversive distances. The new lengths are validated face by face first and
// committed only if all faces pass; otherwise ErrInvalidMetric is returned
// and the store is untouched.
func (s *Store) UpdateLengthsFromRadii() error {
	next := make([]float64, len(s.length))
	for e := range next {
		l := s.LengthFromRadii(halfedge.EdgeID(e))
		if !positive(l) {
			return errors.Wrapf(ErrInvalidMetric, "edge %d: length %g from radii", e, l)
		}
		next[e] = l
	}
	for f := 0; f < s.mesh.NumFaces(); f++ {
		if err := s.checkFace(halfedge.FaceID(f), next); err != nil {
			return err
		}
	}
	s.length = next
	return nil
}

// TangentRadius returns min over the corners at v of (l1 + l2 − l3)/2 for
// the current lengths.
func (s *Store) TangentRadius(v halfedge.VertexID) float64 {
	r := math.Inf(1)
	for _, h := range s.mesh.HalfedgesAroundTarget(v) {
		if s.mesh.IsBorder(h) {
			continue
		}
		n := s.mesh.Next(h)
		l1, l2, l3 := s.HalfedgeLength(h), s.HalfedgeLength(n), s.HalfedgeLength(s.mesh.Next(n))
		r = math.Min(r, (l1+l2-l3)/2)
	}
	return r
}

// Radii returns a copy of all radii.
func (s *Store) Radii() []float64 { return append([]float64(nil), s.radius...) }

// Lengths returns a copy of all edge lengths.
func (s *Store) Lengths() []float64 { return append([]float64(nil), s.length...) }

// SetRadii replaces every radius at once. radii must match the current
// vertex count and hold positive finite values; otherwise nothing changes.
// Lengths are not touched: call UpdateLengthsFromRadii to propagate.
func (s *Store) SetRadii(radii []float64) error {
	if len(radii) != len(s.radius) {
		return errors.Wrapf(ErrInvalidMetric, "%d radii for %d vertices", len(radii), len(s.radius))
	}
	for v, r := range radii {
		if !positive(r) {
			return errors.Wrapf(ErrInvalidMetric, "vertex %d: radius %g", v, r)
		}
	}
	copy(s.radius, radii)
	return nil
}

// RestoreRadii overwrites the radii with a snapshot taken by Radii.
func (s *Store) RestoreRadii(snapshot []float64) error { return s.SetRadii(snapshot) }

// RestoreLengths overwrites the lengths with a snapshot taken by Lengths.
// The snapshot must match the current edge count; no validation beyond
// positivity is done since the snapshot came from a valid state.
func (s *Store) RestoreLengths(snapshot []float64) error {
	if len(snapshot) != len(s.length) {
		return errors.Wrapf(ErrInvalidMetric, "length snapshot of %d edges, have %d", len(snapshot), len(s.length))
	}
	for e, l := range snapshot {
		if !positive(l) {
			return errors.Wrapf(ErrInvalidMetric, "edge %d: length %g", e, l)
		}
	}
	copy(s.length, snapshot)
	return nil
}

// Grow extends the per-vertex and per-edge slices after the mesh gained
// elements through SplitEdge. New entries are zero until set by the caller.
func (s *Store) Grow() {
	for len(s.radius) < s.mesh.NumVertices() {
		s.radius = append(s.radius, 0)
	}
	for len(s.length) < s.mesh.NumEdges() {
		s.length = append(s.length, 0)
		s.inv = append(s.inv, 0)
	}
}

// IsValid audits every face against the strict triangle inequality and
// every radius for positivity.
func (s *Store) IsValid() error {
	for v, r := range s.radius {
		if !positive(r) {
			return errors.Wrapf(ErrInvalidMetric, "vertex %d: radius %g", v, r)
		}
	}
	for f := 0; f < s.mesh.NumFaces(); f++ {
		if err := s.checkFace(halfedge.FaceID(f), s.length); err != nil {
			return err
		}
	}
	return nil
}

// checkFace tests the strict triangle inequality of f under lengths.
func (s *Store) checkFace(f halfedge.FaceID, lengths []float64) error {
	hs := s.mesh.HalfedgesAroundFace(f)
	a := lengths[s.mesh.Edge(hs[0])]
	b := lengths[s.mesh.Edge(hs[1])]
	c := lengths[s.mesh.Edge(hs[2])]
	if !IsTriangle(a, b, c) {
		return errors.Wrapf(ErrInvalidMetric, "face %d: lengths (%g, %g, %g)", f, a, b, c)
	}
	return nil
}

// IsTriangle reports whether a, b and c are positive finite lengths that
// satisfy the strict triangle inequality.
func IsTriangle(a, b, c float64) bool {
	return positive(a) && positive(b) && positive(c) && a+b > c && b+c > a && c+a > b
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
