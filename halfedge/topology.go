// SPDX-License-Identifier: MIT

package halfedge

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// quad gathers the halfedges around an interior edge p→q with the
// triangles (p, q, v) on the left and (q, p, u) on the right.
type quad struct {
	h, h1, h2 HalfedgeID // p→q, q→v, v→p
	o, o1, o2 HalfedgeID // q→p, p→u, u→q
	p, q      VertexID
	u, v      VertexID
}

func (m *Mesh) quadOf(e EdgeID) (quad, error) {
	if !m.HasEdge(e) {
		return quad{}, errors.Wrapf(ErrOutOfRange, "edge %d", e)
	}
	h := m.Halfedge(e)
	o := h ^ 1
	if m.IsBorder(h) || m.IsBorder(o) {
		return quad{}, errors.Wrapf(ErrIllegalTopology, "edge %d lies on the border", e)
	}
	q := quad{h: h, o: o}
	q.h1 = m.next[h]
	q.h2 = m.next[q.h1]
	q.o1 = m.next[o]
	q.o2 = m.next[q.o1]
	q.p = m.Source(h)
	q.q = m.target[h]
	q.v = m.target[q.h1]
	q.u = m.target[q.o1]

	return q, nil
}

// CanFlip reports whether FlipEdge(e) would succeed: e is interior, its two
// opposite vertices differ and are not already adjacent.
func (m *Mesh) CanFlip(e EdgeID) bool {
	q, err := m.quadOf(e)
	if err != nil {
		return false
	}
	if q.u == q.v {
		return false
	}
	return m.FindHalfedge(q.u, q.v) == NoHalfedge
}

// FlipEdge replaces the diagonal p–q of the quad (p, u, q, v) by u–v.
// The edge keeps its ID; its even halfedge afterwards points from u to v.
// Face IDs are kept: the left face becomes (v, p, u), the right one (u, q, v).
//
// Returns ErrIllegalTopology when CanFlip(e) is false.
// Complexity: O(deg(u)) for the adjacency test, O(1) relinking.
func (m *Mesh) FlipEdge(e EdgeID) error {
	q, err := m.quadOf(e)
	if err != nil {
		return err
	}
	if q.u == q.v || m.FindHalfedge(q.u, q.v) != NoHalfedge {
		return errors.Wrapf(ErrIllegalTopology, "flip of edge %d would duplicate edge %d–%d", e, q.u, q.v)
	}
	f1, f2 := m.face[q.h], m.face[q.o]

	if m.vhalf[q.q] == q.h {
		m.vhalf[q.q] = q.o2
	}
	if m.vhalf[q.p] == q.o {
		m.vhalf[q.p] = q.h2
	}

	m.target[q.h] = q.v
	m.target[q.o] = q.u

	m.link(f1, q.h2, q.o1, q.h)
	m.link(f2, q.o2, q.h1, q.o)
	m.fhalf[f1] = q.h
	m.fhalf[f2] = q.o

	return nil
}

// SplitEdge inserts a vertex at pos on the interior edge p–q and connects it
// to both opposite vertices, turning two triangles into four. The original
// edge ID is kept for p–s; three edges and two faces are appended.
//
// Returns ErrIllegalTopology for border edges.
// Complexity: O(1) amortized.
func (m *Mesh) SplitEdge(e EdgeID, pos r3.Vec) (Split, error) {
	q, err := m.quadOf(e)
	if err != nil {
		return Split{}, err
	}
	f1, f2 := m.face[q.h], m.face[q.o]

	s := VertexID(len(m.positions))
	m.positions = append(m.positions, pos)
	m.vhalf = append(m.vhalf, q.h)

	a := m.newEdge(q.q, s) // s→q, q→s
	b := m.newEdge(q.v, s) // s→v, v→s
	c := m.newEdge(q.u, s) // s→u, u→s
	sq, qs := HalfedgeID(2*a), HalfedgeID(2*a+1)
	sv, vs := HalfedgeID(2*b), HalfedgeID(2*b+1)
	su, us := HalfedgeID(2*c), HalfedgeID(2*c+1)

	if m.vhalf[q.q] == q.h {
		m.vhalf[q.q] = sq
	}
	m.target[q.h] = s

	f3 := FaceID(len(m.fhalf))
	f4 := f3 + 1
	m.fhalf = append(m.fhalf, sq, qs)

	m.link(f1, q.h, sv, q.h2) // (p, s, v)
	m.link(f3, sq, q.h1, vs)  // (s, q, v)
	m.link(f2, q.o, q.o1, us) // (s, p, u)
	m.link(f4, qs, su, q.o2)  // (q, s, u)
	m.fhalf[f1] = q.h
	m.fhalf[f2] = q.o

	return Split{Edge: e, Vertex: s, HPS: q.h, HQS: qs, HUS: us, HVS: vs}, nil
}

// link closes the triangle a→b→c→a and assigns it to f.
func (m *Mesh) link(f FaceID, a, b, c HalfedgeID) {
	m.next[a], m.next[b], m.next[c] = b, c, a
	m.prev[b], m.prev[c], m.prev[a] = a, b, c
	m.face[a], m.face[b], m.face[c] = f, f, f
}
