// SPDX-License-Identifier: MIT

package halfedge

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// edgeKey is an unordered vertex pair with U < V.
type edgeKey struct {
	U, V int
}

func keyOf(a, b int) edgeKey {
	if a < b {
		return edgeKey{U: a, V: b}
	}
	return edgeKey{U: b, V: a}
}

// New builds a Mesh from vertex positions and counter-clockwise triangles.
//
// Validation:
//   - at least one face (ErrEmptyMesh);
//   - every index in range and no repeated corner (ErrBadFace);
//   - every edge shared by at most two faces with opposite orientations,
//     every vertex used, and every vertex fan a single disk or half-disk
//     (ErrNonManifold).
//
// Complexity: O(V + F) expected time and memory.
func New(positions []r3.Vec, faces [][3]int) (*Mesh, error) {
	if len(faces) == 0 {
		return nil, ErrEmptyMesh
	}
	nv := len(positions)
	m := &Mesh{
		positions: append([]r3.Vec(nil), positions...),
		vhalf:     make([]HalfedgeID, nv),
		fhalf:     make([]HalfedgeID, 0, len(faces)),
	}
	for i := range m.vhalf {
		m.vhalf[i] = NoHalfedge
	}

	edges := make(map[edgeKey]EdgeID, len(faces)*3/2+1)
	var corner [3]HalfedgeID
	for fi, f := range faces {
		for k := 0; k < 3; k++ {
			if f[k] < 0 || f[k] >= nv {
				return nil, errors.Wrapf(ErrBadFace, "face %d: vertex %d out of range", fi, f[k])
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return nil, errors.Wrapf(ErrBadFace, "face %d: repeated vertex %v", fi, f)
		}

		fid := FaceID(fi)
		for k := 0; k < 3; k++ {
			u, v := f[k], f[(k+1)%3]
			key := keyOf(u, v)
			e, ok := edges[key]
			if !ok {
				e = m.newEdge(VertexID(v), VertexID(u))
				edges[key] = e
			}
			h := HalfedgeID(2 * e)
			if m.target[h] != VertexID(v) {
				h ^= 1
			}
			if m.face[h] != NoFace {
				return nil, errors.Wrapf(ErrNonManifold, "face %d: directed edge %d→%d already used", fi, u, v)
			}
			m.face[h] = fid
			corner[k] = h
		}
		for k := 0; k < 3; k++ {
			m.next[corner[k]] = corner[(k+1)%3]
			m.prev[corner[(k+1)%3]] = corner[k]
		}
		m.fhalf = append(m.fhalf, corner[0])
	}

	if err := m.linkBorders(); err != nil {
		return nil, err
	}
	if err := m.checkFans(); err != nil {
		return nil, err
	}

	return m, nil
}

// newEdge appends a halfedge pair; the even halfedge points to to, the odd
// one back to from. Both start on the border.
func (m *Mesh) newEdge(to, from VertexID) EdgeID {
	e := EdgeID(len(m.target) / 2)
	m.target = append(m.target, to, from)
	m.face = append(m.face, NoFace, NoFace)
	m.next = append(m.next, NoHalfedge, NoHalfedge)
	m.prev = append(m.prev, NoHalfedge, NoHalfedge)

	return e
}

// linkBorders chains border halfedges into loops and picks the incoming
// halfedge of every vertex (border halfedges win).
func (m *Mesh) linkBorders() error {
	out := make(map[VertexID]HalfedgeID)
	for h := range m.target {
		hid := HalfedgeID(h)
		if m.face[hid] != NoFace {
			continue
		}
		src := m.Source(hid)
		if _, dup := out[src]; dup {
			return errors.Wrapf(ErrNonManifold, "vertex %d has two border fans", src)
		}
		out[src] = hid
	}
	for h := range m.target {
		hid := HalfedgeID(h)
		t := m.target[hid]
		if m.face[hid] == NoFace {
			n := out[t]
			m.next[hid] = n
			m.prev[n] = hid
			m.vhalf[t] = hid
			continue
		}
		if m.vhalf[t] == NoHalfedge {
			m.vhalf[t] = hid
		}
	}
	for v, h := range m.vhalf {
		if h == NoHalfedge {
			return errors.Wrapf(ErrNonManifold, "vertex %d is isolated", v)
		}
	}

	return nil
}

// checkFans verifies that circulating around each vertex reaches every
// halfedge pointing into it.
func (m *Mesh) checkFans() error {
	incoming := make([]int, len(m.positions))
	for _, t := range m.target {
		incoming[t]++
	}
	for v := range m.positions {
		if n := len(m.HalfedgesAroundTarget(VertexID(v))); n != incoming[v] {
			return errors.Wrapf(ErrNonManifold, "vertex %d: fan covers %d of %d halfedges", v, n, incoming[v])
		}
	}

	return nil
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.positions) }

// NumHalfedges returns the number of halfedges, border ones included.
func (m *Mesh) NumHalfedges() int { return len(m.target) }

// NumEdges returns the number of undirected edges.
func (m *Mesh) NumEdges() int { return len(m.target) / 2 }

// NumFaces returns the number of triangles.
func (m *Mesh) NumFaces() int { return len(m.fhalf) }

// HasVertex reports whether v is a valid vertex ID.
func (m *Mesh) HasVertex(v VertexID) bool { return v >= 0 && int(v) < len(m.positions) }

// HasEdge reports whether e is a valid edge ID.
func (m *Mesh) HasEdge(e EdgeID) bool { return e >= 0 && int(e) < m.NumEdges() }

// HasFace reports whether f is a valid face ID.
func (m *Mesh) HasFace(f FaceID) bool { return f >= 0 && int(f) < len(m.fhalf) }

// Position returns the 3D position of v.
func (m *Mesh) Position(v VertexID) r3.Vec { return m.positions[v] }

// SetPosition moves v. Topology is unaffected.
func (m *Mesh) SetPosition(v VertexID, p r3.Vec) { m.positions[v] = p }

// Halfedge returns the even halfedge of e.
func (m *Mesh) Halfedge(e EdgeID) HalfedgeID { return HalfedgeID(2 * e) }

// FaceHalfedge returns one halfedge bounding f.
func (m *Mesh) FaceHalfedge(f FaceID) HalfedgeID { return m.fhalf[f] }

// VertexHalfedge returns one halfedge pointing into v; for border vertices
// it is the incoming border halfedge.
func (m *Mesh) VertexHalfedge(v VertexID) HalfedgeID { return m.vhalf[v] }

// Edge returns the undirected edge of h.
func (m *Mesh) Edge(h HalfedgeID) EdgeID { return EdgeID(h / 2) }

// Opposite returns the twin of h.
func (m *Mesh) Opposite(h HalfedgeID) HalfedgeID { return h ^ 1 }

// Next returns the halfedge following h around its face or border loop.
func (m *Mesh) Next(h HalfedgeID) HalfedgeID { return m.next[h] }

// Prev returns the halfedge preceding h around its face or border loop.
func (m *Mesh) Prev(h HalfedgeID) HalfedgeID { return m.prev[h] }

// Target returns the head vertex of h.
func (m *Mesh) Target(h HalfedgeID) VertexID { return m.target[h] }

// Source returns the tail vertex of h.
func (m *Mesh) Source(h HalfedgeID) VertexID { return m.target[h^1] }

// Face returns the face left of h, or NoFace for border halfedges.
func (m *Mesh) Face(h HalfedgeID) FaceID { return m.face[h] }

// IsBorder reports whether h is a border halfedge.
func (m *Mesh) IsBorder(h HalfedgeID) bool { return m.face[h] == NoFace }

// IsBorderEdge reports whether one side of e is a border halfedge.
func (m *Mesh) IsBorderEdge(e EdgeID) bool {
	h := m.Halfedge(e)
	return m.IsBorder(h) || m.IsBorder(h^1)
}

// IsBorderVertex reports whether v lies on the boundary.
func (m *Mesh) IsBorderVertex(v VertexID) bool { return m.IsBorder(m.vhalf[v]) }

// HasBorder reports whether the mesh has any boundary.
func (m *Mesh) HasBorder() bool {
	for _, f := range m.face {
		if f == NoFace {
			return true
		}
	}
	return false
}

// EulerCharacteristic returns V − E + F.
func (m *Mesh) EulerCharacteristic() int {
	return m.NumVertices() - m.NumEdges() + m.NumFaces()
}

// EdgeVertices returns the endpoints of e in the direction of its even halfedge.
func (m *Mesh) EdgeVertices(e EdgeID) (VertexID, VertexID) {
	h := m.Halfedge(e)
	return m.Source(h), m.Target(h)
}

// FaceVertices returns the three corners of f in counter-clockwise order.
func (m *Mesh) FaceVertices(f FaceID) [3]VertexID {
	h := m.fhalf[f]
	return [3]VertexID{m.Source(h), m.Target(h), m.Target(m.next[h])}
}
