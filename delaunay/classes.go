// SPDX-License-Identifier: MIT

package delaunay

import "github.com/katalvlaran/ricci/halfedge"

// EdgeClasses remembers how Remesh treats each edge and vertex: physical
// edges are bent in 3D and came with the input, feature edges are physical
// edges sharper than the dihedral threshold, and split vertices were
// inserted by GeometryPreserving.
//
// Remesh classifies the mesh afresh on every call unless WithEdgeClasses
// hands it the classes of an earlier run; then flips and splits stay
// remembered across runs. A flipped edge is never physical again.
type EdgeClasses struct {
	physical []bool // by EdgeID
	feature  []bool // by EdgeID
	split    []bool // by VertexID
}

// Classify derives the classes of m from its 3D dihedral angles, using the
// FlatTolerance and DihedralThreshold of opts.
//
// Errors: ErrOptionViolation.
func Classify(m *halfedge.Mesh, opts ...Option) (*EdgeClasses, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return classify(m, o), nil
}

func classify(m *halfedge.Mesh, o Options) *EdgeClasses {
	ne := m.NumEdges()
	c := &EdgeClasses{
		physical: make([]bool, ne),
		feature:  make([]bool, ne),
		split:    make([]bool, m.NumVertices()),
	}
	flat := o.FlatTolerance.Radians()
	sharp := o.DihedralThreshold.Radians()
	for e := 0; e < ne; e++ {
		d := m.DihedralAngle(halfedge.EdgeID(e))
		c.physical[e] = d > flat
		c.feature[e] = d > sharp
	}
	return c
}

// Physical reports whether e is an input edge bent in 3D.
func (c *EdgeClasses) Physical(e halfedge.EdgeID) bool {
	return e >= 0 && int(e) < len(c.physical) && c.physical[e]
}

// Feature reports whether e is a physical edge sharper than the threshold.
func (c *EdgeClasses) Feature(e halfedge.EdgeID) bool {
	return e >= 0 && int(e) < len(c.feature) && c.feature[e]
}

// SplitVertex reports whether v was created by a split.
func (c *EdgeClasses) SplitVertex(v halfedge.VertexID) bool {
	return v >= 0 && int(v) < len(c.split) && c.split[v]
}

// grow covers edges and vertices added since the classes were built; they
// start virtual and unsplit.
func (c *EdgeClasses) grow(ne, nv int) {
	for len(c.physical) < ne {
		c.physical = append(c.physical, false)
		c.feature = append(c.feature, false)
	}
	for len(c.split) < nv {
		c.split = append(c.split, false)
	}
}

// flipped marks e as a remeshing edge.
func (c *EdgeClasses) flipped(e halfedge.EdgeID) {
	c.physical[e] = false
	c.feature[e] = false
}
