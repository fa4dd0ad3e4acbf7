// SPDX-License-Identifier: MIT

package halfedge_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/ricci/halfedge"
)

type TopologySuite struct {
	suite.Suite
	mesh *halfedge.Mesh
}

func (s *TopologySuite) SetupTest() {
	s.mesh = halfedge.Octahedron()
}

// equator returns the octahedron edge between vertices 0 and 2, whose
// opposite vertices 4 and 5 are not adjacent.
func (s *TopologySuite) equator() halfedge.EdgeID {
	h := s.mesh.FindHalfedge(0, 2)
	s.Require().NotEqual(halfedge.NoHalfedge, h)
	return s.mesh.Edge(h)
}

func (s *TopologySuite) TestFlip() {
	m := s.mesh
	e := s.equator()
	s.Require().True(m.CanFlip(e))
	v, ed, f := m.NumVertices(), m.NumEdges(), m.NumFaces()

	s.Require().NoError(m.FlipEdge(e))
	s.Require().NoError(m.Validate())

	s.Equal(v, m.NumVertices())
	s.Equal(ed, m.NumEdges())
	s.Equal(f, m.NumFaces())
	s.Equal(halfedge.NoHalfedge, m.FindHalfedge(0, 2))
	s.Equal(halfedge.NoHalfedge, m.FindHalfedge(2, 0))
	a, b := m.EdgeVertices(e)
	s.ElementsMatch([]halfedge.VertexID{4, 5}, []halfedge.VertexID{a, b})
	s.Equal(3, m.Degree(0))
	s.Equal(3, m.Degree(2))
	s.Equal(5, m.Degree(4))
	s.Equal(5, m.Degree(5))

	// Flipping back restores the original diagonal.
	s.Require().NoError(m.FlipEdge(e))
	s.Require().NoError(m.Validate())
	a, b = m.EdgeVertices(e)
	s.ElementsMatch([]halfedge.VertexID{0, 2}, []halfedge.VertexID{a, b})
}

func (s *TopologySuite) TestFlipRejected() {
	tet := halfedge.Tetrahedron()
	for e := 0; e < tet.NumEdges(); e++ {
		eid := halfedge.EdgeID(e)
		s.False(tet.CanFlip(eid))
		err := tet.FlipEdge(eid)
		s.True(errors.Is(err, halfedge.ErrIllegalTopology), "edge %d: %v", e, err)
	}
	s.True(errors.Is(tet.FlipEdge(99), halfedge.ErrOutOfRange))
	s.NoError(tet.Validate())
}

func (s *TopologySuite) TestSplit() {
	m := s.mesh
	e := s.equator()
	p, q := m.EdgeVertices(e)
	pos := m.PointOnEdge(e, 0.5)
	v, ed, f := m.NumVertices(), m.NumEdges(), m.NumFaces()

	site, err := m.SplitEdge(e, pos)
	s.Require().NoError(err)
	s.Require().NoError(m.Validate())

	s.Equal(v+1, m.NumVertices())
	s.Equal(ed+3, m.NumEdges())
	s.Equal(f+2, m.NumFaces())
	s.Equal(2, m.EulerCharacteristic())

	sv := site.Vertex
	s.Equal(halfedge.VertexID(v), sv)
	s.Equal(pos, m.Position(sv))
	s.Equal(4, m.Degree(sv))
	s.Equal(e, site.Edge)
	for _, h := range []halfedge.HalfedgeID{site.HPS, site.HQS, site.HUS, site.HVS} {
		s.Equal(sv, m.Target(h))
	}
	s.Equal(p, m.Source(site.HPS))
	s.Equal(q, m.Source(site.HQS))
	s.Equal(halfedge.NoHalfedge, m.FindHalfedge(p, q))
	s.NotEqual(halfedge.NoHalfedge, m.FindHalfedge(q, sv))
}

func (s *TopologySuite) TestSplitBorderRejected() {
	tri, err := halfedge.Triangle(1)
	s.Require().NoError(err)
	_, err = tri.SplitEdge(0, r3.Vec{X: 0.5})
	s.True(errors.Is(err, halfedge.ErrIllegalTopology))
	s.False(tri.CanFlip(0))
}

func TestTopologySuite(t *testing.T) {
	suite.Run(t, new(TopologySuite))
}

func TestSplitThenFlipKeepsManifold(t *testing.T) {
	m := halfedge.Icosahedron()
	for i := 0; i < 10; i++ {
		e := halfedge.EdgeID(i * 3)
		_, err := m.SplitEdge(e, m.PointOnEdge(e, 0.25))
		require.NoError(t, err)
	}
	flipped := 0
	for e := 0; e < m.NumEdges(); e++ {
		eid := halfedge.EdgeID(e)
		if m.CanFlip(eid) {
			require.NoError(t, m.FlipEdge(eid))
			flipped++
		}
	}
	require.NoError(t, m.Validate())
	assert.Positive(t, flipped)
	assert.Equal(t, 2, m.EulerCharacteristic())
}
