// SPDX-License-Identifier: MIT

package param_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/ricci/delaunay"
	"github.com/katalvlaran/ricci/embed"
	"github.com/katalvlaran/ricci/halfedge"
	"github.com/katalvlaran/ricci/metric"
	"github.com/katalvlaran/ricci/param"
	"github.com/katalvlaran/ricci/ricci"
)

func tetrahedron(t *testing.T, opts ...param.Option) *param.Parameterizer {
	t.Helper()
	p, err := param.New(halfedge.Tetrahedron(), opts...)
	require.NoError(t, err)
	return p
}

func addCones(t *testing.T, p *param.Parameterizer, d float64) {
	t.Helper()
	for v, k := range []float64{math.Pi + d, math.Pi - d, math.Pi, math.Pi} {
		require.NoError(t, p.AddCone(halfedge.VertexID(v), k))
	}
}

func TestParameterize_TetrahedronNewton(t *testing.T) {
	rec := &delaunay.Recorder{}
	p := tetrahedron(t, param.WithSolver(ricci.Newton), param.WithVisitor(rec))
	addCones(t, p, 0.25)

	res, err := p.Parameterize()
	require.NoError(t, err)
	require.NoError(t, res.Err())
	assert.Equal(t, ricci.Converged, res.Solve.Status)
	assert.Same(t, p.Metric(), res.Metric)
	assert.NotEmpty(t, rec.Events)

	emb := res.Embedding
	require.NotNil(t, emb)
	// Vertex 0 roots the seam and is copied onto the three flaps.
	assert.Equal(t, 1, emb.Regions())
	assert.Equal(t, 6, emb.NumImages())
	assert.Len(t, emb.Images(0), 3)
	assertIsometric(t, res, 1e-9)
}

// assertIsometric checks every face of the layout against the metric.
func assertIsometric(t *testing.T, res *param.Result, delta float64) {
	t.Helper()
	emb := res.Embedding
	require.NotNil(t, emb)
	m := res.Metric.Mesh()
	for f := 0; f < m.NumFaces(); f++ {
		for _, h := range m.HalfedgesAroundFace(halfedge.FaceID(f)) {
			d := r2.Norm(r2.Sub(emb.UV(h), emb.UV(m.Prev(h))))
			assert.InDelta(t, res.Metric.HalfedgeLength(h), d, delta, "face %d halfedge %d", f, h)
		}
		assert.Greater(t, emb.SignedArea(halfedge.FaceID(f)), 0.0, "face %d orientation", f)
	}
}

func icosphere(t *testing.T, cones []halfedge.VertexID) *param.Result {
	t.Helper()
	m, err := halfedge.Subdivide(halfedge.Icosahedron(), true)
	require.NoError(t, err)
	p, err := param.New(m)
	require.NoError(t, err)
	st := ricci.DefaultSettings()
	st.Type = ricci.Newton
	st.Eps = 1e-10
	require.NoError(t, p.SetSolverSettings(st))
	k := 4 * math.Pi / float64(len(cones))
	for _, v := range cones {
		require.NoError(t, p.AddCone(v, k))
	}
	res, err := p.Parameterize()
	require.NoError(t, err)
	require.Equal(t, ricci.Converged, res.Solve.Status)
	return res
}

func TestParameterize_IcosphereFourCones(t *testing.T) {
	res := icosphere(t, []halfedge.VertexID{0, 1, 2, 3})
	emb := res.Embedding
	assert.Equal(t, 1, emb.Regions())
	for v := halfedge.VertexID(4); int(v) < res.Metric.Mesh().NumVertices(); v++ {
		require.InDelta(t, 0, res.Metric.DiscreteCurvature(v), 1e-9)
	}
	assertIsometric(t, res, 1e-6)
}

func TestParameterize_IcosphereFarCones(t *testing.T) {
	// 0 and 3 are antipodal; 8 sits on the equator between them.
	cones := []halfedge.VertexID{0, 3, 8}
	res := icosphere(t, cones)
	emb := res.Embedding
	assert.Equal(t, 1, emb.Regions())
	for _, v := range cones {
		assert.GreaterOrEqual(t, emb.Seam().Degree(v), 1, "cone %d lies on the seam", v)
	}
	assertIsometric(t, res, 1e-6)
}

func TestParameterize_DiskWithInteriorCone(t *testing.T) {
	grid, err := halfedge.Grid(2, 2, 1)
	require.NoError(t, err)
	p, err := param.New(grid, param.WithSolver(ricci.Newton))
	require.NoError(t, err)
	require.NoError(t, p.AddCone(4, 0.3))

	res, err := p.Parameterize()
	require.NoError(t, err)
	assert.Equal(t, ricci.Converged, res.Solve.Status)
	assert.InDelta(t, 0.3, res.Metric.DiscreteCurvature(4), 1e-6)
	emb := res.Embedding
	assert.Equal(t, 1, emb.Regions())
	// One seam edge from the cone to the nearest border vertex, which is
	// the only vertex split in two.
	require.Equal(t, 1, emb.Seam().Len())
	a, b := grid.EdgeVertices(emb.Seam().Edges()[0])
	if a != 4 {
		a, b = b, a
	}
	require.Equal(t, halfedge.VertexID(4), a)
	assert.Len(t, emb.Images(4), 1)
	assert.Len(t, emb.Images(b), 2)
	assert.Equal(t, grid.NumVertices()+1, emb.NumImages())
	assertIsometric(t, res, 1e-9)
}

func TestParameterize_MaxIterStillEmbeds(t *testing.T) {
	p := tetrahedron(t)
	st := ricci.DefaultSettings()
	st.Step = 0.2
	st.MaxIters = 1
	require.NoError(t, p.SetSolverSettings(st))
	addCones(t, p, 0.2)

	res, err := p.Parameterize()
	require.NoError(t, err)
	assert.Equal(t, ricci.MaxIterExceeded, res.Solve.Status)
	assert.True(t, errors.Is(res.Err(), ricci.ErrMaxIterExceeded))
	assert.NotNil(t, res.Embedding)
}

func TestParameterize_Failures(t *testing.T) {
	t.Run("infeasible", func(t *testing.T) {
		p := tetrahedron(t)
		res, err := p.Parameterize()
		assert.True(t, errors.Is(err, ricci.ErrInvalidCone))
		assert.Nil(t, res)
	})

	t.Run("diverged", func(t *testing.T) {
		p := tetrahedron(t)
		st := ricci.DefaultSettings()
		st.Step = 1.5
		st.DivergenceWindow = 1
		require.NoError(t, p.SetSolverSettings(st))
		require.NoError(t, p.AddCone(0, math.Pi+0.3))
		for v := halfedge.VertexID(1); v < 4; v++ {
			require.NoError(t, p.AddCone(v, math.Pi-0.1))
		}
		res, err := p.Parameterize()
		assert.True(t, errors.Is(err, ricci.ErrDiverged))
		require.NotNil(t, res)
		assert.Nil(t, res.Embedding)
	})

	t.Run("degenerate mesh", func(t *testing.T) {
		m, err := halfedge.New([]r3.Vec{{}, {X: 1}, {X: 2}}, [][3]int{{0, 1, 2}})
		require.NoError(t, err)
		_, err = param.New(m)
		assert.True(t, errors.Is(err, metric.ErrInvalidMetric))
	})

	t.Run("bad option", func(t *testing.T) {
		_, err := param.New(halfedge.Tetrahedron(), param.WithScheme(delaunay.Scheme(12)))
		assert.True(t, errors.Is(err, ricci.ErrOptionViolation))
	})

	t.Run("bad seed", func(t *testing.T) {
		p := tetrahedron(t, param.WithEmbedOptions(embed.WithSeedFace(9)))
		addCones(t, p, 0)
		res, err := p.Parameterize()
		assert.True(t, errors.Is(err, embed.ErrOptionViolation))
		require.NotNil(t, res)
		assert.Equal(t, ricci.Converged, res.Solve.Status)
	})

	t.Run("runs once", func(t *testing.T) {
		p := tetrahedron(t)
		addCones(t, p, 0)
		_, err := p.Parameterize()
		require.NoError(t, err)
		_, err = p.Parameterize()
		assert.True(t, errors.Is(err, ricci.ErrSolverState))
		assert.True(t, errors.Is(p.AddCone(0, 1), ricci.ErrSolverState))
	})
}
