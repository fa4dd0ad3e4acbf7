// SPDX-License-Identifier: MIT

// Package param is the entry point of the module: it turns a triangle mesh
// into a planar layout by discrete Ricci flow.
//
//	p, err := param.New(mesh, param.WithSolver(ricci.Newton))
//	if err != nil { ... }
//	_ = p.AddCone(v, math.Pi/2)
//	res, err := p.Parameterize()
//
// Under the hood New builds a metric.Store, Parameterize runs a
// ricci.Solver (which remeshes with the delaunay package after every step)
// and lays the flattened metric out with embed.EmbedCirclePackingMetric.
// Cones are given in radians; the layout is cut along the shortest seam
// through them (package seam).
//
// Nothing here is safe for concurrent use; SetLogger is.
package param
