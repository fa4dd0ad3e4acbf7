// SPDX-License-Identifier: MIT

// Package ricci implements discrete Ricci flow on a circle-packing metric.
//
// A Solver adjusts vertex radii of a metric.Store, in log space, until the
// discrete curvature at every constrained vertex matches its target:
// the cone value for cone vertices, 0 for the remaining interior vertices.
// Border vertices without a cone are free. After every radius update the
// mesh is brought back to an intrinsic Delaunay triangulation with the
// delaunay package, so the flow is run on the Delaunay complex throughout.
//
// Two update rules are available. GradientDescent moves u = log r along
// the residual. Newton solves with the curvature Hessian (see Hessian),
// a Laplacian with power-circle weights, and falls back to a gradient step
// whenever the Newton step cannot be used.
//
// Lifecycle:
//
//	sv := ricci.NewSolver(store)
//	_ = sv.SetSettings(ricci.DefaultSettings())
//	_ = sv.AddCone(v, math.Pi/2)
//	res, err := sv.Solve()
//
// Solve reports a soft failure (MaxIterExceeded) through Result.Err and a
// hard one (Diverged) through a *DivergenceError. A Solver and its store
// are not safe for concurrent use.
package ricci
