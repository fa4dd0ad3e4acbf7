// SPDX-License-Identifier: MIT

// Package ricci is the root of a discrete Ricci-flow surface
// parameterizer. It holds no code; the work is split into subpackages:
//
//	halfedge/ : index-based triangle mesh with flip and split
//	metric/   : circle-packing metric: lengths, radii, angles, curvature
//	delaunay/ : intrinsic Delaunay remeshing with visitor hooks
//	linalg/   : sparse matrices, LU and conjugate gradient
//	ricci/    : curvature flow solver (gradient descent and Newton)
//	seam/     : shortest-path seams through the cones
//	embed/    : planar layout of the cut surface
//	param/    : one-call facade: mesh in, layout out
//	cmd/ricciflow: command-line driver
//
// Start with package param.
package ricci
