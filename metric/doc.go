// SPDX-License-Identifier: MIT

// Package metric stores the intrinsic circle-packing metric of a triangle
// mesh (edge lengths, vertex radii, inversive distances) and derives corner
// angles and discrete Gaussian curvature from it.
//
// Lengths are authoritative. The curvature flow changes radii, then
// UpdateLengthsFromRadii rebuilds every length in one validated step; the
// remesher edits lengths directly after flips and splits.
package metric
