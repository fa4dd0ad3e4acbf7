// SPDX-License-Identifier: MIT

// Package embed lays an intrinsic metric out in the plane.
//
// EmbedCirclePackingMetric first cuts the surface along a seam from package
// seam, which joins the cones to each other or to the border, then walks
// the faces breadth first without crossing it, placing each new face
// against its parent by intersecting two circles. Every region is a
// topological disk, so the layout of a flattened metric is isometric on
// every face. Vertices on the seam get one copy per side.
//
// The result is stored per face corner (UV). The package only reads the
// metric store.
package embed
