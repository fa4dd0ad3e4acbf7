// SPDX-License-Identifier: MIT

// Package delaunay keeps an evolving intrinsic metric locally Delaunay by
// flipping and splitting edges, and reports every change to a Visitor.
//
// An edge is Delaunay when the two angles facing it sum to at most π.
// Remesh drains a FIFO of offending edges under one of three schemes:
//
//	SimpleFlip          flip what can be flipped, report the rest.
//	GeometryPreserving  flip flat or remesher-made edges, split physical ones.
//	FeaturePreserving   like SimpleFlip, but sharp edges are left untouched
//	                    and never reported.
//
// Legality is decided from metric lengths only; 3D positions are read once
// per run to classify edges, and written only to place split vertices.
// Neither Store nor Mesh is synchronized: one Remesh at a time per store.
package delaunay
