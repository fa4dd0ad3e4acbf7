// SPDX-License-Identifier: MIT

package delaunay

// Scheme selects how non-Delaunay edges are repaired.
type Scheme int

const (
	// SimpleFlip flips every non-Delaunay edge it can and reports the rest
	// as non-flippable.
	SimpleFlip Scheme = iota

	// GeometryPreserving flips virtual edges (flat, or created while
	// remeshing) and splits physical ones, so the surface shape is kept.
	GeometryPreserving

	// FeaturePreserving behaves like SimpleFlip but never touches an edge
	// whose dihedral angle exceeds the configured threshold.
	FeaturePreserving
)

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case SimpleFlip:
		return "SimpleFlip"
	case GeometryPreserving:
		return "GeometryPreserving"
	case FeaturePreserving:
		return "FeaturePreserving"
	default:
		return "Unknown"
	}
}
