// SPDX-License-Identifier: MIT

package delaunay

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
)

// Defaults used when no Option overrides them.
const (
	DefaultDihedralThreshold = 10 * s1.Degree
	DefaultFlatTolerance     = 1 * s1.Degree
	DefaultEpsilon           = 1e-9
)

// Options configures Remesh.
type Options struct {
	// Visitor receives remesh events. Nil selects NopVisitor.
	Visitor Visitor

	// DihedralThreshold marks feature edges for FeaturePreserving: an edge
	// whose face normals differ by more than this angle is never touched.
	DihedralThreshold s1.Angle

	// FlatTolerance marks virtual edges for GeometryPreserving: an edge whose
	// face normals differ by at most this angle may be flipped.
	FlatTolerance s1.Angle

	// Epsilon is the slack of the Delaunay test α + β <= π + Epsilon.
	Epsilon float64

	// MaxOperations caps flips plus splits per run; 0 selects
	// 64·NumEdges + 1024.
	MaxOperations int

	// Classes, when set, replaces the per-run classification and is
	// updated in place. Nil classifies the mesh afresh.
	Classes *EdgeClasses

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the defaults: no visitor, 10° feature threshold,
// 1° flatness tolerance, epsilon 1e-9, automatic operation budget.
func DefaultOptions() Options {
	return Options{
		Visitor:           NopVisitor{},
		DihedralThreshold: DefaultDihedralThreshold,
		FlatTolerance:     DefaultFlatTolerance,
		Epsilon:           DefaultEpsilon,
	}
}

// WithVisitor installs v; nil keeps the no-op visitor.
func WithVisitor(v Visitor) Option {
	return func(o *Options) {
		if v != nil {
			o.Visitor = v
		}
	}
}

// WithDihedralThreshold sets the FeaturePreserving threshold, in [0, π].
func WithDihedralThreshold(a s1.Angle) Option {
	return func(o *Options) {
		if a < 0 || a > s1.Angle(math.Pi) {
			o.err = errors.Wrapf(ErrOptionViolation, "dihedral threshold %v outside [0°, 180°]", a)
			return
		}
		o.DihedralThreshold = a
	}
}

// WithFlatTolerance sets the GeometryPreserving flatness tolerance, in [0, π].
func WithFlatTolerance(a s1.Angle) Option {
	return func(o *Options) {
		if a < 0 || a > s1.Angle(math.Pi) {
			o.err = errors.Wrapf(ErrOptionViolation, "flat tolerance %v outside [0°, 180°]", a)
			return
		}
		o.FlatTolerance = a
	}
}

// WithEpsilon sets the Delaunay test slack (>= 0).
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if !(eps >= 0) {
			o.err = errors.Wrapf(ErrOptionViolation, "epsilon %g", eps)
			return
		}
		o.Epsilon = eps
	}
}

// WithMaxOperations caps flips plus splits (>= 0; 0 means automatic).
func WithMaxOperations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = errors.Wrapf(ErrOptionViolation, "max operations %d", n)
			return
		}
		o.MaxOperations = n
	}
}

// WithEdgeClasses makes Remesh read and update c instead of classifying
// the mesh from its 3D dihedral angles; nil restores the default.
func WithEdgeClasses(c *EdgeClasses) Option {
	return func(o *Options) {
		o.Classes = c
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o, o.err
}
