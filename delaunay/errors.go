// SPDX-License-Identifier: MIT

package delaunay

import "github.com/pkg/errors"

var (
	// ErrNonManifold is returned when a mesh mutator reports corruption while
	// remeshing. Legality failures are never fatal; this one always is.
	ErrNonManifold = errors.New("delaunay: mesh became non-manifold")

	// ErrOperationBudget is returned when more flips and splits than
	// Options.MaxOperations were needed.
	ErrOperationBudget = errors.New("delaunay: operation budget exhausted")

	// ErrOptionViolation is returned when an Option receives an invalid value.
	ErrOptionViolation = errors.New("delaunay: invalid option")

	// ErrUnknownScheme is returned for a Scheme outside the declared set.
	ErrUnknownScheme = errors.New("delaunay: unknown remesh scheme")
)
