// SPDX-License-Identifier: MIT

package embed

import "github.com/pkg/errors"

var (
	// ErrInconsistentMetric is returned when a face's lengths violate the
	// strict triangle inequality, so it has no planar layout.
	ErrInconsistentMetric = errors.New("embed: inconsistent metric")

	// ErrOptionViolation is returned for an out-of-range seed face.
	ErrOptionViolation = errors.New("embed: invalid option")
)
