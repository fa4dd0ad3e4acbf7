// SPDX-License-Identifier: MIT

package metric

import "github.com/pkg/errors"

// ErrInvalidMetric is returned when a length or radius is non-positive or
// non-finite, or when a face violates the strict triangle inequality.
// Every mutator that returns it leaves the store unchanged.
var ErrInvalidMetric = errors.New("metric: invalid metric")
