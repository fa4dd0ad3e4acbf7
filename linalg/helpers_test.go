// SPDX-License-Identifier: MIT

package linalg_test

import "math"

func nan() float64 { return math.NaN() }
