// SPDX-License-Identifier: MIT

// Package linalg is the small linear-algebra kernel behind the Newton step
// of the curvature flow.
//
// What:
//
//   - Dense: row-major matrix with bounds-checked At/Set and MulVec.
//   - LU: deterministic Doolittle factorization (no pivoting) with a relative
//     zero-pivot guard that reports ErrSingular.
//   - Triplets/Sparse: coordinate builder compressed into immutable CSR, with
//     Reduce for pinning unknowns of singular Laplacians.
//   - ConjugateGradient: Jacobi-preconditioned CG for SPD systems; vector
//     kernels come from gonum/floats.
//   - Solve: dense LU for small systems, CG above DenseLimit.
//
// Errors:
//
//	All failures are sentinels from errors.go, wrapped with an operation tag;
//	match them with errors.Is.
package linalg
