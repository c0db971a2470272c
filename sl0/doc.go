// Package sl0 implements the Smoothed-L0 sparse recovery algorithm.
//
// Given an underdetermined system A s = y (A is M by N with N > M) the solver
// returns an approximation of the sparsest s satisfying the constraint. The L0
// count is replaced by the smooth surrogate
//
//	F_σ(s) = Σ_i exp(-s_i² / σ²)
//
// which is maximized by steepest ascent while projecting back onto the
// feasible set {s : A s = y} after every step. σ follows a geometric schedule
// σ_0 = 2 max|s_0|, σ_{k+1} = σ_k * SigmaDecreaseFactor that stops as soon as
// σ_k <= SigmaMin, each stage warm started from the previous one.
//
// The number of outer iterations is fixed by the schedule, see IterationBound.
// There is no convergence test and no retry.
//
// Reference: H. Mohimani, M. Babaie-Zadeh, C. Jutten, "A fast approach for
// overcomplete sparse decomposition based on smoothed L0 norm", IEEE Trans.
// Signal Processing, 2009.
package sl0
