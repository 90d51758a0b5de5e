// Package rootfind implements the scalar Newton-Raphson iteration used to
// solve the Tisserand characteristic equation.
//
// A search either returns a root whose residual is below the tolerance or a
// [*ConvergenceError] tagged with a [Reason]. It never returns an unconverged
// iterate and never lets a NaN or Inf escape as a result.
//
// # Example
//
//	f := func(x float64) float64 { return x*x - 2 }
//	df := func(x float64) float64 { return 2 * x }
//	root, err := rootfind.Newton(f, df, 1, rootfind.DefaultOptions())
package rootfind
