// Package tisserand computes Tisserand-parameter curves.
//
// For a fixed Tisserand parameter T and inclination i, the characteristic
// equation
//
//	2·cos(i)·x³ − T·x² + (1 − e²) = 0
//
// is solved at every eccentricity e of a [Sweep]. Its two physically relevant
// roots x1 and x2 map to semi-major axes a = x²·a_p/(1 − e²) for a reference
// body with semi-major axis a_p.
//
//   - [Params]: immutable T and cos(i)
//   - [Sweep]: evenly spaced eccentricities in [0, eMax)
//   - [Solve]: the two Newton searches at one eccentricity
//   - [Generator]: per-body [CurvePair] over the whole sweep
//
// # Failure policy
//
// A root search that fails, or an eccentricity with 1 − e² = 0, yields a
// [Sample] marked Missing at the same index. Curves never abort and branch
// lengths always equal the sweep length.
//
// # Thread Safety
//
// All types are immutable after construction and safe for concurrent use.
package tisserand
