package tisserand

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/tisserand/internal/rootfind"
)

// degenerateEpsilon is the |1 − e²| below which no semi-major axis exists.
const degenerateEpsilon = 1e-12

// minChunk keeps tiny sweeps on a single goroutine.
const minChunk = 256

// SemiMajorAxis converts a characteristic root into a semi-major axis:
// a = x²·bodyAxis / (1 − e²).
func SemiMajorAxis(x, e, bodyAxis float64) (float64, error) {
	denom := 1 - e*e
	if math.Abs(denom) < degenerateEpsilon {
		return 0, fmt.Errorf("%w: e=%g", ErrDegenerateEccentricity, e)
	}
	return x * x * bodyAxis / denom, nil
}

// Sample is one point of a branch. Missing samples carry the cause in Err
// and must not be drawn.
type Sample struct {
	Eccentricity float64
	Axis         float64
	Missing      bool
	Err          error
}

// Samples is a branch, index-aligned with the sweep it was computed on.
type Samples []Sample

// Missing counts samples without a value.
func (s Samples) Missing() int {
	n := 0
	for _, p := range s {
		if p.Missing {
			n++
		}
	}
	return n
}

// Axes returns the semi-major axes with missing samples replaced by fill.
func (s Samples) Axes(fill float64) []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		if p.Missing {
			out[i] = fill
			continue
		}
		out[i] = p.Axis
	}
	return out
}

// Segments splits the branch into maximal runs of present samples.
func (s Samples) Segments() []Samples {
	var segs []Samples
	start := -1
	for i, p := range s {
		switch {
		case !p.Missing && start < 0:
			start = i
		case p.Missing && start >= 0:
			segs = append(segs, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		segs = append(segs, s[start:])
	}
	return segs
}

// CurvePair is the x1 and x2 branches for one reference body.
type CurvePair struct {
	Body    ReferenceBody
	Branch1 Samples
	Branch2 Samples
}

func (c CurvePair) Len() int { return len(c.Branch1) }

// Branch returns the samples for b.
func (c CurvePair) Branch(b Branch) Samples {
	if b == X2 {
		return c.Branch2
	}
	return c.Branch1
}

// Missing counts missing samples across both branches.
func (c CurvePair) Missing() int {
	return c.Branch1.Missing() + c.Branch2.Missing()
}

// Option configures a Generator.
type Option func(*Generator)

// WithRootOptions overrides the Newton tolerance and iteration budget.
func WithRootOptions(opts rootfind.Options) Option {
	return func(g *Generator) { g.opts = opts }
}

// WithWorkers bounds sweep parallelism. Zero uses GOMAXPROCS, one runs
// sequentially. Output does not depend on the setting.
func WithWorkers(n int) Option {
	return func(g *Generator) { g.workers = n }
}

// Generator computes curves for a fixed Params and Sweep.
type Generator struct {
	params  Params
	sweep   Sweep
	opts    rootfind.Options
	workers int
}

func NewGenerator(p Params, s Sweep, options ...Option) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSweep)
	}

	g := &Generator{params: p, sweep: s, opts: rootfind.DefaultOptions()}
	for _, o := range options {
		o(g)
	}
	if err := g.opts.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) Params() Params { return g.params }

func (g *Generator) Sweep() Sweep { return g.sweep }

// solution is the outcome of Solve at one sweep index.
type solution struct {
	roots RootPair
	err   *PartialFailure
}

// asPartialFailure attributes an error that does not name its branches to
// both of them.
func asPartialFailure(e float64, err error) *PartialFailure {
	var pf *PartialFailure
	if errors.As(err, &pf) {
		return pf
	}
	return &PartialFailure{Eccentricity: e, Failures: []BranchFailure{
		{Branch: X1, Err: err},
		{Branch: X2, Err: err},
	}}
}

func (g *Generator) solve() []solution {
	out := make([]solution, g.sweep.Len())
	parallelFor(len(out), g.workers, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			roots, err := Solve(g.params, g.sweep.At(i), g.opts)
			if err != nil {
				pf := asPartialFailure(g.sweep.At(i), err)
				out[i] = solution{roots: pf.Roots, err: pf}
				continue
			}
			out[i] = solution{roots: roots}
		}
	})
	return out
}

func (g *Generator) curve(body ReferenceBody, sols []solution) CurvePair {
	c := CurvePair{
		Body:    body,
		Branch1: make(Samples, len(sols)),
		Branch2: make(Samples, len(sols)),
	}
	for i, sol := range sols {
		e := g.sweep.At(i)
		c.Branch1[i] = sample(X1, e, body.Axis, sol)
		c.Branch2[i] = sample(X2, e, body.Axis, sol)
	}
	return c
}

func sample(b Branch, e, bodyAxis float64, sol solution) Sample {
	s := Sample{Eccentricity: e}
	if sol.err != nil {
		if cause := sol.err.Cause(b); cause != nil {
			s.Missing = true
			s.Err = fmt.Errorf("%v: %w", b, cause)
			return s
		}
	}
	a, err := SemiMajorAxis(sol.roots.Root(b), e, bodyAxis)
	if err != nil {
		s.Missing = true
		s.Err = err
		return s
	}
	s.Axis = a
	return s
}

// Curve computes both branches for one body. Branch i corresponds to
// sweep.At(i) for every i.
func (g *Generator) Curve(body ReferenceBody) CurvePair {
	return g.curve(body, g.solve())
}

// All computes curves for every body in table order. The characteristic
// roots depend only on e, so they are solved once and scaled per body.
func (g *Generator) All(bodies []ReferenceBody) []CurvePair {
	if len(bodies) == 0 {
		return nil
	}
	sols := g.solve()
	out := make([]CurvePair, len(bodies))
	for i, b := range bodies {
		out[i] = g.curve(b, sols)
	}
	return out
}
