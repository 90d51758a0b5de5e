package tisserand_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tisserand/internal/rootfind"
	"github.com/san-kum/tisserand/internal/tisserand"
)

var _ = Describe("Params", func() {
	It("derives cos(i) from degrees", func() {
		p, err := tisserand.NewParams(3, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Tisserand).To(Equal(3.0))
		Expect(p.CosInclination).To(BeNumerically("~", 1, 1e-15))

		p, err = tisserand.NewParams(3, 60)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.CosInclination).To(BeNumerically("~", 0.5, 1e-12))

		p, err = tisserand.NewParams(3, 180)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.CosInclination).To(BeNumerically("~", -1, 1e-12))
	})

	It("rejects non-finite values", func() {
		_, err := tisserand.NewParams(math.NaN(), 0)
		Expect(err).To(MatchError(tisserand.ErrInvalidParams))

		_, err = tisserand.NewParams(3, math.Inf(1))
		Expect(err).To(MatchError(tisserand.ErrInvalidParams))
	})

	It("rejects cos(i) outside [-1, 1]", func() {
		err := tisserand.Params{Tisserand: 3, CosInclination: 1.5}.Validate()
		Expect(err).To(MatchError(tisserand.ErrInvalidParams))
	})
})

var _ = Describe("Equation", func() {
	p := tisserand.Params{Tisserand: 3, CosInclination: 1}

	It("reduces to (x-1)²(2x+1) at e=0", func() {
		q := tisserand.NewEquation(p, 0)
		for _, x := range []float64{-2, -0.5, 0, 0.3, 1, 2.5} {
			Expect(q.Value(x)).To(BeNumerically("~", (x-1)*(x-1)*(2*x+1), 1e-12))
		}
	})

	It("has a derivative matching a central difference", func() {
		q := tisserand.NewEquation(p, 0.4)
		const h = 1e-6
		for _, x := range []float64{0.2, 0.6, 1.3, 2} {
			numeric := (q.Value(x+h) - q.Value(x-h)) / (2 * h)
			Expect(q.Derivative(x)).To(BeNumerically("~", numeric, 1e-6))
		}
	})
})

var _ = Describe("Solve", func() {
	p := tisserand.Params{Tisserand: 3, CosInclination: 1}

	It("converges to the double root x=1 from both guesses at e=0", func() {
		roots, err := tisserand.Solve(p, 0, rootfind.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(roots.X1).To(BeNumerically("~", 1, 1e-3))
		Expect(roots.X2).To(BeNumerically("~", 1, 1e-3))

		q := tisserand.NewEquation(p, 0)
		Expect(math.Abs(q.Value(roots.X1))).To(BeNumerically("<", 1e-6))
		Expect(math.Abs(q.Value(roots.X2))).To(BeNumerically("<", 1e-6))
	})

	It("separates the inner and outer roots as e grows", func() {
		roots, err := tisserand.Solve(p, 0.5, rootfind.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(roots.X1).To(BeNumerically("~", 0.6736482, 1e-6))
		Expect(roots.X2).To(BeNumerically("~", 1.2660444, 1e-6))
		Expect(roots.Root(tisserand.X1)).To(Equal(roots.X1))
		Expect(roots.Root(tisserand.X2)).To(Equal(roots.X2))
	})

	It("reports a single failed branch and keeps the converged one", func() {
		_, err := tisserand.Solve(p, 0.5, rootfind.Options{MaxIterations: 4})
		Expect(err).To(HaveOccurred())

		var pf *tisserand.PartialFailure
		Expect(errors.As(err, &pf)).To(BeTrue())
		Expect(pf.Eccentricity).To(Equal(0.5))
		Expect(pf.Failed(tisserand.X1)).To(BeFalse())
		Expect(pf.Failed(tisserand.X2)).To(BeTrue())
		Expect(pf.Roots.X1).To(BeNumerically("~", 0.6736482, 1e-6))
		Expect(err).To(MatchError(rootfind.ErrMaxIterations))
		Expect(err.Error()).To(ContainSubstring("x2"))
	})

	It("tags a vanishing derivative on both branches", func() {
		flat := tisserand.Params{Tisserand: 0, CosInclination: 0}
		_, err := tisserand.Solve(flat, 0.2, rootfind.DefaultOptions())

		var pf *tisserand.PartialFailure
		Expect(errors.As(err, &pf)).To(BeTrue())
		Expect(pf.Failures).To(HaveLen(2))
		Expect(pf.Cause(tisserand.X1)).To(MatchError(rootfind.ErrDerivativeZero))
		Expect(pf.Cause(tisserand.X2)).To(MatchError(rootfind.ErrDerivativeZero))
	})

	It("keeps both roots continuous in e away from the double root", func() {
		sweep, err := tisserand.NewSweep(0.6, 6000)
		Expect(err).NotTo(HaveOccurred())

		var prev tisserand.RootPair
		for i := 0; i < sweep.Len(); i++ {
			e := sweep.At(i)
			roots, err := tisserand.Solve(p, e, rootfind.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			if e > 0.05 {
				Expect(math.Abs(roots.X1 - prev.X1)).To(BeNumerically("<", 10*sweep.Step()))
				Expect(math.Abs(roots.X2 - prev.X2)).To(BeNumerically("<", 10*sweep.Step()))
			}
			prev = roots
		}
	})
})

var _ = Describe("Solve with cos(i) ≤ 0", func() {
	DescribeTable("collapses both branches onto the single positive root",
		func(inclination, atZero float64) {
			p, err := tisserand.NewParams(3, inclination)
			Expect(err).NotTo(HaveOccurred())

			roots, err := tisserand.Solve(p, 0, rootfind.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(roots.Coincident(1e-5)).To(BeTrue())
			Expect(roots.X1).To(BeNumerically("~", atZero, 1e-5))

			for _, e := range []float64{0.1, 0.3, 0.59} {
				roots, err := tisserand.Solve(p, e, rootfind.DefaultOptions())
				Expect(err).NotTo(HaveOccurred())
				Expect(roots.Coincident(1e-5)).To(BeTrue(), "e=%v roots=%+v", e, roots)
				Expect(roots.X1).To(BeNumerically(">", 0))
				Expect(roots.X1).To(BeNumerically("<", atZero))
			}
		},
		Entry("polar", 90.0, math.Sqrt(1.0/3)),
		Entry("retrograde", 180.0, 0.5),
	)

	It("still separates the roots for prograde orbits", func() {
		p, err := tisserand.NewParams(3, 20)
		Expect(err).NotTo(HaveOccurred())
		roots, err := tisserand.Solve(p, 0.3, rootfind.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(roots.Coincident(1e-3)).To(BeFalse())
	})
})

var _ = Describe("Branch", func() {
	It("maps to its starting guess", func() {
		Expect(tisserand.X1.Guess()).To(Equal(tisserand.InnerGuess))
		Expect(tisserand.X2.Guess()).To(Equal(tisserand.OuterGuess))
		Expect(tisserand.X1.String()).To(Equal("x1"))
		Expect(tisserand.X2.String()).To(Equal("x2"))
	})
})
