package tisserand_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tisserand/internal/rootfind"
	"github.com/san-kum/tisserand/internal/tisserand"
)

var _ = Describe("Sweep", func() {
	It("is evenly spaced in [0, eMax)", func() {
		s, err := tisserand.NewSweep(0.6, 6000)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Len()).To(Equal(6000))
		Expect(s.At(0)).To(Equal(0.0))
		Expect(s.At(s.Len() - 1)).To(BeNumerically("<", 0.6))
		Expect(s.Step()).To(BeNumerically("~", 1e-4, 1e-15))

		for i := 1; i < s.Len(); i++ {
			Expect(s.At(i) - s.At(i-1)).To(BeNumerically("~", s.Step(), 1e-12))
		}

		lo, hi := s.Bounds()
		Expect(lo).To(Equal(0.0))
		Expect(hi).To(Equal(s.At(s.Len() - 1)))
	})

	It("supports a single sample", func() {
		s, err := tisserand.NewSweep(0.6, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Values()).To(Equal([]float64{0}))
	})

	It("returns a defensive copy of its values", func() {
		s, _ := tisserand.NewSweep(1, 4)
		v := s.Values()
		v[1] = 42
		Expect(s.At(1)).To(Equal(0.25))
	})

	DescribeTable("rejects invalid bounds",
		func(eMax float64, n int) {
			_, err := tisserand.NewSweep(eMax, n)
			Expect(err).To(MatchError(tisserand.ErrInvalidSweep))
		},
		Entry("zero samples", 0.6, 0),
		Entry("negative samples", 0.6, -5),
		Entry("zero eMax", 0.0, 10),
		Entry("negative eMax", -0.2, 10),
		Entry("NaN eMax", math.NaN(), 10),
		Entry("infinite eMax", math.Inf(1), 10),
	)
})

var _ = Describe("SemiMajorAxis", func() {
	It("scales x² by the body axis over 1-e²", func() {
		a, err := tisserand.SemiMajorAxis(1, 0, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(1.0))

		a, err = tisserand.SemiMajorAxis(2, 0.5, 5.203)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(BeNumerically("~", 4*5.203/0.75, 1e-12))
	})

	It("refuses e=1", func() {
		_, err := tisserand.SemiMajorAxis(1.5, 1, 1)
		Expect(err).To(MatchError(tisserand.ErrDegenerateEccentricity))
	})
})

var _ = Describe("Generator", func() {
	var (
		params tisserand.Params
		earth  = tisserand.ReferenceBody{Name: "Earth", Axis: 1.0}
	)

	BeforeEach(func() {
		var err error
		params, err = tisserand.NewParams(3, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("produces index-aligned branches as long as the sweep", func() {
		sweep, _ := tisserand.NewSweep(0.6, 600)
		gen, err := tisserand.NewGenerator(params, sweep)
		Expect(err).NotTo(HaveOccurred())

		c := gen.Curve(earth)
		Expect(c.Body).To(Equal(earth))
		Expect(c.Len()).To(Equal(sweep.Len()))
		Expect(c.Branch1).To(HaveLen(sweep.Len()))
		Expect(c.Branch2).To(HaveLen(sweep.Len()))
		Expect(c.Missing()).To(BeZero())

		for i := 0; i < sweep.Len(); i++ {
			Expect(c.Branch1[i].Eccentricity).To(Equal(sweep.At(i)))
			Expect(c.Branch2[i].Eccentricity).To(Equal(sweep.At(i)))
		}
	})

	It("maps the e=0 root x=1 to the body's own axis", func() {
		sweep, _ := tisserand.NewSweep(0.6, 6000)
		gen, _ := tisserand.NewGenerator(params, sweep)

		c := gen.Curve(earth)
		Expect(c.Branch1[0].Axis).To(BeNumerically("~", 1.0, 2e-3))
		Expect(c.Branch2[0].Axis).To(BeNumerically("~", 1.0, 2e-3))
	})

	It("places x1 inside and x2 outside the body's orbit", func() {
		sweep, _ := tisserand.NewSweep(0.6, 60)
		gen, _ := tisserand.NewGenerator(params, sweep)

		c := gen.Curve(tisserand.ReferenceBody{Name: "Jupiter", Axis: 5.203})
		for i := 1; i < c.Len(); i++ {
			Expect(c.Branch1[i].Axis).To(BeNumerically("<", 5.203))
			Expect(c.Branch2[i].Axis).To(BeNumerically(">", 5.203))
		}
	})

	It("gives identical output sequentially and in parallel", func() {
		sweep, _ := tisserand.NewSweep(0.6, 3000)
		seq, _ := tisserand.NewGenerator(params, sweep, tisserand.WithWorkers(1))
		par, _ := tisserand.NewGenerator(params, sweep, tisserand.WithWorkers(8))

		Expect(par.Curve(earth)).To(Equal(seq.Curve(earth)))
	})

	It("returns curves in table order and matching single-body runs", func() {
		sweep, _ := tisserand.NewSweep(0.6, 500)
		gen, _ := tisserand.NewGenerator(params, sweep)

		table := []tisserand.ReferenceBody{
			{Name: "Mercury", Axis: 0.387},
			{Name: "Earth", Axis: 1.0},
			{Name: "Saturn", Axis: 9.537},
		}
		all := gen.All(table)
		Expect(all).To(HaveLen(3))
		for i, c := range all {
			Expect(c.Body).To(Equal(table[i]))
			Expect(c).To(Equal(gen.Curve(table[i])))
		}
		Expect(gen.All(nil)).To(BeEmpty())
	})

	It("marks samples at e=1 missing instead of dividing by zero", func() {
		sweep, _ := tisserand.NewSweep(2, 2)
		Expect(sweep.Values()).To(Equal([]float64{0, 1}))

		gen, _ := tisserand.NewGenerator(params, sweep)
		c := gen.Curve(earth)

		Expect(c.Len()).To(Equal(2))
		Expect(c.Branch1[0].Missing).To(BeFalse())
		for _, b := range []tisserand.Branch{tisserand.X1, tisserand.X2} {
			s := c.Branch(b)[1]
			Expect(s.Missing).To(BeTrue())
			Expect(s.Err).To(MatchError(tisserand.ErrDegenerateEccentricity))
			Expect(math.IsInf(s.Axis, 0) || math.IsNaN(s.Axis)).To(BeFalse())
		}
	})

	It("keeps going when every root search fails", func() {
		flat := tisserand.Params{Tisserand: 0, CosInclination: 0}
		sweep, _ := tisserand.NewSweep(0.6, 10)
		gen, err := tisserand.NewGenerator(flat, sweep)
		Expect(err).NotTo(HaveOccurred())

		all := gen.All([]tisserand.ReferenceBody{earth, {Name: "Mars", Axis: 1.524}})
		Expect(all).To(HaveLen(2))
		for _, c := range all {
			Expect(c.Len()).To(Equal(10))
			Expect(c.Missing()).To(Equal(20))
			Expect(errors.Is(c.Branch1[3].Err, rootfind.ErrDerivativeZero)).To(BeTrue())
			Expect(c.Branch2[3].Err.Error()).To(HavePrefix("x2: "))
		}
	})

	It("draws coincident branches with no gaps for a retrograde orbit", func() {
		retro, err := tisserand.NewParams(3, 180)
		Expect(err).NotTo(HaveOccurred())
		sweep, _ := tisserand.NewSweep(0.6, 300)
		gen, err := tisserand.NewGenerator(retro, sweep)
		Expect(err).NotTo(HaveOccurred())

		c := gen.Curve(earth)
		Expect(c.Missing()).To(BeZero())
		for i := 0; i < c.Len(); i++ {
			Expect(c.Branch1[i].Axis).To(BeNumerically("~", c.Branch2[i].Axis, 1e-4))
			Expect(c.Branch1[i].Axis).To(BeNumerically("<", earth.Axis))
		}
	})

	It("rejects invalid construction", func() {
		sweep, _ := tisserand.NewSweep(0.6, 10)

		_, err := tisserand.NewGenerator(tisserand.Params{Tisserand: 3, CosInclination: 2}, sweep)
		Expect(err).To(MatchError(tisserand.ErrInvalidParams))

		_, err = tisserand.NewGenerator(params, tisserand.Sweep{})
		Expect(err).To(MatchError(tisserand.ErrInvalidSweep))

		_, err = tisserand.NewGenerator(params, sweep, tisserand.WithRootOptions(rootfind.Options{Tolerance: -1}))
		Expect(err).To(MatchError(rootfind.ErrInvalidOptions))
	})
})

var _ = Describe("Samples", func() {
	missing := tisserand.Sample{Missing: true, Err: errors.New("boom")}
	s := tisserand.Samples{
		{Eccentricity: 0, Axis: 1},
		{Eccentricity: 0.1, Axis: 1.1},
		missing,
		{Eccentricity: 0.3, Axis: 1.3},
		missing,
		missing,
		{Eccentricity: 0.6, Axis: 1.6},
	}

	It("counts missing samples", func() {
		Expect(s.Missing()).To(Equal(3))
	})

	It("fills missing axes with the caller's marker", func() {
		axes := s.Axes(math.NaN())
		Expect(axes).To(HaveLen(len(s)))
		Expect(axes[1]).To(Equal(1.1))
		Expect(math.IsNaN(axes[2])).To(BeTrue())
	})

	It("splits into runs of present samples", func() {
		segs := s.Segments()
		Expect(segs).To(HaveLen(3))
		Expect(segs[0]).To(HaveLen(2))
		Expect(segs[1]).To(HaveLen(1))
		Expect(segs[2]).To(HaveLen(1))
		Expect(segs[2][0].Axis).To(Equal(1.6))
	})

	It("has no segments when everything is missing", func() {
		Expect(tisserand.Samples{missing, missing}.Segments()).To(BeEmpty())
	})
})
