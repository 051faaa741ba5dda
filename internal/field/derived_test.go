package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravlens/internal/field"
	"github.com/san-kum/gravlens/internal/grid"
)

var _ = Describe("Interference", func() {
	geom := field.Geometry{CellSize: 11, CellGap: 4}

	It("is zero under a single lens", func() {
		cells := []grid.AnomalyCell{anomaly(3, 3, 1), plain(3, 4, 0.3)}
		Expect(field.Interference(cells, 60, geom)).To(Equal([]float64{0, 0}))
	})

	It("is positive between two lenses", func() {
		cells := []grid.AnomalyCell{anomaly(3, 2, 1), plain(3, 4, 0.3), anomaly(3, 6, 1)}
		levels := field.Interference(cells, 60, geom)
		Expect(levels[0]).To(BeZero())
		Expect(levels[2]).To(BeZero())
		// both sources 30px away: 1 - 30/60
		Expect(levels[1]).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("stays within [0,1]", func() {
		var cells []grid.AnomalyCell
		for c := 0; c < 8; c++ {
			for r := 0; r < 7; r++ {
				if c%3 == 0 {
					cells = append(cells, anomaly(r, c, 1))
				} else {
					cells = append(cells, plain(r, c, 0.2))
				}
			}
		}
		for _, v := range field.Interference(cells, 60, geom) {
			Expect(v).To(BeNumerically(">=", 0))
			Expect(v).To(BeNumerically("<=", 1))
		}
	})

	It("is zero for a non-positive radius", func() {
		cells := []grid.AnomalyCell{anomaly(3, 2, 1), plain(3, 4, 0.3), anomaly(3, 6, 1)}
		Expect(field.Interference(cells, 0, geom)).To(Equal([]float64{0, 0, 0}))
	})
})

var _ = Describe("InZone", func() {
	geom := field.Geometry{CellSize: 11, CellGap: 4}

	It("marks sources and their neighbourhood", func() {
		cells := []grid.AnomalyCell{anomaly(0, 0, 1), plain(0, 2, 0.1), plain(0, 30, 0.1)}
		Expect(field.InZone(cells, 60, geom)).To(Equal([]bool{true, true, false}))
	})

	It("is empty of zones without anomalies", func() {
		cells := []grid.AnomalyCell{plain(0, 0, 1), plain(0, 1, 1)}
		Expect(field.InZone(cells, 60, geom)).To(Equal([]bool{false, false}))
	})
})

var _ = Describe("ActivationDelays", func() {
	It("staggers anomalies by column", func() {
		cells := []grid.AnomalyCell{anomaly(0, 0, 1), plain(0, 10, 1), anomaly(0, 25, 1), anomaly(0, 50, 1)}
		Expect(field.ActivationDelays(cells, 6)).To(Equal([]float64{0, 0, 3, 6}))
	})

	It("is zero without anomalies", func() {
		cells := []grid.AnomalyCell{plain(0, 4, 1), plain(0, 9, 1)}
		Expect(field.ActivationDelays(cells, 6)).To(Equal([]float64{0, 0}))
	})

	It("gives a lone anomaly right of column zero the full delay", func() {
		cells := []grid.AnomalyCell{plain(0, 0, 1), anomaly(0, 7, 1)}
		Expect(field.ActivationDelays(cells, 6)).To(Equal([]float64{0, 6}))
	})

	It("gives a lone anomaly in column zero no delay", func() {
		cells := []grid.AnomalyCell{anomaly(2, 0, 1)}
		Expect(field.ActivationDelays(cells, 6)).To(Equal([]float64{0}))
	})
})

var _ = Describe("CellRotation", func() {
	It("is stable and within one to two degrees", func() {
		negative, positive := 0, 0
		for r := 0; r < 7; r++ {
			for c := 0; c < 53; c++ {
				rot := field.CellRotation(r, c)
				Expect(field.CellRotation(r, c)).To(Equal(rot))
				Expect(math.Abs(rot)).To(BeNumerically(">=", 1))
				Expect(math.Abs(rot)).To(BeNumerically("<=", 2))
				if rot < 0 {
					negative++
				} else {
					positive++
				}
			}
		}
		Expect(negative).To(BeNumerically(">", 0))
		Expect(positive).To(BeNumerically(">", 0))
	})
})

var _ = Describe("InterferenceJitter", func() {
	It("is zero when progress or level is zero", func() {
		Expect(field.InterferenceJitter(2, 3, 0, 1, field.DefaultMaxJitter)).To(Equal(grid.Point{}))
		Expect(field.InterferenceJitter(2, 3, 1, 0, field.DefaultMaxJitter)).To(Equal(grid.Point{}))
	})

	It("is bounded by maxJitter times progress times level", func() {
		for r := 0; r < 7; r++ {
			for c := 0; c < 20; c++ {
				j := field.InterferenceJitter(r, c, 0.7, 0.5, field.DefaultMaxJitter)
				Expect(math.Hypot(j.X, j.Y)).To(BeNumerically("<=", field.DefaultMaxJitter*0.7*0.5+1e-12))
			}
		}
	})

	It("is deterministic", func() {
		a := field.InterferenceJitter(4, 11, 0.9, 0.6, field.DefaultMaxJitter)
		b := field.InterferenceJitter(4, 11, 0.9, 0.6, field.DefaultMaxJitter)
		Expect(a).To(Equal(b))
	})
})
