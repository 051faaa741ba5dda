package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravlens/internal/field"
	"github.com/san-kum/gravlens/internal/grid"
)

func cell(row, col int, mass float64) grid.Cell {
	return grid.Cell{Row: row, Col: col, Mass: mass}
}

func anomaly(row, col int, mass float64) grid.AnomalyCell {
	return grid.AnomalyCell{Cell: cell(row, col, mass), IsAnomaly: true, AnomalyIntensity: mass}
}

func plain(row, col int, mass float64) grid.AnomalyCell {
	return grid.AnomalyCell{Cell: cell(row, col, mass)}
}

func displacement(w grid.WarpedCell) float64 {
	return math.Hypot(w.Displacement())
}

// uniformGrid fills cols x rows with the given mass, column-major.
func uniformGrid(cols, rows int, mass float64) []grid.Cell {
	var cells []grid.Cell
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			cells = append(cells, cell(r, c, mass))
		}
	}
	return cells
}

var _ = Describe("GravityCenter", func() {
	It("returns the middle of a uniform grid", func() {
		p := field.GravityCenter(uniformGrid(4, 4, 1))
		Expect(p.X).To(BeNumerically("~", 1.5, 1e-9))
		Expect(p.Y).To(BeNumerically("~", 1.5, 1e-9))
	})

	It("returns the only heavy cell", func() {
		cells := uniformGrid(4, 4, 0)
		cells[6].Mass = 1
		p := field.GravityCenter(cells)
		Expect(p).To(Equal(grid.Point{X: float64(cells[6].Col), Y: float64(cells[6].Row)}))
	})

	It("falls back to the bounding box without mass", func() {
		p := field.GravityCenter(uniformGrid(2, 2, 0))
		Expect(p).To(Equal(grid.Point{X: 0.5, Y: 0.5}))
	})

	It("returns the origin for no cells", func() {
		Expect(field.GravityCenter(nil)).To(Equal(grid.Point{}))
	})
})

var _ = Describe("GravityPeaks", func() {
	It("picks heaviest first and keeps peaks apart", func() {
		cells := []grid.Cell{
			cell(0, 0, 0.9),
			cell(1, 1, 1.0),
			cell(0, 6, 0.8),
			cell(6, 6, 0.2),
		}
		peaks := field.GravityPeaks(cells, 3)
		Expect(peaks).To(Equal([]grid.Point{{X: 1, Y: 1}, {X: 6, Y: 0}, {X: 6, Y: 6}}))
	})

	It("returns nothing without mass", func() {
		Expect(field.GravityPeaks(uniformGrid(3, 3, 0), 2)).To(BeEmpty())
	})

	It("honours the limit", func() {
		cells := []grid.Cell{cell(0, 0, 1), cell(0, 10, 1), cell(0, 20, 1)}
		Expect(field.GravityPeaks(cells, 2)).To(HaveLen(2))
	})
})

var _ = Describe("FieldWarp", func() {
	geom := field.Geometry{CellSize: 12, CellGap: 3}

	It("does not move anything at zero progress", func() {
		for _, w := range field.FieldWarp(uniformGrid(5, 7, 0.6), 0, 0.5, geom) {
			Expect(displacement(w)).To(BeZero())
		}
	})

	It("clamps every displacement to maxWarp cell steps", func() {
		cells := uniformGrid(10, 7, 1)
		for _, w := range field.FieldWarp(cells, 1, 0.3, geom) {
			Expect(displacement(w)).To(BeNumerically("<=", 0.3*geom.Step()+1e-9))
		}
	})

	It("scales the clamped displacement by progress", func() {
		cells := uniformGrid(6, 7, 1)
		full := field.FieldWarp(cells, 1, 0.3, geom)
		half := field.FieldWarp(cells, 0.5, 0.3, geom)
		for i := range full {
			Expect(displacement(half[i])).To(BeNumerically("~", displacement(full[i])/2, 1e-9))
		}
	})

	It("leaves an all-zero grid at rest", func() {
		for _, w := range field.FieldWarp(uniformGrid(3, 7, 0), 1, 0.5, geom) {
			Expect(displacement(w)).To(BeZero())
		}
	})

	It("pushes neighbours away from a heavy cell", func() {
		cells := []grid.Cell{cell(3, 3, 1), cell(3, 4, 0)}
		out := field.FieldWarp(cells, 1, 0.5, geom)
		dx, dy := out[1].Displacement()
		Expect(dx).To(BeNumerically(">", 0))
		Expect(dy).To(BeNumerically("~", 0, 1e-12))
	})
})

var _ = Describe("WarpedPositions", func() {
	geom := field.Geometry{CellSize: 12, CellGap: 3}

	It("returns original positions at zero progress", func() {
		cells := []grid.Cell{cell(0, 0, 1), cell(3, 3, 1)}
		for _, w := range field.WarpedPositions(cells, []grid.Point{{X: 1.5, Y: 1.5}}, 0, 0.35, geom) {
			Expect(w.WarpedX).To(BeNumerically("~", w.OriginalX, 1e-9))
			Expect(w.WarpedY).To(BeNumerically("~", w.OriginalY, 1e-9))
		}
	})

	It("barely moves a cell sitting on the centre", func() {
		out := field.WarpedPositions([]grid.Cell{cell(2, 2, 0.5)}, []grid.Point{{X: 2, Y: 2}}, 1, 0.35, geom)
		dx, dy := out[0].Displacement()
		Expect(math.Abs(dx)).To(BeNumerically("<", 1))
		Expect(math.Abs(dy)).To(BeNumerically("<", 1))
	})

	It("moves far cells less than near cells", func() {
		cells := []grid.Cell{cell(0, 5, 0.5), cell(3, 4, 0.5)}
		out := field.WarpedPositions(cells, []grid.Point{{X: 3, Y: 3}}, 1, 0.35, geom)
		Expect(displacement(out[0])).To(BeNumerically("<", displacement(out[1])))
	})

	It("produces a visible warp on a realistic grid", func() {
		center := grid.Point{X: 5, Y: 3}
		out := field.WarpedPositions(uniformGrid(10, 7, 0.5), []grid.Point{center}, 1, 0.35, geom)

		checked := 0
		for _, w := range out {
			d := math.Hypot(float64(w.Col)-center.X, float64(w.Row)-center.Y)
			if d >= 2 && d <= 3 {
				checked++
				Expect(displacement(w)).To(BeNumerically(">", 3))
			}
		}
		Expect(checked).To(BeNumerically(">", 0))
	})

	It("sums contributions from several centres", func() {
		cells := []grid.Cell{cell(3, 5, 0.5)}
		one := field.WarpedPositions(cells, []grid.Point{{X: 3, Y: 3}}, 1, 0.35, geom)
		two := field.WarpedPositions(cells, []grid.Point{{X: 3, Y: 3}, {X: 3, Y: 3}}, 1, 0.35, geom)
		Expect(displacement(two[0])).To(BeNumerically("~", 2*displacement(one[0]), 1e-9))
	})
})

var _ = Describe("LocalLensWarp", func() {
	geom := field.Geometry{CellSize: 11, CellGap: 4}
	const radius = 60.0
	const maxWarp = 0.5

	It("returns nothing for no cells", func() {
		Expect(field.LocalLensWarp(nil, 1, radius, maxWarp, geom)).To(BeEmpty())
	})

	It("ignores sources beyond the radius", func() {
		cells := []grid.AnomalyCell{anomaly(0, 0, 1), plain(0, 20, 0.3)}
		out := field.LocalLensWarp(cells, 1, radius, maxWarp, geom)
		Expect(displacement(out[1])).To(BeZero())
	})

	It("moves a cell inside a single lens", func() {
		cells := []grid.AnomalyCell{anomaly(3, 3, 1), plain(3, 5, 0.3)}
		out := field.LocalLensWarp(cells, 1, radius, maxWarp, geom)
		Expect(displacement(out[1])).To(BeNumerically(">", 0))
	})

	It("never moves the anomaly sources", func() {
		cells := []grid.AnomalyCell{anomaly(3, 3, 1), anomaly(3, 4, 1), plain(3, 5, 0.3)}
		out := field.LocalLensWarp(cells, 1, radius, maxWarp, geom)
		Expect(displacement(out[0])).To(BeZero())
		Expect(displacement(out[1])).To(BeZero())
	})

	It("stays within maxWarp cell steps however many sources overlap", func() {
		var cells []grid.AnomalyCell
		for c := 0; c < 9; c++ {
			for r := 0; r < 7; r++ {
				if (r+c)%2 == 0 {
					cells = append(cells, anomaly(r, c, 1))
				} else {
					cells = append(cells, plain(r, c, 0.1))
				}
			}
		}
		for _, w := range field.LocalLensWarp(cells, 1, radius, maxWarp, geom) {
			Expect(displacement(w)).To(BeNumerically("<=", maxWarp*geom.Step()+1e-9))
		}
	})

	It("stretches the lens horizontally", func() {
		cells := []grid.AnomalyCell{anomaly(3, 3, 1), plain(3, 5, 0.3), plain(5, 3, 0.3)}
		out := field.LocalLensWarp(cells, 1, radius, 5, geom)
		Expect(displacement(out[1])).To(BeNumerically(">", displacement(out[2])))
	})

	It("does nothing with zero strength", func() {
		cells := []grid.AnomalyCell{anomaly(3, 3, 1), plain(3, 4, 0.3)}
		out := field.LocalLensWarp(cells, 1, radius, 0, geom)
		Expect(displacement(out[1])).To(BeZero())
	})
})

var _ = Describe("LocalLensWarpPerSource", func() {
	geom := field.Geometry{CellSize: 11, CellGap: 4}
	cells := []grid.AnomalyCell{
		anomaly(3, 2, 1),
		plain(3, 3, 0.3),
		plain(3, 4, 0.3),
		anomaly(3, 5, 0.8),
		plain(2, 4, 0.3),
	}

	It("matches the shared-progress lens when all sources agree", func() {
		for _, p := range []float64{0, 0.25, 0.6, 1} {
			shared := field.LocalLensWarp(cells, p, 60, 0.5, geom)
			per := field.LocalLensWarpPerSource(cells, map[int]float64{0: p, 3: p}, 60, 0.5, geom)
			for i := range shared {
				Expect(per[i].WarpedX).To(BeNumerically("~", shared[i].WarpedX, 1e-9))
				Expect(per[i].WarpedY).To(BeNumerically("~", shared[i].WarpedY, 1e-9))
			}
		}
	})

	It("treats a missing source as inactive", func() {
		only := field.LocalLensWarpPerSource(cells, map[int]float64{0: 1}, 60, 0.5, geom)
		solo := field.LocalLensWarp([]grid.AnomalyCell{cells[0], cells[1], cells[2], plain(3, 5, 0.8), cells[4]}, 1, 60, 0.5, geom)
		for i := range only {
			if i == 3 {
				continue
			}
			Expect(only[i].WarpedX).To(BeNumerically("~", solo[i].WarpedX, 1e-9))
			Expect(only[i].WarpedY).To(BeNumerically("~", solo[i].WarpedY, 1e-9))
		}
	})

	It("changes a neighbour continuously as a second source starts firing", func() {
		pair := []grid.AnomalyCell{
			anomaly(3, 0, 1),
			anomaly(3, 1, 1),
			plain(3, 2, 0.3),
		}
		at := func(w float64) float64 {
			out := field.LocalLensWarpPerSource(pair, map[int]float64{0: w, 1: 1}, 60, 0.3, geom)
			return displacement(out[2])
		}

		alone := at(0)
		Expect(alone).To(BeNumerically(">", 0))
		Expect(at(1e-9)).To(BeNumerically("~", alone, 1e-6))
		Expect(at(1e-3)).To(BeNumerically("~", alone, 1e-2))

		prev := alone
		for _, w := range []float64{1e-3, 0.1, 0.5, 1} {
			d := at(w)
			Expect(d).To(BeNumerically(">=", prev-1e-9))
			prev = d
		}
	})

	It("keeps the clamp with mixed progress", func() {
		out := field.LocalLensWarpPerSource(cells, map[int]float64{0: 1, 3: 0.1}, 60, 0.5, geom)
		for _, w := range out {
			Expect(displacement(w)).To(BeNumerically("<=", 0.5*geom.Step()+1e-9))
		}
	})
})

var _ = Describe("WarpIntensity", func() {
	geom := field.Geometry{CellSize: 11, CellGap: 4}

	It("normalizes to the largest displacement", func() {
		cells := []grid.AnomalyCell{anomaly(3, 3, 1), plain(3, 4, 0.3), plain(3, 6, 0.3), plain(3, 20, 0.3)}
		intensity := field.WarpIntensity(field.LocalLensWarp(cells, 1, 60, 0.5, geom))

		Expect(intensity).To(HaveLen(4))
		Expect(intensity[0]).To(BeZero())
		Expect(intensity[3]).To(BeZero())
		Expect(intensity).To(ContainElement(1.0))
		for _, v := range intensity {
			Expect(v).To(BeNumerically(">=", 0))
			Expect(v).To(BeNumerically("<=", 1))
		}
	})

	It("is all zero when nothing moved", func() {
		cells := []grid.AnomalyCell{plain(0, 0, 0.1), plain(0, 1, 0.1)}
		Expect(field.WarpIntensity(field.LocalLensWarp(cells, 1, 60, 0.5, geom))).To(Equal([]float64{0, 0}))
	})

	It("is empty for no cells", func() {
		Expect(field.WarpIntensity(nil)).To(BeEmpty())
	})
})
