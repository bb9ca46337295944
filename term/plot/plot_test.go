/*
Copyright 2020 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package plot_test

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/chartkit/term/plot"
)

// brailleLines renders a grid into lines of braille characters.
func brailleLines(grid *plot.DotGrid) []string {
	var lines []string
	var sb strings.Builder
	lastRow := plot.Row(0)
	plot.DrawBraille(grid, func(row plot.Row, col plot.Column, cell rune, id plot.SeriesId) {
		if row != lastRow {
			lines = append(lines, sb.String())
			sb.Reset()
			lastRow = row
		}
		sb.WriteRune(cell)
	})
	return append(lines, sb.String())
}

var _ = Describe("The braille dot grid", func() {
	var grid *plot.DotGrid

	BeforeEach(func() {
		grid = plot.NewDotGrid(plot.BrailleCellScreenSize(plot.ScreenSize{Rows: 1, Cols: 2}), plot.BrailleCellMapper)
	})

	It("should be four dots high and two wide per cell", func() {
		Expect(grid.ScreenSize).To(Equal(plot.ScreenSize{Rows: 4, Cols: 4}))
		Expect(grid.Cells).To(HaveLen(16))
	})

	It("should put row zero at the bottom", func() {
		grid.Point(plot.PixelPoint{Row: 0, Col: 0}, 1)
		grid.Point(plot.PixelPoint{Row: 3, Col: 3}, 1)
		Expect(brailleLines(grid)).To(Equal([]string{"⡀⠈"}))
	})

	It("should draw lines in any direction", func() {
		grid.Line(plot.PixelPoint{Row: 3, Col: 0}, plot.PixelPoint{Row: 3, Col: 3}, 1)
		Expect(brailleLines(grid)).To(Equal([]string{"⠉⠉"}))

		grid = plot.NewDotGrid(plot.ScreenSize{Rows: 4, Cols: 4}, plot.BrailleCellMapper)
		grid.Line(plot.PixelPoint{Row: 3, Col: 1}, plot.PixelPoint{Row: 0, Col: 1}, 1)
		Expect(brailleLines(grid)).To(Equal([]string{"⢸ "}))
	})

	It("should reach the end of steep and shallow lines", func() {
		big := plot.NewDotGrid(plot.ScreenSize{Rows: 40, Cols: 40}, plot.BrailleCellMapper)
		for _, to := range []plot.PixelPoint{{Row: 39, Col: 3}, {Row: 2, Col: 39}, {Row: 0, Col: 0}, {Row: 17, Col: 17}} {
			big.Line(plot.PixelPoint{Row: 20, Col: 20}, to, 1)
			idx := plot.BrailleCellMapper(to.Row, to.Col, big.ScreenSize)
			Expect(big.Cells[idx].Series).To(Equal(plot.SeriesId(1)))
		}
	})

	It("should ignore dots off the grid", func() {
		grid.Point(plot.PixelPoint{Row: -1, Col: 0}, 1)
		grid.Line(plot.PixelPoint{Row: 1, Col: -5}, plot.PixelPoint{Row: 1, Col: 1}, 1)
		Expect(brailleLines(grid)).To(Equal([]string{"⠤ "}))
	})

	It("should color a cell by the series with a point in it", func() {
		grid.Line(plot.PixelPoint{Row: 0, Col: 0}, plot.PixelPoint{Row: 0, Col: 1}, 2)
		grid.Point(plot.PixelPoint{Row: 1, Col: 0}, 3)
		var ids []plot.SeriesId
		plot.DrawBraille(grid, func(_ plot.Row, _ plot.Column, _ rune, id plot.SeriesId) {
			ids = append(ids, id)
		})
		Expect(ids).To(Equal([]plot.SeriesId{3, plot.NoSeries}))
		idx := plot.BrailleCellMapper(0, 0, grid.ScreenSize)
		Expect(grid.Cells[idx].Series).To(Equal(plot.SeriesId(2)))
	})

	It("should map fractions onto the nearest dot", func() {
		Expect(grid.FractionToDot(0, 0)).To(Equal(plot.PixelPoint{}))
		Expect(grid.FractionToDot(1, 0.5)).To(Equal(plot.PixelPoint{Row: 2, Col: 3}))
	})
})
