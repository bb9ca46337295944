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

package term_test

import (
	"strings"

	"github.com/gdamore/tcell"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/term"
	"sigs.k8s.io/chartkit/term/plot"
)

func flushToScreen(contents term.Flushable, cols, rows int) tcell.SimulationScreen {
	screen := tcell.NewSimulationScreen("")
	Expect(screen.Init()).To(Succeed())
	screen.SetSize(cols, rows)
	contents.FlushTo(screen)
	screen.Show()
	return screen
}

func isBraille(r rune) bool {
	return r > '⠀' && r <= '⣿'
}

var _ = Describe("The chart view widget", func() {
	var (
		canvas *chart.Canvas
		graph  *chart.Graph
	)
	BeforeEach(func() {
		canvas = chart.NewCanvas()
		graph = chart.NewGraph("main")
		zero, ten := 0.0, 10.0
		for _, name := range []string{"x1", "y1"} {
			ax := graph.Axis(name)
			ax.SetHardRange(&zero, &ten)
			ax.TargetMajorTickCount = 3
		}
		graph.AddDataSet(chart.NewDataSet("diagonal", chart.Lines, [][]float64{{0, 0}, {10, 10}}))
		Expect(canvas.Add(graph)).To(Succeed())
	})

	Context("when dealing with size & content corner cases", func() {
		It("should skip rendering if given zero columns", func() {
			view := &term.ChartView{Canvas: canvas, Graph: "main"}
			view.SetBox(term.PositionBox{Rows: 1, Cols: 0})
			Expect(view).To(DisplayLike(1, 10, ""))
		})

		It("should skip rendering if given zero rows", func() {
			view := &term.ChartView{Canvas: canvas, Graph: "main"}
			view.SetBox(term.PositionBox{Rows: 0, Cols: 100})
			Expect(view).To(DisplayLike(1, 10, ""))
		})

		It("should skip drawing without a canvas", func() {
			view := &term.ChartView{}
			view.SetBox(term.PositionBox{Rows: 10, Cols: 10})
			Expect(view).To(DisplayLike(10, 10, ""))
		})

		It("should skip drawing a graph the canvas doesn't have", func() {
			view := &term.ChartView{Canvas: canvas, Graph: "other"}
			view.SetBox(term.PositionBox{Rows: 10, Cols: 10})
			Expect(view).To(DisplayLike(10, 10, ""))
		})

		It("should skip drawing if there's no room inside the margins", func() {
			view := &term.ChartView{Canvas: canvas, Graph: "main"}
			view.SetBox(term.PositionBox{Rows: 2, Cols: 10})
			Expect(view).To(DisplayLike(10, 2, ""))
		})
	})

	Context("when drawing a 2D graph", func() {
		var rows []string
		var screen tcell.SimulationScreen

		BeforeEach(func() {
			view := &term.ChartView{Canvas: canvas, Graph: "main"}
			view.SetBox(term.PositionBox{Rows: 10, Cols: 20})
			screen = flushToScreen(view, 20, 10)
			rows = screenRows(screen)
		})

		It("should prepare the canvas first", func() {
			Expect(canvas.Dirty()).To(BeFalse())
		})

		It("should label the y axis ticks in the left margin", func() {
			Expect(rows[0]).To(HavePrefix("10┨"))
			Expect(rows[3]).To(HavePrefix(" 5┨"))
			Expect(rows[7]).To(HavePrefix(" 0┨"))
		})

		It("should draw the x axis under the plot, with labels below it", func() {
			Expect(rows[8]).To(HavePrefix("  ┗┯━"))
			Expect(strings.TrimSpace(rows[9])).To(HavePrefix("0"))
			Expect(rows[9]).To(ContainSubstring("5"))
			Expect(rows[9]).To(HaveSuffix("10"))
		})

		It("should draw the data from corner to corner in the series color", func() {
			bottomLeft, _, sty, _ := screen.GetContent(3, 7)
			Expect(isBraille(bottomLeft)).To(BeTrue(), "expected a braille dot, got %q", bottomLeft)
			Expect(sty).To(Equal(tcell.StyleDefault.Foreground(term.SeriesColor(1))))

			topRight, _, _, _ := screen.GetContent(19, 0)
			Expect(isBraille(topRight)).To(BeTrue(), "expected a braille dot, got %q", topRight)

			// the diagonal never reaches the opposite corners
			topLeft, _, _, _ := screen.GetContent(3, 0)
			Expect(topLeft).To(Equal(' '))
		})
	})

	It("should not draw points that lie outside a clipped axis", func() {
		graph.DataSets = nil
		graph.AddDataSet(chart.NewDataSet("outside", chart.Points, [][]float64{{5, 50}}))

		view := &term.ChartView{Canvas: canvas, Graph: "main"}
		view.SetBox(term.PositionBox{Rows: 10, Cols: 20})
		for _, row := range screenRows(flushToScreen(view, 20, 10)) {
			for _, r := range row {
				Expect(isBraille(r)).To(BeFalse())
			}
		}
	})

	It("should draw bare axes for a 3D graph", func() {
		graph.ThreeDimensional = true
		canvas.Invalidate()

		view := &term.ChartView{Canvas: canvas, Graph: "main"}
		view.SetBox(term.PositionBox{Rows: 10, Cols: 20})
		rows := screenRows(flushToScreen(view, 20, 10))
		Expect(rows[8]).To(HavePrefix("┗━"))
		Expect(strings.TrimSpace(rows[9])).To(BeEmpty())
	})
})

var _ = Describe("Describing a graph", func() {
	It("should list the axis ranges, data sets, and anomalies", func() {
		canvas := chart.NewCanvas()
		graph := chart.NewGraph("main")
		graph.Title = "Requests"
		graph.Axis("x1").TargetMajorTickCount = 3
		graph.AddDataSet(chart.NewDataSet("latency", chart.Points, [][]float64{{1, 2}, {3}}))
		Expect(canvas.Add(graph)).To(Succeed())
		log := canvas.Prepare()

		box := &term.TextBox{}
		term.DescribeGraph(box, graph, log)
		box.SetBox(term.PositionBox{Rows: 10, Cols: 80})
		rows := screenRows(flushToScreen(box, 80, 10))

		Expect(rows[0]).To(HavePrefix("Requests (main)"))
		Expect(rows[0]).To(ContainSubstring("x1 ["))
		Expect(rows[0]).To(ContainSubstring("] linear"))
		Expect(rows[1]).To(ContainSubstring("latency (points, 2 rows)"))
		Expect(log.Has(axis.ShortDataRow)).To(BeTrue())
		Expect(strings.TrimSpace(rows[2])).NotTo(BeEmpty())
	})

	It("should color the data set markers like the chart", func() {
		Expect(term.SeriesColor(plot.SeriesId(1))).NotTo(Equal(term.SeriesColor(plot.SeriesId(2))))
	})
})
