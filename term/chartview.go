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

package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/render"
	"sigs.k8s.io/chartkit/term/plot"
)

// ChartView draws one graph of a canvas in braille, with its x1 and y1
// ticks in the margins (3D graphs get bare axis lines).  The canvas is
// prepared first if it changed.
type ChartView struct {
	pos PositionBox

	Canvas *chart.Canvas
	Graph  string
}

func (v *ChartView) SetBox(box PositionBox) {
	v.pos = box
}

func (v *ChartView) FlushTo(screen tcell.Screen) {
	if v.Canvas == nil || v.pos.Rows == 0 || v.pos.Cols == 0 {
		return
	}
	if v.Canvas.Dirty() {
		v.Canvas.Prepare()
	}
	g, ok := v.Canvas.Graph(v.Graph)
	if !ok {
		return
	}

	var domain, rng []plot.AxisTick
	if !g.ThreeDimensional {
		domain = plot.TicksFor(g.Axis("x1"))
		rng = plot.TicksFor(g.Axis("y1"))
	}
	outer := plot.ScreenSize{Cols: plot.Column(v.pos.Cols), Rows: plot.Row(v.pos.Rows)}
	ticks := plot.LayoutTicks(domain, rng, outer, 1)
	if ticks.InnerGraphSize.Cols == 0 || ticks.InnerGraphSize.Rows == 0 {
		// too small to render, just bail
		return
	}

	plot.DrawAxes(ticks, func(row plot.Row, col plot.Column, contents rune, kind plot.AxisCellKind) {
		switch kind {
		case plot.DomainTickKind:
			contents = '┯'
		case plot.RangeTickKind:
			contents = '┨'
		case plot.YAxisKind:
			contents = '┃'
		case plot.XAxisKind:
			contents = '━'
		case plot.AxisCornerKind:
			contents = '┗'
		}
		screen.SetContent(int(col)+v.pos.StartCol, int(row)+v.pos.StartRow, contents, nil, tcell.StyleDefault)
	})

	grid := plot.NewDotGrid(plot.BrailleCellScreenSize(ticks.InnerGraphSize), plot.BrailleCellMapper)
	plotDataSets(grid, g)

	startCol := v.pos.StartCol + int(ticks.MarginCols)
	startRow := v.pos.StartRow
	plot.DrawBraille(grid, func(row plot.Row, col plot.Column, contents rune, id plot.SeriesId) {
		sty := tcell.StyleDefault
		if id != plot.NoSeries {
			sty = sty.Foreground(SeriesColor(id))
		}
		screen.SetContent(int(col)+startCol, int(row)+startRow, contents, nil, sty)
	})
}

// SeriesColor matches the colors the other backends use for each data set.
func SeriesColor(id plot.SeriesId) tcell.Color {
	c := render.SeriesColor(int(id) - 1)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// plotDataSets lights the dots for every data set of a graph: lines for the
// connected styles, impulses and arrows, and single dots for the rest.
func plotDataSets(grid *plot.DotGrid, g *chart.Graph) {
	box := g.BoundingBox()
	if !(box.Width() > 0) || !(box.Height() > 0) {
		return
	}
	for i, ds := range g.DataSets {
		layout, err := chart.LayoutFor(ds.Style, g.ThreeDimensional)
		if err != nil {
			continue
		}
		var axes [3]*axis.Axis
		for d := range axes {
			axes[d] = g.Axis(ds.Axes[d])
		}
		if axes[0] == nil || axes[1] == nil || (g.ThreeDimensional && axes[2] == nil) {
			continue
		}

		id := plot.SeriesId(i + 1)
		dot := func(pt [3]float64) (plot.PixelPoint, bool) {
			if layout.Dims() == 2 && g.ThreeDimensional {
				pt[2] = axes[2].InvGetPosition(0.5)
			}
			p, ok := g.ProjectPoint(pt[0], pt[1], pt[2], axes[0], axes[1], axes[2], !g.Clip)
			if !ok {
				return plot.PixelPoint{}, false
			}
			return grid.FractionToDot((p.X-box.MinX)/box.Width(), (p.Y-box.MinY)/box.Height()), true
		}
		segment := func(from, to [3]float64) {
			a, okA := dot(from)
			b, okB := dot(to)
			if okA && okB {
				grid.Line(a, b, id)
			}
		}

		var last *plot.PixelPoint
		for _, row := range ds.Rows {
			if len(row) < layout.Columns() {
				continue
			}
			pt := layout.Point(row)
			switch ds.Style {
			case chart.Lines, chart.LinesPoints, chart.Steps, chart.FSteps, chart.HiSteps:
				cur, ok := dot(pt)
				if !ok {
					last = nil
					continue
				}
				if last != nil {
					grid.Line(*last, cur, id)
				}
				grid.Point(cur, id)
				last = &cur
			case chart.Impulses, chart.Boxes, chart.WBoxes:
				base := pt
				base[1] = render.Baseline(g, axes[1])
				segment(base, pt)
			case chart.ArrowsHead, chart.ArrowsNoHead, chart.ArrowsTwoHead:
				end, _ := layout.ArrowEnd(row)
				segment(pt, end)
			default:
				for d := 0; d < layout.Dims(); d++ {
					if lo, hi, ok := layout.Extent(row, d); ok {
						from, to := pt, pt
						from[d], to[d] = lo, hi
						segment(from, to)
					}
				}
				if p, ok := dot(pt); ok {
					grid.Point(p, id)
				}
			}
		}
	}
}

var (
	titleStyle   = tcell.StyleDefault.Bold(true)
	anomalyStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// DescribeGraph writes a summary of a prepared graph into a text box: the
// range of each drawn axis, the data sets, and the anomalies of the last
// pass.
func DescribeGraph(box *TextBox, g *chart.Graph, log *axis.Log) {
	title := g.Name()
	if g.Title != "" {
		title = fmt.Sprintf("%s (%s)", g.Title, g.Name())
	}
	box.WriteString(title, titleStyle)

	var ranges []string
	for _, name := range g.ActiveAxes() {
		res, ok := g.Axis(name).Range()
		if !ok {
			continue
		}
		ranges = append(ranges, fmt.Sprintf("%s [%s, %s] %s", name,
			axis.NumericDisplay(res.Min), axis.NumericDisplay(res.Max), res.Scale))
	}
	box.WriteString("  "+strings.Join(ranges, "  ")+"\n", tcell.StyleDefault)

	for i, ds := range g.DataSets {
		name := ds.Title
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		box.WriteString("■ ", tcell.StyleDefault.Foreground(SeriesColor(plot.SeriesId(i+1))))
		box.WriteString(fmt.Sprintf("%s (%s, %d rows)  ", name, ds.Style, len(ds.Rows)), tcell.StyleDefault)
	}
	if len(g.DataSets) > 0 {
		box.WriteString("\n", tcell.StyleDefault)
	}

	for _, a := range log.Entries() {
		box.WriteString(a.Message+"\n", anomalyStyle)
	}
}
