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

package render

import (
	"image/color"
	"math"

	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
)

const (
	markerRadius = 2
	dotRadius    = 0.75
	limitLength  = 10
	arrowHead    = 8
	titleGap     = 36
	legendInset  = 8
	legendSample = 16
)

func drawGraph(b Backend, p page, g *chart.Graph) {
	active := sets.NewString(g.ActiveAxes()...)
	drawGrid(b, p, g, active)

	if !g.ThreeDimensional {
		box := g.BoundingBox()
		x1, y1 := p.device(box.MinX, box.MinY)
		x2, y2 := p.device(box.MaxX, box.MaxY)
		b.Polyline([]float64{x1, x2, x2, x1, x1}, []float64{y1, y1, y2, y2, y1}, Foreground)
	}

	for i, ds := range g.DataSets {
		drawDataSet(b, p, g, ds, SeriesColor(i))
	}
	for _, name := range g.ActiveAxes() {
		drawAxis(b, p, g, name)
	}

	box := g.BoundingBox()
	if g.Title != "" {
		x, y := p.device((box.MinX+box.MaxX)/2, box.MaxY)
		b.Text(x, y-titleGap, g.Title, AnchorMiddle, AnchorBottom, Foreground)
	}
	drawLegend(b, p, g, box)
}

// drawLegend lists titled data sets in the top right corner of the graph.
func drawLegend(b Backend, p page, g *chart.Graph, box chart.Box) {
	x, y := p.device(box.MaxX, box.MaxY)
	x -= legendInset
	y += legendInset
	for i, ds := range g.DataSets {
		if ds.Title == "" {
			continue
		}
		c := SeriesColor(i)
		b.Text(x-legendSample-labelGap, y, ds.Title, AnchorEnd, AnchorTop, c)
		mid := y + b.TextHeight()/2
		b.Line(x-legendSample, mid, x, mid, c)
		y += b.TextHeight() + labelGap
	}
}

// projector maps data points of one data set onto the device.
type projector struct {
	p    page
	g    *chart.Graph
	axes [3]*axis.Axis
	flat bool
}

func (pr projector) project(pt [3]float64) (float64, float64, bool) {
	if pr.flat && pr.g.ThreeDimensional {
		pt[2] = pr.axes[2].InvGetPosition(0.5)
	}
	proj, ok := pr.g.ProjectPoint(pt[0], pt[1], pt[2], pr.axes[0], pr.axes[1], pr.axes[2], !pr.g.Clip)
	if !ok {
		return 0, 0, false
	}
	x, y := pr.p.device(proj.X, proj.Y)
	return x, y, true
}

// polyline draws the projected points as connected runs, breaking wherever
// a point can't be projected.
func (pr projector) polyline(b Backend, pts [][3]float64, c color.Color) {
	var xs, ys []float64
	flush := func() {
		if len(xs) > 1 {
			b.Polyline(xs, ys, c)
		}
		xs, ys = nil, nil
	}
	for _, pt := range pts {
		x, y, ok := pr.project(pt)
		if !ok {
			flush()
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	flush()
}

func (pr projector) line(b Backend, from, to [3]float64, c color.Color) {
	x1, y1, ok1 := pr.project(from)
	x2, y2, ok2 := pr.project(to)
	if ok1 && ok2 {
		b.Line(x1, y1, x2, y2, c)
	}
}

// Baseline is where impulses and boxes start from on the y axis, moved to
// the bottom of the axis if it has no position there (e.g. zero on a log
// axis).
func Baseline(g *chart.Graph, ay *axis.Axis) float64 {
	base := 0.0
	if g.BoxFrom != nil {
		base = *g.BoxFrom
	}
	if math.IsNaN(ay.GetPosition(base, true)) {
		return ay.InvGetPosition(0)
	}
	return base
}

func drawDataSet(b Backend, p page, g *chart.Graph, ds *chart.DataSet, c color.Color) {
	layout, err := chart.LayoutFor(ds.Style, g.ThreeDimensional)
	if err != nil {
		// already reported by the pass
		return
	}
	pr := projector{p: p, g: g, flat: layout.Dims() == 2}
	for d := range pr.axes {
		pr.axes[d] = g.Axis(ds.Axes[d])
		if pr.axes[d] == nil && (d < layout.Dims() || g.ThreeDimensional) {
			return
		}
	}

	var rows [][]float64
	var pts [][3]float64
	for _, row := range ds.Rows {
		if len(row) < layout.Columns() {
			continue
		}
		rows = append(rows, row)
		pts = append(pts, layout.Point(row))
	}

	switch ds.Style {
	case chart.Lines:
		pr.polyline(b, pts, c)
	case chart.LinesPoints:
		pr.polyline(b, pts, c)
		drawMarkers(b, pr, pts, markerRadius, c)
	case chart.Steps, chart.FSteps, chart.HiSteps:
		pr.polyline(b, stepped(ds.Style, pts), c)
	case chart.Dots:
		drawMarkers(b, pr, pts, dotRadius, c)
	case chart.Impulses:
		base := Baseline(g, pr.axes[1])
		for _, pt := range pts {
			from := pt
			from[1] = base
			pr.line(b, from, pt, c)
		}
	case chart.Boxes, chart.WBoxes:
		drawBoxes(b, pr, layout, rows, pts, Baseline(g, pr.axes[1]), c)
	case chart.UpperLimits, chart.LowerLimits:
		dir := 1.0
		if ds.Style == chart.LowerLimits {
			dir = -1
		}
		for _, pt := range pts {
			x, y, ok := pr.project(pt)
			if !ok {
				continue
			}
			b.Line(x-markerRadius*2, y, x+markerRadius*2, y, c)
			b.Line(x, y, x, y+dir*limitLength, c)
		}
	case chart.ArrowsHead, chart.ArrowsNoHead, chart.ArrowsTwoHead:
		for i, row := range rows {
			end, _ := layout.ArrowEnd(row)
			drawArrow(b, pr, pts[i], end, ds.Style, c)
		}
	default:
		// points, surfaces, error bars and ranges
		for i, row := range rows {
			for d := 0; d < layout.Dims(); d++ {
				lo, hi, ok := layout.Extent(row, d)
				if !ok {
					continue
				}
				from, to := pts[i], pts[i]
				from[d], to[d] = lo, hi
				pr.line(b, from, to, c)
			}
		}
		drawMarkers(b, pr, pts, markerRadius, c)
	}
}

func drawMarkers(b Backend, pr projector, pts [][3]float64, r float64, c color.Color) {
	for _, pt := range pts {
		if x, y, ok := pr.project(pt); ok {
			b.Circle(x, y, r, c)
		}
	}
}

// stepped turns a series of points into the outline of a step plot.  steps
// go along then up, fsteps up then along, and histeps change level halfway
// between points.
func stepped(style chart.Style, pts [][3]float64) [][3]float64 {
	if len(pts) < 2 {
		return pts
	}
	out := [][3]float64{pts[0]}
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		switch style {
		case chart.Steps:
			out = append(out, [3]float64{cur[0], prev[1], cur[2]})
		case chart.FSteps:
			out = append(out, [3]float64{prev[0], cur[1], cur[2]})
		default:
			mid := (prev[0] + cur[0]) / 2
			out = append(out, [3]float64{mid, prev[1], cur[2]}, [3]float64{mid, cur[1], cur[2]})
		}
		out = append(out, cur)
	}
	return out
}

// drawBoxes outlines a box from the baseline to each point.  wboxes carry
// their width in the row; plain boxes reach halfway to their neighbours.
func drawBoxes(b Backend, pr projector, layout chart.Layout, rows [][]float64, pts [][3]float64, base float64, c color.Color) {
	for i, pt := range pts {
		lo, hi, ok := layout.Extent(rows[i], 0)
		if !ok {
			var gap float64
			switch {
			case i+1 < len(pts):
				gap = math.Abs(pts[i+1][0] - pt[0])
			case i > 0:
				gap = math.Abs(pt[0] - pts[i-1][0])
			}
			if gap == 0 {
				gap = 1
			}
			lo, hi = pt[0]-gap/2, pt[0]+gap/2
		}
		corners := [][3]float64{
			{lo, base, pt[2]}, {lo, pt[1], pt[2]}, {hi, pt[1], pt[2]}, {hi, base, pt[2]}, {lo, base, pt[2]},
		}
		pr.polyline(b, corners, c)
	}
}

func drawArrow(b Backend, pr projector, from, to [3]float64, style chart.Style, c color.Color) {
	x1, y1, ok1 := pr.project(from)
	x2, y2, ok2 := pr.project(to)
	if !ok1 || !ok2 {
		return
	}
	b.Line(x1, y1, x2, y2, c)
	if style == chart.ArrowsNoHead {
		return
	}
	head(b, x1, y1, x2, y2, c)
	if style == chart.ArrowsTwoHead {
		head(b, x2, y2, x1, y1, c)
	}
}

// head draws an arrow head at x2, y2 for a shaft coming from x1, y1.
func head(b Backend, x1, y1, x2, y2 float64, c color.Color) {
	angle := math.Atan2(y1-y2, x1-x2)
	for _, spread := range []float64{-math.Pi / 7, math.Pi / 7} {
		sin, cos := math.Sincos(angle + spread)
		b.Line(x2, y2, x2+arrowHead*cos, y2+arrowHead*sin, c)
	}
}
