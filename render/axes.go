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
	"math"

	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
)

// Tick lengths and label gaps, in device units.
const (
	majorTickLength = 6
	minorTickLength = 3
	labelGap        = 4
	axisLabelGap    = 8
)

// placement is where an axis is drawn: a line between two page points, with
// the unit normal its ticks and labels stick out along.
type placement struct {
	from, to chart.Projection
	nx, ny   float64
}

func (pl placement) at(f float64) (x, y float64) {
	return pl.from.X + f*(pl.to.X-pl.from.X), pl.from.Y + f*(pl.to.Y-pl.from.Y)
}

func axisIndex(name string) int {
	for i, n := range chart.AxisNames {
		if n == name {
			return i
		}
	}
	return -1
}

// placeAxis works out where the named axis goes.  On 2D graphs the
// secondary axes run along the top and right; there are no z axes.
func placeAxis(g *chart.Graph, name string) (placement, bool) {
	i := axisIndex(name)
	if i < 0 {
		return placement{}, false
	}
	d, secondary := i/2, i%2 == 1

	if !g.ThreeDimensional {
		if d > 1 {
			return placement{}, false
		}
		from, to := g.AxisEnds(d)
		pl := placement{from: from, to: to}
		switch {
		case d == 0 && !secondary:
			pl.ny = -1
		case d == 0:
			pl.from.Y += g.Height()
			pl.to.Y += g.Height()
			pl.ny = 1
		case !secondary:
			pl.nx = -1
		default:
			pl.from.X += g.Width
			pl.to.X += g.Width
			pl.nx = 1
		}
		return pl, true
	}

	from, to := g.AxisEnds(d)
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if !(length > 0) {
		// seen end-on
		return placement{}, false
	}
	pl := placement{from: from, to: to, nx: -dy / length, ny: dx / length}

	// point away from the middle of the box
	box := g.BoundingBox()
	mx, my := (from.X+to.X)/2, (from.Y+to.Y)/2
	cx, cy := (box.MinX+box.MaxX)/2, (box.MinY+box.MaxY)/2
	if pl.nx*(mx-cx)+pl.ny*(my-cy) < 0 {
		pl.nx, pl.ny = -pl.nx, -pl.ny
	}
	if secondary {
		pl.nx, pl.ny = -pl.nx, -pl.ny
	}
	return pl, true
}

// anchors picks text anchors for labels placed along a device normal.
func anchors(dnx, dny float64) (HAnchor, VAnchor) {
	if math.Abs(dnx) > math.Abs(dny) {
		if dnx > 0 {
			return AnchorStart, AnchorCenter
		}
		return AnchorEnd, AnchorCenter
	}
	if dny > 0 {
		return AnchorMiddle, AnchorTop
	}
	return AnchorMiddle, AnchorBottom
}

// drawAxis draws an axis line with its ticks, tick labels and axis label.
func drawAxis(b Backend, p page, g *chart.Graph, name string) {
	ax := g.Axis(name)
	pl, ok := placeAxis(g, name)
	if !ok {
		return
	}
	// device normal
	dnx, dny := pl.nx, -pl.ny
	h, v := anchors(dnx, dny)

	x1, y1 := p.device(pl.from.X, pl.from.Y)
	x2, y2 := p.device(pl.to.X, pl.to.Y)
	b.Line(x1, y1, x2, y2, Foreground)

	ticks := ax.Ticks()
	tick := func(t axis.Tick, length float64) (float64, float64, bool) {
		f := ax.GetPosition(t.Value, false)
		if math.IsNaN(f) {
			return 0, 0, false
		}
		x, y := p.device(pl.at(f))
		b.Line(x, y, x+dnx*length, y+dny*length, Foreground)
		return x, y, true
	}
	for _, t := range ticks.Minor {
		tick(t, minorTickLength)
	}

	extent := 0.0
	for _, t := range ticks.Major {
		x, y, ok := tick(t, majorTickLength)
		if !ok || t.Label == "" {
			continue
		}
		off := float64(majorTickLength + labelGap)
		b.Text(x+dnx*off, y+dny*off, t.Label, h, v, Foreground)
		if h == AnchorMiddle {
			extent = math.Max(extent, b.TextHeight())
		} else {
			extent = math.Max(extent, b.TextWidth(t.Label))
		}
	}

	if ax.Label == "" {
		return
	}
	off := majorTickLength + labelGap + extent + axisLabelGap
	mx, my := (x1+x2)/2, (y1+y2)/2
	b.Text(mx+dnx*off, my+dny*off, ax.Label, h, v, Foreground)
}

// drawGrid draws lines across a 2D graph at the major ticks of its grid
// axes.
func drawGrid(b Backend, p page, g *chart.Graph, active sets.String) {
	if g.ThreeDimensional {
		return
	}
	for _, name := range g.GridAxes {
		i := axisIndex(name)
		if i < 0 || i/2 > 1 || !active.Has(name) {
			continue
		}
		ax := g.Axis(name)
		pl, _ := placeAxis(g, name)
		for _, t := range ax.Ticks().Major {
			f := ax.GetPosition(t.Value, false)
			if math.IsNaN(f) {
				continue
			}
			x, y := pl.at(f)
			var x2, y2 float64
			if i/2 == 0 {
				x2, y2 = x, y+g.Height()*-pl.ny
			} else {
				x2, y2 = x+g.Width*-pl.nx, y
			}
			dx1, dy1 := p.device(x, y)
			dx2, dy2 := p.device(x2, y2)
			b.Line(dx1, dy1, dx2, dy2, GridColor)
		}
	}
}
