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

package chart

import (
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/chart/link"
)

// AxisNames are the axes every graph has, in drawing order.
var AxisNames = []string{"x1", "x2", "y1", "y2", "z1", "z2"}

const (
	DefaultWidth       = 400
	DefaultViewAngleXY = 60
	DefaultViewAngleYZ = 30
)

// GoldenAspect is the default height (and depth) to width ratio.
var GoldenAspect = 2 / (1 + math.Sqrt(5))

// Graph is a set of axes with data sets plotted against them.  Page
// coordinates have y increasing upwards from Origin.
type Graph struct {
	name   string
	canvas *Canvas

	Title            string
	Width            float64
	Aspect, AspectZ  float64
	Origin           [2]float64
	ThreeDimensional bool
	// ViewAngleXY and ViewAngleYZ orient 3D graphs, in degrees.
	ViewAngleXY, ViewAngleYZ float64
	Clip                     bool
	// BoxFrom is the baseline of impulses and boxes (zero if unset).
	BoxFrom  *float64
	GridAxes []string

	DataSets []*DataSet

	axes map[string]*axis.Axis

	// active holds the axes drawn this pass.
	active sets.String
}

// NewGraph constructs an empty 2D graph with the default geometry.
func NewGraph(name string) *Graph {
	g := &Graph{
		name:        name,
		Width:       DefaultWidth,
		Aspect:      GoldenAspect,
		AspectZ:     GoldenAspect,
		ViewAngleXY: DefaultViewAngleXY,
		ViewAngleYZ: DefaultViewAngleYZ,
		Clip:        true,
		GridAxes:    []string{"x1", "y1", "z1"},
		axes:        make(map[string]*axis.Axis, len(AxisNames)),
		active:      sets.NewString(),
	}
	for _, n := range AxisNames {
		g.axes[n] = axis.New(axis.ID{Chart: name, Axis: n})
	}
	return g
}

func (g *Graph) Name() string {
	return g.name
}

// Axis returns the named axis, or nil if the graph has no such axis.
func (g *Graph) Axis(name string) *axis.Axis {
	return g.axes[name]
}

// Axes returns every axis, in AxisNames order.
func (g *Graph) Axes() []*axis.Axis {
	out := make([]*axis.Axis, 0, len(AxisNames))
	for _, n := range AxisNames {
		out = append(out, g.axes[n])
	}
	return out
}

// ActiveAxes returns the names of the axes to draw after the last pass: the
// primary axes, any axis with data plotted against it and any labelled or
// linked secondary axis, minus hidden ones.
func (g *Graph) ActiveAxes() []string {
	var out []string
	for _, n := range AxisNames {
		if g.active.Has(n) && !g.axes[n].Hidden {
			out = append(out, n)
		}
	}
	return out
}

// AddDataSet appends a data set to the graph.
func (g *Graph) AddDataSet(ds *DataSet) {
	g.DataSets = append(g.DataSets, ds)
	g.invalidate()
}

func (g *Graph) Height() float64 {
	return g.Width * g.Aspect
}

func (g *Graph) Depth() float64 {
	return g.Width * g.AspectZ
}

func (g *Graph) invalidate() {
	if g.canvas != nil {
		g.canvas.Invalidate()
	}
}

// Projection is a point projected onto the page, plus the on-page angle of
// each axis direction measured from the vertical.
type Projection struct {
	X, Y, Depth            float64
	ThetaX, ThetaY, ThetaZ float64
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// project3d turns fractional axis positions into page coordinates.
func (g *Graph) project3d(xap, yap, zap float64) Projection {
	x := g.Width * (xap - 0.5)
	y := g.Height() * (yap - 0.5)
	z := g.Depth() * (zap - 0.5)

	sinXY, cosXY := math.Sincos(radians(g.ViewAngleXY))
	sinYZ, cosYZ := math.Sincos(radians(g.ViewAngleYZ))

	x2 := x*cosXY + y*sinXY
	y2 := -x*sinXY + y*cosXY
	z2 := z

	y3 := y2*cosYZ - z2*sinYZ
	z3 := y2*sinYZ + z2*cosYZ

	return Projection{X: g.Origin[0] + x2, Y: g.Origin[1] + z3, Depth: y3}
}

// ProjectPoint maps a data point onto the page.  ok is false if any
// coordinate has no position on its axis, or (unless allowOffBounds) lies
// off the end of it.  az is ignored on 2D graphs.
func (g *Graph) ProjectPoint(x, y, z float64, ax, ay, az *axis.Axis, allowOffBounds bool) (Projection, bool) {
	xap := ax.GetPosition(x, true)
	yap := ay.GetPosition(y, true)
	zap := 0.5
	if g.ThreeDimensional {
		zap = az.GetPosition(z, true)
	}
	for _, f := range []float64{xap, yap, zap} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Projection{}, false
		}
		if !allowOffBounds && (f < 0 || f > 1) {
			return Projection{}, false
		}
	}

	if !g.ThreeDimensional {
		return Projection{
			X:      g.Origin[0] + g.Width*xap,
			Y:      g.Origin[1] + g.Height()*yap,
			ThetaX: math.Pi / 2,
		}, true
	}

	p := g.project3d(xap, yap, zap)
	sinXY, cosXY := math.Sincos(radians(g.ViewAngleXY))
	sinYZ, cosYZ := math.Sincos(radians(g.ViewAngleYZ))
	p.ThetaX = finiteOrZero(math.Atan2(cosXY, -sinXY*sinYZ))
	p.ThetaY = finiteOrZero(math.Atan2(sinXY, cosXY*sinYZ))
	p.ThetaZ = finiteOrZero(math.Atan2(0, cosYZ))
	return p, true
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// AxisEnds returns the page coordinates of both ends of the axes along
// dimension d (0 for x, 1 for y, 2 for z).  On 2D graphs, x axes run along
// the bottom and y axes up the left.
func (g *Graph) AxisEnds(d int) (from, to Projection) {
	if !g.ThreeDimensional {
		switch d {
		case 0:
			return Projection{X: g.Origin[0], Y: g.Origin[1]}, Projection{X: g.Origin[0] + g.Width, Y: g.Origin[1]}
		case 1:
			return Projection{X: g.Origin[0], Y: g.Origin[1]}, Projection{X: g.Origin[0], Y: g.Origin[1] + g.Height()}
		default:
			return Projection{X: g.Origin[0], Y: g.Origin[1]}, Projection{X: g.Origin[0], Y: g.Origin[1]}
		}
	}
	lo, hi := [3]float64{0.5, 0.5, 0.5}, [3]float64{0.5, 0.5, 0.5}
	lo[d], hi[d] = 0, 1
	return g.project3d(lo[0], lo[1], lo[2]), g.project3d(hi[0], hi[1], hi[2])
}

// screenLengths is how long each dimension's axes appear on the page, and
// their bearing.
func (g *Graph) screenLengths() (size, bearing [3]float64) {
	if !g.ThreeDimensional {
		return [3]float64{g.Width, g.Height(), g.Depth()}, [3]float64{math.Pi / 2, 0, 0}
	}
	for d := 0; d < 3; d++ {
		a, b := g.AxisEnds(d)
		size[d] = finiteOrZero(math.Hypot(b.X-a.X, b.Y-a.Y))
		bearing[d] = finiteOrZero(math.Atan2(b.X-a.X, b.Y-a.Y))
	}
	return size, bearing
}

// BoundingBox covers the plot area (or, in 3D, the projected box).
func (g *Graph) BoundingBox() Box {
	var b Box
	if !g.ThreeDimensional {
		b.IncludePoint(g.Origin[0], g.Origin[1])
		b.IncludePoint(g.Origin[0]+g.Width, g.Origin[1]+g.Height())
		return b
	}
	for i := 0; i < 8; i++ {
		p := g.project3d(float64(i&1), float64(i>>1&1), float64(i>>2&1))
		b.IncludePoint(p.X, p.Y)
	}
	return b
}

// Page lengths per tick used to derive target tick counts.
const (
	majorTickSpacing = 60
	minorTickSpacing = 15
)

// resetAxes starts a new pass: every axis workspace is discarded and the
// target tick counts are derived from the on-page axis lengths.
func (g *Graph) resetAxes() {
	size, bearing := g.screenLengths()
	g.active = sets.NewString("x1", "y1")
	if g.ThreeDimensional {
		g.active.Insert("z1")
	}
	for i, n := range AxisNames {
		ax := g.axes[n]
		ax.Reset()
		d := i / 2
		// axes running across the page get wider labels
		major := size[d] / (majorTickSpacing * (1 + 0.5*math.Abs(math.Sin(bearing[d]))))
		minor := size[d] / minorTickSpacing
		ax.SetDerivedTargets(int(math.Round(major)), int(math.Round(minor)))
		if ax.Label != "" || ax.Linked() {
			g.active.Insert(n)
		}
	}
}

// collectUsage feeds every data set into its axes, then back-propagates the
// usage along any links.
func (g *Graph) collectUsage(log *axis.Log) {
	baseline := 0.0
	if g.BoxFrom != nil {
		baseline = *g.BoxFrom
	}
	for _, ds := range g.DataSets {
		layout, err := LayoutFor(ds.Style, g.ThreeDimensional)
		if err != nil {
			log.Addf(axis.UnknownPlotStyle, axis.ID{Chart: g.name, Axis: ds.Axes[0]},
				"Data set %q on graph %s has unknown plot style %q.", ds.Title, g.name, ds.Style)
			continue
		}

		var axes [3]*axis.Axis
		missing := false
		for d := 0; d < layout.Dims(); d++ {
			if axes[d] = g.axes[ds.Axes[d]]; axes[d] == nil {
				log.Addf(axis.AxisNotFound, axis.ID{Chart: g.name, Axis: ds.Axes[d]},
					"Data set %q is plotted against axis %s, which graph %s doesn't have.", ds.Title, ds.Axes[d], g.name)
				missing = true
			}
		}
		if missing {
			continue
		}

		layout.updateUsage(ds, axes, baseline, log)
		for d := 0; d < layout.Dims(); d++ {
			g.active.Insert(ds.Axes[d])
			link.BackPropagate(g.canvas, axes[d], log)
		}
	}
}

// ScrollAxis scrolls the named axis (or rather the axis its range comes
// from) by frac of its length.  The canvas needs preparing again afterwards.
func (g *Graph) ScrollAxis(name string, frac float64) (bool, error) {
	src, err := g.interactiveSource(name)
	if err != nil {
		return false, err
	}
	changed := src.Scroll(frac)
	if changed {
		g.invalidate()
	}
	return changed, nil
}

// ZoomAxis zooms the named axis (or its link source) by factor around the
// fractional position center.
func (g *Graph) ZoomAxis(name string, factor, center float64) (bool, error) {
	src, err := g.interactiveSource(name)
	if err != nil {
		return false, err
	}
	changed := src.Zoom(factor, center)
	if changed {
		g.invalidate()
	}
	return changed, nil
}

func (g *Graph) interactiveSource(name string) (*axis.Axis, error) {
	ax := g.axes[name]
	if ax == nil {
		return nil, fmt.Errorf("graph %s has no axis %q", g.name, name)
	}
	if g.canvas == nil {
		return ax, nil
	}
	return link.Source(g.canvas, ax, nil), nil
}
