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
	"sort"
	"strings"

	"sigs.k8s.io/chartkit/chart/axis"
)

// Style names how a data set is drawn, and with it how many columns each of
// its rows has and what they mean.
type Style string

const (
	Points      Style = "points"
	Lines       Style = "lines"
	LinesPoints Style = "linespoints"
	Dots        Style = "dots"
	Impulses    Style = "impulses"
	UpperLimits Style = "upperlimits"
	LowerLimits Style = "lowerlimits"
	Boxes       Style = "boxes"
	WBoxes      Style = "wboxes"
	Steps       Style = "steps"
	FSteps      Style = "fsteps"
	HiSteps     Style = "histeps"
	Surface     Style = "surface"

	XErrorBars   Style = "xerrorbars"
	YErrorBars   Style = "yerrorbars"
	ZErrorBars   Style = "zerrorbars"
	XYErrorBars  Style = "xyerrorbars"
	XZErrorBars  Style = "xzerrorbars"
	YZErrorBars  Style = "yzerrorbars"
	XYZErrorBars Style = "xyzerrorbars"

	XErrorRange   Style = "xerrorrange"
	YErrorRange   Style = "yerrorrange"
	ZErrorRange   Style = "zerrorrange"
	XYErrorRange  Style = "xyerrorrange"
	XZErrorRange  Style = "xzerrorrange"
	YZErrorRange  Style = "yzerrorrange"
	XYZErrorRange Style = "xyzerrorrange"

	ArrowsHead    Style = "arrows_head"
	ArrowsNoHead  Style = "arrows_nohead"
	ArrowsTwoHead Style = "arrows_twohead"
)

type errorKind int

const (
	noError errorKind = iota
	// symmetricError columns hold a half-width around the center.
	symmetricError
	// rangeError columns hold the lower and upper ends explicitly.
	rangeError
)

// coordinate locates one dimension of a row.
type coordinate struct {
	center int
	kind   errorKind
	a, b   int
}

// Layout describes the columns of a row for one style on one kind of graph.
type Layout struct {
	style   Style
	columns int
	dims    int
	coords  [3]coordinate

	// arrows have a second point, in end
	arrow bool
	end   [3]int

	// baseline styles are drawn from the graph's BoxFrom value on y
	baseline bool
}

var layouts = map[Style]func(threeD bool) Layout{
	Points:      plainLayout,
	Lines:       plainLayout,
	LinesPoints: plainLayout,
	Dots:        plainLayout,
	UpperLimits: plainLayout,
	LowerLimits: plainLayout,
	Impulses:    withBaseline(plainLayout),
	Boxes:       withBaseline(flatLayout),
	Steps:       flatLayout,
	FSteps:      flatLayout,
	HiSteps:     flatLayout,
	WBoxes:      withBaseline(widthBoxLayout),
	Surface:     func(bool) Layout { return plainLayout(true) },

	XErrorBars:   errorLayout("x", symmetricError),
	YErrorBars:   errorLayout("y", symmetricError),
	ZErrorBars:   errorLayout("z", symmetricError),
	XYErrorBars:  errorLayout("xy", symmetricError),
	XZErrorBars:  errorLayout("xz", symmetricError),
	YZErrorBars:  errorLayout("yz", symmetricError),
	XYZErrorBars: errorLayout("xyz", symmetricError),

	XErrorRange:   errorLayout("x", rangeError),
	YErrorRange:   errorLayout("y", rangeError),
	ZErrorRange:   errorLayout("z", rangeError),
	XYErrorRange:  errorLayout("xy", rangeError),
	XZErrorRange:  errorLayout("xz", rangeError),
	YZErrorRange:  errorLayout("yz", rangeError),
	XYZErrorRange: errorLayout("xyz", rangeError),

	ArrowsHead:    arrowLayout,
	ArrowsNoHead:  arrowLayout,
	ArrowsTwoHead: arrowLayout,
}

// Styles lists every known style, sorted by name.
func Styles() []Style {
	out := make([]Style, 0, len(layouts))
	for s := range layouts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LayoutFor returns the column layout of a style on a 2D or 3D graph.
func LayoutFor(style Style, threeD bool) (Layout, error) {
	build, ok := layouts[style]
	if !ok {
		return Layout{}, fmt.Errorf("unknown plot style %q", style)
	}
	l := build(threeD)
	l.style = style
	return l, nil
}

// RequiredColumns is the number of columns each row needs for the style.
func RequiredColumns(style Style, threeD bool) (int, error) {
	l, err := LayoutFor(style, threeD)
	if err != nil {
		return 0, err
	}
	return l.columns, nil
}

func plainLayout(threeD bool) Layout {
	l := Layout{dims: 2}
	if threeD {
		l.dims = 3
	}
	for d := 0; d < l.dims; d++ {
		l.coords[d].center = d
	}
	l.columns = l.dims
	return l
}

// flatLayout styles only ever take x and y.
func flatLayout(bool) Layout {
	return plainLayout(false)
}

func widthBoxLayout(bool) Layout {
	l := plainLayout(false)
	l.coords[0].kind = symmetricError
	l.coords[0].a = l.columns
	l.columns++
	return l
}

func withBaseline(build func(bool) Layout) func(bool) Layout {
	return func(threeD bool) Layout {
		l := build(threeD)
		l.baseline = true
		return l
	}
}

// errorLayout adds error columns, in x, y, z order, after the coordinates.
// Styles with z errors are always three dimensional.
func errorLayout(dims string, kind errorKind) func(bool) Layout {
	return func(threeD bool) Layout {
		l := plainLayout(threeD || strings.Contains(dims, "z"))
		for _, r := range dims {
			d := strings.IndexRune("xyz", r)
			l.coords[d].kind = kind
			l.coords[d].a = l.columns
			l.columns++
			if kind == rangeError {
				l.coords[d].b = l.columns
				l.columns++
			}
		}
		return l
	}
}

func arrowLayout(threeD bool) Layout {
	l := plainLayout(threeD)
	l.arrow = true
	for d := 0; d < l.dims; d++ {
		l.end[d] = l.columns + d
	}
	l.columns += l.dims
	return l
}

func (l Layout) Style() Style {
	return l.style
}

func (l Layout) Columns() int {
	return l.columns
}

// Dims is 3 if rows carry a z coordinate.
func (l Layout) Dims() int {
	return l.dims
}

// HasBaseline reports whether the style is drawn down to the graph's
// BoxFrom value.
func (l Layout) HasBaseline() bool {
	return l.baseline
}

// Point returns the central coordinates of a row.  z is zero for two
// dimensional layouts.
func (l Layout) Point(row []float64) [3]float64 {
	var p [3]float64
	for d := 0; d < l.dims; d++ {
		p[d] = row[l.coords[d].center]
	}
	return p
}

// Extent returns the error interval of a row along dimension d, if the
// style has one.
func (l Layout) Extent(row []float64, d int) (lo, hi float64, ok bool) {
	if d >= l.dims {
		return 0, 0, false
	}
	c := l.coords[d]
	switch c.kind {
	case symmetricError:
		return row[c.center] - row[c.a], row[c.center] + row[c.a], true
	case rangeError:
		return row[c.a], row[c.b], true
	}
	return 0, 0, false
}

// ArrowEnd returns the second point of an arrow row.
func (l Layout) ArrowEnd(row []float64) ([3]float64, bool) {
	var p [3]float64
	if !l.arrow {
		return p, false
	}
	for d := 0; d < l.dims; d++ {
		p[d] = row[l.end[d]]
	}
	return p, true
}

// values lists every value a row contributes along dimension d.
func (l Layout) values(row []float64, d int) []float64 {
	out := []float64{row[l.coords[d].center]}
	if lo, hi, ok := l.Extent(row, d); ok {
		out = append(out, lo, hi)
	}
	if end, ok := l.ArrowEnd(row); ok {
		out = append(out, end[d])
	}
	return out
}

// accepts reports whether a row lies (at least partly) within the axes.  A
// row with error columns counts if, along some dimension with errors, any of
// its values is in range while the other dimensions' centers are.
func (l Layout) accepts(row []float64, axes [3]*axis.Axis) bool {
	centerIn := func(d int) bool {
		return axes[d].InRange(row[l.coords[d].center])
	}
	othersIn := func(skip int) bool {
		for d := 0; d < l.dims; d++ {
			if d != skip && !centerIn(d) {
				return false
			}
		}
		return true
	}

	if end, ok := l.ArrowEnd(row); ok {
		if othersIn(-1) {
			return true
		}
		for d := 0; d < l.dims; d++ {
			if !axes[d].InRange(end[d]) {
				return false
			}
		}
		return true
	}

	withErrors := false
	for d := 0; d < l.dims; d++ {
		if l.coords[d].kind == noError {
			continue
		}
		withErrors = true
		if !othersIn(d) {
			continue
		}
		for _, v := range l.values(row, d) {
			if axes[d].InRange(v) {
				return true
			}
		}
	}
	return !withErrors && othersIn(-1)
}

// updateUsage feeds every acceptable row of a data set into its axes.  Rows
// that are too short are skipped, and reported once.
func (l Layout) updateUsage(ds *DataSet, axes [3]*axis.Axis, baseline float64, log *axis.Log) {
	for _, row := range ds.Rows {
		if len(row) < l.columns {
			log.Addf(axis.ShortDataRow, axes[0].ID(),
				"Data set %q has rows with fewer than the %d columns needed by style %s. Ignoring them.", ds.Title, l.columns, l.style)
			continue
		}
		if !l.accepts(row, axes) {
			continue
		}
		for d := 0; d < l.dims; d++ {
			for _, v := range l.values(row, d) {
				axes[d].IncludePoint(v)
			}
		}
		if l.baseline {
			axes[1].IncludePoint(baseline)
		}
	}
}
