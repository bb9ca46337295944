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

package plot

import (
	"math"

	"github.com/mattn/go-runewidth"

	"sigs.k8s.io/chartkit/chart/axis"
)

// AxisTick is a labelled tick at a fractional position along an axis.
type AxisTick struct {
	Position float64
	Label    string
}

// TicksFor lists the major ticks of a resolved axis.
func TicksFor(ax *axis.Axis) []AxisTick {
	ticks := ax.Ticks()
	if ticks == nil {
		return nil
	}
	var out []AxisTick
	for _, t := range ticks.Major {
		f := ax.GetPosition(t.Value, false)
		if math.IsNaN(f) {
			continue
		}
		out = append(out, AxisTick{Position: f, Label: t.Label})
	}
	return out
}

type DomainTick struct {
	Col   Column
	Label string
}

type RangeTick struct {
	Row   Row
	Label string
}

// ScreenTicks are the ticks of a graph laid out in character cells, along
// with the margins needed for their labels.
type ScreenTicks struct {
	DomainTicks []DomainTick
	RangeTicks  []RangeTick

	InnerGraphSize ScreenSize
	MarginRows     Row
	MarginCols     Column
	LineSize       int
}

// LayoutTicks works out the margins needed to label the given ticks in an
// area of outerSize cells, and where each tick falls in what's left.  The
// domain (x) labels take one row beneath the axis line; the range (y) labels
// are right-justified to the left of it.
func LayoutTicks(domain, rng []AxisTick, outerSize ScreenSize, lineSize int) *ScreenTicks {
	ticks := &ScreenTicks{
		MarginRows: Row(1 + lineSize),
		LineSize:   lineSize,
	}
	for _, tick := range rng {
		if w := Column(runewidth.StringWidth(tick.Label)); w > ticks.MarginCols {
			ticks.MarginCols = w
		}
	}
	ticks.MarginCols += Column(lineSize)

	innerSize := outerSize
	innerSize.Rows -= ticks.MarginRows
	innerSize.Cols -= ticks.MarginCols
	// fix to zero so that we can bail in other code
	if innerSize.Rows <= 0 || innerSize.Cols <= 0 {
		ticks.InnerGraphSize = ScreenSize{}
		return ticks
	}
	ticks.InnerGraphSize = innerSize

	for _, tick := range domain {
		col := Column(math.Round(tick.Position * float64(innerSize.Cols-1)))
		// discard duplicate ticks
		if n := len(ticks.DomainTicks); n > 0 && ticks.DomainTicks[n-1].Col == col {
			continue
		}
		ticks.DomainTicks = append(ticks.DomainTicks, DomainTick{Col: col, Label: tick.Label})
	}
	for _, tick := range rng {
		row := innerSize.Rows - 1 - Row(math.Round(tick.Position*float64(innerSize.Rows-1)))
		if n := len(ticks.RangeTicks); n > 0 && ticks.RangeTicks[n-1].Row == row {
			continue
		}
		ticks.RangeTicks = append(ticks.RangeTicks, RangeTick{Row: row, Label: tick.Label})
	}
	return ticks
}

type AxisCellKind int

const (
	DomainTickKind AxisCellKind = iota
	RangeTickKind
	YAxisKind
	XAxisKind
	AxisCornerKind
	LabelKind
)

// DrawAxes outputs the axis lines, ticks and labels of a layout.  Rows and
// columns are relative to the top left of the outer area.
func DrawAxes(ticks *ScreenTicks, output func(row Row, col Column, cell rune, kind AxisCellKind)) {
	if ticks.InnerGraphSize.Rows == 0 || ticks.InnerGraphSize.Cols == 0 {
		return
	}
	axisCol := ticks.MarginCols - 1
	axisRow := ticks.InnerGraphSize.Rows

	// first, draw axis lines
	for row := Row(0); row < axisRow; row++ {
		output(row, axisCol, ' ', YAxisKind)
	}
	for col := Column(0); col < ticks.InnerGraphSize.Cols; col++ {
		output(axisRow, col+ticks.MarginCols, ' ', XAxisKind)
	}

	// then, draw ticks & labels
	for _, tick := range ticks.RangeTicks {
		output(tick.Row, axisCol, ' ', RangeTickKind)

		// label, right-justified
		lblPos := axisCol - Column(runewidth.StringWidth(tick.Label))
		for _, rn := range tick.Label {
			output(tick.Row, lblPos, rn, LabelKind)
			lblPos += Column(runewidth.RuneWidth(rn))
		}
	}

	labelRow := axisRow + Row(ticks.LineSize)
	rightEdge := ticks.MarginCols + ticks.InnerGraphSize.Cols
	nextFree := Column(0)
	for _, tick := range ticks.DomainTicks {
		col := tick.Col + ticks.MarginCols
		output(axisRow, col, ' ', DomainTickKind)

		// label, centered under the tick if it fits, skipped if it would
		// run into the previous one
		width := Column(runewidth.StringWidth(tick.Label))
		lblPos := col - width/2
		if lblPos+width > rightEdge {
			lblPos = rightEdge - width
		}
		if lblPos < 0 {
			lblPos = 0
		}
		if lblPos < nextFree {
			continue
		}
		for _, rn := range tick.Label {
			output(labelRow, lblPos, rn, LabelKind)
			lblPos += Column(runewidth.RuneWidth(rn))
		}
		nextFree = lblPos + 1
	}

	// finally the corner (after ticks so if we do something special to
	// overwrite the axis lines for ticks, the corner character has the final
	// say)
	output(axisRow, axisCol, ' ', AxisCornerKind)
}
