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
	"github.com/gdamore/tcell"
)

// Flushable contains content that can be flushed to a screen.
type Flushable interface {
	// FlushTo writes the content to the screen, staying inside the area it
	// was last given with SetBox.
	FlushTo(screen tcell.Screen)
}

// Resizable widgets are told which part of the screen is theirs.
type Resizable interface {
	// SetBox sets the area this widget should fill.  It doesn't draw
	// anything; that's what Flushable is for.
	SetBox(PositionBox)
}

// PositionBox describes a region of the screen, in zero-indexed cells.
type PositionBox struct {
	StartCol, StartRow int
	Cols, Rows         int
}

// DockPos says which side of a SplitView the fixed-size pane goes on.
type DockPos int

const (
	PosBelow DockPos = iota
	PosAbove
	PosLeft
	PosRight
)

// SplitView divides its area between a fixed-size "docked" pane and a
// "flexed" pane taking the rest, e.g. a status bar under a chart.
type SplitView struct {
	Dock DockPos

	// DockSize is the desired size of the docked pane, in rows or columns
	// depending on Dock.
	DockSize int
	// DockMaxPercent caps the docked pane to a percentage of the area, if
	// set.
	DockMaxPercent int

	// Docked and Flexed are the two panes.  Either also receives FlushTo if
	// it's Flushable.
	Docked Resizable
	Flexed Resizable
}

// dockExtent caps the dock size to the area, leaving at least a row or column
// for the flexed pane, and to DockMaxPercent.
func (v *SplitView) dockExtent(total int) int {
	size := v.DockSize
	if size >= total {
		size = total - 1
	}
	if v.DockMaxPercent > 0 {
		if max := int(float64(total) * float64(v.DockMaxPercent) / 100.0); max < size {
			size = max
		}
	}
	if size < 0 {
		size = 0
	}
	return size
}

// boxes splits an area into the docked and flexed boxes.
func (v *SplitView) boxes(box PositionBox) (docked, flexed PositionBox) {
	docked, flexed = box, box
	switch v.Dock {
	case PosBelow:
		size := v.dockExtent(box.Rows)
		docked.StartRow += box.Rows - size
		docked.Rows = size
		flexed.Rows -= size
	case PosAbove:
		size := v.dockExtent(box.Rows)
		docked.Rows = size
		flexed.StartRow += size
		flexed.Rows -= size
	case PosLeft:
		size := v.dockExtent(box.Cols)
		docked.Cols = size
		flexed.StartCol += size
		flexed.Cols -= size
	case PosRight:
		size := v.dockExtent(box.Cols)
		docked.StartCol += box.Cols - size
		docked.Cols = size
		flexed.Cols -= size
	default:
		panic("invalid dock position")
	}
	return docked, flexed
}

func (v *SplitView) SetBox(box PositionBox) {
	docked, flexed := v.boxes(box)
	v.Docked.SetBox(docked)
	v.Flexed.SetBox(flexed)
}

func (v *SplitView) FlushTo(screen tcell.Screen) {
	if flushable, ok := v.Docked.(Flushable); ok {
		flushable.FlushTo(screen)
	}
	if flushable, ok := v.Flexed.(Flushable); ok {
		flushable.FlushTo(screen)
	}
}

// StaticResizable just records the box it was given.
type StaticResizable struct {
	PositionBox
}

func (r *StaticResizable) SetBox(box PositionBox) {
	r.PositionBox = box
}
