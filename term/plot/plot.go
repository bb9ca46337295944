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

// Package plot rasterizes graphs for the terminal: data goes onto a grid of
// braille dots (2x4 per character cell) and axes are drawn with box-drawing
// characters in the margins.
package plot

import (
	"math"
)

const (
	brailleCellWidth     = 2
	brailleCellHeight    = 4
	brailleCellPositions = brailleCellWidth * brailleCellHeight
)

// SeriesId identifies some series.  The zero value is reserved for unset.
type SeriesId uint16

const NoSeries = SeriesId(0)

type Row int
type Column int

type ScreenSize struct {
	Rows Row
	Cols Column
}

// PixelPoint is a dot on a DotGrid, with row zero at the bottom.
type PixelPoint struct {
	Row Row
	Col Column
}

type Cell struct {
	// common path doesn't need to allocate a slice
	IsPoint bool
	Series  SeriesId

	MoreSeries []SeriesId
}

// SubCellMapper maps a dot to its index in a grid's cells.
type SubCellMapper func(row Row, col Column, size ScreenSize) int

// DotGrid is a raster of dots, each lit by zero or more series.
type DotGrid struct {
	Cells []Cell
	ScreenSize
	SubCellMapper SubCellMapper
}

func NewDotGrid(size ScreenSize, mapper SubCellMapper) *DotGrid {
	if size.Rows < 0 || size.Cols < 0 {
		size = ScreenSize{}
	}
	return &DotGrid{
		ScreenSize:    size,
		Cells:         make([]Cell, int(size.Rows)*int(size.Cols)),
		SubCellMapper: mapper,
	}
}

func (g *DotGrid) inBounds(pt PixelPoint) bool {
	return pt.Row >= 0 && pt.Row < g.Rows && pt.Col >= 0 && pt.Col < g.Cols
}

func (g *DotGrid) setCell(pt PixelPoint, isPoint bool, series SeriesId) {
	if !g.inBounds(pt) {
		return
	}
	cell := &g.Cells[g.SubCellMapper(pt.Row, pt.Col, g.ScreenSize)]
	if cell.Series == NoSeries {
		cell.Series = series
		cell.IsPoint = isPoint
		return
	}
	if cell.Series == series {
		cell.IsPoint = cell.IsPoint || isPoint
		return
	}
	cell.MoreSeries = append(cell.MoreSeries, series)
}

// Point lights a single dot.  Dots off the grid are ignored.
func (g *DotGrid) Point(pt PixelPoint, series SeriesId) {
	g.setCell(pt, true, series)
}

// Line lights the dots between two points, more-or-less following
// https://en.wikipedia.org/wiki/Bresenham%27s_line_algorithm
func (g *DotGrid) Line(from, to PixelPoint, series SeriesId) {
	run, rise := int(to.Col-from.Col), int(to.Row-from.Row)
	colInc, rowInc := 1, 1
	if run < 0 {
		run, colInc = -run, -1
	}
	if rise < 0 {
		rise, rowInc = -rise, -1
	}

	pt := from
	slopeErr := run - rise
	for {
		g.setCell(pt, false, series)
		if pt == to {
			return
		}
		// stay on the target row or column once we've reached it
		if pt.Row == to.Row || (pt.Col != to.Col && 2*slopeErr > -rise) {
			slopeErr -= rise
			pt.Col += Column(colInc)
		} else {
			slopeErr += run
			pt.Row += Row(rowInc)
		}
	}
}

// conviniently, according to the braille patterns docs (e.g.
// https://en.wikipedia.org/wiki/Braille_Patterns), each position in the
// braille cell is mapped to a bit in the byte, like so:
// 0 3
// 1 4
// 2 5
// 6 7
//
// our data is conviniently laid out to facilitate this.

const (
	brailleBlockStart = '⠀'
)

// brailleMap maps a column-wise layout to the above braille block layout.
var brailleMap = [8]rune{1 << 0, 1 << 1, 1 << 2, 1 << 6, 1 << 3, 1 << 4, 1 << 5, 1 << 7}

// DrawBraille outputs one braille character per character cell of a grid
// laid out with BrailleCellMapper.
func DrawBraille(graph *DotGrid, output func(row Row, col Column, cell rune, id SeriesId)) {
	screenCols := int(graph.Cols) / brailleCellWidth
	if screenCols == 0 {
		return
	}
	currRow := Row(-1)
	currCol := Column(0)
	for chunkStart := 0; chunkStart+brailleCellPositions <= len(graph.Cells); chunkStart += brailleCellPositions {
		if (chunkStart/brailleCellPositions)%screenCols == 0 {
			currRow++
			currCol = 0
		} else {
			currCol++
		}
		targetBits := rune(0)
		var targetId SeriesId
		for cellInd := 0; cellInd < brailleCellPositions; cellInd++ {
			cell := graph.Cells[chunkStart+cellInd]
			if cell.Series == NoSeries {
				continue
			}
			targetBits |= brailleMap[cellInd]

			// we can only have one color; points win over lines
			if targetId == NoSeries || cell.IsPoint {
				targetId = cell.Series
			}
		}

		if targetBits == 0 {
			output(currRow, currCol, ' ', NoSeries)
			continue
		}
		output(currRow, currCol, targetBits+brailleBlockStart, targetId)
	}
}

func BrailleCellMapper(row Row, col Column, size ScreenSize) int {
	// since a screen character is 4 high by 2 wide (ratio/via braille
	// characters), cells are layed out in 2x4 chunks.  Chunks are arraged
	// row-wise (one whole row, then the next) in order to facilitate printing
	// characters, but cells in a chunk are arraged column-wise to match with
	// how the braille patterns unicode characters do it.

	// flip the graph during rendering
	row = size.Rows - 1 - row

	chunkRow := int(row / brailleCellHeight)
	chunkCol := int(col / brailleCellWidth)
	chunkStart := (chunkRow*(int(size.Cols)/brailleCellWidth) + chunkCol) * brailleCellPositions

	intraChunkRow := int(row % brailleCellHeight)
	intraChunkCol := int(col % brailleCellWidth)
	intraChunkPos := intraChunkCol*brailleCellHeight + intraChunkRow

	return chunkStart + intraChunkPos
}

// BrailleCellScreenSize is the size in dots of an area of the terminal.
func BrailleCellScreenSize(termSize ScreenSize) ScreenSize {
	termSize.Rows *= brailleCellHeight
	termSize.Cols *= brailleCellWidth

	return termSize
}

// FractionToDot maps a fractional position (0 to 1) along each dimension of
// the grid to the nearest dot.
func (g *DotGrid) FractionToDot(fx, fy float64) PixelPoint {
	return PixelPoint{
		Col: Column(math.Round(fx * float64(g.Cols-1))),
		Row: Row(math.Round(fy * float64(g.Rows-1))),
	}
}
