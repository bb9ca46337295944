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
	"unicode"

	"github.com/gdamore/tcell"
	"github.com/mattn/go-runewidth"
)

// textWrapper lays text out in a fixed-size cell buffer, wrapping long
// lines and scrolling old lines off the top.  It has a zero-indexed cursor.
type textWrapper struct {
	rows, cols           int
	buf                  tcell.CellBuffer
	cursorRow, cursorCol int
}

func (t *textWrapper) Resize(cols, rows int) {
	t.cols = cols
	t.rows = rows
	t.buf.Resize(cols, rows)
}

// Newline clears the rest of the line and moves to the start of the next
// one, scrolling if the cursor would leave the bottom.
func (t *textWrapper) Newline() {
	t.clearLine(t.cursorRow, t.cursorCol)
	t.cursorCol = 0
	if t.cursorRow < t.rows-1 {
		t.cursorRow++
		return
	}
	t.scroll()
}

// WriteString writes str in the given style at the cursor, wrapping as
// needed.  Combining characters are kept with the character before them;
// other control characters are dropped.
func (t *textWrapper) WriteString(str string, sty tcell.Style) {
	var pending []rune
	pendingWidth := 0
	flush := func() {
		if len(pending) > 0 {
			t.writeNextCell(pendingWidth, pending, sty)
			pending = pending[:0]
		}
	}
	for _, rn := range str {
		switch {
		case rn == '\n':
			flush()
			t.Newline()
			continue
		case unicode.IsControl(rn):
			continue
		}

		switch width := runewidth.RuneWidth(rn); width {
		case 0:
			if len(pending) == 0 {
				// nothing to combine with
				pending = append(pending, ' ')
				pendingWidth = 1
			}
			pending = append(pending, rn)
		default:
			flush()
			pending = append(pending, rn)
			pendingWidth = width
		}
	}
	flush()
}

// writeNextCell puts a base rune and its combining runes in the current
// cell, then advances the cursor by width (2 for full-width characters).
func (t *textWrapper) writeNextCell(width int, runes []rune, sty tcell.Style) {
	if t.cols-t.cursorCol < width {
		t.Newline()
	}
	t.buf.SetContent(t.cursorCol, t.cursorRow, runes[0], runes[1:], sty)
	t.cursorCol += width
}

func (t *textWrapper) FlushTo(screen tcell.Screen, startCol, startRow int) {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; {
			mainRune, combRunes, style, width := t.buf.GetContent(col, row)
			screen.SetContent(startCol+col, startRow+row, mainRune, combRunes, style)
			// full-width characters cover the next cell too
			col += width
		}
	}
}

// clearLine blanks a row from startCol to the end.
func (t *textWrapper) clearLine(row, startCol int) {
	for c := startCol; c < t.cols; c++ {
		t.buf.SetContent(c, row, ' ', nil, tcell.StyleDefault)
	}
}

// scroll moves every line up one row, dropping the top one.
func (t *textWrapper) scroll() {
	for r := 1; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			mainRune, combRunes, style, _ := t.buf.GetContent(c, r)
			t.buf.SetContent(c, r-1, mainRune, combRunes, style)
		}
	}
	t.clearLine(t.rows-1, 0)
}

// clearBelow blanks everything from the cursor on.
func (t *textWrapper) clearBelow() {
	t.clearLine(t.cursorRow, t.cursorCol)
	for r := t.cursorRow + 1; r < t.rows; r++ {
		t.clearLine(r, 0)
	}
}

type styledSpan struct {
	val string
	sty tcell.Style
}

// TextBox is a read-only text pane.  Text wraps to the width of the box, and
// if it doesn't fit, the earliest lines scroll out of view.
type TextBox struct {
	wrapper  textWrapper
	contents []styledSpan

	pos PositionBox
}

func (t *TextBox) SetBox(box PositionBox) {
	t.pos = box
	t.wrapper.Resize(box.Cols, box.Rows)
}

// WriteString appends text in the given style.
func (t *TextBox) WriteString(str string, sty tcell.Style) {
	t.contents = append(t.contents, styledSpan{val: str, sty: sty})
}

// Clear removes all the text.
func (t *TextBox) Clear() {
	t.contents = nil
}

func (t *TextBox) FlushTo(screen tcell.Screen) {
	if t.pos.Rows == 0 || t.pos.Cols == 0 {
		return
	}
	t.wrapper.cursorRow, t.wrapper.cursorCol = 0, 0
	for _, chunk := range t.contents {
		t.wrapper.WriteString(chunk.val, chunk.sty)
	}
	t.wrapper.clearBelow()
	t.wrapper.FlushTo(screen, t.pos.StartCol, t.pos.StartRow)
}
