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
	"github.com/gdamore/tcell"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/chartkit/term"
)

var _ = Describe("The TextBox widget", func() {
	It("should still save text written before the size is set", func() {
		box := &term.TextBox{}
		box.WriteString("the time has come, the walrus said", tcell.StyleDefault)
		box.SetBox(term.PositionBox{Rows: 1, Cols: 40})
		Expect(box).To(DisplayLike(40, 1, "the time has come, the walrus said"))
	})

	It("should turn newlines into cursor movement", func() {
		box := &term.TextBox{}
		box.WriteString("of shoes, and ships,\n  and sealing wax,", tcell.StyleDefault)
		box.SetBox(term.PositionBox{Rows: 2, Cols: 20})

		Expect(box).To(DisplayLike(20, 2,
			// NB: whitespace is significant here
			"of shoes, and ships,"+
				"  and sealing wax,  "))
	})

	It("should support writing different text spans with different styles", func() {
		box := &term.TextBox{}
		box.WriteString("but ", tcell.StyleDefault.Foreground(tcell.ColorBlue))
		box.WriteString("wait", tcell.StyleDefault.Foreground(tcell.ColorRed))
		box.SetBox(term.PositionBox{Rows: 1, Cols: 8})

		Expect(box).To(DisplayWithStyle(8, 1,
			"but ", tcell.StyleDefault.Foreground(tcell.ColorBlue),
			"wait", tcell.StyleDefault.Foreground(tcell.ColorRed),
		))
	})

	It("should wrap lines that are longer than the width", func() {
		box := &term.TextBox{}
		box.WriteString("a bit, the oysters cried, before we have our chat", tcell.StyleDefault)

		By("using a box that's narrower than the screen, so that we can see the wrapping in the output")
		box.SetBox(term.PositionBox{Rows: 2, Cols: 25})
		Expect(box).To(DisplayLike(30, 2,
			"a bit, the oysters cried,     "+
				" before we have our chat      "))
	})

	It("should scroll the earliest lines out if the contents are too large for the box", func() {
		box := &term.TextBox{}
		box.WriteString("one\ntwo\nthree", tcell.StyleDefault)
		box.SetBox(term.PositionBox{Rows: 2, Cols: 5})

		Expect(box).To(DisplayLike(5, 2, "two  three"))
	})

	It("should properly wrap even if the box changes size", func() {
		box := &term.TextBox{}
		box.WriteString("but not on us!", tcell.StyleDefault)

		By("setting a initial size with no wrapping")
		box.SetBox(term.PositionBox{Rows: 1, Cols: 14})
		Expect(box).To(DisplayLike(14, 1, "but not on us!"))

		By("changing to a size with line wrapping")
		box.SetBox(term.PositionBox{Rows: 4, Cols: 4})
		Expect(box).To(DisplayLike(6, 4, "but   not   on u  s!    "))
	})

	It("should forget everything once cleared", func() {
		box := &term.TextBox{}
		box.WriteString("the oysters cried", tcell.StyleDefault)
		box.Clear()
		box.WriteString("alas", tcell.StyleDefault)
		box.SetBox(term.PositionBox{Rows: 1, Cols: 10})

		Expect(box).To(DisplayLike(10, 1, "alas"))
	})

	It("should keep full-width characters in a single cell", func() {
		box := &term.TextBox{}
		box.WriteString("日本", tcell.StyleDefault)
		box.SetBox(term.PositionBox{Rows: 2, Cols: 3})

		screen := tcell.NewSimulationScreen("")
		Expect(screen.Init()).To(Succeed())
		screen.SetSize(3, 2)
		box.FlushTo(screen)
		screen.Show()

		first, _, _, _ := screen.GetContent(0, 0)
		second, _, _, _ := screen.GetContent(0, 1)
		Expect(first).To(Equal('日'))
		Expect(second).To(Equal('本'))
	})

	It("should skip rendering if given zero columns", func() {
		box := &term.TextBox{}
		box.WriteString("the oysters cried", tcell.StyleDefault)

		box.SetBox(term.PositionBox{Rows: 1, Cols: 0})
		Expect(box).To(DisplayLike(1, 10, ""))
	})

	It("should skip rendering if given zero rows", func() {
		box := &term.TextBox{}
		box.WriteString("turning a little blue.", tcell.StyleDefault)

		box.SetBox(term.PositionBox{Rows: 0, Cols: 100})
		Expect(box).To(DisplayLike(1, 10, ""))
	})

	It("should start writing at the position specified by its box", func() {
		box := &term.TextBox{}
		box.WriteString("after", tcell.StyleDefault)

		box.SetBox(term.PositionBox{
			StartRow: 2, StartCol: 5,
			Rows: 1, Cols: 10,
		})

		Expect(box).To(DisplayLike(20, 3,
			"                    "+
				"                    "+
				"     after          "))
	})
})
