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
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/chartkit/term"
)

type flushableTestView struct {
	term.StaticResizable
	FlushedTo tcell.Screen
}

func (v *flushableTestView) FlushTo(screen tcell.Screen) {
	v.FlushedTo = screen
}

var _ = Describe("StaticResizable", func() {
	It("should record the size it was sent", func() {
		resizable := &term.StaticResizable{}
		targetBox := term.PositionBox{
			StartRow: 1,
			StartCol: 2,
			Rows:     3,
			Cols:     4,
		}
		resizable.SetBox(targetBox)
		Expect(resizable.PositionBox).To(Equal(targetBox), "recorded box should equal the passed in one")
	})
})

var _ = Describe("SplitView", func() {
	var (
		view       term.SplitView
		dockedView term.StaticResizable
		flexedView term.StaticResizable
		outer      = term.PositionBox{StartRow: 10, StartCol: 20, Rows: 100, Cols: 200}
	)
	BeforeEach(func() {
		dockedView = term.StaticResizable{}
		flexedView = term.StaticResizable{}
		view = term.SplitView{
			Docked:   &dockedView,
			Flexed:   &flexedView,
			DockSize: 10,
		}
	})

	DescribeTable("positioning both panes",
		func(pos term.DockPos, docked, flexed term.PositionBox) {
			view.Dock = pos
			view.SetBox(outer)
			Expect(dockedView.PositionBox).To(Equal(docked))
			Expect(flexedView.PositionBox).To(Equal(flexed))
		},
		Entry("a full-width pane on the bottom", term.PosBelow,
			term.PositionBox{StartCol: 20, Cols: 200, StartRow: 100, Rows: 10},
			term.PositionBox{StartCol: 20, Cols: 200, StartRow: 10, Rows: 90}),
		Entry("a full-width pane at the top", term.PosAbove,
			term.PositionBox{StartCol: 20, Cols: 200, StartRow: 10, Rows: 10},
			term.PositionBox{StartCol: 20, Cols: 200, StartRow: 20, Rows: 90}),
		Entry("a full-height pane on the left", term.PosLeft,
			term.PositionBox{StartRow: 10, Rows: 100, StartCol: 20, Cols: 10},
			term.PositionBox{StartRow: 10, Rows: 100, StartCol: 30, Cols: 190}),
		Entry("a full-height pane on the right", term.PosRight,
			term.PositionBox{StartRow: 10, Rows: 100, StartCol: 210, Cols: 10},
			term.PositionBox{StartRow: 10, Rows: 100, StartCol: 20, Cols: 190}),
	)

	Context("when docking on the top or bottom", func() {
		BeforeEach(func() {
			view.Dock = term.PosAbove
		})

		It("should never be larger than the containing rows, leaving at least 1 row for the flexed view", func() {
			view.DockSize = 100
			view.SetBox(term.PositionBox{Rows: 50, Cols: 50})
			Expect(dockedView.Rows).To(Equal(49))
			Expect(flexedView.Rows).To(Equal(1))
		})
		It("should never have fewer than 0 rows", func() {
			view.DockSize = 100
			view.SetBox(term.PositionBox{Rows: 0, Cols: 50})
			Expect(dockedView.Rows).To(Equal(0))
		})
		It("should be capped by the max dock percent on small screens", func() {
			view.DockSize = 40
			view.DockMaxPercent = 50
			view.SetBox(term.PositionBox{Rows: 50, Cols: 50})
			Expect(dockedView.Rows).To(Equal(25))
		})
	})

	Context("when docking on the left or right", func() {
		BeforeEach(func() {
			view.Dock = term.PosLeft
		})

		It("should never be larger than the containing cols, leaving at least 1 col for the flexed view", func() {
			view.DockSize = 100
			view.SetBox(term.PositionBox{Rows: 50, Cols: 50})
			Expect(dockedView.Cols).To(Equal(49))
		})
		It("should be capped by the max dock percent on small screens", func() {
			view.DockSize = 40
			view.DockMaxPercent = 50
			view.SetBox(term.PositionBox{Rows: 50, Cols: 50})
			Expect(dockedView.Cols).To(Equal(25))
		})
	})

	It("should flush both parts of the split, if flushable, when asked to flush", func() {
		dockedView := &flushableTestView{}
		flexedView := &flushableTestView{}
		view = term.SplitView{
			Docked: dockedView,
			Flexed: flexedView,
		}

		screen := tcell.NewSimulationScreen("")
		view.FlushTo(screen)

		Expect(dockedView.FlushedTo).To(BeIdenticalTo(screen))
		Expect(flexedView.FlushedTo).To(BeIdenticalTo(screen))
	})
})
