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

package chart_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
)

type recordingObserver struct {
	anomalies []axis.AnomalyKind
	passes    int
}

func (r *recordingObserver) Anomaly(a axis.Anomaly) {
	r.anomalies = append(r.anomalies, a.Kind)
}

func (r *recordingObserver) Prepared(*chart.Canvas, time.Duration) {
	r.passes++
}

var _ = Describe("A canvas", func() {
	var c *chart.Canvas
	BeforeEach(func() {
		c = chart.NewCanvas()
	})

	It("should refuse duplicate and empty names", func() {
		mustAdd(c, chart.NewGraph("main"))
		Expect(c.Add(chart.NewGraph("main"))).NotTo(Succeed())
		Expect(c.Add(chart.NewText("", "hi", 0, 0))).NotTo(Succeed())
	})

	It("should keep items in the order they were added", func() {
		mustAdd(c, chart.NewGraph("b"), chart.NewText("note", "hi", 0, 0), chart.NewGraph("a"))
		var names []string
		for _, item := range c.Items() {
			names = append(names, item.Name())
		}
		Expect(names).To(Equal([]string{"b", "note", "a"}))
		Expect(c.Graphs()).To(HaveLen(2))

		c.Remove("note")
		Expect(c.Items()).To(HaveLen(2))
		_, ok := c.Item("note")
		Expect(ok).To(BeFalse())
	})

	Describe("looking up axes", func() {
		BeforeEach(func() {
			mustAdd(c, chart.NewGraph("main"), chart.NewText("notes", "hello", 10, 10))
		})

		It("should find the axes of graphs", func() {
			ax, err := c.LookupAxis(axis.ID{Chart: "main", Axis: "y2"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ax.ID()).To(Equal(axis.ID{Chart: "main", Axis: "y2"}))
		})

		It("should say why an axis couldn't be found", func() {
			_, err := c.LookupAxis(axis.ID{Chart: "ghost", Axis: "x1"})
			Expect(err).To(MatchError("Axis linked to plot ghost which doesn't exist."))

			_, err = c.LookupAxis(axis.ID{Chart: "notes", Axis: "x1"})
			Expect(err).To(MatchError("Axis linked to plot notes which is not a graph."))

			_, err = c.LookupAxis(axis.ID{Chart: "main", Axis: "x7"})
			Expect(err).To(MatchError("Axis linked to axis x7 which doesn't exist."))
			anomaly, ok := err.(*axis.Anomaly)
			Expect(ok).To(BeTrue())
			Expect(anomaly.Kind).To(Equal(axis.AxisNotFound))
		})
	})

	Describe("preparing", func() {
		It("should resolve and tick every axis", func() {
			g := graphWith("main", []float64{12, 1}, []float64{47, 2}, []float64{3, 3})
			mustAdd(c, g)
			Expect(c.Dirty()).To(BeTrue())

			log := c.Prepare()
			Expect(log.Len()).To(BeZero())
			Expect(c.Dirty()).To(BeFalse())
			for _, ax := range g.Axes() {
				Expect(ax.State()).To(Equal(axis.RangeResolved))
				Expect(ax.Ticks()).NotTo(BeNil())
			}

			x := rangeOf(g, "x1")
			Expect(x.Min).To(BeNumerically("<=", 3))
			Expect(x.Max).To(BeNumerically(">=", 47))
			var majors []float64
			for _, t := range g.Axis("x1").Ticks().Major {
				majors = append(majors, t.Value)
			}
			Expect(majors).To(Equal([]float64{10, 20, 30, 40}))
		})

		It("should compute the page bounds of its items", func() {
			g := chart.NewGraph("main")
			g.Origin = [2]float64{10, 20}
			mustAdd(c, g, chart.NewText("note", "hi", -5, 0))
			c.Prepare()
			b := c.Bounds()
			Expect(b.MinX).To(Equal(-5.0))
			Expect(b.MinY).To(Equal(0.0))
			Expect(b.MaxX).To(Equal(410.0))
			Expect(b.MaxY).To(BeNumerically("~", 20+400*chart.GoldenAspect, 1e-9))
		})

		It("should give linked axes on different graphs the same range", func() {
			top := graphWith("top", []float64{0, 1}, []float64{100, 2})
			bottom := graphWith("bottom", []float64{50, 1}, []float64{150, 2})
			linkAxis(top, "x1", "bottom", "x1")
			mustAdd(c, top, bottom)

			log := c.Prepare()
			Expect(log.Len()).To(BeZero())
			Expect(rangeOf(top, "x1")).To(Equal(rangeOf(bottom, "x1")))
			Expect(rangeOf(bottom, "x1").Min).To(Equal(0.0))
			Expect(rangeOf(bottom, "x1").Max).To(Equal(150.0))
			Expect(top.Axis("x1").Ticks()).To(Equal(bottom.Axis("x1").Ticks()))
		})

		It("should not depend on which graph was added first", func() {
			top := graphWith("top", []float64{0, 1}, []float64{100, 2})
			bottom := graphWith("bottom", []float64{50, 1}, []float64{150, 2})
			linkAxis(top, "x1", "bottom", "x1")
			mustAdd(c, bottom, top)

			c.Prepare()
			Expect(rangeOf(top, "x1")).To(Equal(rangeOf(bottom, "x1")))
			Expect(rangeOf(top, "x1").Max).To(Equal(150.0))
		})

		It("should log broken links and still resolve everything", func() {
			g := graphWith("main", []float64{1, 1}, []float64{9, 2})
			linkAxis(g, "x2", "ghost", "x1")
			linkAxis(g, "y2", "notes", "y1")
			mustAdd(c, g, chart.NewText("notes", "hello", 0, 0))

			log := c.Prepare()
			Expect(log.Has(axis.ChartNotFound)).To(BeTrue())
			Expect(log.Has(axis.NotAGraph)).To(BeTrue())
			Expect(log.String()).To(ContainSubstring("Axis linked to plot ghost which doesn't exist."))
			Expect(log.String()).To(ContainSubstring("Axis linked to plot notes which is not a graph."))
			for _, ax := range g.Axes() {
				Expect(ax.Resolved()).To(BeTrue())
			}
		})

		It("should terminate on cyclic links", func() {
			a := graphWith("a", []float64{1, 1}, []float64{4, 2})
			b := graphWith("b")
			linkAxis(a, "x1", "b", "x1")
			linkAxis(b, "x1", "a", "x1")
			mustAdd(c, a, b)

			log := c.Prepare()
			Expect(log.Has(axis.LinkCycle)).To(BeTrue())
			Expect(rangeOf(a, "x1")).To(Equal(rangeOf(b, "x1")))
		})

		It("should tell its observer about anomalies and passes", func() {
			obs := &recordingObserver{}
			c.Observer = obs
			g := graphWith("main")
			linkAxis(g, "x2", "ghost", "x1")
			mustAdd(c, g)

			c.Prepare()
			c.Prepare()
			Expect(obs.passes).To(Equal(2))
			Expect(obs.anomalies).To(Equal([]axis.AnomalyKind{axis.ChartNotFound, axis.ChartNotFound}))
		})

		It("should mark linked secondary axes as active", func() {
			g := graphWith("main", []float64{1, 1})
			linkAxis(g, "x2", "main", "x1")
			g.Axis("y2").Label = "rate"
			g.Axis("y1").Hidden = true
			mustAdd(c, g)

			c.Prepare()
			Expect(g.ActiveAxes()).To(Equal([]string{"x1", "x2", "y2"}))
		})
	})
})
