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

package axis_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"k8s.io/utils/pointer"

	"sigs.k8s.io/chartkit/chart/axis"
)

var _ = Describe("The linear planner", func() {
	var ax *axis.Axis
	BeforeEach(func() {
		ax = axis.New(axis.ID{Chart: "main", Axis: "x1"})
	})

	Context("when resolving the range", func() {
		It("should default to zero to ten without any data", func() {
			log := resolved(ax)
			res, ok := ax.Range()
			Expect(ok).To(BeTrue())
			Expect(res.Min).To(Equal(0.0))
			Expect(res.Max).To(Equal(10.0))
			Expect(log.Len()).To(BeZero())
			Expect(ax.State()).To(Equal(axis.RangeResolved))
		})

		It("should cover all the data it was given", func() {
			for _, v := range []float64{12, 47, 3} {
				ax.IncludePoint(v)
			}
			resolved(ax)
			res, _ := ax.Range()
			Expect(res.Min).To(BeNumerically("<=", 3))
			Expect(res.Max).To(BeNumerically(">=", 47))
			expectWellFormedTicks(ax)

			By("placing major ticks on round values")
			for _, t := range ax.Ticks().Major {
				Expect(int(t.Value) % 5).To(BeZero())
			}
			Expect(values(ax.Ticks().Major)).To(Equal([]float64{10, 20, 30, 40}))
			Expect(labels(ax.Ticks().Major)).To(Equal([]string{"10", "20", "30", "40"}))
		})

		It("should round data bounds outward to the order of magnitude of the span", func() {
			ax.IncludePoint(0.13)
			ax.IncludePoint(9.87)
			resolved(ax)
			res, _ := ax.Range()
			Expect(res.Min).To(Equal(0.0))
			Expect(res.Max).To(Equal(10.0))
		})

		It("should extend a lone hard minimum by twenty", func() {
			ax.HardMin = pointer.Float64(5)
			ax.Reset()
			resolved(ax)
			res, _ := ax.Range()
			Expect(res.Min).To(Equal(5.0))
			Expect(res.Max).To(Equal(25.0))
		})

		It("should keep a lone hard maximum when the data lies beyond it", func() {
			ax.HardMax = pointer.Float64(10)
			ax.Reset()
			ax.IncludePoint(50)
			resolved(ax)
			res, _ := ax.Range()
			Expect(res.Max).To(Equal(10.0))
			Expect(res.Min).To(Equal(-10.0))
			expectWellFormedTicks(ax)
		})

		It("should keep a lone hard minimum when the data lies below it", func() {
			ax.HardMin = pointer.Float64(0)
			ax.Reset()
			ax.IncludePoint(-30)
			resolved(ax)
			res, _ := ax.Range()
			Expect(res.Min).To(Equal(0.0))
			Expect(res.Max).To(Equal(20.0))
		})

		It("should keep hard bounds exactly, even when they aren't round", func() {
			ax.HardMin, ax.HardMax = pointer.Float64(0.3), pointer.Float64(9.7)
			ax.Reset()
			ax.IncludePoint(5)
			resolved(ax)
			res, _ := ax.Range()
			Expect(res.Min).To(Equal(0.3))
			Expect(res.Max).To(Equal(9.7))
			expectWellFormedTicks(ax)
		})

		It("should widen a zero-width range from data", func() {
			ax.IncludePoint(4)
			log := resolved(ax)
			res, _ := ax.Range()
			Expect(res.Min).To(BeNumerically("<", 4))
			Expect(res.Max).To(BeNumerically(">", 4))
			Expect(log.Len()).To(BeZero())
		})

		It("should ignore a zero-width hard range, and say so", func() {
			ax.HardMin, ax.HardMax = pointer.Float64(3), pointer.Float64(3)
			ax.Reset()
			log := resolved(ax)
			res, _ := ax.Range()
			Expect(res.Min).NotTo(Equal(res.Max))
			Expect(res.Min).To(BeNumerically("<", 3))
			Expect(res.Max).To(BeNumerically(">", 3))
			Expect(log.Has(axis.DegenerateRange)).To(BeTrue())
			Expect(log.String()).To(ContainSubstring("Axis range set to zero. Ignoring manually set range."))
		})

		It("should swap the final bounds of a reversed axis", func() {
			ax.RangeReversed = true
			ax.IncludePoint(1)
			ax.IncludePoint(9)
			resolved(ax)
			res, _ := ax.Range()
			Expect(res.Min).To(BeNumerically(">", res.Max))
			expectWellFormedTicks(ax)
		})

		It("should only resolve once per pass", func() {
			ax.IncludePoint(1)
			ax.IncludePoint(9)
			resolved(ax)
			before, _ := ax.Range()
			ax.IncludePoint(1000)
			resolved(ax)
			after, _ := ax.Range()
			Expect(after).To(Equal(before))
		})
	})

	Context("when placing ticks automatically", func() {
		It("should pick the finest round spacing within the target", func() {
			resolved(ax)
			Expect(values(ax.Ticks().Major)).To(Equal([]float64{0, 2, 4, 6, 8, 10}))
			expectWellFormedTicks(ax)
		})

		It("should respect a smaller target", func() {
			ax.TargetMajorTickCount = 3
			resolved(ax)
			Expect(values(ax.Ticks().Major)).To(Equal([]float64{0, 5, 10}))
		})

		It("should leave automatic minor ticks unlabelled", func() {
			resolved(ax)
			Expect(ax.Ticks().Minor).NotTo(BeEmpty())
			for _, t := range ax.Ticks().Minor {
				Expect(t.Label).To(BeEmpty())
			}
		})

		It("should handle ranges straddling zero", func() {
			ax.IncludePoint(-0.37)
			ax.IncludePoint(0.52)
			resolved(ax)
			expectWellFormedTicks(ax)
			Expect(values(ax.Ticks().Major)).To(ContainElement(0.0))
			Expect(labels(ax.Ticks().Major)).To(ContainElement("0"))
		})

		It("should never exceed the tick cap, whatever the target", func() {
			ax.TargetMajorTickCount = 100000
			ax.TargetMinorTickCount = 100000
			ax.IncludePoint(0)
			ax.IncludePoint(1234.5)
			resolved(ax)
			Expect(len(ax.Ticks().Major)).To(BeNumerically("<=", axis.MaxTicks))
			Expect(len(ax.Ticks().Minor)).To(BeNumerically("<=", axis.MaxTicks))
			expectWellFormedTicks(ax)
		})

		It("should cope with tiny spans far from zero", func() {
			ax.IncludePoint(1e6)
			ax.IncludePoint(1e6 + 0.003)
			resolved(ax)
			expectWellFormedTicks(ax)
			Expect(len(ax.Ticks().Major)).To(BeNumerically(">=", 2))
		})
	})

	Context("when given a tick spec", func() {
		BeforeEach(func() {
			ax.HardMin, ax.HardMax = pointer.Float64(0), pointer.Float64(10)
			ax.Reset()
		})

		It("should use explicit ticks within the range, in order", func() {
			ax.MajorTicks = axis.ExplicitTicks(
				axis.Tick{Value: 7, Label: "seven"},
				axis.Tick{Value: 2, Label: "two"},
				axis.Tick{Value: 12, Label: "twelve"},
				axis.Tick{Value: 2, Label: "again"},
			)
			resolved(ax)
			Expect(ax.Ticks().Major).To(Equal([]axis.Tick{
				{Value: 2, Label: "two"},
				{Value: 7, Label: "seven"},
			}))
		})

		It("should step from the first step at or after the minimum", func() {
			ax.MajorTicks = axis.SteppedTicks(-4, 3)
			resolved(ax)
			Expect(values(ax.Ticks().Major)).To(Equal([]float64{2, 5, 8}))
		})

		It("should snap stepped ticks near zero onto zero", func() {
			ax.HardMin, ax.HardMax = pointer.Float64(-1), pointer.Float64(1)
			ax.Reset()
			ax.MajorTicks = axis.SteppedTicks(-0.3, 0.1)
			resolved(ax)
			Expect(ax.Ticks().Major[3].Value).To(Equal(0.0))
			Expect(ax.Ticks().Major[3].Label).To(Equal("0"))
		})

		It("should cap stepped ticks", func() {
			ax.MajorTicks = axis.SteppedTicks(0, 0.001)
			resolved(ax)
			Expect(ax.Ticks().Major).To(HaveLen(axis.MaxSteppedTicks))
		})

		It("should fall back to automatic ticks for a non-positive step", func() {
			ax.MajorTicks = axis.SteppedTicks(0, -1)
			log := resolved(ax)
			Expect(log.Has(axis.InvalidTickSpec)).To(BeTrue())
			Expect(values(ax.Ticks().Major)).To(Equal([]float64{0, 2, 4, 6, 8, 10}))
		})
	})
})
