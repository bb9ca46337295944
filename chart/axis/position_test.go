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
	"math"

	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"k8s.io/utils/pointer"

	"sigs.k8s.io/chartkit/chart/axis"
)

var _ = Describe("Mapping values onto an axis", func() {
	var ax *axis.Axis
	BeforeEach(func() {
		ax = axis.New(axis.ID{Chart: "main", Axis: "x1"})
	})

	It("should refuse to map anything before the range is resolved", func() {
		Expect(math.IsNaN(ax.GetPosition(1, true))).To(BeTrue())
		Expect(math.IsNaN(ax.InvGetPosition(0.5))).To(BeTrue())
	})

	Context("on a linear axis", func() {
		BeforeEach(func() {
			ax.HardMin, ax.HardMax = pointer.Float64(0), pointer.Float64(10)
			ax.Reset()
			resolved(ax)
		})

		It("should map the bounds to zero and one", func() {
			Expect(ax.GetPosition(0, false)).To(Equal(0.0))
			Expect(ax.GetPosition(10, false)).To(Equal(1.0))
			Expect(ax.GetPosition(2.5, false)).To(BeNumerically("~", 0.25, 1e-12))
		})

		It("should only map values off the axis when asked to", func() {
			Expect(math.IsNaN(ax.GetPosition(11, false))).To(BeTrue())
			Expect(ax.GetPosition(11, true)).To(BeNumerically("~", 1.1, 1e-12))
		})

		It("should invert positions back to values", func() {
			for _, v := range []float64{0, 1.5, 3, 7.25, 10} {
				Expect(ax.InvGetPosition(ax.GetPosition(v, false))).To(BeNumerically("~", v, 1e-9))
			}
		})
	})

	Context("on a reversed axis", func() {
		BeforeEach(func() {
			ax.RangeReversed = true
			ax.IncludePoint(0)
			ax.IncludePoint(10)
			resolved(ax)
		})

		It("should put the largest value at position zero", func() {
			res, _ := ax.Range()
			Expect(res.Min).To(Equal(10.0))
			Expect(res.Max).To(Equal(0.0))
			Expect(ax.GetPosition(10, false)).To(Equal(0.0))
			Expect(ax.GetPosition(0, false)).To(Equal(1.0))
		})

		It("should still accept values between the bounds", func() {
			Expect(ax.GetPosition(4, false)).To(BeNumerically("~", 0.6, 1e-12))
		})
	})

	Context("on a logarithmic axis", func() {
		BeforeEach(func() {
			ax.Scale = axis.Logarithmic
			ax.HardMin, ax.HardMax = pointer.Float64(1), pointer.Float64(1000)
			ax.Reset()
			resolved(ax)
		})

		It("should space decades evenly", func() {
			Expect(ax.GetPosition(10, false)).To(BeNumerically("~", 1.0/3, 1e-12))
			Expect(ax.GetPosition(100, false)).To(BeNumerically("~", 2.0/3, 1e-12))
		})

		It("should not map non-positive values", func() {
			Expect(math.IsNaN(ax.GetPosition(0, true))).To(BeTrue())
			Expect(math.IsNaN(ax.GetPosition(-5, true))).To(BeTrue())
		})

		It("should invert positions multiplicatively", func() {
			Expect(ax.InvGetPosition(0.5)).To(BeNumerically("~", math.Sqrt(1000), 1e-9))
			for _, v := range []float64{1, 2, 31, 999} {
				Expect(ax.InvGetPosition(ax.GetPosition(v, false))).To(BeNumerically("~", v, 1e-9*v))
			}
		})
	})
})

var _ = Describe("Collecting usage", func() {
	var ax *axis.Axis
	BeforeEach(func() {
		ax = axis.New(axis.ID{Chart: "main", Axis: "y1"})
	})

	It("should ignore non-finite values", func() {
		ax.IncludePoint(math.NaN())
		ax.IncludePoint(math.Inf(1))
		_, _, ok := ax.Usage()
		Expect(ok).To(BeFalse())
	})

	It("should not depend on the order points arrive in", func() {
		other := axis.New(axis.ID{Chart: "main", Axis: "y2"})
		for _, v := range []float64{5, -2, 9, 3} {
			ax.IncludePoint(v)
		}
		for _, v := range []float64{3, 9, 9, -2, 5} {
			other.IncludePoint(v)
		}
		min, max, _ := ax.Usage()
		otherMin, otherMax, _ := other.Usage()
		Expect(min).To(Equal(otherMin))
		Expect(max).To(Equal(otherMax))
		Expect(min).To(Equal(-2.0))
		Expect(max).To(Equal(9.0))
	})

	It("should ignore non-positive values on log axes", func() {
		ax.Scale = axis.Logarithmic
		ax.IncludePoint(0)
		ax.IncludePoint(-3)
		ax.IncludePoint(4)
		min, max, ok := ax.Usage()
		Expect(ok).To(BeTrue())
		Expect(min).To(Equal(4.0))
		Expect(max).To(Equal(4.0))
	})

	It("should forget usage on reset", func() {
		ax.IncludePoint(3)
		ax.Reset()
		_, _, ok := ax.Usage()
		Expect(ok).To(BeFalse())
		Expect(ax.State()).To(Equal(axis.Unvisited))
	})
})

var _ = Describe("Checking whether a value is in range", func() {
	var ax *axis.Axis
	BeforeEach(func() {
		ax = axis.New(axis.ID{Chart: "main", Axis: "x1"})
	})

	table.DescribeTable("with different bounds configured",
		func(min, max *float64, reversed bool, v float64, expected bool) {
			ax.HardMin, ax.HardMax = min, max
			ax.RangeReversed = reversed
			ax.Reset()
			Expect(ax.InRange(v)).To(Equal(expected))
		},
		table.Entry("inside both bounds", pointer.Float64(0), pointer.Float64(10), false, 5.0, true),
		table.Entry("on a bound", pointer.Float64(0), pointer.Float64(10), false, 10.0, true),
		table.Entry("outside both bounds", pointer.Float64(0), pointer.Float64(10), false, 11.0, false),
		table.Entry("bounds given backwards", pointer.Float64(10), pointer.Float64(0), false, 5.0, true),
		table.Entry("above a lone minimum", pointer.Float64(5), nil, false, 6.0, true),
		table.Entry("at a lone minimum", pointer.Float64(5), nil, false, 5.0, false),
		table.Entry("below a lone maximum", nil, pointer.Float64(5), false, 4.0, true),
		table.Entry("a lone minimum on a reversed axis", pointer.Float64(5), nil, true, 4.0, true),
		table.Entry("no bounds at all", nil, nil, false, -1e300, true),
	)

	It("should fall back to the scroll bounds when clamping scrolls", func() {
		ax.ScrollEnabled = true
		ax.ScrollMin, ax.ScrollMax = pointer.Float64(0), pointer.Float64(1)
		Expect(ax.InRange(0.5)).To(BeTrue())
		Expect(ax.InRange(2)).To(BeFalse())
	})

	It("should use hard bounds propagated from a link source", func() {
		Expect(ax.AdoptHardBounds(pointer.Float64(0), pointer.Float64(1))).To(BeTrue())
		Expect(ax.InRange(2)).To(BeFalse())
		Expect(ax.State()).To(Equal(axis.UsageCollected))

		By("only accepting propagated bounds once per pass")
		Expect(ax.AdoptHardBounds(nil, nil)).To(BeFalse())
		Expect(ax.InRange(2)).To(BeFalse())
	})
})

var _ = Describe("Scrolling and zooming", func() {
	var ax *axis.Axis
	BeforeEach(func() {
		ax = axis.New(axis.ID{Chart: "main", Axis: "x1"})
		ax.HardMin, ax.HardMax = pointer.Float64(0), pointer.Float64(10)
		ax.Reset()
		resolved(ax)
	})

	It("should shift the hard bounds by a fraction of the range", func() {
		Expect(ax.Scroll(0.5)).To(BeTrue())
		Expect(*ax.HardMin).To(BeNumerically("~", 5, 1e-12))
		Expect(*ax.HardMax).To(BeNumerically("~", 15, 1e-12))
	})

	It("should keep scrolling within the scroll bounds", func() {
		ax.ScrollEnabled = true
		ax.ScrollMax = pointer.Float64(12)
		Expect(ax.Scroll(0.5)).To(BeTrue())
		Expect(*ax.HardMin).To(BeNumerically("~", 2, 1e-12))
		Expect(*ax.HardMax).To(BeNumerically("~", 12, 1e-12))
	})

	It("should narrow the range around the zoom center", func() {
		Expect(ax.Zoom(2, 0.5)).To(BeTrue())
		Expect(*ax.HardMin).To(BeNumerically("~", 2.5, 1e-12))
		Expect(*ax.HardMax).To(BeNumerically("~", 7.5, 1e-12))
	})

	It("should not zoom when zooming is disabled", func() {
		ax.ZoomEnabled = false
		Expect(ax.Zoom(2, 0.5)).To(BeFalse())
		Expect(*ax.HardMax).To(Equal(10.0))
	})
})
