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

package link_test

import (
	"fmt"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"k8s.io/utils/pointer"

	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/chart/link"
)

// resolveAll runs both propagation modes over every axis, with the usage
// phase in between, the way a render pass does.
func resolveAll(reg registry, log *axis.Log, axes ...*axis.Axis) {
	for _, ax := range axes {
		link.ResolveRange(reg, ax, link.PropagateHardBounds, log)
	}
	for _, ax := range axes {
		link.BackPropagate(reg, ax, log)
	}
	for _, ax := range axes {
		link.ResolveRange(reg, ax, link.PropagateRange, log)
	}
}

var _ = Describe("Linked axes", func() {
	var (
		reg     registry
		log     *axis.Log
		a, b, c *axis.Axis
	)

	BeforeEach(func() {
		reg = registry{}
		log = &axis.Log{}
		a = reg.add("left", "x1")
		b = reg.add("middle", "x1")
		c = reg.add("right", "x1")
	})

	Describe("walking a chain", func() {
		It("should stop at an unlinked axis", func() {
			chain, anomaly := link.Chain(reg, a)
			Expect(anomaly).To(BeNil())
			Expect(chain).To(Equal([]*axis.Axis{a}))
		})

		It("should follow every link to the canonical source", func() {
			linkTo(a, b)
			linkTo(b, c)
			chain, anomaly := link.Chain(reg, a)
			Expect(anomaly).To(BeNil())
			Expect(chain).To(Equal([]*axis.Axis{a, b, c}))
			Expect(link.Source(reg, a, log)).To(BeIdenticalTo(c))
		})

		It("should report a dangling link against the linking axis", func() {
			a.LinkTo = &axis.ID{Chart: "nowhere", Axis: "y2"}
			chain, anomaly := link.Chain(reg, a)
			Expect(chain).To(Equal([]*axis.Axis{a}))
			Expect(anomaly).NotTo(BeNil())
			Expect(anomaly.Kind).To(Equal(axis.AxisNotFound))
			Expect(anomaly.Axis).To(Equal(a.ID()))
		})

		It("should stop at a cycle", func() {
			linkTo(a, b)
			linkTo(b, a)
			chain, anomaly := link.Chain(reg, a)
			Expect(chain).To(Equal([]*axis.Axis{a, b}))
			Expect(anomaly).NotTo(BeNil())
			Expect(anomaly.Kind).To(Equal(axis.LinkCycle))
		})

		It("should stop at an axis linked to itself", func() {
			linkTo(a, a)
			chain, anomaly := link.Chain(reg, a)
			Expect(chain).To(HaveLen(1))
			Expect(anomaly.Kind).To(Equal(axis.LinkCycle))
		})

		It("should give up after too many hops", func() {
			prev := a
			for i := 0; i < 2*link.MaxHops; i++ {
				next := reg.add(fmt.Sprintf("g%d", i), "y1")
				linkTo(prev, next)
				prev = next
			}
			chain, anomaly := link.Chain(reg, a)
			Expect(chain).To(HaveLen(link.MaxHops + 1))
			Expect(anomaly.Kind).To(Equal(axis.LinkDepthExceeded))
		})
	})

	Describe("propagating hard bounds", func() {
		It("should copy the source's hard bounds to unvisited links", func() {
			linkTo(a, b)
			b.HardMin, b.HardMax = pointer.Float64(5), pointer.Float64(15)
			b.Reset()

			link.ResolveRange(reg, a, link.PropagateHardBounds, log)
			min, max := a.EffectiveHardBounds()
			Expect(*min).To(Equal(5.0))
			Expect(*max).To(Equal(15.0))
			Expect(a.State()).To(Equal(axis.UsageCollected))
			Expect(b.State()).To(Equal(axis.UsageCollected))

			By("filtering usage against the propagated bounds")
			Expect(a.InRange(20)).To(BeFalse())
			Expect(a.InRange(10)).To(BeTrue())
		})

		It("should not override bounds once usage has started", func() {
			linkTo(a, b)
			b.HardMin = pointer.Float64(5)
			b.Reset()
			a.BeginUsage()

			link.ResolveRange(reg, a, link.PropagateHardBounds, log)
			min, _ := a.EffectiveHardBounds()
			Expect(min).To(BeNil())
		})
	})

	Describe("back-propagating usage", func() {
		It("should widen every downstream axis", func() {
			linkTo(a, b)
			linkTo(b, c)
			a.IncludePoint(0)
			a.IncludePoint(50)
			b.IncludePoint(10)
			b.IncludePoint(20)

			link.BackPropagate(reg, a, log)
			for _, ax := range []*axis.Axis{b, c} {
				min, max, ok := ax.Usage()
				Expect(ok).To(BeTrue())
				Expect(min).To(Equal(0.0))
				Expect(max).To(Equal(50.0))
			}
		})

		It("should only hand positive usage to a log axis", func() {
			linkTo(a, b)
			b.Scale = axis.Logarithmic
			b.Reset()
			a.IncludePoint(-5)
			a.IncludePoint(50)

			link.BackPropagate(reg, a, log)
			min, max, ok := b.Usage()
			Expect(ok).To(BeTrue())
			Expect(min).To(Equal(50.0))
			Expect(max).To(Equal(50.0))
		})

		It("should do nothing for an axis without usage", func() {
			linkTo(a, b)
			link.BackPropagate(reg, a, log)
			_, _, ok := b.Usage()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("propagating the final range", func() {
		It("should give every axis of a chain the same range and ticks", func() {
			linkTo(a, b)
			linkTo(b, c)
			a.IncludePoint(12)
			a.IncludePoint(47)
			c.IncludePoint(3)

			resolveAll(reg, log, a, b, c)
			Expect(log.Len()).To(BeZero())

			want, ok := c.Range()
			Expect(ok).To(BeTrue())
			Expect(want.Min).To(BeNumerically("<=", 3))
			Expect(want.Max).To(BeNumerically(">=", 47))
			for _, ax := range []*axis.Axis{a, b} {
				got, ok := ax.Range()
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(want))
				Expect(ax.Ticks()).To(Equal(c.Ticks()))
			}
		})

		It("should not depend on the order axes are visited in", func() {
			linkTo(a, b)
			linkTo(b, c)
			a.IncludePoint(1)
			a.IncludePoint(90)

			resolveAll(reg, log, b, c, a)
			ra, _ := a.Range()
			rb, _ := b.Range()
			rc, _ := c.Range()
			Expect(ra).To(Equal(rc))
			Expect(rb).To(Equal(rc))
			Expect(ra.Max).To(BeNumerically(">=", 90))
		})

		It("should carry the source's scale to its links", func() {
			linkTo(a, b)
			b.Scale = axis.Logarithmic
			b.Reset()
			b.IncludePoint(2)
			b.IncludePoint(2000)

			resolveAll(reg, log, a, b)
			Expect(a.EffectiveScale()).To(Equal(axis.Logarithmic))
			Expect(a.GetPosition(100, false)).To(BeNumerically("~", 0.5, 1e-9))
		})

		It("should stop walking at an axis resolved by an earlier call", func() {
			linkTo(a, b)
			linkTo(b, c)
			b.IncludePoint(4)
			b.IncludePoint(36)
			b.Resolve(log)
			b.FinalizeTicks(log)

			link.ResolveRange(reg, a, link.PropagateRange, log)
			Expect(c.Resolved()).To(BeFalse())
			ra, ok := a.Range()
			Expect(ok).To(BeTrue())
			rb, _ := b.Range()
			Expect(ra).To(Equal(rb))
			Expect(a.Ticks()).To(Equal(b.Ticks()))
		})

		It("should leave an axis alone once its downstream call resolved it", func() {
			linkTo(a, b)
			linkTo(b, c)
			c.IncludePoint(5)
			c.IncludePoint(55)

			link.ResolveRange(reg, b, link.PropagateRange, log)
			Expect(a.Resolved()).To(BeFalse())
			rb, _ := b.Range()

			link.ResolveRange(reg, a, link.PropagateRange, log)
			ra, ok := a.Range()
			Expect(ok).To(BeTrue())
			Expect(ra).To(Equal(rb))
			again, _ := b.Range()
			Expect(again).To(Equal(rb))
		})

		It("should terminate on a cycle, log it, and still resolve every axis", func() {
			linkTo(a, b)
			linkTo(b, a)
			a.IncludePoint(7)

			resolveAll(reg, log, a, b)
			Expect(log.Has(axis.LinkCycle)).To(BeTrue())
			ra, okA := a.Range()
			rb, okB := b.Range()
			Expect(okA && okB).To(BeTrue())
			Expect(ra).To(Equal(rb))
		})

		It("should resolve an axis with a dangling link by itself", func() {
			a.LinkTo = &axis.ID{Chart: "nowhere", Axis: "x1"}
			a.IncludePoint(3)
			a.IncludePoint(9)

			resolveAll(reg, log, a)
			Expect(log.Has(axis.AxisNotFound)).To(BeTrue())
			Expect(log.String()).To(ContainSubstring("Axis linked to axis x1 which doesn't exist."))
			Expect(a.Resolved()).To(BeTrue())
			Expect(a.Ticks()).NotTo(BeNil())
		})
	})
})
