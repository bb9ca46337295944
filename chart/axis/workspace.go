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

package axis

import (
	"fmt"
	"math"
)

// State is the position of an axis in its per-pass lifecycle.  It only ever
// moves forward until the next Reset.
type State int

const (
	// Unvisited axes have a fresh workspace.
	Unvisited State = iota
	// UsageCollected axes have seen their effective hard bounds (either
	// their own or propagated from a link source) and may accumulate usage.
	UsageCollected
	// RangeResolved axes have a final, immutable range.
	RangeResolved
)

func (s State) String() string {
	switch s {
	case Unvisited:
		return "Unvisited"
	case UsageCollected:
		return "UsageCollected"
	case RangeResolved:
		return "RangeResolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Resolution is the final range of an axis.  Min may exceed Max when the
// axis is reversed.
type Resolution struct {
	Min, Max float64
	Scale    Scale
}

// Span is the unsigned width of the range.
func (r Resolution) Span() float64 {
	return math.Abs(r.Max - r.Min)
}

// Bounds returns the range sorted low to high.
func (r Resolution) Bounds() (lo, hi float64) {
	if r.Min <= r.Max {
		return r.Min, r.Max
	}
	return r.Max, r.Min
}

// Workspace is the scratch state of one render pass.
type Workspace struct {
	state State

	hardMin, hardMax *float64

	used             bool
	usedMin, usedMax float64

	planner TickPlanner

	resolution *Resolution
	ticks      *TickSet

	targetMajor, targetMinor int
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Reset discards the workspace, putting the axis back in the Unvisited
// state with its configured hard bounds and planner.
func (a *Axis) Reset() {
	a.ws = Workspace{
		hardMin: copyFloat(a.HardMin),
		hardMax: copyFloat(a.HardMax),
		planner: PlannerFor(a.Scale),
	}
}

func (a *Axis) State() State {
	return a.ws.state
}

// IncludePoint widens the usage of the axis to cover v.  Non-finite values,
// and non-positive values on log axes, are ignored.
func (a *Axis) IncludePoint(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if a.Logarithmic() && v <= 0 {
		return
	}
	a.WidenUsage(v, v)
}

// WidenUsage merges [min, max] into the usage of the axis.
func (a *Axis) WidenUsage(min, max float64) {
	if !a.ws.used {
		a.ws.used = true
		a.ws.usedMin, a.ws.usedMax = min, max
		return
	}
	if min < a.ws.usedMin {
		a.ws.usedMin = min
	}
	if max > a.ws.usedMax {
		a.ws.usedMax = max
	}
}

// Usage reports the accumulated usage, if there is any.
func (a *Axis) Usage() (min, max float64, ok bool) {
	return a.ws.usedMin, a.ws.usedMax, a.ws.used
}

// EffectiveHardBounds returns the hard bounds in force for this pass,
// which may have been propagated from a link source.
func (a *Axis) EffectiveHardBounds() (min, max *float64) {
	return copyFloat(a.ws.hardMin), copyFloat(a.ws.hardMax)
}

// AdoptHardBounds replaces the effective hard bounds with those of a link
// source and marks the usage phase as started.  It only has an effect on
// Unvisited axes, and reports whether it did anything.
func (a *Axis) AdoptHardBounds(min, max *float64) bool {
	if a.ws.state != Unvisited {
		return false
	}
	a.ws.hardMin = copyFloat(min)
	a.ws.hardMax = copyFloat(max)
	a.ws.state = UsageCollected
	return true
}

// BeginUsage moves an Unvisited axis to UsageCollected, keeping its own
// hard bounds.
func (a *Axis) BeginUsage() bool {
	if a.ws.state != Unvisited {
		return false
	}
	a.ws.state = UsageCollected
	return true
}

// Resolved reports whether the range has been finalized this pass.
func (a *Axis) Resolved() bool {
	return a.ws.resolution != nil
}

// Range returns the final range.  ok is false until the axis is resolved.
func (a *Axis) Range() (r Resolution, ok bool) {
	if a.ws.resolution == nil {
		return Resolution{}, false
	}
	return *a.ws.resolution, true
}

// Resolve finalizes the range using the axis's own planner.  It does
// nothing if the range is already final.
func (a *Axis) Resolve(log *Log) {
	if a.ws.resolution != nil {
		return
	}
	res := a.ws.planner.ResolveRange(a, log)
	a.setResolution(res)
}

// AdoptRange finalizes the range by copying it, scale included, from a
// resolved link source.  It does nothing (and returns false) if either this
// axis is already resolved or the source is not.
func (a *Axis) AdoptRange(src *Axis) bool {
	if a.ws.resolution != nil || src.ws.resolution == nil {
		return false
	}
	res := *src.ws.resolution
	if res.Scale != a.ws.planner.Scale() {
		a.ws.planner = PlannerFor(res.Scale)
	}
	a.setResolution(res)
	return true
}

func (a *Axis) setResolution(res Resolution) {
	a.ws.resolution = &res
	a.ws.state = RangeResolved
}

// EffectiveScale is the scale the axis resolves with this pass; linked axes
// take the scale of their source.
func (a *Axis) EffectiveScale() Scale {
	if a.ws.resolution != nil {
		return a.ws.resolution.Scale
	}
	return a.ws.planner.Scale()
}

// Ticks returns the final tick set, or nil if ticks haven't been placed.
func (a *Axis) Ticks() *TickSet {
	return a.ws.ticks
}

// FinalizeTicks places the major and then minor ticks, if they haven't been
// placed yet.  The range must already be resolved.
func (a *Axis) FinalizeTicks(log *Log) {
	if a.ws.ticks != nil || a.ws.resolution == nil {
		return
	}
	major := a.ws.planner.PlaceTicks(a, TickRequest{
		Level:  MajorTick,
		Spec:   a.MajorTicks,
		Target: clampTarget(a.targetCount(MajorTick)),
	}, log)
	minor := a.ws.planner.PlaceTicks(a, TickRequest{
		Level:  MinorTick,
		Spec:   a.MinorTicks,
		Target: clampTarget(a.targetCount(MinorTick)),
		Major:  major,
	}, log)
	a.ws.ticks = &TickSet{Major: major, Minor: minor}
}
