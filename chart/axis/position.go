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
	"math"
)

// GetPosition maps v to its fractional position along the axis, 0 at the
// final minimum and 1 at the final maximum.  It returns NaN if the axis is
// unresolved, if v is off the axis and allowOffBounds is false, or if v is
// non-positive on a log axis.
func (a *Axis) GetPosition(v float64, allowOffBounds bool) float64 {
	res, ok := a.Range()
	if !ok || math.IsNaN(v) {
		return math.NaN()
	}
	if !allowOffBounds {
		lo, hi := res.Bounds()
		if v < lo || v > hi {
			return math.NaN()
		}
	}
	if res.Scale == Logarithmic {
		if v <= 0 {
			return math.NaN()
		}
		return (math.Log(v) - math.Log(res.Min)) / (math.Log(res.Max) - math.Log(res.Min))
	}
	return (v - res.Min) / (res.Max - res.Min)
}

// InvGetPosition is the inverse of GetPosition: it returns the value found
// at fractional position f along the axis.
func (a *Axis) InvGetPosition(f float64) float64 {
	res, ok := a.Range()
	if !ok {
		return math.NaN()
	}
	if res.Scale == Logarithmic {
		return res.Min * math.Pow(res.Max/res.Min, f)
	}
	return res.Min + f*(res.Max-res.Min)
}

// InRange reports whether v should contribute to this axis.  The effective
// hard bounds are used when set, otherwise the scroll bounds when scrolling
// is clamped.  A single bound makes an open ray, and no bounds at all accept
// everything.
func (a *Axis) InRange(v float64) bool {
	min, max := a.ws.hardMin, a.ws.hardMax
	if min == nil && max == nil && a.ScrollEnabled {
		min, max = a.ScrollMin, a.ScrollMax
	}
	if a.RangeReversed {
		min, max = max, min
	}

	switch {
	case min != nil && max != nil:
		lo, hi := *min, *max
		if lo > hi {
			lo, hi = hi, lo
		}
		return v >= lo && v <= hi
	case min != nil:
		return v > *min
	case max != nil:
		return v < *max
	default:
		return true
	}
}
