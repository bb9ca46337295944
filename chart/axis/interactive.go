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

// Scroll pins the hard bounds to the current range shifted by frac of its
// length (positive towards the final maximum).  When scrolling is clamped,
// the new bounds are kept within ScrollMin/ScrollMax.  It returns false if
// the axis has no resolved range to scroll from.
func (a *Axis) Scroll(frac float64) bool {
	if _, ok := a.Range(); !ok || math.IsNaN(frac) {
		return false
	}
	a.pin(a.InvGetPosition(frac), a.InvGetPosition(1+frac))
	return true
}

// Zoom pins the hard bounds to the part of the current range around the
// fractional position center, factor times narrower (so factors below one
// zoom out).  It returns false if zooming is disabled or the axis has no
// resolved range.
func (a *Axis) Zoom(factor, center float64) bool {
	if !a.ZoomEnabled || !(factor > 0) || math.IsInf(factor, 0) {
		return false
	}
	if _, ok := a.Range(); !ok {
		return false
	}
	half := 0.5 / factor
	a.pin(a.InvGetPosition(center-half), a.InvGetPosition(center+half))
	return true
}

// SetHardRange pins the hard bounds directly.  Nil leaves a bound free.
func (a *Axis) SetHardRange(min, max *float64) {
	a.HardMin = copyFloat(min)
	a.HardMax = copyFloat(max)
}

func (a *Axis) pin(lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if a.ScrollEnabled {
		lo, hi = a.clampScroll(lo, hi)
	}
	a.HardMin = &lo
	a.HardMax = &hi
}

// clampScroll slides [lo, hi] back inside the scroll bounds without changing
// its length (its ratio, on a log axis).
func (a *Axis) clampScroll(lo, hi float64) (float64, float64) {
	log := a.EffectiveScale() == Logarithmic
	if a.ScrollMin != nil && lo < *a.ScrollMin {
		if log {
			hi *= *a.ScrollMin / lo
		} else {
			hi += *a.ScrollMin - lo
		}
		lo = *a.ScrollMin
	}
	if a.ScrollMax != nil && hi > *a.ScrollMax {
		if log {
			lo *= *a.ScrollMax / hi
		} else {
			lo -= hi - *a.ScrollMax
		}
		hi = *a.ScrollMax
	}
	// the window was wider than the scroll bounds
	if a.ScrollMin != nil && lo < *a.ScrollMin {
		lo = *a.ScrollMin
	}
	return lo, hi
}
