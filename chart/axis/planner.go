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

// TickPlanner resolves the range of an axis and places its ticks.  There is
// one implementation per Scale.
type TickPlanner interface {
	// Scale is the scale this planner handles.
	Scale() Scale

	// ResolveRange computes the final range from the effective hard bounds
	// and usage of the axis.  Problems are recorded in log.
	ResolveRange(a *Axis, log *Log) Resolution

	// PlaceTicks places one level of ticks on an axis whose range is
	// resolved.  The returned list is in increasing order.
	PlaceTicks(a *Axis, req TickRequest, log *Log) []Tick
}

// PlannerFor returns the planner for the given scale.
func PlannerFor(s Scale) TickPlanner {
	switch s {
	case Logarithmic:
		return LogPlanner{}
	case Timestamp:
		return TimestampPlanner{}
	default:
		return LinearPlanner{}
	}
}

// rangeInputs gathers what range resolution works from.
type rangeInputs struct {
	hardMin, hardMax *float64
	used             bool
	usedMin, usedMax float64
}

func (a *Axis) rangeInputs() rangeInputs {
	return rangeInputs{
		hardMin: a.ws.hardMin,
		hardMax: a.ws.hardMax,
		used:    a.ws.used,
		usedMin: a.ws.usedMin,
		usedMax: a.ws.usedMax,
	}
}

// provisional picks the starting bounds: the hard bound where set, the
// usage otherwise.  Either may still be missing.
func (in rangeInputs) provisional() (min, max float64, haveMin, haveMax bool) {
	switch {
	case in.hardMin != nil:
		min, haveMin = *in.hardMin, true
	case in.used:
		min, haveMin = in.usedMin, true
	}
	switch {
	case in.hardMax != nil:
		max, haveMax = *in.hardMax, true
	case in.used:
		max, haveMax = in.usedMax, true
	}
	return min, max, haveMin, haveMax
}

// uncross handles provisional bounds that cross, which happens when usage
// lies beyond a lone hard bound.  The hard bound wins and the other bound is
// derived from it as if there were no usage.
func (in rangeInputs) uncross(min, max float64, fromMin, fromMax func(float64) float64) (float64, float64) {
	if !(min > max) {
		return min, max
	}
	switch {
	case in.hardMin != nil && in.hardMax == nil:
		return min, fromMin(min)
	case in.hardMax != nil && in.hardMin == nil:
		return fromMax(max), max
	case in.hardMin == nil && in.hardMax == nil:
		return max, min
	}
	return min, max
}

// finish applies the hard bounds over the rounded ones, and the reversal.
func (in rangeInputs) finish(min, max float64, ignoreHard bool, reversed bool, scale Scale) Resolution {
	if in.hardMin != nil && !ignoreHard {
		min = *in.hardMin
	}
	if in.hardMax != nil && !ignoreHard {
		max = *in.hardMax
	}
	if reversed {
		min, max = max, min
	}
	return Resolution{Min: min, Max: max, Scale: scale}
}
