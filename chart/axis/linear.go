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

// LinearPlanner handles linear numeric axes.
type LinearPlanner struct{}

// linearRangeDefaults fill in missing bounds during range resolution.
type linearRangeDefaults struct {
	// missingSpan is added to a lone minimum (or taken off a lone maximum).
	missingSpan float64
	// emptyMin and emptyMax are used when there's nothing to go on.
	emptyMin, emptyMax float64
	// minExpansion is the least a zero-width range gets widened by, each
	// way.
	minExpansion float64
}

var linearDefaults = linearRangeDefaults{
	missingSpan:  20,
	emptyMin:     0,
	emptyMax:     10,
	minExpansion: 1,
}

// factors divide a power of ten (times 100) into tick separations.
var factors = []float64{1, 2, 4, 5, 10, 20, 25, 50, 100}

func (LinearPlanner) Scale() Scale {
	return Linear
}

func (LinearPlanner) ResolveRange(a *Axis, log *Log) Resolution {
	return resolveLinearRange(a, linearDefaults, Linear, log)
}

func (LinearPlanner) PlaceTicks(a *Axis, req TickRequest, log *Log) []Tick {
	res, ok := a.Range()
	if !ok {
		return nil
	}
	lo, hi := res.Bounds()
	return placeLinearTicks(a.id, lo, hi, req, log, NumericDisplay)
}

func resolveLinearRange(a *Axis, d linearRangeDefaults, scale Scale, log *Log) Resolution {
	in := a.rangeInputs()
	min, max, haveMin, haveMax := in.provisional()
	switch {
	case haveMin && !haveMax:
		max = min + d.missingSpan
	case !haveMin && haveMax:
		min = max - d.missingSpan
	case !haveMin && !haveMax:
		min, max = d.emptyMin, d.emptyMax
	}
	min, max = in.uncross(min, max,
		func(v float64) float64 { return v + d.missingSpan },
		func(v float64) float64 { return v - d.missingSpan })

	ignoreHard := false
	if degenerate(min, max) {
		if in.hardMin != nil && in.hardMax != nil {
			log.Addf(DegenerateRange, a.id, "Axis range set to zero. Ignoring manually set range.")
			ignoreHard = true
		}
		expansion := math.Max(d.minExpansion, 1e-3*math.Abs(min))
		min -= expansion
		max += expansion
	}

	min, max = roundOutward(min, max, 0)
	return in.finish(min, max, ignoreHard, a.RangeReversed, scale)
}

// degenerate reports whether a range has no usable width.
func degenerate(min, max float64) bool {
	return math.Abs(max-min) <= 1e-14*math.Max(math.Abs(min), math.Abs(max))
}

// roundOutward rounds min down and max up to a multiple of the order of
// magnitude of a fifth of the span, but never to a multiple finer than
// minStep.
func roundOutward(min, max float64, minStep float64) (float64, float64) {
	om := math.Pow(10, math.Floor(math.Log10(math.Abs(max-min)/5)))
	if om < minStep {
		om = minStep
	}
	if om == 0 || math.IsInf(om, 0) || math.IsNaN(om) {
		return min, max
	}
	return math.Floor(min/om) * om, math.Ceil(max/om) * om
}

func placeLinearTicks(id ID, lo, hi float64, req TickRequest, log *Log, label func(float64) string) []Tick {
	switch req.Spec.Mode() {
	case ExplicitTickMode:
		return explicitTicks(req.Spec, lo, hi, false)
	case SteppedTickMode:
		if ticks, ok := steppedLinearTicks(req.Spec, lo, hi, req.Level, label); ok {
			return ticks
		}
		_, step := req.Spec.Step()
		log.Addf(InvalidTickSpec, id, "Tick step %g on axis %s must be positive. Using automatic ticks.", step, id)
	}
	return labelled(autoLinearTicks(lo, hi, req), req.Level, label)
}

func steppedLinearTicks(spec TickSpec, lo, hi float64, level TickLevel, label func(float64) string) ([]Tick, bool) {
	start, step := spec.Step()
	if !(step > 0) || math.IsInf(step, 0) || math.IsNaN(start) || math.IsInf(start, 0) {
		return nil, false
	}
	if start < lo {
		start += math.Ceil((lo-start)/step) * step
	}

	var values []float64
	for n := 0; n < MaxSteppedTicks; n++ {
		x := start + float64(n)*step
		if math.Abs(x) < step*1e-12 {
			x = 0
		}
		v, ok := withinBounds(x, lo, hi)
		if !ok {
			if x > hi {
				break
			}
			continue
		}
		values = append(values, v)
	}
	return labelled(values, level, label), true
}

// linearSeparations lists candidate tick separations from coarsest to
// finest, descending one power of ten at a time from om.
func linearSeparations(om float64) []float64 {
	var seps []float64
	for level := 0; math.Pow(10, float64(level)) < 10*MaxTicks; level++ {
		scan := om / math.Pow(10, float64(level))
		for i := len(factors) - 1; i >= 0; i-- {
			seps = append(seps, factors[i]*scan/100)
		}
	}
	return seps
}

// evenScheme places ticks every sep, starting from a multiple of sep at or
// below lo.
func evenScheme(outerMin, outerMax, sep, lo, hi float64) scheme {
	return scheme{
		monotonic: true,
		allowance: 1,
		generate: func() ([]float64, bool) {
			var out []float64
			limit := (outerMax-outerMin)/sep + 2
			first := math.Floor((lo-outerMin)/sep) - 1
			if first < 0 {
				first = 0
			}
			for j := first; j < limit; j++ {
				if len(out) > MaxTicks {
					return nil, false
				}
				x := outerMin + j*sep
				if math.Abs(x) < 1e-8*sep {
					x = 0
				}
				if v, ok := withinBounds(x, lo, hi); ok {
					out = append(out, v)
				}
			}
			return out, true
		},
	}
}

func autoLinearTicks(lo, hi float64, req TickRequest) []float64 {
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) {
		return nil
	}
	om := math.Pow(10, math.Ceil(math.Log10(span)))
	outerMin := math.Floor(lo/om) * om
	outerMax := math.Ceil(hi/om) * om

	var schemes []scheme
	for _, sep := range linearSeparations(om) {
		schemes = append(schemes, evenScheme(outerMin, outerMax, sep, lo, hi))
	}
	same := func(a, b float64) bool {
		return math.Abs(a-b)/span < 1e-6
	}
	return searchSchemes(schemes, req, same)
}
