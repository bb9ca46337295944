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

// LogPlanner handles logarithmic numeric axes.
type LogPlanner struct{}

const (
	logFloor        = 1e-200
	logClampedValue = 1e-10

	// narrowLogRatio is the max/min ratio below which a log axis is ticked
	// like a linear one.
	narrowLogRatio = 3

	// maxMantissaFamily is the largest evenly spaced mantissa family tried
	// before falling back to every integer mantissa.
	maxMantissaFamily   = 8
	fullFamilyAllowance = 3
)

func (LogPlanner) Scale() Scale {
	return Logarithmic
}

func (LogPlanner) ResolveRange(a *Axis, log *Log) Resolution {
	in := a.rangeInputs()
	min, max, haveMin, haveMax := in.provisional()
	switch {
	case haveMin && !haveMax:
		max = min * 100
	case !haveMin && haveMax:
		min = max / 100
	case !haveMin && !haveMax:
		min, max = 1, 10
	}
	up := func(v float64) float64 { return v * 100 }
	down := func(v float64) float64 { return v / 100 }
	min, max = in.uncross(min, max, up, down)

	// a clamped hard bound no longer applies
	if min <= logFloor {
		log.Addf(LogRangeNonPositive, a.id, "Logarithmic axis range with range set below zero.")
		min = logClampedValue
		in.hardMin = nil
	}
	if max <= logFloor {
		log.Addf(LogRangeNonPositive, a.id, "Logarithmic axis range with range set below zero.")
		max = logClampedValue
		in.hardMax = nil
	}
	min, max = in.uncross(min, max, up, down)

	ignoreHard := false
	if degenerate(min, max) {
		if in.hardMin != nil && in.hardMax != nil {
			log.Addf(DegenerateRange, a.id, "Axis range set to zero. Ignoring manually set range.")
			ignoreHard = true
		}
		if min > 1e-300 {
			min /= 10
		}
		if max < 1e300 {
			max *= 10
		}
	}

	// round in log space, to at least whole decades
	lmin, lmax := roundOutward(math.Log10(min), math.Log10(max), 1)
	min, max = math.Pow(10, lmin), math.Pow(10, lmax)

	return in.finish(min, max, ignoreHard, a.RangeReversed, Logarithmic)
}

func (LogPlanner) PlaceTicks(a *Axis, req TickRequest, log *Log) []Tick {
	res, ok := a.Range()
	if !ok {
		return nil
	}
	lo, hi := res.Bounds()

	switch req.Spec.Mode() {
	case ExplicitTickMode:
		return explicitTicks(req.Spec, lo, hi, true)
	case SteppedTickMode:
		if ticks, ok := steppedLogTicks(req.Spec, lo, hi, req.Level); ok {
			return ticks
		}
		start, step := req.Spec.Step()
		log.Addf(InvalidTickSpec, a.id, "Tick start %g and step %g on logarithmic axis %s must be positive, with a step above one. Using automatic ticks.", start, step, a.id)
	}

	if hi/lo <= narrowLogRatio {
		return labelled(autoLinearTicks(lo, hi, req), req.Level, NumericDisplay)
	}
	return labelled(autoLogTicks(lo, hi, req), req.Level, NumericDisplay)
}

func steppedLogTicks(spec TickSpec, lo, hi float64, level TickLevel) ([]Tick, bool) {
	start, step := spec.Step()
	if !(start > 0) || !(step > 1) || math.IsInf(start, 0) || math.IsInf(step, 0) {
		return nil, false
	}
	if start < lo {
		start *= math.Pow(step, math.Ceil(math.Log(lo/start)/math.Log(step)))
	}

	var values []float64
	for n := 0; n < MaxSteppedTicks; n++ {
		x := start * math.Pow(step, float64(n))
		v, ok := withinLogBounds(x, lo, hi)
		if !ok {
			if x > hi {
				break
			}
			continue
		}
		values = append(values, v)
	}
	return labelled(values, level, NumericDisplay), true
}

// withinLogBounds is withinBounds with the slop measured in log space.
func withinLogBounds(v, lo, hi float64) (float64, bool) {
	lv, ok := withinBounds(math.Log10(v), math.Log10(lo), math.Log10(hi))
	if !ok {
		return v, false
	}
	switch lv {
	case math.Log10(lo):
		return lo, true
	case math.Log10(hi):
		return hi, true
	}
	return v, true
}

// decadeSteps lists the whole-decade tick separations worth trying for a
// span of the given number of decades, coarsest first.  Fractional decades
// are never used.
func decadeSteps(decades float64) []float64 {
	om := math.Pow(10, math.Ceil(math.Log10(decades)))
	var steps []float64
	seen := map[float64]bool{}
	for _, sep := range linearSeparations(om) {
		rounded := math.Round(sep)
		if rounded < 1 || math.Abs(rounded-sep) > 0.1 || seen[rounded] {
			continue
		}
		seen[rounded] = true
		steps = append(steps, rounded)
	}
	return steps
}

// mantissaFamily returns n mantissas evenly spaced in log space between 1
// and 10, rounded to integers.
func mantissaFamily(n int) []float64 {
	var out []float64
	seen := map[float64]bool{}
	for i := 0; i < n; i++ {
		m := math.Round(math.Pow(10, float64(i)/float64(n)))
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func fullMantissaFamily() []float64 {
	return []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
}

// decadeScheme places ticks at every step-th power of ten.
func decadeScheme(lo, hi, step float64) scheme {
	return scheme{
		monotonic: true,
		allowance: 1,
		generate: func() ([]float64, bool) {
			var out []float64
			first := math.Floor(math.Log10(lo)/step) - 1
			last := math.Ceil(math.Log10(hi)/step) + 1
			for k := first; k <= last; k++ {
				if len(out) > MaxTicks {
					return nil, false
				}
				if v, ok := withinLogBounds(math.Pow(10, k*step), lo, hi); ok {
					out = append(out, v)
				}
			}
			return out, true
		},
	}
}

// mantissaScheme places ticks at each mantissa times every power of ten.
func mantissaScheme(lo, hi float64, mantissas []float64, monotonic bool, allowance int) scheme {
	return scheme{
		monotonic: monotonic,
		allowance: allowance,
		generate: func() ([]float64, bool) {
			var out []float64
			first := math.Floor(math.Log10(lo)) - 1
			last := math.Ceil(math.Log10(hi)) + 1
			for k := first; k <= last; k++ {
				decade := math.Pow(10, k)
				for _, m := range mantissas {
					if len(out) > MaxTicks {
						return nil, false
					}
					if v, ok := withinLogBounds(m*decade, lo, hi); ok {
						out = append(out, v)
					}
				}
			}
			return out, true
		},
	}
}

// autoLogTicks searches whole-decade steps, then increasingly dense
// mantissa families within each decade, ending with every integer mantissa.
// Only the single-mantissa schemes and the final full family end the search
// early when they overshoot; the full family gets a larger allowance so that
// its labels stay individually meaningful.
func autoLogTicks(lo, hi float64, req TickRequest) []float64 {
	decades := math.Log10(hi) - math.Log10(lo)
	if !(decades > 0) || math.IsInf(decades, 0) {
		return nil
	}

	var schemes []scheme
	for _, step := range decadeSteps(decades) {
		schemes = append(schemes, decadeScheme(lo, hi, step))
	}
	for n := 2; n <= maxMantissaFamily; n++ {
		schemes = append(schemes, mantissaScheme(lo, hi, mantissaFamily(n), false, 1))
	}
	schemes = append(schemes, mantissaScheme(lo, hi, fullMantissaFamily(), true, fullFamilyAllowance))

	same := func(a, b float64) bool {
		return math.Abs(math.Log10(a)-math.Log10(b))/decades < 1e-6
	}
	return searchSchemes(schemes, req, same)
}
