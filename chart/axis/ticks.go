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
	"sort"
)

const (
	// MaxTicks caps the number of automatically placed ticks per level, and
	// the number of candidates a single ticking scheme may produce.
	MaxTicks = 256
	// MaxSteppedTicks caps the ticks generated by a (start, step) spec.
	MaxSteppedTicks = 100
)

type TickLevel int

const (
	MajorTick TickLevel = iota
	MinorTick
)

func (l TickLevel) String() string {
	if l == MajorTick {
		return "major"
	}
	return "minor"
}

// Tick is a tick position and its label.  Automatically placed minor ticks
// are unlabelled.
type Tick struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// TickSet holds the final ticks of an axis, each list in increasing order.
type TickSet struct {
	Major []Tick `json:"major" yaml:"major"`
	Minor []Tick `json:"minor" yaml:"minor"`
}

// TickMode says how a TickSpec places ticks.
type TickMode int

const (
	AutoTickMode TickMode = iota
	ExplicitTickMode
	SteppedTickMode
)

// TickSpec describes how one level of ticks is placed.  The zero value
// places ticks automatically.  TickSpecs are immutable; build them with
// AutoTicks, ExplicitTicks or SteppedTicks.
type TickSpec struct {
	mode        TickMode
	explicit    []Tick
	start, step float64
}

func AutoTicks() TickSpec {
	return TickSpec{}
}

// ExplicitTicks places exactly the given ticks (those within the final
// range, at least).
func ExplicitTicks(ticks ...Tick) TickSpec {
	cp := make([]Tick, len(ticks))
	copy(cp, ticks)
	return TickSpec{mode: ExplicitTickMode, explicit: cp}
}

// SteppedTicks places ticks at start + n*step (linear axes) or start * step^n
// (log axes), for whichever n land within the final range.
func SteppedTicks(start, step float64) TickSpec {
	return TickSpec{mode: SteppedTickMode, start: start, step: step}
}

func (s TickSpec) Mode() TickMode {
	return s.mode
}

// Explicit returns a copy of the explicit tick list.
func (s TickSpec) Explicit() []Tick {
	cp := make([]Tick, len(s.explicit))
	copy(cp, s.explicit)
	return cp
}

// Step returns the (start, step) rule.
func (s TickSpec) Step() (start, step float64) {
	return s.start, s.step
}

// TickRequest asks a planner for one level of ticks.
type TickRequest struct {
	Level  TickLevel
	Spec   TickSpec
	Target int
	// Major holds the already placed major ticks when Level is MinorTick.
	// Automatic minor ticks must include every one of them.
	Major []Tick
}

func clampTarget(n int) int {
	if n < 2 {
		return 2
	}
	if n > MaxTicks {
		return MaxTicks
	}
	return n
}

// withinBounds reports whether v lies in [lo, hi] give or take a relative
// slop, snapping it onto the bound when it's just outside.
func withinBounds(v, lo, hi float64) (float64, bool) {
	slop := 1e-10 * (hi - lo)
	switch {
	case v < lo-slop || v > hi+slop:
		return v, false
	case v < lo:
		return lo, true
	case v > hi:
		return hi, true
	}
	return v, true
}

// explicitTicks clips an explicit list to the range, orders it and drops
// repeated positions (the first label wins).
func explicitTicks(spec TickSpec, lo, hi float64, positiveOnly bool) []Tick {
	var out []Tick
	for _, t := range spec.explicit {
		if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
			continue
		}
		if positiveOnly && t.Value <= 0 {
			continue
		}
		v, ok := withinBounds(t.Value, lo, hi)
		if !ok {
			continue
		}
		out = append(out, Tick{Value: v, Label: t.Label})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })

	deduped := out[:0]
	for i, t := range out {
		if i > 0 && t.Value == deduped[len(deduped)-1].Value {
			continue
		}
		deduped = append(deduped, t)
	}
	return deduped
}

// includesAll reports whether every major tick coincides with one of the
// candidate positions, according to same.
func includesAll(candidates []float64, major []Tick, same func(a, b float64) bool) bool {
	for _, m := range major {
		matched := false
		for _, c := range candidates {
			if same(m.Value, c) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// scheme is one candidate arrangement of ticks.
type scheme struct {
	// generate returns the candidate positions, in increasing order, or
	// false if there would be more than MaxTicks of them.
	generate func() ([]float64, bool)
	// monotonic schemes are followed only by schemes with at least as many
	// ticks, so the search can stop at the first one that has too many.
	monotonic bool
	// allowance multiplies the target tick count for this scheme.
	allowance int
}

// searchSchemes walks the schemes from coarsest to finest, keeping the
// finest one that fits the target (and, for minor ticks, includes all the
// major ticks).
func searchSchemes(schemes []scheme, req TickRequest, same func(a, b float64) bool) []float64 {
	var best []float64
	for _, s := range schemes {
		allowance := s.allowance
		if allowance < 1 {
			allowance = 1
		}
		candidates, ok := s.generate()
		if !ok {
			if s.monotonic {
				break
			}
			continue
		}
		if req.Level == MinorTick && !includesAll(candidates, req.Major, same) {
			continue
		}
		if len(candidates) > req.Target*allowance {
			if s.monotonic {
				break
			}
			continue
		}
		best = candidates
	}
	return best
}

func labelled(values []float64, level TickLevel, label func(float64) string) []Tick {
	out := make([]Tick, len(values))
	for i, v := range values {
		out[i] = Tick{Value: v}
		if level == MajorTick {
			out[i].Label = label(v)
		}
	}
	return out
}
