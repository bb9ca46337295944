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

// Package axis decides what numeric span an axis displays and where its
// labelled ticks go.
//
// An Axis is configured once (hard bounds, scale, tick specs, links) and then
// goes through one workspace per render pass: usage is accumulated with
// IncludePoint, the range is resolved by the axis's TickPlanner (or copied
// from the axis it links to), and finally major and minor ticks are placed.
// Once resolved, the range and ticks do not change until the next Reset.
package axis

import (
	"fmt"
	"strings"
)

// ID names an axis globally: the chart (graph) it belongs to plus the axis
// name within that chart, e.g. {"main", "x1"}.
type ID struct {
	Chart string
	Axis  string
}

func (id ID) String() string {
	return id.Chart + "/" + id.Axis
}

// ParseID parses the "chart/axis" form produced by ID.String.
func ParseID(s string) (ID, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ID{}, fmt.Errorf("invalid axis reference %q (expected chart/axis)", s)
	}
	return ID{Chart: parts[0], Axis: parts[1]}, nil
}

// Scale selects how values are mapped along an axis, and with it the tick
// planner used for the axis.
type Scale int

const (
	Linear Scale = iota
	Logarithmic
	Timestamp
)

func (s Scale) String() string {
	switch s {
	case Linear:
		return "linear"
	case Logarithmic:
		return "log"
	case Timestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// ParseScale understands the names produced by Scale.String, plus a couple
// of common aliases.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "lin":
		return Linear, nil
	case "log", "logarithmic":
		return Logarithmic, nil
	case "timestamp", "time":
		return Timestamp, nil
	}
	return Linear, fmt.Errorf("unknown axis scale %q", s)
}

const (
	DefaultTargetMajorTicks = 8
	DefaultTargetMinorTicks = 50
)

// Axis is one numeric axis of a graph.  The exported fields are its
// configuration; everything computed during a render pass lives in the
// unexported workspace.
type Axis struct {
	id ID

	Label string
	// Hidden axes still resolve their range (other axes may link to them)
	// but are not drawn.
	Hidden bool

	// HardMin and HardMax are the user-fixed bounds, if any.
	HardMin, HardMax *float64
	Scale            Scale
	RangeReversed    bool

	// LinkTo makes this axis mirror the range of another axis.
	LinkTo *ID

	MajorTicks, MinorTicks TickSpec

	// TargetMajorTickCount and TargetMinorTickCount are the preferred tick
	// counts.  Zero means "derive it", which the owning graph does from the
	// axis length, falling back to the package defaults.
	TargetMajorTickCount, TargetMinorTickCount int

	ScrollEnabled        bool
	ScrollMin, ScrollMax *float64
	ZoomEnabled          bool

	ws Workspace
}

// New constructs an unconfigured linear axis.
func New(id ID) *Axis {
	a := &Axis{id: id, ZoomEnabled: true}
	a.Reset()
	return a
}

func (a *Axis) ID() ID {
	return a.id
}

// Logarithmic reports whether the axis is configured with a log scale.
func (a *Axis) Logarithmic() bool {
	return a.Scale == Logarithmic
}

// Linked reports whether the axis mirrors another one.
func (a *Axis) Linked() bool {
	return a.LinkTo != nil
}

func (a *Axis) targetCount(level TickLevel) int {
	switch level {
	case MajorTick:
		if a.ws.targetMajor > 0 {
			return a.ws.targetMajor
		}
		if a.TargetMajorTickCount > 0 {
			return a.TargetMajorTickCount
		}
		return DefaultTargetMajorTicks
	default:
		if a.ws.targetMinor > 0 {
			return a.ws.targetMinor
		}
		if a.TargetMinorTickCount > 0 {
			return a.TargetMinorTickCount
		}
		return DefaultTargetMinorTicks
	}
}

// SetDerivedTargets sets the per-pass tick targets, used when the
// configuration leaves them at zero.
func (a *Axis) SetDerivedTargets(major, minor int) {
	if a.TargetMajorTickCount == 0 {
		a.ws.targetMajor = major
	}
	if a.TargetMinorTickCount == 0 {
		a.ws.targetMinor = minor
	}
}
