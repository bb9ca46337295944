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
	"time"
)

// TimestampPlanner handles axes of Unix timestamps (in seconds).  Ticks are
// placed like a linear axis; there's no calendar awareness.
type TimestampPlanner struct{}

var timestampDefaults = linearRangeDefaults{
	missingSpan: 60,
	// 2000-01-01 to 2001-01-01, UTC
	emptyMin:     946684800,
	emptyMax:     978307200,
	minExpansion: 30,
}

func (TimestampPlanner) Scale() Scale {
	return Timestamp
}

func (TimestampPlanner) ResolveRange(a *Axis, log *Log) Resolution {
	return resolveLinearRange(a, timestampDefaults, Timestamp, log)
}

func (TimestampPlanner) PlaceTicks(a *Axis, req TickRequest, log *Log) []Tick {
	res, ok := a.Range()
	if !ok {
		return nil
	}
	lo, hi := res.Bounds()
	return placeLinearTicks(a.id, lo, hi, req, log, TimestampLabeler(res.Span()))
}

// TimestampLabeler picks a time layout based on how much time the axis
// spans.
func TimestampLabeler(span float64) func(float64) string {
	// NB: time.Format uses a "canonical time" of 1 2 3 4 5 6 -7
	var layout string
	switch window := time.Duration(span * float64(time.Second)); {
	case window >= 10*24*time.Hour:
		layout = "Jan _2"
	case window >= 24*time.Hour:
		layout = "_2 15h"
	case window >= 1*time.Hour:
		layout = "15:04"
	default:
		layout = "04:05"
	}
	return func(v float64) string {
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(layout)
	}
}
