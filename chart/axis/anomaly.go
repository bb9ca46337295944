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
	"strings"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"
)

// AnomalyKind classifies a non-fatal problem found while resolving a chart.
type AnomalyKind string

const (
	ChartNotFound       AnomalyKind = "ChartNotFound"
	NotAGraph           AnomalyKind = "NotAGraph"
	AxisNotFound        AnomalyKind = "AxisNotFound"
	LinkCycle           AnomalyKind = "LinkCycle"
	LinkDepthExceeded   AnomalyKind = "LinkDepthExceeded"
	DegenerateRange     AnomalyKind = "DegenerateRange"
	LogRangeNonPositive AnomalyKind = "LogRangeNonPositive"
	InvalidTickSpec     AnomalyKind = "InvalidTickSpec"
	ShortDataRow        AnomalyKind = "ShortDataRow"
	UnknownPlotStyle    AnomalyKind = "UnknownPlotStyle"
)

// Anomaly is a configuration or data problem that was worked around.
// Rendering always carries on after one is recorded.
type Anomaly struct {
	Kind AnomalyKind
	// Axis is the axis the anomaly was found on, if any.
	Axis    ID
	Message string
}

func (a *Anomaly) Error() string {
	return a.Message
}

// NewAnomaly constructs an anomaly with a formatted message.
func NewAnomaly(kind AnomalyKind, id ID, format string, args ...interface{}) *Anomaly {
	return &Anomaly{Kind: kind, Axis: id, Message: fmt.Sprintf(format, args...)}
}

// Log is the append-only error log of a render pass.  Identical entries
// (same kind, axis and message) are only recorded once, since the same
// broken link is usually walked several times per pass.
//
// A nil *Log silently drops everything.
type Log struct {
	mu      sync.Mutex
	entries []Anomaly
	seen    sets.String

	// Observer, if set, is called once for every new entry.
	Observer func(Anomaly)
}

// Add records an anomaly.
func (l *Log) Add(a *Anomaly) {
	if l == nil || a == nil {
		return
	}
	l.mu.Lock()
	if l.seen == nil {
		l.seen = sets.NewString()
	}
	key := string(a.Kind) + "|" + a.Axis.String() + "|" + a.Message
	if l.seen.Has(key) {
		l.mu.Unlock()
		return
	}
	l.seen.Insert(key)
	l.entries = append(l.entries, *a)
	observer := l.Observer
	l.mu.Unlock()

	if observer != nil {
		observer(*a)
	}
}

// Addf records a new anomaly with a formatted message.
func (l *Log) Addf(kind AnomalyKind, id ID, format string, args ...interface{}) {
	l.Add(NewAnomaly(kind, id, format, args...))
}

// Entries returns a copy of everything recorded so far.
func (l *Log) Entries() []Anomaly {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Anomaly, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Has reports whether an anomaly of the given kind was recorded.
func (l *Log) Has(kind AnomalyKind) bool {
	for _, e := range l.Entries() {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// String renders the log one message per line.
func (l *Log) String() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}
