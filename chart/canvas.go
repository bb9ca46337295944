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

// Package chart lays out graphs on a page and runs the render pass that
// resolves the range and ticks of every axis on it.
package chart

import (
	"fmt"
	"time"

	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/chart/link"
	"sigs.k8s.io/chartkit/debug"
)

var renderLog = debug.NewDebugLogger("render.log")

// Item is anything placed on a canvas.
type Item interface {
	Name() string
	BoundingBox() Box
}

// Observer is told about each prepare pass as it happens.
type Observer interface {
	// Anomaly is called once for each distinct anomaly recorded.
	Anomaly(a axis.Anomaly)
	// Prepared is called at the end of each pass.
	Prepared(c *Canvas, elapsed time.Duration)
}

// Canvas is a page holding named items.  It is the registry linked axes are
// looked up in.  A Canvas is not safe for concurrent use.
type Canvas struct {
	items map[string]Item
	order []string

	log    *axis.Log
	bounds Box
	dirty  bool

	Observer Observer
}

func NewCanvas() *Canvas {
	return &Canvas{
		items: map[string]Item{},
		dirty: true,
	}
}

// Add places an item on the canvas.  Names must be unique.
func (c *Canvas) Add(item Item) error {
	name := item.Name()
	if name == "" {
		return fmt.Errorf("unable to add item: items need a name")
	}
	if _, exists := c.items[name]; exists {
		return fmt.Errorf("unable to add item: the canvas already has an item named %q", name)
	}
	c.items[name] = item
	c.order = append(c.order, name)
	if g, ok := item.(*Graph); ok {
		g.canvas = c
	}
	c.Invalidate()
	return nil
}

// Remove takes an item off the canvas.  Axes linked to its axes will report
// the link as dangling on the next pass.
func (c *Canvas) Remove(name string) {
	item, ok := c.items[name]
	if !ok {
		return
	}
	if g, ok := item.(*Graph); ok {
		g.canvas = nil
	}
	delete(c.items, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.Invalidate()
}

func (c *Canvas) Item(name string) (Item, bool) {
	item, ok := c.items[name]
	return item, ok
}

// Items returns every item in the order they were added.
func (c *Canvas) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.items[n])
	}
	return out
}

// Graphs returns the graphs among the items, in order.
func (c *Canvas) Graphs() []*Graph {
	var out []*Graph
	for _, item := range c.Items() {
		if g, ok := item.(*Graph); ok {
			out = append(out, g)
		}
	}
	return out
}

// Graph returns the named graph, if there is one.
func (c *Canvas) Graph(name string) (*Graph, bool) {
	g, ok := c.items[name].(*Graph)
	return g, ok
}

// LookupAxis finds an axis by ID.  Failures are *axis.Anomaly values.
func (c *Canvas) LookupAxis(id axis.ID) (*axis.Axis, error) {
	item, ok := c.items[id.Chart]
	if !ok {
		return nil, axis.NewAnomaly(axis.ChartNotFound, id, "Axis linked to plot %s which doesn't exist.", id.Chart)
	}
	g, ok := item.(*Graph)
	if !ok {
		return nil, axis.NewAnomaly(axis.NotAGraph, id, "Axis linked to plot %s which is not a graph.", id.Chart)
	}
	ax := g.Axis(id.Axis)
	if ax == nil {
		return nil, axis.NewAnomaly(axis.AxisNotFound, id, "Axis linked to axis %s which doesn't exist.", id.Axis)
	}
	return ax, nil
}

var _ link.Registry = &Canvas{}

// Invalidate marks the canvas as needing another pass.
func (c *Canvas) Invalidate() {
	c.dirty = true
}

// Dirty reports whether the canvas changed since it was last prepared.
func (c *Canvas) Dirty() bool {
	return c.dirty
}

// Log returns the anomalies of the last pass.
func (c *Canvas) Log() *axis.Log {
	return c.log
}

// Bounds is the page area covered by the items, as of the last pass.
func (c *Canvas) Bounds() Box {
	return c.bounds
}

// Prepare runs a render pass: every axis on the canvas gets its final range
// and ticks, ready for drawing.  The passes of all graphs are interleaved
// phase by phase, so that links between graphs see the same state whichever
// graph comes first:
//
//  1. every axis workspace is reset, and hard bounds are propagated down
//     link chains;
//  2. every data set is fed into its axes, and its usage back-propagated;
//  3. every axis is resolved, through its link source if it has one, and
//     ticked.
//
// The returned log holds the anomalies found along the way.
func (c *Canvas) Prepare() *axis.Log {
	start := time.Now()
	log := &axis.Log{Observer: c.observe}
	c.log = log

	c.bounds = Box{}
	for _, item := range c.Items() {
		c.bounds.IncludeBox(item.BoundingBox())
	}

	graphs := c.Graphs()
	for _, g := range graphs {
		g.resetAxes()
	}
	for _, g := range graphs {
		for _, ax := range g.Axes() {
			link.ResolveRange(c, ax, link.PropagateHardBounds, log)
		}
	}
	for _, g := range graphs {
		g.collectUsage(log)
	}
	for _, g := range graphs {
		for _, ax := range g.Axes() {
			if !ax.Resolved() {
				link.ResolveRange(c, ax, link.PropagateRange, log)
			}
			ax.FinalizeTicks(log)
			logResolution(ax)
		}
	}

	c.dirty = false
	if c.Observer != nil {
		c.Observer.Prepared(c, time.Since(start))
	}
	return log
}

func (c *Canvas) observe(a axis.Anomaly) {
	renderLog.Printf("anomaly %s on %s: %s", a.Kind, a.Axis, a.Message)
	if c.Observer != nil {
		c.Observer.Anomaly(a)
	}
}

func logResolution(ax *axis.Axis) {
	res, ok := ax.Range()
	if !ok {
		return
	}
	ticks := ax.Ticks()
	renderLog.Printf("axis %s: %s [%g, %g], %d major and %d minor ticks",
		ax.ID(), res.Scale, res.Min, res.Max, len(ticks.Major), len(ticks.Minor))
}
