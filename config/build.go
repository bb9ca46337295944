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

package config

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/pointer"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/source/promtext"
)

var axisNames = sets.NewString(chart.AxisNames...)

func (g *Graph) validate() []error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("graph %q: "+format, append([]interface{}{g.Name}, args...)...))
	}

	if len(g.Origin) > 2 {
		fail("origin takes an x and a y, got %d values", len(g.Origin))
	}
	if g.Width != nil && !(*g.Width > 0) {
		fail("width must be positive")
	}
	for _, name := range g.GridAxes {
		if !axisNames.Has(name) {
			fail("unknown grid axis %q", name)
		}
	}
	for name, ax := range g.Axes {
		if !axisNames.Has(name) {
			fail("unknown axis %q (expected one of %s)", name, strings.Join(chart.AxisNames, ", "))
			continue
		}
		for _, err := range ax.validate() {
			fail("axis %s: %v", name, err)
		}
	}
	for i, ds := range g.DataSets {
		for _, err := range ds.validate(g.ThreeDimensional) {
			fail("data set %d: %v", i+1, err)
		}
	}
	return errs
}

func (a *Axis) validate() []error {
	var errs []error
	if _, err := axis.ParseScale(a.Scale); err != nil {
		errs = append(errs, err)
	}
	if a.LinkTo != "" && strings.Contains(a.LinkTo, "/") {
		if _, err := axis.ParseID(a.LinkTo); err != nil {
			errs = append(errs, err)
		}
	}
	for level, t := range map[string]*Ticks{"major ticks": a.MajorTicks, "minor ticks": a.MinorTicks} {
		if t == nil {
			continue
		}
		if err := t.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", level, err))
		}
	}
	if a.MajorTargetCount < 0 || a.MinorTargetCount < 0 {
		errs = append(errs, fmt.Errorf("target tick counts can't be negative"))
	}
	return errs
}

func (t *Ticks) validate() error {
	stepped := t.Start != nil || t.Step != nil
	switch {
	case stepped && len(t.Values) > 0:
		return fmt.Errorf("give either values or a start and step, not both")
	case stepped && (t.Start == nil || t.Step == nil):
		return fmt.Errorf("stepped ticks need both a start and a step")
	case len(t.Labels) > len(t.Values):
		return fmt.Errorf("%d labels given for %d values", len(t.Labels), len(t.Values))
	}
	return nil
}

func (d *DataSet) validate(threeD bool) []error {
	var errs []error
	if _, err := chart.LayoutFor(chart.Style(d.style()), threeD); err != nil {
		errs = append(errs, err)
	}
	if len(d.Axes) > 3 {
		errs = append(errs, fmt.Errorf("at most 3 axes (x, y, z) can be given"))
	}
	for _, name := range d.Axes {
		if !axisNames.Has(name) {
			errs = append(errs, fmt.Errorf("unknown axis %q", name))
		}
	}
	if d.Source != nil {
		if len(d.Rows) > 0 {
			errs = append(errs, fmt.Errorf("give either rows or a source, not both"))
		}
		if d.Source.File == "" || d.Source.Metric == "" {
			errs = append(errs, fmt.Errorf("a source needs a file and a metric"))
		}
	}
	return errs
}

func (d *DataSet) style() string {
	if d.Style == "" {
		if d.Source != nil && d.Source.Histogram {
			return string(chart.WBoxes)
		}
		return string(chart.Points)
	}
	return d.Style
}

// Build constructs a canvas from the definition, reading any source files.
func (c *Chart) Build() (*chart.Canvas, error) {
	canvas := chart.NewCanvas()
	sources := map[string]*promtext.Exposition{}

	for i := range c.Graphs {
		g, err := c.Graphs[i].build(func(src *Source) ([][]float64, error) {
			path := c.resolvePath(src.File)
			exp, ok := sources[path]
			if !ok {
				var err error
				if exp, err = promtext.ParseFile(path); err != nil {
					return nil, err
				}
				sources[path] = exp
			}
			if src.Histogram {
				return exp.HistogramRows(src.Metric, src.Match)
			}
			return exp.Rows(src.Metric, src.Match, src.XLabel)
		})
		if err != nil {
			return nil, err
		}
		if err := canvas.Add(g); err != nil {
			return nil, err
		}
	}
	for _, t := range c.Texts {
		if err := canvas.Add(chart.NewText(t.Name, t.Text, t.X, t.Y)); err != nil {
			return nil, err
		}
	}
	return canvas, nil
}

func (g *Graph) build(load func(*Source) ([][]float64, error)) (*chart.Graph, error) {
	out := chart.NewGraph(g.Name)
	out.Title = g.Title
	out.Width = pointer.Float64Deref(g.Width, out.Width)
	out.Aspect = pointer.Float64Deref(g.Aspect, out.Aspect)
	out.AspectZ = pointer.Float64Deref(g.AspectZ, out.AspectZ)
	copy(out.Origin[:], g.Origin)
	out.ThreeDimensional = g.ThreeDimensional
	out.ViewAngleXY = pointer.Float64Deref(g.ViewAngleXY, out.ViewAngleXY)
	out.ViewAngleYZ = pointer.Float64Deref(g.ViewAngleYZ, out.ViewAngleYZ)
	out.Clip = pointer.BoolDeref(g.Clip, true)
	out.BoxFrom = g.BoxFrom
	if g.GridAxes != nil {
		out.GridAxes = g.GridAxes
	}

	for name, cfg := range g.Axes {
		if err := cfg.apply(g.Name, out.Axis(name)); err != nil {
			return nil, fmt.Errorf("graph %q, axis %s: %w", g.Name, name, err)
		}
	}

	for i, ds := range g.DataSets {
		rows := ds.Rows
		if ds.Source != nil {
			var err error
			if rows, err = load(ds.Source); err != nil {
				return nil, fmt.Errorf("graph %q, data set %d: %w", g.Name, i+1, err)
			}
		}
		title := ds.Title
		if title == "" && ds.Source != nil {
			title = ds.Source.Metric
		}
		set := chart.NewDataSet(title, chart.Style(ds.style()), rows)
		copy(set.Axes[:], ds.Axes)
		out.AddDataSet(set)
	}
	return out, nil
}

func (a *Axis) apply(graph string, ax *axis.Axis) error {
	scale, err := axis.ParseScale(a.Scale)
	if err != nil {
		return err
	}
	ax.Label = a.Label
	ax.Hidden = a.Hidden
	ax.Scale = scale
	ax.RangeReversed = a.Reversed
	ax.SetHardRange(a.Min, a.Max)

	if a.LinkTo != "" {
		target := a.LinkTo
		if !strings.Contains(target, "/") {
			target = graph + "/" + target
		}
		id, err := axis.ParseID(target)
		if err != nil {
			return err
		}
		ax.LinkTo = &id
	}

	ax.MajorTicks = a.MajorTicks.spec(true)
	ax.MinorTicks = a.MinorTicks.spec(false)
	ax.TargetMajorTickCount = a.MajorTargetCount
	ax.TargetMinorTickCount = a.MinorTargetCount

	if a.Scroll != nil {
		ax.ScrollEnabled = true
		ax.ScrollMin = a.Scroll.Min
		ax.ScrollMax = a.Scroll.Max
	}
	ax.ZoomEnabled = pointer.BoolDeref(a.Zoom, true)
	return nil
}

// spec builds the tick spec.  Unlabelled explicit major ticks show their
// value.
func (t *Ticks) spec(major bool) axis.TickSpec {
	switch {
	case t == nil:
		return axis.AutoTicks()
	case t.Start != nil && t.Step != nil:
		return axis.SteppedTicks(*t.Start, *t.Step)
	case len(t.Values) > 0:
		ticks := make([]axis.Tick, len(t.Values))
		for i, v := range t.Values {
			ticks[i].Value = v
			switch {
			case i < len(t.Labels):
				ticks[i].Label = t.Labels[i]
			case major:
				ticks[i].Label = axis.NumericDisplay(v)
			}
		}
		return axis.ExplicitTicks(ticks...)
	}
	return axis.AutoTicks()
}
