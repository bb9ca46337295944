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

// Package config loads chart definitions from YAML and builds canvases
// from them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Chart is a whole chart definition file: the graphs and text annotations
// on one canvas.
type Chart struct {
	Graphs []Graph `yaml:"graphs"`
	Texts  []Text  `yaml:"texts,omitempty"`

	// baseDir is where relative source files are looked up.
	baseDir string
}

type Graph struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title,omitempty"`

	Width            *float64   `yaml:"width,omitempty"`
	Aspect           *float64   `yaml:"aspect,omitempty"`
	AspectZ          *float64   `yaml:"aspectZ,omitempty"`
	Origin           []float64  `yaml:"origin,omitempty"`
	ThreeDimensional bool       `yaml:"threeDimensional,omitempty"`
	ViewAngleXY      *float64   `yaml:"viewAngleXY,omitempty"`
	ViewAngleYZ      *float64   `yaml:"viewAngleYZ,omitempty"`

	// Clip drops points outside the axis ranges.  Defaults to true.
	Clip     *bool    `yaml:"clip,omitempty"`
	BoxFrom  *float64 `yaml:"boxFrom,omitempty"`
	GridAxes []string `yaml:"gridAxes,omitempty"`

	Axes     map[string]Axis `yaml:"axes,omitempty"`
	DataSets []DataSet       `yaml:"dataSets,omitempty"`
}

type Axis struct {
	Label  string `yaml:"label,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`

	Min      *float64 `yaml:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty"`
	Scale    string   `yaml:"scale,omitempty"`
	Reversed bool     `yaml:"reversed,omitempty"`

	// LinkTo is "graph/axis", or just "axis" for an axis of the same
	// graph.
	LinkTo string `yaml:"linkTo,omitempty"`

	MajorTicks       *Ticks `yaml:"majorTicks,omitempty"`
	MinorTicks       *Ticks `yaml:"minorTicks,omitempty"`
	MajorTargetCount int    `yaml:"majorTargetCount,omitempty"`
	MinorTargetCount int    `yaml:"minorTargetCount,omitempty"`

	// Scroll enables scrolling, optionally within bounds.
	Scroll *Scroll `yaml:"scroll,omitempty"`
	// Zoom defaults to true.
	Zoom *bool `yaml:"zoom,omitempty"`
}

// Ticks is either a list of values (optionally labelled), or a start and
// step.
type Ticks struct {
	Values []float64 `yaml:"values,omitempty"`
	Labels []string  `yaml:"labels,omitempty"`
	Start  *float64  `yaml:"start,omitempty"`
	Step   *float64  `yaml:"step,omitempty"`
}

type Scroll struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

type DataSet struct {
	Title string `yaml:"title,omitempty"`
	Style string `yaml:"style,omitempty"`
	// Axes names the x, y and z axes, defaulting to x1, y1 and z1.
	Axes   []string    `yaml:"axes,omitempty"`
	Rows   [][]float64 `yaml:"rows,omitempty"`
	Source *Source     `yaml:"source,omitempty"`
}

// Source reads rows from a file in the Prometheus text format instead of
// listing them inline.
type Source struct {
	File   string            `yaml:"file"`
	Metric string            `yaml:"metric"`
	Match  map[string]string `yaml:"match,omitempty"`
	// XLabel is the label whose (numeric) value is used as x.  Without
	// one, samples are numbered in order.
	XLabel string `yaml:"xLabel,omitempty"`
	// Histogram reads the <metric>_bucket series as wboxes rows.
	Histogram bool `yaml:"histogram,omitempty"`
}

type Text struct {
	Name string  `yaml:"name"`
	Text string  `yaml:"text"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Parse reads a chart definition.  Unknown fields are errors.
func Parse(data []byte) (*Chart, error) {
	var c Chart
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("unable to parse chart definition: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a chart definition file.  Relative source files are resolved
// against the file's directory.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read chart definition: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.baseDir = filepath.Dir(path)
	return c, nil
}

func (c *Chart) resolvePath(path string) string {
	if filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}

// GraphNames lists the graphs in definition order.
func (c *Chart) GraphNames() []string {
	names := make([]string, 0, len(c.Graphs))
	for _, g := range c.Graphs {
		names = append(names, g.Name)
	}
	return names
}

// Validate checks everything that can be checked without building the
// canvas, and reports every problem found.
func (c *Chart) Validate() error {
	var errs []error
	names := sets.NewString()
	itemName := func(kind, name string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("every %s needs a name", kind))
			return
		}
		if names.Has(name) {
			errs = append(errs, fmt.Errorf("duplicate item name %q", name))
		}
		names.Insert(name)
	}

	if len(c.Graphs) == 0 {
		errs = append(errs, fmt.Errorf("a chart needs at least one graph"))
	}
	for i := range c.Graphs {
		g := &c.Graphs[i]
		itemName("graph", g.Name)
		errs = append(errs, g.validate()...)
	}
	for _, t := range c.Texts {
		itemName("text", t.Name)
	}
	return utilerrors.NewAggregate(errs)
}
