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

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/protobuf/proto"
	"github.com/hokaccha/go-prettyjson"
	"gopkg.in/yaml.v2"
	"k8s.io/cli-runtime/pkg/printers"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
)

// AxisReport is the resolved state of one drawn axis.
type AxisReport struct {
	Axis  string      `json:"axis" yaml:"axis"`
	Label string      `json:"label,omitempty" yaml:"label,omitempty"`
	Scale string      `json:"scale" yaml:"scale"`
	Min   float64     `json:"min" yaml:"min"`
	Max   float64     `json:"max" yaml:"max"`
	Major []axis.Tick `json:"major" yaml:"major"`
	Minor []axis.Tick `json:"minor" yaml:"minor"`
}

// TickReport is what `chartkit ticks` prints.
type TickReport struct {
	Axes      []AxisReport `json:"axes" yaml:"axes"`
	Anomalies []string     `json:"anomalies,omitempty" yaml:"anomalies,omitempty"`
}

// NewTickReport collects the drawn axes of a prepared canvas, optionally
// only those of one graph.
func NewTickReport(c *chart.Canvas, log *axis.Log, graph string) *TickReport {
	report := &TickReport{}
	for _, g := range c.Graphs() {
		if graph != "" && g.Name() != graph {
			continue
		}
		for _, name := range g.ActiveAxes() {
			ax := g.Axis(name)
			res, ok := ax.Range()
			if !ok {
				continue
			}
			r := AxisReport{
				Axis:  ax.ID().String(),
				Label: ax.Label,
				Scale: res.Scale.String(),
				Min:   res.Min,
				Max:   res.Max,
			}
			if ticks := ax.Ticks(); ticks != nil {
				r.Major, r.Minor = ticks.Major, ticks.Minor
			}
			report.Axes = append(report.Axes, r)
		}
	}
	for _, a := range log.Entries() {
		report.Anomalies = append(report.Anomalies, a.Message)
	}
	return report
}

func ToPrettyJson(v interface{}) (*string, error) {
	s, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return proto.String(string(s)), nil
}

func ToPrettyColoredJson(v interface{}) (*string, error) {
	f := prettyjson.NewFormatter()
	f.Indent = 4
	f.KeyColor = color.New(color.FgGreen)
	f.NullColor = color.New(color.Underline)
	f.NumberColor = color.New(color.FgYellow)
	f.StringColor = color.New(color.FgHiCyan)
	f.BoolColor = nil

	s, err := f.Marshal(v)
	if err != nil {
		return nil, err
	}
	return proto.String(string(s)), nil
}

func ToYaml(v interface{}) (*string, error) {
	o, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return proto.String(string(o)), nil
}

// ToTable lays a report out with one row per axis.
func ToTable(report *TickReport) (*string, error) {
	var sb strings.Builder
	w := printers.GetNewTabWriter(&sb)
	fmt.Fprintln(w, "AXIS\tSCALE\tMIN\tMAX\tMAJOR TICKS\tMINOR")
	for _, ax := range report.Axes {
		labels := make([]string, 0, len(ax.Major))
		for _, t := range ax.Major {
			labels = append(labels, t.Label)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", ax.Axis, ax.Scale,
			axis.NumericDisplay(ax.Min), axis.NumericDisplay(ax.Max), strings.Join(labels, " "), len(ax.Minor))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	for _, a := range report.Anomalies {
		sb.WriteString("warning: " + a + "\n")
	}
	return proto.String(sb.String()), nil
}

// ToPrettyFormat renders a report as json, yaml or a table.
func ToPrettyFormat(report *TickReport, outputType string, colorized bool) (*string, error) {
	switch outputType {
	case "json":
		if colorized {
			return ToPrettyColoredJson(report)
		}
		return ToPrettyJson(report)
	case "yaml":
		return ToYaml(report)
	case "table", "":
		return ToTable(report)
	}
	return nil, fmt.Errorf("unsupported formatting option (%s)", outputType)
}

func writeFormatted(w io.Writer, report *TickReport, outputType string) error {
	o, err := ToPrettyFormat(report, outputType, !color.NoColor)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, strings.TrimRight(*o, "\n"))
	return err
}
