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

// Package cli holds what the chartkit commands share: the chart file and
// metrics flags, and the interactive exit handling.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/config"
	"sigs.k8s.io/chartkit/metrics"
)

var warningColor = color.New(color.FgYellow).SprintFunc()

// ChartOptions are the flags of every command that works on a chart
// definition file.
type ChartOptions struct {
	File        string
	MetricsFile string

	genericclioptions.IOStreams

	Definition *config.Chart
	recorder   *metrics.Recorder
}

func NewChartOptions(streams genericclioptions.IOStreams) *ChartOptions {
	return &ChartOptions{IOStreams: streams}
}

func (o *ChartOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.File, "file", "f", o.File, "chart definition file (YAML)")
	o.AddMetricsFlag(flags)
}

// AddMetricsFlag adds just the --metrics-file flag, for commands that don't
// read a chart definition.
func (o *ChartOptions) AddMetricsFlag(flags *pflag.FlagSet) {
	flags.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "if set, write render metrics to this file (Prometheus text format) when done")
}

// Complete takes the chart definition file from the single positional
// argument, if --file wasn't given.
func (o *ChartOptions) Complete(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if o.File != "" {
		return fmt.Errorf("give the chart definition either as an argument or with --file, not both")
	}
	o.File = args[0]
	return nil
}

// Validate checks that a chart definition was given.
func (o *ChartOptions) Validate() error {
	if o.File == "" {
		return fmt.Errorf("a chart definition file is required (--file)")
	}
	return nil
}

// Load reads the chart definition and builds a fresh canvas from it.  It
// can be called again to start over.
func (o *ChartOptions) Load() (*chart.Canvas, error) {
	if o.Definition == nil {
		def, err := config.Load(o.File)
		if err != nil {
			return nil, err
		}
		o.Definition = def
	}
	canvas, err := o.Definition.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to build chart: %w", err)
	}
	o.Observe(canvas)
	return canvas, nil
}

// Observe hooks a canvas up to the metrics recorder, if metrics were asked
// for.
func (o *ChartOptions) Observe(canvas *chart.Canvas) {
	if o.MetricsFile == "" {
		return
	}
	if o.recorder == nil {
		o.recorder = metrics.NewRecorder()
	}
	canvas.Observer = o.recorder
}

// Finish writes out the metrics, if they were asked for.
func (o *ChartOptions) Finish() error {
	if o.recorder == nil {
		return nil
	}
	return o.recorder.DumpFile(o.MetricsFile)
}

// Fprintf writes to the output stream.
func (o *ChartOptions) Fprintf(format string, args ...interface{}) {
	fmt.Fprintf(o.Out, format, args...)
}

// ReportAnomalies writes each anomaly of a pass to the error stream.
func (o *ChartOptions) ReportAnomalies(log *axis.Log) {
	for _, a := range log.Entries() {
		fmt.Fprintf(o.ErrOut, "%s %s\n", warningColor("warning:"), a.Message)
	}
}
