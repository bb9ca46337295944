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
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/printers"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/cmd/cli"
	"sigs.k8s.io/chartkit/source/promtext"
)

// HistogramOptions charts a Prometheus histogram straight from a metrics
// scrape, without a chart definition.
type HistogramOptions struct {
	*cli.ChartOptions

	Input  string
	Metric string
	Match  map[string]string
	LogY   bool

	Output        string
	Width, Height int
}

func NewHistogramOptions(streams genericclioptions.IOStreams) *HistogramOptions {
	return &HistogramOptions{ChartOptions: cli.NewChartOptions(streams)}
}

func NewCmdHistogram(streams genericclioptions.IOStreams) *cobra.Command {
	o := NewHistogramOptions(streams)
	cmd := &cobra.Command{
		Use:   "histogram --input metrics.prom --metric NAME [-o out.svg|out.png]",
		Short: "Chart a histogram from a Prometheus text exposition, or list its buckets",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run()
		},
	}
	o.AddMetricsFlag(cmd.Flags())
	cmd.Flags().StringVarP(&o.Input, "input", "i", o.Input, "file holding metrics in the Prometheus text format")
	cmd.Flags().StringVar(&o.Metric, "metric", o.Metric, "histogram name, without the _bucket suffix")
	cmd.Flags().StringToStringVar(&o.Match, "match", o.Match, "only use series with these label values")
	cmd.Flags().BoolVar(&o.LogY, "log-y", o.LogY, "use a logarithmic count axis")
	addImageFlags(cmd, &o.Output, &o.Width, &o.Height)
	return cmd
}

func (o *HistogramOptions) Validate() error {
	if o.Input == "" {
		return fmt.Errorf("a metrics file is required (--input)")
	}
	if o.Metric == "" {
		return fmt.Errorf("a histogram name is required (--metric)")
	}
	if o.Output == "" {
		return nil
	}
	_, err := openerFor(o.Output, o.Width, o.Height)
	return err
}

func (o *HistogramOptions) Run() error {
	expo, err := promtext.ParseFile(o.Input)
	if err != nil {
		return err
	}
	buckets, overflow, err := expo.Buckets(o.Metric, o.Match)
	if err != nil {
		return err
	}

	if o.Output == "" {
		return o.printBuckets(buckets, overflow)
	}

	rows, err := expo.HistogramRows(o.Metric, o.Match)
	if err != nil {
		return err
	}
	canvas, err := o.histogramCanvas(rows)
	if err != nil {
		return err
	}
	if overflow > 0 {
		fmt.Fprintf(o.ErrOut, "%s observations above the last bucket are not drawn\n", axis.NumericDisplay(overflow))
	}
	if err := drawTo(o.ChartOptions, canvas, o.Output, o.Width, o.Height); err != nil {
		return err
	}
	return o.Finish()
}

func (o *HistogramOptions) histogramCanvas(rows [][]float64) (*chart.Canvas, error) {
	g := chart.NewGraph("histogram")
	g.Title = o.Metric
	g.Axis("x1").Label = o.Metric
	y := g.Axis("y1")
	y.Label = "count"
	if o.LogY {
		y.Scale = axis.Logarithmic
	} else {
		zero := 0.0
		y.SetHardRange(&zero, nil)
	}
	g.AddDataSet(chart.NewDataSet(o.Metric, chart.WBoxes, rows))

	canvas := chart.NewCanvas()
	if err := canvas.Add(g); err != nil {
		return nil, err
	}
	o.Observe(canvas)
	return canvas, nil
}

func (o *HistogramOptions) printBuckets(buckets []promtext.Bucket, overflow float64) error {
	w := printers.GetNewTabWriter(o.Out)
	fmt.Fprintln(w, "LOWER\tUPPER\tCOUNT")
	for _, b := range buckets {
		fmt.Fprintf(w, "%s\t%s\t%s\n", axis.NumericDisplay(b.Lower), axis.NumericDisplay(b.Upper), axis.NumericDisplay(b.Count))
	}
	if len(buckets) > 0 {
		fmt.Fprintf(w, "%s\t%s\t%s\n", axis.NumericDisplay(buckets[len(buckets)-1].Upper), "+Inf", axis.NumericDisplay(overflow))
	}
	return w.Flush()
}
