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

	"sigs.k8s.io/chartkit/cmd/cli"
)

// TicksOptions prints the resolved range and ticks of every drawn axis.
type TicksOptions struct {
	*cli.ChartOptions

	Output string
	Graph  string
}

func NewTicksOptions(streams genericclioptions.IOStreams) *TicksOptions {
	return &TicksOptions{ChartOptions: cli.NewChartOptions(streams)}
}

func NewCmdTicks(streams genericclioptions.IOStreams) *cobra.Command {
	o := NewTicksOptions(streams)
	cmd := &cobra.Command{
		Use:   "ticks [-f] chart.yaml [-o json|yaml|table]",
		Short: "Show the range and ticks each axis of a chart resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := o.Complete(c, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run()
		},
	}
	o.AddFlags(cmd.Flags())
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "output format: json, yaml or table")
	cmd.Flags().StringVar(&o.Graph, "graph", o.Graph, "only show the axes of this graph")
	return cmd
}

func (o *TicksOptions) Validate() error {
	if err := o.ChartOptions.Validate(); err != nil {
		return err
	}
	switch o.Output {
	case "", "json", "yaml", "table":
		return nil
	}
	return fmt.Errorf("unsupported formatting option (%s)", o.Output)
}

func (o *TicksOptions) Run() error {
	canvas, err := o.Load()
	if err != nil {
		return err
	}
	if o.Graph != "" {
		if _, ok := canvas.Graph(o.Graph); !ok {
			return fmt.Errorf("the chart has no graph named %q", o.Graph)
		}
	}
	log := canvas.Prepare()
	if err := writeFormatted(o.Out, NewTickReport(canvas, log, o.Graph), o.Output); err != nil {
		return err
	}
	return o.Finish()
}
