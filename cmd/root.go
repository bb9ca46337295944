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

// Package cmd holds the chartkit commands.
package cmd

import (
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

// NewCmdChartkit constructs the root command, with every subcommand.
func NewCmdChartkit(streams genericclioptions.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chartkit",
		Short: "Resolve axis ranges and ticks for chart definitions, and draw them",
		Example: `
chartkit render -f chart.yaml -o chart.svg           # draw a chart as SVG (or .png)
chartkit ticks -f chart.yaml -o json                 # show each axis's range and ticks
chartkit view -f chart.yaml                          # interactive terminal view
chartkit repl -f chart.yaml                          # interactive shell to scroll, zoom and inspect axes
chartkit histogram --input metrics.prom --metric request_duration_seconds -o hist.svg
`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		NewCmdRender(streams),
		NewCmdTicks(streams),
		NewCmdView(streams),
		NewCmdRepl(streams),
		NewCmdHistogram(streams),
	)
	return cmd
}
