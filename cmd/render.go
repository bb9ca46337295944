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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/cmd/cli"
	"sigs.k8s.io/chartkit/render"
	"sigs.k8s.io/chartkit/render/raster"
	"sigs.k8s.io/chartkit/render/svg"
)

// RenderOptions draws a chart definition to an image file.
type RenderOptions struct {
	*cli.ChartOptions

	Output        string
	Width, Height int
}

func NewRenderOptions(streams genericclioptions.IOStreams) *RenderOptions {
	return &RenderOptions{ChartOptions: cli.NewChartOptions(streams)}
}

func NewCmdRender(streams genericclioptions.IOStreams) *cobra.Command {
	o := NewRenderOptions(streams)
	cmd := &cobra.Command{
		Use:   "render [-f] chart.yaml -o out.svg|out.png",
		Short: "Draw a chart to an SVG or PNG file",
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
	addImageFlags(cmd, &o.Output, &o.Width, &o.Height)
	return cmd
}

func addImageFlags(cmd *cobra.Command, output *string, width, height *int) {
	cmd.Flags().StringVarP(output, "output", "o", *output, "image file to write; the format follows the extension (.svg or .png)")
	cmd.Flags().IntVar(width, "width", *width, "if set with --height, scale the drawing to this many pixels wide")
	cmd.Flags().IntVar(height, "height", *height, "if set with --width, scale the drawing to this many pixels high")
}

func (o *RenderOptions) Validate() error {
	if err := o.ChartOptions.Validate(); err != nil {
		return err
	}
	_, err := openerFor(o.Output, o.Width, o.Height)
	return err
}

func (o *RenderOptions) Run() error {
	canvas, err := o.Load()
	if err != nil {
		return err
	}
	if err := drawTo(o.ChartOptions, canvas, o.Output, o.Width, o.Height); err != nil {
		return err
	}
	return o.Finish()
}

// drawTo renders a canvas to an image file, reporting anomalies along the
// way.
func drawTo(o *cli.ChartOptions, canvas *chart.Canvas, output string, width, height int) error {
	open, err := openerFor(output, width, height)
	if err != nil {
		return err
	}
	log := canvas.Prepare()
	o.ReportAnomalies(log)
	if err := render.Render(canvas, open); err != nil {
		return err
	}
	o.Fprintf("wrote %s\n", output)
	return nil
}

func openerFor(output string, width, height int) (render.Opener, error) {
	if output == "" {
		return nil, fmt.Errorf("an output file is required (--output)")
	}
	if (width > 0) != (height > 0) || width < 0 || height < 0 {
		return nil, fmt.Errorf("--width and --height must be given together, and be positive")
	}

	var open render.Opener
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".svg":
		open = svg.FileOpener(output)
	case ".png":
		open = raster.FileOpener(output)
	default:
		return nil, fmt.Errorf("unsupported image format %q (use .svg or .png)", ext)
	}
	if width > 0 {
		open = render.Fit(open, width, height)
	}
	return open, nil
}
