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
	"context"
	"fmt"

	"github.com/gdamore/tcell"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/cmd/cli"
	"sigs.k8s.io/chartkit/debug"
	"sigs.k8s.io/chartkit/term"
)

const (
	scrollStep = 0.1
	zoomStep   = 2

	viewHelp = "←→↑↓ scroll  +/- zoom  tab next graph  r reload  q quit"
)

var hintStyle = tcell.StyleDefault.Dim(true)

// ViewOptions shows a chart in the terminal, with keys to scroll and zoom
// its axes.
type ViewOptions struct {
	*cli.ChartOptions

	Graph string

	// makeScreen is overridden in tests.
	makeScreen func() (tcell.Screen, error)
}

func NewViewOptions(streams genericclioptions.IOStreams) *ViewOptions {
	return &ViewOptions{ChartOptions: cli.NewChartOptions(streams)}
}

func NewCmdView(streams genericclioptions.IOStreams) *cobra.Command {
	o := NewViewOptions(streams)
	cmd := &cobra.Command{
		Use:   "view [-f] chart.yaml",
		Short: "Show a chart in the terminal, scrolling and zooming with the keyboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := o.Complete(c, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(c.Context())
		},
	}
	o.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&o.Graph, "graph", o.Graph, "graph to show first (defaults to the first one)")
	return cmd
}

func (o *ViewOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	canvas, err := o.Load()
	if err != nil {
		return err
	}
	v, err := newChartViewer(o.ChartOptions, canvas, o.Graph)
	if err != nil {
		return err
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	runner := &term.Runner{
		KeyHandler: v.handleKey,
		MakeScreen: o.makeScreen,
	}
	v.repaint = runner.RequestRepaint
	v.stop = stop
	v.refresh()

	layout := &term.SplitView{
		Dock:           term.PosBelow,
		DockSize:       6,
		DockMaxPercent: 40,
		Docked:         v.status,
		Flexed:         v.chart,
	}
	if err := runner.Run(ctx, layout); err != nil {
		return err
	}
	return o.Finish()
}

// chartViewer holds the state behind the view command's keys.  Its methods
// run on the terminal event loop.
type chartViewer struct {
	opts   *cli.ChartOptions
	canvas *chart.Canvas

	graphs  []string
	current int
	message string

	status *term.TextBox
	chart  *term.ChartView

	repaint func()
	stop    func()
}

func newChartViewer(opts *cli.ChartOptions, canvas *chart.Canvas, first string) (*chartViewer, error) {
	v := &chartViewer{
		opts:    opts,
		status:  &term.TextBox{},
		chart:   &term.ChartView{},
		repaint: func() {},
		stop:    func() {},
	}
	v.setCanvas(canvas)
	if len(v.graphs) == 0 {
		return nil, fmt.Errorf("the chart has no graphs to show")
	}
	if first != "" {
		found := false
		for i, name := range v.graphs {
			if name == first {
				v.current, found = i, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("the chart has no graph named %q", first)
		}
	}
	v.chart.Graph = v.graphs[v.current]
	return v, nil
}

func (v *chartViewer) setCanvas(canvas *chart.Canvas) {
	v.canvas = canvas
	v.chart.Canvas = canvas
	v.graphs = v.graphs[:0]
	for _, g := range canvas.Graphs() {
		v.graphs = append(v.graphs, g.Name())
	}
	if v.current >= len(v.graphs) {
		v.current = 0
	}
	if len(v.graphs) > 0 {
		v.chart.Graph = v.graphs[v.current]
	}
}

func (v *chartViewer) graph() *chart.Graph {
	g, _ := v.canvas.Graph(v.graphs[v.current])
	return g
}

func (v *chartViewer) handleKey(evt *tcell.EventKey) {
	switch evt.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.stop()
		return
	case tcell.KeyLeft:
		v.scroll("x1", -scrollStep)
	case tcell.KeyRight:
		v.scroll("x1", scrollStep)
	case tcell.KeyUp:
		v.scroll("y1", scrollStep)
	case tcell.KeyDown:
		v.scroll("y1", -scrollStep)
	case tcell.KeyTab:
		v.current = (v.current + 1) % len(v.graphs)
		v.chart.Graph = v.graphs[v.current]
		v.message = ""
	case tcell.KeyRune:
		switch evt.Rune() {
		case 'q':
			v.stop()
			return
		case '+', '=':
			v.zoom(zoomStep)
		case '-':
			v.zoom(1 / float64(zoomStep))
		case 'r':
			v.reload()
		default:
			return
		}
	default:
		return
	}
	v.refresh()
}

func (v *chartViewer) scroll(name string, frac float64) {
	changed, err := v.graph().ScrollAxis(name, frac)
	switch {
	case err != nil:
		debug.Errorf("unable to scroll %s: %v", name, err)
		v.message = err.Error()
	case !changed:
		v.message = fmt.Sprintf("%s can't be scrolled", name)
	default:
		v.message = ""
	}
}

// zoom zooms both x1 and y1 around their middles.
func (v *chartViewer) zoom(factor float64) {
	g := v.graph()
	var failed []string
	for _, name := range []string{"x1", "y1"} {
		if changed, err := g.ZoomAxis(name, factor, 0.5); err != nil || !changed {
			failed = append(failed, name)
		}
	}
	v.message = ""
	if len(failed) > 0 {
		v.message = fmt.Sprintf("unable to zoom %v", failed)
	}
}

// reload re-reads the chart definition, dropping any scrolling or zooming.
func (v *chartViewer) reload() {
	v.opts.Definition = nil
	canvas, err := v.opts.Load()
	if err != nil {
		debug.Errorf("unable to reload %s: %v", v.opts.File, err)
		v.message = err.Error()
		return
	}
	if len(canvas.Graphs()) == 0 {
		v.message = "the chart has no graphs to show"
		return
	}
	v.setCanvas(canvas)
	v.message = "reloaded " + v.opts.File
}

// refresh prepares the canvas again and rewrites the status pane.
func (v *chartViewer) refresh() {
	log := v.canvas.Prepare()
	v.status.Clear()
	term.DescribeGraph(v.status, v.graph(), log)
	if v.message != "" {
		v.status.WriteString(v.message+"\n", tcell.StyleDefault)
	}
	v.status.WriteString(viewHelp, hintStyle)
	v.repaint()
}
