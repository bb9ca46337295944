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
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
	"sigs.k8s.io/chartkit/cmd/cli"
	"sigs.k8s.io/chartkit/debug"
)

// ReplOptions runs an interactive shell over a chart: scroll, zoom and pin
// axes, then look at the ranges and ticks that result.
type ReplOptions struct {
	*cli.ChartOptions
}

func NewReplOptions(streams genericclioptions.IOStreams) *ReplOptions {
	return &ReplOptions{ChartOptions: cli.NewChartOptions(streams)}
}

func NewCmdRepl(streams genericclioptions.IOStreams) *cobra.Command {
	o := NewReplOptions(streams)
	cmd := &cobra.Command{
		Use:   "repl [-f] chart.yaml",
		Short: "Interactively scroll, zoom and inspect the axes of a chart",
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
	return cmd
}

func (o *ReplOptions) Run() error {
	canvas, err := o.Load()
	if err != nil {
		return err
	}
	s := newReplSession(o.ChartOptions, canvas)
	o.Fprintf("%d graph(s) loaded from %s; type \"help\" for commands, \"quit\" to leave\n", len(canvas.Graphs()), o.File)

	p := prompt.New(s.execute, s.complete,
		prompt.OptionPrefix("chartkit> "),
		prompt.OptionTitle("chartkit"),
		prompt.OptionPrefixTextColor(prompt.Cyan),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && cli.IsExit(in)
		}),
	)
	p.Run()

	cli.Farewell(o.Out)
	return o.Finish()
}

type replCommand struct {
	name, usage, help string
	// axisArg commands take an axis reference first; the others may take a
	// graph name.
	axisArg bool
	run     func(s *replSession, args []string) error
}

var replCommands []replCommand

func init() {
	replCommands = []replCommand{
		{name: "graphs", usage: "graphs", help: "list the graphs", run: (*replSession).listGraphs},
		{name: "ranges", usage: "ranges [graph]", help: "show the range of each drawn axis", run: (*replSession).showRanges},
		{name: "ticks", usage: "ticks [graph]", help: "show the ticks of each drawn axis", run: (*replSession).showTicks},
		{name: "scroll", usage: "scroll graph/axis fraction", help: "scroll an axis by a fraction of its length", axisArg: true, run: (*replSession).scroll},
		{name: "zoom", usage: "zoom graph/axis factor [center]", help: "zoom an axis in (factor > 1) or out around a fractional position", axisArg: true, run: (*replSession).zoom},
		{name: "range", usage: "range graph/axis min|* max|*", help: "pin (or, with *, free) the bounds of an axis", axisArg: true, run: (*replSession).pin},
		{name: "anomalies", usage: "anomalies", help: "show what went wrong in the last pass", run: (*replSession).showAnomalies},
		{name: "reload", usage: "reload", help: "re-read the chart definition, undoing any changes", run: (*replSession).reload},
		{name: "help", usage: "help", help: "show this help", run: (*replSession).help},
	}
}

// replSession executes shell commands against a canvas, writing the results
// to out.  It doesn't depend on a terminal.
type replSession struct {
	opts   *cli.ChartOptions
	canvas *chart.Canvas
	log    *axis.Log
	out    io.Writer
}

func newReplSession(opts *cli.ChartOptions, canvas *chart.Canvas) *replSession {
	s := &replSession{opts: opts, canvas: canvas, out: opts.Out}
	s.log = canvas.Prepare()
	return s
}

func (s *replSession) execute(input string) {
	fields := strings.Fields(input)
	if len(fields) == 0 || cli.IsExit(input) {
		return
	}
	for _, c := range replCommands {
		if c.name != fields[0] {
			continue
		}
		debug.Debugln("repl:", input)
		if err := c.run(s, fields[1:]); err != nil {
			debug.Errorf("repl command %q failed: %v", input, err)
			fmt.Fprintf(s.out, "error: %v (usage: %s)\n", err, c.usage)
		}
		return
	}
	fmt.Fprintf(s.out, "no known command %q (hint: try %q)\n", fields[0], "help")
}

func (s *replSession) complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	if strings.TrimSpace(before) == "" {
		return []prompt.Suggest{}
	}
	fields := strings.Fields(before)
	word := d.GetWordBeforeCursor()
	if len(fields) == 1 && word != "" {
		suggests := make([]prompt.Suggest, 0, len(replCommands))
		for _, c := range replCommands {
			suggests = append(suggests, prompt.Suggest{Text: c.name, Description: c.help})
		}
		return prompt.FilterHasPrefix(suggests, word, true)
	}

	// only the first argument is completed
	argIdx := len(fields) - 1
	if word == "" {
		argIdx = len(fields)
	}
	if argIdx != 1 {
		return []prompt.Suggest{}
	}
	for _, c := range replCommands {
		if c.name != fields[0] {
			continue
		}
		var suggests []prompt.Suggest
		for _, g := range s.canvas.Graphs() {
			if !c.axisArg {
				suggests = append(suggests, prompt.Suggest{Text: g.Name(), Description: g.Title})
				continue
			}
			for _, ax := range g.Axes() {
				suggests = append(suggests, prompt.Suggest{Text: ax.ID().String(), Description: ax.Label})
			}
		}
		return prompt.FilterHasPrefix(suggests, word, true)
	}
	return []prompt.Suggest{}
}

// prepare runs a pass if anything changed since the last one.
func (s *replSession) prepare() {
	if s.canvas.Dirty() {
		s.log = s.canvas.Prepare()
	}
}

func (s *replSession) graphsFor(args []string) ([]*chart.Graph, error) {
	switch len(args) {
	case 0:
		return s.canvas.Graphs(), nil
	case 1:
		g, ok := s.canvas.Graph(args[0])
		if !ok {
			return nil, fmt.Errorf("no graph named %q", args[0])
		}
		return []*chart.Graph{g}, nil
	}
	return nil, fmt.Errorf("too many arguments")
}

func (s *replSession) listGraphs(args []string) error {
	for _, g := range s.canvas.Graphs() {
		dims := "2D"
		if g.ThreeDimensional {
			dims = "3D"
		}
		fmt.Fprintf(s.out, "%s\t%s\t%d data set(s)\t%s\n", g.Name(), dims, len(g.DataSets), g.Title)
	}
	return nil
}

func (s *replSession) showRanges(args []string) error {
	graphs, err := s.graphsFor(args)
	if err != nil {
		return err
	}
	s.prepare()
	for _, g := range graphs {
		for _, name := range g.ActiveAxes() {
			s.printRange(g.Axis(name))
		}
	}
	return nil
}

func (s *replSession) printRange(ax *axis.Axis) {
	res, ok := ax.Range()
	if !ok {
		fmt.Fprintf(s.out, "%s: unresolved\n", ax.ID())
		return
	}
	fmt.Fprintf(s.out, "%s: [%s, %s] %s\n", ax.ID(),
		axis.NumericDisplay(res.Min), axis.NumericDisplay(res.Max), res.Scale)
}

func (s *replSession) showTicks(args []string) error {
	graph := ""
	if len(args) > 0 {
		graphs, err := s.graphsFor(args)
		if err != nil {
			return err
		}
		graph = graphs[0].Name()
	}
	s.prepare()
	return writeFormatted(s.out, NewTickReport(s.canvas, s.log, graph), "table")
}

func (s *replSession) showAnomalies(args []string) error {
	s.prepare()
	if s.log.Len() == 0 {
		fmt.Fprintln(s.out, "no anomalies")
		return nil
	}
	for _, a := range s.log.Entries() {
		fmt.Fprintf(s.out, "%s: %s\n", a.Kind, a.Message)
	}
	return nil
}

func (s *replSession) lookup(ref string) (*chart.Graph, string, error) {
	id, err := axis.ParseID(ref)
	if err != nil {
		return nil, "", err
	}
	g, ok := s.canvas.Graph(id.Chart)
	if !ok {
		return nil, "", fmt.Errorf("no graph named %q", id.Chart)
	}
	if g.Axis(id.Axis) == nil {
		return nil, "", fmt.Errorf("graph %s has no axis %q", id.Chart, id.Axis)
	}
	return g, id.Axis, nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", arg)
		}
		out[i] = v
	}
	return out, nil
}

func (s *replSession) scroll(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected an axis and a fraction")
	}
	g, name, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	vals, err := parseFloats(args[1:])
	if err != nil {
		return err
	}
	s.prepare()
	changed, err := g.ScrollAxis(name, vals[0])
	if err != nil {
		return err
	}
	return s.afterChange(g.Axis(name), changed, "scrolled")
}

func (s *replSession) zoom(args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("expected an axis, a factor and optionally a center")
	}
	g, name, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	vals, err := parseFloats(args[1:])
	if err != nil {
		return err
	}
	center := 0.5
	if len(vals) == 2 {
		center = vals[1]
	}
	s.prepare()
	changed, err := g.ZoomAxis(name, vals[0], center)
	if err != nil {
		return err
	}
	return s.afterChange(g.Axis(name), changed, "zoomed")
}

func (s *replSession) pin(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("expected an axis, a minimum and a maximum")
	}
	g, name, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	var bounds [2]*float64
	for i, arg := range args[1:] {
		if arg == "*" {
			continue
		}
		vals, err := parseFloats([]string{arg})
		if err != nil {
			return err
		}
		bounds[i] = &vals[0]
	}
	ax := g.Axis(name)
	ax.SetHardRange(bounds[0], bounds[1])
	s.canvas.Invalidate()
	return s.afterChange(ax, true, "pinned")
}

func (s *replSession) afterChange(ax *axis.Axis, changed bool, verb string) error {
	if !changed {
		return fmt.Errorf("%s could not be %s", ax.ID(), verb)
	}
	s.prepare()
	s.printRange(ax)
	return nil
}

func (s *replSession) reload(args []string) error {
	s.opts.Definition = nil
	canvas, err := s.opts.Load()
	if err != nil {
		return err
	}
	s.canvas = canvas
	s.log = canvas.Prepare()
	fmt.Fprintf(s.out, "reloaded %s\n", s.opts.File)
	return nil
}

func (s *replSession) help(args []string) error {
	for _, c := range replCommands {
		fmt.Fprintf(s.out, "  %-34s %s\n", c.usage, c.help)
	}
	fmt.Fprintln(s.out, "  quit                               leave")
	return nil
}
