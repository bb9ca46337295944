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

// Package render draws a prepared canvas through a drawing Backend.  Page
// coordinates (y up) are mapped onto device coordinates (y down), leaving a
// margin around the canvas bounds for tick labels.
package render

import (
	"fmt"
	"image/color"
	"math"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/debug"
)

// HAnchor and VAnchor say which part of a piece of text sits at the point it
// is drawn at.
type HAnchor int

const (
	AnchorStart HAnchor = iota
	AnchorMiddle
	AnchorEnd
)

type VAnchor int

const (
	AnchorTop VAnchor = iota
	AnchorCenter
	AnchorBottom
)

// Backend is a device that can be drawn on.  Coordinates are device units
// with y increasing downwards.
type Backend interface {
	Line(x1, y1, x2, y2 float64, c color.Color)
	Polyline(xs, ys []float64, c color.Color)
	Circle(x, y, r float64, c color.Color)
	// Rect fills a rectangle whose top-left corner is at x, y.
	Rect(x, y, w, h float64, c color.Color)
	Text(x, y float64, s string, h HAnchor, v VAnchor, c color.Color)

	TextWidth(s string) float64
	TextHeight() float64

	// Close finishes the drawing, writing it out if needed.
	Close() error
}

// Opener creates a backend of the given device size.
type Opener func(width, height int) (Backend, error)

// Margin is the space left around the canvas bounds, in device units.
const Margin = 60

var (
	Foreground = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	GridColor  = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	Background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	// Palette colors data sets in turn.
	Palette = []color.RGBA{
		{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
		{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
		{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
		{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
		{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	}
)

var drawLog = debug.NewDebugLogger("draw.log")

// page maps page coordinates onto the device.
type page struct {
	minX, maxY float64
	width      int
	height     int
}

func newPage(bounds chart.Box) page {
	if bounds.Empty() {
		bounds = chart.Box{}
		bounds.IncludePoint(0, 0)
		bounds.IncludePoint(100, 100)
	}
	return page{
		minX:   bounds.MinX,
		maxY:   bounds.MaxY,
		width:  int(math.Ceil(bounds.Width())) + 2*Margin,
		height: int(math.Ceil(bounds.Height())) + 2*Margin,
	}
}

func (p page) device(x, y float64) (float64, float64) {
	return x - p.minX + Margin, p.maxY - y + Margin
}

// Size returns the device size a canvas renders at.  The canvas must have
// been prepared.
func Size(c *chart.Canvas) (width, height int) {
	p := newPage(c.Bounds())
	return p.width, p.height
}

// Render prepares the canvas if it changed since its last pass, then draws
// every item on it.
func Render(c *chart.Canvas, open Opener) error {
	if c.Dirty() {
		c.Prepare()
	}
	p := newPage(c.Bounds())
	b, err := open(p.width, p.height)
	if err != nil {
		return fmt.Errorf("unable to open backend: %w", err)
	}
	b.Rect(0, 0, float64(p.width), float64(p.height), Background)

	for _, item := range c.Items() {
		switch it := item.(type) {
		case *chart.Graph:
			drawGraph(b, p, it)
		case *chart.TextItem:
			x, y := p.device(it.X, it.Y)
			b.Text(x, y, it.Text, AnchorStart, AnchorBottom, Foreground)
		default:
			drawLog.Printf("don't know how to draw item %s (%T), skipping", item.Name(), item)
		}
	}

	if err := b.Close(); err != nil {
		return fmt.Errorf("unable to finish drawing: %w", err)
	}
	return nil
}

// SeriesColor is the color the i-th data set of a graph is drawn in.
func SeriesColor(i int) color.RGBA {
	return Palette[i%len(Palette)]
}

// Fit wraps open so that the page is drawn stretched onto a device of the
// given size, whatever size the canvas asks for.
func Fit(open Opener, width, height int) Opener {
	return func(pageWidth, pageHeight int) (Backend, error) {
		b, err := open(width, height)
		if err != nil {
			return nil, err
		}
		return &scaled{
			Backend: b,
			sx:      float64(width) / float64(pageWidth),
			sy:      float64(height) / float64(pageHeight),
		}, nil
	}
}

type scaled struct {
	Backend
	sx, sy float64
}

func (s *scaled) Line(x1, y1, x2, y2 float64, c color.Color) {
	s.Backend.Line(x1*s.sx, y1*s.sy, x2*s.sx, y2*s.sy, c)
}

func (s *scaled) Polyline(xs, ys []float64, c color.Color) {
	sxs, sys := make([]float64, len(xs)), make([]float64, len(ys))
	for i := range xs {
		sxs[i] = xs[i] * s.sx
	}
	for i := range ys {
		sys[i] = ys[i] * s.sy
	}
	s.Backend.Polyline(sxs, sys, c)
}

func (s *scaled) Circle(x, y, r float64, c color.Color) {
	s.Backend.Circle(x*s.sx, y*s.sy, r*math.Min(s.sx, s.sy), c)
}

func (s *scaled) Rect(x, y, w, h float64, c color.Color) {
	s.Backend.Rect(x*s.sx, y*s.sy, w*s.sx, h*s.sy, c)
}

func (s *scaled) Text(x, y float64, str string, h HAnchor, v VAnchor, c color.Color) {
	s.Backend.Text(x*s.sx, y*s.sy, str, h, v, c)
}

// text keeps its device size, so it takes up more (or less) of the page
func (s *scaled) TextWidth(str string) float64 {
	return s.Backend.TextWidth(str) / s.sx
}

func (s *scaled) TextHeight() float64 {
	return s.Backend.TextHeight() / s.sy
}
