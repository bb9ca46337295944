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

// Package svg is a vector render backend writing SVG documents.
package svg

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	svgo "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"

	"sigs.k8s.io/chartkit/render"
)

const (
	FontSize   = 11
	FontFamily = "sans-serif"

	// average advance of a glyph, relative to the font size
	charWidth = 0.6
)

// Backend draws onto an SVG document.
type Backend struct {
	doc    *svgo.SVG
	closer io.Closer
}

var _ render.Backend = &Backend{}

// New starts a document of the given size on w.
func New(w io.Writer, width, height int) *Backend {
	doc := svgo.New(w)
	doc.Start(width, height)
	return &Backend{doc: doc}
}

// Opener renders onto w.
func Opener(w io.Writer) render.Opener {
	return func(width, height int) (render.Backend, error) {
		return New(w, width, height), nil
	}
}

// FileOpener renders into the named file, which is closed along with the
// backend.
func FileOpener(path string) render.Opener {
	return func(width, height int) (render.Backend, error) {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("unable to create %s: %w", path, err)
		}
		b := New(f, width, height)
		b.closer = f
		return b, nil
	}
}

func px(f float64) int {
	return int(math.Round(f))
}

// hex formats c as a CSS color, plus its opacity when it isn't opaque.
func hex(c color.Color) (string, float64) {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "none", 0
	}
	// un-premultiply
	r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8), float64(a) / 0xffff
}

func stroke(c color.Color) string {
	h, alpha := hex(c)
	if alpha < 1 {
		return fmt.Sprintf("stroke:%s;stroke-opacity:%.3f;fill:none", h, alpha)
	}
	return fmt.Sprintf("stroke:%s;fill:none", h)
}

func fill(c color.Color) string {
	h, alpha := hex(c)
	if alpha < 1 {
		return fmt.Sprintf("fill:%s;fill-opacity:%.3f;stroke:none", h, alpha)
	}
	return fmt.Sprintf("fill:%s;stroke:none", h)
}

func (b *Backend) Line(x1, y1, x2, y2 float64, c color.Color) {
	b.doc.Line(px(x1), px(y1), px(x2), px(y2), stroke(c))
}

func (b *Backend) Polyline(xs, ys []float64, c color.Color) {
	ixs, iys := make([]int, len(xs)), make([]int, len(ys))
	for i := range xs {
		ixs[i], iys[i] = px(xs[i]), px(ys[i])
	}
	b.doc.Polyline(ixs, iys, stroke(c))
}

func (b *Backend) Circle(x, y, r float64, c color.Color) {
	rad := px(r)
	if rad < 1 {
		rad = 1
	}
	b.doc.Circle(px(x), px(y), rad, fill(c))
}

func (b *Backend) Rect(x, y, w, h float64, c color.Color) {
	b.doc.Rect(px(x), px(y), px(w), px(h), fill(c))
}

var textAnchors = map[render.HAnchor]string{
	render.AnchorStart:  "start",
	render.AnchorMiddle: "middle",
	render.AnchorEnd:    "end",
}

var baselines = map[render.VAnchor]string{
	render.AnchorTop:    "hanging",
	render.AnchorCenter: "central",
	render.AnchorBottom: "alphabetic",
}

func (b *Backend) Text(x, y float64, s string, h render.HAnchor, v render.VAnchor, c color.Color) {
	fillColor, _ := hex(c)
	style := fmt.Sprintf("font-family:%s;font-size:%dpx;text-anchor:%s;dominant-baseline:%s;fill:%s",
		FontFamily, FontSize, textAnchors[h], baselines[v], fillColor)
	b.doc.Text(px(x), px(y), s, style)
}

// TextWidth estimates the width of s from its width in terminal cells,
// which counts wide glyphs double.
func (b *Backend) TextWidth(s string) float64 {
	return float64(runewidth.StringWidth(s)) * FontSize * charWidth
}

func (b *Backend) TextHeight() float64 {
	return FontSize
}

func (b *Backend) Close() error {
	b.doc.End()
	if b.closer != nil {
		if err := b.closer.Close(); err != nil {
			return fmt.Errorf("unable to close svg output: %w", err)
		}
	}
	return nil
}
