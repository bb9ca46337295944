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

// Package raster is a render backend drawing onto an in-memory image, which
// can be written out as a PNG.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"sigs.k8s.io/chartkit/render"
)

// Backend draws onto an RGBA image.
type Backend struct {
	img  *image.RGBA
	face font.Face

	out    io.Writer
	closer io.Closer
}

var _ render.Backend = &Backend{}

// New creates a blank (transparent) image of the given size.
func New(width, height int) *Backend {
	return &Backend{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
}

// Image is the image drawn so far.
func (b *Backend) Image() *image.RGBA {
	return b.img
}

// Opener renders a PNG onto w.
func Opener(w io.Writer) render.Opener {
	return func(width, height int) (render.Backend, error) {
		b := New(width, height)
		b.out = w
		return b, nil
	}
}

// FileOpener renders a PNG into the named file.
func FileOpener(path string) render.Opener {
	return func(width, height int) (render.Backend, error) {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("unable to create %s: %w", path, err)
		}
		b := New(width, height)
		b.out, b.closer = f, f
		return b, nil
	}
}

func px(f float64) int {
	return int(math.Round(f))
}

func (b *Backend) plot(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(b.img.Rect)) {
		return
	}
	if _, _, _, a := c.RGBA(); a == 0xffff {
		b.img.Set(x, y, c)
		return
	}
	draw.Draw(b.img, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}

// Line draws a one pixel wide line, see
// https://en.wikipedia.org/wiki/Bresenham%27s_line_algorithm
func (b *Backend) Line(x1, y1, x2, y2 float64, c color.Color) {
	x0, y0, x, y := px(x1), px(y1), px(x2), px(y2)
	dx, dy := abs(x-x0), -abs(y-y0)
	sx, sy := 1, 1
	if x0 > x {
		sx = -1
	}
	if y0 > y {
		sy = -1
	}
	err := dx + dy
	for {
		b.plot(x0, y0, c)
		if x0 == x && y0 == y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func (b *Backend) Polyline(xs, ys []float64, c color.Color) {
	for i := 1; i < len(xs) && i < len(ys); i++ {
		b.Line(xs[i-1], ys[i-1], xs[i], ys[i], c)
	}
}

// Circle fills a disc.
func (b *Backend) Circle(x, y, r float64, c color.Color) {
	cx, cy, rad := px(x), px(y), px(r)
	for dy := -rad; dy <= rad; dy++ {
		for dx := -rad; dx <= rad; dx++ {
			if dx*dx+dy*dy <= rad*rad {
				b.plot(cx+dx, cy+dy, c)
			}
		}
	}
}

func (b *Backend) Rect(x, y, w, h float64, c color.Color) {
	r := image.Rect(px(x), px(y), px(x+w), px(y+h))
	draw.Draw(b.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func (b *Backend) Text(x, y float64, s string, h render.HAnchor, v render.VAnchor, c color.Color) {
	s = Plain(s)
	dr := &font.Drawer{Dst: b.img, Src: image.NewUniform(c), Face: b.face}
	width := dr.MeasureString(s).Ceil()
	metrics := b.face.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()

	left := px(x)
	switch h {
	case render.AnchorMiddle:
		left -= width / 2
	case render.AnchorEnd:
		left -= width
	}
	baseline := px(y)
	switch v {
	case render.AnchorTop:
		baseline += ascent
	case render.AnchorCenter:
		baseline += (ascent - descent) / 2
	}

	dr.Dot = fixed.Point26_6{X: fixed.I(left), Y: fixed.I(baseline)}
	dr.DrawString(s)
}

func (b *Backend) TextWidth(s string) float64 {
	return float64(font.MeasureString(b.face, Plain(s)).Ceil())
}

func (b *Backend) TextHeight() float64 {
	m := b.face.Metrics()
	return float64((m.Ascent + m.Descent).Ceil())
}

// Close encodes the image, if the backend was opened with somewhere to
// write it.
func (b *Backend) Close() error {
	if b.out == nil {
		return nil
	}
	if err := png.Encode(b.out, b.img); err != nil {
		if b.closer != nil {
			b.closer.Close()
		}
		return fmt.Errorf("unable to encode png: %w", err)
	}
	if b.closer != nil {
		if err := b.closer.Close(); err != nil {
			return fmt.Errorf("unable to close png output: %w", err)
		}
	}
	return nil
}
