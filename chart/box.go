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

package chart

import (
	"math"
)

// Box is an axis-aligned rectangle in page coordinates.  The zero value is
// empty.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
	set                    bool
}

func (b *Box) IncludePoint(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	if !b.set {
		*b = Box{MinX: x, MaxX: x, MinY: y, MaxY: y, set: true}
		return
	}
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
}

func (b *Box) IncludeBox(o Box) {
	if !o.set {
		return
	}
	b.IncludePoint(o.MinX, o.MinY)
	b.IncludePoint(o.MaxX, o.MaxY)
}

// Grow pads the box by margin on every side.
func (b Box) Grow(margin float64) Box {
	if !b.set {
		return b
	}
	return Box{MinX: b.MinX - margin, MinY: b.MinY - margin, MaxX: b.MaxX + margin, MaxY: b.MaxY + margin, set: true}
}

func (b Box) Empty() bool {
	return !b.set
}

func (b Box) Width() float64 {
	return b.MaxX - b.MinX
}

func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}
