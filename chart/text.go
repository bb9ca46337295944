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

// TextItem is a free-standing annotation on the page.
type TextItem struct {
	name string
	Text string
	X, Y float64
}

func NewText(name, text string, x, y float64) *TextItem {
	return &TextItem{name: name, Text: text, X: x, Y: y}
}

func (t *TextItem) Name() string {
	return t.name
}

func (t *TextItem) BoundingBox() Box {
	var b Box
	b.IncludePoint(t.X, t.Y)
	return b
}
