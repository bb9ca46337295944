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

// DataSet is one series of rows plotted on a graph.
type DataSet struct {
	Title string
	Style Style
	// Axes names the x, y and z axes the rows are plotted against.
	Axes [3]string
	Rows [][]float64
}

// NewDataSet constructs a data set plotted against x1, y1 and z1.
func NewDataSet(title string, style Style, rows [][]float64) *DataSet {
	return &DataSet{
		Title: title,
		Style: style,
		Axes:  [3]string{"x1", "y1", "z1"},
		Rows:  rows,
	}
}
