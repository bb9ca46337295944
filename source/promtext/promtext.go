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

// Package promtext reads data sets out of the Prometheus text exposition
// format, e.g. a saved scrape of a /metrics endpoint.
package promtext

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/model/textparse"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Sample is a single series value from an exposition.
type Sample struct {
	Labels labels.Labels
	Value  float64
	// Timestamp is in milliseconds, if the exposition had one.
	Timestamp *int64
}

// Name is the metric name of the sample.
func (s Sample) Name() string {
	return s.Labels.Get(labels.MetricName)
}

// Exposition is a parsed scrape.
type Exposition struct {
	Samples []Sample
	// Types maps metric family names to their declared type.
	Types map[string]string
	Help  map[string]string
}

// Parse reads the text exposition format.
func Parse(data []byte) (*Exposition, error) {
	exp := &Exposition{
		Types: map[string]string{},
		Help:  map[string]string{},
	}
	p := textparse.NewPromParser(data)
	for {
		entry, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to parse metrics: %w", err)
		}

		switch entry {
		case textparse.EntryType:
			name, typ := p.Type()
			exp.Types[string(name)] = string(typ)
		case textparse.EntryHelp:
			name, help := p.Help()
			exp.Help[string(name)] = string(help)
		case textparse.EntrySeries:
			_, ts, val := p.Series()
			var lset labels.Labels
			p.Metric(&lset)

			sample := Sample{Labels: lset, Value: val}
			if ts != nil {
				// NB: the parser reuses its buffers
				t := *ts
				sample.Timestamp = &t
			}
			exp.Samples = append(exp.Samples, sample)
		}
	}
	return exp, nil
}

// ParseFile reads and parses a file in the text exposition format.
func ParseFile(path string) (*Exposition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read metrics file: %w", err)
	}
	exp, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return exp, nil
}

// MetricNames lists the distinct metric names, sorted.
func (e *Exposition) MetricNames() []string {
	names := sets.NewString()
	for _, s := range e.Samples {
		names.Insert(s.Name())
	}
	return names.List()
}

// Select returns the samples of the named metric whose labels include every
// pair in match, in exposition order.
func (e *Exposition) Select(metric string, match map[string]string) []Sample {
	var out []Sample
	for _, s := range e.Samples {
		if s.Name() != metric || !matches(s.Labels, match) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matches(lset labels.Labels, match map[string]string) bool {
	for name, val := range match {
		if lset.Get(name) != val {
			return false
		}
	}
	return true
}

// Rows turns the samples of a metric into (x, y) rows.  x is taken from the
// xLabel label, parsed as a number (samples where it isn't are skipped), or
// is the sample's index if xLabel is empty.  Rows are sorted by x.
func (e *Exposition) Rows(metric string, match map[string]string, xLabel string) ([][]float64, error) {
	samples := e.Select(metric, match)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no series named %q matching %v", metric, match)
	}

	rows := make([][]float64, 0, len(samples))
	for i, s := range samples {
		x := float64(i)
		if xLabel != "" {
			v, err := strconv.ParseFloat(s.Labels.Get(xLabel), 64)
			if err != nil {
				continue
			}
			x = v
		}
		rows = append(rows, []float64{x, s.Value})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows, nil
}

// Bucket is one histogram bucket with its own (non-cumulative) count.
type Bucket struct {
	Lower, Upper float64
	Count        float64
}

// Buckets reads the classic histogram of the given name (the series of
// <metric>_bucket), summing across every series that matches.  Cumulative
// counts are turned into per-bucket counts.  The +Inf bucket is returned
// separately as overflow.
func (e *Exposition) Buckets(metric string, match map[string]string) (buckets []Bucket, overflow float64, err error) {
	samples := e.Select(metric+"_bucket", match)
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("no histogram named %q matching %v", metric, match)
	}

	cumulative := map[float64]float64{}
	for _, s := range samples {
		le, err := strconv.ParseFloat(s.Labels.Get(labels.BucketLabel), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("bucket of %q has an invalid %q label: %w", metric, labels.BucketLabel, err)
		}
		cumulative[le] += s.Value
	}

	bounds := make([]float64, 0, len(cumulative))
	for le := range cumulative {
		bounds = append(bounds, le)
	}
	sort.Float64s(bounds)

	prevCount := 0.0
	for i, upper := range bounds {
		count := cumulative[upper] - prevCount
		prevCount = cumulative[upper]
		if math.IsInf(upper, 1) {
			overflow = count
			continue
		}

		var lower float64
		switch {
		case i > 0:
			lower = bounds[i-1]
		case upper > 0:
			lower = 0
		case i+1 < len(bounds) && !math.IsInf(bounds[i+1], 1):
			// mirror the next bucket's width below the first bound
			lower = upper - (bounds[i+1] - upper)
		default:
			lower = upper - 1
		}
		buckets = append(buckets, Bucket{Lower: lower, Upper: upper, Count: count})
	}
	return buckets, overflow, nil
}

// HistogramRows lays the buckets of a histogram out as wboxes rows: the
// bucket's center, its count and its half width.
func (e *Exposition) HistogramRows(metric string, match map[string]string) ([][]float64, error) {
	buckets, _, err := e.Buckets(metric, match)
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []float64{(b.Lower + b.Upper) / 2, b.Count, (b.Upper - b.Lower) / 2})
	}
	return rows, nil
}
