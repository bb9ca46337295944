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

// Package metrics records what the render passes do as Prometheus metrics,
// and writes them out in the text exposition format.
package metrics

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"sigs.k8s.io/chartkit/chart"
	"sigs.k8s.io/chartkit/chart/axis"
)

const namespace = "chartkit"

// Recorder is a chart.Observer that keeps Prometheus metrics about each
// prepare pass: how long it took, the anomalies found, and the resolved
// range and tick counts of every drawn axis.
type Recorder struct {
	registry *prometheus.Registry

	passes    prometheus.Counter
	duration  prometheus.Histogram
	anomalies *prometheus.CounterVec
	ticks     *prometheus.GaugeVec
	ranges    *prometheus.GaugeVec
}

var _ chart.Observer = &Recorder{}

// NewRecorder constructs a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prepare_passes_total",
			Help:      "Number of canvas prepare passes run.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prepare_duration_seconds",
			Help:      "Time taken by canvas prepare passes.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomalies_total",
			Help:      "Anomalies recorded during prepare passes, by kind.",
		}, []string{"kind"}),
		ticks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "axis_ticks",
			Help:      "Ticks placed on each drawn axis in the last pass.",
		}, []string{"axis", "level"}),
		ranges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "axis_range",
			Help:      "Resolved range of each drawn axis in the last pass.",
		}, []string{"axis", "bound"}),
	}
	r.registry.MustRegister(r.passes, r.duration, r.anomalies, r.ticks, r.ranges)
	return r
}

// Registry exposes the underlying registry, e.g. to serve it.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Anomaly(a axis.Anomaly) {
	r.anomalies.WithLabelValues(string(a.Kind)).Inc()
}

func (r *Recorder) Prepared(c *chart.Canvas, elapsed time.Duration) {
	r.passes.Inc()
	r.duration.Observe(elapsed.Seconds())

	// axes that are no longer drawn shouldn't linger
	r.ticks.Reset()
	r.ranges.Reset()
	for _, g := range c.Graphs() {
		for _, name := range g.ActiveAxes() {
			ax := g.Axis(name)
			res, ok := ax.Range()
			if !ok {
				continue
			}
			id := ax.ID().String()
			ticks := ax.Ticks()
			r.ticks.WithLabelValues(id, axis.MajorTick.String()).Set(float64(len(ticks.Major)))
			r.ticks.WithLabelValues(id, axis.MinorTick.String()).Set(float64(len(ticks.Minor)))
			r.ranges.WithLabelValues(id, "min").Set(res.Min)
			r.ranges.WithLabelValues(id, "max").Set(res.Max)
		}
	}
}

// Dump writes every metric in the text exposition format.
func (r *Recorder) Dump(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("unable to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("unable to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// DumpFile writes every metric to the given file, replacing it.
func (r *Recorder) DumpFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create metrics file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("unable to write metrics file: %w", closeErr)
		}
	}()
	return r.Dump(f)
}
