// Licensed to Apache Software Foundation (ASF) under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Apache Software Foundation (ASF) licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package meter abstracts the metric instruments used by the query engine.
package meter

type (
	// Buckets are histogram bucket boundaries.
	Buckets []float64

	// LabelPairs maps label names to values.
	LabelPairs map[string]string
)

// DefBuckets is the default buckets for histograms.
var DefBuckets = Buckets{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}

// Merge returns the union of p and other. Labels in other win.
func (p LabelPairs) Merge(other LabelPairs) LabelPairs {
	result := make(LabelPairs, len(p)+len(other))
	for k, v := range p {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Provider creates instruments.
type Provider interface {
	Counter(name string, labelNames ...string) Counter
	Gauge(name string, labelNames ...string) Gauge
	Histogram(name string, buckets Buckets, labelNames ...string) Histogram
}

// Scope is a namespace wrapper for metrics.
type Scope interface {
	ConstLabels(labels LabelPairs) Scope
	SubScope(name string) Scope
	GetNamespace() string
	GetLabels() LabelPairs
}

// Counter only goes up.
type Counter interface {
	Inc(delta float64, labelValues ...string)
}

// Gauge goes up and down.
type Gauge interface {
	Set(value float64, labelValues ...string)
	Add(delta float64, labelValues ...string)
}

// Histogram samples observations into buckets.
type Histogram interface {
	Observe(value float64, labelValues ...string)
}

// NoopProvider returns a provider whose instruments discard every sample.
func NoopProvider() Provider {
	return noopProvider{}
}

type noopProvider struct{}

func (noopProvider) Counter(string, ...string) Counter { return noop{} }

func (noopProvider) Gauge(string, ...string) Gauge { return noop{} }

func (noopProvider) Histogram(string, Buckets, ...string) Histogram { return noop{} }

type noop struct{}

func (noop) Inc(float64, ...string) {}

func (noop) Set(float64, ...string) {}

func (noop) Add(float64, ...string) {}

func (noop) Observe(float64, ...string) {}
