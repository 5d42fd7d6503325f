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

// Package prom exports meter instruments to a Prometheus registry.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/meter"
)

type provider struct {
	scope meter.Scope
	reg   prometheus.Registerer
}

// NewProvider creates a Prometheus backed provider registering into reg.
// Metric names are prefixed with the namespace of scope.
func NewProvider(scope meter.Scope, reg prometheus.Registerer) meter.Provider {
	return &provider{
		scope: scope,
		reg:   reg,
	}
}

func (p *provider) fqName(name string) string {
	if ns := p.scope.GetNamespace(); ns != "" {
		return ns + "_" + name
	}
	return name
}

// Counter returns a prometheus counter.
func (p *provider) Counter(name string, labels ...string) meter.Counter {
	fq := p.fqName(name)
	return &counter{
		counter: promauto.With(p.reg).NewCounterVec(prometheus.CounterOpts{
			Name:        fq,
			Help:        fq,
			ConstLabels: prometheus.Labels(p.scope.GetLabels()),
		}, labels),
	}
}

// Gauge returns a prometheus gauge.
func (p *provider) Gauge(name string, labels ...string) meter.Gauge {
	fq := p.fqName(name)
	return &gauge{
		gauge: promauto.With(p.reg).NewGaugeVec(prometheus.GaugeOpts{
			Name:        fq,
			Help:        fq,
			ConstLabels: prometheus.Labels(p.scope.GetLabels()),
		}, labels),
	}
}

// Histogram returns a prometheus histogram.
func (p *provider) Histogram(name string, buckets meter.Buckets, labels ...string) meter.Histogram {
	fq := p.fqName(name)
	return &histogram{
		histogram: promauto.With(p.reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:        fq,
			Help:        fq,
			ConstLabels: prometheus.Labels(p.scope.GetLabels()),
			Buckets:     buckets,
		}, labels),
	}
}
