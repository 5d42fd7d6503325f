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

package executor

import (
	"strconv"
	"time"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/meter"
)

// Metrics records how predicates are answered.
type Metrics struct {
	indexUsed          meter.Counter
	compositeIndexUsed meter.Counter
	operatorEvaluation meter.Counter
	indexQueryDuration meter.Histogram
	rangeToBetween     meter.Counter
	patternsCached     meter.Gauge
}

// NewMetrics creates the query instruments with provider.
func NewMetrics(provider meter.Provider) *Metrics {
	return &Metrics{
		indexUsed:          provider.Counter("index_used_total", "index"),
		compositeIndexUsed: provider.Counter("composite_index_used_total", "index", "params"),
		operatorEvaluation: provider.Counter("operator_evaluation_total", "operator"),
		indexQueryDuration: provider.Histogram("index_query_duration_seconds", meter.DefBuckets, "operator"),
		rangeToBetween:     provider.Counter("range_to_between_total"),
		patternsCached:     provider.Gauge("pattern_cache_entries"),
	}
}

// IndexUsed counts a lookup against index name.
func (m *Metrics) IndexUsed(name string) {
	if m == nil {
		return
	}
	m.indexUsed.Inc(1, name)
}

// CompositeIndexUsed counts a lookup using the first used of total composite key params.
func (m *Metrics) CompositeIndexUsed(name string, used, total int) {
	if m == nil {
		return
	}
	m.compositeIndexUsed.Inc(1, name, strconv.Itoa(used)+"/"+strconv.Itoa(total))
}

// OperatorEvaluated counts a per-record evaluation.
func (m *Metrics) OperatorEvaluated(keyword string) {
	if m == nil {
		return
	}
	m.operatorEvaluation.Inc(1, keyword)
}

// ObserveIndexQuery records the time spent building an index stream.
func (m *Metrics) ObserveIndexQuery(keyword string, d time.Duration) {
	if m == nil {
		return
	}
	m.indexQueryDuration.Observe(d.Seconds(), keyword)
}

// RangeToBetween counts a pair of range conditions merged into BETWEEN.
func (m *Metrics) RangeToBetween() {
	if m == nil {
		return
	}
	m.rangeToBetween.Inc(1)
}

// PatternsCached reports the number of compiled patterns held by a context.
func (m *Metrics) PatternsCached(n int) {
	if m == nil {
		return
	}
	m.patternsCached.Set(float64(n))
}
