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

package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/meter"
)

func TestProvider(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewProvider(meter.NewHierarchicalScope("ytdb_query", "_"), reg)

	c := p.Counter("index_used_total", "index")
	c.Inc(2, "Person.name")
	g := p.Gauge("pattern_cache_entries")
	g.Set(3)
	g.Add(-1)
	h := p.Histogram("index_query_duration_seconds", meter.DefBuckets, "operator")
	h.Observe(0.002, "=")

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"ytdb_query_index_used_total",
		"ytdb_query_pattern_cache_entries",
		"ytdb_query_index_query_duration_seconds",
	}, names)
	n, err := testutil.GatherAndCount(reg, "ytdb_query_index_query_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.(*counter).counter.WithLabelValues("Person.name")))
	assert.Equal(t, 2.0, testutil.ToFloat64(g.(*gauge).gauge.WithLabelValues()))
}
