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

package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/config"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

const cities = `
class: City
cluster: 12
records:
- rid: "#12:5"
  fields: {name: Rome, population: 2.8, founded: -753, twin: "#12:6"}
- rid: "#12:6"
  fields: {name: Paris, population: 2.1, founded: -250, twin: "#12:5", districts: [1, 2, 3]}
`

func query() *config.Query {
	q := &config.Query{}
	if err := q.FlagSet().Parse(nil); err != nil {
		panic(err)
	}
	return q
}

func TestParseDataset(t *testing.T) {
	db, err := parseDataset([]byte(cities))
	require.NoError(t, err)
	require.Len(t, db.docs, 2)
	assert.Equal(t, "City", db.class)
	assert.NotNil(t, db.Schema().Class("city"))

	rome, err := db.Load(rid.New(12, 5))
	require.NoError(t, err)
	assert.Equal(t, "City", rome.ClassName())
	assert.Equal(t, []string{"founded", "name", "population", "twin"}, rome.FieldNames())
	assert.Equal(t, int64(-753), record.Field(rome, "founded"))
	assert.Equal(t, 2.8, record.Field(rome, "population"))
	assert.Equal(t, rid.New(12, 6), record.Field(rome, "twin"))

	paris, err := db.Load(rid.New(12, 6))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, record.Field(paris, "districts"))

	_, err = db.Load(rid.New(12, 7))
	assert.Error(t, err)
}

func TestParseDatasetDefaults(t *testing.T) {
	db, err := parseDataset([]byte("records:\n- fields: {a: 1}\n- fields: {a: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, rid.New(defaultCluster, 0), db.docs[0].Identity())
	assert.Equal(t, rid.New(defaultCluster, 1), db.docs[1].Identity())

	_, err = parseDataset([]byte("records:\n- {rid: \"#1:1\"}\n- {rid: \"#1:1\"}\n"))
	assert.ErrorContains(t, err, "duplicated rid")
	_, err = parseDataset([]byte("records:\n- {rid: \"1-1\"}\n"))
	assert.Error(t, err)
	_, err = parseDataset([]byte("records: 5"))
	assert.Error(t, err)
}

func TestReadDataset(t *testing.T) {
	db, err := readDataset("-", strings.NewReader(cities))
	require.NoError(t, err)
	assert.Len(t, db.docs, 2)
	_, err = readDataset(t.TempDir()+"/missing.yaml", nil)
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, int64(30), parseValue("30"))
	assert.Equal(t, 2.5, parseValue("2.5"))
	assert.Equal(t, "Ann", parseValue("Ann"))
	assert.Equal(t, true, parseValue("true"))
	assert.Nil(t, parseValue("null"))
	assert.Nil(t, parseValue(""))
	assert.Equal(t, rid.New(3, 4), parseValue("'#3:4'"))
	assert.Equal(t, "#nope", parseValue("'#nope'"))
	assert.Equal(t, []any{int64(18), "x"}, parseValue("[18, x]"))
	assert.Equal(t, "[unclosed", parseValue("[unclosed"))
	assert.Equal(t, "n", parseValue("n"))
	assert.Equal(t, "yes", parseValue("yes"))
	assert.Equal(t, "off", parseValue("off"))
	assert.Equal(t, false, parseValue("false"))
	assert.Equal(t, map[string]any{"eyes": "blue", "n": int64(2)}, parseValue("{eyes: blue, n: 2}"))
}

func TestBetweenBounds(t *testing.T) {
	assert.Equal(t, []any{1, "AND", 2}, betweenBounds([]any{1, 2}))
	assert.Equal(t, []any{1, "AND", 2}, betweenBounds([]any{1, "AND", 2}))
	assert.Equal(t, 5, betweenBounds(5))
}

func TestEvaluate(t *testing.T) {
	db, err := parseDataset([]byte(cities))
	require.NoError(t, err)
	tests := []struct {
		opts      evalOptions
		want      []rid.RID
		usedIndex bool
	}{
		{opts: evalOptions{field: "name", op: "=", value: "Rome"}, want: []rid.RID{rid.New(12, 5)}},
		{opts: evalOptions{field: "name", op: "=", value: "Rome", useIndex: true}, want: []rid.RID{rid.New(12, 5)}, usedIndex: true},
		{opts: evalOptions{field: "founded", op: "<", value: "-500", useIndex: true}, want: []rid.RID{rid.New(12, 5)}, usedIndex: true},
		{
			opts: evalOptions{field: "founded", op: ">", value: "-1000", useIndex: true, descending: true},
			want: []rid.RID{rid.New(12, 5), rid.New(12, 6)}, usedIndex: true,
		},
		{opts: evalOptions{field: "twin", op: "=", value: "'#12:5'"}, want: []rid.RID{rid.New(12, 6)}},
		{opts: evalOptions{field: "districts", op: "CONTAINS", value: "2", useIndex: true}, want: []rid.RID{rid.New(12, 6)}, usedIndex: true},
		{opts: evalOptions{field: "name", op: "CONTAINSTEXT", value: "ar", useIndex: true}, want: []rid.RID{rid.New(12, 6)}},
		{opts: evalOptions{field: "name", op: "MATCHES", value: "R.*", useIndex: true}, want: []rid.RID{rid.New(12, 5)}},
		{opts: evalOptions{field: "name", op: "=", value: "Oslo", useIndex: true}, want: []rid.RID{}, usedIndex: true},
	}
	for _, tt := range tests {
		t.Run(tt.opts.field+" "+tt.opts.op+" "+tt.opts.value, func(t *testing.T) {
			opts := tt.opts
			res, err := evaluate(context.Background(), db, &opts, query(), prometheus.NewRegistry())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.rids)
			assert.Equal(t, tt.usedIndex, res.usedIndex)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	db, err := parseDataset([]byte(cities))
	require.NoError(t, err)
	_, err = evaluate(context.Background(), db, &evalOptions{field: "name", op: "SOUNDSLIKE"}, query(), prometheus.NewRegistry())
	assert.ErrorContains(t, err, "unknown operator")
	_, err = evaluate(context.Background(), db, &evalOptions{field: "name", op: "not"}, query(), prometheus.NewRegistry())
	assert.ErrorContains(t, err, "NOT")
	res, err := evaluate(context.Background(), db, &evalOptions{field: "name", op: "MATCHES", value: "("}, query(), prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Empty(t, res.rids)
}
