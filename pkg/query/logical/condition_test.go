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

package logical

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/meter"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/meter/prom"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/operator"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/schema"
)

type memDB struct {
	schema *schema.Mem
	docs   map[rid.RID]record.Document
}

func newMemDB(docs ...*record.Doc) *memDB {
	db := &memDB{schema: schema.NewMem(), docs: make(map[rid.RID]record.Document)}
	for _, d := range docs {
		db.docs[d.Identity()] = d
	}
	return db
}

func (db *memDB) Schema() schema.Snapshot { return db.schema }

func (db *memDB) Load(id rid.RID) (record.Document, error) {
	if d, ok := db.docs[id]; ok {
		return d, nil
	}
	return nil, executor.ErrRecordNotFound
}

func withMetrics(t *testing.T, db executor.Database) (*executor.Context, func(name string) float64) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := executor.NewMetrics(prom.NewProvider(meter.NewHierarchicalScope("ytdb_query", "_"), reg))
	ctx := executor.New(context.Background(), db, executor.Options{Metrics: m})
	return ctx, func(name string) float64 {
		families, err := reg.Gather()
		require.NoError(t, err)
		var sum float64
		for _, f := range families {
			if f.GetName() != name {
				continue
			}
			for _, metric := range f.GetMetric() {
				sum += metric.GetCounter().GetValue()
			}
		}
		return sum
	}
}

func TestFieldChain(t *testing.T) {
	b := record.NewDoc("Person", rid.New(1, 1)).Set("name", "B")
	c := record.NewDoc("Person", rid.New(1, 2)).Set("name", "C")
	a := record.NewDoc("Person", rid.New(1, 0)).
		Set("friend", b.Identity()).
		Set("friends", []any{b.Identity(), c.Identity(), rid.New(1, 9)}).
		Set("addr", map[string]any{"city": "Rome"})
	ctx := executor.New(context.Background(), newMemDB(a, b, c), executor.Options{})

	tests := []struct {
		field string
		want  any
	}{
		{"friend.name", "B"},
		{"friends.name", []any{"B", "C"}},
		{"addr.city", "Rome"},
		{"addr.zip", nil},
		{"missing.name", nil},
		{"@class", "Person"},
		{"@rid", rid.New(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := NewField(tt.field).Eval(ctx, a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := NewField("name").Eval(ctx, b.Identity())
	require.NoError(t, err)
	assert.Equal(t, "B", got)

	got, err = NewField("name").Eval(executor.Background(), b.Identity())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestItems(t *testing.T) {
	ctx := executor.Background()
	ctx.SetVariable("minAge", 18)
	p := NewParam(":minAge")
	v, err := p.Eval(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 18, v)
	assert.Equal(t, ":minAge", p.String())
	assert.Nil(t, NewParam("$other").Value(ctx))

	assert.Equal(t, "'x'", Lit("x").String())
	assert.Equal(t, "null", Lit(nil).String())
	assert.Equal(t, "3", Lit(3).String())

	doc := record.NewDoc("Person", rid.New(1, 0)).Set("name", "B").Set("nick", "B")
	ok, err := New(AnyField{}, operator.Equals, "B").Match(ctx, doc)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = New(AllField{}, operator.Equals, "B").Match(ctx, doc)
	require.NoError(t, err)
	assert.True(t, ok)
	doc.Set("age", 3)
	ok, err = New(AllField{}, operator.Equals, "B").Match(ctx, doc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCoerce(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	l, r := coerce("30", 5)
	assert.Equal(t, int64(30), l)
	assert.Equal(t, 5, r)

	l, _ = coerce("2.7", 5)
	assert.Equal(t, int64(2), l)

	_, r = coerce(int32(1), day)
	assert.Equal(t, day, r)

	_, r = coerce(7, day)
	assert.Equal(t, int64(day.UnixMilli()), r, "integers win over dates")

	l, _ = coerce("2024-01-02", day)
	require.IsType(t, time.Time{}, l)
	assert.True(t, day.Equal(l.(time.Time)))

	l, _ = coerce("1.5", float32(2))
	assert.Equal(t, float32(1.5), l)

	l, _ = coerce("#3:4", rid.New(3, 4))
	assert.Equal(t, rid.New(3, 4), l)

	_, r = coerce(rid.New(3, 4), "nope")
	assert.Equal(t, "nope", r)

	l, r = coerce(1, operator.NotNull)
	assert.Equal(t, 1, l)
	assert.Equal(t, operator.NotNull, r)

	l, _ = coerce([]any{"1"}, 5)
	assert.Equal(t, []any{"1"}, l)

	l, _ = coerce("abc", 5)
	assert.Equal(t, "abc", l)
}

func TestEvaluate(t *testing.T) {
	doc := record.NewDoc("Person", rid.New(1, 0)).Set("name", "bob").Set("age", 30).Set("nick", nil)
	ctx, count := withMetrics(t, newMemDB(doc))

	tests := []struct {
		name string
		cond *Condition
		want bool
	}{
		{"equals", New(NewField("name"), operator.Equals, "bob"), true},
		{"coerced", New(NewField("age"), operator.Equals, "30"), true},
		{"major", New(NewField("age"), operator.Major, 18), true},
		{"param", New(NewField("age"), operator.MinorEquals, NewParam("max")), true},
		{"and", New(New(NewField("name"), operator.Like, "b%"), operator.And, New(NewField("age"), operator.Minor, 40)), true},
		{"or", New(New(NewField("name"), operator.Equals, "x"), operator.Or, New(NewField("age"), operator.Equals, 30)), true},
		{"not", NewUnary(operator.Not, New(NewField("age"), operator.Major, 18)), false},
		{"defined", New(NewField("nick"), operator.Is, operator.Defined), true},
		{"not defined", New(NewField("nick"), operator.Is, operator.NotDefined), false},
		{"undefined", New(NewField("email"), operator.Is, operator.Defined), false},
		{"is null", New(NewField("nick"), operator.Is, nil), true},
		{"is not null", New(NewField("name"), operator.Is, operator.NotNull), true},
		{"absent field", New(NewField("email"), operator.Equals, "x"), false},
		{"between", New(NewField("age"), operator.Between, []any{NewParam("min"), "AND", NewParam("max")}), true},
		{"rid text", New(NewField("@rid"), operator.Equals, "#1:0"), true},
	}
	ctx.SetVariable("min", 18)
	ctx.SetVariable("max", 30)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cond.Match(ctx, doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Positive(t, count("ytdb_query_operator_evaluation_total"))
}

func TestShortCircuit(t *testing.T) {
	ctx := executor.Background()
	invalid := New(Lit(1), operator.And, true)

	res, err := New(New(Lit(1), operator.Equals, 2), operator.And, invalid).Evaluate(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, false, res)

	_, err = New(New(Lit(1), operator.Equals, 1), operator.And, invalid).Evaluate(ctx, nil)
	assert.ErrorIs(t, err, operator.ErrNotBoolean)
	assert.ErrorContains(t, err, "evaluate (1 AND true)")

	res, err = New(Lit(3), nil, nil).Evaluate(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res)
}

func TestMergeRangesToBetween(t *testing.T) {
	ctx, count := withMetrics(t, nil)
	age := NewField("age")

	cond := New(New(age, operator.Major, 18), operator.And, New(age, operator.MinorEquals, 65))
	merged := MergeRangesToBetween(ctx, cond)
	require.Equal(t, operator.KindBetween, merged.Operator().Kind())
	assert.Same(t, age, merged.Left())
	assert.Equal(t, []any{18, "AND", 65}, merged.Right())
	low, high := merged.Operator().(*operator.BetweenOperator).Inclusive()
	assert.False(t, low)
	assert.True(t, high)
	assert.Equal(t, operator.KindAnd, cond.Operator().Kind(), "the input is not modified")
	assert.Equal(t, 1.0, count("ytdb_query_range_to_between_total"))

	mirrored := MergeRangesToBetween(ctx, New(New(65, operator.MajorEquals, age), operator.And, New(Lit(18), operator.Minor, age)))
	require.Equal(t, operator.KindBetween, mirrored.Operator().Kind())
	low, high = mirrored.Operator().(*operator.BetweenOperator).Inclusive()
	assert.False(t, low)
	assert.True(t, high)
	assert.Equal(t, []any{Lit(18), "AND", 65}, mirrored.Right())

	nested := New(New(NewField("name"), operator.Equals, "x"), operator.And, cond)
	merged = MergeRangesToBetween(ctx, nested)
	assert.Equal(t, operator.KindAnd, merged.Operator().Kind())
	assert.Equal(t, operator.KindBetween, merged.Right().(*Condition).Operator().Kind())
	assert.Equal(t, operator.KindAnd, nested.Right().(*Condition).Operator().Kind())

	for _, unchanged := range []*Condition{
		New(New(age, operator.Major, 18), operator.And, New(NewField("size"), operator.Minor, 65)),
		New(New(age, operator.Major, 18), operator.And, New(age, operator.MajorEquals, 20)),
		New(New(age, operator.Major, 18), operator.Or, New(age, operator.Minor, 65)),
		New(New(age, operator.Major, NewField("min")), operator.And, New(age, operator.Minor, 65)),
	} {
		got := MergeRangesToBetween(ctx, unchanged)
		assert.Equal(t, unchanged.String(), got.String())
	}
	assert.Equal(t, 3.0, count("ytdb_query_range_to_between_total"))
	assert.Nil(t, MergeRangesToBetween(ctx, nil))

	for _, a := range []int{17, 18, 19, 65, 66} {
		doc := record.NewDoc("Person", rid.New(1, int64(a))).Set("age", a)
		want, err := cond.Match(ctx, doc)
		require.NoError(t, err)
		got, err := MergeRangesToBetween(ctx, cond).Match(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, want, got, "age %d", a)
	}
}

func TestInvolvedFields(t *testing.T) {
	cond := New(
		New(NewField("name"), operator.Equals, "x"),
		operator.And,
		New(New(NewField("age"), operator.Major, 1), operator.Or, New(NewField("name"), operator.Equals, "y")))
	assert.Equal(t, []string{"name", "age"}, cond.InvolvedFields())
	assert.Empty(t, New(Lit(1), operator.Equals, 1).InvolvedFields())
}

func TestString(t *testing.T) {
	assert.Equal(t, "(name = 'x')", New(NewField("name"), operator.Equals, "x").String())
	assert.Equal(t, "(NOT (age > 18))", NewUnary(operator.Not, New(NewField("age"), operator.Major, 18)).String())
	assert.Equal(t, "(age BETWEEN [1, 'AND', :max])", New(NewField("age"), operator.Between, []any{1, "AND", NewParam("max")}).String())
	assert.Equal(t, "(nick IS null)", New(NewField("nick"), operator.Is, nil).String())
	assert.Equal(t, "(3)", New(3, nil, nil).String())
}

func TestIndexReuseAndRanges(t *testing.T) {
	ctx := executor.Background()
	ctx.SetVariable("from", rid.New(5, 3))
	at := NewField("@rid")

	assert.Equal(t, operator.IndexMethod, New(NewField("name"), operator.Equals, "x").IndexReuseType())
	assert.Equal(t, operator.IndexIntersection, New(New(at, operator.Major, 1), operator.And, New(at, operator.Minor, 2)).IndexReuseType())
	assert.Equal(t, operator.NoIndex, New(Lit(1), nil, nil).IndexReuseType())

	cond := New(New(at, operator.Major, NewParam("from")), operator.And, New(at, operator.Minor, Lit(rid.New(5, 9))))
	assert.Equal(t, rid.Ptr(rid.New(5, 4)), cond.BeginRIDRange(ctx))
	assert.Equal(t, rid.Ptr(rid.New(5, 8)), cond.EndRIDRange(ctx))

	either := New(New(at, operator.Equals, rid.New(5, 3)), operator.Or, New(at, operator.Equals, rid.New(7, 0)))
	assert.Equal(t, rid.Ptr(rid.New(5, 3)), either.BeginRIDRange(ctx))
	assert.Equal(t, rid.Ptr(rid.New(7, 0)), either.EndRIDRange(ctx))

	assert.Nil(t, NewUnary(operator.Not, cond).BeginRIDRange(ctx))
	assert.Nil(t, New(Lit(1), nil, nil).EndRIDRange(ctx))
}
