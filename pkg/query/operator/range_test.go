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

package operator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

func TestRIDRanges(t *testing.T) {
	ctx := executor.Background()
	at := field("@rid")
	x := rid.New(5, 3)
	tests := []struct {
		name        string
		op          Operator
		left, right any
		begin, end  *rid.RID
	}{
		{"equals", Equals, at, x, rid.Ptr(x), rid.Ptr(x)},
		{"equals mirrored", Equals, x, at, rid.Ptr(x), rid.Ptr(x)},
		{"equals other field", Equals, field("name"), x, nil, nil},
		{"major", Major, at, x, rid.Ptr(rid.New(5, 4)), nil},
		{"major equals", MajorEquals, at, x, rid.Ptr(x), nil},
		{"minor", Minor, at, x, nil, rid.Ptr(rid.New(5, 2))},
		{"minor equals", MinorEquals, at, x, nil, rid.Ptr(x)},
		{"major mirrored", Major, x, at, nil, rid.Ptr(rid.New(5, 2))},
		{"minor equals mirrored", MinorEquals, x, at, rid.Ptr(x), nil},
		{"minor at zero", Minor, at, rid.New(5, 0), nil, rid.Ptr(rid.New(5, 0))},
		{"not a rid", Major, at, "x", nil, nil},
		{"between", Between, at, []any{rid.New(5, 1), "AND", rid.New(5, 9)}, rid.Ptr(rid.New(5, 1)), rid.Ptr(rid.New(5, 9))},
		{"between exclusive", Between.WithInclusive(false, false), at, []any{rid.New(5, 1), "AND", rid.New(5, 9)}, rid.Ptr(rid.New(5, 2)), rid.Ptr(rid.New(5, 8))},
		{"between left exclusive", Between.WithInclusive(false, true), at, []any{rid.New(5, 1), "AND", rid.New(5, 9)}, rid.Ptr(rid.New(5, 2)), rid.Ptr(rid.New(5, 9))},
		{"between right exclusive", Between.WithInclusive(true, false), at, []any{rid.New(5, 1), "AND", rid.New(5, 9)}, rid.Ptr(rid.New(5, 1)), rid.Ptr(rid.New(5, 8))},
		{"between mirrored", Between, x, at, nil, nil},
		{"in", In, at, []any{rid.New(5, 4), rid.New(5, 1), rid.New(6, 0)}, rid.Ptr(rid.New(5, 1)), rid.Ptr(rid.New(6, 0))},
		{"in with text", In, at, []any{rid.New(5, 4), "x"}, nil, nil},
		{"in scalar", In, at, x, nil, nil},
		{"not", Not, at, x, nil, nil},
		{"like", Like, at, x, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.begin, tt.op.BeginRIDRange(ctx, tt.left, tt.right))
			assert.Equal(t, tt.end, tt.op.EndRIDRange(ctx, tt.left, tt.right))
		})
	}
}

func TestLogicalRIDRanges(t *testing.T) {
	ctx := executor.Background()
	wide := &fakeCond{begin: rid.Ptr(rid.New(5, 1)), end: rid.Ptr(rid.New(5, 9))}
	narrow := &fakeCond{begin: rid.Ptr(rid.New(5, 3)), end: rid.Ptr(rid.New(5, 7))}
	open := &fakeCond{begin: rid.Ptr(rid.New(5, 4))}

	assert.Equal(t, rid.Ptr(rid.New(5, 3)), And.BeginRIDRange(ctx, wide, narrow))
	assert.Equal(t, rid.Ptr(rid.New(5, 7)), And.EndRIDRange(ctx, wide, narrow))
	assert.Equal(t, rid.Ptr(rid.New(5, 4)), And.BeginRIDRange(ctx, wide, open))
	assert.Equal(t, rid.Ptr(rid.New(5, 9)), And.EndRIDRange(ctx, wide, open))
	assert.Equal(t, rid.Ptr(rid.New(5, 4)), And.BeginRIDRange(ctx, "x", open))
	assert.Nil(t, And.EndRIDRange(ctx, "x", open))

	assert.Equal(t, rid.Ptr(rid.New(5, 1)), Or.BeginRIDRange(ctx, wide, narrow))
	assert.Equal(t, rid.Ptr(rid.New(5, 9)), Or.EndRIDRange(ctx, wide, narrow))
	assert.Equal(t, rid.Ptr(rid.New(5, 1)), Or.BeginRIDRange(ctx, wide, open))
	assert.Nil(t, Or.EndRIDRange(ctx, wide, open))

	assert.Nil(t, Not.BeginRIDRange(ctx, wide, nil))
	assert.Nil(t, Not.EndRIDRange(ctx, wide, nil))
}

// graph links each node to the next through the out field.
func graph(ids ...rid.RID) []*record.Doc {
	docs := make([]*record.Doc, len(ids))
	for i, id := range ids {
		docs[i] = record.NewDoc("Node", id).Set("name", id.String())
	}
	for i := range docs {
		if i+1 < len(docs) {
			docs[i].Set("out", ids[i+1])
		}
	}
	return docs
}

func named(name string) *fakeCond {
	return &fakeCond{match: func(rec record.Identifiable) bool {
		return record.Field(rec.(record.Document), "name") == name
	}}
}

func traverse(t *testing.T, ctx *executor.Context, params []string, start any, nested *fakeCond) bool {
	t.Helper()
	op, err := Configure(Traverse, params)
	require.NoError(t, err)
	cond := &fakeCond{left: field("@this"), right: nested}
	res, err := op.EvaluateRecord(ctx, nil, nil, cond, start, true)
	require.NoError(t, err)
	return res.(bool)
}

func TestTraverseCycle(t *testing.T) {
	a, b := rid.New(9, 0), rid.New(9, 1)
	docs := graph(a, b)
	docs[1].Set("out", a)
	ctx := executor.New(context.Background(), newMemDB(docs...), executor.Options{})

	never := named("nobody")
	assert.False(t, traverse(t, ctx, []string{"0", "2"}, docs[0], never))
	assert.Equal(t, 2, never.evaluated)

	never = named("nobody")
	assert.False(t, traverse(t, ctx, []string{"0", "-1"}, docs[0], never))
	assert.Equal(t, 2, never.evaluated)

	assert.True(t, traverse(t, ctx, []string{"0", "-1"}, docs[0], named(b.String())))
}

func TestTraverseDepth(t *testing.T) {
	ids := []rid.RID{rid.New(9, 0), rid.New(9, 1), rid.New(9, 2), rid.New(9, 3)}
	docs := graph(ids...)
	ctx := executor.New(context.Background(), newMemDB(docs...), executor.Options{})
	last := ids[3].String()
	first := ids[0].String()

	assert.True(t, traverse(t, ctx, []string{"0", "3"}, docs[0], named(last)))
	assert.False(t, traverse(t, ctx, []string{"0", "2"}, docs[0], named(last)))
	assert.True(t, traverse(t, ctx, []string{"0"}, docs[0], named(first)))
	assert.False(t, traverse(t, ctx, []string{"1"}, docs[0], named(first)))
	assert.True(t, traverse(t, ctx, []string{"0", "-1", "'out'"}, ids[0], named(last)))
	assert.False(t, traverse(t, ctx, []string{"0", "-1", "'in'"}, docs[0], named(last)))
	assert.False(t, traverse(t, ctx, []string{"0", "-1", "all()"}, docs[0], named(last)))
	assert.True(t, traverse(t, ctx, nil, docs[0], named(first)))
	assert.False(t, traverse(t, ctx, nil, docs[0], named(last)))
}

func TestTraverseCollections(t *testing.T) {
	leaf := record.NewDoc("Node", rid.New(9, 5)).Set("name", "leaf")
	hub := record.NewTransient("children", []any{
		map[string]any{"k": rid.New(9, 6)},
		leaf,
	})
	ctx := executor.New(context.Background(), newMemDB(leaf), executor.Options{})

	assert.True(t, traverse(t, ctx, []string{"0", "-1"}, hub, named("leaf")))
	assert.False(t, traverse(t, ctx, []string{"0", "1"}, hub, named("leaf")))
	assert.True(t, traverse(t, ctx, []string{"0", "2"}, hub, named("leaf")))

	swapped := &fakeCond{left: named("leaf"), right: field("@this")}
	op, err := Configure(Traverse, []string{"0", "-1"})
	require.NoError(t, err)
	res, err := op.EvaluateRecord(ctx, nil, nil, swapped, true, hub)
	require.NoError(t, err)
	assert.Equal(t, true, res)

	res, err = op.EvaluateRecord(ctx, nil, nil, &fakeCond{left: field("@this"), right: 1}, hub, true)
	require.NoError(t, err)
	assert.Equal(t, false, res)
}
