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
	"strings"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/operator"
)

// bound is one side of a range on a field.
type bound struct {
	field     *Field
	value     any
	lower     bool
	inclusive bool
}

// asBound reads c as a comparison of a field with a constant, normalized
// so that the field is on the left.
func asBound(c *Condition) (bound, bool) {
	if c == nil || c.op == nil {
		return bound{}, false
	}
	var lower, inclusive bool
	switch c.op.Kind() {
	case operator.KindMajor:
		lower = true
	case operator.KindMajorEquals:
		lower, inclusive = true, true
	case operator.KindMinor:
	case operator.KindMinorEquals:
		inclusive = true
	default:
		return bound{}, false
	}
	if f, ok := c.left.(*Field); ok && isConstant(c.right) {
		return bound{field: f, value: c.right, lower: lower, inclusive: inclusive}, true
	}
	if f, ok := c.right.(*Field); ok && isConstant(c.left) {
		// a < f is f > a
		return bound{field: f, value: c.left, lower: !lower, inclusive: inclusive}, true
	}
	return bound{}, false
}

func isConstant(o any) bool {
	switch o.(type) {
	case nil, *Field, *Condition, AnyField, AllField:
		return false
	}
	return true
}

// MergeRangesToBetween rewrites every f > a AND f < b pair on the same field
// into f BETWEEN a AND b with the same bound inclusivity. The tree is
// copied; cond is not modified.
func MergeRangesToBetween(ctx *executor.Context, cond *Condition) *Condition {
	if cond == nil {
		return nil
	}
	left, right := cond.left, cond.right
	if l, ok := left.(*Condition); ok {
		left = MergeRangesToBetween(ctx, l)
	}
	if r, ok := right.(*Condition); ok {
		right = MergeRangesToBetween(ctx, r)
	}
	merged := &Condition{left: left, op: cond.op, right: right}
	if cond.op == nil || cond.op.Kind() != operator.KindAnd {
		return merged
	}
	a, okA := asBound(asCondition(left))
	b, okB := asBound(asCondition(right))
	if !okA || !okB || a.lower == b.lower || !strings.EqualFold(a.field.FieldName(), b.field.FieldName()) {
		return merged
	}
	low, high := a, b
	if !a.lower {
		low, high = b, a
	}
	ctx.Metrics().RangeToBetween()
	return New(low.field,
		operator.Between.WithInclusive(low.inclusive, high.inclusive),
		[]any{low.value, "AND", high.value})
}

func asCondition(o any) *Condition {
	c, _ := o.(*Condition)
	return c
}
