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
	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

var (
	// And is the AND operator.
	And Operator = &andOp{base: newBase(KindAnd, "AND", 4)}
	// Or is the OR operator.
	Or Operator = &orOp{base: newBase(KindOr, "OR", 3)}
	// Not is the unary NOT operator.
	Not = &NotOperator{base: unary(newBase(KindNot, "NOT", 10))}
)

func unary(b base) base {
	b.unary = true
	return b
}

func toBool(keyword string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.WithMessagef(ErrNotBoolean, "%s: %v (%T)", keyword, v, v)
	}
	return b, nil
}

// conditionRange reads the identity range of an operand which is a
// condition.
func conditionRange(ctx *executor.Context, operand any, begin bool) *rid.RID {
	c, ok := operand.(Condition)
	if !ok || c == nil {
		return nil
	}
	if begin {
		return c.BeginRIDRange(ctx)
	}
	return c.EndRIDRange(ctx)
}

type andOp struct {
	base
}

func (o *andOp) EvaluateRecord(_ *executor.Context, _ record.Identifiable, _ any, _ Condition, left, right any) (any, error) {
	if left == nil {
		return false, nil
	}
	l, err := toBool(o.keyword, left)
	if err != nil || !l {
		return false, err
	}
	if right == nil {
		return false, nil
	}
	return toBool(o.keyword, right)
}

func (o *andOp) IndexReuseType(left, right any) IndexReuseType {
	if left == nil || right == nil {
		return NoIndex
	}
	return IndexIntersection
}

// BeginRIDRange is the greater of the operand ranges.
func (o *andOp) BeginRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return intersect(conditionRange(ctx, left, true), conditionRange(ctx, right, true), rid.Max)
}

// EndRIDRange is the lower of the operand ranges.
func (o *andOp) EndRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return intersect(conditionRange(ctx, left, false), conditionRange(ctx, right, false), rid.Min)
}

func intersect(l, r *rid.RID, pick func(a, b rid.RID) rid.RID) *rid.RID {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	}
	return rid.Ptr(pick(*l, *r))
}

func (o *andOp) CanShortCircuit(left any) bool {
	b, ok := left.(bool)
	return ok && !b
}

type orOp struct {
	base
}

func (o *orOp) EvaluateRecord(_ *executor.Context, _ record.Identifiable, _ any, _ Condition, left, right any) (any, error) {
	if left == nil {
		return false, nil
	}
	l, err := toBool(o.keyword, left)
	if err != nil || l {
		return l, err
	}
	if right == nil {
		return false, nil
	}
	return toBool(o.keyword, right)
}

func (o *orOp) IndexReuseType(left, right any) IndexReuseType {
	if left == nil || right == nil {
		return NoIndex
	}
	return IndexUnion
}

// BeginRIDRange is the lower of the operand ranges. Both operands must be
// bounded.
func (o *orOp) BeginRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return union(conditionRange(ctx, left, true), conditionRange(ctx, right, true), rid.Min)
}

// EndRIDRange is the greater of the operand ranges.
func (o *orOp) EndRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return union(conditionRange(ctx, left, false), conditionRange(ctx, right, false), rid.Max)
}

func union(l, r *rid.RID, pick func(a, b rid.RID) rid.RID) *rid.RID {
	if l == nil || r == nil {
		return nil
	}
	return rid.Ptr(pick(*l, *r))
}

// NotOperator negates its left operand, or the result of the operator it
// wraps. It never bounds identities: the complement of a range is not a
// range.
type NotOperator struct {
	base
	next Operator
}

// WithNext returns a NOT which negates the result of next.
func (o *NotOperator) WithNext(next Operator) *NotOperator {
	c := *o
	c.next = next
	return &c
}

// Next returns the negated operator, if any.
func (o *NotOperator) Next() Operator {
	return o.next
}

// EvaluateRecord implements Operator.
func (o *NotOperator) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	if o.next != nil {
		res, err := o.next.EvaluateRecord(ctx, rec, nil, cond, left, right)
		if err != nil {
			return nil, err
		}
		b, err := toBool(o.next.Keyword(), res)
		if err != nil {
			return nil, err
		}
		return !b, nil
	}
	if left == nil {
		return false, nil
	}
	b, err := toBool(o.keyword, left)
	if err != nil {
		return nil, err
	}
	return !b, nil
}

func (o *NotOperator) String() string {
	if o.next != nil {
		return o.keyword + " " + o.next.Keyword()
	}
	return o.keyword
}
