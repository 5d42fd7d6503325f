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

	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

var (
	// Major is the > operator.
	Major Operator = &rangeOp{base: newBase(KindMajor, ">", 5), dir: above}
	// MajorEquals is the >= operator.
	MajorEquals Operator = &rangeOp{base: newBase(KindMajorEquals, ">=", 5), dir: above, inclusive: true}
	// Minor is the < operator.
	Minor Operator = &rangeOp{base: newBase(KindMinor, "<", 5), dir: below}
	// MinorEquals is the <= operator.
	MinorEquals Operator = &rangeOp{base: newBase(KindMinorEquals, "<=", 5), dir: below, inclusive: true}
	// Between is the BETWEEN operator with both bounds inclusive.
	Between = &BetweenOperator{base: withRightWords(newBase(KindBetween, "BETWEEN", 5), 3), leftInclusive: true, rightInclusive: true}
)

func withRightWords(b base, n int) base {
	b.rightWords = n
	return b
}

// rangeOp compares the left operand with a single bound.
type rangeOp struct {
	base
	dir       rangeDirection
	inclusive bool
}

func (o *rangeOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(predicate(o.match)))(ctx, rec, cond, left, right)
}

func (o *rangeOp) match(left, right any) bool {
	if left == nil || right == nil {
		return false
	}
	c, ok := value.Compare(left, right)
	if !ok {
		return false
	}
	if c == 0 {
		return o.inclusive
	}
	if o.dir == above {
		return c > 0
	}
	return c < 0
}

func (o *rangeOp) IndexReuseType(left, right any) IndexReuseType {
	if left == nil || right == nil {
		return NoIndex
	}
	return IndexMethod
}

func (o *rangeOp) ExecuteIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error) {
	defer ctx.Profile(o.keyword)()
	return rangeIndexQuery(ctx, idx, keyParams, o.dir, o.inclusive, ascending)
}

// BeginRIDRange bounds @rid > X from below. With @rid on the right the
// predicate bounds it from below only for < and <=.
func (o *rangeOp) BeginRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return o.ridRange(ctx, left, right, above)
}

func (o *rangeOp) EndRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return o.ridRange(ctx, left, right, below)
}

func (o *rangeOp) ridRange(ctx *executor.Context, left, right any, side rangeDirection) *rid.RID {
	id, onLeft, ok := ridBound(ctx, left, right)
	if !ok {
		return nil
	}
	dir := o.dir
	if !onLeft {
		// X > @rid is @rid < X.
		dir = 1 - dir
	}
	if dir != side {
		return nil
	}
	switch {
	case o.inclusive:
		return &id
	case dir == above:
		return rid.Ptr(id.Next())
	}
	return rid.Ptr(id.Prev())
}

// BetweenOperator tests left BETWEEN low AND high. The right operand is the
// three element sequence low, AND, high.
type BetweenOperator struct {
	base
	leftInclusive  bool
	rightInclusive bool
}

// WithInclusive returns a BETWEEN with the given bound inclusivity.
func (o *BetweenOperator) WithInclusive(left, right bool) *BetweenOperator {
	c := *o
	c.leftInclusive = left
	c.rightInclusive = right
	return &c
}

// Inclusive reports the inclusivity of the low and high bounds.
func (o *BetweenOperator) Inclusive() (left, right bool) {
	return o.leftInclusive, o.rightInclusive
}

// EvaluateRecord implements Operator.
func (o *BetweenOperator) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(o.evaluate))(ctx, rec, cond, left, right)
}

func (o *BetweenOperator) evaluate(_ *executor.Context, _ record.Identifiable, _ Condition, left, right any) (any, error) {
	low, high, err := o.bounds(right)
	if err != nil {
		return nil, err
	}
	if left == nil {
		return false, nil
	}
	c, ok := value.Compare(left, low)
	if !ok || c < 0 || (c == 0 && !o.leftInclusive) {
		return false, nil
	}
	c, ok = value.Compare(left, high)
	if !ok || c > 0 || (c == 0 && !o.rightInclusive) {
		return false, nil
	}
	return true, nil
}

func (o *BetweenOperator) bounds(right any) (low, high any, err error) {
	if !value.IsMultiValue(right) || value.Size(right) != 3 {
		return nil, nil, errors.WithMessagef(ErrArity, "found '%v' while was expected: <left> BETWEEN <minRange> AND <maxRange>", right)
	}
	values := value.Values(right)
	return values[0], values[2], nil
}

// IndexReuseType implements Operator.
func (o *BetweenOperator) IndexReuseType(_, _ any) IndexReuseType {
	return IndexMethod
}

// ExecuteIndexQuery implements Operator. The last key param holds the
// bounds, the others fix the leading fields of a composite index.
func (o *BetweenOperator) ExecuteIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error) {
	defer ctx.Profile(o.keyword)()
	def := idx.Definition()
	internal := idx.Internal()
	if !internal.CanBeUsedInEqualityOperators() || !internal.HasRangeQuerySupport() || len(keyParams) == 0 {
		return nil, nil
	}
	low, high, err := o.bounds(keyParams[len(keyParams)-1])
	if err != nil {
		return nil, err
	}
	low, lowOK := keyValue(low)
	high, highOK := keyValue(high)
	if !lowOK || !highOK || low == nil || high == nil {
		return nil, nil
	}
	var keyOne, keyTwo any
	if def.ParamCount() == 1 {
		keyOne = singleKey(def, []any{low})
		keyTwo = singleKey(def, []any{high})
	} else {
		prefix, ok := keyValues(keyParams[:len(keyParams)-1])
		if !ok {
			return nil, nil
		}
		keyOne = def.CreateSingleValue(append(append([]any{}, prefix...), low)...)
		keyTwo = def.CreateSingleValue(append(append([]any{}, prefix...), high)...)
	}
	if keyOne == nil || keyTwo == nil {
		return nil, nil
	}
	s, err := idx.StreamEntriesBetween(keyOne, o.leftInclusive, keyTwo, o.rightInclusive, ascending)
	if err != nil {
		return nil, err
	}
	profileIndex(ctx, idx, keyParams)
	return s, nil
}

// BeginRIDRange implements Operator.
func (o *BetweenOperator) BeginRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return o.ridRange(ctx, left, right, 0)
}

// EndRIDRange implements Operator.
func (o *BetweenOperator) EndRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return o.ridRange(ctx, left, right, 2)
}

func (o *BetweenOperator) ridRange(ctx *executor.Context, left, right any, pos int) *rid.RID {
	if !isRIDField(left) {
		return nil
	}
	values := value.Values(operandValue(ctx, right))
	if len(values) != 3 {
		return nil
	}
	id, ok := ridOperand(ctx, values[pos])
	switch {
	case !ok:
		return nil
	case pos == 0 && !o.leftInclusive:
		return rid.Ptr(id.Next())
	case pos == 2 && !o.rightInclusive:
		return rid.Ptr(id.Prev())
	}
	return &id
}
