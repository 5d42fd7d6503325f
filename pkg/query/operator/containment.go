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
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

var (
	// Contains is the CONTAINS operator.
	Contains Operator = &containsOp{base: newBase(KindContains, "CONTAINS", 5)}
	// ContainsAll is the CONTAINSALL operator.
	ContainsAll Operator = &containsAllOp{base: newBase(KindContainsAll, "CONTAINSALL", 5)}
	// ContainsKey is the CONTAINSKEY operator.
	ContainsKey Operator = &mapContainsOp{base: newBase(KindContainsKey, "CONTAINSKEY", 5), by: index.MapIndexByKey}
	// ContainsValue is the CONTAINSVALUE operator.
	ContainsValue Operator = &mapContainsOp{base: newBase(KindContainsValue, "CONTAINSVALUE", 5), by: index.MapIndexByValue}
	// ContainsText is the case insensitive CONTAINSTEXT operator.
	ContainsText = &ContainsTextOperator{base: newBase(KindContainsText, "CONTAINSTEXT", 5), ignoreCase: true}
	// In is the IN operator.
	In Operator = &inOp{base: newBase(KindIn, "IN", 5)}
)

func isCollection(v any) bool {
	return value.IsMultiValue(v) && !value.IsMap(v)
}

// nestedCondition returns the operand of cond which is a condition itself.
func nestedCondition(cond Condition) Condition {
	if cond == nil {
		return nil
	}
	if c, ok := cond.Left().(Condition); ok && c != nil {
		return c
	}
	if c, ok := cond.Right().(Condition); ok && c != nil {
		return c
	}
	return nil
}

func hasConditionOperand(left, right any) bool {
	_, l := left.(Condition)
	_, r := right.(Condition)
	return l || r
}

// elementRecord normalizes an element of a collection before a nested
// condition is evaluated on it. Single entry maps and nested collections
// stand for their first value.
func elementRecord(v any) (record.Identifiable, bool) {
	if id, ok := v.(record.Identifiable); ok {
		return id, true
	}
	if !value.IsMultiValue(v) {
		return nil, false
	}
	id, ok := value.First(v).(record.Identifiable)
	return id, ok
}

func matches(ctx *executor.Context, c Condition, rec record.Identifiable) (bool, error) {
	res, err := c.Evaluate(ctx, rec)
	if err != nil {
		return false, err
	}
	return isTrue(res), nil
}

// linkedType returns the declared element type of the multi-value field
// named by operand, or TypeAny.
func linkedType(ctx *executor.Context, rec record.Identifiable, operand any) value.Type {
	f, ok := operand.(FieldOperand)
	if !ok || strings.Contains(f.FieldName(), ".") {
		return value.TypeAny
	}
	doc, ok := rec.(record.Document)
	if !ok {
		return value.TypeAny
	}
	snapshot := ctx.Schema()
	if snapshot == nil {
		return value.TypeAny
	}
	class := snapshot.Class(doc.ClassName())
	if class == nil {
		return value.TypeAny
	}
	p, ok := class.Property(f.FieldName())
	if !ok || !p.Type().IsMultiValue() {
		return value.TypeAny
	}
	return p.LinkedType()
}

func operandLeft(cond Condition) any {
	if cond == nil {
		return nil
	}
	return cond.Left()
}

type containsOp struct {
	base
}

func (o *containsOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(evalContains))(ctx, rec, cond, left, right)
}

func evalContains(ctx *executor.Context, rec record.Identifiable, cond Condition, left, right any) (any, error) {
	nested := nestedCondition(cond)
	switch {
	case isCollection(left):
		if nested != nil {
			for _, v := range value.Values(left) {
				id, ok := elementRecord(v)
				if !ok {
					continue
				}
				if ok, err := matches(ctx, nested, id); err != nil || ok {
					return ok, err
				}
			}
			return false, nil
		}
		t := linkedType(ctx, rec, operandLeft(cond))
		for _, v := range value.Values(left) {
			if value.EqualsTyped(v, right, t) {
				return true, nil
			}
		}
	case isCollection(right):
		for _, v := range value.Values(right) {
			if nested != nil {
				id, ok := v.(record.Identifiable)
				if !ok {
					continue
				}
				if ok, err := matches(ctx, nested, id); err != nil || ok {
					return ok, err
				}
				continue
			}
			if value.Equals(left, v) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (o *containsOp) IndexReuseType(left, right any) IndexReuseType {
	if hasConditionOperand(left, right) {
		return NoIndex
	}
	return IndexMethod
}

func (o *containsOp) ExecuteIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error) {
	defer ctx.Profile(o.keyword)()
	return equalityIndexQuery(ctx, idx, keyParams, ascending)
}

type containsAllOp struct {
	base
}

func (o *containsAllOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(evalContainsAll))(ctx, rec, cond, left, right)
}

func evalContainsAll(ctx *executor.Context, _ record.Identifiable, cond Condition, left, right any) (any, error) {
	nested := nestedCondition(cond)
	leftMulti, rightMulti := isCollection(left), isCollection(right)
	switch {
	case leftMulti && nested != nil:
		return allMatch(ctx, nested, value.Values(left))
	case leftMulti && rightMulti:
		return containsEach(value.Values(left), value.Values(right)), nil
	case leftMulti:
		for _, v := range value.Values(left) {
			if !value.Equals(right, v) {
				return false, nil
			}
		}
		return true, nil
	case rightMulti && nested != nil:
		return allMatch(ctx, nested, value.Values(right))
	case rightMulti:
		for _, v := range value.Values(right) {
			if !value.Equals(left, v) {
				return false, nil
			}
		}
		return true, nil
	}
	return value.Equals(left, right), nil
}

// allMatch stops at the first element which does not satisfy c.
func allMatch(ctx *executor.Context, c Condition, values []any) (bool, error) {
	for _, v := range values {
		id, ok := elementRecord(v)
		if !ok {
			return false, nil
		}
		if ok, err := matches(ctx, c, id); err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// containsEach reports whether every element of want equals some element of
// have. Repeated elements of want may match the same element.
func containsEach(have, want []any) bool {
	for _, w := range want {
		if !slices.ContainsFunc(have, func(h any) bool { return value.Equals(h, w) }) {
			return false
		}
	}
	return true
}

// mapContainsOp tests the keys or the values of a map.
type mapContainsOp struct {
	base
	by index.MapIndexBy
}

func (o *mapContainsOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(o.evaluate))(ctx, rec, cond, left, right)
}

func (o *mapContainsOp) evaluate(ctx *executor.Context, rec record.Identifiable, cond Condition, left, right any) (any, error) {
	m, probe := left, right
	if !value.IsMap(m) {
		m, probe = right, left
	}
	if !value.IsMap(m) {
		return false, nil
	}
	if o.by == index.MapIndexByKey {
		for _, k := range value.Keys(m) {
			if value.Equals(k, probe) {
				return true, nil
			}
		}
		return false, nil
	}
	if nested := nestedCondition(cond); nested != nil {
		for _, v := range value.Values(m) {
			id, ok := v.(record.Identifiable)
			if !ok {
				continue
			}
			if ok, err := matches(ctx, nested, id); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
	t := value.TypeAny
	if value.IsMap(left) {
		t = linkedType(ctx, rec, operandLeft(cond))
	}
	for _, v := range value.Values(m) {
		if value.EqualsTyped(v, probe, t) {
			return true, nil
		}
	}
	return false, nil
}

func (o *mapContainsOp) IndexReuseType(left, right any) IndexReuseType {
	if hasConditionOperand(left, right) {
		return NoIndex
	}
	return IndexMethod
}

// ExecuteIndexQuery answers the predicate only from a map index of the
// matching orientation.
func (o *mapContainsOp) ExecuteIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error) {
	defer ctx.Profile(o.keyword)()
	def := idx.Definition()
	if !idx.Internal().CanBeUsedInEqualityOperators() || def.MapIndexBy() != o.by || len(keyParams) == 0 {
		return nil, nil
	}
	keyParams, ok := keyValues(keyParams)
	if !ok {
		return nil, nil
	}
	if def.ParamCount() != 1 {
		return equalityIndexQuery(ctx, idx, keyParams, ascending)
	}
	key := def.CreateSingleValue(keyParams[0])
	if key == nil {
		return nil, nil
	}
	s, err := ridStream(idx, key)
	if err != nil {
		return nil, err
	}
	profileIndex(ctx, idx, keyParams)
	return s, nil
}

// ContainsTextOperator tests whether the text of the left operand contains
// the right one.
type ContainsTextOperator struct {
	base
	ignoreCase bool
}

// WithIgnoreCase returns a CONTAINSTEXT with the given case sensitivity.
func (o *ContainsTextOperator) WithIgnoreCase(ignoreCase bool) *ContainsTextOperator {
	c := *o
	c.ignoreCase = ignoreCase
	return &c
}

// IgnoreCase reports whether the operator ignores case.
func (o *ContainsTextOperator) IgnoreCase() bool {
	return o.ignoreCase
}

// EvaluateRecord implements Operator.
func (o *ContainsTextOperator) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(predicate(o.match)))(ctx, rec, cond, left, right)
}

func (o *ContainsTextOperator) match(left, right any) bool {
	if left == nil || right == nil {
		return false
	}
	text, sub := value.ToString(left), value.ToString(right)
	if o.ignoreCase {
		text, sub = strings.ToLower(text), strings.ToLower(sub)
	}
	return strings.Contains(text, sub)
}

// IndexReuseType implements Operator.
func (o *ContainsTextOperator) IndexReuseType(_, _ any) IndexReuseType {
	return IndexMethod
}

// ExecuteIndexQuery always returns nil: full-text indexes are queried by an
// upper layer.
func (o *ContainsTextOperator) ExecuteIndexQuery(_ *executor.Context, _ index.Index, _ []any, _ bool) (index.Stream, error) {
	return nil, nil
}

type inOp struct {
	base
}

var evalIn = notNulls(equality(predicate(func(left, right any) bool {
	switch {
	case value.IsMultiValue(left):
		candidates := []any{right}
		if value.IsMultiValue(right) {
			candidates = value.Values(right)
		}
		for _, l := range value.Values(left) {
			for _, r := range candidates {
				if value.Equals(l, r) {
					return true
				}
			}
		}
		return false
	case value.IsMultiValue(right):
		for _, r := range value.Values(right) {
			if value.Equals(left, r) {
				return true
			}
		}
		return false
	}
	return value.Equals(left, right)
})))

func (o *inOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return evalIn(ctx, rec, cond, left, right)
}

func (o *inOp) IndexReuseType(_, _ any) IndexReuseType {
	return IndexMethod
}

// ExecuteIndexQuery looks every member of the list up and unions the
// results in key order. On a composite index only the last field may vary.
func (o *inOp) ExecuteIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error) {
	defer ctx.Profile(o.keyword)()
	def := idx.Definition()
	if !idx.Internal().CanBeUsedInEqualityOperators() || len(keyParams) == 0 {
		return nil, nil
	}
	members, err := inMembers(ctx, keyParams[len(keyParams)-1])
	if err != nil {
		return nil, err
	}
	prefix, ok := keyValues(keyParams[:len(keyParams)-1])
	if !ok {
		return nil, nil
	}
	keys := make([]any, 0, len(members))
	for _, m := range members {
		if m, ok = keyValue(m); !ok {
			return nil, nil
		}
		var key any
		if def.ParamCount() == 1 {
			key = singleKey(def, []any{m})
		} else {
			key = def.CreateSingleValue(append(append([]any{}, prefix...), m)...)
		}
		if key == nil {
			return nil, nil
		}
		keys = append(keys, key)
	}
	if def.ParamCount() != 1 && def.ParamCount() != len(keyParams) {
		return nil, nil
	}
	slices.SortFunc(keys, func(a, b any) int {
		if ascending {
			return index.CompareKeys(a, b)
		}
		return index.CompareKeys(b, a)
	})
	keys = slices.CompactFunc(keys, func(a, b any) bool {
		return index.CompareKeys(a, b) == 0
	})
	streams := make([]index.Stream, 0, len(keys))
	for _, key := range keys {
		s, err := ridStream(idx, key)
		if err != nil {
			return nil, multierr.Append(err, index.Concat(streams...).Close())
		}
		streams = append(streams, s)
	}
	profileIndex(ctx, idx, keyParams)
	return index.Distinct(index.Concat(streams...)), nil
}

func inMembers(ctx *executor.Context, param any) ([]any, error) {
	v := operandValue(ctx, param)
	if !isCollection(v) {
		return nil, errors.WithMessagef(ErrInvalidKey, "key '%v' is not valid for IN", param)
	}
	return value.Values(v), nil
}

func (o *inOp) BeginRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return o.ridRange(ctx, left, right, rid.Min)
}

func (o *inOp) EndRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return o.ridRange(ctx, left, right, rid.Max)
}

func (o *inOp) ridRange(ctx *executor.Context, left, right any, pick func(a, b rid.RID) rid.RID) *rid.RID {
	var list any
	switch {
	case isRIDField(left):
		list = operandValue(ctx, right)
	case isRIDField(right):
		list = operandValue(ctx, left)
	default:
		return nil
	}
	if !isCollection(list) {
		return nil
	}
	var bound *rid.RID
	for _, v := range value.Values(list) {
		id, ok := ridOperand(ctx, v)
		if !ok {
			return nil
		}
		if bound == nil {
			bound = rid.Ptr(id)
			continue
		}
		*bound = pick(*bound, id)
	}
	return bound
}
