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

	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

type evalFunc func(ctx *executor.Context, rec record.Identifiable, cond Condition, left, right any) (any, error)

// notNulls returns false without calling fn when either operand is nil.
func notNulls(fn evalFunc) evalFunc {
	return func(ctx *executor.Context, rec record.Identifiable, cond Condition, left, right any) (any, error) {
		if left == nil || right == nil {
			return false, nil
		}
		return fn(ctx, rec, cond, left, right)
	}
}

// equality fans fn out over the values of an ANY or ALL operand.
func equality(fn evalFunc) evalFunc {
	return func(ctx *executor.Context, rec record.Identifiable, cond Condition, left, right any) (any, error) {
		var err error
		match := func(l, r any) bool {
			if err != nil {
				return false
			}
			res, e := fn(ctx, rec, cond, l, r)
			if e != nil {
				err = e
				return false
			}
			return isTrue(res)
		}
		if m, ok := left.(*value.Multi); ok {
			res := m.Match(func(v any) bool { return match(v, right) })
			return res && err == nil, err
		}
		if m, ok := right.(*value.Multi); ok {
			res := m.Match(func(v any) bool { return match(left, v) })
			return res && err == nil, err
		}
		return fn(ctx, rec, cond, left, right)
	}
}

// predicate adapts a pure comparison of two operand values.
func predicate(fn func(left, right any) bool) evalFunc {
	return func(_ *executor.Context, _ record.Identifiable, _ Condition, left, right any) (any, error) {
		return fn(left, right), nil
	}
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func isRIDField(operand any) bool {
	f, ok := operand.(FieldOperand)
	return ok && strings.EqualFold(f.FieldName(), record.AttrRID)
}

// operandValue resolves an operand which does not depend on the record, or
// returns nil.
func operandValue(ctx *executor.Context, operand any) any {
	switch o := operand.(type) {
	case ValueOperand:
		return o.Value(ctx)
	case FieldOperand, Condition:
		return nil
	}
	return operand
}

func ridOperand(ctx *executor.Context, operand any) (rid.RID, bool) {
	switch v := operandValue(ctx, operand).(type) {
	case *rid.RID:
		if v != nil {
			return *v, true
		}
	case record.Identifiable:
		id := v.Identity()
		return id, id.IsValid()
	}
	return rid.Invalid, false
}

// ridBound returns the identity compared with the @rid field, and whether
// @rid is the left operand.
func ridBound(ctx *executor.Context, left, right any) (id rid.RID, onLeft bool, ok bool) {
	if isRIDField(left) {
		id, ok = ridOperand(ctx, right)
		return id, true, ok
	}
	if isRIDField(right) {
		id, ok = ridOperand(ctx, left)
		return id, false, ok
	}
	return rid.Invalid, false, false
}

// profileIndex counts a lookup of idx with keyParams.
func profileIndex(ctx *executor.Context, idx index.Index, keyParams []any) {
	m := ctx.Metrics()
	m.IndexUsed(idx.Name())
	if n := idx.Definition().ParamCount(); n > 1 {
		m.CompositeIndexUsed(idx.Name(), len(keyParams), n)
	}
}

// singleKey builds the key of a one-field index.
func singleKey(def index.Definition, keyParams []any) any {
	if len(keyParams) == 0 {
		return nil
	}
	if def.IsMultiValue() {
		return def.CreateSingleValue(keyParams[0])
	}
	return def.CreateValue(keyParams...)
}

// keyValue unwraps a sub-query result before it becomes part of an index
// key. A transient document stands for its first field and a single entry
// map for its value. ok is false when the wrapped value can't form one key.
func keyValue(v any) (any, bool) {
	switch t := v.(type) {
	case record.Document:
		if record.IsPersistent(t) {
			return v, true
		}
		names := t.FieldNames()
		if len(names) == 0 {
			return nil, false
		}
		field, _ := t.Property(names[0])
		return wrappedKey(field)
	case map[string]any:
		if len(t) != 1 {
			return nil, false
		}
		for _, field := range t {
			return wrappedKey(field)
		}
	}
	return v, true
}

func wrappedKey(field any) (any, bool) {
	if field == nil || (value.IsMultiValue(field) && !value.IsMap(field)) {
		return nil, false
	}
	return keyValue(field)
}

// keyValues applies keyValue to every key param. Collections, such as the
// members of IN or the bounds of BETWEEN, are left to their operator.
func keyValues(keyParams []any) ([]any, bool) {
	out := make([]any, len(keyParams))
	for i, p := range keyParams {
		if value.IsMultiValue(p) && !value.IsMap(p) {
			out[i] = p
			continue
		}
		v, ok := keyValue(p)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// equalityIndexQuery streams the entries whose key equals keyParams. A
// partial composite key is answered with a range when the index supports it.
func equalityIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error) {
	keyParams, ok := keyValues(keyParams)
	if !ok {
		return nil, nil
	}
	def := idx.Definition()
	internal := idx.Internal()
	if !internal.CanBeUsedInEqualityOperators() {
		return nil, nil
	}
	var (
		s   index.Stream
		err error
	)
	if def.ParamCount() == 1 {
		key := singleKey(def, keyParams)
		if key == nil {
			return nil, nil
		}
		s, err = ridStream(idx, key)
	} else {
		key := def.CreateSingleValue(keyParams...)
		if key == nil {
			return nil, nil
		}
		switch {
		case internal.HasRangeQuerySupport():
			s, err = idx.StreamEntriesBetween(key, true, key, true, ascending)
		case def.ParamCount() == len(keyParams):
			s, err = ridStream(idx, key)
		default:
			return nil, nil
		}
	}
	if err != nil {
		return nil, err
	}
	profileIndex(ctx, idx, keyParams)
	return s, nil
}

func ridStream(idx index.Index, key any) (index.Stream, error) {
	rids, err := idx.RIDs(key)
	if err != nil {
		return nil, err
	}
	return index.FromRIDs(key, rids), nil
}

type rangeDirection uint8

const (
	above rangeDirection = iota
	below
)

// rangeIndexQuery streams the entries above or below keyParams. On a
// composite index the leading params are fixed and only the last one bounds
// the range; the other bound is the prefix, which the index completes.
func rangeIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, dir rangeDirection,
	inclusive bool, ascending bool,
) (index.Stream, error) {
	keyParams, ok := keyValues(keyParams)
	if !ok {
		return nil, nil
	}
	def := idx.Definition()
	internal := idx.Internal()
	if !internal.CanBeUsedInEqualityOperators() || !internal.HasRangeQuerySupport() {
		return nil, nil
	}
	var (
		s   index.Stream
		err error
	)
	if def.ParamCount() == 1 {
		key := singleKey(def, keyParams)
		if key == nil {
			return nil, nil
		}
		if dir == above {
			s, err = idx.StreamEntriesMajor(key, inclusive, ascending)
		} else {
			s, err = idx.StreamEntriesMinor(key, inclusive, ascending)
		}
	} else {
		if len(keyParams) == 0 {
			return nil, nil
		}
		full := def.CreateSingleValue(keyParams...)
		if full == nil {
			return nil, nil
		}
		prefix := def.CreateSingleValue(keyParams[:len(keyParams)-1]...)
		if prefix == nil {
			return nil, nil
		}
		if dir == above {
			s, err = idx.StreamEntriesBetween(full, inclusive, prefix, true, ascending)
		} else {
			s, err = idx.StreamEntriesBetween(prefix, true, full, inclusive, ascending)
		}
	}
	if err != nil {
		return nil, err
	}
	profileIndex(ctx, idx, keyParams)
	return s, nil
}
