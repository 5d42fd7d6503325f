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
	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// Token is a reserved word accepted as the right operand of IS.
type Token string

// IS tokens.
const (
	Defined    Token = "DEFINED"
	NotDefined Token = "NOT DEFINED"
	NotNull    Token = "NOT NULL"
)

var (
	// Equals is the = operator.
	Equals Operator = &equalsOp{base: newBase(KindEquals, "=", 5)}
	// NotEquals is the <> operator.
	NotEquals Operator = &notEqualsOp{base: newBase(KindNotEquals, "<>", 5)}
	// NotEquals2 is the != spelling of <>.
	NotEquals2 Operator = &notEqualsOp{base: newBase(KindNotEquals2, "!=", 5)}
	// Is is the IS operator.
	Is Operator = &isOp{base: newBase(KindIs, "IS", 5)}
)

type equalsOp struct {
	base
}

var evalEquals = notNulls(equality(predicate(value.Equals)))

func (o *equalsOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return evalEquals(ctx, rec, cond, left, right)
}

func (o *equalsOp) IndexReuseType(left, right any) IndexReuseType {
	_, leftRecord := left.(record.Identifiable)
	_, rightRecord := right.(record.Identifiable)
	if leftRecord && rightRecord {
		return NoIndex
	}
	if left == nil || right == nil {
		return NoIndex
	}
	return IndexMethod
}

func (o *equalsOp) ExecuteIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error) {
	defer ctx.Profile(o.keyword)()
	return equalityIndexQuery(ctx, idx, keyParams, ascending)
}

func (o *equalsOp) BeginRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	if id, _, ok := ridBound(ctx, left, right); ok {
		return &id
	}
	return nil
}

func (o *equalsOp) EndRIDRange(ctx *executor.Context, left, right any) *rid.RID {
	return o.BeginRIDRange(ctx, left, right)
}

type notEqualsOp struct {
	base
}

var evalNotEquals = notNulls(equality(predicate(func(left, right any) bool {
	return !value.Equals(left, right)
})))

func (o *notEqualsOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return evalNotEquals(ctx, rec, cond, left, right)
}

type isOp struct {
	base
}

var evalIs = equality(func(_ *executor.Context, rec record.Identifiable, cond Condition, left, right any) (any, error) {
	if cond != nil {
		if f, ok := cond.Left().(FieldOperand); ok {
			switch cond.Right() {
			case Defined:
				return isDefined(rec, f.FieldName()), nil
			case NotDefined:
				return !isDefined(rec, f.FieldName()), nil
			}
		}
	}
	switch {
	case right == NotNull:
		return left != nil, nil
	case left == NotNull:
		return right != nil, nil
	case left == Defined:
		name, _ := right.(string)
		return isDefined(rec, name), nil
	case right == Defined:
		name, _ := left.(string)
		return isDefined(rec, name), nil
	case left == nil || right == nil:
		return left == nil && right == nil, nil
	}
	return value.Equals(left, right), nil
})

func isDefined(rec record.Identifiable, name string) bool {
	doc, ok := rec.(record.Document)
	return ok && doc.Has(name)
}

func (o *isOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return evalIs(ctx, rec, cond, left, right)
}

// IndexReuseType allows IS NULL to read the null keys of an index.
func (o *isOp) IndexReuseType(_, right any) IndexReuseType {
	if right == nil {
		return IndexMethod
	}
	return NoIndex
}

func (o *isOp) ExecuteIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error) {
	defer ctx.Profile(o.keyword)()
	def := idx.Definition()
	internal := idx.Internal()
	if !internal.CanBeUsedInEqualityOperators() {
		return nil, nil
	}
	if def.ParamCount() != 1 {
		return equalityIndexQuery(ctx, idx, keyParams, ascending)
	}
	keyParams, ok := keyValues(keyParams)
	if !ok {
		return nil, nil
	}
	key := singleKey(def, keyParams)
	if key == nil && len(keyParams) > 0 && keyParams[0] != nil {
		// a value that doesn't convert to the key type must not read the null bucket
		return nil, nil
	}
	s, err := ridStream(idx, key)
	if err != nil {
		return nil, err
	}
	profileIndex(ctx, idx, keyParams)
	return s, nil
}
