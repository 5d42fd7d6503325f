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

// Package logical implements the condition tree of WHERE predicates.
package logical

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/operator"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

var _ operator.Condition = (*Condition)(nil)

// Condition binds an operator to its operands. An operand is an Item, a
// nested *Condition or a constant.
type Condition struct {
	left  any
	right any
	op    operator.Operator
}

// New returns the condition left op right.
func New(left any, op operator.Operator, right any) *Condition {
	return &Condition{left: left, op: op, right: right}
}

// NewUnary returns the condition op operand, such as NOT.
func NewUnary(op operator.Operator, operand any) *Condition {
	return &Condition{left: operand, op: op}
}

// Left implements operator.Condition.
func (c *Condition) Left() any {
	return c.left
}

// Right implements operator.Condition.
func (c *Condition) Right() any {
	return c.right
}

// Operator returns the operator of the condition.
func (c *Condition) Operator() operator.Operator {
	return c.op
}

// Evaluate implements operator.Condition. The right operand is not
// evaluated when the left one decides the result.
func (c *Condition) Evaluate(ctx *executor.Context, rec record.Identifiable) (any, error) {
	l, err := operand(ctx, rec, c.left)
	if err != nil {
		return nil, err
	}
	if c.op == nil || c.op.CanShortCircuit(l) {
		return l, nil
	}
	r, err := operand(ctx, rec, c.right)
	if err != nil {
		return nil, err
	}
	l, r = coerce(l, r)
	ctx.Metrics().OperatorEvaluated(c.op.Keyword())
	res, err := c.op.EvaluateRecord(ctx, rec, nil, c, l, r)
	if err != nil {
		return nil, errors.WithMessagef(err, "evaluate %s", c)
	}
	return res, nil
}

// Match evaluates the condition and reports whether it holds.
func (c *Condition) Match(ctx *executor.Context, rec record.Identifiable) (bool, error) {
	res, err := c.Evaluate(ctx, rec)
	if err != nil {
		return false, err
	}
	b, _ := res.(bool)
	return b, nil
}

func operand(ctx *executor.Context, rec record.Identifiable, o any) (any, error) {
	switch t := o.(type) {
	case *Condition:
		return t.Evaluate(ctx, rec)
	case Item:
		return t.Eval(ctx, rec)
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			res, err := operand(ctx, rec, v)
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return out, nil
	}
	return o, nil
}

// coerce converts one operand towards the kind of the other when their
// kinds differ: integers, dates, floats and record ids. Failed conversions
// leave both operands unchanged.
func coerce(l, r any) (any, any) {
	if isToken(l) || isToken(r) || l == nil || r == nil {
		return l, r
	}
	if fmt.Sprintf("%T", l) == fmt.Sprintf("%T", r) {
		return l, r
	}
	switch {
	case isInteger(r) && !value.IsNumber(l) && !value.IsMultiValue(l):
		if c, ok := toInteger(l, r); ok {
			return c, r
		}
	case isInteger(l) && !value.IsNumber(r) && !value.IsMultiValue(r):
		if c, ok := toInteger(r, l); ok {
			return l, c
		}
	case isTime(r) && !isTime(l) && !value.IsMultiValue(l):
		if c, err := value.Convert(l, value.TypeDateTime); err == nil {
			return c, r
		}
	case isTime(l) && !isTime(r) && !value.IsMultiValue(r):
		if c, err := value.Convert(r, value.TypeDateTime); err == nil {
			return l, c
		}
	case isFloat(r) && !value.IsMultiValue(l):
		if c, err := value.Convert(l, value.TypeFloat); err == nil {
			return c, r
		}
	case isFloat(l) && !value.IsMultiValue(r):
		if c, err := value.Convert(r, value.TypeFloat); err == nil {
			return l, c
		}
	case isRID(r):
		if s, ok := l.(string); ok {
			if id, err := rid.Parse(s); err == nil {
				return id, r
			}
		}
	case isRID(l):
		if s, ok := r.(string); ok {
			if id, err := rid.Parse(s); err == nil {
				return l, id
			}
		}
	}
	return l, r
}

// toInteger converts v like the integer like. Decimal text is truncated
// and dates become epoch milliseconds.
func toInteger(v, like any) (any, bool) {
	switch t := v.(type) {
	case string:
		if strings.Contains(t, ".") {
			f, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, false
			}
			v = int64(f)
		}
	case time.Time:
		v = t.UnixMilli()
	}
	c, err := value.ConvertLike(v, like)
	return c, err == nil
}

func isToken(v any) bool {
	_, ok := v.(operator.Token)
	return ok
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int32:
		return true
	}
	return false
}

func isFloat(v any) bool {
	_, ok := v.(float32)
	return ok
}

func isTime(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func isRID(v any) bool {
	_, ok := v.(rid.RID)
	return ok
}

// BeginRIDRange implements operator.Condition.
func (c *Condition) BeginRIDRange(ctx *executor.Context) *rid.RID {
	if c.op == nil {
		return nil
	}
	return c.op.BeginRIDRange(ctx, c.left, c.right)
}

// EndRIDRange implements operator.Condition.
func (c *Condition) EndRIDRange(ctx *executor.Context) *rid.RID {
	if c.op == nil {
		return nil
	}
	return c.op.EndRIDRange(ctx, c.left, c.right)
}

// IndexReuseType asks the operator how the condition can use indexes.
func (c *Condition) IndexReuseType() operator.IndexReuseType {
	if c.op == nil {
		return operator.NoIndex
	}
	return c.op.IndexReuseType(c.left, c.right)
}

// InvolvedFields lists the fields the condition tree reads, in order of
// appearance.
func (c *Condition) InvolvedFields() []string {
	var fields []string
	seen := make(map[string]struct{})
	c.walkFields(func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	})
	return fields
}

func (c *Condition) walkFields(fn func(string)) {
	for _, o := range []any{c.left, c.right} {
		switch t := o.(type) {
		case *Condition:
			t.walkFields(fn)
		case *Field:
			fn(t.FieldName())
		}
	}
}

func (c *Condition) String() string {
	var b strings.Builder
	b.WriteString("(")
	if c.op != nil && c.op.IsUnary() {
		b.WriteString(c.op.Keyword())
		b.WriteString(" ")
		b.WriteString(format(c.left))
	} else {
		b.WriteString(format(c.left))
		if c.op != nil {
			b.WriteString(" ")
			b.WriteString(c.op.Keyword())
			b.WriteString(" ")
			b.WriteString(format(c.right))
		}
	}
	b.WriteString(")")
	return b.String()
}

func format(o any) string {
	switch t := o.(type) {
	case nil:
		return "null"
	case string:
		return "'" + t + "'"
	case fmt.Stringer:
		return t.String()
	case []any:
		parts := make([]string, len(t))
		for i, v := range t {
			parts[i] = format(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(o)
}
