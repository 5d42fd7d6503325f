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
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/operator"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
)

// Item is an operand of a Condition which is resolved against a record.
type Item interface {
	fmt.Stringer
	Eval(ctx *executor.Context, rec record.Identifiable) (any, error)
}

var (
	_ Item                  = (*Field)(nil)
	_ operator.FieldOperand = (*Field)(nil)
	_ operator.ValueOperand = (*Param)(nil)
	_ operator.ValueOperand = (*Literal)(nil)
)

// Field reads a field of the record. A dotted name follows links and
// embedded documents; @rid and @class read record metadata.
type Field struct {
	name  string
	chain []string
}

// NewField returns the field item of name.
func NewField(name string) *Field {
	return &Field{name: name, chain: strings.Split(name, ".")}
}

// FieldName implements operator.FieldOperand.
func (f *Field) FieldName() string {
	return f.name
}

// Eval implements Item. Absent fields resolve to nil.
func (f *Field) Eval(ctx *executor.Context, rec record.Identifiable) (any, error) {
	var current any = rec
	for _, name := range f.chain {
		next, err := step(ctx, current, name)
		if err != nil || next == nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func step(ctx *executor.Context, current any, name string) (any, error) {
	switch c := current.(type) {
	case nil:
		return nil, nil
	case record.Document:
		return record.Field(c, name), nil
	case record.Identifiable:
		doc, err := document(ctx, c)
		if err != nil || doc == nil {
			return nil, err
		}
		return record.Field(doc, name), nil
	case map[string]any:
		return c[name], nil
	}
	if !value.IsMultiValue(current) {
		return nil, nil
	}
	var out []any
	for _, v := range value.Values(current) {
		next, err := step(ctx, v, name)
		if err != nil {
			return nil, err
		}
		if next != nil {
			out = append(out, next)
		}
	}
	return out, nil
}

func (f *Field) String() string {
	return f.name
}

// AnyField expands to the values of every field of the record. A condition
// on it holds when any of the values satisfies it.
type AnyField struct{}

// Eval implements Item.
func (AnyField) Eval(ctx *executor.Context, rec record.Identifiable) (any, error) {
	values, err := fieldValues(ctx, rec)
	if err != nil {
		return nil, err
	}
	return value.NewAny(values...), nil
}

func (AnyField) String() string {
	return "any()"
}

// AllField expands to the values of every field of the record. A condition
// on it holds when all the values satisfy it.
type AllField struct{}

// Eval implements Item.
func (AllField) Eval(ctx *executor.Context, rec record.Identifiable) (any, error) {
	values, err := fieldValues(ctx, rec)
	if err != nil {
		return nil, err
	}
	return value.NewAll(values...), nil
}

func (AllField) String() string {
	return "all()"
}

func fieldValues(ctx *executor.Context, rec record.Identifiable) ([]any, error) {
	doc, err := document(ctx, rec)
	if err != nil || doc == nil {
		return nil, err
	}
	names := doc.FieldNames()
	values := make([]any, 0, len(names))
	for _, n := range names {
		v, _ := doc.Property(n)
		values = append(values, v)
	}
	return values, nil
}

// document returns the loaded record of rec.
func document(ctx *executor.Context, rec record.Identifiable) (record.Document, error) {
	switch r := rec.(type) {
	case nil:
		return nil, nil
	case record.Document:
		return r, nil
	}
	if !rec.Identity().IsPersistent() || ctx.Database() == nil {
		return nil, nil
	}
	doc, err := ctx.Load(rec.Identity())
	if errors.Is(err, executor.ErrRecordNotFound) {
		return nil, nil
	}
	return doc, err
}

// Param is a query parameter, read from the context variables.
type Param struct {
	name string
}

// NewParam returns the parameter bound to variable name.
func NewParam(name string) *Param {
	return &Param{name: strings.TrimLeft(name, ":$")}
}

// Value implements operator.ValueOperand.
func (p *Param) Value(ctx *executor.Context) any {
	v, _ := ctx.Variable(p.name)
	return v
}

// Eval implements Item.
func (p *Param) Eval(ctx *executor.Context, _ record.Identifiable) (any, error) {
	return p.Value(ctx), nil
}

func (p *Param) String() string {
	return ":" + p.name
}

// Literal is a constant operand.
type Literal struct {
	v any
}

// Lit returns a literal of v.
func Lit(v any) *Literal {
	return &Literal{v: v}
}

// Value implements operator.ValueOperand.
func (l *Literal) Value(_ *executor.Context) any {
	return l.v
}

// Eval implements Item.
func (l *Literal) Eval(_ *executor.Context, _ record.Identifiable) (any, error) {
	return l.v, nil
}

func (l *Literal) String() string {
	if s, ok := l.v.(string); ok {
		return "'" + s + "'"
	}
	if l.v == nil {
		return "null"
	}
	return fmt.Sprint(l.v)
}
