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
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

const (
	// AnyFields makes TRAVERSE follow every field of a record.
	AnyFields = "any()"
	// AllFields is accepted by Configure but has no special meaning: it is
	// looked up as a plain field name.
	AllFields = "all()"
)

// Traverse is the unconfigured TRAVERSE operator. It evaluates its
// condition on the starting value only.
var Traverse = &TraverseOperator{
	base:       parametric(newBase(KindTraverse, "TRAVERSE", 5)),
	startDepth: 0,
	endDepth:   -1,
}

func parametric(b base) base {
	b.expectsParams = true
	return b
}

// TraverseOperator searches the records reachable from the operand for one
// which satisfies the nested condition.
type TraverseOperator struct {
	base
	fields     []string
	startDepth int
	endDepth   int
}

var _ Configurable = (*TraverseOperator)(nil)

// Configure parses [startDepth [, endDepth [, fields]]]. An end depth of -1
// leaves the traversal unbounded and fields default to any().
func (o *TraverseOperator) Configure(params []string) (Operator, error) {
	if params == nil {
		return o, nil
	}
	c := *o
	c.fields = []string{AnyFields}
	var err error
	if len(params) > 0 {
		if c.startDepth, err = parseDepth(params[0]); err != nil {
			return nil, err
		}
	}
	if len(params) > 1 {
		if c.endDepth, err = parseDepth(params[1]); err != nil {
			return nil, err
		}
	}
	if len(params) > 2 {
		f := strings.TrimSpace(params[2])
		if len(f) >= 2 && (f[0] == '\'' || f[0] == '"') {
			f = f[1 : len(f)-1]
		}
		c.fields = strings.Split(f, ",")
		for i := range c.fields {
			c.fields[i] = strings.TrimSpace(c.fields[i])
		}
	}
	return &c, nil
}

func parseDepth(s string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.WithMessagef(ErrInvalidConfiguration, "TRAVERSE depth %q: %v", s, err)
	}
	return d, nil
}

// Depth returns the depth bounds. An end of -1 means unbounded.
func (o *TraverseOperator) Depth() (start, end int) {
	return o.startDepth, o.endDepth
}

// Fields returns the fields followed from each record.
func (o *TraverseOperator) Fields() []string {
	return append([]string(nil), o.fields...)
}

// EvaluateRecord implements Operator.
func (o *TraverseOperator) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(o.evaluate))(ctx, rec, cond, left, right)
}

func (o *TraverseOperator) evaluate(ctx *executor.Context, _ record.Identifiable, cond Condition, left, right any) (any, error) {
	if cond == nil {
		return false, nil
	}
	target := left
	nested, ok := cond.Right().(Condition)
	if c, isCond := cond.Left().(Condition); isCond {
		nested, ok, target = c, true, right
	}
	if !ok || nested == nil {
		return false, nil
	}
	t := &traversal{
		op:      o,
		ctx:     ctx,
		cond:    nested,
		visited: rid.NewSet(),
	}
	return t.visit(target, 0)
}

// traversal holds the state of one search. visited only grows, which bounds
// the search on cyclic graphs.
type traversal struct {
	op        *TraverseOperator
	ctx       *executor.Context
	cond      Condition
	visited   *rid.Set
	transient map[record.Document]struct{}
}

func (t *traversal) visit(target any, depth int) (bool, error) {
	if t.op.endDepth > -1 && depth > t.op.endDepth {
		return false, nil
	}
	if id, ok := target.(record.Identifiable); ok {
		doc, ok := t.resolve(id)
		if !ok {
			return false, nil
		}
		return t.visitDocument(doc, depth)
	}
	if value.IsMultiValue(target) {
		for _, v := range value.Values(target) {
			if ok, err := t.visit(v, depth+1); err != nil || ok {
				return ok, err
			}
		}
	}
	return false, nil
}

// resolve loads the document of id and marks it visited. It fails when the
// record was visited before or cannot be loaded.
func (t *traversal) resolve(id record.Identifiable) (record.Document, bool) {
	doc, isDoc := id.(record.Document)
	identity := id.Identity()
	if !identity.IsValid() {
		if !isDoc {
			return nil, false
		}
		if _, seen := t.transient[doc]; seen {
			return nil, false
		}
		if t.transient == nil {
			t.transient = make(map[record.Document]struct{})
		}
		t.transient[doc] = struct{}{}
		return doc, true
	}
	if !t.visited.Add(identity) {
		return nil, false
	}
	if isDoc {
		return doc, true
	}
	loaded, err := t.ctx.Load(identity)
	if err != nil || loaded == nil {
		t.ctx.Logger().Debug().Err(err).Stringer("rid", identity).Msg("stop traversal at missing record")
		return nil, false
	}
	return loaded, true
}

func (t *traversal) visitDocument(doc record.Document, depth int) (bool, error) {
	if depth >= t.op.startDepth {
		if ok, err := matches(t.ctx, t.cond, doc); err != nil || ok {
			return ok, err
		}
	}
	for _, field := range t.op.fields {
		if strings.EqualFold(field, AnyFields) {
			for _, name := range doc.FieldNames() {
				v, _ := doc.Property(name)
				if ok, err := t.visit(v, depth+1); err != nil || ok {
					return ok, err
				}
			}
			continue
		}
		v, _ := doc.Property(field)
		if ok, err := t.visit(v, depth+1); err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}
