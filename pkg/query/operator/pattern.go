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
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/schema"
)

var (
	// Matches is the MATCHES operator.
	Matches Operator = &matchesOp{base: newBase(KindMatches, "MATCHES", 5)}
	// Like is the LIKE operator.
	Like Operator = &likeOp{base: newBase(KindLike, "LIKE", 5)}
	// InstanceOf is the INSTANCEOF operator.
	InstanceOf Operator = &instanceOfOp{base: newBase(KindInstanceOf, "INSTANCEOF", 5)}
)

type matchesOp struct {
	base
}

func (o *matchesOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(o.evaluate))(ctx, rec, cond, left, right)
}

func (o *matchesOp) evaluate(ctx *executor.Context, _ record.Identifiable, _ Condition, left, right any) (any, error) {
	if left == nil || right == nil {
		return false, nil
	}
	return matchPattern(ctx, value.ToString(right), value.ToString(left)), nil
}

// matchPattern reports whether the whole text matches pattern. Invalid
// patterns match nothing.
func matchPattern(ctx *executor.Context, pattern, text string) bool {
	re, err := ctx.Pattern(pattern)
	if err != nil {
		ctx.RecordLogger().Debug().Err(err).Str("pattern", pattern).Msg("skip invalid pattern")
		return false
	}
	return re.MatchString(text)
}

type likeOp struct {
	base
}

func (o *likeOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(o.evaluate))(ctx, rec, cond, left, right)
}

func (o *likeOp) evaluate(ctx *executor.Context, _ record.Identifiable, _ Condition, left, right any) (any, error) {
	if left == nil || right == nil || value.IsMultiValue(left) || value.IsMultiValue(right) {
		return false, nil
	}
	text, pattern := value.ToString(left), value.ToString(right)
	if text == "" || pattern == "" {
		return false, nil
	}
	return matchPattern(ctx, likePattern(pattern), text), nil
}

// likePattern translates the % and ? wildcards into a case insensitive
// regular expression.
func likePattern(pattern string) string {
	var b strings.Builder
	b.WriteString("(?is)")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

type instanceOfOp struct {
	base
}

func (o *instanceOfOp) EvaluateRecord(ctx *executor.Context, rec record.Identifiable, _ any, cond Condition, left, right any) (any, error) {
	return notNulls(equality(o.evaluate))(ctx, rec, cond, left, right)
}

func (o *instanceOfOp) evaluate(ctx *executor.Context, _ record.Identifiable, _ Condition, left, right any) (any, error) {
	if right == nil {
		return false, nil
	}
	name := value.ToString(right)
	snapshot := ctx.Schema()
	var baseClass schema.Class
	if snapshot != nil {
		baseClass = snapshot.Class(name)
	}
	if baseClass == nil {
		return nil, errors.WithMessagef(ErrClassNotFound, "class '%s' is not defined in database schema", name)
	}
	var class schema.Class
	switch l := left.(type) {
	case record.Document:
		class = snapshot.Class(l.ClassName())
	case record.Identifiable:
		doc, err := ctx.Load(l.Identity())
		if err != nil || doc == nil {
			ctx.RecordLogger().Debug().Err(err).Stringer("rid", l.Identity()).Msg("cannot load record")
			return false, nil
		}
		class = snapshot.Class(doc.ClassName())
	case string:
		class = snapshot.Class(l)
	}
	return class != nil && class.IsSubClassOf(baseClass), nil
}
