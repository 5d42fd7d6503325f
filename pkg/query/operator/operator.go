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

// Package operator implements the comparison, containment, logical and
// pattern operators of WHERE predicates, and their ability to answer a
// predicate from a secondary index instead of evaluating every record.
package operator

import (
	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

var (
	// ErrInvalidConfiguration is returned when an operator cannot be configured with the given parameters.
	ErrInvalidConfiguration = errors.New("invalid operator configuration")
	// ErrClassNotFound is returned when a predicate names a class missing from the schema.
	ErrClassNotFound = errors.New("class not found")
	// ErrArity is returned when an operator receives the wrong number of operands.
	ErrArity = errors.New("wrong number of operands")
	// ErrNotBoolean is returned when a logical operator receives a non boolean operand.
	ErrNotBoolean = errors.New("operand is not a boolean")
	// ErrInvalidKey is returned when index key parameters have an unexpected shape.
	ErrInvalidKey = errors.New("invalid index key")
)

// IndexReuseType tells the planner how an operator can use indexes.
type IndexReuseType uint8

// Index reuse hints.
const (
	NoIndex IndexReuseType = iota
	IndexMethod
	IndexIntersection
	IndexUnion
	IndexOperator
)

func (t IndexReuseType) String() string {
	switch t {
	case IndexMethod:
		return "INDEX_METHOD"
	case IndexIntersection:
		return "INDEX_INTERSECTION"
	case IndexUnion:
		return "INDEX_UNION"
	case IndexOperator:
		return "INDEX_OPERATOR"
	}
	return "NO_INDEX"
}

// Condition is the predicate an operator is evaluated for. Operands may be
// nested conditions themselves.
type Condition interface {
	Left() any
	Right() any
	// Evaluate evaluates the condition against rec.
	Evaluate(ctx *executor.Context, rec record.Identifiable) (any, error)
	BeginRIDRange(ctx *executor.Context) *rid.RID
	EndRIDRange(ctx *executor.Context) *rid.RID
}

// FieldOperand is implemented by operands naming a field of the record.
type FieldOperand interface {
	FieldName() string
}

// ValueOperand is implemented by operands whose value does not depend on
// the record, such as literals and parameters.
type ValueOperand interface {
	Value(ctx *executor.Context) any
}

// Operator is a predicate operator. Instances are immutable and shared by
// concurrent queries.
type Operator interface {
	Keyword() string
	Kind() Kind
	// Precedence is used by parsers, not by evaluation.
	Precedence() int
	IsUnary() bool
	ExpectedRightWords() int
	// ExpectsParameters reports whether Configure must be called first.
	ExpectsParameters() bool

	// EvaluateRecord evaluates the operator for one record. left and right
	// are the values of the operands of cond.
	EvaluateRecord(ctx *executor.Context, rec record.Identifiable, result any, cond Condition, left, right any) (any, error)
	// IndexReuseType is a function of the shape of the operands only.
	IndexReuseType(left, right any) IndexReuseType
	// ExecuteIndexQuery answers the predicate from idx. A nil stream means
	// the index cannot answer it and records must be evaluated instead.
	ExecuteIndexQuery(ctx *executor.Context, idx index.Index, keyParams []any, ascending bool) (index.Stream, error)
	// BeginRIDRange and EndRIDRange bound the identities the predicate can
	// match, or return nil when it does not constrain them.
	BeginRIDRange(ctx *executor.Context, left, right any) *rid.RID
	EndRIDRange(ctx *executor.Context, left, right any) *rid.RID

	Compare(other Operator) Order
	CanShortCircuit(left any) bool
	CanBeMerged() bool
}

// Configurable is implemented by parametric operators.
type Configurable interface {
	// Configure returns a new operator; the receiver is never modified.
	Configure(params []string) (Operator, error)
}

// Configure specializes op with params. Operators which take no
// parameters are returned unchanged.
func Configure(op Operator, params []string) (Operator, error) {
	if c, ok := op.(Configurable); ok {
		return c.Configure(params)
	}
	return op, nil
}

// base carries the descriptor of an operator and its default behavior.
type base struct {
	keyword       string
	kind          Kind
	precedence    int
	rightWords    int
	unary         bool
	expectsParams bool
}

func newBase(kind Kind, keyword string, precedence int) base {
	return base{kind: kind, keyword: keyword, precedence: precedence, rightWords: 1}
}

func (b base) Keyword() string { return b.keyword }

func (b base) Kind() Kind { return b.kind }

func (b base) Precedence() int { return b.precedence }

func (b base) IsUnary() bool { return b.unary }

func (b base) ExpectedRightWords() int { return b.rightWords }

func (b base) ExpectsParameters() bool { return b.expectsParams }

func (b base) IndexReuseType(_, _ any) IndexReuseType { return NoIndex }

func (b base) ExecuteIndexQuery(_ *executor.Context, _ index.Index, _ []any, _ bool) (index.Stream, error) {
	return nil, nil
}

func (b base) BeginRIDRange(_ *executor.Context, _, _ any) *rid.RID { return nil }

func (b base) EndRIDRange(_ *executor.Context, _, _ any) *rid.RID { return nil }

func (b base) Compare(other Operator) Order { return compareKinds(b.kind, other.Kind()) }

func (b base) CanShortCircuit(_ any) bool { return false }

func (b base) CanBeMerged() bool { return true }

func (b base) String() string { return b.keyword }
