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
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Kind identifies an operator variant.
type Kind uint8

// Operator kinds.
const (
	KindUnknown Kind = iota
	KindEquals
	KindAnd
	KindOr
	KindNotEquals
	KindNotEquals2
	KindNot
	KindMinorEquals
	KindMinor
	KindMajorEquals
	KindContainsAll
	KindMajor
	KindLike
	KindMatches
	KindInstanceOf
	KindIs
	KindIn
	KindContainsKey
	KindContainsValue
	KindContainsText
	KindContains
	KindTraverse
	KindBetween
	KindPlus
	KindMinus
	KindMultiply
	KindDivide
	KindMod
)

// defaultOrder is the order in which a tokenizer tries operators. INSTANCEOF
// precedes IS since IS is a prefix of it.
var defaultOrder = []Kind{
	KindEquals, KindAnd, KindOr, KindNotEquals, KindNotEquals2, KindNot,
	KindMinorEquals, KindMinor, KindMajorEquals, KindContainsAll, KindMajor,
	KindLike, KindMatches, KindInstanceOf, KindIs, KindIn, KindContainsKey,
	KindContainsValue, KindContainsText, KindContains, KindTraverse, KindBetween,
	KindPlus, KindMinus, KindMultiply, KindDivide, KindMod,
}

var positions = func() map[Kind]int {
	m := make(map[Kind]int, len(defaultOrder))
	for i, k := range defaultOrder {
		m[k] = i
	}
	return m
}()

// Order is the relative position of two operators.
type Order uint8

// Orders.
const (
	Unknown Order = iota
	Before
	After
	Equal
)

func (o Order) String() string {
	switch o {
	case Before:
		return "BEFORE"
	case After:
		return "AFTER"
	case Equal:
		return "EQUAL"
	}
	return "UNKNOWN"
}

func compareKinds(a, b Kind) Order {
	pa, okA := positions[a]
	pb, okB := positions[b]
	if !okA || !okB {
		return Unknown
	}
	switch {
	case pa > pb:
		return After
	case pa < pb:
		return Before
	}
	return Equal
}

type pair struct {
	before, after Operator
}

// Sort orders ops so that every operator comes after all the operators it
// compares AFTER. Operators without a constraint keep their relative order.
func Sort(ops []Operator) ([]Operator, error) {
	pending := slices.Clone(ops)
	var pairs []pair
	addPair := func(p pair) {
		if !slices.Contains(pairs, p) {
			pairs = append(pairs, p)
		}
	}
	for i, a := range pending {
		for j, b := range pending {
			if i == j {
				continue
			}
			switch a.Compare(b) {
			case Before:
				addPair(pair{before: a, after: b})
			case After:
				addPair(pair{before: b, after: a})
			}
		}
	}
	sorted := make([]Operator, 0, len(pending))
	for added := true; added; {
		added = false
		for i := 0; i < len(pending); {
			candidate := pending[i]
			if slices.ContainsFunc(pairs, func(p pair) bool { return p.after == candidate }) {
				i++
				continue
			}
			sorted = append(sorted, candidate)
			pending = slices.Delete(pending, i, i+1)
			pairs = slices.DeleteFunc(pairs, func(p pair) bool { return p.before == candidate })
			added = true
		}
	}
	if len(pending) > 0 {
		keywords := make([]string, len(pending))
		for i, op := range pending {
			keywords[i] = op.Keyword()
		}
		return nil, errors.Errorf("invalid sorting, cyclic order among %s", strings.Join(keywords, ", "))
	}
	return sorted, nil
}

var (
	defaultOperators = []Operator{
		Equals, And, Or, NotEquals, NotEquals2, Not,
		MinorEquals, Minor, MajorEquals, ContainsAll, Major,
		Like, Matches, InstanceOf, Is, In, ContainsKey,
		ContainsValue, ContainsText, Contains, Traverse, Between,
		Plus, Minus, Multiply, Divide, Mod,
	}
	byKeyword = func() map[string]Operator {
		m := make(map[string]Operator, len(defaultOperators))
		for _, op := range defaultOperators {
			m[op.Keyword()] = op
		}
		return m
	}()
)

// Default returns the shared built-in operators in tokenizer order.
func Default() []Operator {
	return slices.Clone(defaultOperators)
}

// Lookup returns the built-in operator with keyword, case-insensitively.
func Lookup(keyword string) (Operator, bool) {
	op, ok := byKeyword[strings.ToUpper(keyword)]
	return op, ok
}

// MustLookup is like Lookup but panics when keyword is unknown.
func MustLookup(keyword string) Operator {
	op, ok := Lookup(keyword)
	if !ok {
		panic(fmt.Sprintf("unknown operator %q", keyword))
	}
	return op
}
