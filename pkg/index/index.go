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

//go:generate mockgen -destination=./index_mock.go -package=index . Index,Definition,Internal

// Package index defines the secondary index handle predicates are answered
// from, its composite keys and the lazy entry streams it produces.
package index

import (
	"github.com/youtrackdb/youtrackdb-sub027/pkg/iter"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// MapIndexBy tells which side of a map property a map index is keyed by.
type MapIndexBy uint8

// Map index orientations.
const (
	MapIndexNone MapIndexBy = iota
	MapIndexByKey
	MapIndexByValue
)

func (m MapIndexBy) String() string {
	switch m {
	case MapIndexByKey:
		return "BY KEY"
	case MapIndexByValue:
		return "BY VALUE"
	}
	return "NONE"
}

// Index is a handle of a secondary index. Predicates only query it.
type Index interface {
	Name() string
	Definition() Definition
	Internal() Internal
	// RIDs returns the records stored under key. A nil key addresses the
	// records whose indexed value is null.
	RIDs(key any) (iter.Iterator[rid.RID], error)
	StreamEntriesBetween(lower any, lowerInclusive bool, upper any, upperInclusive bool, ascending bool) (Stream, error)
	StreamEntriesMajor(key any, inclusive bool, ascending bool) (Stream, error)
	StreamEntriesMinor(key any, inclusive bool, ascending bool) (Stream, error)
}

// Internal exposes the capabilities of the index engine.
type Internal interface {
	CanBeUsedInEqualityOperators() bool
	HasRangeQuerySupport() bool
}

// Definition describes what an index is built on.
type Definition interface {
	ClassName() string
	Fields() []string
	ParamCount() int
	// IsMultiValue reports whether a collection property is indexed by element.
	IsMultiValue() bool
	MapIndexBy() MapIndexBy
	// CreateValue builds a key from params, or returns nil when they cannot
	// form a key of this index.
	CreateValue(params ...any) any
	// CreateSingleValue builds a key from params, which may be fewer than
	// ParamCount for composite indexes, or returns nil.
	CreateSingleValue(params ...any) any
}

// Property is a field an index is built on.
type Property struct {
	Name string
	// Type is the key type. For multi-value indexes it is the element type.
	Type value.Type
}

var _ Definition = (*Def)(nil)

// Def is the standard Definition of a property or composite index.
type Def struct {
	Class      string
	Properties []Property
	MultiValue bool
	MapBy      MapIndexBy
}

// NewDef returns a definition over properties of class.
func NewDef(class string, properties ...Property) *Def {
	return &Def{Class: class, Properties: properties}
}

// ClassName implements Definition.
func (d *Def) ClassName() string {
	return d.Class
}

// Fields implements Definition.
func (d *Def) Fields() []string {
	names := make([]string, len(d.Properties))
	for i, p := range d.Properties {
		names[i] = p.Name
	}
	return names
}

// ParamCount implements Definition.
func (d *Def) ParamCount() int {
	return len(d.Properties)
}

// IsMultiValue implements Definition.
func (d *Def) IsMultiValue() bool {
	return d.MultiValue || d.MapBy != MapIndexNone
}

// MapIndexBy implements Definition.
func (d *Def) MapIndexBy() MapIndexBy {
	return d.MapBy
}

// CreateValue implements Definition.
func (d *Def) CreateValue(params ...any) any {
	if len(d.Properties) != 1 {
		return d.CreateSingleValue(params...)
	}
	if len(params) != 1 || params[0] == nil {
		return nil
	}
	if d.IsMultiValue() && value.IsMultiValue(params[0]) {
		return nil
	}
	return d.convert(params[0], 0)
}

// CreateSingleValue implements Definition.
func (d *Def) CreateSingleValue(params ...any) any {
	if len(params) > len(d.Properties) {
		return nil
	}
	if len(d.Properties) == 1 {
		if len(params) == 0 || params[0] == nil {
			return nil
		}
		return d.convert(params[0], 0)
	}
	key := make(CompositeKey, len(params))
	for i, p := range params {
		if p == nil {
			continue
		}
		c := d.convert(p, i)
		if c == nil {
			return nil
		}
		key[i] = c
	}
	return key
}

func (d *Def) convert(v any, i int) any {
	c, err := value.Convert(v, d.Properties[i].Type)
	if err != nil {
		return nil
	}
	return c
}

// Entry is a key and one record stored under it.
type Entry struct {
	Key any
	RID rid.RID
}
