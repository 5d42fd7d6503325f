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

// Package value implements coercion, ordering and equality of the runtime
// values a predicate operates on.
package value

import (
	"reflect"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// Type is the declared type of a property.
type Type uint8

// Property types.
const (
	TypeAny Type = iota
	TypeBoolean
	TypeByte
	TypeShort
	TypeInteger
	TypeLong
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeString
	TypeBinary
	TypeDateTime
	TypeLink
	TypeEmbedded
	TypeEmbeddedList
	TypeEmbeddedSet
	TypeEmbeddedMap
	TypeLinkList
	TypeLinkSet
	TypeLinkMap
)

var typeNames = map[Type]string{
	TypeAny:          "ANY",
	TypeBoolean:      "BOOLEAN",
	TypeByte:         "BYTE",
	TypeShort:        "SHORT",
	TypeInteger:      "INTEGER",
	TypeLong:         "LONG",
	TypeFloat:        "FLOAT",
	TypeDouble:       "DOUBLE",
	TypeDecimal:      "DECIMAL",
	TypeString:       "STRING",
	TypeBinary:       "BINARY",
	TypeDateTime:     "DATETIME",
	TypeLink:         "LINK",
	TypeEmbedded:     "EMBEDDED",
	TypeEmbeddedList: "EMBEDDEDLIST",
	TypeEmbeddedSet:  "EMBEDDEDSET",
	TypeEmbeddedMap:  "EMBEDDEDMAP",
	TypeLinkList:     "LINKLIST",
	TypeLinkSet:      "LINKSET",
	TypeLinkMap:      "LINKMAP",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// IsMultiValue reports whether properties of type t hold collections.
func (t Type) IsMultiValue() bool {
	switch t {
	case TypeEmbeddedList, TypeEmbeddedSet, TypeEmbeddedMap, TypeLinkList, TypeLinkSet, TypeLinkMap:
		return true
	}
	return false
}

// IsNumeric reports whether t is a member of the numeric lattice.
func (t Type) IsNumeric() bool {
	return t >= TypeByte && t <= TypeDecimal
}

// representative returns the zero value of the Go type backing t.
func (t Type) representative() any {
	switch t {
	case TypeBoolean:
		return false
	case TypeByte:
		return int8(0)
	case TypeShort:
		return int16(0)
	case TypeInteger:
		return int32(0)
	case TypeLong:
		return int64(0)
	case TypeFloat:
		return float32(0)
	case TypeDouble:
		return float64(0)
	case TypeDecimal:
		return new(apd.Decimal)
	case TypeString:
		return ""
	case TypeBinary:
		return []byte(nil)
	case TypeDateTime:
		return time.Time{}
	case TypeLink:
		return rid.RID{}
	}
	return nil
}

// TypeOf returns the property type matching the runtime type of v.
func TypeOf(v any) Type {
	if k := kindOf(v); k != notNumber {
		return k.propertyType()
	}
	switch t := v.(type) {
	case nil:
		return TypeAny
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case []byte:
		return TypeBinary
	case time.Time:
		return TypeDateTime
	case rid.RID:
		return TypeLink
	case record.Document:
		if t.Identity().IsPersistent() {
			return TypeLink
		}
		return TypeEmbedded
	case record.Identifiable:
		return TypeLink
	case map[string]any:
		return TypeEmbeddedMap
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return TypeEmbeddedList
	case reflect.Map:
		return TypeEmbeddedMap
	}
	return TypeAny
}
