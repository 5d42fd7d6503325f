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

package value

import (
	"bytes"
	"reflect"
	"time"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// Equals is the untyped equality used by every operator. Nil never equals
// anything, numbers are compared after promotion and records are compared
// by identity. A transient document is compared through its first field.
func Equals(left, right any) bool {
	if left == nil || right == nil {
		return false
	}
	if sameReference(left, right) {
		return true
	}
	if doc, ok := left.(record.Identifiable); ok {
		if _, isRID := left.(rid.RID); !isRID {
			return equalsRecord(right, doc)
		}
	}
	if doc, ok := right.(record.Identifiable); ok {
		if _, isRID := right.(rid.RID); !isRID {
			return equalsRecord(left, doc)
		}
	}
	if m, ok := left.(map[string]any); ok && len(m) == 1 && !IsMap(right) {
		for _, v := range m {
			return Equals(v, right)
		}
	}
	if m, ok := right.(map[string]any); ok && len(m) == 1 && !IsMap(left) {
		for _, v := range m {
			return Equals(left, v)
		}
	}
	if IsNumber(left) && IsNumber(right) {
		c, ok := CompareNumbers(left, right)
		return ok && c == 0
	}
	if IsMultiValue(left) && IsMultiValue(right) {
		if IsMap(left) != IsMap(right) {
			return false
		}
		if IsMap(left) {
			return equalMaps(left, right)
		}
		return equalLists(Values(left), Values(right))
	}
	converted, err := ConvertLike(right, left)
	if err != nil || converted == nil {
		return false
	}
	return equalScalars(left, converted)
}

// EqualsTyped converts both sides to the representation of t before
// comparing them. TypeAny falls back to Equals.
func EqualsTyped(left, right any, t Type) bool {
	if t == TypeAny {
		return Equals(left, right)
	}
	l, err := Convert(left, t)
	if err != nil {
		return false
	}
	r, err := Convert(right, t)
	if err != nil {
		return false
	}
	return Equals(l, r)
}

func equalsRecord(v any, doc record.Identifiable) bool {
	id := doc.Identity()
	if d, ok := doc.(record.Document); ok && !id.IsPersistent() {
		names := d.FieldNames()
		if len(names) == 0 {
			return false
		}
		field, _ := d.Property(names[0])
		if field == nil {
			return false
		}
		if IsMultiValue(field) {
			for _, item := range Values(field) {
				if Equals(item, v) {
					return true
				}
			}
		}
		return Equals(field, v)
	}
	switch t := v.(type) {
	case record.Identifiable:
		return id == t.Identity()
	case string:
		other, err := rid.Parse(t)
		return err == nil && id == other
	}
	return false
}

func equalScalars(a, b any) bool {
	if IsNumber(a) && IsNumber(b) {
		c, ok := CompareNumbers(a, b)
		return ok && c == 0
	}
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func equalLists(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil && b[i] == nil {
			continue
		}
		if !Equals(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalMaps(a, b any) bool {
	ka, kb := Keys(a), Keys(b)
	if len(ka) != len(kb) {
		return false
	}
	va, vb := Values(a), Values(b)
	for i := range ka {
		if ToString(ka[i]) != ToString(kb[i]) {
			return false
		}
		if va[i] == nil && vb[i] == nil {
			continue
		}
		if !Equals(va[i], vb[i]) {
			return false
		}
	}
	return true
}

// sameReference reports pointer identity without comparing uncomparable
// dynamic types.
func sameReference(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != reflect.Pointer || rb.Kind() != reflect.Pointer {
		return false
	}
	return ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
}
