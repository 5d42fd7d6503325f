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
	"reflect"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/iter"
)

// Multi is the result of a field expansion such as any() or all(). Operators
// of the equality family fan out over its values; All requires every value
// to match instead of at least one.
type Multi struct {
	Values []any
	All    bool
}

// NewAny returns a Multi satisfied by any of values.
func NewAny(values ...any) *Multi {
	return &Multi{Values: values}
}

// NewAll returns a Multi satisfied only when all values match.
func NewAll(values ...any) *Multi {
	return &Multi{Values: values, All: true}
}

// Match applies fn to each value and combines the results.
func (m *Multi) Match(fn func(any) bool) bool {
	if m.All {
		for _, v := range m.Values {
			if !fn(v) {
				return false
			}
		}
		return len(m.Values) > 0
	}
	for _, v := range m.Values {
		if fn(v) {
			return true
		}
	}
	return false
}

// IsMultiValue reports whether v is a collection, map, iterator or Multi.
// Strings and byte slices are scalars.
func IsMultiValue(v any) bool {
	switch v.(type) {
	case nil, string, []byte:
		return false
	case []any, map[string]any, *Multi, iter.Iterator[any]:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// IsMap reports whether v is a map.
func IsMap(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}

// Values flattens a multi-value one level. Map values are returned in key
// order. Scalars yield a single-element slice and nil yields nil.
func Values(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case *Multi:
		return t.Values
	case iter.Iterator[any]:
		var out []any
		for item, ok := t.Next(); ok; item, ok = t.Next() {
			out = append(out, item)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make([]any, 0, len(t))
		for _, k := range keys {
			out = append(out, t[k])
		}
		return out
	case string, []byte:
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		keys := rv.MapKeys()
		sortMapKeys(keys)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = rv.MapIndex(k).Interface()
		}
		return out
	}
	return []any{v}
}

// Keys returns the keys of a map value in order, or nil for other values.
func Keys(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil
	}
	keys := rv.MapKeys()
	sortMapKeys(keys)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k.Interface()
	}
	return out
}

// Size returns the number of elements in a multi-value, 1 for a scalar and 0
// for nil.
func Size(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case []any:
		return len(t)
	case *Multi:
		return len(t.Values)
	case string, []byte:
		return 1
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	}
	return 1
}

// First returns the first element of a multi-value, or v itself for a scalar.
func First(v any) any {
	if !IsMultiValue(v) {
		return v
	}
	values := Values(v)
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

func sortMapKeys(keys []reflect.Value) {
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(ToString(a.Interface()), ToString(b.Interface()))
	})
}
