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

// Package iter implements generic pull iterators.
package iter

// An Iterator is a stream of items of some type.
type Iterator[T any] interface {
	// Next returns the next item, or false once the stream is exhausted.
	Next() (T, bool)
}

// Func adapts a function to an Iterator.
type Func[T any] func() (T, bool)

// Next implements Iterator.
func (f Func[T]) Next() (T, bool) {
	return f()
}

// FromSlice returns the items of slice in order.
func FromSlice[T any](slice []T) Iterator[T] {
	i := 0
	return Func[T](func() (T, bool) {
		if i >= len(slice) {
			var zero T
			return zero, false
		}
		i++
		return slice[i-1], true
	})
}

// Map applies mapFunc to every item of from. mapFunc must not mutate state
// outside its scope.
func Map[T any, O any](from Iterator[T], mapFunc func(T) O) Iterator[O] {
	return Func[O](func() (O, bool) {
		item, ok := from.Next()
		if !ok {
			var zero O
			return zero, false
		}
		return mapFunc(item), true
	})
}

// Filter returns the items of from accepted by keep.
func Filter[T any](from Iterator[T], keep func(T) bool) Iterator[T] {
	return Func[T](func() (T, bool) {
		for {
			item, ok := from.Next()
			if !ok || keep(item) {
				return item, ok
			}
		}
	})
}

// Flatten concatenates the iterators produced by from.
func Flatten[T any](from Iterator[Iterator[T]]) Iterator[T] {
	var head Iterator[T]
	return Func[T](func() (T, bool) {
		for {
			if head == nil {
				next, ok := from.Next()
				if !ok {
					var zero T
					return zero, false
				}
				head = next
			}
			if item, ok := head.Next(); ok {
				return item, true
			}
			head = nil
		}
	})
}

// Concat returns the items of each iterator in turn.
func Concat[T any](iterators ...Iterator[T]) Iterator[T] {
	return Flatten(FromSlice(iterators))
}

// Collect drains it into a slice.
func Collect[T any](it Iterator[T]) []T {
	var out []T
	for item, ok := it.Next(); ok; item, ok = it.Next() {
		out = append(out, item)
	}
	return out
}

// Empty returns an iterator that never returns anything.
func Empty[T any]() Iterator[T] {
	return Func[T](func() (T, bool) {
		var zero T
		return zero, false
	})
}
