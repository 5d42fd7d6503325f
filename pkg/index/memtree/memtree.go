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

// Package memtree implements an in-memory ordered index on a red-black tree.
package memtree

import (
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/iter"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

var (
	// ErrDuplicateKey is returned when a unique index already holds a key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrRangeUnsupported is returned by range scans of hash-like indexes.
	ErrRangeUnsupported = errors.New("index does not support range queries")
)

var (
	_ index.Index    = (*Index)(nil)
	_ index.Internal = (*Index)(nil)
)

// Option configures an Index.
type Option func(*Index)

// Unique rejects a second record under the same key.
func Unique() Option {
	return func(i *Index) { i.unique = true }
}

// HashLike disables range queries, as a hash index would.
func HashLike() Option {
	return func(i *Index) { i.hashLike = true }
}

// Index keeps key to records postings ordered by index.CompareKeys.
//
// Range streams read a copy of the matching entries taken when they are
// opened, and later writes are not visible to them.
type Index struct {
	def      index.Definition
	tree     *redblacktree.Tree
	name     string
	nulls    []rid.RID
	mu       sync.RWMutex
	unique   bool
	hashLike bool
}

// New returns an empty index called name.
func New(name string, def index.Definition, opts ...Option) *Index {
	i := &Index{
		name: name,
		def:  def,
		tree: redblacktree.NewWith(index.CompareKeys),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Name implements index.Index.
func (i *Index) Name() string {
	return i.name
}

// Definition implements index.Index.
func (i *Index) Definition() index.Definition {
	return i.def
}

// Internal implements index.Index.
func (i *Index) Internal() index.Internal {
	return i
}

// CanBeUsedInEqualityOperators implements index.Internal.
func (i *Index) CanBeUsedInEqualityOperators() bool {
	return true
}

// HasRangeQuerySupport implements index.Internal.
func (i *Index) HasRangeQuerySupport() bool {
	return !i.hashLike
}

// Size returns the number of keys, the null key included.
func (i *Index) Size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	n := i.tree.Size()
	if len(i.nulls) > 0 {
		n++
	}
	return n
}

// Put stores id under key. A nil key stores a null value.
func (i *Index) Put(key any, id rid.RID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if key == nil {
		if i.unique && len(i.nulls) > 0 {
			return errors.WithMessagef(ErrDuplicateKey, "%s: null", i.name)
		}
		i.nulls = appendRID(i.nulls, id)
		return nil
	}
	if v, found := i.tree.Get(key); found {
		rids := v.([]rid.RID)
		if i.unique && (len(rids) > 1 || rids[0] != id) {
			return errors.WithMessagef(ErrDuplicateKey, "%s: %v", i.name, key)
		}
		i.tree.Put(key, appendRID(rids, id))
		return nil
	}
	i.tree.Put(key, []rid.RID{id})
	return nil
}

func appendRID(rids []rid.RID, id rid.RID) []rid.RID {
	for _, r := range rids {
		if r == id {
			return rids
		}
	}
	return append(rids, id)
}

// Remove deletes id from key and reports whether it was there.
func (i *Index) Remove(key any, id rid.RID) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if key == nil {
		var ok bool
		i.nulls, ok = removeRID(i.nulls, id)
		return ok
	}
	v, found := i.tree.Get(key)
	if !found {
		return false
	}
	rids, ok := removeRID(v.([]rid.RID), id)
	if len(rids) == 0 {
		i.tree.Remove(key)
	} else {
		i.tree.Put(key, rids)
	}
	return ok
}

func removeRID(rids []rid.RID, id rid.RID) ([]rid.RID, bool) {
	for n, r := range rids {
		if r == id {
			out := make([]rid.RID, 0, len(rids)-1)
			out = append(out, rids[:n]...)
			return append(out, rids[n+1:]...), true
		}
	}
	return rids, false
}

// Add indexes doc under the keys its fields produce.
func (i *Index) Add(doc record.Document) error {
	for _, k := range Keys(i.def, doc) {
		if err := i.Put(k, doc.Identity()); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the keys def extracts from doc. Collections and maps of
// multi-value definitions yield one key per element; values which cannot
// form a key are skipped.
func Keys(def index.Definition, doc record.Document) []any {
	fields := def.Fields()
	if len(fields) != 1 {
		params := make([]any, len(fields))
		for n, f := range fields {
			params[n] = record.Field(doc, f)
		}
		if k := def.CreateValue(params...); k != nil {
			return []any{k}
		}
		return nil
	}
	v := record.Field(doc, fields[0])
	if v == nil {
		return []any{nil}
	}
	var elements []any
	switch {
	case def.MapIndexBy() == index.MapIndexByKey:
		elements = value.Keys(v)
	case def.MapIndexBy() == index.MapIndexByValue:
		elements = value.Values(v)
	case def.IsMultiValue() && value.IsMultiValue(v):
		elements = value.Values(v)
	default:
		if k := def.CreateValue(v); k != nil {
			return []any{k}
		}
		return nil
	}
	var keys []any
	for _, e := range elements {
		if k := def.CreateSingleValue(e); k != nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// RIDs implements index.Index.
func (i *Index) RIDs(key any) (iter.Iterator[rid.RID], error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if key == nil {
		return iter.FromSlice(append([]rid.RID(nil), i.nulls...)), nil
	}
	v, found := i.tree.Get(key)
	if !found {
		return iter.Empty[rid.RID](), nil
	}
	return iter.FromSlice(append([]rid.RID(nil), v.([]rid.RID)...)), nil
}

// StreamEntriesBetween implements index.Index.
func (i *Index) StreamEntriesBetween(lower any, lowerInclusive bool, upper any, upperInclusive bool,
	ascending bool,
) (index.Stream, error) {
	if i.hashLike {
		return nil, errors.WithMessagef(ErrRangeUnsupported, "%s", i.name)
	}
	width := i.def.ParamCount()
	return i.scan(index.RangeOpts{
		Lower:         index.EnhanceLower(lower, lowerInclusive, width),
		Upper:         index.EnhanceUpper(upper, upperInclusive, width),
		IncludesLower: lowerInclusive,
		IncludesUpper: upperInclusive,
	}, ascending), nil
}

// StreamEntriesMajor implements index.Index.
func (i *Index) StreamEntriesMajor(key any, inclusive bool, ascending bool) (index.Stream, error) {
	if i.hashLike {
		return nil, errors.WithMessagef(ErrRangeUnsupported, "%s", i.name)
	}
	return i.scan(index.RangeOpts{
		Lower:         index.EnhanceLower(key, inclusive, i.def.ParamCount()),
		IncludesLower: inclusive,
	}, ascending), nil
}

// StreamEntriesMinor implements index.Index.
func (i *Index) StreamEntriesMinor(key any, inclusive bool, ascending bool) (index.Stream, error) {
	if i.hashLike {
		return nil, errors.WithMessagef(ErrRangeUnsupported, "%s", i.name)
	}
	return i.scan(index.RangeOpts{
		Upper:         index.EnhanceUpper(key, inclusive, i.def.ParamCount()),
		IncludesUpper: inclusive,
	}, ascending), nil
}
