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

package rid

import (
	"github.com/RoaringBitmap/roaring/roaring64"
	"golang.org/x/exp/slices"
)

const (
	positionBits = 48
	positionMask = uint64(1)<<positionBits - 1
	maxCluster   = int32(1)<<(64-positionBits-1) - 1
)

// Set is a collection of record identities.
// Persistent identities live in a roaring bitmap, others in a side map.
type Set struct {
	bitmap    *roaring64.Bitmap
	transient map[RID]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{
		bitmap: roaring64.New(),
	}
}

func pack(r RID) (uint64, bool) {
	if !r.IsPersistent() || r.Cluster > maxCluster || uint64(r.Position) > positionMask {
		return 0, false
	}
	return uint64(r.Cluster)<<positionBits | uint64(r.Position), true
}

func unpack(v uint64) RID {
	return RID{Cluster: int32(v >> positionBits), Position: int64(v & positionMask)}
}

// Add inserts r and reports whether it was absent before.
func (s *Set) Add(r RID) bool {
	if v, ok := pack(r); ok {
		return s.bitmap.CheckedAdd(v)
	}
	if s.transient == nil {
		s.transient = make(map[RID]struct{})
	}
	if _, ok := s.transient[r]; ok {
		return false
	}
	s.transient[r] = struct{}{}
	return true
}

// Contains reports whether r is in the set.
func (s *Set) Contains(r RID) bool {
	if v, ok := pack(r); ok {
		return s.bitmap.Contains(v)
	}
	_, ok := s.transient[r]
	return ok
}

// Len returns the number of identities in the set.
func (s *Set) Len() int {
	return int(s.bitmap.GetCardinality()) + len(s.transient)
}

// IsEmpty reports whether the set holds no identity.
func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// ToSlice returns the identities in ascending order.
func (s *Set) ToSlice() []RID {
	result := make([]RID, 0, s.Len())
	it := s.bitmap.Iterator()
	for it.HasNext() {
		result = append(result, unpack(it.Next()))
	}
	for r := range s.transient {
		result = append(result, r)
	}
	slices.SortFunc(result, func(a, b RID) int {
		return a.Compare(b)
	})
	return result
}
