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

package memtree

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// scan copies the entries inside opts under the read lock and streams the
// copy, so an unfinished stream never holds up Put or Remove.
func (i *Index) scan(opts index.RangeOpts, ascending bool) index.Stream {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var it redblacktree.Iterator
	positioned := false
	switch {
	case ascending && opts.Lower != nil:
		node, _ := i.tree.Ceiling(opts.Lower)
		if node == nil {
			return index.EmptyStream()
		}
		it, positioned = i.tree.IteratorAt(node), true
	case !ascending && opts.Upper != nil:
		node, _ := i.tree.Floor(opts.Upper)
		if node == nil {
			return index.EmptyStream()
		}
		it, positioned = i.tree.IteratorAt(node), true
	default:
		it = i.tree.Iterator()
		if !ascending {
			it.End()
		}
	}

	var entries []index.Entry
	for {
		if positioned {
			positioned = false
		} else {
			var ok bool
			if ascending {
				ok = it.Next()
			} else {
				ok = it.Prev()
			}
			if !ok {
				break
			}
		}
		k := it.Key()
		r := opts.Between(k)
		if (ascending && r > 0) || (!ascending && r < 0) {
			break
		}
		if r != 0 {
			continue
		}
		for _, id := range it.Value().([]rid.RID) {
			entries = append(entries, index.Entry{Key: k, RID: id})
		}
	}
	return index.FromEntries(entries...)
}
