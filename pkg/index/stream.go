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

package index

import (
	"go.uber.org/multierr"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/iter"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// Stream is a lazy, pull-based sequence of index entries. It can be
// consumed once; after Close, Next reports no more entries.
type Stream interface {
	iter.Iterator[Entry]
	Close() error
}

var _ Stream = (*stream)(nil)

type stream struct {
	it     iter.Iterator[Entry]
	close  func() error
	closed bool
}

// NewStream wraps it. closeFn, when not nil, runs once on Close.
func NewStream(it iter.Iterator[Entry], closeFn func() error) Stream {
	return &stream{it: it, close: closeFn}
}

// FromEntries returns a stream over entries.
func FromEntries(entries ...Entry) Stream {
	return NewStream(iter.FromSlice(entries), nil)
}

// FromRIDs pairs every record of rids with key.
func FromRIDs(key any, rids iter.Iterator[rid.RID]) Stream {
	return NewStream(iter.Map(rids, func(r rid.RID) Entry {
		return Entry{Key: key, RID: r}
	}), nil)
}

// EmptyStream never yields anything.
func EmptyStream() Stream {
	return NewStream(iter.Empty[Entry](), nil)
}

func (s *stream) Next() (Entry, bool) {
	if s.closed {
		return Entry{}, false
	}
	return s.it.Next()
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.close != nil {
		return s.close()
	}
	return nil
}

// Concat returns the entries of each stream in turn. Closing it closes every
// inner stream and combines their errors.
func Concat(streams ...Stream) Stream {
	if len(streams) == 1 {
		return streams[0]
	}
	inner := make([]iter.Iterator[Entry], len(streams))
	for i, s := range streams {
		inner[i] = s
	}
	return NewStream(iter.Concat(inner...), func() error {
		var err error
		for _, s := range streams {
			err = multierr.Append(err, s.Close())
		}
		return err
	})
}

// Drain consumes and closes s.
func Drain(s Stream) ([]Entry, error) {
	var entries []Entry
	for e, ok := s.Next(); ok; e, ok = s.Next() {
		entries = append(entries, e)
	}
	return entries, s.Close()
}

// Distinct drops entries whose record was already returned by s.
func Distinct(s Stream) Stream {
	seen := rid.NewSet()
	return NewStream(iter.Filter[Entry](s, func(e Entry) bool {
		return seen.Add(e.RID)
	}), s.Close)
}
