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

// Package executor defines the per-query execution context operators run in.
package executor

import (
	"context"
	"regexp"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/logger"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/schema"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/timestamp"
)

// DefaultPatternCacheSize bounds the compiled patterns kept by one context.
const DefaultPatternCacheSize = 64

const patternCacheVariable = "$patternCache"

// recordLogSampling keeps one in this many per-record debug events.
const recordLogSampling = 100

// ErrRecordNotFound is returned by Database.Load for unknown identities.
var ErrRecordNotFound = errors.New("record not found")

// Database gives operators access to the records and schema of the session.
type Database interface {
	Schema() schema.Snapshot
	Load(id rid.RID) (record.Document, error)
}

// Options tunes a Context.
type Options struct {
	Metrics          *Metrics
	Logger           *logger.Logger
	Clock            timestamp.Clock
	PatternCacheSize int
}

// Context belongs to a single query execution. It is not safe for concurrent use.
type Context struct {
	db               Database
	variables        map[string]any
	metrics          *Metrics
	l                *logger.Logger
	sampled          *logger.Logger
	clock            timestamp.Clock
	patternCacheSize int
}

// New returns a Context bound to db. The logger and clock are taken from opts
// first and then from ctx.
func New(ctx context.Context, db Database, opts Options) *Context {
	c := &Context{
		db:               db,
		variables:        make(map[string]any),
		metrics:          opts.Metrics,
		l:                opts.Logger,
		clock:            opts.Clock,
		patternCacheSize: opts.PatternCacheSize,
	}
	if c.l == nil {
		c.l = logger.Fetch(ctx, "query")
	}
	c.sampled = c.l.Sampled(recordLogSampling)
	if c.clock == nil {
		c.clock, _ = timestamp.GetClock(ctx)
	}
	if c.patternCacheSize <= 0 {
		c.patternCacheSize = DefaultPatternCacheSize
	}
	return c
}

// Background returns a Context without a database, mostly useful for tests
// and for evaluating literal predicates.
func Background() *Context {
	return New(context.Background(), nil, Options{})
}

// Database returns the session database, which may be nil.
func (c *Context) Database() Database {
	return c.db
}

// Schema returns the schema snapshot of the database, or nil without one.
func (c *Context) Schema() schema.Snapshot {
	if c.db == nil {
		return nil
	}
	return c.db.Schema()
}

// Load fetches the record addressed by id.
func (c *Context) Load(id rid.RID) (record.Document, error) {
	if c.db == nil {
		return nil, errors.WithMessagef(ErrRecordNotFound, "%s: no database", id)
	}
	return c.db.Load(id)
}

// Variable returns a query variable.
func (c *Context) Variable(name string) (any, bool) {
	v, ok := c.variables[name]
	return v, ok
}

// SetVariable sets a query variable.
func (c *Context) SetVariable(name string, v any) {
	c.variables[name] = v
}

// Metrics returns the metrics sink. A nil *Metrics discards everything.
func (c *Context) Metrics() *Metrics {
	return c.metrics
}

// Logger returns the query logger.
func (c *Context) Logger() *logger.Logger {
	return c.l
}

// RecordLogger returns the query logger sampled for events that repeat
// once per evaluated record.
func (c *Context) RecordLogger() *logger.Logger {
	return c.sampled
}

// Clock returns the clock used for profiling.
func (c *Context) Clock() timestamp.Clock {
	return c.clock
}

type compiledPattern struct {
	re   *regexp.Regexp
	text string
}

// Pattern compiles text as a regular expression anchored at both ends. Compiled
// patterns are cached for the lifetime of the context.
func (c *Context) Pattern(text string) (*regexp.Regexp, error) {
	cache, err := c.patternCache()
	if err != nil {
		return nil, err
	}
	k := xxhash.Sum64String(text)
	if v, ok := cache.Get(k); ok {
		if p := v.(compiledPattern); p.text == text {
			return p.re, nil
		}
	}
	re, err := regexp.Compile("^(?:" + text + ")$")
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", text)
	}
	cache.Add(k, compiledPattern{re: re, text: text})
	c.metrics.PatternsCached(cache.Len())
	return re, nil
}

func (c *Context) patternCache() (*lru.Cache, error) {
	if v, ok := c.variables[patternCacheVariable]; ok {
		return v.(*lru.Cache), nil
	}
	cache, err := lru.New(c.patternCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "pattern cache")
	}
	c.variables[patternCacheVariable] = cache
	return cache, nil
}

// Profile starts measuring an index query of operator keyword. Calling the
// returned function records the elapsed time.
func (c *Context) Profile(keyword string) func() {
	if c.metrics == nil {
		return func() {}
	}
	start := c.clock.Now()
	return func() {
		c.metrics.ObserveIndexQuery(keyword, c.clock.Since(start))
	}
}
