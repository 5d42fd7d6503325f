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

// Package timestamp provides the clock used to profile query execution.
package timestamp

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Clock tells the time. It is real in production and mocked in tests.
type Clock interface {
	clock.Clock
}

// MockClock only moves when told to.
type MockClock interface {
	clock.Clock
	// Add moves the current time forward by d.
	Add(d time.Duration)
	// Set moves the current time to t.
	Set(t time.Time)
}

// NewClock returns the wall clock.
func NewClock() Clock {
	return clock.New()
}

// NewMockClock returns a clock starting at the Unix epoch.
func NewMockClock() MockClock {
	return clock.NewMock()
}

type contextClockKey struct{}

var clockKey = contextClockKey{}

// GetClock returns the Clock carried by ctx. Without one, a wall clock is
// returned together with a child context holding it.
func GetClock(ctx context.Context) (Clock, context.Context) {
	if c, ok := ctx.Value(clockKey).(Clock); ok {
		return c, ctx
	}
	realClock := NewClock()
	return realClock, SetClock(ctx, realClock)
}

// SetClock returns a child context carrying c.
func SetClock(ctx context.Context, c Clock) context.Context {
	return context.WithValue(ctx, clockKey, c)
}
