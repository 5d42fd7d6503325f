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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    RID
		wantErr bool
	}{
		{in: "#12:3", want: New(12, 3)},
		{in: "12:3", want: New(12, 3)},
		{in: " #0:0 ", want: New(0, 0)},
		{in: "#-1:-1", want: Invalid},
		{in: "#12", wantErr: true},
		{in: "#a:1", wantErr: true},
		{in: "#1:b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestOrdering(t *testing.T) {
	assert.Equal(t, -1, New(1, 5).Compare(New(2, 0)))
	assert.Equal(t, 1, New(2, 1).Compare(New(2, 0)))
	assert.Equal(t, 0, New(2, 1).Compare(New(2, 1)))
	assert.Equal(t, New(3, 8), New(3, 7).Next())
	assert.Equal(t, New(3, 6), New(3, 7).Prev())
	assert.Equal(t, New(3, 0), New(3, 0).Prev())
	assert.Equal(t, New(1, 1), Max(New(1, 1), New(0, 9)))
	assert.Equal(t, New(0, 9), Min(New(1, 1), New(0, 9)))
}

func TestPersistence(t *testing.T) {
	assert.True(t, New(0, 0).IsPersistent())
	assert.False(t, New(0, -2).IsPersistent())
	assert.True(t, New(0, -2).IsValid())
	assert.False(t, Invalid.IsValid())
}

func TestSet(t *testing.T) {
	s := NewSet()
	assert.True(t, s.IsEmpty())
	assert.True(t, s.Add(New(5, 1)))
	assert.False(t, s.Add(New(5, 1)))
	assert.True(t, s.Add(New(1, 7)))
	assert.True(t, s.Add(New(-1, -3)))
	assert.False(t, s.Add(New(-1, -3)))
	assert.True(t, s.Contains(New(1, 7)))
	assert.True(t, s.Contains(New(-1, -3)))
	assert.False(t, s.Contains(New(1, 8)))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []RID{New(-1, -3), New(1, 7), New(5, 1)}, s.ToSlice())
}
