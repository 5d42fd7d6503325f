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
	"strings"
	"time"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// Compare orders left against right. Numbers are promoted first; any other
// right operand is converted to the type of left. The second result is false
// when the values have no common order.
func Compare(left, right any) (int, bool) {
	if left == nil || right == nil {
		return 0, false
	}
	if IsNumber(left) && IsNumber(right) {
		return CompareNumbers(left, right)
	}
	if IsNumber(left) {
		converted, err := ConvertLike(right, left)
		if err != nil {
			return 0, false
		}
		return CompareNumbers(left, converted)
	}
	converted, err := ConvertLike(right, left)
	if err != nil || converted == nil {
		return 0, false
	}
	switch l := left.(type) {
	case string:
		return strings.Compare(l, converted.(string)), true
	case bool:
		r := converted.(bool)
		switch {
		case l == r:
			return 0, true
		case !l:
			return -1, true
		}
		return 1, true
	case time.Time:
		return l.Compare(converted.(time.Time)), true
	case []byte:
		return bytes.Compare(l, converted.([]byte)), true
	case rid.RID:
		return l.Compare(converted.(rid.RID)), true
	case record.Identifiable:
		return l.Identity().Compare(converted.(record.Identifiable).Identity()), true
	}
	return 0, false
}
