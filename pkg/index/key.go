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
	"fmt"
	"strings"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
)

// Sentinel is a composite key component ordered before or after every value.
type Sentinel int8

// Sentinels completing partial composite keys.
const (
	AlwaysLess    Sentinel = -1
	AlwaysGreater Sentinel = 1
)

func (s Sentinel) String() string {
	if s == AlwaysLess {
		return "-inf"
	}
	return "+inf"
}

// CompositeKey is the key of an index over several fields.
type CompositeKey []any

func (k CompositeKey) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// CompareKeys orders index keys. Nil sorts first, sentinels sort at the
// extremes, and composite keys compare component by component with a proper
// prefix sorting first.
func CompareKeys(a, b any) int {
	if sa, ok := a.(Sentinel); ok {
		if sb, ok := b.(Sentinel); ok && sa == sb {
			return 0
		}
		return int(sa)
	}
	if sb, ok := b.(Sentinel); ok {
		return -int(sb)
	}
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	ka, aComposite := a.(CompositeKey)
	kb, bComposite := b.(CompositeKey)
	if aComposite && bComposite {
		for i := 0; i < len(ka) && i < len(kb); i++ {
			if c := CompareKeys(ka[i], kb[i]); c != 0 {
				return c
			}
		}
		return len(ka) - len(kb)
	}
	if aComposite {
		return CompareKeys(ka, CompositeKey{b})
	}
	if bComposite {
		return CompareKeys(CompositeKey{a}, kb)
	}
	if c, ok := value.Compare(a, b); ok {
		return c
	}
	// Incomparable values still need a stable place in the tree.
	ta, tb := fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)
	if ta != tb {
		return strings.Compare(ta, tb)
	}
	return strings.Compare(value.ToString(a), value.ToString(b))
}

// EnhanceLower completes a partial composite lower bound to width
// components. An inclusive bound starts before every key sharing the prefix
// and an exclusive one after all of them.
func EnhanceLower(key any, inclusive bool, width int) any {
	if inclusive {
		return enhance(key, AlwaysLess, width)
	}
	return enhance(key, AlwaysGreater, width)
}

// EnhanceUpper completes a partial composite upper bound to width
// components. An inclusive bound ends after every key sharing the prefix and
// an exclusive one before all of them.
func EnhanceUpper(key any, inclusive bool, width int) any {
	if inclusive {
		return enhance(key, AlwaysGreater, width)
	}
	return enhance(key, AlwaysLess, width)
}

func enhance(key any, fill Sentinel, width int) any {
	k, ok := key.(CompositeKey)
	if !ok || len(k) >= width {
		return key
	}
	out := make(CompositeKey, width)
	copy(out, k)
	for i := len(k); i < width; i++ {
		out[i] = fill
	}
	return out
}

// RangeOpts contains options to perform a continuous scan. A nil bound is
// open.
type RangeOpts struct {
	Upper         any
	Lower         any
	IncludesUpper bool
	IncludesLower bool
}

// Between reports whether key is in the range: 0 when inside, -1 when below
// the lower bound and 1 when above the upper bound.
func (r RangeOpts) Between(key any) int {
	if r.Upper != nil {
		c := CompareKeys(r.Upper, key)
		if c < 0 || (c == 0 && !r.IncludesUpper) {
			return 1
		}
	}
	if r.Lower != nil {
		c := CompareKeys(r.Lower, key)
		if c > 0 || (c == 0 && !r.IncludesLower) {
			return -1
		}
	}
	return 0
}
