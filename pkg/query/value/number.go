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
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// numKind orders the numeric lattice from narrowest to widest.
type numKind int8

const (
	notNumber numKind = iota
	kindByte
	kindShort
	kindInteger
	kindLong
	kindFloat
	kindDouble
	kindDecimal
)

// decimalContext carries the precision used by decimal arithmetic.
var decimalContext = apd.BaseContext.WithPrecision(34)

var errOverflow = errors.New("numeric overflow")

func (k numKind) propertyType() Type {
	switch k {
	case kindByte:
		return TypeByte
	case kindShort:
		return TypeShort
	case kindInteger:
		return TypeInteger
	case kindLong:
		return TypeLong
	case kindFloat:
		return TypeFloat
	case kindDouble:
		return TypeDouble
	case kindDecimal:
		return TypeDecimal
	}
	return TypeAny
}

func kindOf(v any) numKind {
	switch v.(type) {
	case int8, uint8:
		return kindByte
	case int16:
		return kindShort
	case int32, uint16:
		return kindInteger
	case int, int64, uint32, uint, uint64:
		return kindLong
	case float32:
		return kindFloat
	case float64:
		return kindDouble
	case *apd.Decimal, apd.Decimal:
		return kindDecimal
	}
	return notNumber
}

// IsNumber reports whether v belongs to the numeric lattice.
func IsNumber(v any) bool {
	return kindOf(v) != notNumber
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case uint8:
		return int64(n), true
	case int16:
		return int64(n), true
	case uint16:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case uint64:
		return float64(n), true
	case *apd.Decimal:
		f, err := n.Float64()
		return f, err == nil
	case apd.Decimal:
		f, err := n.Float64()
		return f, err == nil
	}
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

func asDecimal(v any) (*apd.Decimal, bool) {
	switch n := v.(type) {
	case *apd.Decimal:
		return n, n != nil
	case apd.Decimal:
		return &n, true
	case float32:
		d, err := new(apd.Decimal).SetFloat64(float64(n))
		return d, err == nil
	case float64:
		d, err := new(apd.Decimal).SetFloat64(n)
		return d, err == nil
	case uint64:
		d, _, err := apd.NewFromString(formatUint(n))
		return d, err == nil
	}
	if i, ok := asInt64(v); ok {
		return new(apd.Decimal).SetInt64(i), true
	}
	return nil, false
}

// castNumber converts a number to the Go type backing kind k. Narrowing
// conversions fail on overflow or on loss of a fractional part.
func castNumber(v any, k numKind) (any, error) {
	switch k {
	case kindFloat:
		f, ok := asFloat64(v)
		if !ok {
			return nil, errOverflow
		}
		return float32(f), nil
	case kindDouble:
		f, ok := asFloat64(v)
		if !ok {
			return nil, errOverflow
		}
		return f, nil
	case kindDecimal:
		d, ok := asDecimal(v)
		if !ok {
			return nil, errOverflow
		}
		return d, nil
	}
	i, ok := asInt64(v)
	if !ok {
		f, isFloat := asFloat64(v)
		if !isFloat || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return nil, errors.WithMessagef(errOverflow, "%v is not integral", v)
		}
		i = int64(f)
	}
	switch k {
	case kindByte:
		if i < math.MinInt8 || i > math.MaxInt8 {
			return nil, errOverflow
		}
		return int8(i), nil
	case kindShort:
		if i < math.MinInt16 || i > math.MaxInt16 {
			return nil, errOverflow
		}
		return int16(i), nil
	case kindInteger:
		if i < math.MinInt32 || i > math.MaxInt32 {
			return nil, errOverflow
		}
		return int32(i), nil
	case kindLong:
		return i, nil
	}
	return nil, errOverflow
}

// Promote widens a and b to the narrower of the two lattice members that can
// hold both. The second result is false when either side is not a number.
func Promote(a, b any) (any, any, bool) {
	ka, kb := kindOf(a), kindOf(b)
	if ka == notNumber || kb == notNumber {
		return nil, nil, false
	}
	k := max(ka, kb)
	pa, err := castNumber(a, k)
	if err != nil {
		return nil, nil, false
	}
	pb, err := castNumber(b, k)
	if err != nil {
		return nil, nil, false
	}
	return pa, pb, true
}

// CompareNumbers orders two numbers after promotion. The second result is
// false when the values are not comparable, e.g. NaN.
func CompareNumbers(a, b any) (int, bool) {
	ka, kb := kindOf(a), kindOf(b)
	if ka == notNumber || kb == notNumber {
		return 0, false
	}
	switch max(ka, kb) {
	case kindDecimal:
		da, okA := asDecimal(a)
		db, okB := asDecimal(b)
		if !okA || !okB || da.Form == apd.NaN || db.Form == apd.NaN || da.Form == apd.NaNSignaling || db.Form == apd.NaNSignaling {
			return 0, false
		}
		return da.Cmp(db), true
	case kindFloat, kindDouble:
		fa, _ := asFloat64(a)
		fb, _ := asFloat64(b)
		if max(ka, kb) == kindFloat {
			fa, fb = float64(float32(fa)), float64(float32(fb))
		}
		if math.IsNaN(fa) || math.IsNaN(fb) {
			return 0, false
		}
		return compareOrdered(fa, fb), true
	}
	ia, okA := asInt64(a)
	ib, okB := asInt64(b)
	if !okA || !okB {
		// uint64 beyond int64 range
		da, _ := asDecimal(a)
		db, _ := asDecimal(b)
		return da.Cmp(db), true
	}
	return compareOrdered(ia, ib), true
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
