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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// ErrConversion is returned when a value cannot be represented as the
// requested type.
var ErrConversion = errors.New("value is not convertible")

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Convert converts v to the representation of type t. Types without a scalar
// representation return v unchanged.
func Convert(v any, t Type) (any, error) {
	if v == nil {
		return nil, nil
	}
	like := t.representative()
	if like == nil {
		return v, nil
	}
	return ConvertLike(v, like)
}

// ConvertLike converts v to the Go type of like.
func ConvertLike(v, like any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if k := kindOf(like); k != notNumber {
		return toNumber(v, k)
	}
	switch like.(type) {
	case string:
		return ToString(v), nil
	case bool:
		return toBool(v)
	case time.Time:
		return toTime(v)
	case rid.RID:
		return toRID(v)
	case []byte:
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		}
	case record.Identifiable:
		if id, ok := v.(record.Identifiable); ok {
			return id, nil
		}
		return toRID(v)
	default:
		if fmt.Sprintf("%T", v) == fmt.Sprintf("%T", like) {
			return v, nil
		}
	}
	return nil, errors.WithMessagef(ErrConversion, "%T to %T", v, like)
}

func toNumber(v any, k numKind) (any, error) {
	if kindOf(v) != notNumber {
		return castNumber(v, k)
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if k == kindDecimal {
			d, _, err := apd.NewFromString(s)
			if err != nil {
				return nil, errors.Wrapf(ErrConversion, "%q: %v", s, err)
			}
			return d, nil
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return castNumber(i, k)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.WithMessagef(ErrConversion, "%q is not a number", s)
		}
		return castNumber(f, k)
	case bool:
		if t {
			return castNumber(1, k)
		}
		return castNumber(0, k)
	case time.Time:
		return castNumber(t.UnixMilli(), k)
	}
	return nil, errors.WithMessagef(ErrConversion, "%T to number", v)
}

func toBool(v any) (any, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return nil, errors.WithMessagef(ErrConversion, "%q is not a boolean", t)
		}
		return b, nil
	}
	if i, ok := asInt64(v); ok {
		return i != 0, nil
	}
	return nil, errors.WithMessagef(ErrConversion, "%T to boolean", v)
}

func toTime(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, nil
			}
		}
		return nil, errors.WithMessagef(ErrConversion, "%q is not a date", t)
	}
	if i, ok := asInt64(v); ok {
		return time.UnixMilli(i).UTC(), nil
	}
	return nil, errors.WithMessagef(ErrConversion, "%T to date", v)
}

func toRID(v any) (any, error) {
	switch t := v.(type) {
	case rid.RID:
		return t, nil
	case record.Identifiable:
		return t.Identity(), nil
	case string:
		id, err := rid.Parse(t)
		if err != nil {
			return nil, errors.Wrap(ErrConversion, err.Error())
		}
		return id, nil
	}
	return nil, errors.WithMessagef(ErrConversion, "%T to link", v)
}

// ToString renders v the way text operators see it.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case uint64:
		return formatUint(t)
	}
	if i, ok := asInt64(v); ok {
		return strconv.FormatInt(i, 10)
	}
	return fmt.Sprint(v)
}

func formatUint(u uint64) string {
	return strconv.FormatUint(u, 10)
}
