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
)

// ArithmeticOp identifies a binary math operation.
type ArithmeticOp uint8

// Arithmetic operations.
const (
	OpAdd ArithmeticOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

// Arithmetic applies op to the promoted operands. It returns nil when the
// operands are not numbers or the operation is undefined, such as a
// division by zero. Adding a string concatenates.
func Arithmetic(op ArithmeticOp, left, right any) any {
	if left == nil || right == nil {
		return nil
	}
	if op == OpAdd {
		_, ls := left.(string)
		_, rs := right.(string)
		if ls || rs {
			return ToString(left) + ToString(right)
		}
	}
	l, r, ok := Promote(left, right)
	if !ok {
		return nil
	}
	switch a := l.(type) {
	case int8:
		return narrow(intOp(op, int64(a), int64(r.(int8))), kindByte)
	case int16:
		return narrow(intOp(op, int64(a), int64(r.(int16))), kindShort)
	case int32:
		return narrow(intOp(op, int64(a), int64(r.(int32))), kindInteger)
	case int64:
		return intOp(op, a, r.(int64))
	case float32:
		if f := floatOp(op, float64(a), float64(r.(float32))); f != nil {
			return float32(f.(float64))
		}
		return nil
	case float64:
		return floatOp(op, a, r.(float64))
	case *apd.Decimal:
		return decimalOp(op, a, r.(*apd.Decimal))
	}
	return nil
}

// narrow keeps the result in the operand kind, widening on overflow.
func narrow(v any, k numKind) any {
	if v == nil {
		return nil
	}
	if n, err := castNumber(v, k); err == nil {
		return n
	}
	return v
}

func intOp(op ArithmeticOp, a, b int64) any {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return nil
		}
		return a / b
	case OpMod:
		if b == 0 {
			return nil
		}
		return a % b
	}
	return nil
}

func floatOp(op ArithmeticOp, a, b float64) any {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return nil
		}
		return a / b
	case OpMod:
		if b == 0 {
			return nil
		}
		return math.Mod(a, b)
	}
	return nil
}

func decimalOp(op ArithmeticOp, a, b *apd.Decimal) any {
	if (op == OpDiv || op == OpMod) && b.IsZero() {
		return nil
	}
	d := new(apd.Decimal)
	var err error
	switch op {
	case OpAdd:
		_, err = decimalContext.Add(d, a, b)
	case OpSub:
		_, err = decimalContext.Sub(d, a, b)
	case OpMul:
		_, err = decimalContext.Mul(d, a, b)
	case OpDiv:
		_, err = decimalContext.Quo(d, a, b)
	case OpMod:
		_, err = decimalContext.Rem(d, a, b)
	}
	if err != nil {
		return nil
	}
	return d
}

// Add returns left + right.
func Add(left, right any) any { return Arithmetic(OpAdd, left, right) }

// Sub returns left - right.
func Sub(left, right any) any { return Arithmetic(OpSub, left, right) }

// Mul returns left * right.
func Mul(left, right any) any { return Arithmetic(OpMul, left, right) }

// Div returns left / right.
func Div(left, right any) any { return Arithmetic(OpDiv, left, right) }

// Mod returns left % right.
func Mod(left, right any) any { return Arithmetic(OpMod, left, right) }
