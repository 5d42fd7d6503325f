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

package operator

import (
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
)

var (
	// Plus adds numbers or concatenates strings.
	Plus Operator = &arithmeticOp{base: newBase(KindPlus, "+", 9), op: value.OpAdd}
	// Minus is the - operator.
	Minus Operator = &arithmeticOp{base: newBase(KindMinus, "-", 9), op: value.OpSub}
	// Multiply is the * operator.
	Multiply Operator = &arithmeticOp{base: newBase(KindMultiply, "*", 10), op: value.OpMul}
	// Divide is the / operator.
	Divide Operator = &arithmeticOp{base: newBase(KindDivide, "/", 10), op: value.OpDiv}
	// Mod is the % operator.
	Mod Operator = &arithmeticOp{base: newBase(KindMod, "%", 10), op: value.OpMod}
)

// arithmeticOp evaluates to a value instead of a boolean. The result is nil
// when the operands cannot be combined.
type arithmeticOp struct {
	base
	op value.ArithmeticOp
}

func (o *arithmeticOp) EvaluateRecord(_ *executor.Context, _ record.Identifiable, _ any, _ Condition, left, right any) (any, error) {
	return value.Arithmetic(o.op, left, right), nil
}
