// Copyright 2025 Nikita Bykov
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value implements the checked monetary arithmetic used throughout
// the ledger. All operations return an error instead of wrapping around.
package value

import (
	"math"
	"strconv"
)

// Value is a monetary amount in the smallest currency unit
type Value uint64

const Zero = Value(0)

func (v Value) IsZero() bool {
	return v == Zero
}

func (v Value) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// Add returns v + other, or OverflowError if the sum does not fit
func (v Value) Add(other Value) (Value, error) {
	if v > math.MaxUint64-other {
		return Zero, OverflowError{Left: v, Right: other}
	}
	return v + other, nil
}

// Sub returns v - other, or NegativeAmountError if other exceeds v
func (v Value) Sub(other Value) (Value, error) {
	if other > v {
		return Zero, NegativeAmountError{From: v, Amount: other}
	}
	return v - other, nil
}

// Mul returns v * factor with overflow checking
func (v Value) Mul(factor uint64) (Value, error) {
	if factor == 0 || v == 0 {
		return Zero, nil
	}
	if uint64(v) > math.MaxUint64/factor {
		return Zero, OverflowError{Left: v, Right: Value(factor)}
	}
	return v * Value(factor), nil
}

// Sum folds the provided values with checked addition
func Sum(values []Value) (Value, error) {
	total := Zero
	for _, v := range values {
		var err error
		total, err = total.Add(v)
		if err != nil {
			return Zero, err
		}
	}
	return total, nil
}

// OverflowError indicates an aggregate amount exceeding the representable range
type OverflowError struct {
	Left  Value
	Right Value
}

func (e OverflowError) Error() string {
	return "value operation overflowed"
}

// NegativeAmountError indicates a subtraction below zero
type NegativeAmountError struct {
	From   Value
	Amount Value
}

func (e NegativeAmountError) Error() string {
	return "value operation produced a negative amount"
}
