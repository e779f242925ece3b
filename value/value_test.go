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

package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	testCases := []struct {
		name      string
		left      Value
		right     Value
		want      Value
		wantError bool
	}{
		{name: "Simple", left: 1, right: 2, want: 3},
		{name: "Zero", left: 0, right: 0, want: 0},
		{name: "MaxBoundary", left: math.MaxUint64 - 1, right: 1, want: math.MaxUint64},
		{name: "Overflow", left: math.MaxUint64, right: 1, wantError: true},
		{name: "OverflowBothLarge", left: math.MaxUint64 / 2 * 2, right: math.MaxUint64 / 2, wantError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.left.Add(tc.right)
			if tc.wantError {
				assert.ErrorAs(t, err, &OverflowError{})
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, result)
		})
	}
}

func TestSub(t *testing.T) {
	testCases := []struct {
		name      string
		left      Value
		right     Value
		want      Value
		wantError bool
	}{
		{name: "Simple", left: 3, right: 2, want: 1},
		{name: "ToZero", left: 5, right: 5, want: 0},
		{name: "Negative", left: 1, right: 2, wantError: true},
		{name: "NegativeFromZero", left: 0, right: 1, wantError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.left.Sub(tc.right)
			if tc.wantError {
				assert.ErrorAs(t, err, &NegativeAmountError{})
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, result)
		})
	}
}

func TestMul(t *testing.T) {
	result, err := Value(6).Mul(7)
	assert.NoError(t, err)
	assert.Equal(t, Value(42), result)

	result, err = Value(0).Mul(123)
	assert.NoError(t, err)
	assert.Equal(t, Zero, result)

	_, err = Value(math.MaxUint64).Mul(2)
	assert.ErrorAs(t, err, &OverflowError{})
}

func TestSum(t *testing.T) {
	result, err := Sum([]Value{1, 2, 3, 4})
	assert.NoError(t, err)
	assert.Equal(t, Value(10), result)

	result, err = Sum(nil)
	assert.NoError(t, err)
	assert.Equal(t, Zero, result)

	_, err = Sum([]Value{math.MaxUint64, 1})
	assert.ErrorAs(t, err, &OverflowError{})
}
