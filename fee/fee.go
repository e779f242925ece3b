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

// Package fee defines the pluggable fee algorithm consulted during
// transaction balance checking. Fee business logic beyond the algorithm
// contract is out of scope for the ledger core.
package fee

import (
	"github.com/nikita-bykov/jormungandr/value"
)

// Algorithm computes the fee a transaction must burn to balance
type Algorithm interface {
	// Calculate returns the fee for a transaction with the given shape.
	// Arithmetic is checked: an unrepresentable fee is an error, not a wrap.
	Calculate(inputs, outputs int, hasCertificate bool) (value.Value, error)
}

// LinearFee is the standard fee schedule:
// constant + coefficient*(inputs+outputs) + certificate
type LinearFee struct {
	Constant    uint64
	Coefficient uint64
	Certificate uint64
}

// NewLinearFee builds a linear fee schedule
func NewLinearFee(constant, coefficient, cert uint64) LinearFee {
	return LinearFee{
		Constant:    constant,
		Coefficient: coefficient,
		Certificate: cert,
	}
}

func (f LinearFee) Calculate(
	inputs, outputs int,
	hasCertificate bool,
) (value.Value, error) {
	variable, err := value.Value(f.Coefficient).Mul(uint64(inputs + outputs))
	if err != nil {
		return value.Zero, err
	}
	total, err := value.Value(f.Constant).Add(variable)
	if err != nil {
		return value.Zero, err
	}
	if hasCertificate {
		total, err = total.Add(value.Value(f.Certificate))
		if err != nil {
			return value.Zero, err
		}
	}
	return total, nil
}
