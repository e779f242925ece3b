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

// Package transaction defines transactions, their inputs and outputs, the
// witnesses that authorize them, and the canonical encoding their identity
// is derived from.
package transaction

import (
	"github.com/nikita-bykov/jormungandr/codec"
)

// MaxElements is the maximum number of inputs, outputs and witnesses a
// transaction may carry. The bound is enforced during application so that
// adversarial messages cannot force unbounded verification work.
const MaxElements = 254

// Payload is the extra payload of a transaction: NoExtra for plain value
// transfers, or a delegation certificate
type Payload interface {
	// PayloadBytes returns the canonical bytes bound into the transaction id,
	// or nil when the payload is empty
	PayloadBytes() ([]byte, error)
}

// NoExtra is the empty payload of a plain value-transfer transaction
type NoExtra struct{}

func (NoExtra) PayloadBytes() ([]byte, error) {
	return nil, nil
}

// Transaction moves value from inputs to outputs, optionally carrying an
// extra payload. Witnesses live outside the transaction body so that the id
// covers only what is being authorized.
type Transaction struct {
	Inputs  []Input
	Outputs []Output
	Extra   Payload
}

// Bytes returns the canonical witness-free encoding of the transaction body
func (t Transaction) Bytes() ([]byte, error) {
	extra := t.Extra
	if extra == nil {
		extra = NoExtra{}
	}
	extraBytes, err := extra.PayloadBytes()
	if err != nil {
		return nil, err
	}
	// encode empty slices rather than nils so the body shape is stable
	inputs := t.Inputs
	if inputs == nil {
		inputs = []Input{}
	}
	outputs := t.Outputs
	if outputs == nil {
		outputs = []Output{}
	}
	return codec.Encode([]any{inputs, outputs, extraBytes})
}

// ID computes the transaction identity: the hash of the canonical body
func (t Transaction) ID() (ID, error) {
	body, err := t.Bytes()
	if err != nil {
		return ID{}, err
	}
	return HashBytes(body), nil
}

// Authenticated pairs a transaction with the witnesses authorizing each of
// its inputs, in input order
type Authenticated struct {
	Transaction Transaction
	Witnesses   []Witness
}
