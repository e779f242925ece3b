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

package transaction

import (
	"github.com/nikita-bykov/jormungandr/account"
	"github.com/nikita-bykov/jormungandr/codec"
	"github.com/nikita-bykov/jormungandr/value"
)

// input encoding tags for canonical encoding
const (
	tagUtxoInput    = 0
	tagAccountInput = 1
)

// UtxoPointer references an unspent output. The value is asserted by the
// spender and must match the recorded output exactly.
type UtxoPointer struct {
	TransactionID ID
	OutputIndex   uint8
	Value         value.Value
}

// Input is a closed union: UtxoInput or AccountInput. The claimed value of
// each input enters the transaction balance check.
type Input interface {
	isInput()
	// Value returns the amount the spender claims this input provides
	Value() value.Value
}

// UtxoInput spends an unspent output
type UtxoInput struct {
	Pointer UtxoPointer
}

// NewUtxoInput builds an input spending the referenced output
func NewUtxoInput(ptr UtxoPointer) UtxoInput {
	return UtxoInput{Pointer: ptr}
}

func (UtxoInput) isInput() {}

func (i UtxoInput) Value() value.Value {
	return i.Pointer.Value
}

func (i UtxoInput) MarshalCBOR() ([]byte, error) {
	return codec.Encode([]any{
		tagUtxoInput,
		i.Pointer.TransactionID.Bytes(),
		i.Pointer.OutputIndex,
		uint64(i.Pointer.Value),
	})
}

// AccountInput debits an account
type AccountInput struct {
	Account account.Identifier
	Amount  value.Value
}

// NewAccountInput builds an input debiting the given account
func NewAccountInput(id account.Identifier, amount value.Value) AccountInput {
	return AccountInput{Account: id, Amount: amount}
}

func (AccountInput) isInput() {}

func (i AccountInput) Value() value.Value {
	return i.Amount
}

func (i AccountInput) MarshalCBOR() ([]byte, error) {
	return codec.Encode([]any{
		tagAccountInput,
		i.Account.PublicKey().Bytes(),
		uint64(i.Amount),
	})
}
