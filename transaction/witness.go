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
	"github.com/nikita-bykov/jormungandr/key"
)

// Witness proves the right to spend one input. Witnesses are positionally
// paired with inputs and the kinds must match: presenting a witness of the
// wrong kind is always an error, never coerced.
type Witness interface {
	isWitness()
}

// UtxoWitness authorizes spending a current UTXO: a signature over the
// transaction id under the output address's spending key
type UtxoWitness struct {
	Signature key.Signature
}

func (UtxoWitness) isWitness() {}

// NewUtxoWitness signs the transaction id with the spending key of the
// output being spent
func NewUtxoWitness(txID ID, sk key.SigningKey) UtxoWitness {
	return UtxoWitness{Signature: sk.Sign(txID.Bytes())}
}

// OldUtxoWitness authorizes spending a legacy UTXO. The extended public key
// is carried in the witness because legacy addresses are hashes and expose
// no key material of their own.
type OldUtxoWitness struct {
	XPub      key.ExtendedPublicKey
	Signature key.Signature
}

func (OldUtxoWitness) isWitness() {}

// NewOldUtxoWitness signs the transaction id with the signing key matching
// the provided extended public key
func NewOldUtxoWitness(
	txID ID,
	xpub key.ExtendedPublicKey,
	sk key.SigningKey,
) OldUtxoWitness {
	return OldUtxoWitness{
		XPub:      xpub,
		Signature: sk.Sign(txID.Bytes()),
	}
}

// AccountWitness authorizes an account debit: a signature over the
// transaction id and the account's current spending counter. Binding the
// counter makes the witness single-use.
type AccountWitness struct {
	Signature key.Signature
}

func (AccountWitness) isWitness() {}

// AccountWitnessMessage is the composite message signed by an account
// witness: the transaction id followed by the big-endian spending counter
// as recorded before this transaction's debit
func AccountWitnessMessage(txID ID, counter account.SpendingCounter) []byte {
	msg := make([]byte, 0, IDSize+4)
	msg = append(msg, txID.Bytes()...)
	msg = append(msg, counter.Bytes()...)
	return msg
}

// NewAccountWitness signs the composite (transaction id, spending counter)
// message with the account key
func NewAccountWitness(
	txID ID,
	counter account.SpendingCounter,
	sk key.SigningKey,
) AccountWitness {
	return AccountWitness{
		Signature: sk.Sign(AccountWitnessMessage(txID, counter)),
	}
}
