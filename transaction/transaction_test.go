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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-bykov/jormungandr/account"
	"github.com/nikita-bykov/jormungandr/address"
	"github.com/nikita-bykov/jormungandr/key"
	"github.com/nikita-bykov/jormungandr/value"
)

func testTransaction(t *testing.T) Transaction {
	t.Helper()
	sk, err := key.Generate(nil)
	require.NoError(t, err)
	return Transaction{
		Inputs: []Input{
			NewUtxoInput(UtxoPointer{
				TransactionID: HashBytes([]byte{1}),
				OutputIndex:   0,
				Value:         100,
			}),
		},
		Outputs: []Output{
			{
				Address: address.NewSingle(
					address.DiscriminationTest,
					sk.PublicKey(),
				),
				Value: 100,
			},
		},
	}
}

func TestTransactionIDDeterministic(t *testing.T) {
	tx := testTransaction(t)
	id1, err := tx.ID()
	require.NoError(t, err)
	id2, err := tx.ID()
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestTransactionIDCoversBody(t *testing.T) {
	tx := testTransaction(t)
	id, err := tx.ID()
	require.NoError(t, err)

	modified := tx
	modified.Outputs = []Output{
		{Address: tx.Outputs[0].Address, Value: 99},
	}
	modifiedID, err := modified.ID()
	require.NoError(t, err)
	assert.NotEqual(t, id, modifiedID)
}

func TestTransactionIDExcludesWitnesses(t *testing.T) {
	tx := testTransaction(t)
	id, err := tx.ID()
	require.NoError(t, err)

	sk, err := key.Generate(nil)
	require.NoError(t, err)
	authed := Authenticated{
		Transaction: tx,
		Witnesses:   []Witness{NewUtxoWitness(id, sk)},
	}
	authedID, err := authed.Transaction.ID()
	require.NoError(t, err)
	assert.Equal(t, id, authedID)
}

func TestEmptyTransactionEncodes(t *testing.T) {
	// nil slices and nil payload normalize to the same body as empty ones
	implicit := Transaction{}
	explicit := Transaction{
		Inputs:  []Input{},
		Outputs: []Output{},
		Extra:   NoExtra{},
	}
	implicitBody, err := implicit.Bytes()
	require.NoError(t, err)
	explicitBody, err := explicit.Bytes()
	require.NoError(t, err)
	assert.Equal(t, implicitBody, explicitBody)
}

func TestUtxoWitnessVerifies(t *testing.T) {
	sk, err := key.Generate(nil)
	require.NoError(t, err)
	tx := testTransaction(t)
	id, err := tx.ID()
	require.NoError(t, err)

	w := NewUtxoWitness(id, sk)
	assert.NoError(
		t,
		key.VerifySignature(sk.PublicKey(), w.Signature, id.Bytes()),
	)

	other, err := key.Generate(nil)
	require.NoError(t, err)
	assert.Error(
		t,
		key.VerifySignature(other.PublicKey(), w.Signature, id.Bytes()),
	)
}

func TestAccountWitnessBindsCounter(t *testing.T) {
	sk, err := key.Generate(nil)
	require.NoError(t, err)
	tx := testTransaction(t)
	id, err := tx.ID()
	require.NoError(t, err)

	counter := account.SpendingCounter(7)
	w := NewAccountWitness(id, counter, sk)
	assert.NoError(
		t,
		key.VerifySignature(
			sk.PublicKey(),
			w.Signature,
			AccountWitnessMessage(id, counter),
		),
	)
	// the same witness is invalid for any other counter value
	assert.Error(
		t,
		key.VerifySignature(
			sk.PublicKey(),
			w.Signature,
			AccountWitnessMessage(id, counter+1),
		),
	)
}

func TestAccountWitnessMessageLayout(t *testing.T) {
	id := HashBytes([]byte{42})
	msg := AccountWitnessMessage(id, account.SpendingCounter(0x01020304))
	require.Len(t, msg, IDSize+4)
	assert.Equal(t, id.Bytes(), msg[:IDSize])
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, msg[IDSize:])
}

func TestInputValues(t *testing.T) {
	utxoIn := NewUtxoInput(UtxoPointer{
		TransactionID: HashBytes([]byte{1}),
		OutputIndex:   3,
		Value:         250,
	})
	assert.Equal(t, value.Value(250), utxoIn.Value())

	sk, err := key.Generate(nil)
	require.NoError(t, err)
	acctIn := NewAccountInput(account.Identifier(sk.PublicKey()), 40)
	assert.Equal(t, value.Value(40), acctIn.Value())
}
