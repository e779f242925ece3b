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

package ledger

import (
	"errors"

	"github.com/nikita-bykov/jormungandr/account"
	"github.com/nikita-bykov/jormungandr/address"
	"github.com/nikita-bykov/jormungandr/key"
	"github.com/nikita-bykov/jormungandr/transaction"
	"github.com/nikita-bykov/jormungandr/utxo"
	"github.com/nikita-bykov/jormungandr/value"
)

// internalApplyTransaction is the transition function. Every validation
// step short-circuits: a failure discards the working copy and the caller's
// snapshot stays untouched.
func internalApplyTransaction(
	ledger Ledger,
	params Parameters,
	txID transaction.ID,
	inputs []transaction.Input,
	outputs []transaction.Output,
	witnesses []transaction.Witness,
	hasCertificate bool,
) (Ledger, error) {
	// 1. bound the per-message work before touching anything else
	if len(inputs) > transaction.MaxElements {
		return Ledger{}, TooManyElementsError{Kind: "inputs", Count: len(inputs)}
	}
	if len(outputs) > transaction.MaxElements {
		return Ledger{}, TooManyElementsError{Kind: "outputs", Count: len(outputs)}
	}
	if len(witnesses) > transaction.MaxElements {
		return Ledger{}, TooManyElementsError{Kind: "witnesses", Count: len(witnesses)}
	}

	// 2. every input needs exactly one witness, positionally paired
	if len(inputs) != len(witnesses) {
		return Ledger{}, NotEnoughSignaturesError{
			Inputs:    len(inputs),
			Witnesses: len(witnesses),
		}
	}

	// 3. verify inputs in order. A successful verification both authorizes
	// the spend and removes/debits the value: an input is spent exactly
	// when its witness is proven valid.
	for i, input := range inputs {
		witness := witnesses[i]
		switch in := input.(type) {
		case transaction.UtxoInput:
			var err error
			ledger, err = inputUtxoVerify(ledger, txID, in.Pointer, witness)
			if err != nil {
				return Ledger{}, err
			}
		case transaction.AccountInput:
			newAccounts, err := inputAccountVerify(
				ledger.accounts,
				txID,
				in.Account,
				in.Amount,
				witness,
			)
			if err != nil {
				return Ledger{}, err
			}
			ledger.accounts = newAccounts
		default:
			return Ledger{}, UnknownInputError{Input: input}
		}
	}

	// 4. the declared input total must equal the declared output total
	// plus the fee. Overflow on either side is distinct from imbalance.
	inputValues := make([]value.Value, 0, len(inputs))
	for _, input := range inputs {
		inputValues = append(inputValues, input.Value())
	}
	totalInput, err := value.Sum(inputValues)
	if err != nil {
		return Ledger{}, InputsTotalError{Err: err}
	}
	outputValues := make([]value.Value, 0, len(outputs))
	for _, output := range outputs {
		outputValues = append(outputValues, output.Value)
	}
	totalOutput, err := value.Sum(outputValues)
	if err != nil {
		return Ledger{}, OutputsTotalError{Err: err}
	}
	feeValue, err := params.fee(len(inputs), len(outputs), hasCertificate)
	if err != nil {
		return Ledger{}, OutputsTotalError{Err: err}
	}
	totalProduced, err := totalOutput.Add(feeValue)
	if err != nil {
		return Ledger{}, OutputsTotalError{Err: err}
	}
	if totalInput != totalProduced {
		return Ledger{}, NotBalancedError{
			Inputs:  totalInput,
			Outputs: totalProduced,
		}
	}

	// 5. apply outputs in order, staging UTXO insertions so that a bad
	// output later in the list leaves no partial insertion behind
	newUTxOs := make([]utxo.TaggedEntry[address.Address], 0, len(outputs))
	for index, output := range outputs {
		if output.Value.IsZero() {
			return Ledger{}, ZeroOutputError{Output: output}
		}
		if output.Address.Discrimination() != ledger.staticParams.Discrimination {
			return Ledger{}, InvalidDiscriminationError{}
		}
		switch output.Address.Kind() {
		case address.KindSingle, address.KindGroup:
			newUTxOs = append(newUTxOs, utxo.TaggedEntry[address.Address]{
				Index: uint8(index),
				Entry: utxo.Entry[address.Address]{
					Address: output.Address,
					Value:   output.Value,
				},
			})
		case address.KindAccount:
			accountKey, _ := output.Address.AccountKey()
			id := account.Identifier(accountKey)
			newAccounts, err := ledger.accounts.AddValue(id, output.Value)
			if err == nil {
				ledger.accounts = newAccounts
				continue
			}
			var nonExistent account.NonExistentError
			if errors.As(err, &nonExistent) && params.AllowAccountCreation {
				// the account does not exist yet: create it with the
				// output value
				newAccounts, err = ledger.accounts.AddAccount(id, output.Value)
				if err != nil {
					return Ledger{}, AccountError{Err: err}
				}
				ledger.accounts = newAccounts
				continue
			}
			return Ledger{}, AccountError{Err: err}
		default:
			return Ledger{}, address.InvalidAddressError{
				Reason: "unknown output address kind",
			}
		}
	}

	// 6. insert the staged outputs under the transaction id atomically
	updatedUTxOs, err := ledger.utxos.Add(txID, newUTxOs)
	if err != nil {
		return Ledger{}, UtxoError{Err: err}
	}
	ledger.utxos = updatedUTxOs

	return ledger, nil
}

// inputUtxoVerify authorizes and spends one UTXO input. Lookup and removal
// happen first; any later failure propagates an error, so the removal is
// only ever visible in a successfully returned snapshot.
func inputUtxoVerify(
	ledger Ledger,
	txID transaction.ID,
	ptr transaction.UtxoPointer,
	witness transaction.Witness,
) (Ledger, error) {
	switch w := witness.(type) {
	case transaction.AccountWitness:
		return Ledger{}, ExpectingUtxoWitnessError{}
	case transaction.OldUtxoWitness:
		newOldUTxOs, entry, err := ledger.oldUTxOs.Remove(
			ptr.TransactionID,
			ptr.OutputIndex,
		)
		if err != nil {
			return Ledger{}, UtxoError{Err: err}
		}
		ledger.oldUTxOs = newOldUTxOs
		if ptr.Value != entry.Value {
			return Ledger{}, UtxoValueNotMatchingError{
				Claimed:  ptr.Value,
				Recorded: entry.Value,
			}
		}
		if w.XPub.Validate() != nil || !entry.Address.MatchesXPub(w.XPub) {
			return Ledger{}, OldUtxoInvalidPublicKeyError{Utxo: ptr, Witness: w}
		}
		if key.VerifySignature(w.XPub.PublicKey, w.Signature, txID.Bytes()) != nil {
			return Ledger{}, OldUtxoInvalidSignatureError{Utxo: ptr, Witness: w}
		}
		return ledger, nil
	case transaction.UtxoWitness:
		newUTxOs, entry, err := ledger.utxos.Remove(
			ptr.TransactionID,
			ptr.OutputIndex,
		)
		if err != nil {
			return Ledger{}, UtxoError{Err: err}
		}
		ledger.utxos = newUTxOs
		if ptr.Value != entry.Value {
			return Ledger{}, UtxoValueNotMatchingError{
				Claimed:  ptr.Value,
				Recorded: entry.Value,
			}
		}
		pubKey, ok := entry.Address.PublicKey()
		if !ok {
			// account addresses never enter the UTXO store
			return Ledger{}, UtxoInvalidSignatureError{Utxo: ptr, Witness: w}
		}
		if key.VerifySignature(pubKey, w.Signature, txID.Bytes()) != nil {
			return Ledger{}, UtxoInvalidSignatureError{Utxo: ptr, Witness: w}
		}
		return ledger, nil
	default:
		return Ledger{}, ExpectingUtxoWitnessError{}
	}
}

// inputAccountVerify authorizes and applies one account debit. The debit
// happens first so that insufficient funds surface before signature
// checking; the witness is verified against the counter recorded before the
// debit, which is the nonce the spender signed.
func inputAccountVerify(
	accounts account.Ledger,
	txID transaction.ID,
	id account.Identifier,
	v value.Value,
	witness transaction.Witness,
) (account.Ledger, error) {
	newAccounts, counter, err := accounts.RemoveValue(id, v)
	if err != nil {
		return account.Ledger{}, AccountError{Err: err}
	}
	switch w := witness.(type) {
	case transaction.UtxoWitness, transaction.OldUtxoWitness:
		return account.Ledger{}, ExpectingAccountWitnessError{}
	case transaction.AccountWitness:
		msg := transaction.AccountWitnessMessage(txID, counter)
		if key.VerifySignature(id.PublicKey(), w.Signature, msg) != nil {
			return account.Ledger{}, AccountInvalidSignatureError{Account: id}
		}
		return newAccounts, nil
	default:
		return account.Ledger{}, ExpectingAccountWitnessError{}
	}
}
