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
	"fmt"

	"github.com/nikita-bykov/jormungandr/account"
	"github.com/nikita-bykov/jormungandr/transaction"
	"github.com/nikita-bykov/jormungandr/value"
)

// NotEnoughSignaturesError indicates a witness count different from the
// input count
type NotEnoughSignaturesError struct {
	Inputs    int
	Witnesses int
}

func (e NotEnoughSignaturesError) Error() string {
	return fmt.Sprintf(
		"transaction has %d inputs but %d witnesses",
		e.Inputs,
		e.Witnesses,
	)
}

// TooManyElementsError indicates a transaction exceeding the per-message
// element bound
type TooManyElementsError struct {
	Kind  string
	Count int
}

func (e TooManyElementsError) Error() string {
	return fmt.Sprintf(
		"transaction has %d %s, maximum is %d",
		e.Count,
		e.Kind,
		transaction.MaxElements,
	)
}

// TooManyMessagesError indicates a block carrying more messages than the
// protocol settings allow
type TooManyMessagesError struct {
	Count int
	Max   uint32
}

func (e TooManyMessagesError) Error() string {
	return fmt.Sprintf(
		"block has %d messages, settings allow %d",
		e.Count,
		e.Max,
	)
}

// UtxoValueNotMatchingError indicates a claimed input value different from
// the recorded output value
type UtxoValueNotMatchingError struct {
	Claimed  value.Value
	Recorded value.Value
}

func (e UtxoValueNotMatchingError) Error() string {
	return fmt.Sprintf(
		"claimed input value %s does not match recorded output value %s",
		e.Claimed,
		e.Recorded,
	)
}

// UtxoError wraps an error from the UTXO store
type UtxoError struct {
	Err error
}

func (e UtxoError) Error() string {
	return fmt.Sprintf("utxo error: %s", e.Err)
}

func (e UtxoError) Unwrap() error { return e.Err }

// AccountError wraps an error from the account ledger
type AccountError struct {
	Err error
}

func (e AccountError) Error() string {
	return fmt.Sprintf("account error: %s", e.Err)
}

func (e AccountError) Unwrap() error { return e.Err }

// DelegationError wraps an error from the delegation state
type DelegationError struct {
	Err error
}

func (e DelegationError) Error() string {
	return fmt.Sprintf("delegation error: %s", e.Err)
}

func (e DelegationError) Unwrap() error { return e.Err }

// UtxoInvalidSignatureError indicates a bad signature on a current UTXO input
type UtxoInvalidSignatureError struct {
	Utxo    transaction.UtxoPointer
	Witness transaction.UtxoWitness
}

func (e UtxoInvalidSignatureError) Error() string {
	return fmt.Sprintf(
		"invalid signature spending utxo %s#%d",
		e.Utxo.TransactionID,
		e.Utxo.OutputIndex,
	)
}

// OldUtxoInvalidSignatureError indicates a bad signature on a legacy UTXO input
type OldUtxoInvalidSignatureError struct {
	Utxo    transaction.UtxoPointer
	Witness transaction.OldUtxoWitness
}

func (e OldUtxoInvalidSignatureError) Error() string {
	return fmt.Sprintf(
		"invalid signature spending legacy utxo %s#%d",
		e.Utxo.TransactionID,
		e.Utxo.OutputIndex,
	)
}

// OldUtxoInvalidPublicKeyError indicates a legacy witness whose extended
// public key does not derive the spent output's address
type OldUtxoInvalidPublicKeyError struct {
	Utxo    transaction.UtxoPointer
	Witness transaction.OldUtxoWitness
}

func (e OldUtxoInvalidPublicKeyError) Error() string {
	return fmt.Sprintf(
		"public key does not own legacy utxo %s#%d",
		e.Utxo.TransactionID,
		e.Utxo.OutputIndex,
	)
}

// AccountInvalidSignatureError indicates a bad signature on an account input
type AccountInvalidSignatureError struct {
	Account account.Identifier
}

func (e AccountInvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid signature debiting account %s", e.Account)
}

// InputsTotalError indicates overflow while summing the input side
type InputsTotalError struct {
	Err error
}

func (e InputsTotalError) Error() string {
	return fmt.Sprintf("input total: %s", e.Err)
}

func (e InputsTotalError) Unwrap() error { return e.Err }

// OutputsTotalError indicates overflow while summing the output side,
// including the fee
type OutputsTotalError struct {
	Err error
}

func (e OutputsTotalError) Error() string {
	return fmt.Sprintf("output total: %s", e.Err)
}

func (e OutputsTotalError) Unwrap() error { return e.Err }

// NotBalancedError indicates differing input and output totals
type NotBalancedError struct {
	Inputs  value.Value
	Outputs value.Value
}

func (e NotBalancedError) Error() string {
	return fmt.Sprintf(
		"transaction not balanced: inputs total %s, outputs plus fee total %s",
		e.Inputs,
		e.Outputs,
	)
}

// ZeroOutputError indicates an output carrying no value
type ZeroOutputError struct {
	Output transaction.Output
}

func (e ZeroOutputError) Error() string {
	return fmt.Sprintf("zero-valued output to %s", e.Output.Address)
}

// InvalidDiscriminationError indicates an output address on the wrong network
type InvalidDiscriminationError struct{}

func (InvalidDiscriminationError) Error() string {
	return "output address discrimination does not match the chain"
}

// ExpectingAccountWitnessError indicates a non-account witness paired with
// an account input
type ExpectingAccountWitnessError struct{}

func (ExpectingAccountWitnessError) Error() string {
	return "expecting an account witness for an account input"
}

// ExpectingUtxoWitnessError indicates an account witness paired with a UTXO
// input
type ExpectingUtxoWitnessError struct{}

func (ExpectingUtxoWitnessError) Error() string {
	return "expecting a utxo witness for a utxo input"
}

// CertificateMissingError indicates a certificate application for a
// transaction without a certificate payload
type CertificateMissingError struct{}

func (CertificateMissingError) Error() string {
	return "transaction carries no certificate payload"
}

// OldUtxoDeclarationUnsupportedError indicates a legacy UTXO declaration
// message, which the transition engine does not support
type OldUtxoDeclarationUnsupportedError struct{}

func (OldUtxoDeclarationUnsupportedError) Error() string {
	return "legacy utxo declarations are not supported in blocks"
}

// UnknownInputError indicates an input kind the engine does not know
type UnknownInputError struct {
	Input transaction.Input
}

func (e UnknownInputError) Error() string {
	return fmt.Sprintf("unknown input type %T", e.Input)
}

// UnknownMessageError indicates a block message kind the engine does not know
type UnknownMessageError struct {
	Message any
}

func (e UnknownMessageError) Error() string {
	return fmt.Sprintf("unknown block message type %T", e.Message)
}
