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

// Package ledger implements the state-transition core of the chain: given
// an immutable ledger snapshot and a block's messages, it produces the next
// snapshot or a typed error.
//
// A Ledger is a value. Copying it is O(1) because the underlying stores
// share structure, and no operation ever mutates a snapshot in place:
// concurrent readers of any number of snapshots need no synchronization.
// Which snapshot becomes canonical after a block is applied is decided by
// the caller.
package ledger

import (
	"github.com/nikita-bykov/jormungandr/account"
	"github.com/nikita-bykov/jormungandr/address"
	"github.com/nikita-bykov/jormungandr/block"
	"github.com/nikita-bykov/jormungandr/certificate"
	"github.com/nikita-bykov/jormungandr/fee"
	"github.com/nikita-bykov/jormungandr/legacy"
	"github.com/nikita-bykov/jormungandr/setting"
	"github.com/nikita-bykov/jormungandr/stake"
	"github.com/nikita-bykov/jormungandr/transaction"
	"github.com/nikita-bykov/jormungandr/utxo"
	"github.com/nikita-bykov/jormungandr/value"
)

// StaticParameters never change for the lifetime of a chain. All snapshots
// of one chain share a single instance.
type StaticParameters struct {
	Discrimination address.Discrimination
}

// Parameters are the per-validation-call protocol knobs. They are supplied
// with each apply call rather than persisted, since they may vary by epoch.
type Parameters struct {
	// Fees is the fee algorithm consulted by the balance check. A nil
	// algorithm means zero fees.
	Fees fee.Algorithm
	// AllowAccountCreation permits outputs to account addresses that do
	// not exist yet; the account is created with the output value
	AllowAccountCreation bool
}

func (p Parameters) fee(
	inputs, outputs int,
	hasCertificate bool,
) (value.Value, error) {
	if p.Fees == nil {
		return value.Zero, nil
	}
	return p.Fees.Calculate(inputs, outputs, hasCertificate)
}

// Ledger is one immutable state snapshot of the chain
type Ledger struct {
	utxos        utxo.Store[address.Address]
	oldUTxOs     utxo.Store[legacy.OldAddress]
	accounts     account.Ledger
	settings     setting.Settings
	delegation   stake.DelegationState
	staticParams *StaticParameters
}

// New creates the empty ledger of a fresh chain
func New(staticParams StaticParameters, settings setting.Settings) Ledger {
	return Ledger{
		utxos:        utxo.New[address.Address](),
		oldUTxOs:     utxo.New[legacy.OldAddress](),
		accounts:     account.New(),
		settings:     settings,
		delegation:   stake.NewDelegationState(),
		staticParams: &staticParams,
	}
}

// ApplyBlock folds a block's messages over the ledger left to right. The
// first failure aborts the whole block: the returned error carries no
// partial state and the receiver snapshot remains valid.
func (l Ledger) ApplyBlock(
	params Parameters,
	contents []block.Message,
) (Ledger, error) {
	if len(contents) > int(l.settings.MaxTransactionsPerBlock) {
		return Ledger{}, TooManyMessagesError{
			Count: len(contents),
			Max:   l.settings.MaxTransactionsPerBlock,
		}
	}
	newLedger := l
	var err error
	for _, content := range contents {
		switch msg := content.(type) {
		case block.TransactionMessage:
			newLedger, err = newLedger.ApplyTransaction(msg.Transaction, params)
		case block.CertificateMessage:
			newLedger, err = newLedger.ApplyCertificate(msg.Transaction, params)
		case block.UpdateMessage:
			newLedger, err = newLedger.ApplyUpdate(msg.Proposal)
		case block.OldUtxoDeclarationMessage:
			err = OldUtxoDeclarationUnsupportedError{}
		default:
			err = UnknownMessageError{Message: content}
		}
		if err != nil {
			return Ledger{}, err
		}
	}
	return newLedger, nil
}

// ApplyTransaction validates and applies one transaction, producing a new
// snapshot or a typed error
func (l Ledger) ApplyTransaction(
	authTx transaction.Authenticated,
	params Parameters,
) (Ledger, error) {
	txID, err := authTx.Transaction.ID()
	if err != nil {
		return Ledger{}, err
	}
	_, hasCertificate := authTx.Transaction.Extra.(certificate.Certificate)
	return internalApplyTransaction(
		l,
		params,
		txID,
		authTx.Transaction.Inputs,
		authTx.Transaction.Outputs,
		authTx.Witnesses,
		hasCertificate,
	)
}

// ApplyUpdate applies a settings update proposal
func (l Ledger) ApplyUpdate(proposal setting.UpdateProposal) (Ledger, error) {
	l.settings = l.settings.Apply(proposal)
	return l, nil
}

// ApplyCertificate applies a certificate-bearing transaction: ordinary
// transaction validation and application first, then the certificate is fed
// into the delegation state. A delegation failure rejects the whole message.
func (l Ledger) ApplyCertificate(
	authTx transaction.Authenticated,
	params Parameters,
) (Ledger, error) {
	cert, ok := authTx.Transaction.Extra.(certificate.Certificate)
	if !ok {
		return Ledger{}, CertificateMissingError{}
	}
	newLedger, err := l.ApplyTransaction(authTx, params)
	if err != nil {
		return Ledger{}, err
	}
	newDelegation, err := newLedger.delegation.Apply(cert)
	if err != nil {
		return Ledger{}, DelegationError{Err: err}
	}
	newLedger.delegation = newDelegation
	return newLedger, nil
}

// StakeDistribution derives the stake distribution from the current
// delegation state and UTXO set. Pure read; safe to call concurrently with
// other reads of immutable snapshots.
func (l Ledger) StakeDistribution() stake.Distribution {
	return stake.GetDistribution(l.delegation, l.utxos)
}

// AddGenesisUTxO seeds the ledger with an initial unspent output. Intended
// for chain bootstrap, before any block is applied.
func (l Ledger) AddGenesisUTxO(
	id transaction.ID,
	index uint8,
	output transaction.Output,
) (Ledger, error) {
	if output.Value.IsZero() {
		return Ledger{}, ZeroOutputError{Output: output}
	}
	if output.Address.Discrimination() != l.staticParams.Discrimination {
		return Ledger{}, InvalidDiscriminationError{}
	}
	newUTxOs, err := l.utxos.Add(id, []utxo.TaggedEntry[address.Address]{
		{
			Index: index,
			Entry: utxo.Entry[address.Address]{
				Address: output.Address,
				Value:   output.Value,
			},
		},
	})
	if err != nil {
		return Ledger{}, UtxoError{Err: err}
	}
	l.utxos = newUTxOs
	return l, nil
}

// AddGenesisLegacyUTxO seeds the ledger with an initial legacy output
func (l Ledger) AddGenesisLegacyUTxO(
	id transaction.ID,
	index uint8,
	addr legacy.OldAddress,
	v value.Value,
) (Ledger, error) {
	if v.IsZero() {
		return Ledger{}, ZeroOutputError{}
	}
	newOldUTxOs, err := l.oldUTxOs.Add(id, []utxo.TaggedEntry[legacy.OldAddress]{
		{Index: index, Entry: utxo.Entry[legacy.OldAddress]{Address: addr, Value: v}},
	})
	if err != nil {
		return Ledger{}, UtxoError{Err: err}
	}
	l.oldUTxOs = newOldUTxOs
	return l, nil
}

// AddGenesisAccount seeds the ledger with an initial account balance
func (l Ledger) AddGenesisAccount(
	id account.Identifier,
	v value.Value,
) (Ledger, error) {
	newAccounts, err := l.accounts.AddAccount(id, v)
	if err != nil {
		return Ledger{}, AccountError{Err: err}
	}
	l.accounts = newAccounts
	return l, nil
}

// UTxOs returns the current UTXO store snapshot
func (l Ledger) UTxOs() utxo.Store[address.Address] {
	return l.utxos
}

// OldUTxOs returns the current legacy UTXO store snapshot
func (l Ledger) OldUTxOs() utxo.Store[legacy.OldAddress] {
	return l.oldUTxOs
}

// Accounts returns the current account ledger snapshot
func (l Ledger) Accounts() account.Ledger {
	return l.accounts
}

// Settings returns the current protocol settings
func (l Ledger) Settings() setting.Settings {
	return l.settings
}

// Delegation returns the current delegation state snapshot
func (l Ledger) Delegation() stake.DelegationState {
	return l.delegation
}

// StaticParameters returns the chain's static parameters
func (l Ledger) StaticParameters() StaticParameters {
	return *l.staticParams
}
