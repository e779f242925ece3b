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

// Package block defines the ordered message list a block carries into the
// ledger. Header fields, block production and consensus live above this
// core and are out of scope.
package block

import (
	"github.com/nikita-bykov/jormungandr/legacy"
	"github.com/nikita-bykov/jormungandr/setting"
	"github.com/nikita-bykov/jormungandr/transaction"
	"github.com/nikita-bykov/jormungandr/value"
)

// Message is a closed union of everything a block can ask the ledger to do
type Message interface {
	isMessage()
}

// TransactionMessage applies a plain value-transfer transaction
type TransactionMessage struct {
	Transaction transaction.Authenticated
}

func (TransactionMessage) isMessage() {}

// CertificateMessage applies a transaction carrying a delegation certificate
type CertificateMessage struct {
	Transaction transaction.Authenticated
}

func (CertificateMessage) isMessage() {}

// UpdateMessage applies a settings update proposal
type UpdateMessage struct {
	Proposal setting.UpdateProposal
}

func (UpdateMessage) isMessage() {}

// OldUtxoDeclaration is a single declared legacy output
type OldUtxoDeclaration struct {
	Address legacy.OldAddress
	Value   value.Value
}

// OldUtxoDeclarationMessage declares legacy outputs. The ledger does not
// support applying these through blocks; it always fails fast rather than
// silently ignoring the message.
type OldUtxoDeclarationMessage struct {
	Declarations []OldUtxoDeclaration
}

func (OldUtxoDeclarationMessage) isMessage() {}

// Block is an ordered list of messages applied atomically: either every
// message applies or the whole block is rejected
type Block struct {
	Contents []Message
}
