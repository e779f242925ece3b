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

// Package setting holds the versioned protocol parameters of the chain.
// Settings only ever change by applying an update proposal, which produces a
// new snapshot.
package setting

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
)

// Settings are the protocol parameters persisted in the ledger
type Settings struct {
	MaxTransactionsPerBlock uint32
	BlockContentMaxSize     uint32
	SlotsPerEpoch           uint32
	SlotDuration            time.Duration
	// Version counts applied update proposals
	Version uint64
}

// New returns the initial settings of a fresh chain
func New() Settings {
	return Settings{
		MaxTransactionsPerBlock: 255,
		BlockContentMaxSize:     1024 * 1024,
		SlotsPerEpoch:           21600,
		SlotDuration:            2 * time.Second,
	}
}

// UpdateProposal carries the parameter changes of one update message. Nil
// fields leave the corresponding parameter untouched.
type UpdateProposal struct {
	MaxTransactionsPerBlock *uint32
	BlockContentMaxSize     *uint32
	SlotsPerEpoch           *uint32
	SlotDuration            *time.Duration
}

// Apply overlays the proposal on the settings, producing a new snapshot. It
// is a total function: there is no invalid proposal.
func (s Settings) Apply(proposal UpdateProposal) Settings {
	var next Settings
	if err := copier.Copy(&next, &s); err != nil {
		// Settings is a plain value struct; copying it cannot fail
		panic(fmt.Sprintf("unexpected error copying settings: %s", err))
	}
	if proposal.MaxTransactionsPerBlock != nil {
		next.MaxTransactionsPerBlock = *proposal.MaxTransactionsPerBlock
	}
	if proposal.BlockContentMaxSize != nil {
		next.BlockContentMaxSize = *proposal.BlockContentMaxSize
	}
	if proposal.SlotsPerEpoch != nil {
		next.SlotsPerEpoch = *proposal.SlotsPerEpoch
	}
	if proposal.SlotDuration != nil {
		next.SlotDuration = *proposal.SlotDuration
	}
	next.Version = s.Version + 1
	return next
}
