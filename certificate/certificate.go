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

// Package certificate defines the delegation certificates that ride inside
// transactions. A certificate only reaches the delegation state after the
// enclosing transaction has been fully validated and applied.
package certificate

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"

	"github.com/nikita-bykov/jormungandr/codec"
	"github.com/nikita-bykov/jormungandr/key"
)

// PoolIDSize is the size of a stake pool identifier
const PoolIDSize = 28

// PoolID identifies a registered stake pool
type PoolID [PoolIDSize]byte

// NewPoolID derives a pool identifier from the pool's registration key
func NewPoolID(poolKey key.PublicKey) PoolID {
	tmpHash, err := blake2b.New(PoolIDSize, nil)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error generating empty blake2b hash: %s", err),
		)
	}
	tmpHash.Write(poolKey.Bytes())
	return PoolID(tmpHash.Sum(nil))
}

func (p PoolID) Bytes() []byte {
	return p[:]
}

func (p PoolID) String() string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(p[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode("pool", convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// StakeKeyID identifies a stake key: the group key of Group addresses
type StakeKeyID = key.PublicKey

// Certificate is a closed union of delegation certificate kinds
type Certificate interface {
	isCertificate()
	// PayloadBytes returns the canonical bytes bound into the id of the
	// enclosing transaction
	PayloadBytes() ([]byte, error)
}

// certificate payload tags for canonical encoding
const (
	tagStakeKeyRegistration   = 1
	tagStakeKeyDeregistration = 2
	tagStakeDelegation        = 3
	tagPoolRegistration       = 4
	tagPoolRetirement         = 5
)

// StakeKeyRegistration declares a stake key so it can delegate
type StakeKeyRegistration struct {
	StakeKeyID StakeKeyID
}

func (StakeKeyRegistration) isCertificate() {}

func (c StakeKeyRegistration) PayloadBytes() ([]byte, error) {
	return codec.Encode([]any{tagStakeKeyRegistration, c.StakeKeyID.Bytes()})
}

// StakeKeyDeregistration retires a stake key and drops its delegation
type StakeKeyDeregistration struct {
	StakeKeyID StakeKeyID
}

func (StakeKeyDeregistration) isCertificate() {}

func (c StakeKeyDeregistration) PayloadBytes() ([]byte, error) {
	return codec.Encode([]any{tagStakeKeyDeregistration, c.StakeKeyID.Bytes()})
}

// StakeDelegation points a registered stake key at a registered pool
type StakeDelegation struct {
	StakeKeyID StakeKeyID
	Pool       PoolID
}

func (StakeDelegation) isCertificate() {}

func (c StakeDelegation) PayloadBytes() ([]byte, error) {
	return codec.Encode(
		[]any{tagStakeDelegation, c.StakeKeyID.Bytes(), c.Pool.Bytes()},
	)
}

// PoolRegistration declares a new stake pool
type PoolRegistration struct {
	Pool   PoolID
	Owners []key.PublicKey
}

func (PoolRegistration) isCertificate() {}

func (c PoolRegistration) PayloadBytes() ([]byte, error) {
	owners := make([][]byte, 0, len(c.Owners))
	for _, owner := range c.Owners {
		owners = append(owners, owner.Bytes())
	}
	return codec.Encode([]any{tagPoolRegistration, c.Pool.Bytes(), owners})
}

// PoolRetirement removes a pool; stake still delegated to it becomes dangling
type PoolRetirement struct {
	Pool PoolID
}

func (PoolRetirement) isCertificate() {}

func (c PoolRetirement) PayloadBytes() ([]byte, error) {
	return codec.Encode([]any{tagPoolRetirement, c.Pool.Bytes()})
}
