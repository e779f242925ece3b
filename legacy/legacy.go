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

// Package legacy implements the old (pre-migration) address format. Legacy
// outputs are spent with an extended public key witness; the address root is
// rederived from the key and compared, since the address itself carries no
// usable key material.
package legacy

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"hash/crc32"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/nikita-bykov/jormungandr/codec"
	"github.com/nikita-bykov/jormungandr/key"
)

// RootSize is the size of the address root hash
const RootSize = 28

// OldAddress is a legacy address: a double-hashed digest of the extended
// public key that owns it
type OldAddress struct {
	root [RootSize]byte
}

// FromXPub derives the legacy address owned by the provided extended public key
func FromXPub(xpub key.ExtendedPublicKey) OldAddress {
	sha := sha3.Sum256(xpub.Bytes())
	digest, err := blake2b.New(RootSize, nil)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error generating empty blake2b hash: %s", err),
		)
	}
	digest.Write(sha[:])
	var a OldAddress
	copy(a.root[:], digest.Sum(nil))
	return a
}

// NewFromBytes builds an OldAddress from a raw root hash
func NewFromBytes(data []byte) (OldAddress, error) {
	var a OldAddress
	if len(data) != RootSize {
		return a, InvalidOldAddressError{Size: len(data)}
	}
	copy(a.root[:], data)
	return a, nil
}

func (a OldAddress) Bytes() []byte {
	return a.root[:]
}

func (a OldAddress) MarshalCBOR() ([]byte, error) {
	rootBytes := make([]byte, RootSize)
	copy(rootBytes, a.root[:])
	return codec.Encode(rootBytes)
}

// MatchesXPub reports whether the address was derived from the provided
// extended public key
func (a OldAddress) MatchesXPub(xpub key.ExtendedPublicKey) bool {
	derived := FromXPub(xpub)
	return bytes.Equal(a.root[:], derived.root[:])
}

// String renders the address in the legacy text form: base58 of the CBOR
// pair [payload, crc32(payload)]
func (a OldAddress) String() string {
	payload, err := codec.Encode(a.root[:])
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding address payload: %s", err))
	}
	wrapped, err := codec.Encode([]any{payload, crc32.ChecksumIEEE(payload)})
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding address envelope: %s", err))
	}
	return base58.Encode(wrapped)
}

func (a OldAddress) Hex() string {
	return hex.EncodeToString(a.root[:])
}

// Equal reports whether two legacy addresses share the same root
func (a OldAddress) Equal(other OldAddress) bool {
	return a.root == other.root
}

// InvalidOldAddressError indicates a root hash of the wrong length
type InvalidOldAddressError struct {
	Size int
}

func (e InvalidOldAddressError) Error() string {
	return fmt.Sprintf("invalid legacy address root size: %d", e.Size)
}
