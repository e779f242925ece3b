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

// Package address implements the chain address format: a discrimination tag
// (production vs test network) plus a kind that determines how outputs sent
// to the address are accounted (UTXO single key, UTXO with group key, or
// account).
package address

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/nikita-bykov/jormungandr/codec"
	"github.com/nikita-bykov/jormungandr/key"
)

// Discrimination distinguishes production addresses from test addresses
type Discrimination uint8

const (
	DiscriminationProduction Discrimination = 0
	DiscriminationTest       Discrimination = 1
)

func (d Discrimination) String() string {
	if d == DiscriminationTest {
		return "test"
	}
	return "production"
}

// Kind determines the accounting model for outputs to the address
type Kind uint8

const (
	// KindSingle is a UTXO address owned by a single spending key
	KindSingle Kind = 0x03
	// KindGroup is a UTXO address with a spending key and a group (stake) key
	KindGroup Kind = 0x04
	// KindAccount is an account address identified by its public key
	KindAccount Kind = 0x05
)

const (
	// high bit of the header byte marks a test-network address
	discriminationMask = 0x80

	headerSize      = 1
	singleAddrSize  = headerSize + key.PublicKeySize
	groupAddrSize   = headerSize + 2*key.PublicKeySize
	accountAddrSize = headerSize + key.PublicKeySize

	hrpProduction = "ca"
	hrpTest       = "ta"
)

// Address is an immutable chain address
type Address struct {
	discrimination Discrimination
	kind           Kind
	spendKey       key.PublicKey
	groupKey       key.PublicKey
}

// NewSingle builds a UTXO address owned by the provided spending key
func NewSingle(d Discrimination, spendKey key.PublicKey) Address {
	return Address{
		discrimination: d,
		kind:           KindSingle,
		spendKey:       spendKey,
	}
}

// NewGroup builds a UTXO address with a spending key and a group key used
// for stake delegation
func NewGroup(d Discrimination, spendKey key.PublicKey, groupKey key.PublicKey) Address {
	return Address{
		discrimination: d,
		kind:           KindGroup,
		spendKey:       spendKey,
		groupKey:       groupKey,
	}
}

// NewAccount builds an account address for the provided account public key
func NewAccount(d Discrimination, accountKey key.PublicKey) Address {
	return Address{
		discrimination: d,
		kind:           KindAccount,
		spendKey:       accountKey,
	}
}

// NewFromBytes parses the raw binary form produced by Bytes
func NewFromBytes(data []byte) (Address, error) {
	if len(data) < headerSize {
		return Address{}, InvalidAddressError{Reason: "empty address"}
	}
	header := data[0]
	d := DiscriminationProduction
	if header&discriminationMask != 0 {
		d = DiscriminationTest
	}
	kind := Kind(header &^ discriminationMask)
	switch kind {
	case KindSingle, KindAccount:
		if len(data) != singleAddrSize {
			return Address{}, InvalidAddressError{
				Reason: fmt.Sprintf("invalid address length: %d", len(data)),
			}
		}
		spendKey, err := key.NewPublicKey(data[headerSize:])
		if err != nil {
			return Address{}, err
		}
		return Address{discrimination: d, kind: kind, spendKey: spendKey}, nil
	case KindGroup:
		if len(data) != groupAddrSize {
			return Address{}, InvalidAddressError{
				Reason: fmt.Sprintf("invalid address length: %d", len(data)),
			}
		}
		spendKey, err := key.NewPublicKey(data[headerSize : headerSize+key.PublicKeySize])
		if err != nil {
			return Address{}, err
		}
		groupKey, err := key.NewPublicKey(data[headerSize+key.PublicKeySize:])
		if err != nil {
			return Address{}, err
		}
		return Address{
			discrimination: d,
			kind:           kind,
			spendKey:       spendKey,
			groupKey:       groupKey,
		}, nil
	default:
		return Address{}, InvalidAddressError{
			Reason: fmt.Sprintf("unknown address kind: 0x%02x", uint8(kind)),
		}
	}
}

// NewFromBech32 parses the bech32 text form produced by String
func NewFromBech32(addr string) (Address, error) {
	hrp, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return Address{}, err
	}
	if hrp != hrpProduction && hrp != hrpTest {
		return Address{}, InvalidAddressError{
			Reason: fmt.Sprintf("unknown address prefix: %s", hrp),
		}
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, err
	}
	ret, err := NewFromBytes(decoded)
	if err != nil {
		return Address{}, err
	}
	// The prefix must agree with the discrimination bit in the payload
	if (hrp == hrpTest) != (ret.discrimination == DiscriminationTest) {
		return Address{}, InvalidAddressError{
			Reason: "address prefix does not match discrimination",
		}
	}
	return ret, nil
}

func (a Address) Discrimination() Discrimination {
	return a.discrimination
}

func (a Address) Kind() Kind {
	return a.kind
}

// PublicKey returns the spending key for Single and Group addresses. The
// second return is false for Account addresses, which are spent through the
// account ledger instead.
func (a Address) PublicKey() (key.PublicKey, bool) {
	if a.kind == KindAccount {
		return key.PublicKey{}, false
	}
	return a.spendKey, true
}

// GroupKey returns the group (stake) key of a Group address
func (a Address) GroupKey() (key.PublicKey, bool) {
	if a.kind != KindGroup {
		return key.PublicKey{}, false
	}
	return a.groupKey, true
}

// AccountKey returns the account public key of an Account address
func (a Address) AccountKey() (key.PublicKey, bool) {
	if a.kind != KindAccount {
		return key.PublicKey{}, false
	}
	return a.spendKey, true
}

// Bytes returns the raw binary form: a header byte carrying the kind and
// discrimination, followed by the key material
func (a Address) Bytes() []byte {
	header := uint8(a.kind)
	if a.discrimination == DiscriminationTest {
		header |= discriminationMask
	}
	buf := bytes.NewBuffer(nil)
	buf.WriteByte(header)
	buf.Write(a.spendKey.Bytes())
	if a.kind == KindGroup {
		buf.Write(a.groupKey.Bytes())
	}
	return buf.Bytes()
}

func (a Address) MarshalCBOR() ([]byte, error) {
	return codec.Encode(a.Bytes())
}

func (a Address) String() string {
	hrp := hrpProduction
	if a.discrimination == DiscriminationTest {
		hrp = hrpTest
	}
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(a.Bytes(), 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(hrp, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// Equal reports whether two addresses have identical binary forms
func (a Address) Equal(other Address) bool {
	return bytes.Equal(a.Bytes(), other.Bytes())
}

// InvalidAddressError indicates address bytes that do not parse
type InvalidAddressError struct {
	Reason string
}

func (e InvalidAddressError) Error() string {
	return "invalid address: " + e.Reason
}
