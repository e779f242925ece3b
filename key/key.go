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

// Package key wraps the ed25519 primitives used for spending keys and
// witness signatures. Verification never panics on malformed input; every
// failure is reported as a returned error.
package key

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/nikita-bykov/jormungandr/codec"
)

const (
	PublicKeySize = ed25519.PublicKeySize
	SignatureSize = ed25519.SignatureSize
	ChainCodeSize = 32
)

// PublicKey is an ed25519 verification key
type PublicKey [PublicKeySize]byte

func NewPublicKey(data []byte) (PublicKey, error) {
	var p PublicKey
	if len(data) != PublicKeySize {
		return p, InvalidKeySizeError{Size: len(data)}
	}
	copy(p[:], data)
	return p, nil
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

func (p PublicKey) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the key is zero-valued
	keyBytes := make([]byte, PublicKeySize)
	copy(keyBytes, p[:])
	return codec.Encode(keyBytes)
}

// Signature is an ed25519 signature
type Signature [SignatureSize]byte

func NewSignature(data []byte) (Signature, error) {
	var s Signature
	if len(data) != SignatureSize {
		return s, InvalidSignatureSizeError{Size: len(data)}
	}
	copy(s[:], data)
	return s, nil
}

func (s Signature) Bytes() []byte {
	return s[:]
}

// ExtendedPublicKey is a BIP32-style extended verification key as used by
// legacy addresses: the raw ed25519 key plus a chain code
type ExtendedPublicKey struct {
	PublicKey PublicKey
	ChainCode [ChainCodeSize]byte
}

func (x ExtendedPublicKey) Bytes() []byte {
	ret := make([]byte, 0, PublicKeySize+ChainCodeSize)
	ret = append(ret, x.PublicKey[:]...)
	ret = append(ret, x.ChainCode[:]...)
	return ret
}

// Validate checks that the key material is a canonical point on the ed25519
// curve. Legacy witnesses carry attacker-supplied keys, so the point is
// checked explicitly before any signature verification.
func (x ExtendedPublicKey) Validate() error {
	if _, err := new(edwards25519.Point).SetBytes(x.PublicKey[:]); err != nil {
		return fmt.Errorf("invalid extended public key: %w", err)
	}
	return nil
}

// VerifySignature verifies an ed25519 signature against the provided public key and message
func VerifySignature(pubKey PublicKey, sig Signature, msg []byte) error {
	if !ed25519.Verify(ed25519.PublicKey(pubKey[:]), msg, sig[:]) {
		return errors.New("signature verification failed")
	}
	return nil
}

// SigningKey is an ed25519 signing key used to produce witness signatures
type SigningKey struct {
	priv ed25519.PrivateKey
}

// Generate creates a new signing key from the provided entropy source. A nil
// reader uses crypto/rand.
func Generate(rand io.Reader) (SigningKey, error) {
	_, priv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return SigningKey{}, err
	}
	return SigningKey{priv: priv}, nil
}

func (k SigningKey) PublicKey() PublicKey {
	var p PublicKey
	copy(p[:], k.priv.Public().(ed25519.PublicKey))
	return p
}

func (k SigningKey) Sign(msg []byte) Signature {
	var s Signature
	copy(s[:], ed25519.Sign(k.priv, msg))
	return s
}

// InvalidKeySizeError indicates public key material of the wrong length
type InvalidKeySizeError struct {
	Size int
}

func (e InvalidKeySizeError) Error() string {
	return fmt.Sprintf("invalid public key size: %d", e.Size)
}

// InvalidSignatureSizeError indicates signature material of the wrong length
type InvalidSignatureSizeError struct {
	Size int
}

func (e InvalidSignatureSizeError) Error() string {
	return fmt.Sprintf("invalid signature size: %d", e.Size)
}
