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
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/nikita-bykov/jormungandr/codec"
)

// IDSize is the size of a transaction identifier
const IDSize = 32

// ID identifies a transaction: the blake2b-256 hash of its canonical
// encoding, excluding witnesses
type ID [IDSize]byte

// NewID builds an ID from a raw hash
func NewID(data []byte) ID {
	var id ID
	copy(id[:], data)
	return id
}

// HashBytes computes the ID of arbitrary bytes
func HashBytes(data []byte) ID {
	tmpHash, err := blake2b.New(IDSize, nil)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error generating empty blake2b hash: %s", err),
		)
	}
	tmpHash.Write(data)
	return ID(tmpHash.Sum(nil))
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

func (id ID) Bytes() []byte {
	return id[:]
}

func (id ID) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, IDSize)
	copy(hashBytes, id[:])
	return codec.Encode(hashBytes)
}
