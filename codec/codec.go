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

// Package codec provides deterministic CBOR encoding for the ledger core.
// Transaction identity is a hash of the canonical encoding, so all maps
// must have ordered keys and all encoders must agree on a single encode mode.
package codec

import (
	"fmt"

	_cbor "github.com/fxamacker/cbor/v2"
)

var encMode _cbor.EncMode

var decMode _cbor.DecMode

func init() {
	var err error
	encMode, err = _cbor.EncOptions{
		// Make sure that maps have ordered keys
		Sort: _cbor.SortCoreDeterministic,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("unexpected error creating CBOR encode mode: %s", err))
	}
	decMode, err = _cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("unexpected error creating CBOR decode mode: %s", err))
	}
}

// Encode serializes the provided object to canonical CBOR
func Encode(data any) ([]byte, error) {
	return encMode.Marshal(data)
}

// Decode deserializes canonical CBOR into the provided object
func Decode(data []byte, dest any) error {
	return decMode.Unmarshal(data, dest)
}
