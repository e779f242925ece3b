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

package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-bykov/jormungandr/key"
)

func testXPub(t *testing.T, chainCodeSeed byte) key.ExtendedPublicKey {
	t.Helper()
	sk, err := key.Generate(nil)
	require.NoError(t, err)
	xpub := key.ExtendedPublicKey{PublicKey: sk.PublicKey()}
	for i := range xpub.ChainCode {
		xpub.ChainCode[i] = chainCodeSeed
	}
	return xpub
}

func TestFromXPubDeterministic(t *testing.T) {
	xpub := testXPub(t, 1)
	assert.True(t, FromXPub(xpub).Equal(FromXPub(xpub)))
}

func TestMatchesXPub(t *testing.T) {
	xpub := testXPub(t, 1)
	other := testXPub(t, 2)
	addr := FromXPub(xpub)
	assert.True(t, addr.MatchesXPub(xpub))
	assert.False(t, addr.MatchesXPub(other))

	// the chain code participates in derivation
	sameKeyDifferentChain := xpub
	sameKeyDifferentChain.ChainCode[0] ^= 0xff
	assert.False(t, addr.MatchesXPub(sameKeyDifferentChain))
}

func TestRoundTripBytes(t *testing.T) {
	addr := FromXPub(testXPub(t, 3))
	parsed, err := NewFromBytes(addr.Bytes())
	require.NoError(t, err)
	assert.True(t, addr.Equal(parsed))

	_, err = NewFromBytes([]byte{1, 2, 3})
	assert.ErrorAs(t, err, &InvalidOldAddressError{})
}

func TestString(t *testing.T) {
	addr := FromXPub(testXPub(t, 4))
	encoded := addr.String()
	assert.NotEmpty(t, encoded)
	// base58 alphabet excludes 0, O, I and l
	assert.NotContains(t, encoded, "0")
	assert.NotContains(t, encoded, "O")
}
