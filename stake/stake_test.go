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

package stake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-bykov/jormungandr/address"
	"github.com/nikita-bykov/jormungandr/certificate"
	"github.com/nikita-bykov/jormungandr/key"
	"github.com/nikita-bykov/jormungandr/transaction"
	"github.com/nikita-bykov/jormungandr/utxo"
	"github.com/nikita-bykov/jormungandr/value"
)

func testKey(t *testing.T) key.PublicKey {
	t.Helper()
	sk, err := key.Generate(nil)
	require.NoError(t, err)
	return sk.PublicKey()
}

func testPool(t *testing.T) certificate.PoolID {
	t.Helper()
	return certificate.NewPoolID(testKey(t))
}

func TestStakeKeyLifecycle(t *testing.T) {
	stakeKey := testKey(t)
	state := NewDelegationState()
	assert.False(t, state.StakeKeyRegistered(stakeKey))

	state, err := state.Apply(certificate.StakeKeyRegistration{StakeKeyID: stakeKey})
	require.NoError(t, err)
	assert.True(t, state.StakeKeyRegistered(stakeKey))

	_, err = state.Apply(certificate.StakeKeyRegistration{StakeKeyID: stakeKey})
	assert.ErrorAs(t, err, &StakeKeyAlreadyRegisteredError{})

	state, err = state.Apply(certificate.StakeKeyDeregistration{StakeKeyID: stakeKey})
	require.NoError(t, err)
	assert.False(t, state.StakeKeyRegistered(stakeKey))

	_, err = state.Apply(certificate.StakeKeyDeregistration{StakeKeyID: stakeKey})
	assert.ErrorAs(t, err, &StakeKeyNotRegisteredError{})
}

func TestPoolLifecycle(t *testing.T) {
	pool := testPool(t)
	state := NewDelegationState()

	state, err := state.Apply(certificate.PoolRegistration{Pool: pool})
	require.NoError(t, err)
	assert.True(t, state.PoolRegistered(pool))

	_, err = state.Apply(certificate.PoolRegistration{Pool: pool})
	assert.ErrorAs(t, err, &PoolAlreadyRegisteredError{})

	state, err = state.Apply(certificate.PoolRetirement{Pool: pool})
	require.NoError(t, err)
	assert.False(t, state.PoolRegistered(pool))

	_, err = state.Apply(certificate.PoolRetirement{Pool: pool})
	assert.ErrorAs(t, err, &PoolNotRegisteredError{})
}

func TestDelegation(t *testing.T) {
	stakeKey := testKey(t)
	pool := testPool(t)
	state := NewDelegationState()

	// delegating an unregistered key fails
	_, err := state.Apply(certificate.StakeDelegation{StakeKeyID: stakeKey, Pool: pool})
	assert.ErrorAs(t, err, &StakeKeyNotRegisteredError{})

	state, err = state.Apply(certificate.StakeKeyRegistration{StakeKeyID: stakeKey})
	require.NoError(t, err)

	// delegating to an unregistered pool fails
	_, err = state.Apply(certificate.StakeDelegation{StakeKeyID: stakeKey, Pool: pool})
	assert.ErrorAs(t, err, &PoolNotRegisteredError{})

	state, err = state.Apply(certificate.PoolRegistration{Pool: pool})
	require.NoError(t, err)
	state, err = state.Apply(certificate.StakeDelegation{StakeKeyID: stakeKey, Pool: pool})
	require.NoError(t, err)

	delegated, ok := state.Delegation(stakeKey)
	assert.True(t, ok)
	assert.Equal(t, pool, delegated)

	// deregistering the key drops the delegation
	state, err = state.Apply(certificate.StakeKeyDeregistration{StakeKeyID: stakeKey})
	require.NoError(t, err)
	_, ok = state.Delegation(stakeKey)
	assert.False(t, ok)
}

func TestGetDistribution(t *testing.T) {
	stakeKey := testKey(t)
	undelegatedKey := testKey(t)
	retiredStakeKey := testKey(t)
	pool := testPool(t)
	retiredPool := testPool(t)

	state := NewDelegationState()
	var err error
	for _, cert := range []certificate.Certificate{
		certificate.StakeKeyRegistration{StakeKeyID: stakeKey},
		certificate.StakeKeyRegistration{StakeKeyID: retiredStakeKey},
		certificate.PoolRegistration{Pool: pool},
		certificate.PoolRegistration{Pool: retiredPool},
		certificate.StakeDelegation{StakeKeyID: stakeKey, Pool: pool},
		certificate.StakeDelegation{StakeKeyID: retiredStakeKey, Pool: retiredPool},
		certificate.PoolRetirement{Pool: retiredPool},
	} {
		state, err = state.Apply(cert)
		require.NoError(t, err)
	}

	spendKey := testKey(t)
	utxos := utxo.New[address.Address]()
	utxos, err = utxos.Add(
		transaction.HashBytes([]byte{0}),
		[]utxo.TaggedEntry[address.Address]{
			// delegated group output
			{Index: 0, Entry: utxo.Entry[address.Address]{
				Address: address.NewGroup(address.DiscriminationTest, spendKey, stakeKey),
				Value:   1000,
			}},
			// group output whose stake key never delegated
			{Index: 1, Entry: utxo.Entry[address.Address]{
				Address: address.NewGroup(address.DiscriminationTest, spendKey, undelegatedKey),
				Value:   300,
			}},
			// single-key output: never participates
			{Index: 2, Entry: utxo.Entry[address.Address]{
				Address: address.NewSingle(address.DiscriminationTest, spendKey),
				Value:   70,
			}},
			// group output delegated to a retired pool
			{Index: 3, Entry: utxo.Entry[address.Address]{
				Address: address.NewGroup(address.DiscriminationTest, spendKey, retiredStakeKey),
				Value:   5,
			}},
		},
	)
	require.NoError(t, err)

	dist := GetDistribution(state, utxos)
	assert.Equal(t, value.Value(370), dist.Unassigned)
	assert.Equal(t, value.Value(5), dist.Dangling)
	assert.Equal(t, value.Value(1000), dist.Pools[pool])
	assert.Equal(t, value.Value(1375), dist.TotalStake())
}
