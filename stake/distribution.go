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
	"github.com/nikita-bykov/jormungandr/address"
	"github.com/nikita-bykov/jormungandr/certificate"
	"github.com/nikita-bykov/jormungandr/transaction"
	"github.com/nikita-bykov/jormungandr/utxo"
	"github.com/nikita-bykov/jormungandr/value"
)

// Distribution is a point-in-time snapshot of how UTXO value is staked
type Distribution struct {
	// Unassigned is value not participating in delegation: Single-kind
	// outputs and Group-kind outputs whose stake key has no delegation
	Unassigned value.Value
	// Dangling is value delegated to a pool that has since retired
	Dangling value.Value
	// Pools is the value delegated to each registered pool
	Pools map[certificate.PoolID]value.Value
}

// TotalStake returns the sum of all distributed value. The inputs come from
// a ledger whose totals were conserved with checked arithmetic, so plain
// addition cannot overflow here.
func (d Distribution) TotalStake() value.Value {
	total := d.Unassigned + d.Dangling
	for _, v := range d.Pools {
		total += v
	}
	return total
}

// GetDistribution derives the stake distribution from the delegation state
// and the UTXO set. It is a pure read and safe to call concurrently with
// other reads of the same snapshots.
func GetDistribution(
	state DelegationState,
	utxos utxo.Store[address.Address],
) Distribution {
	dist := Distribution{
		Pools: make(map[certificate.PoolID]value.Value),
	}
	utxos.Iter(func(
		_ transaction.ID,
		_ uint8,
		entry utxo.Entry[address.Address],
	) bool {
		groupKey, ok := entry.Address.GroupKey()
		if !ok {
			dist.Unassigned += entry.Value
			return true
		}
		pool, ok := state.Delegation(groupKey)
		if !ok {
			dist.Unassigned += entry.Value
			return true
		}
		if !state.PoolRegistered(pool) {
			dist.Dangling += entry.Value
			return true
		}
		dist.Pools[pool] += entry.Value
		return true
	})
	return dist
}
