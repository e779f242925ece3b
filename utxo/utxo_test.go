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

package utxo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-bykov/jormungandr/transaction"
	"github.com/nikita-bykov/jormungandr/value"
)

func testEntry(addr string, v value.Value) Entry[string] {
	return Entry[string]{Address: addr, Value: v}
}

func TestAddAndGet(t *testing.T) {
	txID := transaction.HashBytes([]byte{0})
	store, err := New[string]().Add(txID, []TaggedEntry[string]{
		{Index: 0, Entry: testEntry("alice", 100)},
		{Index: 1, Entry: testEntry("bob", 200)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	entry, err := store.Get(txID, 1)
	require.NoError(t, err)
	assert.Equal(t, "bob", entry.Address)
	assert.Equal(t, value.Value(200), entry.Value)

	total, err := store.TotalValue()
	require.NoError(t, err)
	assert.Equal(t, value.Value(300), total)
}

func TestAddDuplicate(t *testing.T) {
	txID := transaction.HashBytes([]byte{1})
	store, err := New[string]().Add(txID, []TaggedEntry[string]{
		{Index: 0, Entry: testEntry("alice", 100)},
	})
	require.NoError(t, err)

	_, err = store.Add(txID, []TaggedEntry[string]{
		{Index: 0, Entry: testEntry("mallory", 100)},
	})
	assert.ErrorAs(t, err, &AlreadyExistsError{})
}

func TestRemove(t *testing.T) {
	txID := transaction.HashBytes([]byte{2})
	store, err := New[string]().Add(txID, []TaggedEntry[string]{
		{Index: 0, Entry: testEntry("alice", 100)},
	})
	require.NoError(t, err)

	newStore, entry, err := store.Remove(txID, 0)
	require.NoError(t, err)
	assert.Equal(t, "alice", entry.Address)
	assert.Equal(t, 0, newStore.Len())

	// double removal from the derived snapshot fails
	_, _, err = newStore.Remove(txID, 0)
	assert.ErrorAs(t, err, &NotFoundError{})

	// unknown output index
	_, _, err = store.Remove(txID, 7)
	assert.ErrorAs(t, err, &NotFoundError{})
}

// Deriving a new store must not disturb the snapshot it came from.
func TestSnapshotIsolation(t *testing.T) {
	txID := transaction.HashBytes([]byte{3})
	base, err := New[string]().Add(txID, []TaggedEntry[string]{
		{Index: 0, Entry: testEntry("alice", 100)},
		{Index: 1, Entry: testEntry("bob", 200)},
	})
	require.NoError(t, err)

	derived, _, err := base.Remove(txID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, derived.Len())

	// the base snapshot still has both entries
	assert.Equal(t, 2, base.Len())
	entry, err := base.Get(txID, 0)
	require.NoError(t, err)
	assert.Equal(t, "alice", entry.Address)
}

func TestIter(t *testing.T) {
	txID := transaction.HashBytes([]byte{4})
	store, err := New[string]().Add(txID, []TaggedEntry[string]{
		{Index: 0, Entry: testEntry("alice", 1)},
		{Index: 1, Entry: testEntry("bob", 2)},
		{Index: 2, Entry: testEntry("carol", 3)},
	})
	require.NoError(t, err)

	seen := map[uint8]string{}
	store.Iter(func(id transaction.ID, index uint8, entry Entry[string]) bool {
		assert.Equal(t, txID, id)
		seen[index] = entry.Address
		return true
	})
	assert.Equal(t, map[uint8]string{0: "alice", 1: "bob", 2: "carol"}, seen)

	// early stop
	count := 0
	store.Iter(func(transaction.ID, uint8, Entry[string]) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}
