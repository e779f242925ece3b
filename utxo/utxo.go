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

// Package utxo implements the persistent unspent-output store. The store is
// an immutable value keyed by (transaction id, output index): every mutating
// operation returns a new store sharing structure with the old one, so a
// ledger snapshot clone is O(1). The store is generic over the address type
// because current and legacy outputs use different address formats.
package utxo

import (
	"encoding/binary"
	"fmt"

	"github.com/benbjohnson/immutable"

	"github.com/nikita-bykov/jormungandr/transaction"
	"github.com/nikita-bykov/jormungandr/value"
)

// Entry is a single unspent output
type Entry[A any] struct {
	Address A
	Value   value.Value
}

// TaggedEntry pairs an output with its index inside the producing transaction
type TaggedEntry[A any] struct {
	Index uint8
	Entry Entry[A]
}

type storeKey struct {
	id    transaction.ID
	index uint8
}

type storeKeyHasher struct{}

func (storeKeyHasher) Hash(k storeKey) uint32 {
	// transaction ids are hashes, already uniformly distributed
	return binary.BigEndian.Uint32(k.id[:4]) ^ uint32(k.index)
}

func (storeKeyHasher) Equal(a, b storeKey) bool {
	return a == b
}

// Store is an immutable snapshot of unspent outputs
type Store[A any] struct {
	entries *immutable.Map[storeKey, Entry[A]]
}

// New creates an empty store
func New[A any]() Store[A] {
	return Store[A]{
		entries: immutable.NewMap[storeKey, Entry[A]](storeKeyHasher{}),
	}
}

// Add inserts the outputs of a newly applied transaction. Duplicate
// insertion is rejected: an output can only ever be produced once.
func (s Store[A]) Add(
	id transaction.ID,
	outputs []TaggedEntry[A],
) (Store[A], error) {
	entries := s.entries
	for _, out := range outputs {
		k := storeKey{id: id, index: out.Index}
		if _, ok := entries.Get(k); ok {
			return Store[A]{}, AlreadyExistsError{
				TransactionID: id,
				OutputIndex:   out.Index,
			}
		}
		entries = entries.Set(k, out.Entry)
	}
	return Store[A]{entries: entries}, nil
}

// Remove spends an output: it is looked up and deleted in one step, and the
// removed entry is returned so the caller can verify value and ownership
func (s Store[A]) Remove(
	id transaction.ID,
	index uint8,
) (Store[A], Entry[A], error) {
	k := storeKey{id: id, index: index}
	entry, ok := s.entries.Get(k)
	if !ok {
		return Store[A]{}, Entry[A]{}, NotFoundError{
			TransactionID: id,
			OutputIndex:   index,
		}
	}
	return Store[A]{entries: s.entries.Delete(k)}, entry, nil
}

// Get returns an unspent output without removing it
func (s Store[A]) Get(id transaction.ID, index uint8) (Entry[A], error) {
	entry, ok := s.entries.Get(storeKey{id: id, index: index})
	if !ok {
		return Entry[A]{}, NotFoundError{TransactionID: id, OutputIndex: index}
	}
	return entry, nil
}

// Len returns the number of unspent outputs
func (s Store[A]) Len() int {
	return s.entries.Len()
}

// TotalValue returns the checked sum of all unspent output values
func (s Store[A]) TotalValue() (value.Value, error) {
	total := value.Zero
	itr := s.entries.Iterator()
	for !itr.Done() {
		_, entry, _ := itr.Next()
		var err error
		total, err = total.Add(entry.Value)
		if err != nil {
			return value.Zero, err
		}
	}
	return total, nil
}

// Iter walks all unspent outputs, stopping early if fn returns false.
// Iteration order is unspecified.
func (s Store[A]) Iter(
	fn func(id transaction.ID, index uint8, entry Entry[A]) bool,
) {
	itr := s.entries.Iterator()
	for !itr.Done() {
		k, entry, _ := itr.Next()
		if !fn(k.id, k.index, entry) {
			return
		}
	}
}

// NotFoundError indicates a reference to an output that is unknown or
// already spent
type NotFoundError struct {
	TransactionID transaction.ID
	OutputIndex   uint8
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf(
		"utxo %s#%d not found or already spent",
		e.TransactionID,
		e.OutputIndex,
	)
}

// AlreadyExistsError indicates a duplicate output insertion
type AlreadyExistsError struct {
	TransactionID transaction.ID
	OutputIndex   uint8
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf(
		"utxo %s#%d already exists",
		e.TransactionID,
		e.OutputIndex,
	)
}
