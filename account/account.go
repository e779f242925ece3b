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

// Package account implements the account half of the ledger: a persistent
// mapping from account identifier to balance and spending counter. The
// ledger is an immutable value; every mutating operation returns a new
// ledger sharing structure with the old one.
package account

import (
	"encoding/binary"
	"fmt"

	"github.com/benbjohnson/immutable"

	"github.com/nikita-bykov/jormungandr/key"
	"github.com/nikita-bykov/jormungandr/value"
)

// Identifier uniquely identifies an account. It doubles as the public key
// that account witnesses are verified against.
type Identifier key.PublicKey

func (i Identifier) PublicKey() key.PublicKey {
	return key.PublicKey(i)
}

func (i Identifier) String() string {
	return key.PublicKey(i).String()
}

// SpendingCounter is the per-account nonce bound into account witness
// signatures. It increments on every debit, which makes a witness valid for
// at most one transaction.
type SpendingCounter uint32

// Bytes returns the big-endian wire form of the counter
func (c SpendingCounter) Bytes() []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(c))
	return buf[:]
}

type accountState struct {
	counter SpendingCounter
	balance value.Value
}

type identifierHasher struct{}

func (identifierHasher) Hash(id Identifier) uint32 {
	// identifiers are public keys, already uniformly distributed
	return binary.BigEndian.Uint32(id[:4])
}

func (identifierHasher) Equal(a, b Identifier) bool {
	return a == b
}

// Ledger is an immutable snapshot of all accounts
type Ledger struct {
	accounts *immutable.Map[Identifier, accountState]
}

// New creates an empty account ledger
func New() Ledger {
	return Ledger{
		accounts: immutable.NewMap[Identifier, accountState](identifierHasher{}),
	}
}

// AddAccount creates a new account with the provided starting balance
func (l Ledger) AddAccount(id Identifier, v value.Value) (Ledger, error) {
	if _, ok := l.accounts.Get(id); ok {
		return Ledger{}, AlreadyExistsError{Account: id}
	}
	return Ledger{
		accounts: l.accounts.Set(id, accountState{balance: v}),
	}, nil
}

// AddValue credits an existing account
func (l Ledger) AddValue(id Identifier, v value.Value) (Ledger, error) {
	st, ok := l.accounts.Get(id)
	if !ok {
		return Ledger{}, NonExistentError{Account: id}
	}
	newBalance, err := st.balance.Add(v)
	if err != nil {
		return Ledger{}, err
	}
	st.balance = newBalance
	return Ledger{accounts: l.accounts.Set(id, st)}, nil
}

// RemoveValue debits an account and bumps its spending counter. The returned
// counter is the value before the debit: it is the nonce the spender signed.
func (l Ledger) RemoveValue(
	id Identifier,
	v value.Value,
) (Ledger, SpendingCounter, error) {
	st, ok := l.accounts.Get(id)
	if !ok {
		return Ledger{}, 0, NonExistentError{Account: id}
	}
	newBalance, err := st.balance.Sub(v)
	if err != nil {
		return Ledger{}, 0, NotEnoughFundsError{
			Account:   id,
			Balance:   st.balance,
			Requested: v,
		}
	}
	counterBefore := st.counter
	st.balance = newBalance
	st.counter++
	return Ledger{accounts: l.accounts.Set(id, st)}, counterBefore, nil
}

// Exists reports whether the account is present
func (l Ledger) Exists(id Identifier) bool {
	_, ok := l.accounts.Get(id)
	return ok
}

// Balance returns the current balance of an account
func (l Ledger) Balance(id Identifier) (value.Value, error) {
	st, ok := l.accounts.Get(id)
	if !ok {
		return value.Zero, NonExistentError{Account: id}
	}
	return st.balance, nil
}

// Counter returns the current spending counter of an account
func (l Ledger) Counter(id Identifier) (SpendingCounter, error) {
	st, ok := l.accounts.Get(id)
	if !ok {
		return 0, NonExistentError{Account: id}
	}
	return st.counter, nil
}

// Len returns the number of accounts
func (l Ledger) Len() int {
	return l.accounts.Len()
}

// TotalValue returns the checked sum of all account balances
func (l Ledger) TotalValue() (value.Value, error) {
	total := value.Zero
	itr := l.accounts.Iterator()
	for !itr.Done() {
		_, st, _ := itr.Next()
		var err error
		total, err = total.Add(st.balance)
		if err != nil {
			return value.Zero, err
		}
	}
	return total, nil
}

// NonExistentError indicates an operation on an account that was never created
type NonExistentError struct {
	Account Identifier
}

func (e NonExistentError) Error() string {
	return fmt.Sprintf("account %s does not exist", e.Account)
}

// AlreadyExistsError indicates a creation attempt for an existing account
type AlreadyExistsError struct {
	Account Identifier
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("account %s already exists", e.Account)
}

// NotEnoughFundsError indicates a debit exceeding the account balance
type NotEnoughFundsError struct {
	Account   Identifier
	Balance   value.Value
	Requested value.Value
}

func (e NotEnoughFundsError) Error() string {
	return fmt.Sprintf(
		"account %s has insufficient funds: balance %s, requested %s",
		e.Account,
		e.Balance,
		e.Requested,
	)
}
