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

// Package stake tracks stake key registrations, pool registrations and the
// delegation relationships between them, and derives stake distribution
// snapshots. DelegationState is an immutable value like the rest of the
// ledger.
package stake

import (
	"encoding/binary"
	"fmt"

	"github.com/benbjohnson/immutable"

	"github.com/nikita-bykov/jormungandr/certificate"
	"github.com/nikita-bykov/jormungandr/key"
)

type stakeKeyHasher struct{}

func (stakeKeyHasher) Hash(k certificate.StakeKeyID) uint32 {
	return binary.BigEndian.Uint32(k[:4])
}

func (stakeKeyHasher) Equal(a, b certificate.StakeKeyID) bool {
	return a == b
}

type poolIDHasher struct{}

func (poolIDHasher) Hash(p certificate.PoolID) uint32 {
	return binary.BigEndian.Uint32(p[:4])
}

func (poolIDHasher) Equal(a, b certificate.PoolID) bool {
	return a == b
}

// PoolInfo is the registered state of a stake pool
type PoolInfo struct {
	Owners []key.PublicKey
}

// DelegationState is an immutable snapshot of all delegation relationships
type DelegationState struct {
	stakeKeys   *immutable.Map[certificate.StakeKeyID, struct{}]
	pools       *immutable.Map[certificate.PoolID, PoolInfo]
	delegations *immutable.Map[certificate.StakeKeyID, certificate.PoolID]
}

// NewDelegationState creates an empty delegation state
func NewDelegationState() DelegationState {
	return DelegationState{
		stakeKeys:   immutable.NewMap[certificate.StakeKeyID, struct{}](stakeKeyHasher{}),
		pools:       immutable.NewMap[certificate.PoolID, PoolInfo](poolIDHasher{}),
		delegations: immutable.NewMap[certificate.StakeKeyID, certificate.PoolID](stakeKeyHasher{}),
	}
}

// Apply folds one certificate into the delegation state, returning the new
// state or a typed delegation error
func (s DelegationState) Apply(
	cert certificate.Certificate,
) (DelegationState, error) {
	switch c := cert.(type) {
	case certificate.StakeKeyRegistration:
		if _, ok := s.stakeKeys.Get(c.StakeKeyID); ok {
			return DelegationState{}, StakeKeyAlreadyRegisteredError{
				StakeKeyID: c.StakeKeyID,
			}
		}
		s.stakeKeys = s.stakeKeys.Set(c.StakeKeyID, struct{}{})
		return s, nil
	case certificate.StakeKeyDeregistration:
		if _, ok := s.stakeKeys.Get(c.StakeKeyID); !ok {
			return DelegationState{}, StakeKeyNotRegisteredError{
				StakeKeyID: c.StakeKeyID,
			}
		}
		s.stakeKeys = s.stakeKeys.Delete(c.StakeKeyID)
		s.delegations = s.delegations.Delete(c.StakeKeyID)
		return s, nil
	case certificate.StakeDelegation:
		if _, ok := s.stakeKeys.Get(c.StakeKeyID); !ok {
			return DelegationState{}, StakeKeyNotRegisteredError{
				StakeKeyID: c.StakeKeyID,
			}
		}
		if _, ok := s.pools.Get(c.Pool); !ok {
			return DelegationState{}, PoolNotRegisteredError{Pool: c.Pool}
		}
		s.delegations = s.delegations.Set(c.StakeKeyID, c.Pool)
		return s, nil
	case certificate.PoolRegistration:
		if _, ok := s.pools.Get(c.Pool); ok {
			return DelegationState{}, PoolAlreadyRegisteredError{Pool: c.Pool}
		}
		s.pools = s.pools.Set(c.Pool, PoolInfo{Owners: c.Owners})
		return s, nil
	case certificate.PoolRetirement:
		if _, ok := s.pools.Get(c.Pool); !ok {
			return DelegationState{}, PoolNotRegisteredError{Pool: c.Pool}
		}
		// delegations pointing at the retired pool are left in place and
		// show up as dangling stake in the distribution
		s.pools = s.pools.Delete(c.Pool)
		return s, nil
	default:
		return DelegationState{}, UnknownCertificateError{Certificate: cert}
	}
}

// StakeKeyRegistered reports whether the stake key is currently registered
func (s DelegationState) StakeKeyRegistered(id certificate.StakeKeyID) bool {
	_, ok := s.stakeKeys.Get(id)
	return ok
}

// PoolRegistered reports whether the pool is currently registered
func (s DelegationState) PoolRegistered(p certificate.PoolID) bool {
	_, ok := s.pools.Get(p)
	return ok
}

// Delegation returns the pool the stake key currently delegates to
func (s DelegationState) Delegation(
	id certificate.StakeKeyID,
) (certificate.PoolID, bool) {
	return s.delegations.Get(id)
}

// StakeKeyAlreadyRegisteredError indicates a duplicate stake key registration
type StakeKeyAlreadyRegisteredError struct {
	StakeKeyID certificate.StakeKeyID
}

func (e StakeKeyAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("stake key %s already registered", e.StakeKeyID)
}

// StakeKeyNotRegisteredError indicates an operation on an unregistered stake key
type StakeKeyNotRegisteredError struct {
	StakeKeyID certificate.StakeKeyID
}

func (e StakeKeyNotRegisteredError) Error() string {
	return fmt.Sprintf("stake key %s not registered", e.StakeKeyID)
}

// PoolAlreadyRegisteredError indicates a duplicate pool registration
type PoolAlreadyRegisteredError struct {
	Pool certificate.PoolID
}

func (e PoolAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("pool %s already registered", e.Pool)
}

// PoolNotRegisteredError indicates an operation on an unregistered pool
type PoolNotRegisteredError struct {
	Pool certificate.PoolID
}

func (e PoolNotRegisteredError) Error() string {
	return fmt.Sprintf("pool %s not registered", e.Pool)
}

// UnknownCertificateError indicates a certificate kind the delegation state
// does not handle
type UnknownCertificateError struct {
	Certificate certificate.Certificate
}

func (e UnknownCertificateError) Error() string {
	return fmt.Sprintf("unknown certificate type %T", e.Certificate)
}
