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

package setting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyEmptyProposal(t *testing.T) {
	initial := New()
	next := initial.Apply(UpdateProposal{})
	assert.Equal(t, initial.MaxTransactionsPerBlock, next.MaxTransactionsPerBlock)
	assert.Equal(t, initial.BlockContentMaxSize, next.BlockContentMaxSize)
	assert.Equal(t, initial.SlotsPerEpoch, next.SlotsPerEpoch)
	assert.Equal(t, initial.SlotDuration, next.SlotDuration)
	assert.Equal(t, initial.Version+1, next.Version)
}

func TestApplyOverlay(t *testing.T) {
	maxTxs := uint32(42)
	slotDuration := 5 * time.Second
	initial := New()
	next := initial.Apply(UpdateProposal{
		MaxTransactionsPerBlock: &maxTxs,
		SlotDuration:            &slotDuration,
	})
	assert.Equal(t, uint32(42), next.MaxTransactionsPerBlock)
	assert.Equal(t, 5*time.Second, next.SlotDuration)
	// unlisted parameters are untouched
	assert.Equal(t, initial.BlockContentMaxSize, next.BlockContentMaxSize)
	assert.Equal(t, initial.SlotsPerEpoch, next.SlotsPerEpoch)
	// the original snapshot is unchanged
	assert.NotEqual(t, initial.MaxTransactionsPerBlock, next.MaxTransactionsPerBlock)
	assert.Equal(t, New().MaxTransactionsPerBlock, initial.MaxTransactionsPerBlock)
}

func TestApplyVersionCounts(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		s = s.Apply(UpdateProposal{})
		assert.Equal(t, uint64(i+1), s.Version)
	}
}
